package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/csheth/missiongen/internal/about"
	"github.com/csheth/missiongen/internal/clipboard"
	"github.com/csheth/missiongen/internal/config"
	"github.com/csheth/missiongen/internal/generator"
	"github.com/csheth/missiongen/internal/llm"
)

var settingVars = []string{
	"PROVIDER", "MODEL", "ENDPOINT", "REQUEST_TIMEOUT", "LOG_FILE", "VERBOSE", "METRICS_ADDR", "NO_ALT_SCREEN",
}

// isolateEnv clears every variable the CLI reads and moves into an empty directory
// so no .env file is picked up.
func isolateEnv(t *testing.T) {
	t.Helper()
	names := []string{
		"MISSIONGEN_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY", "VITE_GEMINI_API_KEY",
		"OPENAI_API_KEY", "OLLAMA_HOST",
	}
	for _, name := range settingVars {
		names = append(names, name, "MISSIONGEN_"+name)
	}
	for _, name := range names {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	dir := t.TempDir()
	t.Setenv("MISSIONGEN_LOG_FILE", filepath.Join(dir, "missiongen.log"))
	t.Chdir(dir)
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

type ollamaStub struct {
	*httptest.Server
	mu      sync.Mutex
	prompts []string
}

func (s *ollamaStub) received() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

func newOllamaStub(t *testing.T, status int, body string) *ollamaStub {
	t.Helper()
	stub := &ollamaStub{}
	stub.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Prompt string `json:"prompt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		stub.mu.Lock()
		stub.prompts = append(stub.prompts, payload.Prompt)
		stub.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(stub.Close)
	return stub
}

func TestAboutCommand(t *testing.T) {
	isolateEnv(t)
	stdout, _, err := execute(t, "", "about")
	require.NoError(t, err)
	assert.Contains(t, stdout, about.Title)
	for _, section := range about.Sections() {
		assert.Contains(t, stdout, section.Title)
	}
	assert.Contains(t, stdout, about.SupportURL)
}

func TestGenerateWithoutKeyReportsConfiguration(t *testing.T) {
	isolateEnv(t)
	stdout, stderr, err := execute(t, "", "generate", "a", "bakery")
	require.ErrorIs(t, err, errReported)
	assert.Empty(t, stdout)
	assert.Equal(t, generator.ConfigurationMessage+"\n", stderr)
}

func TestGeneratePrintsStatement(t *testing.T) {
	isolateEnv(t)
	stub := newOllamaStub(t, http.StatusOK, `{"model":"llama3.2","response":"Fresh bread, shared warmth.","done":true}`)

	stdout, stderr, err := execute(t, "", "generate", "--provider", "ollama", "--endpoint", stub.URL, "a", "family", "bakery")
	require.NoError(t, err)
	assert.Equal(t, "Fresh bread, shared warmth.\n", stdout)
	assert.Empty(t, stderr)
	prompts := stub.received()
	require.Len(t, prompts, 1)
	assert.Equal(t, generator.BuildPrompt("a family bakery"), prompts[0])
}

func TestGenerateReadsStdin(t *testing.T) {
	isolateEnv(t)
	stub := newOllamaStub(t, http.StatusOK, `{"model":"llama3.2","response":"Code for every kid.","done":true}`)
	t.Setenv("MISSIONGEN_PROVIDER", "ollama")
	t.Setenv("MISSIONGEN_ENDPOINT", stub.URL)

	stdout, _, err := execute(t, "a nonprofit teaching coding to kids\n", "generate")
	require.NoError(t, err)
	assert.Equal(t, "Code for every kid.\n", stdout)
	prompts := stub.received()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "a nonprofit teaching coding to kids")
}

func TestGenerateRequiresDescription(t *testing.T) {
	isolateEnv(t)
	_, _, err := execute(t, "   \n", "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description is required")
}

func TestGenerateSurfacesProviderError(t *testing.T) {
	isolateEnv(t)
	stub := newOllamaStub(t, http.StatusNotFound, `{"error":"model \"llama3.2\" not found, try pulling it first"}`)

	stdout, stderr, err := execute(t, "", "generate", "--provider", "ollama", "--endpoint", stub.URL, "a bakery")
	require.ErrorIs(t, err, errReported)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "not found")
}

func TestGenerateCopiesResult(t *testing.T) {
	isolateEnv(t)
	stub := newOllamaStub(t, http.StatusOK, `{"model":"llama3.2","response":"We bake joy.","done":true}`)

	client, err := llm.New(context.Background(), llm.Config{Provider: llm.ProviderOllama, Endpoint: stub.URL})
	require.NoError(t, err)
	a := &app{
		cfg:    &config.Config{RequestTimeout: 5 * time.Second},
		logger: zap.NewNop(),
		llm:    client,
	}
	cmd := newGenerateCmd(&options{})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetContext(context.Background())

	var copied []string
	writer := clipboard.WriterFunc(func(text string) error {
		copied = append(copied, text)
		return nil
	})
	require.NoError(t, runGenerate(cmd, a, writer, "a bakery"))
	assert.Equal(t, []string{"We bake joy."}, copied)
	assert.Equal(t, "We bake joy.\n", stdout.String())
	assert.Contains(t, stderr.String(), "Copied!")
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	isolateEnv(t)
	t.Setenv("MISSIONGEN_PROVIDER", "ollama")
	t.Setenv("OLLAMA_HOST", "http://ollama.internal:11434")
	t.Setenv("GEMINI_API_KEY", "g-key")

	opts := &options{}
	root := buildRootCmd(opts)
	require.NoError(t, root.ParseFlags([]string{"--provider", "gemini", "--timeout", "5s", "--model", "gemini-2.0-flash"}))

	cfg, err := loadConfig(root, opts)
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderGemini, cfg.Provider)
	assert.Equal(t, "g-key", cfg.APIKey)
	assert.Empty(t, cfg.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
}

func TestAPIKeyFlagWins(t *testing.T) {
	isolateEnv(t)
	t.Setenv("GEMINI_API_KEY", "from-env")

	opts := &options{}
	root := buildRootCmd(opts)
	require.NoError(t, root.ParseFlags([]string{"--api-key", "from-flag"}))

	cfg, err := loadConfig(root, opts)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.APIKey)
}

func TestRejectsUnknownProviderFlag(t *testing.T) {
	isolateEnv(t)
	_, _, err := execute(t, "", "generate", "--provider", "bard", "a bakery")
	require.ErrorIs(t, err, llm.ErrUnknownProvider)
}

func TestGenerateReportsCopyFailure(t *testing.T) {
	isolateEnv(t)
	a := &app{
		cfg:    &config.Config{RequestTimeout: 5 * time.Second},
		logger: zap.NewNop(),
		llm:    staticClient("Serve with heart."),
	}
	cmd := newGenerateCmd(&options{})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetContext(context.Background())

	unavailable := clipboard.WriterFunc(func(string) error { return clipboard.ErrUnavailable })
	err := runGenerate(cmd, a, unavailable, "a clinic")
	require.ErrorIs(t, err, errReported)
	assert.Equal(t, "Serve with heart.\n", stdout.String())
	assert.Contains(t, stderr.String(), "Copy failed")
}

type staticClient string

func (s staticClient) Generate(context.Context, string) (string, error) { return string(s), nil }
func (s staticClient) Name() string                                      { return "static" }
