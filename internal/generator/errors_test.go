package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/missiongen/internal/llm"
)

type blankError struct{}

func (blankError) Error() string { return "  " }

func TestDescribe(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "configuration", err: &llm.ConfigurationError{Provider: llm.ProviderGemini}, want: ConfigurationMessage},
		{name: "openai configuration", err: &llm.ConfigurationError{Provider: llm.ProviderOpenAI}, want: "API key not configured. Please add your OpenAI API key to continue."},
		{name: "bare sentinel", err: fmt.Errorf("setup: %w", llm.ErrNotConfigured), want: ConfigurationMessage},
		{name: "upstream", err: &llm.GenerationError{Message: "quota exceeded"}, want: "quota exceeded"},
		{name: "plain", err: errors.New("connection refused"), want: "connection refused"},
		{name: "blank", err: blankError{}, want: FallbackMessage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Describe(tc.err))
		})
	}
}

type fakeClient struct {
	calls atomic.Int32
	text  string
	err   error
	block bool
}

func (f *fakeClient) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls.Add(1)
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.text, f.err
}

func (f *fakeClient) Name() string { return "fake" }

func TestRunReturnsTextVerbatim(t *testing.T) {
	client := &fakeClient{text: "We empower underserved youth with coding skills for a brighter future."}
	got, err := Run(context.Background(), client, BuildPrompt("a nonprofit teaching coding to kids"))
	require.NoError(t, err)
	assert.Equal(t, client.text, got)
	assert.Equal(t, int32(1), client.calls.Load())
}

func TestRunWithoutClient(t *testing.T) {
	_, err := Run(context.Background(), nil, BuildPrompt("a bakery"))
	assert.Equal(t, ConfigurationMessage, Describe(err))
}

func TestRunUnavailableClientSkipsNetwork(t *testing.T) {
	_, err := Run(context.Background(), llm.Unavailable(nil), BuildPrompt("a bakery"))
	assert.True(t, errors.Is(err, llm.ErrNotConfigured))
	assert.Equal(t, ConfigurationMessage, Describe(err))
}

func TestRunEmptyTextIsError(t *testing.T) {
	_, err := Run(context.Background(), &fakeClient{}, "prompt")
	assert.Equal(t, EmptyStatementMessage, Describe(err))
}

func TestRunHonorsTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := Run(ctx, &fakeClient{block: true}, "prompt")
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.NotEmpty(t, Describe(err))
}

func TestBuildPromptEmbedsDescriptionVerbatim(t *testing.T) {
	desc := "  a bakery\nwith \"quotes\" %s  "
	prompt := BuildPrompt(desc)
	assert.True(t, strings.HasPrefix(prompt, "Generate a powerful, concise, and inspiring mission statement for this organization/company: "))
	assert.Contains(t, prompt, desc)
	assert.Contains(t, prompt, "avoid generic language.")
}
