// Package config resolves runtime settings from .env files and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/csheth/missiongen/internal/llm"
	"github.com/csheth/missiongen/internal/logging"
)

// Prefix namespaces every setting, e.g. MISSIONGEN_PROVIDER.
const Prefix = "MISSIONGEN"

// Credential variables checked in order for each provider. The first non-empty wins.
var keyVars = map[llm.Provider][]string{
	llm.ProviderGemini: {"MISSIONGEN_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY", "VITE_GEMINI_API_KEY"},
	llm.ProviderOpenAI: {"MISSIONGEN_API_KEY", "OPENAI_API_KEY"},
}

// Config holds every runtime setting.
type Config struct {
	Provider       llm.Provider  `envconfig:"PROVIDER" default:"gemini"`
	Model          string        `envconfig:"MODEL"`
	Endpoint       string        `envconfig:"ENDPOINT"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"60s"`
	LogFile        string        `envconfig:"LOG_FILE"`
	Verbose        bool          `envconfig:"VERBOSE" default:"false"`
	MetricsAddr    string        `envconfig:"METRICS_ADDR"`
	NoAltScreen    bool          `envconfig:"NO_ALT_SCREEN" default:"false"`

	// APIKey is resolved from provider specific variables, see keyVars.
	APIKey string `ignored:"true"`
}

// Load reads envFiles (default ".env", silently skipped when missing) and then the
// environment. Variables already set in the environment win over file values.
func Load(envFiles ...string) (*Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Normalize validates the provider and fills values derived from it. Call it again
// after overriding fields from flags.
func (c *Config) Normalize() error {
	provider, err := llm.ParseProvider(string(c.Provider))
	if err != nil {
		return err
	}
	c.Provider = provider
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: request timeout must be positive, got %s", c.RequestTimeout)
	}
	if strings.TrimSpace(c.APIKey) == "" {
		c.APIKey = LookupKey(provider)
	}
	if c.Endpoint == "" && provider == llm.ProviderOllama {
		c.Endpoint = os.Getenv("OLLAMA_HOST")
	}
	if c.LogFile == "" {
		c.LogFile = logging.DefaultPath()
	}
	return nil
}

// LookupKey returns the first credential set for provider.
func LookupKey(provider llm.Provider) string {
	for _, name := range keyVars[provider] {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// KeyVars lists the variables consulted for provider's credential.
func KeyVars(provider llm.Provider) []string {
	return append([]string(nil), keyVars[provider]...)
}

// LLM translates the settings into a client configuration.
func (c *Config) LLM(logger *zap.Logger, observer llm.Observer) llm.Config {
	return llm.Config{
		Provider:   c.Provider,
		APIKey:     c.APIKey,
		Model:      c.Model,
		Endpoint:   c.Endpoint,
		HTTPClient: &http.Client{Timeout: c.RequestTimeout + 5*time.Second},
		Logger:     logger,
		Observer:   observer,
	}
}
