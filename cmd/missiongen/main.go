package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/csheth/missiongen/internal/clipboard"
	"github.com/csheth/missiongen/internal/config"
	"github.com/csheth/missiongen/internal/llm"
	"github.com/csheth/missiongen/internal/logging"
	"github.com/csheth/missiongen/internal/metrics"
	"github.com/csheth/missiongen/internal/tui"
)

// errReported marks failures whose message was already written to stderr.
var errReported = errors.New("reported")

type options struct {
	envFile     string
	apiKey      string
	provider    string
	model       string
	endpoint    string
	timeout     time.Duration
	logFile     string
	verbose     bool
	metricsAddr string
	noAltScreen bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "missiongen:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return buildRootCmd(&options{})
}

func buildRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "missiongen",
		Short: "Craft a mission statement for your organization",
		Long: "missiongen turns a short description of your organization into a concise,\n" +
			"inspiring mission statement using a generative language model.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.envFile, "env-file", "", "load settings from this file instead of ./.env")
	flags.StringVar(&opts.apiKey, "api-key", "", "provider API key (default from MISSIONGEN_API_KEY or GEMINI_API_KEY)")
	flags.StringVar(&opts.provider, "provider", "", "language model provider: gemini, openai or ollama")
	flags.StringVar(&opts.model, "model", "", "override the provider's default model")
	flags.StringVar(&opts.endpoint, "endpoint", "", "custom API endpoint or Ollama host")
	flags.DurationVar(&opts.timeout, "timeout", 0, "per request timeout (default 60s)")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	flags.BoolVar(&opts.verbose, "verbose", false, "enable debug logging")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	flags.BoolVar(&opts.noAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")

	root.AddCommand(newGenerateCmd(opts), newAboutCmd())
	return root
}

// app bundles the services shared by every command.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Recorder
	server  *metrics.Server
	llm     llm.Client
}

func bootstrap(cmd *cobra.Command, opts *options) (*app, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogFile, cfg.Verbose)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, metrics: metrics.NewRecorder()}
	if cfg.MetricsAddr != "" {
		a.server, err = metrics.Serve(cmd.Context(), cfg.MetricsAddr, a.metrics, logger)
		if err != nil {
			_ = logger.Sync()
			return nil, err
		}
	}

	a.llm, err = llm.New(cmd.Context(), cfg.LLM(logger, a.metrics))
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		logger.Warn("language model not configured",
			zap.String("provider", string(cfg.Provider)),
			zap.Strings("checked", config.KeyVars(cfg.Provider)),
		)
		a.llm = llm.Unavailable(err)
	case err != nil:
		a.close()
		return nil, err
	default:
		logger.Info("language model ready", zap.String("client", a.llm.Name()))
	}
	return a, nil
}

// loadConfig reads the environment and then applies flags the user set explicitly.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	var files []string
	if opts.envFile != "" {
		files = append(files, opts.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("provider") {
		cfg.Provider = llm.Provider(opts.provider)
		// The key and endpoint resolved so far belong to the previous provider.
		cfg.APIKey = ""
		cfg.Endpoint = os.Getenv(config.Prefix + "_ENDPOINT")
	}
	if flags.Changed("api-key") {
		cfg.APIKey = opts.apiKey
	}
	if flags.Changed("model") {
		cfg.Model = opts.model
	}
	if flags.Changed("endpoint") {
		cfg.Endpoint = opts.endpoint
	}
	if flags.Changed("timeout") {
		cfg.RequestTimeout = opts.timeout
	}
	if flags.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = opts.metricsAddr
	}
	if flags.Changed("no-alt-screen") {
		cfg.NoAltScreen = opts.noAltScreen
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// systemClipboard falls back to an OSC 52 escape on stderr when no native
// clipboard tool is installed, which also reaches the local terminal over SSH.
func systemClipboard() clipboard.Writer {
	return clipboard.Fallback(clipboard.System(), clipboard.OSC52(os.Stderr))
}

func (a *app) close() {
	if a.server != nil {
		if err := a.server.Close(); err != nil {
			a.logger.Warn("metrics server shutdown", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

func runTUI(cmd *cobra.Command, opts *options) error {
	a, err := bootstrap(cmd, opts)
	if err != nil {
		return err
	}
	defer a.close()

	programOpts := []tea.ProgramOption{
		tea.WithContext(cmd.Context()),
		tea.WithMouseCellMotion(),
	}
	if !a.cfg.NoAltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			LLM:            a.llm,
			Clipboard:      systemClipboard(),
			Logger:         a.logger,
			Metrics:        a.metrics,
			RequestTimeout: a.cfg.RequestTimeout,
		}),
		programOpts...,
	)

	a.logger.Info("starting tui", zap.Bool("alt_screen", !a.cfg.NoAltScreen))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
