package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/csheth/missiongen/internal/clipboard"
	"github.com/csheth/missiongen/internal/generator"
	"github.com/csheth/missiongen/internal/metrics"
)

func newGenerateCmd(opts *options) *cobra.Command {
	var copyResult bool
	cmd := &cobra.Command{
		Use:   "generate [description...]",
		Short: "Generate one mission statement without the interface",
		Long: "Generate prints a single mission statement for the given description.\n" +
			"When no arguments are given the description is read from stdin.",
		Example: `  missiongen generate "a nonprofit teaching coding to underserved kids"
  echo "a family bakery" | missiongen generate --copy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			description, err := readDescription(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			a, err := bootstrap(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			var writer clipboard.Writer
			if copyResult {
				writer = systemClipboard()
			}
			return runGenerate(cmd, a, writer, description)
		},
	}
	cmd.Flags().BoolVar(&copyResult, "copy", false, "also copy the statement to the clipboard")
	return cmd
}

func readDescription(stdin io.Reader, args []string) (string, error) {
	description := strings.Join(args, " ")
	if len(args) == 0 {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read description: %w", err)
		}
		description = string(raw)
	}
	if strings.TrimSpace(description) == "" {
		return "", errors.New("a description is required")
	}
	return description, nil
}

// runGenerate writes the statement verbatim to stdout. writer may be nil.
func runGenerate(cmd *cobra.Command, a *app, writer clipboard.Writer, description string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.RequestTimeout)
	defer cancel()

	statement, err := generator.Run(ctx, a.llm, generator.BuildPrompt(description))
	if err != nil {
		a.logger.Warn("generate failed", zap.Error(err))
		fmt.Fprintln(cmd.ErrOrStderr(), generator.Describe(err))
		return errReported
	}
	fmt.Fprintln(cmd.OutOrStdout(), statement)

	if writer == nil {
		return nil
	}
	if err := writer.Write(statement); err != nil {
		a.metrics.ObserveCopy(copyOutcome(err))
		a.logger.Warn("copy failed", zap.Error(err))
		fmt.Fprintln(cmd.ErrOrStderr(), "Copy failed:", err)
		return errReported
	}
	a.metrics.ObserveCopy(metrics.CopyOK)
	fmt.Fprintln(cmd.ErrOrStderr(), "✓ Copied!")
	return nil
}

func copyOutcome(err error) string {
	if errors.Is(err, clipboard.ErrUnavailable) {
		return metrics.CopyUnavailable
	}
	return metrics.CopyFailed
}
