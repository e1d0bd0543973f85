package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/missiongen/internal/clipboard"
	"github.com/csheth/missiongen/internal/generator"
	"github.com/csheth/missiongen/internal/llm"
)

type generationResultMsg struct {
	instance  uint64
	requestID uint64
	statement string
	err       error
}

type copyResultMsg struct {
	instance uint64
	err      error
}

type copyExpiredMsg struct {
	instance uint64
	token    generator.CopyToken
}

func generateJob(client llm.Client, instance uint64, req generator.Request, timeout time.Duration) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		statement, err := generator.Run(ctx, client, req.Prompt)
		return generationResultMsg{instance: instance, requestID: req.ID, statement: statement, err: err}, err
	}
}

func copyJob(writer clipboard.Writer, instance uint64, text string) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		if writer == nil {
			return copyResultMsg{instance: instance, err: clipboard.ErrUnavailable}, clipboard.ErrUnavailable
		}
		err := writer.Write(text)
		return copyResultMsg{instance: instance, err: err}, err
	}
}

func copyExpiryCmd(instance uint64, token generator.CopyToken) tea.Cmd {
	return tea.Tick(generator.CopyResetDelay, func(time.Time) tea.Msg {
		return copyExpiredMsg{instance: instance, token: token}
	})
}

func copyFailureNotice(err error) string {
	if errors.Is(err, clipboard.ErrUnavailable) {
		return "Clipboard unavailable on this system. Select the statement to copy it manually."
	}
	return "Copy failed: " + err.Error()
}
