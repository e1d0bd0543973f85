package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/csheth/missiongen/internal/generator"
)

func TestJobBusIDsAreSequential(t *testing.T) {
	bus := newJobBus(nil)
	assert.Equal(t, "generate-1", bus.nextID(jobKindGenerate))
	assert.Equal(t, "copy-2", bus.nextID(jobKindCopy))
}

func TestJobBusExecuteSuccess(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	bus := newJobBus(zap.New(core))
	start := jobSnapshot{ID: "generate-1", Kind: jobKindGenerate, Status: jobStatusRunning, StartedAt: time.Now()}

	env := bus.execute(context.Background(), start, func(context.Context) (tea.Msg, error) {
		return "payload", nil
	})
	assert.Equal(t, jobStatusSucceeded, env.Snapshot.Status)
	assert.Equal(t, "payload", env.Payload)
	assert.Empty(t, env.Snapshot.Err)
	assert.False(t, env.Snapshot.CompletedAt.Before(start.StartedAt))
	assert.Equal(t, 1, logs.FilterMessage("job succeeded").Len())
}

func TestJobBusExecuteFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	bus := newJobBus(zap.New(core))
	start := jobSnapshot{ID: "copy-1", Kind: jobKindCopy, StartedAt: time.Now()}

	env := bus.execute(context.Background(), start, func(context.Context) (tea.Msg, error) {
		return copyResultMsg{instance: 1, err: errors.New("denied")}, errors.New("denied")
	})
	assert.Equal(t, jobStatusFailed, env.Snapshot.Status)
	assert.Equal(t, "denied", env.Snapshot.Err)
	assert.IsType(t, copyResultMsg{}, env.Payload)
	assert.Equal(t, 1, logs.FilterMessage("job failed").Len())
}

type slowLLM struct{}

func (slowLLM) Generate(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (slowLLM) Name() string { return "slow" }

func TestGenerateJobTimesOut(t *testing.T) {
	defer goleak.VerifyNone(t)

	runner := generateJob(slowLLM{}, 7, generator.Request{ID: 2, Prompt: "p"}, 20*time.Millisecond)
	msg, err := runner(context.Background())
	require.ErrorIs(t, err, context.DeadlineExceeded)
	result, ok := msg.(generationResultMsg)
	require.True(t, ok)
	assert.Equal(t, uint64(7), result.instance)
	assert.Equal(t, uint64(2), result.requestID)
	assert.True(t, strings.Contains(generator.Describe(result.err), "deadline"))
}

func TestGenerateJobPassesPrompt(t *testing.T) {
	client := &fakeLLM{text: "Bread for all."}
	prompt := generator.BuildPrompt("a bakery")
	msg, err := generateJob(client, 1, generator.Request{ID: 1, Prompt: prompt}, time.Second)(context.Background())
	require.NoError(t, err)
	assert.Equal(t, generationResultMsg{instance: 1, requestID: 1, statement: "Bread for all."}, msg)
	assert.Equal(t, []string{prompt}, client.prompts)
}
