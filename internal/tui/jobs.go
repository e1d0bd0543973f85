package tui

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type jobKind string

type jobStatus string

const (
	jobKindGenerate jobKind = "generate"
	jobKindCopy     jobKind = "copy"
)

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
)

type jobSnapshot struct {
	ID          string
	Kind        jobKind
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobSignalMsg struct {
	Snapshot jobSnapshot
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

type jobBus struct {
	counter int64
	logger  *zap.Logger
}

func newJobBus(logger *zap.Logger) *jobBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &jobBus{logger: logger.Named("jobs")}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", kind, idx)
}

// Start emits a running signal and then the runner's result wrapped in an envelope.
func (b *jobBus) Start(kind jobKind, runner jobRunner) tea.Cmd {
	start := jobSnapshot{ID: b.nextID(kind), Kind: kind, Status: jobStatusRunning, StartedAt: time.Now()}
	b.logger.Debug("job started", zap.String("job", start.ID))
	return tea.Sequence(
		func() tea.Msg { return jobSignalMsg{Snapshot: start} },
		func() tea.Msg { return b.execute(context.Background(), start, runner) },
	)
}

func (b *jobBus) execute(ctx context.Context, start jobSnapshot, runner jobRunner) jobResultEnvelope {
	payload, err := runner(ctx)
	snapshot := start
	snapshot.CompletedAt = time.Now()
	snapshot.Duration = snapshot.CompletedAt.Sub(start.StartedAt)
	if err != nil {
		snapshot.Status = jobStatusFailed
		snapshot.Err = err.Error()
		b.logger.Warn("job failed",
			zap.String("job", snapshot.ID),
			zap.Duration("duration", snapshot.Duration),
			zap.Error(err),
		)
	} else {
		snapshot.Status = jobStatusSucceeded
		b.logger.Info("job succeeded",
			zap.String("job", snapshot.ID),
			zap.Duration("duration", snapshot.Duration),
		)
	}
	return jobResultEnvelope{Snapshot: snapshot, Payload: payload}
}
