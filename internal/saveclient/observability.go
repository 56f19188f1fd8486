package saveclient

import (
	"context"
	"io"
	"log/slog"
)

// SaveCallEvent records metadata about a single save request.
type SaveCallEvent struct {
	RequestID    string
	ProjectID    string
	TaskCount    int
	DeletedCount int
	LatencyMs    int64
	StatusCode   int
	Success      bool
	ErrorCode    string
}

// Observer receives events about save calls for logging.
type Observer interface {
	OnCallComplete(ctx context.Context, event SaveCallEvent)
}

// LogObserver writes save call events as structured log records.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{logger: slog.New(slog.NewTextHandler(w, nil))}
}

func (o *LogObserver) OnCallComplete(ctx context.Context, event SaveCallEvent) {
	attrs := []any{
		"request_id", event.RequestID,
		"project", event.ProjectID,
		"tasks", event.TaskCount,
		"deleted", event.DeletedCount,
		"latency_ms", event.LatencyMs,
		"status", event.StatusCode,
	}
	if !event.Success {
		o.logger.ErrorContext(ctx, "save_call", append(attrs, "error_code", event.ErrorCode)...)
		return
	}
	o.logger.InfoContext(ctx, "save_call", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(context.Context, SaveCallEvent) {}
