package telemetry

import (
	"context"

	"github.com/rollbar/rollbar-go"
	rollbarerrors "github.com/rollbar/rollbar-go/errors"

	"github.com/alexanderramin/taskforge/internal/service"
)

type errorReporter interface {
	ErrorWithExtrasAndContext(ctx context.Context, level string, err error, extras map[string]interface{})
	Wait()
}

// RollbarObserver reports failed use cases to Rollbar. Successful events
// are ignored.
type RollbarObserver struct {
	client errorReporter
}

var _ service.UseCaseObserver = (*RollbarObserver)(nil)

func NewRollbarObserver(token, env, codeVersion string) *RollbarObserver {
	client := rollbar.New(token, env, codeVersion, "", "")
	client.SetStackTracer(rollbarerrors.StackTracer)
	return &RollbarObserver{client: client}
}

func (o *RollbarObserver) ObserveUseCase(ctx context.Context, event service.UseCaseEvent) {
	if event.Success || event.Err == nil {
		return
	}
	extras := make(map[string]interface{}, len(event.Fields)+2)
	for k, v := range event.Fields {
		extras[k] = v
	}
	extras["use_case"] = event.Name
	extras["duration_ms"] = event.Duration.Milliseconds()
	o.client.ErrorWithExtrasAndContext(ctx, rollbar.ERR, event.Err, extras)
}

// Flush blocks until queued reports are sent.
func (o *RollbarObserver) Flush() {
	o.client.Wait()
}
