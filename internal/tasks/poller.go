// Package tasks polls asynchronous generation tasks at a fixed
// interval until they finish or the attempt budget runs out.
package tasks

import (
	"context"
	"errors"
	"time"

	"postdeck/pkg/logging"
)

// ErrExhausted is returned when a task is still pending after the last
// allowed attempt. The task is abandoned, not cancelled upstream.
var ErrExhausted = errors.New("task polling attempts exhausted")

// CheckFunc inspects a task once. done is true on any terminal status;
// result carries whatever the caller wants back from the final check.
type CheckFunc[T any] func(ctx context.Context) (result T, done bool, err error)

// Poller drives a CheckFunc on a fixed interval.
type Poller struct {
	Interval    time.Duration
	MaxAttempts int
	Logger      logging.Logger
}

func NewPoller(logger logging.Logger) *Poller {
	return &Poller{
		Interval:    3 * time.Second,
		MaxAttempts: 60,
		Logger:      logger,
	}
}

// Wait polls until check reports done, the context is cancelled, or
// MaxAttempts checks have run. Transient check errors are logged and
// counted as attempts rather than aborting the wait.
func Wait[T any](ctx context.Context, p *Poller, taskID string, check CheckFunc[T]) (T, error) {
	var zero T

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		result, done, err := check(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return zero, ctx.Err()
			}
			p.Logger.WithError(err).WithFields(logging.Fields{
				"task_id": taskID,
				"attempt": attempt,
			}).Warn("Task status check failed")
		} else if done {
			return result, nil
		}

		if attempt == p.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-ticker.C:
		}
	}

	p.Logger.WithField("task_id", taskID).Warn("Giving up on task")
	return zero, ErrExhausted
}
