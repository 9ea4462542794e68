package shardqueue

import "context"

// Job is one queued unit of work. Run may be called more than once when
// the executor retries a recoverable failure.
type Job interface {
	Run(ctx context.Context) error
}

// JobFunc lets a plain function be queued.
type JobFunc func(ctx context.Context) error

func (f JobFunc) Run(ctx context.Context) error { return f(ctx) }
