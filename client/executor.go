package client

import (
	"context"

	"github.com/dlrkawo/aitutor-lms/client/internal/shardqueue"
)

// executor abstracts the async job runner behind the material upload queue.
type executor interface {
	Submit(context.Context, string, shardqueue.Job) error
	Barrier(context.Context, string) error
	Stop()
}
