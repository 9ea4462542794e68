package api

import (
	"bytes"
	"context"
	"strconv"

	"github.com/dlrkawo/aitutor-lms/client/internal/job"
	"github.com/dlrkawo/aitutor-lms/client/internal/types"
)

// EnqueueUpload submits a material upload to the executor. Uploads for the
// same lecture run in FIFO order; the content is buffered so a retried
// attempt re-sends the full file.
func EnqueueUpload(ctx context.Context, exec types.Executor, ep Endpoint, lectureID int64, fileName string, content []byte) (*types.EnqueueAck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateID(lectureID, "lectureId"); err != nil {
		return nil, err
	}

	uploadJob := job.NewUpload(lectureID, fileName, func(jobCtx context.Context) error {
		_, err := UploadMaterial(jobCtx, ep, lectureID, fileName, bytes.NewReader(content))
		return err
	})

	if err := exec.Submit(ctx, ShardKey(lectureID), uploadJob); err != nil {
		return nil, err
	}
	return &types.EnqueueAck{LectureID: lectureID, FileName: fileName, Status: "enqueued"}, nil
}

// ShardKey is the executor key for a lecture's uploads.
func ShardKey(lectureID int64) string {
	return "lecture:" + strconv.FormatInt(lectureID, 10)
}
