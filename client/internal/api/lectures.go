package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	lmserrors "github.com/dlrkawo/aitutor-lms/client/internal/errors"
	"github.com/dlrkawo/aitutor-lms/client/internal/types"
)

// CreateLecture adds a lecture to a course (teachers only).
func CreateLecture(ctx context.Context, ep Endpoint, courseID int64, req *types.CreateLectureRequest) (*types.Lecture, error) {
	if err := types.ValidateID(courseID, "courseId"); err != nil {
		return nil, err
	}
	if err := types.ValidateBody("lecture", req); err != nil {
		return nil, err
	}
	l, err := call[types.Lecture](ctx, ep, Request{Method: http.MethodPost, Path: coursePath(courseID) + "/lectures", Body: req, IncludeAuth: true}, "create lecture")
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetLecture returns a lecture with its generated contents.
func GetLecture(ctx context.Context, ep Endpoint, lectureID int64) (*types.Lecture, error) {
	if err := types.ValidateID(lectureID, "lectureId"); err != nil {
		return nil, err
	}
	l, err := call[types.Lecture](ctx, ep, Request{Method: http.MethodGet, Path: lecturePath(lectureID), IncludeAuth: true}, "get lecture")
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// UpdateLecture patches a lecture (teachers only).
func UpdateLecture(ctx context.Context, ep Endpoint, lectureID int64, req *types.UpdateLectureRequest) (*types.Lecture, error) {
	if err := types.ValidateID(lectureID, "lectureId"); err != nil {
		return nil, err
	}
	if err := types.ValidateBody("lecture", req); err != nil {
		return nil, err
	}
	l, err := call[types.Lecture](ctx, ep, Request{Method: http.MethodPut, Path: lecturePath(lectureID), Body: req, IncludeAuth: true}, "update lecture")
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// DeleteLecture removes a lecture (teachers only).
func DeleteLecture(ctx context.Context, ep Endpoint, lectureID int64) error {
	if err := types.ValidateID(lectureID, "lectureId"); err != nil {
		return err
	}
	return exec(ctx, ep, Request{Method: http.MethodDelete, Path: lecturePath(lectureID), IncludeAuth: true})
}

// GenerateLectureContent starts AI content generation for a lecture.
func GenerateLectureContent(ctx context.Context, ep Endpoint, lectureID int64) (string, error) {
	if err := types.ValidateID(lectureID, "lectureId"); err != nil {
		return "", err
	}
	return call[string](ctx, ep, Request{Method: http.MethodPost, Path: lecturePath(lectureID) + "/generate-content", IncludeAuth: true}, "generate content")
}

// UploadMaterial uploads a source file (usually a PDF) as multipart field "file".
func UploadMaterial(ctx context.Context, ep Endpoint, lectureID int64, fileName string, content io.Reader) (string, error) {
	if err := types.ValidateID(lectureID, "lectureId"); err != nil {
		return "", err
	}
	if fileName == "" || content == nil {
		return "", lmserrors.NewValidationError("material file is required")
	}
	form := &Multipart{Files: []FilePart{{Field: "file", FileName: fileName, Content: content}}}
	return call[string](ctx, ep, Request{Method: http.MethodPost, Path: lecturePath(lectureID) + "/materials", Body: form, IncludeAuth: true}, "upload material")
}

func lecturePath(lectureID int64) string {
	return fmt.Sprintf("/api/lectures/%d", lectureID)
}
