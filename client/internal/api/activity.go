package api

import (
	"context"
	"net/http"

	"github.com/dlrkawo/aitutor-lms/client/internal/types"
)

// SubmitInquiry sends a student's question about a lecture and returns the AI answer.
func SubmitInquiry(ctx context.Context, ep Endpoint, lectureID int64, req *types.InquiryRequest) (*types.InquiryResponse, error) {
	if err := types.ValidateID(lectureID, "lectureId"); err != nil {
		return nil, err
	}
	if err := types.ValidateBody("inquiry", req); err != nil {
		return nil, err
	}
	r, err := call[types.InquiryResponse](ctx, ep, Request{Method: http.MethodPost, Path: lecturePath(lectureID) + "/inquiries", Body: req, IncludeAuth: true}, "submit inquiry")
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GenerateSelfDiagnosisQuiz asks the backend for practice questions on a lecture.
// The endpoint expects an empty JSON array as its body.
func GenerateSelfDiagnosisQuiz(ctx context.Context, ep Endpoint, lectureID int64) ([]types.QuizQuestion, error) {
	if err := types.ValidateID(lectureID, "lectureId"); err != nil {
		return nil, err
	}
	return call[[]types.QuizQuestion](ctx, ep, Request{Method: http.MethodPost, Path: lecturePath(lectureID) + "/self-diagnosis-quiz", Body: []any{}, IncludeAuth: true}, "generate quiz")
}
