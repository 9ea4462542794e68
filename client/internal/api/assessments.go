package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dlrkawo/aitutor-lms/client/internal/types"
)

// ListAssessments returns the assessments of a course.
func ListAssessments(ctx context.Context, ep Endpoint, courseID int64) ([]types.AssessmentSimple, error) {
	if err := types.ValidateID(courseID, "courseId"); err != nil {
		return nil, err
	}
	return call[[]types.AssessmentSimple](ctx, ep, Request{Method: http.MethodGet, Path: courseAssessmentsPath(courseID), IncludeAuth: true}, "list assessments")
}

// CreateAssessment authors an assessment for a course (teachers only).
func CreateAssessment(ctx context.Context, ep Endpoint, courseID int64, req *types.CreateAssessmentRequest) (string, error) {
	if err := types.ValidateID(courseID, "courseId"); err != nil {
		return "", err
	}
	if err := types.ValidateBody("assessment", req); err != nil {
		return "", err
	}
	return call[string](ctx, ep, Request{Method: http.MethodPost, Path: courseAssessmentsPath(courseID), Body: req, IncludeAuth: true}, "create assessment")
}

// GetAssessment returns an assessment with its questions.
func GetAssessment(ctx context.Context, ep Endpoint, assessmentID int64) (*types.AssessmentDetail, error) {
	if err := types.ValidateID(assessmentID, "assessmentId"); err != nil {
		return nil, err
	}
	a, err := call[types.AssessmentDetail](ctx, ep, Request{Method: http.MethodGet, Path: assessmentPath(assessmentID), IncludeAuth: true}, "get assessment")
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListSubmissions returns submission status rows for an assessment (teachers only).
func ListSubmissions(ctx context.Context, ep Endpoint, assessmentID int64) ([]types.Submission, error) {
	if err := types.ValidateID(assessmentID, "assessmentId"); err != nil {
		return nil, err
	}
	return call[[]types.Submission](ctx, ep, Request{Method: http.MethodGet, Path: assessmentPath(assessmentID) + "/submissions", IncludeAuth: true}, "list submissions")
}

// CreateSubmission submits a student's answers.
func CreateSubmission(ctx context.Context, ep Endpoint, assessmentID int64, req *types.SubmissionRequest) (string, error) {
	if err := types.ValidateID(assessmentID, "assessmentId"); err != nil {
		return "", err
	}
	if err := types.ValidateBody("submission", req); err != nil {
		return "", err
	}
	return call[string](ctx, ep, Request{Method: http.MethodPost, Path: assessmentPath(assessmentID) + "/submissions", Body: req, IncludeAuth: true}, "create submission")
}

// GetSubmission returns the student's view of one submission.
func GetSubmission(ctx context.Context, ep Endpoint, submissionID int64) (*types.SubmissionResult, error) {
	if err := types.ValidateID(submissionID, "submissionId"); err != nil {
		return nil, err
	}
	s, err := call[types.SubmissionResult](ctx, ep, Request{Method: http.MethodGet, Path: fmt.Sprintf("/api/submissions/%d", submissionID), IncludeAuth: true}, "get submission")
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func courseAssessmentsPath(courseID int64) string {
	return fmt.Sprintf("/api/assessments/courses/%d", courseID)
}

func assessmentPath(assessmentID int64) string {
	return fmt.Sprintf("/api/assessments/%d", assessmentID)
}
