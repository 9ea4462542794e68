package state

import (
	"context"
	"slices"

	"github.com/dlrkawo/aitutor-lms/backend"
	"github.com/dlrkawo/aitutor-lms/client"
)

// Assessments holds a course's assessments, the one last opened, its
// submissions and the last submission result.
type Assessments struct {
	view
	svc backend.Assessments

	assessments []client.AssessmentSimple
	current     *client.AssessmentDetail
	submissions []client.Submission
	result      *client.SubmissionResult
}

// NewAssessments creates an Assessments view.
func NewAssessments(ctx context.Context, svc backend.Assessments) *Assessments {
	a := &Assessments{svc: svc}
	a.init(ctx)
	return a
}

// Assessments returns a copy of the list.
func (a *Assessments) Assessments() []client.AssessmentSimple {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.assessments)
}

// Current returns the assessment last fetched with Get.
func (a *Assessments) Current() *client.AssessmentDetail {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current
}

// Submissions returns a copy of the submission list.
func (a *Assessments) Submissions() []client.Submission {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.submissions)
}

// Result returns the submission result last fetched.
func (a *Assessments) Result() *client.SubmissionResult {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.result
}

// Fetch replaces the list with a course's assessments.
func (a *Assessments) Fetch(courseID int64) Result[[]client.AssessmentSimple] {
	return run(&a.view, "list assessments", func(ctx context.Context) ([]client.AssessmentSimple, error) {
		return a.svc.ListAssessments(ctx, courseID)
	}, func(list []client.AssessmentSimple) {
		a.assessments = list
	})
}

// Get loads one assessment with its questions.
func (a *Assessments) Get(assessmentID int64) Result[*client.AssessmentDetail] {
	return run(&a.view, "get assessment", func(ctx context.Context) (*client.AssessmentDetail, error) {
		return a.svc.GetAssessment(ctx, assessmentID)
	}, func(d *client.AssessmentDetail) {
		a.current = d
	})
}

// Create authors an assessment. The backend answers with a message only,
// so the list is left for the next Fetch.
func (a *Assessments) Create(courseID int64, req client.CreateAssessmentRequest) Result[string] {
	return run(&a.view, "create assessment", func(ctx context.Context) (string, error) {
		return a.svc.CreateAssessment(ctx, courseID, req)
	}, nil)
}

// Submit answers an assessment.
func (a *Assessments) Submit(assessmentID int64, req client.SubmissionRequest) Result[string] {
	return run(&a.view, "submit answers", func(ctx context.Context) (string, error) {
		return a.svc.CreateSubmission(ctx, assessmentID, req)
	}, nil)
}

// FetchSubmissions replaces the submission list with an assessment's.
func (a *Assessments) FetchSubmissions(assessmentID int64) Result[[]client.Submission] {
	return run(&a.view, "list submissions", func(ctx context.Context) ([]client.Submission, error) {
		return a.svc.ListSubmissions(ctx, assessmentID)
	}, func(list []client.Submission) {
		a.submissions = list
	})
}

// GetSubmission loads one submission result.
func (a *Assessments) GetSubmission(submissionID int64) Result[*client.SubmissionResult] {
	return run(&a.view, "get submission", func(ctx context.Context) (*client.SubmissionResult, error) {
		return a.svc.GetSubmission(ctx, submissionID)
	}, func(r *client.SubmissionResult) {
		a.result = r
	})
}
