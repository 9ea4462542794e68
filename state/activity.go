package state

import (
	"context"
	"slices"

	"github.com/dlrkawo/aitutor-lms/backend"
	"github.com/dlrkawo/aitutor-lms/client"
)

// Activity holds the last inquiry answer and self-diagnosis quiz.
type Activity struct {
	view
	svc backend.Activity

	inquiry *client.InquiryResponse
	quiz    []client.QuizQuestion
}

// NewActivity creates an Activity view.
func NewActivity(ctx context.Context, svc backend.Activity) *Activity {
	a := &Activity{svc: svc}
	a.init(ctx)
	return a
}

// Inquiry returns the last answer, or nil.
func (a *Activity) Inquiry() *client.InquiryResponse {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.inquiry
}

// Quiz returns the last generated quiz.
func (a *Activity) Quiz() []client.QuizQuestion {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.quiz)
}

// SubmitInquiry asks the AI tutor a question about a lecture.
func (a *Activity) SubmitInquiry(lectureID int64, req client.InquiryRequest) Result[*client.InquiryResponse] {
	return run(&a.view, "submit inquiry", func(ctx context.Context) (*client.InquiryResponse, error) {
		return a.svc.SubmitInquiry(ctx, lectureID, req)
	}, func(resp *client.InquiryResponse) {
		a.inquiry = resp
	})
}

// GenerateQuiz requests a self-diagnosis quiz for a lecture.
func (a *Activity) GenerateQuiz(lectureID int64) Result[[]client.QuizQuestion] {
	return run(&a.view, "generate quiz", func(ctx context.Context) ([]client.QuizQuestion, error) {
		return a.svc.GenerateSelfDiagnosisQuiz(ctx, lectureID)
	}, func(qs []client.QuizQuestion) {
		a.quiz = qs
	})
}

// ClearInquiry forgets the last answer.
func (a *Activity) ClearInquiry() {
	a.mu.Lock()
	a.inquiry = nil
	a.mu.Unlock()
}

// ClearQuiz forgets the last quiz.
func (a *Activity) ClearQuiz() {
	a.mu.Lock()
	a.quiz = nil
	a.mu.Unlock()
}
