package types

// ------------------------------
// Response Types
// ------------------------------

// TokenResponse is returned by /api/auth/login.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// InquiryResponse carries the AI answer to an inquiry.
type InquiryResponse struct {
	AnswerText string `json:"answerText"`
}

// AnswerResult is one graded (or pending) answer in a submission result.
type AnswerResult struct {
	QuestionID        int64        `json:"questionId"`
	QuestionText      string       `json:"questionText"`
	QuestionType      QuestionType `json:"questionType"`
	ChoiceOptionID    *int64       `json:"choiceOptionId,omitempty"`
	ChoiceOptionText  string       `json:"choiceOptionText,omitempty"`
	DescriptiveAnswer string       `json:"descriptiveAnswer,omitempty"`
	IsCorrect         *bool        `json:"isCorrect,omitempty"`
	Score             *float64     `json:"score,omitempty"`
	TeacherComment    string       `json:"teacherComment,omitempty"`
}

// SubmissionResult is the student-facing view of a submission.
type SubmissionResult struct {
	ID              int64            `json:"submissionId"`
	AssessmentID    int64            `json:"assessmentId"`
	AssessmentTitle string           `json:"assessmentTitle"`
	SubmittedAt     string           `json:"submittedAt"`
	Status          SubmissionStatus `json:"status"`
	Answers         []AnswerResult   `json:"answers"`
}

// EnqueueAck acknowledges an accepted async upload.
type EnqueueAck struct {
	LectureID int64  `json:"lectureId"`
	FileName  string `json:"fileName"`
	Status    string `json:"status"`
}
