package types

// ------------------------------
// Request Types
// ------------------------------

// SignupRequest registers a new account.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"fullName" validate:"required"`
	Role     Role   `json:"role" validate:"required,oneof=STUDENT TEACHER"`
}

// LoginRequest holds credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CourseRequest creates or updates a course.
type CourseRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// CreateLectureRequest adds a lecture to a course.
type CreateLectureRequest struct {
	Title       string `json:"title" validate:"required"`
	WeekNumber  int    `json:"weekNumber" validate:"gte=1"`
	Description string `json:"description,omitempty"`
}

// UpdateLectureRequest patches a lecture; nil fields are left untouched.
type UpdateLectureRequest struct {
	Title       *string `json:"title,omitempty"`
	WeekNumber  *int    `json:"weekNumber,omitempty" validate:"omitempty,gte=1"`
	Description *string `json:"description,omitempty"`
}

// InquiryRequest is a student's raised-hand question.
type InquiryRequest struct {
	InquiryText string `json:"inquiryText" validate:"required"`
}

// ChoiceOptionRequest is an answer option when authoring a question.
type ChoiceOptionRequest struct {
	Text    string `json:"text" validate:"required"`
	Correct bool   `json:"correct"`
}

// QuestionRequest authors one assessment question.
type QuestionRequest struct {
	Text          string                `json:"text" validate:"required"`
	Type          QuestionType          `json:"type" validate:"required,oneof=FLASHCARD OX MULTICHOICE ESSAY"`
	CreatedBy     string                `json:"createdBy,omitempty" validate:"omitempty,oneof=TEACHER AI"`
	ChoiceOptions []ChoiceOptionRequest `json:"choiceOptions,omitempty" validate:"dive"`
}

// CreateAssessmentRequest authors an assessment for a course.
type CreateAssessmentRequest struct {
	Title     string            `json:"title" validate:"required"`
	Type      AssessmentType    `json:"type" validate:"required,oneof=QUIZ ASSIGNMENT"`
	DueDate   string            `json:"dueDate" validate:"required"`
	Questions []QuestionRequest `json:"questions" validate:"dive"`
}

// AnswerRequest is one student answer; exactly one of the answer fields is expected.
type AnswerRequest struct {
	QuestionID        int64  `json:"questionId" validate:"gt=0"`
	ChoiceOptionID    *int64 `json:"choiceOptionId,omitempty"`
	DescriptiveAnswer string `json:"descriptiveAnswer,omitempty"`
}

// SubmissionRequest submits answers to an assessment.
type SubmissionRequest struct {
	Answers []AnswerRequest `json:"answers" validate:"required,min=1,dive"`
}
