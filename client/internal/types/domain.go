package types

// ------------------------------
// Core Domain Entities
// ------------------------------

// Role of an account.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
)

// User is the authenticated account as returned by /api/auth/me.
type User struct {
	ID       int64  `json:"userId"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
}

// Course is the list/summary shape of a course.
type Course struct {
	ID          int64  `json:"courseId"`
	Title       string `json:"title"`
	TeacherName string `json:"teacherName"`
	Description string `json:"description,omitempty"`
}

// CourseDetail is a course with its lectures.
type CourseDetail struct {
	Course
	Lectures []Lecture `json:"lectures,omitempty"`
}

// AIStatus tracks AI content generation for a lecture.
type AIStatus string

const (
	AIStatusPending    AIStatus = "PENDING"
	AIStatusProcessing AIStatus = "PROCESSING"
	AIStatusCompleted  AIStatus = "COMPLETED"
	AIStatusFailed     AIStatus = "FAILED"
)

// Lecture is one week of a course.
type Lecture struct {
	ID                int64            `json:"lectureId"`
	Title             string           `json:"title"`
	WeekNumber        int              `json:"weekNumber"`
	Description       string           `json:"description,omitempty"`
	AIGeneratedStatus AIStatus         `json:"aiGeneratedStatus,omitempty"`
	Contents          []LectureContent `json:"contents,omitempty"`
}

// ContentType of generated lecture material.
type ContentType string

const (
	ContentScript    ContentType = "SCRIPT"
	ContentSummary   ContentType = "SUMMARY"
	ContentVisualAid ContentType = "VISUAL_AID"
)

// LectureContent is one AI-generated artifact of a lecture.
type LectureContent struct {
	ID          int64       `json:"contentId"`
	ContentType ContentType `json:"contentType"`
	ContentData string      `json:"contentData"`
}

// MaterialType distinguishes uploaded files from external links.
type MaterialType string

const (
	MaterialFile MaterialType = "FILE"
	MaterialLink MaterialType = "LINK"
)

// LectureMaterial is a supplementary resource attached to a lecture.
type LectureMaterial struct {
	ID           int64        `json:"materialId"`
	DisplayName  string       `json:"displayName"`
	MaterialType MaterialType `json:"materialType"`
	URL          string       `json:"url"`
}

// QuizQuestion is a self-diagnosis question generated for a student.
type QuizQuestion struct {
	QuestionText string `json:"questionText"`
	QuestionType string `json:"questionType"`
}

// AssessmentType is QUIZ or ASSIGNMENT.
type AssessmentType string

const (
	AssessmentQuiz       AssessmentType = "QUIZ"
	AssessmentAssignment AssessmentType = "ASSIGNMENT"
)

// QuestionType of an assessment question.
type QuestionType string

const (
	QuestionFlashcard   QuestionType = "FLASHCARD"
	QuestionOX          QuestionType = "OX"
	QuestionMultiChoice QuestionType = "MULTICHOICE"
	QuestionEssay       QuestionType = "ESSAY"
)

// AssessmentSimple is the list shape of an assessment.
type AssessmentSimple struct {
	ID      int64          `json:"assessmentId"`
	Title   string         `json:"title"`
	Type    AssessmentType `json:"type"`
	DueDate string         `json:"dueDate"`
}

// AssessmentDetail is an assessment with its questions.
type AssessmentDetail struct {
	AssessmentSimple
	Questions []Question `json:"questions"`
}

// Question as served to students (correct answers are not exposed).
type Question struct {
	ID      int64        `json:"questionId"`
	Text    string       `json:"text"`
	Type    QuestionType `json:"type"`
	Options []Option     `json:"options,omitempty"`
}

// Option is one choice of a multiple choice question.
type Option struct {
	ID   int64  `json:"optionId"`
	Text string `json:"text"`
}

// SubmissionStatus is SUBMITTED until a teacher grades it.
type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "SUBMITTED"
	SubmissionGraded    SubmissionStatus = "GRADED"
)

// Submission is the teacher-facing status row for one student's answers.
type Submission struct {
	ID          int64            `json:"submissionId"`
	StudentID   int64            `json:"studentId"`
	StudentName string           `json:"studentName"`
	SubmittedAt string           `json:"submittedAt"`
	Status      SubmissionStatus `json:"status"`
}
