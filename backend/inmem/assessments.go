package inmem

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dlrkawo/aitutor-lms/client"
)

func courseAssessmentsPath(courseID int64) string {
	return fmt.Sprintf("/api/assessments/courses/%d", courseID)
}

// ListAssessments returns a course's assessments ordered by id.
func (db *DB) ListAssessments(ctx context.Context, courseID int64) ([]client.AssessmentSimple, error) {
	if err := begin(ctx); err != nil {
		return nil, err
	}
	if err := requireID(courseID, "courseId"); err != nil {
		return nil, err
	}
	path := courseAssessmentsPath(courseID)
	if _, err := db.authenticate(path); err != nil {
		return nil, err
	}

	db.mu.RLock()
	defer db.mu.RUnlock()
	if _, ok := db.courses[courseID]; !ok {
		return nil, notFound(path, "course")
	}
	out := make([]client.AssessmentSimple, 0)
	for _, a := range db.assessments {
		if a.courseID == courseID {
			out = append(out, a.detail.AssessmentSimple)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateAssessment authors an assessment for an owned course. Correct
// options are kept server-side and never served back.
func (db *DB) CreateAssessment(ctx context.Context, courseID int64, req client.CreateAssessmentRequest) (string, error) {
	if err := begin(ctx); err != nil {
		return "", err
	}
	if err := requireID(courseID, "courseId"); err != nil {
		return "", err
	}
	if err := validateAssessment(req); err != nil {
		return "", err
	}
	path := courseAssessmentsPath(courseID)
	u, err := db.authorize(path, client.RoleTeacher)
	if err != nil {
		return "", err
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	if _, err := db.ownedCourse(path, courseID, u); err != nil {
		return "", err
	}
	id := db.next("assessment")
	rec := &assessmentRecord{
		detail: client.AssessmentDetail{
			AssessmentSimple: client.AssessmentSimple{ID: id, Title: req.Title, Type: req.Type, DueDate: req.DueDate},
			Questions:        make([]client.Question, 0, len(req.Questions)),
		},
		courseID: courseID,
		correct:  make(map[int64]bool),
	}
	for _, qr := range req.Questions {
		q := client.Question{ID: db.next("question"), Text: qr.Text, Type: qr.Type}
		for _, oreq := range qr.ChoiceOptions {
			opt := client.ChoiceOption{ID: db.next("option"), Text: oreq.Text}
			q.Options = append(q.Options, opt)
			if oreq.Correct {
				rec.correct[opt.ID] = true
			}
		}
		rec.detail.Questions = append(rec.detail.Questions, q)
	}
	db.assessments[id] = rec
	return "assessment created", nil
}

// GetAssessment returns an assessment with its questions.
func (db *DB) GetAssessment(ctx context.Context, assessmentID int64) (*client.AssessmentDetail, error) {
	if err := begin(ctx); err != nil {
		return nil, err
	}
	if err := requireID(assessmentID, "assessmentId"); err != nil {
		return nil, err
	}
	path := assessmentPath(assessmentID)
	if _, err := db.authenticate(path); err != nil {
		return nil, err
	}

	db.mu.RLock()
	defer db.mu.RUnlock()
	rec, ok := db.assessments[assessmentID]
	if !ok {
		return nil, notFound(path, "assessment")
	}
	return copyAssessment(rec.detail), nil
}

// ListSubmissions returns the submission rows of an assessment in an owned
// course.
func (db *DB) ListSubmissions(ctx context.Context, assessmentID int64) ([]client.Submission, error) {
	if err := begin(ctx); err != nil {
		return nil, err
	}
	if err := requireID(assessmentID, "assessmentId"); err != nil {
		return nil, err
	}
	path := assessmentPath(assessmentID) + "/submissions"
	u, err := db.authorize(path, client.RoleTeacher)
	if err != nil {
		return nil, err
	}

	db.mu.RLock()
	defer db.mu.RUnlock()
	rec, ok := db.assessments[assessmentID]
	if !ok {
		return nil, notFound(path, "assessment")
	}
	if _, err := db.ownedCourse(path, rec.courseID, u); err != nil {
		return nil, err
	}
	out := make([]client.Submission, 0)
	for _, s := range db.submissions {
		if s.result.AssessmentID != assessmentID {
			continue
		}
		name := ""
		if st, ok := db.users[s.studentID]; ok {
			name = st.user.FullName
		}
		out = append(out, client.Submission{
			ID:          s.result.ID,
			StudentID:   s.studentID,
			StudentName: name,
			SubmittedAt: s.result.SubmittedAt,
			Status:      s.result.Status,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateSubmission records a student's answers as SUBMITTED. Choice answers
// are checked against the author's options; scores are left to the teacher.
func (db *DB) CreateSubmission(ctx context.Context, assessmentID int64, req client.SubmissionRequest) (string, error) {
	if err := begin(ctx); err != nil {
		return "", err
	}
	if err := requireID(assessmentID, "assessmentId"); err != nil {
		return "", err
	}
	if len(req.Answers) == 0 {
		return "", invalid("submission: at least one answer is required")
	}
	for _, a := range req.Answers {
		if a.QuestionID <= 0 {
			return "", invalid("submission: questionId is required")
		}
	}
	path := assessmentPath(assessmentID) + "/submissions"
	u, err := db.authorize(path, client.RoleStudent)
	if err != nil {
		return "", err
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	rec, ok := db.assessments[assessmentID]
	if !ok {
		return "", notFound(path, "assessment")
	}
	for _, s := range db.submissions {
		if s.result.AssessmentID == assessmentID && s.studentID == u.ID {
			return "", conflict(path, "already submitted")
		}
	}

	answers := make([]client.AnswerResult, 0, len(req.Answers))
	for _, a := range req.Answers {
		q, ok := findQuestion(rec.detail.Questions, a.QuestionID)
		if !ok {
			return "", badRequest(path, "question %d is not part of assessment %d", a.QuestionID, assessmentID)
		}
		ar := client.AnswerResult{
			QuestionID:        q.ID,
			QuestionText:      q.Text,
			QuestionType:      q.Type,
			DescriptiveAnswer: a.DescriptiveAnswer,
		}
		if a.ChoiceOptionID != nil {
			opt, ok := findOption(q.Options, *a.ChoiceOptionID)
			if !ok {
				return "", badRequest(path, "option %d is not part of question %d", *a.ChoiceOptionID, q.ID)
			}
			id := opt.ID
			correct := rec.correct[id]
			ar.ChoiceOptionID = &id
			ar.ChoiceOptionText = opt.Text
			ar.IsCorrect = &correct
		}
		answers = append(answers, ar)
	}

	id := db.next("submission")
	db.submissions[id] = &submissionRecord{
		result: client.SubmissionResult{
			ID:              id,
			AssessmentID:    assessmentID,
			AssessmentTitle: rec.detail.Title,
			SubmittedAt:     db.timestamp(),
			Status:          client.SubmissionSubmitted,
			Answers:         answers,
		},
		studentID: u.ID,
	}
	return "submission received", nil
}

// GetSubmission returns a submission to its student or to the course teacher.
func (db *DB) GetSubmission(ctx context.Context, submissionID int64) (*client.SubmissionResult, error) {
	if err := begin(ctx); err != nil {
		return nil, err
	}
	if err := requireID(submissionID, "submissionId"); err != nil {
		return nil, err
	}
	path := submissionPath(submissionID)
	u, err := db.authenticate(path)
	if err != nil {
		return nil, err
	}

	db.mu.RLock()
	defer db.mu.RUnlock()
	rec, ok := db.submissions[submissionID]
	if !ok {
		return nil, notFound(path, "submission")
	}
	if rec.studentID != u.ID {
		a, ok := db.assessments[rec.result.AssessmentID]
		if !ok || db.courses[a.courseID] == nil || db.courses[a.courseID].teacherID != u.ID {
			return nil, forbidden(path, "not allowed to view this submission")
		}
	}
	out := rec.result
	out.Answers = append([]client.AnswerResult(nil), rec.result.Answers...)
	return &out, nil
}

// deleteSubmissionsOf drops every submission for an assessment. Callers hold
// the write lock.
func (db *DB) deleteSubmissionsOf(assessmentID int64) {
	for id, s := range db.submissions {
		if s.result.AssessmentID == assessmentID {
			delete(db.submissions, id)
		}
	}
}

func validateAssessment(req client.CreateAssessmentRequest) error {
	if strings.TrimSpace(req.Title) == "" || req.DueDate == "" {
		return invalid("assessment: title and dueDate are required")
	}
	if req.Type != client.AssessmentQuiz && req.Type != client.AssessmentAssignment {
		return invalid("assessment: type must be QUIZ or ASSIGNMENT")
	}
	for i, q := range req.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return invalid("assessment: question %d text is required", i+1)
		}
		switch q.Type {
		case client.QuestionFlashcard, client.QuestionOX, client.QuestionMultiChoice, client.QuestionEssay:
		default:
			return invalid("assessment: question %d has unknown type %q", i+1, q.Type)
		}
	}
	return nil
}

func copyAssessment(d client.AssessmentDetail) *client.AssessmentDetail {
	out := d
	out.Questions = make([]client.Question, len(d.Questions))
	for i, q := range d.Questions {
		q.Options = append([]client.ChoiceOption(nil), q.Options...)
		out.Questions[i] = q
	}
	return &out
}

func findQuestion(qs []client.Question, id int64) (client.Question, bool) {
	for _, q := range qs {
		if q.ID == id {
			return q, true
		}
	}
	return client.Question{}, false
}

func findOption(opts []client.ChoiceOption, id int64) (client.ChoiceOption, bool) {
	for _, o := range opts {
		if o.ID == id {
			return o, true
		}
	}
	return client.ChoiceOption{}, false
}
