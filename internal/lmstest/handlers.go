package lmstest

import (
	"net/http"

	"github.com/dlrkawo/aitutor-lms/client"
)

// reply writes a handler result: strings as text, everything else as JSON.
func reply[T any](w http.ResponseWriter, v T, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	switch x := any(v).(type) {
	case string:
		writeText(w, http.StatusOK, x)
	default:
		writeJSON(w, http.StatusOK, v)
	}
}

func noContent(w http.ResponseWriter, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req client.SignupRequest
	if !decode(w, r, &req) {
		return
	}
	msg, err := s.session(r).Signup(r.Context(), req)
	reply(w, msg, err)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req client.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	tok, err := s.session(r).Login(r.Context(), req)
	reply(w, tok, err)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	u, err := s.session(r).Me(r.Context())
	reply(w, u, err)
}

func (s *Server) listCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.session(r).ListCourses(r.Context())
	if courses == nil {
		courses = []client.Course{}
	}
	reply(w, courses, err)
}

func (s *Server) createCourse(w http.ResponseWriter, r *http.Request) {
	var req client.CourseRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := s.session(r).CreateCourse(r.Context(), req)
	reply(w, c, err)
}

func (s *Server) getCourse(w http.ResponseWriter, r *http.Request) {
	c, err := s.session(r).GetCourse(r.Context(), pathID(r))
	reply(w, c, err)
}

func (s *Server) updateCourse(w http.ResponseWriter, r *http.Request) {
	var req client.CourseRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := s.session(r).UpdateCourse(r.Context(), pathID(r), req)
	reply(w, c, err)
}

func (s *Server) deleteCourse(w http.ResponseWriter, r *http.Request) {
	noContent(w, s.session(r).DeleteCourse(r.Context(), pathID(r)))
}

func (s *Server) enrollCourse(w http.ResponseWriter, r *http.Request) {
	msg, err := s.session(r).EnrollCourse(r.Context(), pathID(r))
	reply(w, msg, err)
}

func (s *Server) createLecture(w http.ResponseWriter, r *http.Request) {
	var req client.CreateLectureRequest
	if !decode(w, r, &req) {
		return
	}
	l, err := s.session(r).CreateLecture(r.Context(), pathID(r), req)
	reply(w, l, err)
}

func (s *Server) getLecture(w http.ResponseWriter, r *http.Request) {
	l, err := s.session(r).GetLecture(r.Context(), pathID(r))
	reply(w, l, err)
}

func (s *Server) updateLecture(w http.ResponseWriter, r *http.Request) {
	var req client.UpdateLectureRequest
	if !decode(w, r, &req) {
		return
	}
	l, err := s.session(r).UpdateLecture(r.Context(), pathID(r), req)
	reply(w, l, err)
}

func (s *Server) deleteLecture(w http.ResponseWriter, r *http.Request) {
	noContent(w, s.session(r).DeleteLecture(r.Context(), pathID(r)))
}

func (s *Server) generateContent(w http.ResponseWriter, r *http.Request) {
	msg, err := s.session(r).GenerateLectureContent(r.Context(), pathID(r))
	reply(w, msg, err)
}

func (s *Server) uploadMaterial(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer func() { _ = file.Close() }()
	url, err := s.session(r).UploadMaterial(r.Context(), pathID(r), header.Filename, file)
	reply(w, url, err)
}

func (s *Server) submitInquiry(w http.ResponseWriter, r *http.Request) {
	var req client.InquiryRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := s.session(r).SubmitInquiry(r.Context(), pathID(r), req)
	reply(w, resp, err)
}

func (s *Server) generateQuiz(w http.ResponseWriter, r *http.Request) {
	qs, err := s.session(r).GenerateSelfDiagnosisQuiz(r.Context(), pathID(r))
	reply(w, qs, err)
}

func (s *Server) listAssessments(w http.ResponseWriter, r *http.Request) {
	list, err := s.session(r).ListAssessments(r.Context(), pathID(r))
	if list == nil {
		list = []client.AssessmentSimple{}
	}
	reply(w, list, err)
}

func (s *Server) createAssessment(w http.ResponseWriter, r *http.Request) {
	var req client.CreateAssessmentRequest
	if !decode(w, r, &req) {
		return
	}
	msg, err := s.session(r).CreateAssessment(r.Context(), pathID(r), req)
	reply(w, msg, err)
}

func (s *Server) getAssessment(w http.ResponseWriter, r *http.Request) {
	a, err := s.session(r).GetAssessment(r.Context(), pathID(r))
	reply(w, a, err)
}

func (s *Server) listSubmissions(w http.ResponseWriter, r *http.Request) {
	list, err := s.session(r).ListSubmissions(r.Context(), pathID(r))
	if list == nil {
		list = []client.Submission{}
	}
	reply(w, list, err)
}

func (s *Server) createSubmission(w http.ResponseWriter, r *http.Request) {
	var req client.SubmissionRequest
	if !decode(w, r, &req) {
		return
	}
	msg, err := s.session(r).CreateSubmission(r.Context(), pathID(r), req)
	reply(w, msg, err)
}

func (s *Server) getSubmission(w http.ResponseWriter, r *http.Request) {
	res, err := s.session(r).GetSubmission(r.Context(), pathID(r))
	reply(w, res, err)
}
