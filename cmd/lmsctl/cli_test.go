package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/dlrkawo/aitutor-lms/client"
	"github.com/dlrkawo/aitutor-lms/internal/lmstest"
	"github.com/dlrkawo/aitutor-lms/state"
)

// runCLI executes one lmsctl invocation and returns its stdout.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, "", args...)
	if err != nil {
		t.Fatalf("%s failed: %v", strings.Join(args, " "), err)
	}
	return out
}

func decodeOut(t *testing.T, out string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(out), v); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
}

func newBackend(t *testing.T) *lmstest.Server {
	t.Helper()
	srv := lmstest.New()
	t.Cleanup(srv.Close)
	t.Setenv("LMS_API_URL", srv.URL)
	t.Setenv("LMS_STATE_HOME", t.TempDir())
	return srv
}

func TestCLI_TeacherAndStudentFlow(t *testing.T) {
	newBackend(t)

	mustRun(t, "signup", "--email", "prof@lms.test", "--password", "pw", "--name", "Prof", "--role", "TEACHER")
	mustRun(t, "signup", "--email", "kim@lms.test", "--password", "pw", "--name", "Kim")

	out := mustRun(t, "login", "--email", "prof@lms.test", "--password", "pw")
	var me client.User
	decodeOut(t, out, &me)
	if me.Role != client.RoleTeacher {
		t.Fatalf("role = %q, want TEACHER", me.Role)
	}

	out = mustRun(t, "token")
	if !strings.Contains(out, `"role": "TEACHER"`) || !strings.Contains(out, `"expired": false`) {
		t.Fatalf("token output = %s", out)
	}

	var course client.CourseDetail
	decodeOut(t, mustRun(t, "courses", "create", "--title", "Operating Systems", "--description", "kernels"), &course)
	cid := strconv.FormatInt(course.ID, 10)

	if out := mustRun(t, "courses", "list"); !strings.Contains(out, "Operating Systems") {
		t.Fatalf("courses list = %s", out)
	}
	mustRun(t, "courses", "update", cid, "--title", "OS")

	var lecture client.Lecture
	decodeOut(t, mustRun(t, "lectures", "create", cid, "--title", "Scheduling", "--week", "3"), &lecture)
	lid := strconv.FormatInt(lecture.ID, 10)

	dir := t.TempDir()
	slides := filepath.Join(dir, "slides.pdf")
	notes := filepath.Join(dir, "notes.pdf")
	for _, p := range []string{slides, notes} {
		if err := os.WriteFile(p, []byte("%PDF-1.4"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	out = mustRun(t, "lectures", "upload", lid, slides)
	if !strings.Contains(out, "/files/lectures/"+lid+"/slides.pdf") {
		t.Fatalf("upload output = %s", out)
	}
	out = mustRun(t, "lectures", "upload", "--async", lid, slides, notes)
	if strings.Count(out, `"status": "uploaded"`) != 2 {
		t.Fatalf("async upload output = %s", out)
	}

	mustRun(t, "lectures", "generate", lid)
	mustRun(t, "lectures", "update", lid, "--week", "4")
	decodeOut(t, mustRun(t, "lectures", "get", lid), &lecture)
	if lecture.WeekNumber != 4 || lecture.AIGeneratedStatus != client.AIStatusCompleted {
		t.Fatalf("lecture = %+v", lecture)
	}

	def := filepath.Join(dir, "quiz.json")
	quiz := `{"title":"Quiz 1","type":"QUIZ","dueDate":"2026-12-01T00:00:00","questions":[{"text":"Round robin preempts","type":"OX","choiceOptions":[{"text":"O","correct":true},{"text":"X"}]}]}`
	if err := os.WriteFile(def, []byte(quiz), 0o600); err != nil {
		t.Fatal(err)
	}
	mustRun(t, "assessments", "create", cid, "-f", def)

	mustRun(t, "login", "--email", "kim@lms.test", "--password", "pw")
	mustRun(t, "courses", "enroll", cid)

	var list []client.AssessmentSimple
	decodeOut(t, mustRun(t, "assessments", "list", cid), &list)
	if len(list) != 1 {
		t.Fatalf("assessments = %+v", list)
	}
	aid := strconv.FormatInt(list[0].ID, 10)
	var detail client.AssessmentDetail
	decodeOut(t, mustRun(t, "assessments", "get", aid), &detail)
	q := detail.Questions[0]

	answers := fmt.Sprintf(`{"answers":[{"questionId":%d,"choiceOptionId":%d}]}`, q.ID, q.Options[0].ID)
	if _, err := runCLI(t, answers, "submissions", "create", aid, "-f", "-"); err != nil {
		t.Fatalf("submissions create: %v", err)
	}

	if _, err := runCLI(t, "", "submissions", "list", aid); err == nil {
		t.Fatal("student listing submissions should be forbidden")
	}

	out = mustRun(t, "inquire", lid, "what", "is", "a", "time", "slice?")
	if !strings.Contains(out, "what is a time slice?") {
		t.Fatalf("inquire output = %s", out)
	}
	var questions []client.QuizQuestion
	decodeOut(t, mustRun(t, "quiz", lid), &questions)
	if len(questions) == 0 {
		t.Fatal("empty quiz")
	}

	mustRun(t, "logout")
	if _, err := runCLI(t, "", "whoami"); err == nil {
		t.Fatal("whoami after logout should fail")
	}
}

func TestCLI_Ping(t *testing.T) {
	srv := newBackend(t)

	out := mustRun(t, "ping")
	if !strings.Contains(out, `"status": "reachable"`) || !strings.Contains(out, `"mode": "direct"`) {
		t.Fatalf("ping output = %s", out)
	}

	srv.SetOffline(true)
	out, err := runCLI(t, "", "ping")
	if err == nil {
		t.Fatal("ping against an offline tunnel should fail")
	}
	if !strings.Contains(out, "tunnel-offline") {
		t.Fatalf("ping output = %s", out)
	}
}

func TestCLI_Errors(t *testing.T) {
	srv := newBackend(t)

	if _, err := runCLI(t, "", "courses", "get", "abc"); err == nil || !strings.Contains(err.Error(), "invalid courseId") {
		t.Fatalf("err = %v", err)
	}
	if _, err := runCLI(t, "", "whoami"); err == nil {
		t.Fatal("whoami without a token should fail")
	}
	if _, err := runCLI(t, "", "--mode", "sideways", "courses", "list"); err == nil {
		t.Fatal("unknown mode should fail")
	}
	slides := filepath.Join(t.TempDir(), "x.pdf")
	if err := os.WriteFile(slides, []byte("%PDF-1.4"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "", "--backend", "memory", "lectures", "upload", "--async", "1", slides); !errors.Is(err, state.ErrNoUploadQueue) {
		t.Fatalf("err = %v, want the http backend requirement", err)
	}

	_, err := runCLI(t, "", "courses", "create", "--title", "Nope")
	if !client.IsUnauthenticated(err) {
		t.Fatalf("err = %v, want 401", err)
	}
	var e *client.Error
	if !errors.As(err, &e) || !strings.HasPrefix(e.URL, srv.URL) {
		t.Fatalf("err = %#v", err)
	}
}

func TestCLI_MemoryBackend(t *testing.T) {
	newBackend(t)

	out, err := runCLI(t, "", "--backend", "memory", "signup", "--email", "a@lms.test", "--password", "pw", "--name", "A")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if !strings.Contains(out, "signup successful") {
		t.Fatalf("signup output = %s", out)
	}
	// Each invocation gets a fresh in-memory backend.
	if _, err := runCLI(t, "", "--backend", "memory", "login", "--email", "a@lms.test", "--password", "pw"); err == nil {
		t.Fatal("memory backend should not keep accounts across invocations")
	}
}

func TestCLI_APIURLFlagOverridesDirectModeEnv(t *testing.T) {
	srv := newBackend(t)
	t.Setenv("LMS_API_URL", "")
	t.Setenv("LMS_MODE", "direct")

	if _, err := runCLI(t, "", "ping"); err == nil {
		t.Fatal("direct mode without an address should fail")
	}
	out := mustRun(t, "--api-url", srv.URL, "ping")
	if !strings.Contains(out, `"status": "reachable"`) || !strings.Contains(out, `"mode": "direct"`) {
		t.Fatalf("ping output = %s", out)
	}
}
