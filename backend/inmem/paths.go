package inmem

import "fmt"

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

func coursePath(id int64) string     { return fmt.Sprintf("/api/courses/%d", id) }
func lecturePath(id int64) string    { return fmt.Sprintf("/api/lectures/%d", id) }
func assessmentPath(id int64) string { return fmt.Sprintf("/api/assessments/%d", id) }
func submissionPath(id int64) string { return fmt.Sprintf("/api/submissions/%d", id) }
