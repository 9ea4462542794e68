package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"

	"github.com/dlrkawo/aitutor-lms/client"
	"github.com/dlrkawo/aitutor-lms/state"
)

func newLecturesCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lectures",
		Short: "Manage lectures, AI content and materials",
	}
	cmd.AddCommand(
		newLectureCreateCmd(o),
		lecturesCmd(o, "get <lectureId>", "Show a lecture with its generated content", func(cmd *cobra.Command, v *state.Lectures, id int64, _ []string) error {
			return emitResult(cmd, v.Get(id))
		}),
		newLectureUpdateCmd(o),
		lecturesCmd(o, "delete <lectureId>", "Delete a lecture", func(cmd *cobra.Command, v *state.Lectures, id int64, _ []string) error {
			if res := v.Delete(id); !res.Success {
				return res.Err
			}
			return emit(cmd, map[string]any{"deleted": id})
		}),
		lecturesCmd(o, "generate <lectureId>", "Start AI content generation", func(cmd *cobra.Command, v *state.Lectures, id int64, _ []string) error {
			return emitMessage(cmd, v.GenerateContent(id))
		}),
		newLectureUploadCmd(o),
	)
	return cmd
}

// lecturesCmd builds a subcommand taking a lecture id followed by any
// extra arguments.
func lecturesCmd(o *rootOptions, use, short string, fn func(*cobra.Command, *state.Lectures, int64, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "lectureId")
			if err != nil {
				return err
			}
			b, err := o.open()
			if err != nil {
				return err
			}
			defer closeBackend(b)
			v := state.NewLectures(cmd.Context(), b.Courses, b.Lectures)
			defer v.Close()
			return fn(cmd, v, id, args[1:])
		},
	}
}

func newLectureCreateCmd(o *rootOptions) *cobra.Command {
	var req client.CreateLectureRequest

	cmd := &cobra.Command{
		Use:   "create <courseId>",
		Short: "Add a lecture to a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseID(args[0], "courseId")
			if err != nil {
				return err
			}
			b, err := o.open()
			if err != nil {
				return err
			}
			defer closeBackend(b)
			v := state.NewLectures(cmd.Context(), b.Courses, b.Lectures)
			defer v.Close()
			return emitResult(cmd, v.Create(courseID, req))
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "Lecture title (required)")
	cmd.Flags().IntVar(&req.WeekNumber, "week", 1, "Week number, starting at 1")
	cmd.Flags().StringVar(&req.Description, "description", "", "Lecture description")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newLectureUpdateCmd(o *rootOptions) *cobra.Command {
	var title, description string
	var week int

	cmd := lecturesCmd(o, "update <lectureId>", "Change a lecture; only the given flags are sent", func(cmd *cobra.Command, v *state.Lectures, id int64, _ []string) error {
		var req client.UpdateLectureRequest
		flags := cmd.Flags()
		if flags.Changed("title") {
			req.Title = &title
		}
		if flags.Changed("week") {
			req.WeekNumber = &week
		}
		if flags.Changed("description") {
			req.Description = &description
		}
		if req.Title == nil && req.WeekNumber == nil && req.Description == nil {
			return errors.New("nothing to update: pass --title, --week or --description")
		}
		return emitResult(cmd, v.Update(id, req))
	})

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().IntVar(&week, "week", 0, "New week number")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	return cmd
}

type uploadOutput struct {
	File   string `json:"file"`
	URL    string `json:"url,omitempty"`
	Status string `json:"status"`
}

func newLectureUploadCmd(o *rootOptions) *cobra.Command {
	var async bool

	cmd := &cobra.Command{
		Use:   "upload <lectureId> <file>...",
		Short: "Upload material files to a lecture",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "lectureId")
			if err != nil {
				return err
			}
			if async {
				return uploadAsync(cmd, o, id, args[1:])
			}

			b, err := o.open()
			if err != nil {
				return err
			}
			defer closeBackend(b)
			v := state.NewLectures(cmd.Context(), b.Courses, b.Lectures)
			defer v.Close()

			out := make([]uploadOutput, 0, len(args)-1)
			for _, path := range args[1:] {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				res := v.Upload(id, filepath.Base(path), f)
				_ = f.Close()
				if !res.Success {
					return fmt.Errorf("upload %s: %w", path, res.Err)
				}
				out = append(out, uploadOutput{File: path, URL: res.Data, Status: "uploaded"})
			}
			return emit(cmd, out)
		},
	}

	cmd.Flags().BoolVar(&async, "async", false, "Queue the files on the upload executor and wait for all of them")
	return cmd
}

// uploadAsync queues every file for the lecture, waits for the queue to
// drain and reports the failures the queue collected.
func uploadAsync(cmd *cobra.Command, o *rootOptions, lectureID int64, paths []string) error {
	var (
		mu       sync.Mutex
		failures []error
	)
	qcfg, err := client.LoadUploadQueueConfig()
	if err != nil {
		return err
	}
	qcfg.ErrorHandler = func(err error) {
		mu.Lock()
		failures = append(failures, err)
		mu.Unlock()
	}

	files := make([]state.MaterialFile, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files = append(files, state.MaterialFile{Name: filepath.Base(path), Content: data})
	}

	b, err := o.open(client.WithUploadQueue(qcfg))
	if err != nil {
		return err
	}
	defer closeBackend(b)
	v := state.NewLectures(cmd.Context(), b.Courses, b.Lectures)
	defer v.Close()

	res := v.QueueUploads(lectureID, files)
	if errors.Is(res.Err, state.ErrNoUploadQueue) {
		return fmt.Errorf("--async needs the http backend, not %s: %w", b.Name, res.Err)
	}
	if !res.Success {
		return res.Err
	}

	mu.Lock()
	defer mu.Unlock()
	if len(failures) > 0 {
		return errors.Join(failures...)
	}
	out := make([]uploadOutput, 0, len(paths))
	for _, path := range paths {
		out = append(out, uploadOutput{File: path, Status: "uploaded"})
	}
	return emit(cmd, out)
}
