package main

import (
	"github.com/spf13/cobra"

	"github.com/dlrkawo/aitutor-lms/client"
	"github.com/dlrkawo/aitutor-lms/state"
)

func newCoursesCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List, inspect and manage courses",
	}
	cmd.AddCommand(
		coursesCmd(o, "list", "List courses", cobra.NoArgs, func(cmd *cobra.Command, v *state.Courses, _ []string) error {
			return emitResult(cmd, v.Fetch())
		}),
		coursesCmd(o, "get <courseId>", "Show a course with its lectures", cobra.ExactArgs(1), func(cmd *cobra.Command, v *state.Courses, args []string) error {
			id, err := parseID(args[0], "courseId")
			if err != nil {
				return err
			}
			return emitResult(cmd, v.Get(id))
		}),
		newCourseWriteCmd(o, false),
		newCourseWriteCmd(o, true),
		coursesCmd(o, "delete <courseId>", "Delete a course", cobra.ExactArgs(1), func(cmd *cobra.Command, v *state.Courses, args []string) error {
			id, err := parseID(args[0], "courseId")
			if err != nil {
				return err
			}
			if res := v.Delete(id); !res.Success {
				return res.Err
			}
			return emit(cmd, map[string]any{"deleted": id})
		}),
		coursesCmd(o, "enroll <courseId>", "Enroll the signed-in student", cobra.ExactArgs(1), func(cmd *cobra.Command, v *state.Courses, args []string) error {
			id, err := parseID(args[0], "courseId")
			if err != nil {
				return err
			}
			return emitMessage(cmd, v.Enroll(id))
		}),
	)
	return cmd
}

// coursesCmd builds a subcommand that runs fn against a Courses view.
func coursesCmd(o *rootOptions, use, short string, args cobra.PositionalArgs, fn func(*cobra.Command, *state.Courses, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := o.open()
			if err != nil {
				return err
			}
			defer closeBackend(b)
			v := state.NewCourses(cmd.Context(), b.Courses)
			defer v.Close()
			return fn(cmd, v, args)
		},
	}
}

func newCourseWriteCmd(o *rootOptions, update bool) *cobra.Command {
	var req client.CourseRequest

	use, short, args := "create", "Create a course", cobra.NoArgs
	if update {
		use, short, args = "update <courseId>", "Replace a course's title and description", cobra.ExactArgs(1)
	}
	cmd := coursesCmd(o, use, short, args, func(cmd *cobra.Command, v *state.Courses, args []string) error {
		if !update {
			return emitResult(cmd, v.Create(req))
		}
		id, err := parseID(args[0], "courseId")
		if err != nil {
			return err
		}
		return emitResult(cmd, v.Update(id, req))
	})

	cmd.Flags().StringVar(&req.Title, "title", "", "Course title (required)")
	cmd.Flags().StringVar(&req.Description, "description", "", "Course description")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}
