package main

import (
	"github.com/spf13/cobra"

	"github.com/dlrkawo/aitutor-lms/client"
	"github.com/dlrkawo/aitutor-lms/state"
)

// assessmentsCmd builds a subcommand that parses its first argument as the
// named id and runs fn against an Assessments view.
func assessmentsCmd(o *rootOptions, use, short, idName string, fn func(*cobra.Command, *state.Assessments, int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], idName)
			if err != nil {
				return err
			}
			b, err := o.open()
			if err != nil {
				return err
			}
			defer closeBackend(b)
			v := state.NewAssessments(cmd.Context(), b.Assessments)
			defer v.Close()
			return fn(cmd, v, id)
		},
	}
}

func newAssessmentsCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assessments",
		Short: "List, inspect and author assessments",
	}

	var file string
	create := assessmentsCmd(o, "create <courseId>", "Author an assessment from a JSON file", "courseId", func(cmd *cobra.Command, v *state.Assessments, courseID int64) error {
		var req client.CreateAssessmentRequest
		if err := readJSON(cmd, file, &req); err != nil {
			return err
		}
		return emitMessage(cmd, v.Create(courseID, req))
	})
	create.Flags().StringVarP(&file, "file", "f", "", "JSON assessment definition, - for stdin (required)")
	_ = create.MarkFlagRequired("file")

	cmd.AddCommand(
		assessmentsCmd(o, "list <courseId>", "List a course's assessments", "courseId", func(cmd *cobra.Command, v *state.Assessments, id int64) error {
			return emitResult(cmd, v.Fetch(id))
		}),
		assessmentsCmd(o, "get <assessmentId>", "Show an assessment with its questions", "assessmentId", func(cmd *cobra.Command, v *state.Assessments, id int64) error {
			return emitResult(cmd, v.Get(id))
		}),
		create,
	)
	return cmd
}

func newSubmissionsCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submissions",
		Short: "Submit answers and review submissions",
	}

	var file string
	create := assessmentsCmd(o, "create <assessmentId>", "Submit answers from a JSON file", "assessmentId", func(cmd *cobra.Command, v *state.Assessments, id int64) error {
		var req client.SubmissionRequest
		if err := readJSON(cmd, file, &req); err != nil {
			return err
		}
		return emitMessage(cmd, v.Submit(id, req))
	})
	create.Flags().StringVarP(&file, "file", "f", "", "JSON answers, - for stdin (required)")
	_ = create.MarkFlagRequired("file")

	cmd.AddCommand(
		assessmentsCmd(o, "list <assessmentId>", "List the submissions of an assessment", "assessmentId", func(cmd *cobra.Command, v *state.Assessments, id int64) error {
			return emitResult(cmd, v.FetchSubmissions(id))
		}),
		create,
		assessmentsCmd(o, "get <submissionId>", "Show a graded or pending submission", "submissionId", func(cmd *cobra.Command, v *state.Assessments, id int64) error {
			return emitResult(cmd, v.GetSubmission(id))
		}),
	)
	return cmd
}
