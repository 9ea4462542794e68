package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/dlrkawo/aitutor-lms/client"
	"github.com/dlrkawo/aitutor-lms/state"
)

func newInquireCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inquire <lectureId> <question>...",
		Short: "Ask the AI tutor about a lecture",
		Args:  cobra.MinimumNArgs(2),
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
			v := state.NewActivity(cmd.Context(), b.Activity)
			defer v.Close()

			req := client.InquiryRequest{InquiryText: strings.Join(args[1:], " ")}
			return emitResult(cmd, v.SubmitInquiry(id, req))
		},
	}
}

func newQuizCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "quiz <lectureId>",
		Short: "Generate a self-diagnosis quiz for a lecture",
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
			v := state.NewActivity(cmd.Context(), b.Activity)
			defer v.Close()
			return emitResult(cmd, v.GenerateQuiz(id))
		},
	}
}
