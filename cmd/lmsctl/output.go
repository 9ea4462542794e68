package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dlrkawo/aitutor-lms/state"
)

// emit prints v as indented JSON on the command's output.
func emit(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// emitResult prints a successful result's data or returns its error.
func emitResult[T any](cmd *cobra.Command, res state.Result[T]) error {
	if !res.Success {
		return res.Err
	}
	return emit(cmd, res.Data)
}

// emitMessage prints a text result as {"message": ...}.
func emitMessage(cmd *cobra.Command, res state.Result[string]) error {
	if !res.Success {
		return res.Err
	}
	return emit(cmd, map[string]string{"message": res.Data})
}

func parseID(s, name string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", name, s)
	}
	return id, nil
}

// readJSON decodes the file at path, or stdin when path is "-", into v.
func readJSON(cmd *cobra.Command, path string, v any) error {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
