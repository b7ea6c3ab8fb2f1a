package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fastygo/cooltodo/api/transport"
)

// reportedError marks an error already written to stdout as an envelope.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// render prints data as an envelope in --json mode and through text otherwise.
func (rt *runtime) render(cmd *cobra.Command, data interface{}, text func(w io.Writer)) error {
	out := cmd.OutOrStdout()
	if rt.jsonOut {
		return writeEnvelope(out, transport.NewSuccess(data, meta(cmd)))
	}
	if text != nil {
		text(out)
	}
	return nil
}

// fail reports err in the active output mode.
func (rt *runtime) fail(cmd *cobra.Command, err error) error {
	if err == nil || !rt.jsonOut {
		return err
	}
	if writeErr := writeEnvelope(cmd.OutOrStdout(), transport.FromError(err, meta(cmd))); writeErr != nil {
		return writeErr
	}
	return &reportedError{err: err}
}

func meta(cmd *cobra.Command) map[string]string {
	return map[string]string{"command": cmd.CommandPath()}
}

func writeEnvelope(w io.Writer, env transport.Envelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func printf(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, format, args...)
}
