package output

import (
	"fmt"

	"github.com/fatih/color"
)

// CLIError is a structured error with user-facing context
type CLIError struct {
	Summary    string
	Suggestion string
	Err        error
}

// Error implements the error interface, returning the summary
func (e *CLIError) Error() string {
	return e.Summary
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// FormatError prints a structured error message to stderr
func (p *Printer) FormatError(e *CLIError) {
	if p.useColors {
		color.New(color.FgRed, color.Bold).Fprintf(p.err, "error: %s\n", e.Summary) //nolint:errcheck
		if e.Suggestion != "" {
			color.New(color.FgCyan).Fprintf(p.err, "  %s\n", e.Suggestion) //nolint:errcheck
		}
		return
	}
	fmt.Fprintf(p.err, "error: %s\n", e.Summary) //nolint:errcheck
	if e.Suggestion != "" {
		fmt.Fprintf(p.err, "  %s\n", e.Suggestion) //nolint:errcheck
	}
}
