// Package output provides CLI output formatting utilities
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Printer handles formatted output to the terminal
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// ResolveColors determines whether to use colors based on config and environment
func ResolveColors(configColors bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return configColors
}

// NewPrinter creates a printer on stdout/stderr
func NewPrinter(useColors bool) *Printer {
	return NewPrinterWithWriters(os.Stdout, os.Stderr, useColors)
}

// NewPrinterWithWriters creates a printer with custom writers
func NewPrinterWithWriters(out, err io.Writer, useColors bool) *Printer {
	return &Printer{out: out, err: err, useColors: useColors}
}

// Out returns the writer for regular output, e.g. for tables.
func (p *Printer) Out() io.Writer {
	return p.out
}

// Info prints an informational message
func (p *Printer) Info(format string, args ...any) {
	if p.useColors {
		color.New(color.FgCyan).Fprintf(p.out, format+"\n", args...) //nolint:errcheck
		return
	}
	fmt.Fprintf(p.out, format+"\n", args...) //nolint:errcheck
}

// Success prints a success message
func (p *Printer) Success(format string, args ...any) {
	if p.useColors {
		color.New(color.FgGreen).Fprintf(p.out, "✓ "+format+"\n", args...) //nolint:errcheck
		return
	}
	fmt.Fprintf(p.out, "[OK] "+format+"\n", args...) //nolint:errcheck
}

// Warning prints a warning message
func (p *Printer) Warning(format string, args ...any) {
	if p.useColors {
		color.New(color.FgYellow).Fprintf(p.err, "⚠ "+format+"\n", args...) //nolint:errcheck
		return
	}
	fmt.Fprintf(p.err, "[WARN] "+format+"\n", args...) //nolint:errcheck
}

// Error prints an error message
func (p *Printer) Error(format string, args ...any) {
	if p.useColors {
		color.New(color.FgRed).Fprintf(p.err, "✗ "+format+"\n", args...) //nolint:errcheck
		return
	}
	fmt.Fprintf(p.err, "[ERROR] "+format+"\n", args...) //nolint:errcheck
}

// Print prints a plain message
func (p *Printer) Print(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...) //nolint:errcheck
}

// Header prints a section header
func (p *Printer) Header(title string) {
	rule := strings.Repeat("─", len([]rune(title)))
	if p.useColors {
		color.New(color.FgWhite, color.Bold).Fprintf(p.out, "\n%s\n", title) //nolint:errcheck
		color.New(color.FgWhite).Fprintf(p.out, "%s\n", rule)                //nolint:errcheck
		return
	}
	fmt.Fprintf(p.out, "\n%s\n%s\n", title, strings.Repeat("-", len([]rune(title)))) //nolint:errcheck
}

// KeyValue prints an aligned "key: value" line.
func (p *Printer) KeyValue(key string, value any) {
	label := fmt.Sprintf("%-18s", key+":")
	if p.useColors {
		label = color.New(color.Faint).Sprint(label)
	}
	fmt.Fprintf(p.out, "%s %v\n", label, value) //nolint:errcheck
}

// JSON writes v as indented JSON, for --json.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// StatusBadge renders a payment, payroll, exam or attendance status
func (p *Printer) StatusBadge(status string) string {
	if !p.useColors {
		return fmt.Sprintf("[%s]", status)
	}

	switch status {
	case "paid", "approved", "published", "present", "closed":
		return color.GreenString(status)
	case "overdue", "rejected", "absent", "void", "cancelled":
		return color.RedString(status)
	case "pending", "draft", "late":
		return color.YellowString(status)
	default:
		return color.WhiteString(status)
	}
}

// Bold returns text in bold
func (p *Printer) Bold(text string) string {
	if p.useColors {
		return color.New(color.Bold).Sprint(text)
	}
	return text
}

// Dim returns dimmed text
func (p *Printer) Dim(text string) string {
	if p.useColors {
		return color.New(color.Faint).Sprint(text)
	}
	return text
}
