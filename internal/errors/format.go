package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	// Color functions with auto-detection for terminal support.
	// These fall back gracefully when colors are unavailable.
	errorLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	errorMsg    = color.New(color.FgRed).SprintFunc()
	fixLabel    = color.New(color.FgGreen, color.Bold).SprintFunc()
	usageLabel  = color.New(color.FgCyan, color.Bold).SprintFunc()
	usageText   = color.New(color.FgCyan).SprintFunc()
	bullet      = color.New(color.FgGreen).SprintFunc()
	categoryFmt = color.New(color.FgYellow).SprintFunc()
)

// plain is used when colours are off; every part is printed unchanged.
func plain(a ...interface{}) string {
	return fmt.Sprint(a...)
}

type palette struct {
	errorLabel, errorMsg, fixLabel, usageLabel, usageText, bullet, category func(...interface{}) string
}

func paletteFor(useColors bool) palette {
	if !useColors {
		return palette{plain, plain, plain, plain, plain, plain, plain}
	}
	return palette{errorLabel, errorMsg, fixLabel, usageLabel, usageText, bullet, categoryFmt}
}

// FormatError formats a CLIError for display in the terminal.
// Colors follow github.com/fatih/color's detection (NO_COLOR, non-TTY output).
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, !color.NoColor)
}

// FormatErrorPlain formats a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, false)
}

func formatError(err *CLIError, useColors bool) string {
	p := paletteFor(useColors)
	var sb strings.Builder

	sb.WriteString(p.errorLabel("Error"))
	sb.WriteString(" [")
	sb.WriteString(p.category(err.Category.String()))
	sb.WriteString("]: ")
	// Multi-line messages (section lists) keep their layout.
	sb.WriteString(p.errorMsg(err.Message))
	sb.WriteString("\n")

	if err.Usage != "" {
		sb.WriteString("\n")
		sb.WriteString(p.usageLabel("Usage: "))
		sb.WriteString(p.usageText(err.Usage))
		sb.WriteString("\n")
	}

	if len(err.Remediation) > 0 {
		sb.WriteString("\n")
		sb.WriteString(p.fixLabel("To fix this:"))
		sb.WriteString("\n")
		for _, step := range err.Remediation {
			sb.WriteString("  ")
			sb.WriteString(p.bullet("•"))
			sb.WriteString(" ")
			sb.WriteString(step)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// FprintError prints a formatted CLIError to the given writer.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}

// FormatSimpleError formats a regular error with a category.
// Use this when you have a plain error and want structured output.
func FormatSimpleError(err error, category ErrorCategory) string {
	if err == nil {
		return ""
	}
	return FormatError(Wrap(err, category))
}

// FprintAny prints err, formatting it as a Runtime error unless its chain
// already holds a CLIError.
func FprintAny(w io.Writer, err error) {
	if err == nil {
		return
	}
	if cliErr := AsCLIError(err); cliErr != nil {
		FprintError(w, cliErr)
		return
	}
	fmt.Fprint(w, FormatSimpleError(err, Runtime))
}
