package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mkitagawa/pidate/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SimpleWriter outputs human-readable console reports with the icon
// prefixes the original tool used. Large counts are printed with digit
// grouping so "1000000 digits" reads as "1,000,000 digits".
type SimpleWriter struct {
	baseWriter

	// fullTrace enables printing the full position trace. The trace grows
	// with the match offset (megabytes at large budgets), so it stays
	// opt-in for console output even though the result always carries it.
	fullTrace bool

	// printer formats grouped integers.
	printer *message.Printer
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithFullTrace enables printing the full position trace.
func WithFullTrace(enabled bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.fullTrace = enabled
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		printer:    message.NewPrinter(language.English),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write renders the result in human-readable format.
func (w *SimpleWriter) Write(result *model.MatchResult) (int, error) {
	var sb strings.Builder

	if !result.Found {
		w.writeMiss(&sb, result)
	} else {
		w.writeMatch(&sb, result)
	}

	return w.output.Write([]byte(sb.String()))
}

// writeMiss renders a not-found outcome with guidance.
func (w *SimpleWriter) writeMiss(sb *strings.Builder, result *model.MatchResult) {
	sb.WriteString(w.printer.Sprintf(
		"❌ The digit sequence '%s' was not found in the first %d fractional digits of pi.\n",
		result.Pattern, result.DigitsSearched))
	sb.WriteString("💡 Tip: increase the digit budget (--digits) and try again.\n")
}

// writeMatch renders a found outcome with all derived analogies.
func (w *SimpleWriter) writeMatch(sb *strings.Builder, result *model.MatchResult) {
	sb.WriteString(fmt.Sprintf("✅ Found! Your digit sequence: %s\n", result.Pattern))
	sb.WriteString(w.printer.Sprintf("📍 Position: offset %d after the decimal point\n", result.Offset))
	sb.WriteString(fmt.Sprintf("\n🔍 In pi: %s\n", result.Context))

	if d := result.WritingDuration; d != nil {
		sb.WriteString(fmt.Sprintf(
			"\n⏱️  Writing one digit every %d seconds, you would need %d hours and %d minutes to reach your date.\n",
			model.SecondsPerDigit, d.Hours, d.Minutes))
	}

	if p := result.BookPosition; p != nil {
		sb.WriteString(w.printer.Sprintf(
			"\n📖 In a book with %d characters per line and %d lines per page, your date sits on page %d, line %d.\n",
			model.DigitsPerLine, model.LinesPerPage, p.Page, p.Line))
	}

	if a := result.WalkingAnalogy; a != nil {
		if a.UseKilometers {
			sb.WriteString(fmt.Sprintf(
				"\n🚶 If each digit were 3 mm wide, you would walk %.2f km (about %.1f hours on foot).\n",
				a.Kilometers, a.WalkingHours))
		} else {
			sb.WriteString(fmt.Sprintf(
				"\n🚶 If each digit were 3 mm wide, you would walk %.1f meters (about %d steps).\n",
				a.Meters, a.Steps))
		}
	}

	if w.fullTrace && result.FullPositionTrace != "" {
		sb.WriteString(fmt.Sprintf("\n🧵 Full position: %s\n", result.FullPositionTrace))
	}
}
