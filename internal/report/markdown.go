package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mkitagawa/pidate/internal/model"
	"github.com/nao1215/markdown"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MarkdownWriter outputs results in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	// printer formats grouped integers.
	printer *message.Printer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		printer:    message.NewPrinter(language.English),
	}
}

// Write renders the result in Markdown format.
func (w *MarkdownWriter) Write(result *model.MatchResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)

	if result.Found {
		w.writeMatch(md, result)
	} else {
		md.Note(fmt.Sprintf("%s. Increase the digit budget and try again.", result.Message))
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with the search parameters.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.MatchResult) {
	md.H1("Pi Digit Search")
	md.PlainText("")

	status := "❌ Not found"
	if result.Found {
		status = "✅ Found"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Pattern", "`" + result.Pattern + "`"},
			{"Digits Searched", w.printer.Sprintf("%d", result.DigitsSearched)},
			{"Status", status},
		},
	})
	md.PlainText("")
}

// writeMatch writes the match position and derived analogies.
func (w *MarkdownWriter) writeMatch(md *markdown.Markdown, result *model.MatchResult) {
	md.H2("Match")
	md.PlainText("")

	rows := [][]string{
		{"Offset", w.printer.Sprintf("%d", result.Offset)},
	}
	if d := result.WritingDuration; d != nil {
		rows = append(rows, []string{
			"Writing Time",
			fmt.Sprintf("%d h %d min at %d s per digit", d.Hours, d.Minutes, model.SecondsPerDigit),
		})
	}
	if p := result.BookPosition; p != nil {
		rows = append(rows, []string{
			"Book Position",
			"page " + strconv.Itoa(p.Page) + ", line " + strconv.Itoa(p.Line),
		})
	}
	if a := result.WalkingAnalogy; a != nil {
		if a.UseKilometers {
			rows = append(rows, []string{
				"Walking Distance",
				fmt.Sprintf("%.2f km (about %.1f hours on foot)", a.Kilometers, a.WalkingHours),
			})
		} else {
			rows = append(rows, []string{
				"Walking Distance",
				fmt.Sprintf("%.1f m (about %d steps)", a.Meters, a.Steps),
			})
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Analogy", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	md.H2("Context")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightText, result.Context)
	md.PlainText("")
}
