package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/hoyoauth/internal/model"
)

// MarkdownWriter renders reports as a Markdown document.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter.
func NewMarkdownWriter(output io.Writer, opts ...Option) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output, opts)}
}

// Write implements Writer.
func (w *MarkdownWriter) Write(reports []*model.LoginReport) (int, error) {
	md := markdown.NewMarkdown(w.output)
	summary := NewSummary(reports)

	md.H1("hoyoauth Login Report")
	md.PlainText("")

	w.writeSummary(md, summary)
	w.writeResults(md, reports)
	w.writeSessions(md, reports)

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by hoyoauth %s on %s*", w.version, time.Now().UTC().Format("2006-01-02 15:04:05 MST"))

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, s Summary) {
	md.H2("Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Outcome", "Count"},
		Rows: [][]string{
			{"Succeeded", strconv.Itoa(s.Succeeded)},
			{"Challenged", strconv.Itoa(s.Challenged)},
			{"Failed", strconv.Itoa(s.Failed)},
			{"Cancelled", strconv.Itoa(s.Cancelled)},
			{"**Total**", "**" + strconv.Itoa(s.Total) + "**"},
		},
	})
	md.PlainText("")

	if s.Total > 1 {
		w.writePieChart(md, s)
	}

	switch {
	case s.Total == 0:
		md.Note("No accounts were processed.")
	case s.AllSucceeded():
		md.Tip("Every login produced a session.")
	case s.Challenged > 0:
		md.Importantf("%d login(s) stopped at a challenge that was not solved.", s.Challenged)
	case s.Failed > 0:
		md.Warningf("%d login(s) failed.", s.Failed)
	default:
		md.Cautionf("%d login(s) were cancelled.", s.Cancelled)
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Login outcomes"),
		piechart.WithShowData(true),
	)
	for _, part := range []struct {
		label string
		n     int
	}{
		{"Succeeded", s.Succeeded},
		{"Challenged", s.Challenged},
		{"Failed", s.Failed},
		{"Cancelled", s.Cancelled},
	} {
		if part.n > 0 {
			chart.LabelAndIntValue(part.label, uint64(part.n))
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeResults(md *markdown.Markdown, reports []*model.LoginReport) {
	md.H2("Results")
	md.PlainText("")

	if len(reports) == 0 {
		md.PlainText("No results.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(reports))
	for i, r := range reports {
		retcode := "-"
		if r.Retcode != 0 {
			retcode = strconv.Itoa(r.Retcode)
		}
		detail := r.ChallengeKind
		if detail == "" {
			detail = orDash(truncateString(r.Error, 60))
		}
		rows[i] = []string{
			displayName(r),
			"`" + r.Account + "`",
			r.Region.String() + " / " + r.Kind.String(),
			string(r.Outcome),
			retcode,
			strconv.Itoa(r.Sends),
			r.Duration.Round(time.Millisecond).String(),
			detail,
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Name", "Account", "Flow", "Outcome", "Retcode", "Requests", "Duration", "Detail"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeSessions(md *markdown.Markdown, reports []*model.LoginReport) {
	var sessions []*model.LoginReport
	for _, r := range reports {
		if r.Session != nil {
			sessions = append(sessions, r)
		}
	}
	if len(sessions) == 0 {
		return
	}

	md.H2("Sessions")
	md.PlainText("")
	if !w.showTokens {
		md.Note("Token values are masked. Run with --show-tokens to print them.")
		md.PlainText("")
	}
	for _, r := range sessions {
		values := w.sessionValues(r)
		rows := make([][]string, 0, len(values))
		for _, name := range sortedKeys(values) {
			rows = append(rows, []string{"`" + name + "`", "`" + values[name] + "`"})
		}
		md.H3(displayName(r))
		md.PlainText("")
		md.Table(markdown.TableSet{Header: []string{"Cookie", "Value"}, Rows: rows})
		md.PlainText("")
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncateString truncates s to maxLen bytes with an ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
