package report

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/nao1215/hoyoauth/internal/model"
)

const ruleWidth = 70

// SimpleWriter renders reports as plain text for the terminal.
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter.
func NewSimpleWriter(output io.Writer, opts ...Option) *SimpleWriter {
	return &SimpleWriter{baseWriter: newBaseWriter(output, opts)}
}

// Write implements Writer.
func (w *SimpleWriter) Write(reports []*model.LoginReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb)
	for _, r := range reports {
		w.writeResult(&sb, r)
	}
	if len(reports) > 1 {
		w.writeSummary(&sb, NewSummary(reports))
	}
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("                        HOYOAUTH LOGIN REPORT\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")
}

func (w *SimpleWriter) writeResult(sb *strings.Builder, r *model.LoginReport) {
	fmt.Fprintf(sb, "[%s] %s\n", outcomeIndicator(r.Outcome), displayName(r))
	fmt.Fprintf(sb, "    Account:  %s\n", r.Account)
	fmt.Fprintf(sb, "    Flow:     %s / %s\n", r.Region, r.Kind)
	fmt.Fprintf(sb, "    Outcome:  %s\n", r.Outcome)
	fmt.Fprintf(sb, "    Requests: %d in %s\n", r.Sends, r.Duration.Round(time.Millisecond))

	if r.Retcode != 0 {
		fmt.Fprintf(sb, "    Retcode:  %d\n", r.Retcode)
	}
	if r.ChallengeKind != "" {
		fmt.Fprintf(sb, "    Challenge: %s (unresolved)\n", r.ChallengeKind)
	}
	if r.Error != "" {
		fmt.Fprintf(sb, "    Error:    %s\n", r.Error)
	}
	if w.verbose {
		if r.ErrorKind != "" {
			fmt.Fprintf(sb, "    Kind:     %s\n", r.ErrorKind)
		}
		if len(r.PerformedSteps) > 0 {
			fmt.Fprintf(sb, "    Steps:    %s\n", strings.Join(r.PerformedSteps, ", "))
		}
	}

	if values := w.sessionValues(r); len(values) > 0 {
		sb.WriteString("    Session:\n")
		for _, name := range sortedKeys(values) {
			fmt.Fprintf(sb, "      %-16s %s\n", name, values[name])
		}
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeSummary(sb *strings.Builder, s Summary) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
	fmt.Fprintf(sb, "  SUCCEEDED:  %d\n", s.Succeeded)
	fmt.Fprintf(sb, "  CHALLENGED: %d\n", s.Challenged)
	fmt.Fprintf(sb, "  FAILED:     %d\n", s.Failed)
	fmt.Fprintf(sb, "  CANCELLED:  %d\n", s.Cancelled)
	fmt.Fprintf(sb, "  TOTAL:      %d accounts, %d requests\n\n", s.Total, s.Sends)
}

func outcomeIndicator(o model.Outcome) string {
	switch o {
	case model.OutcomeSuccess:
		return "OK"
	case model.OutcomeChallenge:
		return "??"
	case model.OutcomeCancelled:
		return "--"
	default:
		return "!!"
	}
}

func displayName(r *model.LoginReport) string {
	if r.Name != "" {
		return r.Name
	}
	return r.Account
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
