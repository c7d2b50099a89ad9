package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/nao1215/hoyoauth/internal/database"
)

const historyTimeLayout = "2006-01-02 15:04:05"

// WriteHistory renders audit log rows as a Markdown table.
func WriteHistory(out io.Writer, attempts []database.Attempt) error {
	md := markdown.NewMarkdown(out)
	if len(attempts) == 0 {
		md.PlainText("No recorded attempts.")
		return md.Build()
	}

	rows := make([][]string, len(attempts))
	for i, a := range attempts {
		retcode := "-"
		if a.Retcode != 0 {
			retcode = strconv.Itoa(a.Retcode)
		}
		rows[i] = []string{
			a.StartedAt.Local().Format(historyTimeLayout),
			orDash(a.Name),
			a.Account,
			a.Region + " / " + a.Kind,
			string(a.Outcome),
			retcode,
			orDash(a.ChallengeKind),
			strconv.Itoa(a.Sends),
			a.Duration.Round(time.Millisecond).String(),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Started", "Name", "Account", "Flow", "Outcome", "Retcode", "Challenge", "Requests", "Duration"},
		Rows:   rows,
	})
	return md.Build()
}

// WriteSummaries renders one row per account.
func WriteSummaries(out io.Writer, summaries []database.AccountSummary) error {
	md := markdown.NewMarkdown(out)
	if len(summaries) == 0 {
		md.PlainText("No recorded attempts.")
		return md.Build()
	}

	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		rows[i] = []string{
			orDash(s.Name),
			s.Account,
			strconv.Itoa(s.Attempts),
			strconv.Itoa(s.Successes),
			s.LastAttempt.Local().Format(historyTimeLayout),
			string(s.LastOutcome),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Name", "Account", "Attempts", "Successes", "Last attempt", "Last outcome"},
		Rows:   rows,
	})
	return md.Build()
}
