package report

import (
	"time"

	"github.com/nao1215/hoyoauth/internal/model"
)

// Summary counts the outcomes of one run.
type Summary struct {
	Total      int           `json:"total"`
	Succeeded  int           `json:"succeeded"`
	Challenged int           `json:"challenged"`
	Failed     int           `json:"failed"`
	Cancelled  int           `json:"cancelled"`
	Sends      int           `json:"sends"`
	Elapsed    time.Duration `json:"elapsed_ns"`
}

// NewSummary counts reports. Elapsed spans the earliest start to the
// latest end.
func NewSummary(reports []*model.LoginReport) Summary {
	s := Summary{Total: len(reports)}
	var first, last time.Time
	for _, r := range reports {
		switch r.Outcome {
		case model.OutcomeSuccess:
			s.Succeeded++
		case model.OutcomeChallenge:
			s.Challenged++
		case model.OutcomeCancelled:
			s.Cancelled++
		default:
			s.Failed++
		}
		s.Sends += r.Sends

		if r.StartedAt.IsZero() {
			continue
		}
		if first.IsZero() || r.StartedAt.Before(first) {
			first = r.StartedAt
		}
		if end := r.StartedAt.Add(r.Duration); end.After(last) {
			last = end
		}
	}
	if !first.IsZero() {
		s.Elapsed = last.Sub(first)
	}
	return s
}

// AllSucceeded reports whether every login produced a session.
func (s Summary) AllSucceeded() bool {
	return s.Total > 0 && s.Succeeded == s.Total
}
