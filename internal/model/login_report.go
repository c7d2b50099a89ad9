package model

import "time"

// Outcome is the terminal state of one login attempt.
type Outcome string

const (
	// OutcomeSuccess means a session was issued.
	OutcomeSuccess Outcome = "success"
	// OutcomeChallenge means a challenge was left unresolved.
	OutcomeChallenge Outcome = "challenge"
	// OutcomeFailure means the server or the transport rejected the login.
	OutcomeFailure Outcome = "failure"
	// OutcomeCancelled means the caller abandoned the flow.
	OutcomeCancelled Outcome = "cancelled"
)

// LoginReport records one login flow for reports and the audit log.
// It never holds a password; the session is only rendered when asked for.
type LoginReport struct {
	Name      string    `json:"name,omitempty"`
	Account   string    `json:"account"`
	Region    Region    `json:"region"`
	Kind      LoginKind `json:"kind"`
	StartedAt time.Time `json:"started_at"`

	// Fingerprint is the stable digest of the account. See Account.Fingerprint.
	Fingerprint string `json:"fingerprint"`

	// Duration is the wall time of the whole flow, solver time included.
	Duration time.Duration `json:"duration_ns"`

	Outcome       Outcome `json:"outcome"`
	Retcode       int     `json:"retcode,omitempty"`
	ErrorKind     string  `json:"error_kind,omitempty"`
	Error         string  `json:"error,omitempty"`
	ChallengeKind string  `json:"challenge_kind,omitempty"`

	// Sends counts transport round-trips of the whole flow, retries and
	// verification calls included.
	Sends int `json:"sends"`

	// Session is set on success. Writers mask its values unless told otherwise.
	Session SessionResult `json:"-"`

	PerformedSteps []string `json:"performed_steps,omitempty"`
}

// NewLoginReport starts a report for an account. The identifier is masked.
func NewLoginReport(a Account) *LoginReport {
	return &LoginReport{
		Name:           a.Name,
		Account:        MaskIdentifier(a.Identifier()),
		Fingerprint:    a.Fingerprint(),
		Region:         a.Region,
		Kind:           a.Kind,
		StartedAt:      time.Now(),
		PerformedSteps: make([]string, 0),
	}
}

// AddStep records that a pipeline step ran.
func (r *LoginReport) AddStep(name string) {
	r.PerformedSteps = append(r.PerformedSteps, name)
}

// Succeeded reports whether a session was obtained.
func (r *LoginReport) Succeeded() bool {
	return r.Outcome == OutcomeSuccess && r.Session != nil
}
