package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nao1215/hoyoauth/internal/apierr"
	"github.com/nao1215/hoyoauth/internal/classify"
	"github.com/nao1215/hoyoauth/internal/model"
)

// maxSends bounds how often one request is sent: once plain, once with a proof.
const maxSends = 2

// TraceState is a step of the request loop.
type TraceState string

// Trace states in the order a flow passes through them.
const (
	TraceBuilding   TraceState = "building"
	TraceSent       TraceState = "sent"
	TraceClassified TraceState = "classified"
	TraceRetrying   TraceState = "retrying"
	TraceDone       TraceState = "done"
	TraceFailed     TraceState = "failed"
)

// TraceEvent describes one step of the request loop.
type TraceEvent struct {
	Endpoint string
	State    TraceState
	Attempt  int
	// Retcode is set from TraceClassified on.
	Retcode int
}

// TraceFunc observes the request loop. It is called synchronously.
type TraceFunc func(TraceEvent)

type callOptions struct {
	proof *model.ChallengeProof
	trace TraceFunc
}

// CallOption configures one flow invocation.
type CallOption func(*callOptions)

// WithProof attaches a proof obtained out-of-band to the first send. A
// challenge answered to a proven request is not solved again.
func WithProof(p *model.ChallengeProof) CallOption {
	return func(o *callOptions) {
		o.proof = p
	}
}

// WithTrace observes every step of the request loop.
func WithTrace(fn TraceFunc) CallOption {
	return func(o *callOptions) {
		o.trace = fn
	}
}

func newCallOptions(opts []CallOption) callOptions {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// endpoint describes one server call.
type endpoint struct {
	name    string
	method  string
	url     string
	headers map[string]string
	// sign computes the ds header from the body. nil sends no ds.
	sign  func(body []byte) string
	rules classify.Rules
}

// execute runs the send, classify, solve, resend loop for one endpoint and
// returns the successful envelope.
func (c *Client) execute(ctx context.Context, ep endpoint, body []byte, co callOptions) (*model.ResponseEnvelope, error) {
	proof := co.proof
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c.trace(co, TraceEvent{Endpoint: ep.name, State: TraceBuilding, Attempt: attempt})
		req, err := c.buildRequest(ep, body, proof)
		if err != nil {
			c.trace(co, TraceEvent{Endpoint: ep.name, State: TraceFailed, Attempt: attempt})
			return nil, err
		}
		proven := proof != nil
		proof = nil

		raw, err := c.transport.Send(ctx, req)
		if err != nil {
			c.trace(co, TraceEvent{Endpoint: ep.name, State: TraceFailed, Attempt: attempt})
			return nil, apierr.NewTransportError(err)
		}
		c.trace(co, TraceEvent{Endpoint: ep.name, State: TraceSent, Attempt: attempt})

		env, err := model.ParseEnvelope(raw)
		if err != nil {
			c.trace(co, TraceEvent{Endpoint: ep.name, State: TraceFailed, Attempt: attempt})
			return nil, fmt.Errorf("%s: %w: %w", ep.name, apierr.ErrUnexpectedResponse, err)
		}

		out := classify.Classify(env, ep.rules)
		c.trace(co, TraceEvent{Endpoint: ep.name, State: TraceClassified, Attempt: attempt, Retcode: env.Retcode})

		switch out.Kind {
		case classify.Success:
			c.trace(co, TraceEvent{Endpoint: ep.name, State: TraceDone, Attempt: attempt, Retcode: env.Retcode})
			return env, nil

		case classify.Failure:
			c.trace(co, TraceEvent{Endpoint: ep.name, State: TraceFailed, Attempt: attempt, Retcode: env.Retcode})
			return nil, out.Err

		default:
			if proven || attempt >= maxSends {
				c.trace(co, TraceEvent{Endpoint: ep.name, State: TraceFailed, Attempt: attempt, Retcode: env.Retcode})
				return nil, &apierr.ChallengeError{Challenge: out.Challenge}
			}
			proof, err = c.resolve(ctx, out.Challenge)
			if err != nil {
				c.trace(co, TraceEvent{Endpoint: ep.name, State: TraceFailed, Attempt: attempt, Retcode: env.Retcode})
				return nil, &apierr.ChallengeError{Challenge: out.Challenge, Cause: err}
			}
			c.trace(co, TraceEvent{Endpoint: ep.name, State: TraceRetrying, Attempt: attempt, Retcode: env.Retcode})
		}
	}
}

func (c *Client) buildRequest(ep endpoint, body []byte, proof *model.ChallengeProof) (*model.SignedRequest, error) {
	h := make(http.Header, len(ep.headers)+5)
	for k, v := range ep.headers {
		h.Set(k, v)
	}
	h.Set("x-rpc-language", string(c.lang))
	h.Set("x-rpc-lang", string(c.lang))
	if body != nil {
		h.Set("Content-Type", "application/json")
	}
	if ep.sign != nil {
		h.Set(model.HeaderDS, ep.sign(body))
	}
	if proof != nil {
		name, value, err := proof.Take()
		if err != nil {
			return nil, err
		}
		h.Set(name, value)
	}
	return model.NewSignedRequest(ep.method, ep.url, h, body), nil
}

// resolve turns a challenge into a proof for the retry.
func (c *Client) resolve(ctx context.Context, ch *model.Challenge) (*model.ChallengeProof, error) {
	c.logger.Info("resolving challenge", "challenge", ch.String())

	switch ch.Kind {
	case model.ChallengeCaptcha:
		proof, err := c.solver.SolveCaptcha(ctx, ch)
		if err != nil {
			return nil, err
		}
		if proof == nil {
			return nil, ErrNoProof
		}
		return proof, nil

	case model.ChallengeEmailVerify:
		otp, ok := c.solver.(OTPProvider)
		if !ok {
			return nil, ErrNoOTPProvider
		}
		if err := c.SendVerificationEmail(ctx, ch.Ticket); err != nil {
			return nil, fmt.Errorf("failed to send verification email: %w", err)
		}
		code, err := otp.OTP(ctx, OTPEmail)
		if err != nil {
			return nil, err
		}
		if err := c.VerifyEmail(ctx, code, ch.Ticket); err != nil {
			return nil, fmt.Errorf("failed to verify email: %w", err)
		}
		return model.NewEmailVerifyProof(ch.Ticket)

	default:
		return nil, fmt.Errorf("%w: unknown challenge kind %d", apierr.ErrMalformedChallenge, ch.Kind)
	}
}

func (c *Client) trace(co callOptions, ev TraceEvent) {
	c.logger.Debug("login step",
		"endpoint", ev.Endpoint,
		"state", string(ev.State),
		"attempt", ev.Attempt,
		"retcode", ev.Retcode,
	)
	if co.trace != nil {
		co.trace(ev)
	}
}

func marshalBody(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apierr.ErrSerialization, err)
	}
	return b, nil
}

func (c *Client) encrypt(plaintext string, region model.Region) (string, error) {
	s, err := c.encryptor.Encrypt(plaintext, region)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apierr.ErrCrypto, err)
	}
	return s, nil
}
