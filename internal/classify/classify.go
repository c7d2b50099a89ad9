package classify

import (
	"fmt"
	"slices"

	"github.com/nao1215/hoyoauth/internal/apierr"
	"github.com/nao1215/hoyoauth/internal/model"
)

// Kind is the classification of a response.
type Kind int

const (
	// Success means the response carries what the caller asked for.
	Success Kind = iota
	// CaptchaRequired means a Geetest challenge must be solved first.
	CaptchaRequired
	// EmailVerifyRequired means an emailed code must be verified first.
	EmailVerifyRequired
	// Failure means the request failed; Outcome.Err says why.
	Failure
)

// String returns the classification name.
func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case CaptchaRequired:
		return "captcha_required"
	case EmailVerifyRequired:
		return "email_verify_required"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// Rules is the challenge configuration of one endpoint.
type Rules struct {
	// CaptchaCodes are retcodes answered with an x-rpc-aigis challenge.
	CaptchaCodes []int
	// EmailVerifyCodes are retcodes answered with an x-rpc-verify ticket.
	EmailVerifyCodes []int
	// DataOptional accepts retcode 0 without a data payload.
	DataOptional bool
}

// Outcome is the result of classifying one response.
type Outcome struct {
	Kind      Kind
	Challenge *model.Challenge
	Err       error
}

// Classify maps an envelope to an outcome.
//
// A challenge retcode without a parseable challenge header is a Failure
// wrapping apierr.ErrMalformedChallenge. Any other non-zero retcode is a
// Failure carrying apierr.FromCode. Retcode 0 is a Success when the data
// payload is present or optional.
func Classify(env *model.ResponseEnvelope, rules Rules) Outcome {
	switch {
	case slices.Contains(rules.CaptchaCodes, env.Retcode):
		header := env.Header.Get(model.HeaderAigis)
		if header == "" {
			return failure(fmt.Errorf("%w: retcode %d without %s header", apierr.ErrMalformedChallenge, env.Retcode, model.HeaderAigis))
		}
		mmt, err := model.ParseSessionMMT(header)
		if err != nil {
			return failure(fmt.Errorf("%w: %w", apierr.ErrMalformedChallenge, err))
		}
		return Outcome{Kind: CaptchaRequired, Challenge: model.NewCaptchaChallenge(mmt)}

	case slices.Contains(rules.EmailVerifyCodes, env.Retcode):
		header := env.Header.Get(model.HeaderVerify)
		if header == "" {
			return failure(fmt.Errorf("%w: retcode %d without %s header", apierr.ErrMalformedChallenge, env.Retcode, model.HeaderVerify))
		}
		ticket, err := model.ParseActionTicket(header)
		if err != nil {
			return failure(fmt.Errorf("%w: %w", apierr.ErrMalformedChallenge, err))
		}
		return Outcome{Kind: EmailVerifyRequired, Challenge: model.NewEmailVerifyChallenge(ticket)}

	case env.Retcode != 0:
		return failure(apierr.FromCode(env.Retcode, env.Message))

	case !env.HasData() && !rules.DataOptional:
		return failure(fmt.Errorf("%w: retcode 0 with empty data", apierr.ErrUnexpectedResponse))

	default:
		return Outcome{Kind: Success}
	}
}

func failure(err error) Outcome {
	return Outcome{Kind: Failure, Err: err}
}
