package auth

import (
	"context"
	"net/http"

	"github.com/nao1215/hoyoauth/internal/classify"
	"github.com/nao1215/hoyoauth/internal/ds"
	"github.com/nao1215/hoyoauth/internal/model"
)

const actionVerifyForComponent = "verify_for_component"

type sendEmailBody struct {
	ActionType   string `json:"action_type"`
	ActionTicket string `json:"action_ticket"`
}

type verifyEmailBody struct {
	ActionType   string `json:"action_type"`
	ActionTicket string `json:"action_ticket"`
	EmailCaptcha string `json:"email_captcha"`
	VerifyMethod int    `json:"verify_method"`
}

// AppLogin logs in the way the HoYoLAB app does. New devices may be asked
// to verify an emailed code; the solver handles that when it implements
// OTPProvider.
func (c *Client) AppLogin(ctx context.Context, account, password string, opts ...CallOption) (*model.AppLoginResult, error) {
	encAccount, err := c.encrypt(account, model.RegionOverseas)
	if err != nil {
		return nil, err
	}
	encPassword, err := c.encrypt(password, model.RegionOverseas)
	if err != nil {
		return nil, err
	}
	body, err := marshalBody(passwordBody{Account: encAccount, Password: encPassword})
	if err != nil {
		return nil, err
	}

	env, err := c.execute(ctx, endpoint{
		name:    "app_login",
		method:  http.MethodPost,
		url:     c.endpoints.AppLogin,
		headers: appLoginHeaders,
		sign:    func([]byte) string { return c.signer.Sign(ds.SaltAppLogin) },
		rules:   classify.Rules{CaptchaCodes: []int{-3101}, EmailVerifyCodes: []int{-3239}},
	}, body, newCallOptions(opts))
	if err != nil {
		return nil, err
	}

	v, err := extract(env, appFields)
	if err != nil {
		return nil, err
	}
	res := &model.AppLoginResult{
		SToken:       v[model.SToken],
		LTUIDV2:      v[model.LTUIDV2],
		LTMidV2:      v[model.LTMidV2],
		AccountIDV2:  v[model.AccountIDV2],
		AccountMidV2: v[model.AccountMidV2],
	}
	if err := c.plant(model.RegionOverseas, res); err != nil {
		return nil, err
	}
	return res, nil
}

// SendVerificationEmail asks the server to mail a code for ticket.
func (c *Client) SendVerificationEmail(ctx context.Context, ticket model.ActionTicket, opts ...CallOption) error {
	body, err := marshalBody(sendEmailBody{ActionType: actionVerifyForComponent, ActionTicket: ticket.Ticket})
	if err != nil {
		return err
	}
	_, err = c.execute(ctx, endpoint{
		name:    "send_verification_email",
		method:  http.MethodPost,
		url:     c.endpoints.SendVerificationEmail,
		headers: emailHeaders,
		rules:   classify.Rules{CaptchaCodes: []int{-3101}, DataOptional: true},
	}, body, newCallOptions(opts))
	return err
}

// VerifyEmail submits the mailed code for ticket. Afterwards the ticket
// can be attached to a login with NewEmailVerifyProof.
func (c *Client) VerifyEmail(ctx context.Context, code string, ticket model.ActionTicket, opts ...CallOption) error {
	body, err := marshalBody(verifyEmailBody{
		ActionType:   actionVerifyForComponent,
		ActionTicket: ticket.Ticket,
		EmailCaptcha: code,
		VerifyMethod: 2,
	})
	if err != nil {
		return err
	}
	_, err = c.execute(ctx, endpoint{
		name:    "verify_email",
		method:  http.MethodPost,
		url:     c.endpoints.VerifyEmail,
		headers: emailHeaders,
		rules:   classify.Rules{DataOptional: true},
	}, body, newCallOptions(opts))
	return err
}
