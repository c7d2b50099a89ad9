package auth

import (
	"context"
	"net/http"

	"github.com/nao1215/hoyoauth/internal/classify"
	"github.com/nao1215/hoyoauth/internal/ds"
	"github.com/nao1215/hoyoauth/internal/model"
)

type webLoginBody struct {
	Account   string `json:"account"`
	Password  string `json:"password"`
	TokenType int    `json:"token_type"`
}

type passwordBody struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}

// WebLogin logs in to HoYoLAB with an account name or email and a password.
func (c *Client) WebLogin(ctx context.Context, account, password string, opts ...CallOption) (*model.WebLoginResult, error) {
	encAccount, err := c.encrypt(account, model.RegionOverseas)
	if err != nil {
		return nil, err
	}
	encPassword, err := c.encrypt(password, model.RegionOverseas)
	if err != nil {
		return nil, err
	}
	body, err := marshalBody(webLoginBody{Account: encAccount, Password: encPassword, TokenType: 6})
	if err != nil {
		return nil, err
	}

	env, err := c.execute(ctx, endpoint{
		name:    "web_login",
		method:  http.MethodPost,
		url:     c.endpoints.WebLogin,
		headers: webLoginHeaders,
		sign:    func([]byte) string { return c.signer.Sign(ds.SaltOverseas) },
		rules:   classify.Rules{CaptchaCodes: []int{-3101}},
	}, body, newCallOptions(opts))
	if err != nil {
		return nil, err
	}

	v, err := extract(env, webFields)
	if err != nil {
		return nil, err
	}
	res := &model.WebLoginResult{
		CookieTokenV2: v[model.CookieTokenV2],
		AccountMidV2:  v[model.AccountMidV2],
		AccountIDV2:   v[model.AccountIDV2],
		LTokenV2:      v[model.LTokenV2],
		LTMidV2:       v[model.LTMidV2],
		LTUIDV2:       v[model.LTUIDV2],
	}
	if st, ok := lookup(env, field{name: model.SToken, fallbacks: []string{"token.token"}}); ok {
		res.SToken = st
	}
	if err := c.plant(model.RegionOverseas, res); err != nil {
		return nil, err
	}
	return res, nil
}

// CNWebLogin logs in to miyoushe with a password.
func (c *Client) CNWebLogin(ctx context.Context, account, password string, opts ...CallOption) (*model.CNWebLoginResult, error) {
	encAccount, err := c.encrypt(account, model.RegionChinese)
	if err != nil {
		return nil, err
	}
	encPassword, err := c.encrypt(password, model.RegionChinese)
	if err != nil {
		return nil, err
	}
	body, err := marshalBody(passwordBody{Account: encAccount, Password: encPassword})
	if err != nil {
		return nil, err
	}

	env, err := c.execute(ctx, endpoint{
		name:    "cn_web_login",
		method:  http.MethodPost,
		url:     c.endpoints.CNWebLogin,
		headers: withHeader(cnLoginHeaders, "x-rpc-device_id", c.deviceID),
		sign:    func(b []byte) string { return c.signer.SignPassport(string(b)) },
		rules:   classify.Rules{CaptchaCodes: []int{-3102}},
	}, body, newCallOptions(opts))
	if err != nil {
		return nil, err
	}

	v, err := extract(env, webFields)
	if err != nil {
		return nil, err
	}
	res := &model.CNWebLoginResult{
		CookieTokenV2: v[model.CookieTokenV2],
		AccountMidV2:  v[model.AccountMidV2],
		AccountIDV2:   v[model.AccountIDV2],
		LTokenV2:      v[model.LTokenV2],
		LTMidV2:       v[model.LTMidV2],
		LTUIDV2:       v[model.LTUIDV2],
	}
	if err := c.plant(model.RegionChinese, res); err != nil {
		return nil, err
	}
	return res, nil
}

// LoginWithPassword runs the password web login of a region.
func (c *Client) LoginWithPassword(ctx context.Context, region model.Region, account, password string, opts ...CallOption) (model.SessionResult, error) {
	var (
		res model.SessionResult
		err error
	)
	switch region {
	case model.RegionOverseas:
		res, err = c.WebLogin(ctx, account, password, opts...)
	case model.RegionChinese:
		res, err = c.CNWebLogin(ctx, account, password, opts...)
	default:
		return nil, model.ErrUnknownRegion
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}
