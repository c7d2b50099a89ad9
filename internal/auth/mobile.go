package auth

import (
	"context"
	"net/http"

	"github.com/nao1215/hoyoauth/internal/classify"
	"github.com/nao1215/hoyoauth/internal/ds"
	"github.com/nao1215/hoyoauth/internal/model"
)

// mainlandAreaCode is the only area code the Chinese passport accepts.
const mainlandAreaCode = "+86"

type mobileOTPBody struct {
	Mobile   string `json:"mobile"`
	AreaCode string `json:"area_code"`
}

type mobileLoginBody struct {
	Mobile   string `json:"mobile"`
	AreaCode string `json:"area_code"`
	Captcha  string `json:"captcha"`
}

func (c *Client) encryptMobile(mobile string) (string, string, error) {
	encMobile, err := c.encrypt(mobile, model.RegionChinese)
	if err != nil {
		return "", "", err
	}
	encArea, err := c.encrypt(mainlandAreaCode, model.RegionChinese)
	if err != nil {
		return "", "", err
	}
	return encMobile, encArea, nil
}

// SendMobileOTP asks the server to text a login code to mobile.
func (c *Client) SendMobileOTP(ctx context.Context, mobile string, opts ...CallOption) error {
	encMobile, encArea, err := c.encryptMobile(mobile)
	if err != nil {
		return err
	}
	body, err := marshalBody(mobileOTPBody{Mobile: encMobile, AreaCode: encArea})
	if err != nil {
		return err
	}
	_, err = c.execute(ctx, endpoint{
		name:    "send_mobile_otp",
		method:  http.MethodPost,
		url:     c.endpoints.MobileOTP,
		headers: withHeader(cnLoginHeaders, "x-rpc-device_id", c.deviceID),
		rules:   classify.Rules{CaptchaCodes: []int{-3101}, DataOptional: true},
	}, body, newCallOptions(opts))
	return err
}

// MobileLogin logs in with a texted code.
func (c *Client) MobileLogin(ctx context.Context, mobile, otp string, opts ...CallOption) (*model.MobileLoginResult, error) {
	encMobile, encArea, err := c.encryptMobile(mobile)
	if err != nil {
		return nil, err
	}
	body, err := marshalBody(mobileLoginBody{Mobile: encMobile, AreaCode: encArea, Captcha: otp})
	if err != nil {
		return nil, err
	}

	env, err := c.execute(ctx, endpoint{
		name:    "mobile_login",
		method:  http.MethodPost,
		url:     c.endpoints.MobileLogin,
		headers: withHeader(cnLoginHeaders, "x-rpc-device_id", c.deviceID),
		sign:    func([]byte) string { return c.signer.Sign(ds.SaltCNSignin) },
	}, body, newCallOptions(opts))
	if err != nil {
		return nil, err
	}

	v, err := extract(env, mobileFields)
	if err != nil {
		return nil, err
	}
	res := &model.MobileLoginResult{
		CookieTokenV2: v[model.CookieTokenV2],
		AccountMidV2:  v[model.AccountMidV2],
		AccountIDV2:   v[model.AccountIDV2],
		LTokenV2:      v[model.LTokenV2],
		LTMidV2:       v[model.LTMidV2],
	}
	if err := c.plant(model.RegionChinese, res); err != nil {
		return nil, err
	}
	return res, nil
}

// LoginWithMobile texts a code to mobile, asks the solver for it and logs in.
func (c *Client) LoginWithMobile(ctx context.Context, mobile string, opts ...CallOption) (*model.MobileLoginResult, error) {
	otp, ok := c.solver.(OTPProvider)
	if !ok {
		return nil, ErrNoOTPProvider
	}
	if err := c.SendMobileOTP(ctx, mobile, opts...); err != nil {
		return nil, err
	}
	code, err := otp.OTP(ctx, OTPSMS)
	if err != nil {
		return nil, err
	}
	// A proof passed in opts was spent on the OTP request.
	return c.MobileLogin(ctx, mobile, code, traceOnly(opts)...)
}

// traceOnly drops a proof from opts, keeping the trace hook.
func traceOnly(opts []CallOption) []CallOption {
	co := newCallOptions(opts)
	if co.trace == nil {
		return nil
	}
	return []CallOption{WithTrace(co.trace)}
}
