package auth

// Endpoints holds every URL the flows call. Tests point them at a local server.
type Endpoints struct {
	WebLogin              string
	CNWebLogin            string
	AppLogin              string
	SendVerificationEmail string
	VerifyEmail           string
	MobileOTP             string
	MobileLogin           string
	CreateQRCode          string
	CheckQRCode           string
	VerifyMMT             string

	// OverseasCookieURL and ChineseCookieURL name the sites whose
	// registrable domain receives issued tokens.
	OverseasCookieURL string
	ChineseCookieURL  string
}

// DefaultEndpoints returns the production URLs.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		WebLogin:              "https://sg-public-api.hoyolab.com/account/ma-passport/api/webLoginByPassword",
		CNWebLogin:            "https://passport-api.miyoushe.com/account/ma-cn-passport/web/loginByPassword",
		AppLogin:              "https://sg-public-api.hoyoverse.com/account/ma-passport/api/appLoginByPassword",
		SendVerificationEmail: "https://sg-public-api.hoyoverse.com/account/ma-verifier/api/createEmailCaptchaByActionTicket",
		VerifyEmail:           "https://sg-public-api.hoyoverse.com/account/ma-verifier/api/verifyActionTicketPartly",
		MobileOTP:             "https://passport-api.miyoushe.com/account/ma-cn-verifier/verifier/createLoginCaptcha",
		MobileLogin:           "https://passport-api.miyoushe.com/account/ma-cn-passport/web/loginByMobileCaptcha",
		CreateQRCode:          "https://passport-api.miyoushe.com/account/ma-cn-passport/web/createQRLogin",
		CheckQRCode:           "https://passport-api.miyoushe.com/account/ma-cn-passport/web/queryQRLoginStatus",
		VerifyMMT:             "https://sg-public-api.hoyolab.com/event/toolcomsrv/risk/verifyGeetest",
		OverseasCookieURL:     "https://www.hoyolab.com",
		ChineseCookieURL:      "https://www.miyoushe.com",
	}
}
