package auth

import (
	"context"
	"fmt"

	"github.com/nao1215/hoyoauth/internal/model"
)

// Login runs the flow an account is configured for.
func (c *Client) Login(ctx context.Context, a model.Account, opts ...CallOption) (model.SessionResult, error) {
	var (
		res model.SessionResult
		err error
	)
	switch a.Kind {
	case model.LoginKindWeb, model.LoginKindCNWeb:
		if a.Account == "" || a.Password == "" {
			return nil, fmt.Errorf("%w: %s login needs account and password", ErrMissingCredentials, a.Kind)
		}
		if a.Kind != model.PasswordKind(a.Region) {
			return nil, fmt.Errorf("%w: %s in %s", ErrUnsupportedLogin, a.Kind, a.Region)
		}
		res, err = c.LoginWithPassword(ctx, a.Region, a.Account, a.Password, opts...)

	case model.LoginKindApp:
		if a.Region != model.RegionOverseas {
			return nil, fmt.Errorf("%w: %s in %s", ErrUnsupportedLogin, a.Kind, a.Region)
		}
		if a.Account == "" || a.Password == "" {
			return nil, fmt.Errorf("%w: app login needs account and password", ErrMissingCredentials)
		}
		res, err = c.AppLogin(ctx, a.Account, a.Password, opts...)

	case model.LoginKindMobile:
		if a.Region != model.RegionChinese {
			return nil, fmt.Errorf("%w: %s in %s", ErrUnsupportedLogin, a.Kind, a.Region)
		}
		if a.Mobile == "" {
			return nil, fmt.Errorf("%w: mobile login needs a mobile number", ErrMissingCredentials)
		}
		res, err = c.LoginWithMobile(ctx, a.Mobile, opts...)

	case model.LoginKindQRCode:
		if a.Region != model.RegionChinese {
			return nil, fmt.Errorf("%w: %s in %s", ErrUnsupportedLogin, a.Kind, a.Region)
		}
		res, err = c.loginWithPresentedQRCode(ctx, opts)

	default:
		return nil, model.ErrUnknownLoginKind
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) loginWithPresentedQRCode(ctx context.Context, opts []CallOption) (*model.QRLoginResult, error) {
	presenter, ok := c.solver.(QRPresenter)
	if !ok {
		return nil, ErrNoQRPresenter
	}
	qr, err := c.CreateQRCode(ctx, opts...)
	if err != nil {
		return nil, err
	}
	if err := presenter.PresentQRCode(ctx, *qr); err != nil {
		return nil, err
	}
	return c.LoginWithQRCode(ctx, qr, traceOnly(opts)...)
}
