package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/nao1215/hoyoauth/internal/apierr"
	"github.com/nao1215/hoyoauth/internal/model"
)

type qrTicketBody struct {
	Ticket string `json:"ticket"`
}

// CreateQRCode starts a QR login. The URL is meant to be rendered as a
// QR code and scanned with the miyoushe app.
func (c *Client) CreateQRCode(ctx context.Context, opts ...CallOption) (*model.QRCode, error) {
	env, err := c.execute(ctx, endpoint{
		name:    "create_qrcode",
		method:  http.MethodPost,
		url:     c.endpoints.CreateQRCode,
		headers: qrCodeHeaders,
	}, nil, newCallOptions(opts))
	if err != nil {
		return nil, err
	}

	ticket, url := env.Field("ticket").String(), env.Field("url").String()
	if ticket == "" || url == "" {
		return nil, fmt.Errorf("%w: QR code without ticket or url", apierr.ErrUnexpectedResponse)
	}
	return &model.QRCode{Ticket: ticket, URL: url}, nil
}

// CheckQRCode reports the state of a QR login. Once it is confirmed, the
// issued session is returned as well.
func (c *Client) CheckQRCode(ctx context.Context, ticket string, opts ...CallOption) (model.QRCodeStatus, *model.QRLoginResult, error) {
	body, err := marshalBody(qrTicketBody{Ticket: ticket})
	if err != nil {
		return "", nil, err
	}
	env, err := c.execute(ctx, endpoint{
		name:    "check_qrcode",
		method:  http.MethodPost,
		url:     c.endpoints.CheckQRCode,
		headers: qrCodeHeaders,
	}, body, newCallOptions(opts))
	if err != nil {
		return "", nil, err
	}

	raw := env.Field("status")
	if !raw.Exists() {
		return "", nil, fmt.Errorf("%w: QR status missing", apierr.ErrUnexpectedResponse)
	}
	status, err := model.ParseQRCodeStatus(raw.String())
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", apierr.ErrUnexpectedResponse, err)
	}
	if status != model.QRCodeConfirmed {
		return status, nil, nil
	}

	v, err := extract(env, webFields)
	if err != nil {
		return "", nil, err
	}
	res := &model.QRLoginResult{
		CookieTokenV2: v[model.CookieTokenV2],
		AccountMidV2:  v[model.AccountMidV2],
		AccountIDV2:   v[model.AccountIDV2],
		LTokenV2:      v[model.LTokenV2],
		LTMidV2:       v[model.LTMidV2],
		LTUIDV2:       v[model.LTUIDV2],
	}
	if err := c.plant(model.RegionChinese, res); err != nil {
		return "", nil, err
	}
	return status, res, nil
}

// LoginWithQRCode polls qr until the login is confirmed or ctx ends.
func (c *Client) LoginWithQRCode(ctx context.Context, qr *model.QRCode, opts ...CallOption) (*model.QRLoginResult, error) {
	ticker := time.NewTicker(c.qrPollInterval)
	defer ticker.Stop()

	last := model.QRCodeStatus("")
	for {
		status, res, err := c.CheckQRCode(ctx, qr.Ticket, opts...)
		if err != nil {
			return nil, err
		}
		if status != last {
			c.logger.Info("QR code status", "status", string(status))
			last = status
		}
		if res != nil {
			return res, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
