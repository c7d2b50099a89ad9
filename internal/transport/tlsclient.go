package transport

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	"github.com/nao1215/hoyoauth/internal/model"
)

// TLSClient is the tls-client backend. It sends requests with a Chrome TLS
// and HTTP/2 fingerprint, which some login gateways require.
type TLSClient struct {
	client      tls_client.HttpClient
	store       *CookieStore
	maxBodySize int64
	userAgent   string
}

// NewTLSClient creates a fingerprinting backend that keeps cookies in store.
func NewTLSClient(store *CookieStore, opts ...Option) (*TLSClient, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	clientOpts := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(int(o.timeout.Seconds())),
		tls_client.WithClientProfile(profiles.DefaultClientProfile),
		tls_client.WithRandomTLSExtensionOrder(),
		tls_client.WithNotFollowRedirects(),
	}
	if o.proxyAddress != "" {
		clientOpts = append(clientOpts, tls_client.WithProxyUrl("socks5://"+o.proxyAddress))
	}
	client, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tls client: %w", err)
	}

	return &TLSClient{
		client:      client,
		store:       store,
		maxBodySize: o.maxBodySize,
		userAgent:   o.userAgent,
	}, nil
}

// Send implements Transport.
func (c *TLSClient) Send(ctx context.Context, req *model.SignedRequest) (*model.RawResponse, error) {
	u, err := url.Parse(req.URL())
	if err != nil {
		return nil, fmt.Errorf("invalid request URL: %w", err)
	}

	body := req.Body()
	fReq, err := fhttp.NewRequestWithContext(ctx, req.Method(), u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	for name, values := range req.Header() {
		fReq.Header[name] = values
	}
	if len(body) > 0 && fReq.Header.Get("Content-Type") == "" {
		fReq.Header.Set("Content-Type", "application/json")
	}
	if fReq.Header.Get("User-Agent") == "" {
		fReq.Header.Set("User-Agent", c.userAgent)
	}
	for _, ck := range c.store.Cookies(u) {
		fReq.AddCookie(&fhttp.Cookie{Name: ck.Name, Value: ck.Value})
	}

	resp, err := c.client.Do(fReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	decoded := fhttp.DecompressBody(resp)
	defer decoded.Close()
	respBody, err := readLimited(decoded, c.maxBodySize)
	if err != nil {
		return nil, err
	}

	cookies := toStdCookies(resp.Cookies())
	c.store.SetCookies(u, cookies)

	header := make(http.Header, len(resp.Header))
	for name, values := range resp.Header {
		header[name] = values
	}

	return &model.RawResponse{
		StatusCode: resp.StatusCode,
		Header:     header,
		Cookies:    cookies,
		Body:       respBody,
	}, nil
}

func toStdCookies(in []*fhttp.Cookie) []*http.Cookie {
	out := make([]*http.Cookie, 0, len(in))
	for _, c := range in {
		out = append(out, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			MaxAge:   c.MaxAge,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		})
	}
	return out
}
