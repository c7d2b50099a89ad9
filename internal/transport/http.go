package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/proxy"

	"github.com/nao1215/hoyoauth/internal/model"
)

// maxRedirects stops redirect loops. The login APIs do not redirect.
const maxRedirects = 10

// HTTPClient is the net/http backend.
type HTTPClient struct {
	client      *http.Client
	store       *CookieStore
	maxBodySize int64
	userAgent   string
}

// NewHTTPClient creates a backend that keeps cookies in store.
func NewHTTPClient(store *CookieStore, opts ...Option) (*HTTPClient, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,
		ForceAttemptHTTP2:   true,
	}
	if o.proxyAddress != "" {
		dialer, err := proxy.SOCKS5("tcp", o.proxyAddress, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		transport.Proxy = nil
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
	}

	return &HTTPClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   o.timeout,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		store:       store,
		maxBodySize: o.maxBodySize,
		userAgent:   o.userAgent,
	}, nil
}

// Send implements Transport.
func (c *HTTPClient) Send(ctx context.Context, req *model.SignedRequest) (*model.RawResponse, error) {
	u, err := url.Parse(req.URL())
	if err != nil {
		return nil, fmt.Errorf("invalid request URL: %w", err)
	}

	body := req.Body()
	httpReq, err := http.NewRequestWithContext(ctx, req.Method(), u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header = req.Header()
	if httpReq.Header == nil {
		httpReq.Header = http.Header{}
	}
	if len(body) > 0 && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	for _, ck := range c.store.Cookies(u) {
		httpReq.AddCookie(ck)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := readLimited(resp.Body, c.maxBodySize)
	if err != nil {
		return nil, err
	}
	cookies := resp.Cookies()
	c.store.SetCookies(u, cookies)

	return &model.RawResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Cookies:    cookies,
		Body:       respBody,
	}, nil
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, limit)
	}
	return b, nil
}
