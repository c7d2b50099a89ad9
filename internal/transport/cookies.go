package transport

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"golang.org/x/net/publicsuffix"
)

// CookieStore is the cookie jar shared by every flow of a client.
// The mutex is held only for the synchronous jar access, never across a
// network round-trip.
type CookieStore struct {
	mu  sync.Mutex
	jar *cookiejar.Jar
}

// NewCookieStore creates an empty store that applies public suffix rules.
func NewCookieStore() (*CookieStore, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &CookieStore{jar: jar}, nil
}

// Cookies returns the cookies to send to u.
func (s *CookieStore) Cookies(u *url.URL) []*http.Cookie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jar.Cookies(u)
}

// SetCookies stores cookies received from u.
func (s *CookieStore) SetCookies(u *url.URL, cookies []*http.Cookie) {
	if len(cookies) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jar.SetCookies(u, cookies)
}

// Plant stores name=value pairs for the registrable domain of rawURL, so
// that every host under that domain receives them. Used for tokens that
// arrive in a response body rather than in Set-Cookie.
func (s *CookieStore) Plant(rawURL string, values map[string]string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid cookie URL %q: %w", rawURL, err)
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(u.Hostname())
	if err != nil {
		return fmt.Errorf("invalid cookie domain %q: %w", u.Hostname(), err)
	}

	cookies := make([]*http.Cookie, 0, len(values))
	for name, value := range values {
		if value == "" {
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: name, Value: value, Domain: domain, Path: "/"})
	}
	s.SetCookies(u, cookies)
	return nil
}

// Values returns the cookies for rawURL as a name to value map.
func (s *CookieStore) Values(rawURL string) (map[string]string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid cookie URL %q: %w", rawURL, err)
	}
	out := make(map[string]string)
	for _, c := range s.Cookies(u) {
		out[c.Name] = c.Value
	}
	return out, nil
}
