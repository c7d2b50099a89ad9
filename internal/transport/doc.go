// Package transport sends signed login requests and keeps the session
// cookies they produce.
//
// Two backends implement Transport: HTTPClient on net/http, optionally
// through a SOCKS5 proxy, and TLSClient on bogdanfinn/tls-client, which
// presents a browser TLS fingerprint. Both share a CookieStore so that
// cookies set by one login flow are visible to the next. An EmbeddedTor can
// supply the SOCKS5 proxy for either backend.
package transport
