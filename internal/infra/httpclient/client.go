package httpclient

import (
	"net"
	"net/http"

	"github.com/objgate/server/internal/shared/config"
)

// New creates an HTTP client for presigned transfers.
// Redirects are not followed: a presigned URL is bound to one host and method.
func New(cfg config.HTTPClientConfig) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.DialTimeout,
			KeepAlive: cfg.KeepAlive,
		}).DialContext,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		MaxConnsPerHost:     cfg.MaxConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		TLSHandshakeTimeout: cfg.TLSHandshakeTimeout,
		ForceAttemptHTTP2:   true,
		// Transparent gzip would hide the stored byte count.
		DisableCompression: true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.ResponseTimeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// Factory returns a constructor yielding a fresh client per call.
func Factory(cfg config.HTTPClientConfig) func() *http.Client {
	return func() *http.Client {
		return New(cfg)
	}
}
