package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates the client used for outbound calls (LLM providers, news feed,
// analysis service).
//
// http.DefaultClient has no timeout, so callers always go through here. The transport
// dials with a short TCP timeout, keeps idle connections for reuse and honours
// HTTP_PROXY style environment variables. timeout bounds the whole request.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
