package util

import (
	"net/http"
	"net/url"
)

// ProxyFunc builds a proxy selector for outbound clients. Explicit proxy
// URLs win over the standard HTTP_PROXY/HTTPS_PROXY environment variables.
func ProxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		switch {
		case req.URL.Scheme == "https" && httpsProxy != "":
			return url.Parse(httpsProxy)
		case httpProxy != "":
			return url.Parse(httpProxy)
		default:
			return http.ProxyFromEnvironment(req)
		}
	}
}

// NewTransport returns an http.Transport honoring the configured proxies
func NewTransport(httpProxy, httpsProxy string) *http.Transport {
	return &http.Transport{
		Proxy: ProxyFunc(httpProxy, httpsProxy),
	}
}
