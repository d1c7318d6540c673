package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc builds the proxy selector for the lookup HTTP client.
// Explicit proxy URLs take precedence; with none configured it falls
// back to the standard HTTP_PROXY/HTTPS_PROXY environment variables.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
