package util

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ppiankov/draftgate/internal/classify"
)

// NewProxyFunc creates a proxy function from explicit settings.
// Without explicit proxies it falls back to the environment. Hosts listed in
// noProxy (comma separated, subdomains included) are always dialed directly.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	bypass := parseNoProxy(noProxy)

	return func(req *http.Request) (*url.URL, error) {
		if bypass(req.URL.Hostname()) {
			return nil, nil
		}
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

// NewHTTPClient creates a client with the configured proxies
func NewHTTPClient(timeout time.Duration, httpProxy, httpsProxy, noProxy string) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = NewProxyFunc(httpProxy, httpsProxy, noProxy)

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func parseNoProxy(noProxy string) func(host string) bool {
	var entries []string
	for _, e := range strings.Split(noProxy, ",") {
		e = strings.TrimPrefix(classify.NormalizeHost(e), ".")
		if e != "" {
			entries = append(entries, e)
		}
	}

	return func(host string) bool {
		host = classify.NormalizeHost(host)
		for _, e := range entries {
			if e == "*" || host == e || strings.HasSuffix(host, "."+e) {
				return true
			}
		}
		return false
	}
}
