package integrations

import (
	"crypto/tls"
	"net/http"
	"time"
)

// Options configures a [Client].
type Options struct {
	Username string
	Password string

	// InsecureSkipVerify disables TLS certificate verification. Voicemail
	// servers are often deployed with self-signed certificates; this must be
	// opted into explicitly.
	InsecureSkipVerify bool

	// Timeout bounds each request. Zero leaves the transport defaults in place.
	Timeout time.Duration

	// Headers are added to every request.
	Headers map[string]string
}

// NewHTTPClient creates the HTTP client used for remote API requests.
func NewHTTPClient(opts Options) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in for self-signed servers
	}
	return &http.Client{Transport: transport, Timeout: opts.Timeout}
}
