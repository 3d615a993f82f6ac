package catalog

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"
)

// maxBodyBytes caps the page size; the real tag page is a few MB.
const maxBodyBytes = 64 << 20

// HTTPClient is the subset of *http.Client the fetcher needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures [NewFetcher].
type Options struct {
	UserAgent   string
	InsecureTLS bool          // Skip certificate verification.
	Timeout     time.Duration // Whole-request timeout; 0 means none.
}

// Fetcher downloads catalog markup.
type Fetcher struct {
	client    HTTPClient
	userAgent string
}

// NewFetcher returns a Fetcher backed by its own *http.Client.
func NewFetcher(opts Options) *Fetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // catalog hosts with broken chains
	}
	return NewFetcherWithClient(&http.Client{
		Transport: transport,
		Timeout:   opts.Timeout,
	}, opts.UserAgent)
}

// NewFetcherWithClient returns a Fetcher using client, for tests and custom
// transports.
func NewFetcherWithClient(client HTTPClient, userAgent string) *Fetcher {
	return &Fetcher{client: client, userAgent: userAgent}
}

// Fetch GETs url and returns the body decoded to UTF-8. Any non-2xx status is
// an error. There are no retries.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &Error{Kind: ErrUnknown, URL: url, Err: err}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &Error{Kind: classify(err), URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", &Error{
			Kind:       ErrStatus,
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, maxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", &Error{Kind: ErrBody, URL: url, Err: err}
	}
	data, err := io.ReadAll(body)
	if err != nil {
		kind := classify(err)
		if kind == ErrUnknown {
			kind = ErrBody
		}
		return "", &Error{Kind: kind, URL: url, Err: err}
	}
	return string(data), nil
}
