// Package scrape builds a champion catalogue from server-rendered guide
// pages.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// DefaultBackoffs are the waits before each attempt; the first is immediate.
var DefaultBackoffs = []time.Duration{0, 500 * time.Millisecond, 1 * time.Second, 2 * time.Second}

// MaxRetryAfter caps how long a Retry-After header can hold a fetch.
const MaxRetryAfter = 30 * time.Second

// StatusError is a response the fetcher gave up on.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("guide site answered %d", e.Code)
	}
	return fmt.Sprintf("guide site answered %d: %s", e.Code, e.Body)
}

// Temporary reports whether the same request may succeed later.
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

type Fetcher struct {
	client   *http.Client
	backoffs []time.Duration
	now      func() time.Time
}

func NewFetcher(timeout time.Duration) *Fetcher {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Fetcher{
		client:   &http.Client{Timeout: timeout, Transport: transport},
		backoffs: DefaultBackoffs,
		now:      time.Now,
	}
}

// Fetch GETs rawURL and returns the page and the final URL after
// redirects, which relative links resolve against. Network errors, 429 and
// 5xx are retried; a Retry-After on those responses stretches the next
// wait up to MaxRetryAfter.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, *url.URL, error) {
	var (
		wait    time.Duration
		lastErr error
	)
	for i, backoff := range f.backoffs {
		if i > 0 || backoff > 0 {
			if err := sleep(ctx, max(backoff, wait)); err != nil {
				return "", nil, err
			}
		}
		page, final, hint, err := f.once(ctx, rawURL)
		if err == nil {
			return page, final, nil
		}
		if ctx.Err() != nil {
			return "", nil, ctx.Err()
		}
		var se *StatusError
		if errors.As(err, &se) && !se.Temporary() {
			return "", nil, err
		}
		lastErr, wait = err, min(hint, MaxRetryAfter)
	}
	return "", nil, lastErr
}

// once performs a single GET. On a retryable status it also returns the
// wait the server asked for, if any.
func (f *Fetcher) once(ctx context.Context, rawURL string) (string, *url.URL, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", nil, 0, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		se := &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
		var hint time.Duration
		if se.Temporary() {
			hint = retryAfter(resp.Header.Get("Retry-After"), f.now())
		}
		return "", nil, hint, se
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, 0, err
	}
	return string(b), resp.Request.URL, 0, nil
}

// retryAfter decodes a Retry-After value, either delay seconds or an HTTP
// date. Missing, malformed and past values give zero.
func retryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		switch {
		case secs <= 0:
			return 0
		case secs >= int(MaxRetryAfter/time.Second):
			return MaxRetryAfter
		}
		return time.Duration(secs) * time.Second
	}
	at, err := http.ParseTime(v)
	if err != nil || !at.After(now) {
		return 0
	}
	return at.Sub(now)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
