package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/numbercruncher/numbercruncher/internal/config"
)

// maxBodyBytes caps how much of a response is read. Facts are one sentence.
const maxBodyBytes = 64 << 10

// NumbersFetcher calls the numbers API and keeps a log of its own requests.
// It is not safe for concurrent use; callers serialize Call and Log.
type NumbersFetcher struct {
	endpoint string
	client   *http.Client
	now      func() time.Time
	log      []RequestLogEntry
}

// Option customises a NumbersFetcher.
type Option func(*NumbersFetcher)

// WithClock replaces time.Now as the source of call_time.
func WithClock(now func() time.Time) Option {
	return func(f *NumbersFetcher) { f.now = now }
}

// WithHTTPClient replaces the default client built from the config timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(f *NumbersFetcher) { f.client = c }
}

// New returns a NumbersFetcher for cfg.Endpoint.
func New(cfg config.FetcherConfig, opts ...Option) *NumbersFetcher {
	f := &NumbersFetcher{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: cfg.Timeout},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Endpoint returns the URL every call is sent to.
func (f *NumbersFetcher) Endpoint() string { return f.endpoint }

// Call performs one GET against the endpoint.
//
// Non-200 statuses are classified as Failure with a nil error. Transport
// errors and unparseable 200 bodies are returned as errors and are not
// recorded in the log.
func (f *NumbersFetcher) Call(ctx context.Context) (*Result, error) {
	callTime := f.now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("fetcher: build request: %w", err)
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetcher: http get: %w", err)
	}
	defer resp.Body.Close()

	var res *Result
	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		res = &Result{Outcome: Failure, ErrorCode: resp.StatusCode}
		slog.Warn("fetcher: numbers api returned non-200",
			"endpoint", f.endpoint, "status", resp.StatusCode)
	} else {
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
		if err != nil {
			return nil, fmt.Errorf("fetcher: read body: %w", err)
		}
		if len(body) > maxBodyBytes {
			return nil, fmt.Errorf("fetcher: fact body exceeds %d bytes", maxBodyBytes)
		}
		fact := strings.TrimRight(string(body), "\r\n")
		n, err := parseNumber(fact)
		if err != nil {
			return nil, fmt.Errorf("fetcher: %w", err)
		}
		res = &Result{Outcome: Success, Number: n, Fact: fact}
		slog.Debug("fetcher: fact received", "number", n)
	}

	f.record(callTime, res)
	return res, nil
}

// Log returns every request recorded so far, oldest first.
// Only classified calls are recorded: a Call that returned an error (transport
// failure, unparseable or oversized body) leaves no entry, so len(Log()) can
// be less than the number of calls made.
func (f *NumbersFetcher) Log() []RequestLogEntry {
	out := make([]RequestLogEntry, len(f.log))
	copy(out, f.log)
	return out
}

func (f *NumbersFetcher) record(callTime time.Time, res *Result) {
	entry := RequestLogEntry{
		RequestNumber: len(f.log) + 1,
		CallTime:      formatCallTime(callTime),
		EndPoint:      f.endpoint,
		Result:        res.Outcome,
	}
	if res.Outcome == Success {
		n := res.Number
		entry.Number = &n
	}
	f.log = append(f.log, entry)
}

// parseNumber extracts the leading integer from a "<number> is <fact>" body.
func parseNumber(body string) (int, error) {
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty fact body")
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("parse leading number %q: %w", fields[0], err)
	}
	return n, nil
}
