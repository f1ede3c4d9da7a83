// Package runner shares one cruncher between the periodic crunch loop and
// the HTTP API. It serializes every call, logs verdicts and keeps metrics.
package runner

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/numbercruncher/numbercruncher/internal/cruncher"
	"github.com/numbercruncher/numbercruncher/internal/fetcher"
	"github.com/numbercruncher/numbercruncher/internal/metrics"
	"github.com/numbercruncher/numbercruncher/pkg/types"
)

// RequestLogger exposes a fetcher's request log.
type RequestLogger interface {
	Log() []fetcher.RequestLogEntry
}

// Event describes one finished crunch. Tummy is the state right after it.
type Event struct {
	Verdict string       `json:"verdict"`
	Kind    string       `json:"kind"`
	Number  int          `json:"number"`
	Error   string       `json:"error,omitempty"`
	Tummy   []types.Fact `json:"tummy"`
	At      time.Time    `json:"at"`
}

// Runner guards a Cruncher and the request log with a single mutex.
type Runner struct {
	mu       sync.Mutex
	cruncher *cruncher.Cruncher
	requests RequestLogger
	rec      *metrics.Recorder
	listener func(Event)
	now      func() time.Time
}

// New returns a Runner. requests is usually the fetcher the cruncher wraps.
func New(c *cruncher.Cruncher, requests RequestLogger, rec *metrics.Recorder) *Runner {
	rec.SetTummy(0, c.Capacity())
	return &Runner{cruncher: c, requests: requests, rec: rec, now: time.Now}
}

// OnCrunch registers fn to receive an Event after every crunch. fn is called
// outside the runner's lock and must not block.
func (r *Runner) OnCrunch(fn func(Event)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listener = fn
}

// Crunch runs one crunch and records its verdict.
func (r *Runner) Crunch(ctx context.Context) (cruncher.Verdict, error) {
	v, ev, notify, err := r.crunchLocked(ctx)
	if notify != nil {
		notify(ev)
	}
	return v, err
}

func (r *Runner) crunchLocked(ctx context.Context) (cruncher.Verdict, Event, func(Event), error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, err := r.cruncher.Crunch(ctx)
	ev := Event{Tummy: r.cruncher.Tummy(), At: r.now()}
	if err != nil {
		r.rec.ObserveVerdict(metrics.VerdictError)
		ev.Kind = metrics.VerdictError
		ev.Error = err.Error()
		return v, ev, r.listener, err
	}
	r.rec.ObserveVerdict(strings.ToLower(string(v.Kind)))
	r.rec.SetTummy(len(ev.Tummy), r.cruncher.Capacity())

	ev.Verdict, ev.Kind, ev.Number = v.String(), string(v.Kind), v.Number
	slog.Info("runner: crunched", "verdict", ev.Verdict)
	return v, ev, r.listener, nil
}

// Run crunches every interval until ctx is cancelled. Errors are logged and
// the loop carries on with the next tick.
func (r *Runner) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := r.Crunch(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				slog.Warn("runner: crunch failed", "err", err)
			}
		}
	}
}

// Tummy returns the accepted facts, oldest first.
func (r *Runner) Tummy() []types.Fact {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cruncher.Tummy()
}

// Capacity returns the tummy capacity.
func (r *Runner) Capacity() int {
	return r.cruncher.Capacity()
}

// Log returns the fetcher's request log.
func (r *Runner) Log() []fetcher.RequestLogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests.Log()
}

// Metrics returns the recorder backing /metrics.
func (r *Runner) Metrics() *metrics.Recorder {
	return r.rec
}
