package metrics

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/numbercruncher/numbercruncher/internal/fetcher"
)

// Metric names exposed on /metrics.
const (
	CrunchesTotal = "numbercruncher_crunches_total"
	FetchesTotal  = "numbercruncher_fetches_total"
	TummyFacts    = "numbercruncher_tummy_facts"
	TummyCapacity = "numbercruncher_tummy_capacity"
)

// VerdictError is the verdict label used when a crunch returned an error.
const VerdictError = "error"

// FetchError is the result label used when a fetch returned an error.
const FetchError = "ERROR"

// Recorder accumulates counters. All methods are safe for concurrent use.
type Recorder struct {
	mu        sync.Mutex
	verdicts  map[string]float64
	fetches   map[string]float64
	tummySize float64
	tummyCap  float64
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		verdicts: make(map[string]float64),
		fetches:  make(map[string]float64),
	}
}

// ObserveVerdict counts one crunch under the given verdict label.
func (r *Recorder) ObserveVerdict(verdict string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verdicts[verdict]++
}

// ObserveFetch counts one fetch under the given result label.
func (r *Recorder) ObserveFetch(result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches[result]++
}

// SetTummy records the current tummy occupancy and capacity.
func (r *Recorder) SetTummy(size, capacity int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tummySize = float64(size)
	r.tummyCap = float64(capacity)
}

// Families returns the current values as metric families, sorted by name.
func (r *Recorder) Families() []*dto.MetricFamily {
	r.mu.Lock()
	defer r.mu.Unlock()
	return []*dto.MetricFamily{
		counterFamily(CrunchesTotal, "Crunches by verdict.", "verdict", r.verdicts),
		counterFamily(FetchesTotal, "Numbers API calls by result.", "result", r.fetches),
		gaugeFamily(TummyCapacity, "Maximum number of facts the tummy holds.", r.tummyCap),
		gaugeFamily(TummyFacts, "Facts currently held in the tummy.", r.tummySize),
	}
}

// WriteText encodes Families in the Prometheus text format.
func (r *Recorder) WriteText(w io.Writer) error {
	for _, mf := range r.Families() {
		if len(mf.GetMetric()) == 0 {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("metrics: encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func counterFamily(name, help, label string, values map[string]float64) *dto.MetricFamily {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	mf := &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_COUNTER.Enum(),
	}
	for _, k := range keys {
		mf.Metric = append(mf.Metric, &dto.Metric{
			Label:   []*dto.LabelPair{{Name: proto.String(label), Value: proto.String(k)}},
			Counter: &dto.Counter{Value: proto.Float64(values[k])},
		})
	}
	return mf
}

func gaugeFamily(name, help string, v float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   proto.String(name),
		Help:   proto.String(help),
		Type:   dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{{Gauge: &dto.Gauge{Value: proto.Float64(v)}}},
	}
}

// instrumentedFetcher counts every call on a Recorder.
type instrumentedFetcher struct {
	base fetcher.Fetcher
	rec  *Recorder
}

// InstrumentFetcher wraps f so each call is counted by outcome.
func InstrumentFetcher(f fetcher.Fetcher, rec *Recorder) fetcher.Fetcher {
	return &instrumentedFetcher{base: f, rec: rec}
}

func (i *instrumentedFetcher) Call(ctx context.Context) (*fetcher.Result, error) {
	res, err := i.base.Call(ctx)
	switch {
	case err != nil || res == nil:
		i.rec.ObserveFetch(FetchError)
	default:
		i.rec.ObserveFetch(string(res.Outcome))
	}
	return res, err
}
