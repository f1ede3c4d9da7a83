package metrics

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/numbercruncher/numbercruncher/internal/fetcher"
)

// parse decodes text exposition output back into metric families.
func parse(t *testing.T, r *Recorder) map[string]*dto.MetricFamily {
	t.Helper()
	var buf bytes.Buffer
	if err := r.WriteText(&buf); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(&buf)
	if err != nil {
		t.Fatalf("parse exposition: %v\n%s", err, buf.String())
	}
	return mfs
}

// labelled returns the value of the sample in mf whose only label equals value.
func labelled(mf *dto.MetricFamily, value string) float64 {
	if mf == nil {
		return 0
	}
	for _, m := range mf.GetMetric() {
		for _, lp := range m.GetLabel() {
			if lp.GetValue() == value {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestWriteText_Counters(t *testing.T) {
	r := NewRecorder()
	r.ObserveVerdict("yum")
	r.ObserveVerdict("yum")
	r.ObserveVerdict("burp")
	r.ObserveVerdict(VerdictError)
	r.SetTummy(2, 3)

	mfs := parse(t, r)

	crunches := mfs[CrunchesTotal]
	if crunches.GetType() != dto.MetricType_COUNTER {
		t.Errorf("%s type = %v, want COUNTER", CrunchesTotal, crunches.GetType())
	}
	if got := labelled(crunches, "yum"); got != 2 {
		t.Errorf("yum = %v, want 2", got)
	}
	if got := labelled(crunches, "burp"); got != 1 {
		t.Errorf("burp = %v, want 1", got)
	}
	if got := labelled(crunches, VerdictError); got != 1 {
		t.Errorf("error = %v, want 1", got)
	}
	if got := mfs[TummyFacts].GetMetric()[0].GetGauge().GetValue(); got != 2 {
		t.Errorf("%s = %v, want 2", TummyFacts, got)
	}
	if got := mfs[TummyCapacity].GetMetric()[0].GetGauge().GetValue(); got != 3 {
		t.Errorf("%s = %v, want 3", TummyCapacity, got)
	}
}

func TestWriteText_SkipsEmptyCounters(t *testing.T) {
	mfs := parse(t, NewRecorder())
	if _, ok := mfs[CrunchesTotal]; ok {
		t.Errorf("%s present before any crunch", CrunchesTotal)
	}
	if _, ok := mfs[TummyFacts]; !ok {
		t.Errorf("%s missing", TummyFacts)
	}
}

type stubFetcher struct {
	res *fetcher.Result
	err error
}

func (s stubFetcher) Call(context.Context) (*fetcher.Result, error) { return s.res, s.err }

func TestInstrumentFetcher_CountsOutcomes(t *testing.T) {
	r := NewRecorder()
	ok := InstrumentFetcher(stubFetcher{res: &fetcher.Result{Outcome: fetcher.Success, Number: 2, Fact: "2"}}, r)
	fail := InstrumentFetcher(stubFetcher{res: &fetcher.Result{Outcome: fetcher.Failure, ErrorCode: 500}}, r)
	broken := InstrumentFetcher(stubFetcher{err: errors.New("boom")}, r)

	for i := 0; i < 3; i++ {
		_, _ = ok.Call(context.Background())
	}
	_, _ = fail.Call(context.Background())
	if _, err := broken.Call(context.Background()); err == nil {
		t.Error("wrapped error was swallowed")
	}

	fetches := parse(t, r)[FetchesTotal]
	if got := labelled(fetches, "SUCCESS"); got != 3 {
		t.Errorf("SUCCESS = %v, want 3", got)
	}
	if got := labelled(fetches, "FAILURE"); got != 1 {
		t.Errorf("FAILURE = %v, want 1", got)
	}
	if got := labelled(fetches, FetchError); got != 1 {
		t.Errorf("ERROR = %v, want 1", got)
	}
}

func TestRecorder_ConcurrentObserve(t *testing.T) {
	r := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.ObserveVerdict("yuk")
		}()
		go func() {
			defer wg.Done()
			r.Families()
		}()
	}
	wg.Wait()

	if got := labelled(parse(t, r)[CrunchesTotal], "yuk"); got != 50 {
		t.Errorf("yuk = %v, want 50", got)
	}
}
