// Package metrics counts crunches and fetches and renders them in the
// Prometheus text exposition format.
//
// Recorder holds the counters. InstrumentFetcher wraps a fetcher.Fetcher so
// every call is counted by outcome without the fetcher knowing about it.
// WriteText encodes the current values with expfmt; tests read them back
// with expfmt.TextParser.
package metrics
