package fetcher

import (
	"context"
	"time"
)

// Outcome classifies one call.
type Outcome string

const (
	Success Outcome = "SUCCESS"
	Failure Outcome = "FAILURE"
)

// Result is the normalized output of one call.
// Number and Fact are set only on Success; ErrorCode only on Failure.
type Result struct {
	Outcome   Outcome
	Number    int
	Fact      string
	ErrorCode int
}

// Fetcher is the capability implemented by anything that can produce one
// number fact per call.
type Fetcher interface {
	Call(ctx context.Context) (*Result, error)
}

// CallTimeLayout is ISO-8601 with microsecond precision and no zone suffix,
// e.g. 2024-11-04T11:10:08.132263.
const CallTimeLayout = "2006-01-02T15:04:05.000000"

// RequestLogEntry records one classified call.
type RequestLogEntry struct {
	RequestNumber int     `json:"request_number"`
	CallTime      string  `json:"call_time"`
	EndPoint      string  `json:"end_point"`
	Result        Outcome `json:"result"`
	// Number is nil for failed calls.
	Number *int `json:"number,omitempty"`
}

// formatCallTime renders t in CallTimeLayout.
func formatCallTime(t time.Time) string {
	return t.Format(CallTimeLayout)
}
