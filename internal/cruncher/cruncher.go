package cruncher

import (
	"context"
	"errors"
	"fmt"

	"github.com/numbercruncher/numbercruncher/internal/fetcher"
	"github.com/numbercruncher/numbercruncher/internal/tummy"
	"github.com/numbercruncher/numbercruncher/pkg/types"
)

// ErrUnexpected is returned when the fetcher fails or returns a result that
// cannot be classified. The underlying cause is dropped. Callers match on the
// exact message.
var ErrUnexpected = errors.New("Unexpected error") //nolint:stylecheck

// Kind is the verdict category of one crunch.
type Kind string

const (
	Yum   Kind = "Yum"
	Yuk   Kind = "Yuk"
	Burp  Kind = "Burp"
	Blech Kind = "Blech"
)

// Verdict is the outcome of one crunch. Number is the fetched number for Yum
// and Yuk, the evicted number for Burp and the HTTP status for Blech.
type Verdict struct {
	Kind   Kind
	Number int
}

func (v Verdict) String() string {
	return fmt.Sprintf("%s! %d", v.Kind, v.Number)
}

// Cruncher owns a tummy and fetches from an injected Fetcher.
type Cruncher struct {
	fetcher fetcher.Fetcher
	tummy   *tummy.Tummy
}

// New returns a Cruncher whose tummy holds at most maxSize facts.
func New(maxSize int, f fetcher.Fetcher) (*Cruncher, error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("cruncher: max size must be positive, got %d", maxSize)
	}
	if f == nil {
		return nil, fmt.Errorf("cruncher: fetcher is required")
	}
	return &Cruncher{fetcher: f, tummy: tummy.New(maxSize)}, nil
}

// Crunch fetches one fact and classifies it.
func (c *Cruncher) Crunch(ctx context.Context) (Verdict, error) {
	res, err := c.fetcher.Call(ctx)
	if err != nil || !wellFormed(res) {
		return Verdict{}, ErrUnexpected
	}

	if res.Outcome == fetcher.Failure {
		return Verdict{Kind: Blech, Number: res.ErrorCode}, nil
	}
	if res.Number%2 != 0 {
		return Verdict{Kind: Yuk, Number: res.Number}, nil
	}

	evicted, full := c.tummy.Push(types.Fact{Number: res.Number, Fact: res.Fact})
	if full {
		return Verdict{Kind: Burp, Number: evicted.Number}, nil
	}
	return Verdict{Kind: Yum, Number: res.Number}, nil
}

// Tummy returns the accepted facts, oldest first.
func (c *Cruncher) Tummy() []types.Fact {
	return c.tummy.Items()
}

// Capacity returns the maximum number of facts the tummy holds.
func (c *Cruncher) Capacity() int {
	return c.tummy.Cap()
}

func wellFormed(res *fetcher.Result) bool {
	if res == nil {
		return false
	}
	switch res.Outcome {
	case fetcher.Success:
		return res.Fact != ""
	case fetcher.Failure:
		return res.ErrorCode != 0
	default:
		return false
	}
}
