package types

// Fact is one accepted number fact. Values are immutable once stored in a
// tummy; the buffer hands out copies.
type Fact struct {
	Number int    `json:"number"`
	Fact   string `json:"fact"`
}
