package domain

// FailureRecord is a failing (or erroring) test and the engine-formatted text describing why.
// Records are immutable once stored.
type FailureRecord struct {
	Test  Test   `json:"test"`
	Group string `json:"group"`
	Err   string `json:"error"`
	Seq   int    `json:"seq"` // Insertion order, used as a deterministic tie-break
}
