package public

// payload is the data a client wants mined into the chain.
type payload struct {
	Data string `json:"data" validate:"required"`
}

// status describes the current head of the chain and the mempool depth.
type status struct {
	Host        string `json:"host"`
	LatestIndex uint64 `json:"latestIndex"`
	LatestHash  string `json:"latestHash"`
	Uncommitted int    `json:"uncommitted"`
}

// validity reports the result of running the chain rules. A false value is
// an answer, not a failure.
type validity struct {
	Valid bool `json:"valid"`
}
