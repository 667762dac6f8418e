package usage

import "sync"

// Scope is the explicit replacement for the source's thread-local span
// capture (spec.md §8 redesign flags): a per-run context object threaded
// through the orchestration call, accumulating usage for exactly one (claim, execution)
// pair. It is owned by a single orchestration call — unlike a span
// processor keyed by ambient thread-local state, there is no lookup by
// "current span": the caller always has the Scope value in hand.
type Scope struct {
	ClaimID     string
	ExecutionID string

	mu      sync.Mutex
	records []Entry
}

// Entry is one recorded usage event within a Scope, before it is priced
// and persisted as a claim.TokenUsageRecord.
type Entry struct {
	AgentName     string
	ModelName     string
	OperationType string
	PromptTokens  int
	CompletionTokens int
}

// NewScope starts a usage-accumulation scope for one orchestration run.
func NewScope(claimID, executionID string) *Scope {
	return &Scope{ClaimID: claimID, ExecutionID: executionID}
}

// Record appends one usage entry to the scope. Safe for concurrent use:
// a single claim's run is sequential per spec.md §5, but the scope may
// also be read (Entries) from a reporting goroutine concurrently.
func (s *Scope) Record(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, e)
}

// Entries returns a snapshot of every entry recorded so far.
func (s *Scope) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.records))
	copy(out, s.records)
	return out
}
