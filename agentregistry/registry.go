// Package agentregistry implements the agent registry (C1): a fast,
// read-mostly lookup from a specialist name to its remote identity, local
// tool callables, and toolset descriptor.
package agentregistry

import (
	"context"
	"sync"

	"github.com/clarion-insurance/claims-orchestrator/claimerrors"
)

// ToolFunc is a locally-registered callable backing one of an agent's tool
// functions. Implementations live in the specialists package.
type ToolFunc func(ctx context.Context, args map[string]any) (string, error)

// Entry is everything the registry stores for one registered specialist.
type Entry struct {
	RemoteID          string
	ToolFunctions     map[string]ToolFunc
	ToolsetDescriptor []string
}

// signature returns a comparable fingerprint of an entry's tool function
// names, used to detect conflicting re-registration.
func (e Entry) signature() string {
	sig := ""
	for _, name := range e.ToolsetDescriptor {
		sig += name + ","
	}
	return sig
}

// ConflictError is returned by Register when name already exists with a
// different tool signature and overwrite was not requested.
type ConflictError struct {
	Name string
}

func (e *ConflictError) Error() string {
	return "agentregistry: " + e.Name + " already registered with a different tool signature"
}

// Registry is a flat, insertion-ordered map of specialist name to Entry,
// guarded by a read-write lock. Registration happens once at process
// startup, after a deployment pass that creates or rediscovers each
// specialist on the remote agent service; lookups happen continuously
// during orchestration.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	order   []string
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register performs an atomic insert-or-update of name. If name already
// exists with a different tool signature and overwrite is false, it fails
// with a *ConflictError.
func (r *Registry) Register(name string, entry Entry, overwrite bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.entries[name]
	if ok && !overwrite && existing.signature() != entry.signature() {
		return &ConflictError{Name: name}
	}
	if !ok {
		r.order = append(r.order, name)
	}
	r.entries[name] = entry
	return nil
}

// Lookup retrieves the entry registered for name. It fails with a
// *claimerrors.UnknownAgentError if name is unregistered — a lookup miss
// the orchestrator treats as non-fatal, converting it into a
// SpecialistUnavailable response rather than aborting the run.
func (r *Registry) Lookup(name string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return Entry{}, &claimerrors.UnknownAgentError{Name: name}
	}
	return entry, nil
}

// Available reports whether name is currently registered.
func (r *Registry) Available(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// List returns registered names in insertion order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
