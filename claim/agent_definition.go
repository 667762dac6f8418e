package claim

import "time"

// ToolDescriptor describes one tool attached to an AgentDefinition: the
// function name the remote agent service exposes plus the JSON Schema
// describing its arguments. Mirrors the teacher's model.ToolDefinition
// shape (name, description, input schema) but scoped to the claim domain.
type ToolDescriptor struct {
	Name        string
	Description string
	InputSchema map[string]any
}

// AgentDefinition is the durable configuration record for one specialist (or
// the supervisor). Created once by the Registry's deployment pass; updated
// only via NewVersion, which pushes the current version onto VersionHistory
// before the caller installs a new one.
type AgentDefinition struct {
	// Name is the stable lookup key (e.g. "claim_assessor").
	Name string
	// Version is a semver string, e.g. "1.2.0".
	Version string
	// Instructions is the prompt template given to the remote agent.
	Instructions string
	// ModelDeployment names the backing model deployment (e.g. "gpt-4o").
	ModelDeployment string
	// Temperature is the sampling temperature in [0, 2].
	Temperature float64
	// Tools is the ordered list of tool descriptors attached to the agent.
	Tools []ToolDescriptor
	// IsActive reports whether this definition should be used for new runs.
	IsActive bool
	// VersionHistory is an append-only, strictly chronological list of prior
	// versions. The current Version never appears in its own history.
	VersionHistory []AgentDefinitionVersion
	// CreatedAt records when the definition was first registered.
	CreatedAt time.Time
	// UpdatedAt records the last time the definition was modified.
	UpdatedAt time.Time
}

// AgentDefinitionVersion snapshots one prior revision of an AgentDefinition
// for VersionHistory.
type AgentDefinitionVersion struct {
	Version      string
	Instructions string
	Temperature  float64
	RetiredAt    time.Time
}

// NewVersion returns a copy of def with a bumped Version, pushing the current
// version onto VersionHistory. It does not mutate def. Callers persist the
// returned value via the execution store's SaveAgentDefinition operation.
//
// Invariant (spec.md §3.2.5 / §8.4): version_history is strictly
// chronological and the current version never appears in its own history —
// satisfied by appending the pre-bump snapshot exactly once, in order.
func (def AgentDefinition) NewVersion(version, instructions string, temperature float64, now time.Time) AgentDefinition {
	history := make([]AgentDefinitionVersion, len(def.VersionHistory), len(def.VersionHistory)+1)
	copy(history, def.VersionHistory)
	history = append(history, AgentDefinitionVersion{
		Version:      def.Version,
		Instructions: def.Instructions,
		Temperature:  def.Temperature,
		RetiredAt:    now,
	})
	next := def
	next.Version = version
	next.Instructions = instructions
	next.Temperature = temperature
	next.VersionHistory = history
	next.UpdatedAt = now
	return next
}
