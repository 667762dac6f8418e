package agentregistry

import "context"

// RemoteAgentService is the subset of the remote LLM-agent service's
// management API the deployment pass needs: list existing agents, create
// one, and delete one (used to recreate an agent whose tool attachment has
// drifted).
type RemoteAgentService interface {
	ListAgents(ctx context.Context) ([]RemoteAgent, error)
	CreateAgent(ctx context.Context, spec AgentSpec) (RemoteAgent, error)
	DeleteAgent(ctx context.Context, remoteID string) error
}

// RemoteAgent is one agent as reported by the remote service.
type RemoteAgent struct {
	RemoteID string
	Name     string
	Tools    []string
}

// AgentSpec describes the agent to create when none exists for a stable
// name.
type AgentSpec struct {
	Name              string
	Instructions      string
	ModelDeployment   string
	ToolsetDescriptor []string
	ToolFunctions     map[string]ToolFunc
}

// RequiredTool, when non-empty, must remain attached to a rediscovered
// agent; its absence triggers delete-then-recreate.
type DeploySpec struct {
	AgentSpec
	RequiredTool string
}

// Deploy runs the registry's startup deployment pass for one specialist:
// list remote agents, filter by stable name, reuse if present (verifying
// RequiredTool is still attached, recreating otherwise), or create if
// absent. The resulting Entry is registered into reg with overwrite=true,
// since a fresh deployment pass authoritatively replaces prior state.
//
// Deployment failures are fatal at startup by design (spec.md §4.1): Deploy
// returns the error unmodified rather than degrading silently, and callers
// are expected to abort process startup on a non-nil error.
func Deploy(ctx context.Context, reg *Registry, svc RemoteAgentService, spec DeploySpec) error {
	existing, err := svc.ListAgents(ctx)
	if err != nil {
		return err
	}

	var found *RemoteAgent
	for i := range existing {
		if existing[i].Name == spec.Name {
			found = &existing[i]
			break
		}
	}

	if found != nil && spec.RequiredTool != "" && !hasTool(found.Tools, spec.RequiredTool) {
		if err := svc.DeleteAgent(ctx, found.RemoteID); err != nil {
			return err
		}
		found = nil
	}

	remoteID := ""
	if found != nil {
		remoteID = found.RemoteID
	} else {
		created, err := svc.CreateAgent(ctx, spec.AgentSpec)
		if err != nil {
			return err
		}
		remoteID = created.RemoteID
	}

	return reg.Register(spec.Name, Entry{
		RemoteID:          remoteID,
		ToolFunctions:     spec.ToolFunctions,
		ToolsetDescriptor: spec.ToolsetDescriptor,
	}, true)
}

func hasTool(tools []string, name string) bool {
	for _, t := range tools {
		if t == name {
			return true
		}
	}
	return false
}
