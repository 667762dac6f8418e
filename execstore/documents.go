package execstore

import (
	"time"

	"github.com/clarion-insurance/claims-orchestrator/claim"
)

type tokenUsageDocument struct {
	PromptTokens     int `bson:"prompt_tokens"`
	CompletionTokens int `bson:"completion_tokens"`
	TotalTokens      int `bson:"total_tokens"`
}

func fromTokenUsage(u claim.TokenUsage) tokenUsageDocument {
	return tokenUsageDocument{PromptTokens: u.PromptTokens, CompletionTokens: u.CompletionTokens, TotalTokens: u.TotalTokens}
}

func (d tokenUsageDocument) toTokenUsage() claim.TokenUsage {
	return claim.TokenUsage{PromptTokens: d.PromptTokens, CompletionTokens: d.CompletionTokens, TotalTokens: d.TotalTokens}
}

type agentStepDocument struct {
	StepID     string             `bson:"step_id"`
	AgentName  string             `bson:"agent_name"`
	Input      string             `bson:"input,omitempty"`
	Output     string             `bson:"output,omitempty"`
	TokenUsage tokenUsageDocument `bson:"token_usage"`
	Error      string             `bson:"error,omitempty"`
	StartedAt  time.Time          `bson:"started_at"`
	EndedAt    time.Time          `bson:"ended_at"`
}

func fromAgentStep(s claim.AgentStepExecution) agentStepDocument {
	return agentStepDocument{
		StepID:     s.StepID,
		AgentName:  s.AgentName,
		Input:      s.Input,
		Output:     s.Output,
		TokenUsage: fromTokenUsage(s.TokenUsage),
		Error:      s.Error,
		StartedAt:  s.StartedAt,
		EndedAt:    s.EndedAt,
	}
}

func (d agentStepDocument) toAgentStep() claim.AgentStepExecution {
	return claim.AgentStepExecution{
		StepID:     d.StepID,
		AgentName:  d.AgentName,
		Input:      d.Input,
		Output:     d.Output,
		TokenUsage: d.TokenUsage.toTokenUsage(),
		Error:      d.Error,
		StartedAt:  d.StartedAt,
		EndedAt:    d.EndedAt,
	}
}

// executionDocument is the Mongo-persisted shape of an AgentExecution
// (spec.md §6.1 execution store, partitioned by execution_id).
type executionDocument struct {
	ExecutionID   string              `bson:"execution_id"`
	ClaimID       string              `bson:"claim_id"`
	ThreadID      string              `bson:"thread_id,omitempty"`
	Steps         []agentStepDocument `bson:"steps"`
	FinalResponse string              `bson:"final_response,omitempty"`
	AgentsInvoked []string            `bson:"agents_invoked"`
	TotalTokens   tokenUsageDocument  `bson:"total_tokens"`
	TotalCostUSD  float64             `bson:"total_cost_usd"`
	StartedAt     time.Time           `bson:"started_at"`
	EndedAt       time.Time           `bson:"ended_at"`
	Status        string              `bson:"status"`
}

func fromExecution(e claim.AgentExecution) executionDocument {
	steps := make([]agentStepDocument, len(e.Steps))
	for i, s := range e.Steps {
		steps[i] = fromAgentStep(s)
	}
	return executionDocument{
		ExecutionID:   e.ExecutionID,
		ClaimID:       e.ClaimID,
		ThreadID:      e.ThreadID,
		Steps:         steps,
		FinalResponse: e.FinalResponse,
		AgentsInvoked: e.AgentsInvoked,
		TotalTokens:   fromTokenUsage(e.TotalTokens),
		TotalCostUSD:  e.TotalCostUSD,
		StartedAt:     e.StartedAt,
		EndedAt:       e.EndedAt,
		Status:        string(e.Status),
	}
}

func (d executionDocument) toExecution() claim.AgentExecution {
	steps := make([]claim.AgentStepExecution, len(d.Steps))
	for i, s := range d.Steps {
		steps[i] = s.toAgentStep()
	}
	return claim.AgentExecution{
		ExecutionID:   d.ExecutionID,
		ClaimID:       d.ClaimID,
		ThreadID:      d.ThreadID,
		Steps:         steps,
		FinalResponse: d.FinalResponse,
		AgentsInvoked: d.AgentsInvoked,
		TotalTokens:   d.TotalTokens.toTokenUsage(),
		TotalCostUSD:  d.TotalCostUSD,
		StartedAt:     d.StartedAt,
		EndedAt:       d.EndedAt,
		Status:        claim.RunStatus(d.Status),
	}
}

// tokenUsageRecordDocument (full record) is partitioned by a synthetic record_id
// (spec.md §6.1).
type tokenUsageRecordDocument struct {
	RecordID          string             `bson:"record_id"`
	ClaimID           string             `bson:"claim_id"`
	ExecutionID       string             `bson:"execution_id"`
	AgentName         string             `bson:"agent_name"`
	ModelName         string             `bson:"model_name"`
	OperationType     string             `bson:"operation_type,omitempty"`
	Usage             tokenUsageDocument `bson:"usage"`
	PromptCostUSD     float64            `bson:"prompt_cost_usd"`
	CompletionCostUSD float64            `bson:"completion_cost_usd"`
	TotalCostUSD      float64            `bson:"total_cost_usd"`
	RecordedAt        time.Time          `bson:"recorded_at"`
}

func fromTokenUsageRecord(r claim.TokenUsageRecord) tokenUsageRecordDocument {
	return tokenUsageRecordDocument{
		RecordID:          r.RecordID,
		ClaimID:           r.ClaimID,
		ExecutionID:       r.ExecutionID,
		AgentName:         r.AgentName,
		ModelName:         r.ModelName,
		OperationType:     r.OperationType,
		Usage:             fromTokenUsage(r.Usage),
		PromptCostUSD:     r.PromptCostUSD,
		CompletionCostUSD: r.CompletionCostUSD,
		TotalCostUSD:      r.TotalCostUSD,
		RecordedAt:        r.RecordedAt,
	}
}

func (d tokenUsageRecordDocument) toRecord() claim.TokenUsageRecord {
	return claim.TokenUsageRecord{
		RecordID:          d.RecordID,
		ClaimID:           d.ClaimID,
		ExecutionID:       d.ExecutionID,
		AgentName:         d.AgentName,
		ModelName:         d.ModelName,
		OperationType:     d.OperationType,
		Usage:             d.Usage.toTokenUsage(),
		PromptCostUSD:     d.PromptCostUSD,
		CompletionCostUSD: d.CompletionCostUSD,
		TotalCostUSD:      d.TotalCostUSD,
		RecordedAt:        d.RecordedAt,
	}
}

type toolDescriptorDocument struct {
	Name        string         `bson:"name"`
	Description string         `bson:"description,omitempty"`
	InputSchema map[string]any `bson:"input_schema,omitempty"`
}

type agentDefinitionVersionDocument struct {
	Version      string    `bson:"version"`
	Instructions string    `bson:"instructions"`
	Temperature  float64   `bson:"temperature"`
	RetiredAt    time.Time `bson:"retired_at"`
}

// agentDefinitionDocument is the Mongo-persisted shape of an
// AgentDefinition, keyed by the stable specialist name.
type agentDefinitionDocument struct {
	Name            string                           `bson:"name"`
	Version         string                           `bson:"version"`
	Instructions    string                           `bson:"instructions"`
	ModelDeployment string                           `bson:"model_deployment"`
	Temperature     float64                          `bson:"temperature"`
	Tools           []toolDescriptorDocument         `bson:"tools"`
	IsActive        bool                             `bson:"is_active"`
	VersionHistory  []agentDefinitionVersionDocument `bson:"version_history"`
	CreatedAt       time.Time                        `bson:"created_at"`
	UpdatedAt       time.Time                        `bson:"updated_at"`
}

func fromAgentDefinition(def claim.AgentDefinition) agentDefinitionDocument {
	tools := make([]toolDescriptorDocument, len(def.Tools))
	for i, t := range def.Tools {
		tools[i] = toolDescriptorDocument{Name: t.Name, Description: t.Description, InputSchema: t.InputSchema}
	}
	history := make([]agentDefinitionVersionDocument, len(def.VersionHistory))
	for i, v := range def.VersionHistory {
		history[i] = agentDefinitionVersionDocument{Version: v.Version, Instructions: v.Instructions, Temperature: v.Temperature, RetiredAt: v.RetiredAt}
	}
	return agentDefinitionDocument{
		Name:            def.Name,
		Version:         def.Version,
		Instructions:    def.Instructions,
		ModelDeployment: def.ModelDeployment,
		Temperature:     def.Temperature,
		Tools:           tools,
		IsActive:        def.IsActive,
		VersionHistory:  history,
		CreatedAt:       def.CreatedAt,
		UpdatedAt:       def.UpdatedAt,
	}
}

func (d agentDefinitionDocument) toAgentDefinition() claim.AgentDefinition {
	tools := make([]claim.ToolDescriptor, len(d.Tools))
	for i, t := range d.Tools {
		tools[i] = claim.ToolDescriptor{Name: t.Name, Description: t.Description, InputSchema: t.InputSchema}
	}
	history := make([]claim.AgentDefinitionVersion, len(d.VersionHistory))
	for i, v := range d.VersionHistory {
		history[i] = claim.AgentDefinitionVersion{Version: v.Version, Instructions: v.Instructions, Temperature: v.Temperature, RetiredAt: v.RetiredAt}
	}
	return claim.AgentDefinition{
		Name:            d.Name,
		Version:         d.Version,
		Instructions:    d.Instructions,
		ModelDeployment: d.ModelDeployment,
		Temperature:     d.Temperature,
		Tools:           tools,
		IsActive:        d.IsActive,
		VersionHistory:  history,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
