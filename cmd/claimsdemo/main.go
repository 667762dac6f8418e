// Command claimsdemo wires the claims orchestrator's components together
// and runs a single illustrative claim through the full pipeline: registry
// lookup, supervisor delegation, trace construction, token usage capture,
// execution persistence, and (if configured) post-run evaluation.
//
// This is not a transport surface — there is no HTTP listener here. It
// exists to exercise the wiring end to end and print the result.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/google/uuid"
	openaisdk "github.com/openai/openai-go"
	openaioption "github.com/openai/openai-go/option"
	_ "modernc.org/sqlite"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	mongooptions "go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/clarion-insurance/claims-orchestrator/agentregistry"
	"github.com/clarion-insurance/claims-orchestrator/claim"
	claimsconfig "github.com/clarion-insurance/claims-orchestrator/config"
	"github.com/clarion-insurance/claims-orchestrator/evaluation"
	"github.com/clarion-insurance/claims-orchestrator/execstore"
	"github.com/clarion-insurance/claims-orchestrator/orchestrator"
	"github.com/clarion-insurance/claims-orchestrator/service"
	"github.com/clarion-insurance/claims-orchestrator/specialists"
	"github.com/clarion-insurance/claims-orchestrator/telemetry"
	"github.com/clarion-insurance/claims-orchestrator/threadrun"
	"github.com/clarion-insurance/claims-orchestrator/usage"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx := context.Background()
	logger := telemetry.NewClueLogger()

	cfg, err := claimsconfig.Load(os.Getenv("CLAIMS_CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("claimsdemo: load config: %w", err)
	}

	reg := buildRegistry(cfg)

	openaiClient := openaisdk.NewClient(openaioption.WithAPIKey(cfg.OpenAIAPIKey))
	driver := threadrun.New(threadrun.NewOpenAIService(newThreadsAPI(&openaiClient)), logger, nil, nil)

	fallback, err := buildFallback(cfg)
	if err != nil {
		return fmt.Errorf("claimsdemo: build analytics fallback: %w", err)
	}
	adapters := specialists.NewAdapters(reg, driver, fallback)

	remote := func() (string, error) {
		entry, err := reg.Lookup("supervisor")
		if err != nil {
			return "", err
		}
		return entry.RemoteID, nil
	}
	orc := orchestrator.New(reg, driver, adapters, remote)

	store, err := buildStore(cfg)
	if err != nil {
		return fmt.Errorf("claimsdemo: build execution store: %w", err)
	}
	tracker := usage.NewTracker(store, logger, uuid.NewString)

	evaluator, evaluatorID, err := buildEvaluator(cfg)
	if err != nil {
		return fmt.Errorf("claimsdemo: build evaluator: %w", err)
	}

	svc := service.New(service.Options{
		Orchestrator:    orc,
		Registry:        reg,
		Store:           store,
		Tracker:         tracker,
		Evaluator:       evaluator,
		EvaluatorID:     evaluatorID,
		ModelDeployment: cfg.SupervisorModelDeployment,
		Logger:          logger,
		NewID:           uuid.NewString,
		Now:             time.Now,
	})

	if err := seedAgentDefinitions(ctx, svc, cfg); err != nil {
		return fmt.Errorf("claimsdemo: seed agent definitions: %w", err)
	}

	out, err := svc.ProcessClaim(ctx, demoClaim(), true)
	if err != nil {
		return fmt.Errorf("claimsdemo: process claim: %w", err)
	}

	fmt.Println("execution:", out.ExecutionID)
	fmt.Println("final decision:", out.FinalDecision)
	for _, chunk := range out.ConversationChronological {
		fmt.Printf("  [%s] %v\n", chunk.AgentName, chunk.Messages)
	}
	if out.EvaluationResult != nil {
		fmt.Printf("evaluation: overall=%d groundedness=%d relevance=%d coherence=%d fluency=%d\n",
			out.EvaluationResult.Overall, out.EvaluationResult.Groundedness,
			out.EvaluationResult.Relevance, out.EvaluationResult.Coherence, out.EvaluationResult.Fluency)
	}
	return nil
}

// demoClaim is the fixed illustrative claim this entry point runs.
func demoClaim() claim.Claim {
	return claim.Claim{
		ClaimID:      "CLM-DEMO-1",
		ClaimType:    "Major Collision",
		ClaimantID:   "CLAIMANT-DEMO-1",
		ClaimantName: "Jordan Lee",
		State:        "CA",
		PolicyNumber: "POL-DEMO-1",
		Description:  "Rear-end collision on I-5, moderate bumper and trunk damage.",
	}
}

// buildRegistry registers each specialist (and the supervisor) under the
// remote agent ids supplied via environment variables — this demo does not
// perform the deployment pass that would create those remote agents; it
// assumes they already exist.
func buildRegistry(cfg claimsconfig.Config) *agentregistry.Registry {
	reg := agentregistry.New()
	remoteIDs := map[string]string{
		"supervisor":                  envOr("CLAIMS_SUPERVISOR_ASST_ID", "asst_supervisor"),
		specialists.NameClaimAssessor: envOr("CLAIMS_CLAIM_ASSESSOR_ASST_ID", "asst_claim_assessor"),
		specialists.NamePolicyChecker: envOr("CLAIMS_POLICY_CHECKER_ASST_ID", "asst_policy_checker"),
		specialists.NameRiskAnalyst:   envOr("CLAIMS_RISK_ANALYST_ASST_ID", "asst_risk_analyst"),
		specialists.NameDataAnalyst:   envOr("CLAIMS_DATA_ANALYST_ASST_ID", "asst_data_analyst"),
		specialists.NameCommunication: envOr("CLAIMS_COMMUNICATION_ASST_ID", "asst_communication"),
	}
	for name, remoteID := range remoteIDs {
		_ = reg.Register(name, agentregistry.Entry{RemoteID: remoteID}, true)
	}
	return reg
}

// seedAgentDefinitions registers the durable AgentDefinition record for the
// supervisor and each specialist, version 1.0.0, active. In a real
// deployment these would already exist from a prior deployment pass; this
// demo creates them on every run so get_claim_execution_history and the
// registry's version bookkeeping have something to show.
func seedAgentDefinitions(ctx context.Context, svc *service.Service, cfg claimsconfig.Config) error {
	now := time.Now()
	defs := []claim.AgentDefinition{
		{
			Name:            "supervisor",
			Version:         "1.0.0",
			Instructions:    orchestratorSupervisorInstructions(),
			ModelDeployment: cfg.SupervisorModelDeployment,
			Temperature:     0.2,
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		specialistDefinition(specialists.NameClaimAssessor, "Assesses claim validity and damage severity against policy coverage.", cfg, now),
		specialistDefinition(specialists.NamePolicyChecker, "Verifies policy coverage, exclusions, and applicable limits.", cfg, now),
		specialistDefinition(specialists.NameRiskAnalyst, "Flags fraud indicators and unusual claim patterns.", cfg, now),
		specialistDefinition(specialists.NameDataAnalyst, "Answers ad hoc claims-data questions via SQL analytics.", cfg, now),
		specialistDefinition(specialists.NameCommunication, "Drafts customer-facing correspondence about claim status.", cfg, now),
	}
	for _, def := range defs {
		if err := svc.RegisterAgentDefinition(ctx, def); err != nil {
			return fmt.Errorf("register %s: %w", def.Name, err)
		}
	}
	return nil
}

func specialistDefinition(name, instructions string, cfg claimsconfig.Config, now time.Time) claim.AgentDefinition {
	return claim.AgentDefinition{
		Name:            name,
		Version:         "1.0.0",
		Instructions:    instructions,
		ModelDeployment: cfg.SupervisorModelDeployment,
		Temperature:     0.2,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// orchestratorSupervisorInstructions returns the orchestrator package's
// standard-workflow supervisor instructions, for the durable record.
func orchestratorSupervisorInstructions() string {
	return orchestrator.Instructions(false)
}

func buildFallback(cfg claimsconfig.Config) (*specialists.SQLFallback, error) {
	if cfg.AnalyticsSQLiteDSN == "" {
		return nil, nil
	}
	db, err := sql.Open("sqlite", cfg.AnalyticsSQLiteDSN)
	if err != nil {
		return nil, err
	}
	return specialists.NewSQLFallback(db), nil
}

func buildStore(cfg claimsconfig.Config) (execstore.Store, error) {
	if cfg.MongoURI == "" {
		return execstore.NewMemoryStore(), nil
	}
	client, err := mongodriver.Connect(mongooptions.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return execstore.NewMongoStore(execstore.MongoOptions{Client: client, Database: cfg.MongoDatabase})
}

func buildEvaluator(cfg claimsconfig.Config) (evaluation.Evaluator, string, error) {
	switch cfg.Evaluator {
	case "anthropic":
		model, err := evaluation.NewAnthropicModelFromAPIKey(cfg.AnthropicAPIKey, string(anthropicsdk.ModelClaudeSonnet4_5_20250929))
		if err != nil {
			return nil, "", err
		}
		return evaluation.NewPromptJudge(model, "anthropic-judge"), "anthropic-judge", nil
	case "bedrock":
		awsCfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(cfg.BedrockRegion))
		if err != nil {
			return nil, "", err
		}
		runtime := bedrockruntime.NewFromConfig(awsCfg)
		model, err := evaluation.NewBedrockModel(runtime, "anthropic.claude-3-5-sonnet-20241022-v2:0")
		if err != nil {
			return nil, "", err
		}
		return evaluation.NewPromptJudge(model, "bedrock-judge"), "bedrock-judge", nil
	default:
		return nil, "", nil
	}
}

// threadsAPI adapts the openai-go SDK's nested Beta Assistants resources
// (Threads, Threads.Messages, Threads.Runs) to threadrun.ThreadsAPI's flat
// method set.
type threadsAPI struct {
	client *openaisdk.Client
}

func newThreadsAPI(client *openaisdk.Client) *threadsAPI {
	return &threadsAPI{client: client}
}

func (a *threadsAPI) NewThread(ctx context.Context, body openaisdk.BetaThreadNewParams, opts ...openaioption.RequestOption) (*openaisdk.Thread, error) {
	return a.client.Beta.Threads.New(ctx, body, opts...)
}

func (a *threadsAPI) NewMessage(ctx context.Context, threadID string, body openaisdk.BetaThreadMessageNewParams, opts ...openaioption.RequestOption) (*openaisdk.Message, error) {
	return a.client.Beta.Threads.Messages.New(ctx, threadID, body, opts...)
}

func (a *threadsAPI) ListMessages(ctx context.Context, threadID string, query openaisdk.BetaThreadMessageListParams, opts ...openaioption.RequestOption) ([]openaisdk.Message, error) {
	page, err := a.client.Beta.Threads.Messages.List(ctx, threadID, query, opts...)
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

func (a *threadsAPI) NewRun(ctx context.Context, threadID string, body openaisdk.BetaThreadRunNewParams, opts ...openaioption.RequestOption) (*openaisdk.Run, error) {
	return a.client.Beta.Threads.Runs.New(ctx, threadID, body, opts...)
}

func (a *threadsAPI) GetRun(ctx context.Context, threadID, runID string, opts ...openaioption.RequestOption) (*openaisdk.Run, error) {
	return a.client.Beta.Threads.Runs.Get(ctx, threadID, runID, opts...)
}

func (a *threadsAPI) SubmitToolOutputs(ctx context.Context, threadID, runID string, body openaisdk.BetaThreadRunSubmitToolOutputsParams, opts ...openaioption.RequestOption) (*openaisdk.Run, error) {
	return a.client.Beta.Threads.Runs.SubmitToolOutputs(ctx, threadID, runID, body, opts...)
}

func (a *threadsAPI) CancelRun(ctx context.Context, threadID, runID string, opts ...openaioption.RequestOption) (*openaisdk.Run, error) {
	return a.client.Beta.Threads.Runs.Cancel(ctx, threadID, runID, opts...)
}

var _ threadrun.ThreadsAPI = (*threadsAPI)(nil)

func envOr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
