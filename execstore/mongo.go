package execstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/clarion-insurance/claims-orchestrator/claim"
)

const (
	defaultExecutionsCollection = "agent_executions"
	defaultTokenUsageCollection = "token_usage_records"
	defaultAgentDefsCollection  = "agent_definitions"
	defaultOpTimeout            = 5 * time.Second
)

// MongoOptions configures the MongoDB-backed Store.
type MongoOptions struct {
	Client                *mongodriver.Client
	Database              string
	ExecutionsCollection  string
	TokenUsageCollection  string
	AgentDefsCollection   string
	Timeout               time.Duration
}

// MongoStore is a MongoDB-backed Store, standing in for the source's
// Cosmos DB execution store (execution records are partitioned by
// execution_id, token records by a synthetic record_id — spec.md §6.1).
type MongoStore struct {
	executions mongoCollection
	tokens     mongoCollection
	agentDefs  mongoCollection
	timeout    time.Duration
}

// NewMongoStore returns a Store backed by opts.Client.
func NewMongoStore(opts MongoOptions) (*MongoStore, error) {
	if opts.Client == nil {
		return nil, errors.New("execstore: mongo client is required")
	}
	if opts.Database == "" {
		return nil, errors.New("execstore: database name is required")
	}
	executions := orDefault(opts.ExecutionsCollection, defaultExecutionsCollection)
	tokens := orDefault(opts.TokenUsageCollection, defaultTokenUsageCollection)
	agentDefs := orDefault(opts.AgentDefsCollection, defaultAgentDefsCollection)
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultOpTimeout
	}

	db := opts.Client.Database(opts.Database)
	return &MongoStore{
		executions: mongoCollection{db.Collection(executions)},
		tokens:     mongoCollection{db.Collection(tokens)},
		agentDefs:  mongoCollection{db.Collection(agentDefs)},
		timeout:    timeout,
	}, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// mongoCollection holds a concrete driver collection; MongoStore's methods
// call the driver directly through its coll field.
type mongoCollection struct {
	coll *mongodriver.Collection
}

func (s *MongoStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *MongoStore) SaveExecution(ctx context.Context, record claim.AgentExecution) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	doc := fromExecution(record)
	filter := bson.M{"execution_id": record.ExecutionID}
	update := bson.M{"$set": doc}
	_, err := s.executions.coll.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	return err
}

func (s *MongoStore) GetExecution(ctx context.Context, executionID string) (claim.AgentExecution, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	var doc executionDocument
	if err := s.executions.coll.FindOne(ctx, bson.M{"execution_id": executionID}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return claim.AgentExecution{}, ErrNotFound
		}
		return claim.AgentExecution{}, err
	}
	return doc.toExecution(), nil
}

func (s *MongoStore) ListExecutions(ctx context.Context, filters ExecutionFilters, limit int) ([]claim.AgentExecution, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if filters.ClaimID != "" {
		filter["claim_id"] = filters.ClaimID
	}
	if filters.Status != "" {
		filter["status"] = string(filters.Status)
	}
	if !filters.Since.IsZero() {
		filter["started_at"] = bson.M{"$gte": filters.Since}
	}

	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.executions.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []claim.AgentExecution
	for cursor.Next(ctx) {
		var doc executionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toExecution())
	}
	return out, cursor.Err()
}

func (s *MongoStore) GetClaimHistory(ctx context.Context, claimID string) ([]claim.AgentExecution, error) {
	return s.ListExecutions(ctx, ExecutionFilters{ClaimID: claimID}, 0)
}

func (s *MongoStore) SaveTokenUsage(ctx context.Context, record claim.TokenUsageRecord) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	doc := fromTokenUsageRecord(record)
	_, err := s.tokens.coll.InsertOne(ctx, doc)
	return err
}

func (s *MongoStore) TokenUsageForClaim(ctx context.Context, claimID string) ([]claim.TokenUsageRecord, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	cursor, err := s.tokens.coll.Find(ctx, bson.M{"claim_id": claimID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []claim.TokenUsageRecord
	for cursor.Next(ctx) {
		var doc tokenUsageRecordDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toRecord())
	}
	return out, cursor.Err()
}

func (s *MongoStore) SaveAgentDefinition(ctx context.Context, def claim.AgentDefinition) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	doc := fromAgentDefinition(def)
	filter := bson.M{"name": def.Name}
	update := bson.M{"$set": doc}
	_, err := s.agentDefs.coll.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	return err
}

func (s *MongoStore) GetAgentDefinition(ctx context.Context, name string) (claim.AgentDefinition, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	var doc agentDefinitionDocument
	if err := s.agentDefs.coll.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return claim.AgentDefinition{}, ErrNotFound
		}
		return claim.AgentDefinition{}, err
	}
	return doc.toAgentDefinition(), nil
}

func (s *MongoStore) ListAgentDefinitions(ctx context.Context, filters AgentDefinitionFilters) ([]claim.AgentDefinition, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if filters.Name != "" {
		filter["name"] = filters.Name
	}
	if filters.IsActive != nil {
		filter["is_active"] = *filters.IsActive
	}

	cursor, err := s.agentDefs.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []claim.AgentDefinition
	for cursor.Next(ctx) {
		var doc agentDefinitionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAgentDefinition())
	}
	return out, cursor.Err()
}

var _ Store = (*MongoStore)(nil)
