package agentregistry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedDescriptor mirrors Entry's metadata for cross-replica caching.
// ToolFunctions are process-local callables and never cross the wire; only
// the toolset descriptor and remote identity are cached.
type CachedDescriptor struct {
	RemoteID          string   `json:"remote_id"`
	ToolsetDescriptor []string `json:"toolset_descriptor"`
}

// DistributedCache publishes registry descriptors to Redis (Publish) and
// reads them back (Fetch) so that replicas can share them. It is a
// standalone helper: Registry holds no reference to it, and Register,
// Lookup, Available and List never touch Redis.
type DistributedCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewDistributedCache wraps client for publishing and fetching descriptors.
// keyPrefix namespaces keys when multiple orchestrator deployments share a
// Redis instance (e.g. "claims:registry:").
func NewDistributedCache(client *redis.Client, keyPrefix string, ttl time.Duration) *DistributedCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &DistributedCache{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

// Publish writes name's descriptor to Redis, refreshing its TTL.
func (c *DistributedCache) Publish(ctx context.Context, name string, entry Entry) error {
	data, err := json.Marshal(CachedDescriptor{
		RemoteID:          entry.RemoteID,
		ToolsetDescriptor: entry.ToolsetDescriptor,
	})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.keyPrefix+name, data, c.ttl).Err()
}

// Fetch reads name's descriptor from Redis, reporting ok=false if absent.
func (c *DistributedCache) Fetch(ctx context.Context, name string) (CachedDescriptor, bool, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+name).Bytes()
	if err == redis.Nil {
		return CachedDescriptor{}, false, nil
	}
	if err != nil {
		return CachedDescriptor{}, false, err
	}
	var desc CachedDescriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return CachedDescriptor{}, false, err
	}
	return desc, true, nil
}
