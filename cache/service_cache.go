// cache/service_cache.go
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/bhavesh4825f/project/models"
)

const (
	activeServicesKey = "services:active"
	activeServicesTTL = 5 * time.Minute
)

// ServiceCache is a read-through cache for the active service list.
// The database stays the only source of truth: every catalog mutation
// must call Invalidate, and entries expire on their own as a backstop.
// A nil client disables caching entirely.
type ServiceCache struct {
	client *redis.Client
}

func NewServiceCache(client *redis.Client) *ServiceCache {
	return &ServiceCache{client: client}
}

// GetActive returns the cached active list, or nil on a miss
func (sc *ServiceCache) GetActive(ctx context.Context) []models.Service {
	if sc == nil || sc.client == nil {
		return nil
	}

	raw, err := sc.client.Get(ctx, activeServicesKey).Bytes()
	if err != nil {
		return nil
	}

	var services []models.Service
	if err := json.Unmarshal(raw, &services); err != nil {
		// Poisoned entry, drop it
		sc.client.Del(ctx, activeServicesKey)
		return nil
	}
	return services
}

// SetActive stores the active list after a database read
func (sc *ServiceCache) SetActive(ctx context.Context, services []models.Service) {
	if sc == nil || sc.client == nil {
		return
	}

	raw, err := json.Marshal(services)
	if err != nil {
		return
	}
	sc.client.Set(ctx, activeServicesKey, raw, activeServicesTTL)
}

// Invalidate drops the cached list. Called on every catalog mutation.
func (sc *ServiceCache) Invalidate(ctx context.Context) {
	if sc == nil || sc.client == nil {
		return
	}
	sc.client.Del(ctx, activeServicesKey)
}
