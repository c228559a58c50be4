package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/pkg/logger"
	"github.com/roleready/roleready-api/pkg/metrics"
	"go.uber.org/zap"
)

const (
	roleCacheName    = "roles"
	roleKeyPrefix    = "role:id:"
	activeRolesKey   = "role:active"
	defaultRoleTTL   = 5 * time.Minute
	cleanupIntervals = 2
)

// RoleSource loads role definitions on a cache miss
type RoleSource interface {
	List(ctx context.Context, onlyActive bool) ([]*models.Role, error)
	GetByID(ctx context.Context, id string) (*models.Role, error)
}

// RoleCache keeps role definitions with their benchmarks in memory.
// Every role write must call Invalidate.
type RoleCache struct {
	cache  *gocache.Cache
	source RoleSource
	ttl    time.Duration

	// generation guards against a slow load repopulating an entry that
	// was invalidated while the load was in flight
	mu         sync.Mutex
	generation uint64
}

// NewRoleCache creates a role cache with the given TTL in seconds
func NewRoleCache(source RoleSource, ttlSeconds int) *RoleCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultRoleTTL
	}

	return &RoleCache{
		cache:  gocache.New(ttl, ttl*cleanupIntervals),
		source: source,
		ttl:    ttl,
	}
}

// Get returns one role, loading it from the source on a miss
func (rc *RoleCache) Get(ctx context.Context, id string) (*models.Role, error) {
	key := roleKeyPrefix + id
	if data, found := rc.cache.Get(key); found {
		if role, ok := data.(*models.Role); ok {
			metrics.CacheHits.WithLabelValues(roleCacheName).Inc()
			return role, nil
		}
		logger.Error("Invalid role cache data type", zap.String("key", key))
		rc.cache.Delete(key)
	}

	metrics.CacheMisses.WithLabelValues(roleCacheName).Inc()
	gen := rc.currentGeneration()

	role, err := rc.source.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rc.store(gen, key, role)
	return role, nil
}

// ListActive returns all active roles, loading them on a miss
func (rc *RoleCache) ListActive(ctx context.Context) ([]*models.Role, error) {
	if data, found := rc.cache.Get(activeRolesKey); found {
		if roles, ok := data.([]*models.Role); ok {
			metrics.CacheHits.WithLabelValues(roleCacheName).Inc()
			return roles, nil
		}
		rc.cache.Delete(activeRolesKey)
	}

	metrics.CacheMisses.WithLabelValues(roleCacheName).Inc()
	gen := rc.currentGeneration()

	roles, err := rc.source.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load active roles: %w", err)
	}

	rc.store(gen, activeRolesKey, roles)
	return roles, nil
}

// Invalidate drops every cached role. Role writes change both the single
// entry and the active list, so everything goes.
func (rc *RoleCache) Invalidate() {
	rc.mu.Lock()
	rc.generation++
	rc.cache.Flush()
	rc.mu.Unlock()

	metrics.CacheSize.WithLabelValues(roleCacheName).Set(0)
	logger.Debug("Role cache invalidated")
}

// Size returns the number of cached entries
func (rc *RoleCache) Size() int {
	return rc.cache.ItemCount()
}

func (rc *RoleCache) currentGeneration() uint64 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.generation
}

func (rc *RoleCache) store(gen uint64, key string, value any) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if gen != rc.generation {
		return
	}
	rc.cache.Set(key, value, rc.ttl)
	metrics.CacheSize.WithLabelValues(roleCacheName).Set(float64(rc.cache.ItemCount()))
}
