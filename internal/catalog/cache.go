package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/richxcame/transitops/pkg/logger"
	"github.com/richxcame/transitops/pkg/redis"
	"go.uber.org/zap"
)

const (
	ticketTypeKeyPrefix = "catalog:ticket_type:"
	ticketTypesKey      = "catalog:ticket_types"
	pricingRulesKey     = "catalog:pricing_rules"
)

// CachedReader is a Redis read-through cache in front of the catalog
// repository. Only hot, rarely-changing reference rows are cached; entity
// existence checks used inside transactions go straight to the repository.
type CachedReader struct {
	*Repository
	cache *redis.Client
	ttl   time.Duration
}

// NewCachedReader wraps the repository with a Redis cache
func NewCachedReader(repo *Repository, cache *redis.Client, ttl time.Duration) *CachedReader {
	return &CachedReader{Repository: repo, cache: cache, ttl: ttl}
}

// GetTicketType returns a ticket type, serving from cache when possible
func (c *CachedReader) GetTicketType(ctx context.Context, id uuid.UUID) (*TicketType, error) {
	key := ticketTypeKeyPrefix + id.String()

	if raw, err := c.cache.GetString(ctx, key); err == nil {
		tt := &TicketType{}
		if err := json.Unmarshal([]byte(raw), tt); err == nil {
			return tt, nil
		}
	} else if err != goredis.Nil {
		logger.WithContext(ctx).Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	}

	tt, err := c.Repository.GetTicketType(ctx, id)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, tt)
	return tt, nil
}

// ListTicketTypes returns all ticket types, serving from cache when possible
func (c *CachedReader) ListTicketTypes(ctx context.Context) ([]*TicketType, error) {
	if raw, err := c.cache.GetString(ctx, ticketTypesKey); err == nil {
		var types []*TicketType
		if err := json.Unmarshal([]byte(raw), &types); err == nil {
			return types, nil
		}
	}

	types, err := c.Repository.ListTicketTypes(ctx)
	if err != nil {
		return nil, err
	}

	c.store(ctx, ticketTypesKey, types)
	return types, nil
}

// GetActivePricingRules returns active rules, serving from cache when possible
func (c *CachedReader) GetActivePricingRules(ctx context.Context) ([]*DynamicPricingRule, error) {
	if raw, err := c.cache.GetString(ctx, pricingRulesKey); err == nil {
		var rules []*DynamicPricingRule
		if err := json.Unmarshal([]byte(raw), &rules); err == nil {
			return rules, nil
		}
	}

	rules, err := c.Repository.GetActivePricingRules(ctx)
	if err != nil {
		return nil, err
	}

	c.store(ctx, pricingRulesKey, rules)
	return rules, nil
}

// InvalidatePricingRules drops the cached rule set after a rule mutation
func (c *CachedReader) InvalidatePricingRules(ctx context.Context) {
	if err := c.cache.Delete(ctx, pricingRulesKey); err != nil {
		logger.WithContext(ctx).Warn("catalog cache invalidation failed",
			zap.String("key", pricingRulesKey), zap.Error(err))
	}
}

func (c *CachedReader) store(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.cache.SetWithExpiration(ctx, key, raw, c.ttl); err != nil {
		logger.WithContext(ctx).Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}
