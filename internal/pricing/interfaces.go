package pricing

import (
	"context"

	"github.com/google/uuid"
	"github.com/richxcame/transitops/internal/catalog"
)

// RuleStore defines persistence operations for dynamic pricing rules
type RuleStore interface {
	CreateRule(ctx context.Context, req *CreateRuleRequest) (*catalog.DynamicPricingRule, error)
	GetRule(ctx context.Context, id uuid.UUID) (*catalog.DynamicPricingRule, error)
	ListRules(ctx context.Context) ([]*catalog.DynamicPricingRule, error)
	UpdateRule(ctx context.Context, id uuid.UUID, req *UpdateRuleRequest) (*catalog.DynamicPricingRule, error)
	DeactivateRule(ctx context.Context, id uuid.UUID) error
}

// RuleCache invalidates cached rule sets after mutations
type RuleCache interface {
	InvalidatePricingRules(ctx context.Context)
}
