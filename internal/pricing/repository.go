package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/richxcame/transitops/internal/catalog"
	"github.com/richxcame/transitops/pkg/database"
)

// ErrRuleNotFound is returned when a pricing rule does not exist
var ErrRuleNotFound = errors.New("pricing rule not found")

const ruleColumns = `id, name, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
		day_type, multiplier, is_active, created_at`

// Repository handles database operations for dynamic pricing rules
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new pricing rule repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func scanRule(row pgx.Row) (*catalog.DynamicPricingRule, error) {
	var rule catalog.DynamicPricingRule
	err := row.Scan(
		&rule.ID, &rule.Name, &rule.StartTime, &rule.EndTime,
		&rule.DayType, &rule.Multiplier, &rule.IsActive, &rule.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}
	return &rule, nil
}

// CreateRule inserts a new rule, active by default
func (r *Repository) CreateRule(ctx context.Context, req *CreateRuleRequest) (*catalog.DynamicPricingRule, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		INSERT INTO dynamic_pricing_rules (name, start_time, end_time, day_type, multiplier)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + ruleColumns

	rule, err := scanRule(q.QueryRow(ctx, query,
		req.Name, req.StartTime, req.EndTime, req.DayType, req.Multiplier))
	if err != nil {
		return nil, fmt.Errorf("failed to create pricing rule: %w", err)
	}

	return rule, nil
}

// GetRule returns one rule regardless of its active flag
func (r *Repository) GetRule(ctx context.Context, id uuid.UUID) (*catalog.DynamicPricingRule, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `SELECT ` + ruleColumns + ` FROM dynamic_pricing_rules WHERE id = $1`

	rule, err := scanRule(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get pricing rule: %w", err)
	}

	return rule, nil
}

// ListRules returns all rules, active and inactive, newest first
func (r *Repository) ListRules(ctx context.Context) ([]*catalog.DynamicPricingRule, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `SELECT ` + ruleColumns + ` FROM dynamic_pricing_rules ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pricing rules: %w", err)
	}
	defer rows.Close()

	rules := make([]*catalog.DynamicPricingRule, 0)
	for rows.Next() {
		rule := &catalog.DynamicPricingRule{}
		if err := rows.Scan(
			&rule.ID, &rule.Name, &rule.StartTime, &rule.EndTime,
			&rule.DayType, &rule.Multiplier, &rule.IsActive, &rule.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pricing rule: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pricing rules: %w", err)
	}

	return rules, nil
}

// UpdateRule applies the non-nil fields of req to one rule
func (r *Repository) UpdateRule(ctx context.Context, id uuid.UUID, req *UpdateRuleRequest) (*catalog.DynamicPricingRule, error) {
	q := database.QuerierFromContext(ctx, r.db)

	var sets []string
	args := []interface{}{id}

	add := func(col string, val interface{}) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.StartTime != nil {
		add("start_time", *req.StartTime)
	}
	if req.EndTime != nil {
		add("end_time", *req.EndTime)
	}
	if req.DayType != nil {
		add("day_type", *req.DayType)
	}
	if req.Multiplier != nil {
		add("multiplier", *req.Multiplier)
	}
	if req.IsActive != nil {
		add("is_active", *req.IsActive)
	}

	if len(sets) == 0 {
		return r.GetRule(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE dynamic_pricing_rules
		SET %s
		WHERE id = $1
		RETURNING `+ruleColumns, strings.Join(sets, ", "))

	rule, err := scanRule(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update pricing rule: %w", err)
	}

	return rule, nil
}

// DeactivateRule soft-deletes a rule so the resolver stops seeing it
func (r *Repository) DeactivateRule(ctx context.Context, id uuid.UUID) error {
	q := database.QuerierFromContext(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE dynamic_pricing_rules SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate pricing rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRuleNotFound
	}

	return nil
}
