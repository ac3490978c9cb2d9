// Package matching implements the ranking core: eligibility filtering,
// scoring through an injected Scorer, stable ordering, shortlist truncation
// and the selection cap.
package matching

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/propertymind/mietermatch/internal/market"
)

// RankedCandidate is one shortlist entry: a tenant profile with its score
// and, when produced by the AI-assisted scorer, a rationale.
type RankedCandidate struct {
	Tenant            *market.TenantProfile
	Score             int
	Reasoning         string
	IncomeSuitability string
}

// Step describes one stage of a ranking round for logging.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Engine runs one ranking round for a property against a seeker pool. It
// holds no mutable state and is safe for concurrent use.
type Engine struct {
	config Config
	logger *zap.Logger
}

// NewEngine builds an engine with defaults applied for unset config values.
func NewEngine(cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{config: cfg.withDefaults(), logger: logger}
}

// Config returns the effective configuration after defaults.
func (e *Engine) Config() Config {
	return e.config
}

// Rank filters the pool to eligible active profiles, scores them with the
// injected scorer, sorts descending by score (input order preserved on ties)
// and truncates to the shortlist bound. Malformed records and scorer
// failures drop the affected pair only.
func (e *Engine) Rank(ctx context.Context, property *market.Property, tenants *market.Tenants, scorer Scorer) ([]RankedCandidate, error) {
	if property == nil {
		return nil, errors.New("property is required")
	}
	if scorer == nil {
		return nil, errors.New("scorer is required")
	}
	if tenants == nil {
		tenants = &market.Tenants{}
	}

	initial := tenants.Len()
	active := tenants.Active()
	e.logStep("active profiles", Step{Initial: initial, Dropped: initial - active.Len(), Left: active.Len()})

	eligible := make([]*market.TenantProfile, 0, active.Len())
	for _, tenant := range active.Items {
		ok, reason, err := e.eligible(property, tenant)
		if err != nil {
			// Fails closed: a broken record is treated as ineligible.
			e.logger.Warn("dropping pair with malformed input",
				zap.String("tenant_id", tenant.ID),
				zap.Error(err),
			)
			continue
		}
		if !ok {
			e.logger.Debug("tenant not eligible",
				zap.String("tenant_id", tenant.ID),
				zap.String("failed_rule", reason),
			)
			continue
		}
		eligible = append(eligible, tenant)
	}
	e.logStep("eligibility", Step{Initial: active.Len(), Dropped: active.Len() - len(eligible), Left: len(eligible)})

	candidates, err := e.scoreAll(ctx, property, eligible, scorer)
	if err != nil {
		return nil, err
	}
	e.logStep("scoring", Step{Initial: len(eligible), Dropped: len(eligible) - len(candidates), Left: len(candidates)})

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Score > candidates[j].Score })

	if len(candidates) > e.config.ShortlistSize {
		candidates = candidates[:e.config.ShortlistSize]
	}
	return candidates, nil
}

// scoreAll fans the scorer out over the eligible pairs. Each call is
// independent; completion order does not matter because the results keep
// their input slot until the final sort. A scorer error drops its pair and
// never cancels the group.
func (e *Engine) scoreAll(ctx context.Context, property *market.Property, eligible []*market.TenantProfile, scorer Scorer) ([]RankedCandidate, error) {
	results := make([]*RankedCandidate, len(eligible))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.MaxConcurrency)
	for i, tenant := range eligible {
		g.Go(func() error {
			assessment, err := scorer.Score(gctx, property, tenant)
			if err != nil {
				e.logger.Warn("scoring failed, dropping pair",
					zap.String("tenant_id", tenant.ID),
					zap.Error(err),
				)
				return nil
			}
			results[i] = &RankedCandidate{
				Tenant:            tenant,
				Score:             assessment.Score,
				Reasoning:         assessment.Reasoning,
				IncomeSuitability: assessment.IncomeSuitability,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := make([]RankedCandidate, 0, len(eligible))
	for _, res := range results {
		if res != nil {
			candidates = append(candidates, *res)
		}
	}
	return candidates, nil
}

func (e *Engine) logStep(name string, step Step) {
	e.logger.Info("ranking step",
		zap.String("name", name),
		zap.Int("initial", step.Initial),
		zap.Int("dropped", step.Dropped),
		zap.Int("left", step.Left),
	)
}
