// Package pool ranks match candidates for one user.
package pool

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kindredlabs/matchcore/internal/match"
)

// Pairs below this overall score are not worth showing.
const DefaultMinOverall = 40

const defaultConcurrency = 4

// Candidate is one ranked pool entry.
type Candidate struct {
	UserID uuid.UUID     `json:"user_id"`
	Result *match.Result `json:"result"`
}

// Ranker scores a set of candidates against one user and orders the keepers.
type Ranker struct {
	calc        *match.Calculator
	logger      *zap.Logger
	minOverall  int
	concurrency int
}

func NewRanker(calc *match.Calculator, logger *zap.Logger) *Ranker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{
		calc:        calc,
		logger:      logger,
		minOverall:  DefaultMinOverall,
		concurrency: defaultConcurrency,
	}
}

// Rank computes the match per candidate, drops vetoed pairs and pairs below
// the overall threshold, and sorts the rest best-first. Candidates are
// independent, so they are scored concurrently.
func (r *Ranker) Rank(ctx context.Context, userID uuid.UUID, candidateIDs []uuid.UUID) ([]Candidate, error) {
	results := make([]*match.Result, len(candidateIDs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, candidateID := range candidateIDs {
		if candidateID == userID {
			continue
		}
		g.Go(func() error {
			result, err := r.calc.Calculate(ctx, userID, candidateID)
			if err != nil {
				return fmt.Errorf("score candidate %s: %w", candidateID, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pool := make([]Candidate, 0, len(candidateIDs))
	for i, result := range results {
		if result == nil {
			continue
		}
		if !result.Compatible {
			r.logger.Debug("candidate vetoed",
				zap.String("candidate_id", candidateIDs[i].String()),
				zap.Strings("reasons", result.Reasons),
			)
			continue
		}
		if result.Overall < r.minOverall {
			r.logger.Debug("candidate below threshold",
				zap.String("candidate_id", candidateIDs[i].String()),
				zap.Int("overall", result.Overall),
				zap.Int("threshold", r.minOverall),
			)
			continue
		}
		pool = append(pool, Candidate{UserID: candidateIDs[i], Result: result})
	}

	// Best first; ties broken by user id so the order is deterministic.
	sort.Slice(pool, func(i, j int) bool {
		if pool[i].Result.Overall != pool[j].Result.Overall {
			return pool[i].Result.Overall > pool[j].Result.Overall
		}
		return pool[i].UserID.String() < pool[j].UserID.String()
	})

	return pool, nil
}
