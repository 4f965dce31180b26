// Package match computes deterministic, symmetric compatibility between two
// users' dimension maps.
package match

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kindredlabs/matchcore/internal/dimension"
	"github.com/kindredlabs/matchcore/internal/profile"
)

// Confidence summarizes how much of the dimension space both users have
// actually answered.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Completeness thresholds for the confidence buckets.
const (
	mediumCompleteness = 0.3
	highCompleteness   = 0.6
)

// Position gaps above this distance violate a dealbreaker.
const dealbreakerMaxDistance = 2

const neutralScore = 50

// Result is the outcome of one pairwise comparison. Either the pair is vetoed
// (Reasons lists why) or it carries the aggregate scores. Results are computed
// fresh per request and never persisted.
type Result struct {
	Compatible bool       `json:"compatible"`
	Reasons    []string   `json:"reasons,omitempty"`
	Lifestyle  int        `json:"lifestyle,omitempty"`
	Values     int        `json:"values,omitempty"`
	Overall    int        `json:"overall,omitempty"`
	Confidence Confidence `json:"confidence,omitempty"`
}

// Source is the read side of the score store needed for matching.
type Source interface {
	GetMap(ctx context.Context, userID uuid.UUID) (profile.Map, error)
}

// Calculator scores pairs of users against the dimension registry.
type Calculator struct {
	source Source
}

func NewCalculator(source Source) *Calculator {
	return &Calculator{source: source}
}

// Calculate fetches both users' dimension maps and scores the pair. The two
// fetches are independent reads and run concurrently.
func (c *Calculator) Calculate(ctx context.Context, userA, userB uuid.UUID) (*Result, error) {
	var mapA, mapB profile.Map

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mapA, err = c.source.GetMap(ctx, userA)
		return err
	})
	g.Go(func() error {
		var err error
		mapB, err = c.source.GetMap(ctx, userB)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch dimension maps: %w", err)
	}

	return FromMaps(mapA, mapB), nil
}

// FromMaps scores a pair from already-fetched maps.
func FromMaps(a, b profile.Map) *Result {
	if reasons := CheckDealbreakers(a, b); len(reasons) > 0 {
		return &Result{Compatible: false, Reasons: reasons}
	}

	lifestyle := average(categoryScores(a, b, dimension.LifestyleKeys))
	values := average(categoryScores(a, b, dimension.ValuesKeys))
	overall := int(math.Round(float64(lifestyle)*0.5 + float64(values)*0.5))

	return &Result{
		Compatible: true,
		Lifestyle:  lifestyle,
		Values:     values,
		Overall:    overall,
		Confidence: confidence(a, b),
	}
}

// CheckDealbreakers inspects every dimension either user flagged as a hard
// requirement. A missing or unformed counterpart score vetoes just as a large
// position gap does. Reasons are deduplicated and ordered by the registry.
func CheckDealbreakers(a, b profile.Map) []string {
	seen := make(map[string]bool)
	var reasons []string

	add := func(reason string) {
		if !seen[reason] {
			seen[reason] = true
			reasons = append(reasons, reason)
		}
	}

	for _, key := range dimension.All() {
		checkOneWay(key, a.Lookup(key), b.Lookup(key), add)
		checkOneWay(key, b.Lookup(key), a.Lookup(key), add)
	}

	return reasons
}

func checkOneWay(key dimension.Key, owner, other *profile.Score, add func(string)) {
	if owner == nil || !owner.Dealbreaker {
		return
	}

	if other == nil || !other.Answered() {
		add(fmt.Sprintf("%s:missing", key))
		return
	}

	if distance(owner.Position, other.Position) > dealbreakerMaxDistance {
		add(fmt.Sprintf("%s:incompatible", key))
	}
}

// DimensionCompatibility scores one dimension on a 0-100 scale. Missing or
// unformed data on either side is neutral, exactly 50.
func DimensionCompatibility(a, b *profile.Score, rule dimension.Rule) int {
	if a == nil || b == nil || !a.Answered() || !b.Answered() {
		return neutralScore
	}

	confidence := float64(min(a.Formation, b.Formation)) / float64(profile.FormationMax)
	importanceWeight := float64(max(a.Importance, b.Importance)) / float64(profile.ImportanceMax)

	var base int
	switch rule {
	case dimension.RuleSimilarity:
		// Identical positions score 100; each step apart costs 25.
		base = max(0, 100-distance(a.Position, b.Position)*25)
	case dimension.RuleCompatibility:
		// Tolerant within a two-step window, penalized sharply beyond it.
		if d := distance(a.Position, b.Position); d <= 2 {
			base = 100 - d*15
		} else {
			base = 30
		}
	case dimension.RuleComplementary:
		base = 70
	default:
		panic(fmt.Sprintf("match: unknown compatibility rule %q", rule))
	}

	// The 0.5 floor keeps a dimension from collapsing below half its base
	// score purely for lack of certainty.
	return int(math.Round(float64(base) * (0.5 + confidence*0.3 + importanceWeight*0.2)))
}

func categoryScores(a, b profile.Map, keys []dimension.Key) []int {
	scores := make([]int, 0, len(keys))
	for _, key := range keys {
		def, err := dimension.Lookup(key)
		if err != nil {
			panic(err)
		}
		scores = append(scores, DimensionCompatibility(a.Lookup(key), b.Lookup(key), def.Rule))
	}
	return scores
}

// average of no dimensions is neutral, never zero.
func average(scores []int) int {
	if len(scores) == 0 {
		return neutralScore
	}
	sum := 0
	for _, score := range scores {
		sum += score
	}
	return int(math.Round(float64(sum) / float64(len(scores))))
}

func confidence(a, b profile.Map) Confidence {
	total := dimension.Count()
	completeness := float64(a.AnsweredCount()+b.AnsweredCount()) / float64(2*total)

	switch {
	case completeness < mediumCompleteness:
		return ConfidenceLow
	case completeness < highCompleteness:
		return ConfidenceMedium
	default:
		return ConfidenceHigh
	}
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
