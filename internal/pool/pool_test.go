package pool

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kindredlabs/matchcore/internal/dimension"
	"github.com/kindredlabs/matchcore/internal/match"
	"github.com/kindredlabs/matchcore/internal/profile"
	"github.com/kindredlabs/matchcore/internal/store"
)

// fillScalars answers every lifestyle and values dimension with one position.
func fillScalars(t *testing.T, st *store.Memory, userID uuid.UUID, position int) {
	t.Helper()
	ctx := context.Background()

	keys := append(append([]dimension.Key{}, dimension.LifestyleKeys...), dimension.ValuesKeys...)
	for _, key := range keys {
		score := profile.Score{Formation: 4, Position: position, Importance: 3}
		if err := st.Upsert(ctx, userID, key, score); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}

func setIntent(t *testing.T, st *store.Memory, userID uuid.UUID, position int) {
	t.Helper()
	score := profile.Score{Formation: 2, Position: position, Importance: 2}
	if err := st.Upsert(context.Background(), userID, dimension.Intent, score); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRank(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	seeker := uuid.New()
	good := uuid.New()
	medium := uuid.New()
	low := uuid.New()
	vetoed := uuid.New()

	// The seeker wants a serious relationship and treats that as a hard
	// requirement.
	fillScalars(t, st, seeker, 2)
	setIntent(t, st, seeker, 2)
	if err := st.SetDealbreaker(ctx, seeker, dimension.Intent, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fillScalars(t, st, good, 2)
	setIntent(t, st, good, 2)

	fillScalars(t, st, medium, 1)
	setIntent(t, st, medium, 1)

	// Aligned on intent but opposite on every scalar dimension; scores well
	// below the pool threshold.
	fillScalars(t, st, low, -2)
	setIntent(t, st, low, 0)

	// Incompatible on the dealbreaker dimension.
	fillScalars(t, st, vetoed, 2)
	setIntent(t, st, vetoed, -2)

	ranker := NewRanker(match.NewCalculator(st), zap.NewNop())

	candidates, err := ranker.Rank(ctx, seeker, []uuid.UUID{low, vetoed, seeker, medium, good})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(candidates), candidates)
	}
	if candidates[0].UserID != good {
		t.Fatalf("expected the aligned candidate first, got %s", candidates[0].UserID)
	}
	if candidates[1].UserID != medium {
		t.Fatalf("expected the partial match second, got %s", candidates[1].UserID)
	}
	if candidates[0].Result.Overall <= candidates[1].Result.Overall {
		t.Fatalf("pool not sorted best-first: %d then %d",
			candidates[0].Result.Overall, candidates[1].Result.Overall)
	}
	for _, candidate := range candidates {
		if !candidate.Result.Compatible {
			t.Fatalf("vetoed candidate leaked into the pool: %+v", candidate)
		}
		if candidate.Result.Overall < DefaultMinOverall {
			t.Fatalf("below-threshold candidate leaked into the pool: %+v", candidate)
		}
	}
}

func TestRankEmptyCandidates(t *testing.T) {
	st := store.NewMemory()
	ranker := NewRanker(match.NewCalculator(st), zap.NewNop())

	candidates, err := ranker.Rank(context.Background(), uuid.New(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("expected an empty pool, got %+v", candidates)
	}
}

func TestRankTieBreaksByUserID(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	seeker := uuid.New()
	first := uuid.New()
	second := uuid.New()

	fillScalars(t, st, seeker, 2)
	fillScalars(t, st, first, 2)
	fillScalars(t, st, second, 2)

	candidates, err := NewRanker(match.NewCalculator(st), zap.NewNop()).
		Rank(ctx, seeker, []uuid.UUID{first, second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].Result.Overall != candidates[1].Result.Overall {
		t.Fatalf("expected a tie, got %d vs %d",
			candidates[0].Result.Overall, candidates[1].Result.Overall)
	}
	if candidates[0].UserID.String() > candidates[1].UserID.String() {
		t.Fatalf("tie not broken by user id: %s before %s",
			candidates[0].UserID, candidates[1].UserID)
	}
}
