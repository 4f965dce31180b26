package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kindredlabs/matchcore/internal/dimension"
	"github.com/kindredlabs/matchcore/internal/profile"
)

// openTestPostgres connects to the database named by TEST_POSTGRES_DSN and
// starts from a clean score table. Tests are skipped when the variable is
// unset so the suite runs without a database by default.
func openTestPostgres(t *testing.T) *Postgres {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := db.AutoMigrate(&ScoreRow{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec("TRUNCATE TABLE dimension_scores").Error; err != nil {
		t.Fatalf("truncate: %v", err)
	}

	return NewPostgres(db, zap.NewNop())
}

func TestPostgresUpsertRoundTrip(t *testing.T) {
	st := openTestPostgres(t)
	ctx := context.Background()
	userID := uuid.New()

	score := profile.Score{Formation: 3, Position: 1, Importance: 2, RawAnswer: "hikes", QuestionType: profile.QuestionReflective}
	if err := st.Upsert(ctx, userID, dimension.Energy, score); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, err := st.GetMap(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := m[dimension.Energy]
	if got.Formation != 3 || got.Position != 1 || got.Importance != 2 {
		t.Fatalf("unexpected score: %+v", got)
	}
	if got.RawAnswer != "hikes" || got.QuestionType != profile.QuestionReflective {
		t.Fatalf("answer metadata not stored: %+v", got)
	}
}

func TestPostgresUpsertConflictUpdates(t *testing.T) {
	st := openTestPostgres(t)
	ctx := context.Background()
	userID := uuid.New()

	if err := st.Upsert(ctx, userID, dimension.Trust, profile.Score{Formation: 2, Position: -1, Importance: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := st.Upsert(ctx, userID, dimension.Trust, profile.Score{Formation: 4, Position: 2, Importance: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, err := st.GetMap(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m) != 1 {
		t.Fatalf("expected a single row per (user, dimension), got %d", len(m))
	}
	if got := m[dimension.Trust]; got.Formation != 4 || got.Position != 2 {
		t.Fatalf("conflict did not update: %+v", got)
	}
}

func TestPostgresUpsertLeavesDealbreakerAlone(t *testing.T) {
	st := openTestPostgres(t)
	ctx := context.Background()
	userID := uuid.New()

	if err := st.SetDealbreaker(ctx, userID, dimension.Intent, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := st.Upsert(ctx, userID, dimension.Intent, profile.Score{Formation: 2, Position: 1, Importance: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, err := st.GetMap(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := m[dimension.Intent]
	if !got.Dealbreaker {
		t.Fatalf("upsert cleared the dealbreaker flag")
	}
	if got.Formation != 2 {
		t.Fatalf("upsert over the flag row lost the score: %+v", got)
	}
}

func TestPostgresSetDealbreakerCreatesAndToggles(t *testing.T) {
	st := openTestPostgres(t)
	ctx := context.Background()
	userID := uuid.New()

	if err := st.SetDealbreaker(ctx, userID, dimension.Children, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, err := st.GetMap(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m[dimension.Children]; !got.Dealbreaker || got.Answered() {
		t.Fatalf("expected an unanswered flag row, got %+v", got)
	}

	if err := st.SetDealbreaker(ctx, userID, dimension.Children, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, err = st.GetMap(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m[dimension.Children].Dealbreaker {
		t.Fatalf("flag not cleared")
	}
}

func TestPostgresListUsers(t *testing.T) {
	st := openTestPostgres(t)
	ctx := context.Background()

	users := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, userID := range users {
		if err := st.Upsert(ctx, userID, dimension.Schedule, profile.Score{Formation: 1}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// A second dimension must not duplicate the user.
		if err := st.Upsert(ctx, userID, dimension.Energy, profile.Score{Formation: 1}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	ids, err := st.ListUsers(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != len(users) {
		t.Fatalf("expected %d users, got %d", len(users), len(ids))
	}
}
