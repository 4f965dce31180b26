// Package store persists the current dimension score rows, one per
// (user, dimension). Last write wins; no history is kept.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kindredlabs/matchcore/internal/dimension"
	"github.com/kindredlabs/matchcore/internal/profile"
)

// Store is the persistence contract for dimension scores. Writes are confined
// to a single user's own rows, so implementations need no cross-user
// coordination.
type Store interface {
	// GetMap fetches all score rows for a user. Absent dimensions simply do
	// not appear in the map.
	GetMap(ctx context.Context, userID uuid.UUID) (profile.Map, error)
	// Upsert replaces the row for (user, dimension). The user-set dealbreaker
	// flag survives the overwrite.
	Upsert(ctx context.Context, userID uuid.UUID, key dimension.Key, score profile.Score) error
	// SetDealbreaker flips the dealbreaker flag, creating an unanswered row
	// when none exists yet.
	SetDealbreaker(ctx context.Context, userID uuid.UUID, key dimension.Key, dealbreaker bool) error
	// ListUsers returns every user with at least one score row.
	ListUsers(ctx context.Context) ([]uuid.UUID, error)
}

// ScoreRow is the persisted shape of one dimension score.
type ScoreRow struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_score_user_dimension"`
	Dimension    string    `gorm:"not null;uniqueIndex:idx_score_user_dimension"`
	Formation    int       `gorm:"not null;default:0"`
	Position     int       `gorm:"not null;default:0"`
	Importance   int       `gorm:"not null;default:0"`
	Dealbreaker  bool      `gorm:"not null;default:false"`
	RawAnswer    string
	QuestionType string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ScoreRow) TableName() string {
	return "dimension_scores"
}

func (r *ScoreRow) toScore() profile.Score {
	return profile.Score{
		Formation:    r.Formation,
		Position:     r.Position,
		Importance:   r.Importance,
		Dealbreaker:  r.Dealbreaker,
		RawAnswer:    r.RawAnswer,
		QuestionType: profile.QuestionType(r.QuestionType),
	}.Clamped()
}
