package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kindredlabs/matchcore/internal/dimension"
	"github.com/kindredlabs/matchcore/internal/profile"
)

// Postgres implements Store on top of a gorm-managed postgres connection.
type Postgres struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Open connects to postgres and migrates the score table.
func Open(dsn string, logger *zap.Logger) (*Postgres, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.AutoMigrate(&ScoreRow{}); err != nil {
		return nil, fmt.Errorf("migrate dimension scores: %w", err)
	}

	return NewPostgres(db, logger), nil
}

// NewPostgres wraps an existing gorm connection.
func NewPostgres(db *gorm.DB, logger *zap.Logger) *Postgres {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Postgres{db: db, logger: logger}
}

func (s *Postgres) GetMap(ctx context.Context, userID uuid.UUID) (profile.Map, error) {
	var rows []ScoreRow
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch dimension scores: %w", err)
	}

	m := make(profile.Map, len(rows))
	for i := range rows {
		m[dimension.Key(rows[i].Dimension)] = rows[i].toScore()
	}
	return m, nil
}

func (s *Postgres) Upsert(ctx context.Context, userID uuid.UUID, key dimension.Key, score profile.Score) error {
	score = score.Clamped()
	now := time.Now().UTC()

	row := &ScoreRow{
		ID:           uuid.New(),
		UserID:       userID,
		Dimension:    string(key),
		Formation:    score.Formation,
		Position:     score.Position,
		Importance:   score.Importance,
		Dealbreaker:  score.Dealbreaker,
		RawAnswer:    score.RawAnswer,
		QuestionType: string(score.QuestionType),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// On conflict the dealbreaker column is deliberately left alone: the flag
	// is user-set, not extraction output.
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "dimension"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"formation", "position", "importance", "raw_answer", "question_type", "updated_at",
			}),
		}).
		Create(row).Error
}

func (s *Postgres) SetDealbreaker(ctx context.Context, userID uuid.UUID, key dimension.Key, dealbreaker bool) error {
	res := s.db.WithContext(ctx).
		Model(&ScoreRow{}).
		Where("user_id = ? AND dimension = ?", userID, string(key)).
		Updates(map[string]any{"dealbreaker": dealbreaker, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return fmt.Errorf("set dealbreaker: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	now := time.Now().UTC()
	row := &ScoreRow{
		ID:          uuid.New(),
		UserID:      userID,
		Dimension:   string(key),
		Dealbreaker: dealbreaker,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.db.WithContext(ctx).Create(row).Error
}

func (s *Postgres) ListUsers(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).
		Model(&ScoreRow{}).
		Distinct("user_id").
		Order("user_id").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return ids, nil
}
