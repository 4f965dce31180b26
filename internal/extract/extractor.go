// Package extract converts answered onboarding questions into structured,
// confidence-weighted dimension scores.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kindredlabs/matchcore/internal/ai"
	"github.com/kindredlabs/matchcore/internal/dimension"
	"github.com/kindredlabs/matchcore/internal/profile"
	"github.com/kindredlabs/matchcore/internal/store"
)

// Answers shorter than this carry no usable signal and never reach the
// text-understanding provider.
const minAnswerLength = 3

// A direct choice is treated as "partial" formation, never full nuance.
const directChoiceFormation = 2

const defaultChoiceImportance = 1

// Result is one extracted dimension score plus the provider's (or the
// fallback's) reasoning. Reasoning is diagnostic only and is not persisted.
type Result struct {
	Dimension  dimension.Key
	Formation  int
	Position   int
	Importance int
	Reasoning  string
}

// Score converts the result into a persistable row.
func (r Result) Score(rawAnswer string, questionType profile.QuestionType) profile.Score {
	return profile.Score{
		Formation:    r.Formation,
		Position:     r.Position,
		Importance:   r.Importance,
		RawAnswer:    rawAnswer,
		QuestionType: questionType,
	}.Clamped()
}

// Extractor owns the answer-to-score conversion. Extraction itself is pure;
// persistence is an explicit separate step.
type Extractor struct {
	ai     ai.Extractor
	store  store.Store
	logger *zap.Logger
}

func New(aiExtractor ai.Extractor, st store.Store, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{ai: aiExtractor, store: st, logger: logger}
}

// ExtractScores scores one answer against the requested dimensions. The only
// error it returns is an unknown dimension key, which is a programmer error;
// provider failures degrade to all-zero results instead.
func (e *Extractor) ExtractScores(ctx context.Context, question, answer string, keys []dimension.Key, questionType profile.QuestionType) ([]Result, error) {
	defs := make([]dimension.Definition, 0, len(keys))
	for _, key := range keys {
		def, err := dimension.Lookup(key)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}

	if len(strings.TrimSpace(answer)) < minAnswerLength {
		return zeroResults(keys, "No meaningful answer provided"), nil
	}

	if questionType == profile.QuestionDirectChoice {
		// Direct choices are mapped through MapDirectChoice; scoring them here
		// only records that a partial-formation answer exists.
		results := make([]Result, 0, len(keys))
		for _, key := range keys {
			results = append(results, Result{
				Dimension:  key,
				Formation:  directChoiceFormation,
				Position:   0,
				Importance: defaultChoiceImportance,
				Reasoning:  "Direct choice answer",
			})
		}
		return results, nil
	}

	assessments, err := e.ai.ExtractScores(ctx, &ai.ExtractionRequest{
		Question:     question,
		Answer:       answer,
		QuestionType: questionType,
		Dimensions:   defs,
	})
	if err != nil {
		e.logger.Warn("score extraction failed, falling back to unformed scores",
			zap.String("question_type", string(questionType)),
			zap.Int("dimensions", len(keys)),
			zap.Error(err),
		)
		return zeroResults(keys, "Extraction failed"), nil
	}

	byKey := make(map[dimension.Key]ai.DimensionAssessment, len(assessments))
	for _, assessment := range assessments {
		byKey[dimension.Key(assessment.Dimension)] = assessment
	}

	results := make([]Result, 0, len(keys))
	for _, key := range keys {
		assessment, ok := byKey[key]
		if !ok {
			results = append(results, Result{Dimension: key, Reasoning: "Not scored by extractor"})
			continue
		}
		results = append(results, clampResult(key, assessment))
	}
	return results, nil
}

// MapDirectChoice resolves a chosen option through a mapping table. An
// unknown option yields an unformed score with a diagnostic reason, never an
// error.
func MapDirectChoice(key dimension.Key, choiceValue string, mapping ChoiceMapping) Result {
	mapped, ok := mapping[choiceValue]
	if !ok {
		return Result{
			Dimension: key,
			Reasoning: fmt.Sprintf("Unknown choice: %s", choiceValue),
		}
	}

	importance := mapped.Importance
	if importance == 0 {
		importance = defaultChoiceImportance
	}

	return clampResult(key, ai.DimensionAssessment{
		Dimension:  string(key),
		Formation:  directChoiceFormation,
		Position:   mapped.Position,
		Importance: importance,
		Reasoning:  fmt.Sprintf("Direct choice: %s", choiceValue),
	})
}

// SaveScores upserts one row per extracted dimension. The new row fully
// replaces the previous one.
func (e *Extractor) SaveScores(ctx context.Context, userID uuid.UUID, results []Result, rawAnswer string, questionType profile.QuestionType) error {
	for _, result := range results {
		if err := e.store.Upsert(ctx, userID, result.Dimension, result.Score(rawAnswer, questionType)); err != nil {
			return fmt.Errorf("save score for %s: %w", result.Dimension, err)
		}
	}
	return nil
}

// ExtractAndSave extracts and persists in one step. An all-zero extraction is
// not persisted: it would overwrite a possibly better prior answer with
// nothing new.
func (e *Extractor) ExtractAndSave(ctx context.Context, userID uuid.UUID, question, answer string, keys []dimension.Key, questionType profile.QuestionType) ([]Result, error) {
	results, err := e.ExtractScores(ctx, question, answer, keys, questionType)
	if err != nil {
		return nil, err
	}

	if !anyFormed(results) {
		e.logger.Debug("skipping save of unformed extraction",
			zap.String("user_id", userID.String()),
			zap.Int("dimensions", len(results)),
		)
		return results, nil
	}

	if err := e.SaveScores(ctx, userID, results, answer, questionType); err != nil {
		return nil, err
	}
	return results, nil
}

// SaveDirectChoice maps and persists a direct-choice answer.
func (e *Extractor) SaveDirectChoice(ctx context.Context, userID uuid.UUID, key dimension.Key, choiceValue string, mapping ChoiceMapping, rawAnswer string) (Result, error) {
	if _, err := dimension.Lookup(key); err != nil {
		return Result{}, err
	}

	result := MapDirectChoice(key, choiceValue, mapping)

	if rawAnswer == "" {
		rawAnswer = choiceValue
	}

	if err := e.store.Upsert(ctx, userID, key, result.Score(rawAnswer, profile.QuestionDirectChoice)); err != nil {
		return Result{}, fmt.Errorf("save direct choice for %s: %w", key, err)
	}
	return result, nil
}

func clampResult(key dimension.Key, a ai.DimensionAssessment) Result {
	score := profile.Score{
		Formation:  a.Formation,
		Position:   a.Position,
		Importance: a.Importance,
	}.Clamped()

	return Result{
		Dimension:  key,
		Formation:  score.Formation,
		Position:   score.Position,
		Importance: score.Importance,
		Reasoning:  a.Reasoning,
	}
}

func zeroResults(keys []dimension.Key, reason string) []Result {
	results := make([]Result, 0, len(keys))
	for _, key := range keys {
		results = append(results, Result{Dimension: key, Reasoning: reason})
	}
	return results
}

func anyFormed(results []Result) bool {
	for _, result := range results {
		if result.Formation > 0 {
			return true
		}
	}
	return false
}
