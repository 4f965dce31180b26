package ai

import (
	"context"

	"github.com/kindredlabs/matchcore/internal/dimension"
	"github.com/kindredlabs/matchcore/internal/profile"
)

// DimensionAssessment is one scored dimension as reported by the
// text-understanding provider. Fields arrive untrusted and unclamped; the
// extraction layer owns validation.
type DimensionAssessment struct {
	Dimension  string
	Formation  int
	Position   int
	Importance int
	Reasoning  string
}

// ExtractionRequest carries one answered onboarding question and the
// dimensions it should be scored against.
type ExtractionRequest struct {
	Question     string
	Answer       string
	QuestionType profile.QuestionType
	Dimensions   []dimension.Definition
}

// Extractor turns a free-text answer into per-dimension assessments.
type Extractor interface {
	ExtractScores(ctx context.Context, req *ExtractionRequest) ([]DimensionAssessment, error)
}
