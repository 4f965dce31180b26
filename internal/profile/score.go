// Package profile holds the per-user scoring rows produced by the extractor
// and consumed by the compatibility calculator.
package profile

import (
	"github.com/kindredlabs/matchcore/internal/dimension"
)

// QuestionType records where a score came from.
type QuestionType string

const (
	QuestionScenario     QuestionType = "scenario"
	QuestionReflective   QuestionType = "reflective"
	QuestionDirectChoice QuestionType = "direct_choice"
)

// Valid bounds for the numeric score fields. Anything outside is clamped at
// write time, never rejected.
const (
	FormationMax  = 4
	PositionMin   = -2
	PositionMax   = 2
	ImportanceMax = 3
)

// Score is one user's current standing on a single dimension. Formation 0
// means "no usable information" and neutralizes all compatibility math for
// that dimension.
type Score struct {
	Formation    int
	Position     int
	Importance   int
	Dealbreaker  bool
	RawAnswer    string
	QuestionType QuestionType
}

// Answered reports whether the score carries any usable information.
func (s Score) Answered() bool {
	return s.Formation > 0
}

// Clamped returns a copy with every numeric field forced into its valid range.
func (s Score) Clamped() Score {
	s.Formation = clamp(s.Formation, 0, FormationMax)
	s.Position = clamp(s.Position, PositionMin, PositionMax)
	s.Importance = clamp(s.Importance, 0, ImportanceMax)
	return s
}

// Map is the full set of one user's dimension scores. An absent key means the
// same thing as a present key with Formation 0.
type Map map[dimension.Key]Score

// Lookup returns a copy of the score for the key, or nil when absent.
func (m Map) Lookup(key dimension.Key) *Score {
	if s, ok := m[key]; ok {
		return &s
	}
	return nil
}

// AnsweredCount returns how many dimensions hold usable information.
func (m Map) AnsweredCount() int {
	count := 0
	for _, s := range m {
		if s.Answered() {
			count++
		}
	}
	return count
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
