package questions

import (
	"testing"

	"github.com/kindredlabs/matchcore/internal/dimension"
	"github.com/kindredlabs/matchcore/internal/profile"
)

func TestForExperience(t *testing.T) {
	cases := []struct {
		level ExperienceLevel
		want  string
	}{
		{level: ExperienceNew, want: "fun"},
		{level: ExperienceLearning, want: "fun"},
		{level: ExperienceExperienced, want: "weekend"},
	}

	for _, tc := range cases {
		t.Run(string(tc.level), func(t *testing.T) {
			track := ForExperience(tc.level)
			if len(track) == 0 {
				t.Fatalf("empty track")
			}
			if track[0].ID != tc.want {
				t.Fatalf("expected track starting with %q, got %q", tc.want, track[0].ID)
			}
		})
	}
}

func TestQuestionBankIsConsistent(t *testing.T) {
	for _, track := range [][]Question{TrackA, TrackB} {
		seen := make(map[string]bool)
		for _, q := range track {
			if q.ID == "" || q.Prompt == "" {
				t.Fatalf("question missing id or prompt: %+v", q)
			}
			if seen[q.ID] {
				t.Fatalf("duplicate question id %q", q.ID)
			}
			seen[q.ID] = true

			if len(q.Dimensions) == 0 {
				t.Fatalf("question %q feeds no dimensions", q.ID)
			}
			for _, key := range q.Dimensions {
				if _, err := dimension.Lookup(key); err != nil {
					t.Fatalf("question %q references unknown dimension: %v", q.ID, err)
				}
			}

			switch q.Kind {
			case KindChoice:
				if len(q.Options) == 0 {
					t.Fatalf("choice question %q has no options", q.ID)
				}
			case KindText:
				if len(q.Options) != 0 {
					t.Fatalf("text question %q carries options", q.ID)
				}
			default:
				t.Fatalf("question %q has unknown kind %q", q.ID, q.Kind)
			}
		}
	}
}

func TestChoiceQuestionsMapEveryOption(t *testing.T) {
	for _, track := range [][]Question{TrackA, TrackB} {
		for _, q := range track {
			if q.QuestionType != profile.QuestionDirectChoice || q.Kind != KindChoice {
				continue
			}
			if q.Mapping == nil {
				t.Fatalf("direct choice question %q has no mapping", q.ID)
			}
			for _, opt := range q.Options {
				if _, ok := q.Mapping[opt.Value]; !ok {
					t.Fatalf("question %q option %q has no score mapping", q.ID, opt.Value)
				}
			}
		}
	}
}

func TestTextQuestionsAreScoredByExtraction(t *testing.T) {
	for _, track := range [][]Question{TrackA, TrackB} {
		for _, q := range track {
			if q.Kind != KindText {
				continue
			}
			if q.QuestionType != profile.QuestionScenario && q.QuestionType != profile.QuestionReflective {
				t.Fatalf("text question %q has type %q", q.ID, q.QuestionType)
			}
			if q.Mapping != nil {
				t.Fatalf("text question %q should not carry a choice mapping", q.ID)
			}
		}
	}
}

func TestExperienceQuestionIsNotADimension(t *testing.T) {
	if len(Experience.Dimensions) != 0 {
		t.Fatalf("experience selection must not feed dimensions: %v", Experience.Dimensions)
	}
	if len(Experience.Options) != 3 {
		t.Fatalf("expected 3 experience levels, got %d", len(Experience.Options))
	}
	for _, opt := range Experience.Options {
		track := ForExperience(ExperienceLevel(opt.Value))
		if len(track) == 0 {
			t.Fatalf("experience option %q selects no track", opt.Value)
		}
	}
}
