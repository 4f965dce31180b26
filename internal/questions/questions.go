// Package questions holds the onboarding question bank. Two tracks: concrete
// scenarios and simple choices for people newer to dating, reflective
// questions for the experienced.
package questions

import (
	"github.com/kindredlabs/matchcore/internal/dimension"
	"github.com/kindredlabs/matchcore/internal/extract"
	"github.com/kindredlabs/matchcore/internal/profile"
)

// Kind selects the input widget for a question.
type Kind string

const (
	KindChoice Kind = "choice"
	KindText   Kind = "text"
)

// Option is one selectable answer for a choice question.
type Option struct {
	Value string
	Label string
}

// Question is one onboarding prompt and the dimensions it feeds.
type Question struct {
	ID           string
	Prompt       string
	Dimensions   []dimension.Key
	QuestionType profile.QuestionType
	Kind         Kind
	Options      []Option
	Placeholder  string
	FollowUp     string
	// Mapping translates choice values into scores for direct questions.
	Mapping extract.ChoiceMapping
}

// ExperienceLevel selects the question track.
type ExperienceLevel string

const (
	ExperienceNew         ExperienceLevel = "new"
	ExperienceLearning    ExperienceLevel = "learning"
	ExperienceExperienced ExperienceLevel = "experienced"
)

// Experience is asked first and only selects the track; it is not stored as a
// dimension score.
var Experience = Question{
	ID:           "experience",
	Prompt:       "How much dating experience do you have?",
	QuestionType: profile.QuestionDirectChoice,
	Kind:         KindChoice,
	Options: []Option{
		{Value: "new", Label: "Pretty new to this"},
		{Value: "learning", Label: "Some, but still figuring things out"},
		{Value: "experienced", Label: "I know what I'm looking for"},
	},
}

// TrackA targets people newer to dating: concrete scenarios, simple choices.
var TrackA = []Question{
	{
		ID:           "fun",
		Prompt:       "What do you like doing for fun?",
		Dimensions:   []dimension.Key{dimension.Energy, dimension.Social},
		QuestionType: profile.QuestionScenario,
		Kind:         KindText,
		Placeholder:  "Activities, hobbies, how you spend your time...",
	},
	{
		ID:           "intent",
		Prompt:       "What are you looking for?",
		Dimensions:   []dimension.Key{dimension.Intent},
		QuestionType: profile.QuestionDirectChoice,
		Kind:         KindChoice,
		Options: []Option{
			{Value: "casual", Label: "Something casual"},
			{Value: "open", Label: "Open to whatever happens"},
			{Value: "serious", Label: "Something serious"},
			{Value: "figuring_it_out", Label: "Still figuring it out"},
		},
		Mapping: extract.IntentChoices,
	},
	{
		ID:           "social_energy",
		Prompt:       "After a long week, do you want to see people or be alone?",
		Dimensions:   []dimension.Key{dimension.Social},
		QuestionType: profile.QuestionDirectChoice,
		Kind:         KindChoice,
		Options: []Option{
			{Value: "company", Label: "See people"},
			{Value: "depends", Label: "Depends on the week"},
			{Value: "alone", Label: "Be alone"},
		},
		Mapping: extract.SocialEnergyChoices,
	},
	{
		ID:           "plans",
		Prompt:       "Plans change last minute — relieved or annoyed?",
		Dimensions:   []dimension.Key{dimension.Spontaneity},
		QuestionType: profile.QuestionDirectChoice,
		Kind:         KindChoice,
		Options: []Option{
			{Value: "relieved", Label: "Relieved"},
			{Value: "depends", Label: "Depends what changes"},
			{Value: "annoyed", Label: "Annoyed"},
		},
		Mapping: extract.SpontaneityChoices,
	},
}

// TrackB targets experienced daters: open, reflective questions.
var TrackB = []Question{
	{
		ID:           "weekend",
		Prompt:       "What does your ideal weekend look like?",
		Dimensions:   []dimension.Key{dimension.Energy, dimension.Social},
		QuestionType: profile.QuestionReflective,
		Kind:         KindText,
		Placeholder:  "What recharges you...",
		FollowUp:     "Is there another way you'd describe how you spend your time?",
	},
	{
		ID:           "intent",
		Prompt:       "What are you looking for right now?",
		Dimensions:   []dimension.Key{dimension.Intent},
		QuestionType: profile.QuestionDirectChoice,
		Kind:         KindChoice,
		Options: []Option{
			{Value: "casual", Label: "Something casual"},
			{Value: "open", Label: "Open to something serious"},
			{Value: "serious", Label: "Looking for a relationship"},
			{Value: "marriage_track", Label: "Want to find my person"},
		},
		Mapping: extract.IntentChoices,
	},
	{
		ID:           "trust",
		Prompt:       "What does trust look like to you?",
		Dimensions:   []dimension.Key{dimension.Trust},
		QuestionType: profile.QuestionReflective,
		Kind:         KindText,
		Placeholder:  "How you know when you trust someone...",
	},
	{
		ID:           "plans",
		Prompt:       "How do you feel when plans change last minute?",
		Dimensions:   []dimension.Key{dimension.Spontaneity},
		QuestionType: profile.QuestionReflective,
		Kind:         KindText,
		Placeholder:  "Your reaction to unexpected changes...",
	},
}

// ForExperience returns the question track for an experience level. New and
// learning users get the scenario track.
func ForExperience(level ExperienceLevel) []Question {
	if level == ExperienceExperienced {
		return TrackB
	}
	return TrackA
}
