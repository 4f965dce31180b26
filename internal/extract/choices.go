package extract

import "github.com/kindredlabs/matchcore/internal/dimension"

// Choice maps one selectable option to its spectrum position and how much the
// pick is assumed to matter to the user.
type Choice struct {
	Position   int
	Importance int
}

// ChoiceMapping translates direct-choice answers into scores without any
// external call.
type ChoiceMapping map[string]Choice

func choice(position, importance int) Choice {
	return Choice{Position: position, Importance: importance}
}

// Standard mappings for the built-in direct questions. Importance 1 is the
// default for picks that carry no strong signal on their own.
var (
	// "After a long week, do you want company or alone time?"
	SocialEnergyChoices = ChoiceMapping{
		"company": choice(2, 2),
		"depends": choice(0, 1),
		"alone":   choice(-2, 2),
	}

	// "Plans change last minute - relieved or annoyed?"
	SpontaneityChoices = ChoiceMapping{
		"relieved": choice(2, 2),
		"depends":  choice(0, 1),
		"annoyed":  choice(-2, 2),
	}

	IntentChoices = ChoiceMapping{
		"casual":          choice(-2, 2),
		"figuring_it_out": choice(-1, 1),
		"open":            choice(0, 1),
		"serious":         choice(1, 2),
		"marriage_track":  choice(2, 3),
	}

	ChildrenChoices = ChoiceMapping{
		"no":        choice(-2, 3),
		"open":      choice(0, 1),
		"want":      choice(2, 3),
		"have_kids": choice(1, 2),
	}
)

// MappingFor returns the built-in choice mapping for a direct dimension, if
// one exists.
func MappingFor(key dimension.Key) (ChoiceMapping, bool) {
	switch key {
	case dimension.Social:
		return SocialEnergyChoices, true
	case dimension.Spontaneity:
		return SpontaneityChoices, true
	case dimension.Intent:
		return IntentChoices, true
	case dimension.Children:
		return ChildrenChoices, true
	default:
		return nil, false
	}
}
