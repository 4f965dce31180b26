package dimension

import (
	"errors"
	"fmt"
)

// Key identifies a single comparison axis between two profiles.
type Key string

const (
	Schedule    Key = "schedule"
	Energy      Key = "energy"
	Social      Key = "social"
	Spontaneity Key = "spontaneity"
	Location    Key = "location"

	Trust         Key = "trust"
	Communication Key = "communication"
	Conflict      Key = "conflict"
	Independence  Key = "independence"
	Growth        Key = "growth"
	Career        Key = "career"

	Intent   Key = "intent"
	Children Key = "children"
)

// Category groups dimensions for aggregate scoring.
type Category string

const (
	CategoryLifestyle Category = "lifestyle"
	CategoryValues    Category = "values"
	CategoryDirect    Category = "direct"
)

// Rule selects how two positions on the same dimension are compared.
type Rule string

const (
	// RuleSimilarity scores closer positions higher, each step apart costs 25.
	RuleSimilarity Rule = "similarity"
	// RuleCompatibility is tolerant within a two-step window and harsh beyond it.
	RuleCompatibility Rule = "compatibility"
	// RuleComplementary treats most position combinations as workable.
	RuleComplementary Rule = "complementary"
)

// Definition is one immutable registry entry. Scalar dimensions carry a
// human-readable spectrum description; direct dimensions carry the enumerated
// options a user picks from.
type Definition struct {
	Key      Key
	Category Category
	Rule     Rule
	Spectrum string
	Options  []string
}

// ErrUnknownDimension indicates a key that is not registered. Reaching it at
// runtime is a programmer error, not expected input.
var ErrUnknownDimension = errors.New("unknown dimension")

func scalar(key Key, category Category, rule Rule, spectrum string) Definition {
	return Definition{Key: key, Category: category, Rule: rule, Spectrum: spectrum}
}

func direct(key Key, rule Rule, options ...string) Definition {
	return Definition{Key: key, Category: CategoryDirect, Rule: rule, Options: options}
}

// order preserves declaration order for deterministic iteration.
var order = []Definition{
	scalar(Schedule, CategoryLifestyle, RuleSimilarity, "Morning person (+2) to Night owl (-2)"),
	scalar(Energy, CategoryLifestyle, RuleSimilarity, "High energy, always active (+2) to Low key, restorative (-2)"),
	scalar(Social, CategoryLifestyle, RuleCompatibility, "Extrovert, energized by people (+2) to Introvert, needs solitude (-2)"),
	scalar(Spontaneity, CategoryLifestyle, RuleComplementary, "Loves surprises, hates plans (+2) to Strong planner, needs structure (-2)"),
	scalar(Location, CategoryLifestyle, RuleCompatibility, "Rooted, settled (+2) to Mobile, seeking change (-2)"),

	scalar(Trust, CategoryValues, RuleSimilarity, "Categories: consistency, honesty, autonomy, presence"),
	scalar(Communication, CategoryValues, RuleSimilarity, "Deep, philosophical (+2) to Light, action-oriented (-2)"),
	scalar(Conflict, CategoryValues, RuleCompatibility, "Talk it through immediately (+2) to Need space, withdraw (-2)"),
	scalar(Independence, CategoryValues, RuleCompatibility, "High independence, separate lives (+2) to Very connected, do everything together (-2)"),
	scalar(Growth, CategoryValues, RuleSimilarity, "Always improving, welcomes feedback (+2) to Self-accepting, take me as I am (-2)"),
	scalar(Career, CategoryValues, RuleCompatibility, "Career-focused, ambitious (+2) to Life over career (-2)"),

	direct(Intent, RuleSimilarity, "casual", "open", "serious", "marriage_track", "figuring_it_out"),
	direct(Children, RuleSimilarity, "want", "open", "no", "have_kids"),
}

var registry = func() map[Key]Definition {
	m := make(map[Key]Definition, len(order))
	for _, def := range order {
		if _, exists := m[def.Key]; exists {
			panic(fmt.Sprintf("dimension: duplicate key %q", def.Key))
		}
		m[def.Key] = def
	}
	return m
}()

// Lookup returns the definition for the given key.
func Lookup(key Key) (Definition, error) {
	def, ok := registry[key]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownDimension, key)
	}
	return def, nil
}

// ByCategory returns all keys of the given category in declaration order.
func ByCategory(category Category) []Key {
	keys := make([]Key, 0, len(order))
	for _, def := range order {
		if def.Category == category {
			keys = append(keys, def.Key)
		}
	}
	return keys
}

// All returns every registered key in declaration order.
func All() []Key {
	keys := make([]Key, 0, len(order))
	for _, def := range order {
		keys = append(keys, def.Key)
	}
	return keys
}

// Count returns the number of registered dimensions.
func Count() int {
	return len(order)
}

// Lifestyle and Values feed the two aggregate compatibility scores. Direct
// dimensions are typically the ones users mark as dealbreakers.
var (
	LifestyleKeys = ByCategory(CategoryLifestyle)
	ValuesKeys    = ByCategory(CategoryValues)
	DirectKeys    = ByCategory(CategoryDirect)
)
