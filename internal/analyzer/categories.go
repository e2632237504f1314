package analyzer

// Category is one of the emotion labels the rule-based analyzer can produce
type Category string

const (
	Happy        Category = "Happy"
	Sad          Category = "Sad"
	Anxious      Category = "Anxious"
	Angry        Category = "Angry"
	Excited      Category = "Excited"
	Confused     Category = "Confused"
	Calm         Category = "Calm"
	Frustrated   Category = "Frustrated"
	Neutral      Category = "Neutral"
	Hopeful      Category = "Hopeful"
	Disappointed Category = "Disappointed"
	Overwhelmed  Category = "Overwhelmed"
	Confident    Category = "Confident"
	Worried      Category = "Worried"
	Grateful     Category = "Grateful"
	Lonely       Category = "Lonely"
	Stressed     Category = "Stressed"
	Proud        Category = "Proud"
	Guilty       Category = "Guilty"
	Jealous      Category = "Jealous"
)

// categoryOrder is the declaration order. It doubles as the tie-break order
// when two categories score the same.
var categoryOrder = []Category{
	Happy, Sad, Anxious, Angry, Excited, Confused, Calm, Frustrated, Neutral,
	Hopeful, Disappointed, Overwhelmed, Confident, Worried, Grateful, Lonely,
	Stressed, Proud, Guilty, Jealous,
}

var categoryRank = func() map[Category]int {
	rank := make(map[Category]int, len(categoryOrder))
	for i, c := range categoryOrder {
		rank[c] = i
	}
	return rank
}()

// Categories returns every supported category in declaration order
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// CategoryNames returns the category labels in declaration order
func CategoryNames() []string {
	names := make([]string, len(categoryOrder))
	for i, c := range categoryOrder {
		names[i] = string(c)
	}
	return names
}

// Valid reports whether c is a declared category
func (c Category) Valid() bool {
	_, ok := categoryRank[c]
	return ok
}

// ParseCategory maps a label back to its Category
func ParseCategory(label string) (Category, bool) {
	c := Category(label)
	return c, c.Valid()
}
