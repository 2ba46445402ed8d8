package rule

// A Kind is a natural-deduction rule, as attached to a proof node.
type Kind int

// The rules of the calculus.
const (
	Hypothesis Kind = iota
	ImplicationIntro
	ImplicationIntros
	ModusPonens
	WeakModusPonens
	DisjunctionIntroLeft
	DisjunctionIntroRight
	DisjunctionElim
	DisjunctionWeakElim
	ConjunctionIntro
	ConjunctionElim
	ConjunctionWeakElim
	EquivalenceIntro
	EquivalenceWeakElim
	Exfalso
	Weaken
	nbKinds
)

type kindInfo struct {
	name    string
	arity   int
	ascii   string
	unicode string
}

var kinds = [nbKinds]kindInfo{
	Hypothesis:            {"hypothesis", 0, "h", "h"},
	ImplicationIntro:      {"implication-intro", 1, "->i", "➔i"},
	ImplicationIntros:     {"implication-intros", 1, "->i'", "➔i'"},
	ModusPonens:           {"modus-ponens", 2, "mp", "mp"},
	WeakModusPonens:       {"weak-modus-ponens", 1, "mp'", "mp'"},
	DisjunctionIntroLeft:  {"disjunction-intro-left", 1, `\/i,l`, "∨i,l"},
	DisjunctionIntroRight: {"disjunction-intro-right", 1, `\/i,r`, "∨i,r"},
	DisjunctionElim:       {"disjunction-elim", 3, `\/e`, "∨e"},
	DisjunctionWeakElim:   {"disjunction-weak-elim", 2, `\/e'`, "∨e'"},
	ConjunctionIntro:      {"conjunction-intro", 2, `/\i`, "∧i"},
	ConjunctionElim:       {"conjunction-elim", 2, `/\e`, "∧e"},
	ConjunctionWeakElim:   {"conjunction-weak-elim", 1, `/\e'`, "∧e'"},
	EquivalenceIntro:      {"equivalence-intro", 2, "<->i", "↔i"},
	EquivalenceWeakElim:   {"equivalence-weak-elim", 1, "<->e'", "↔e'"},
	Exfalso:               {"exfalso", 1, "!e", "⊥e"},
	Weaken:                {"weaken", 1, "w", "w"},
}

// Arity is the number of premises the rule produces.
func (k Kind) Arity() int { return kinds[k].arity }

// Label is the short name printed next to the inference line.
func (k Kind) Label(unicode bool) string {
	if unicode {
		return kinds[k].unicode
	}
	return kinds[k].ascii
}

func (k Kind) String() string {
	if k < 0 || k >= nbKinds {
		return "unknown"
	}
	return kinds[k].name
}
