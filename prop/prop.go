package prop

import "sort"

// A Prop is a propositional formula.
// The set of formulas is closed: the only implementations are Falsity, Variable,
// Conjunction, Disjunction, Implication and Equivalence.
// All of them are plain values, a formula is never modified once built.
type Prop interface {
	precedence() precedence
	String() string
}

// Falsity is the type of the False constant.
type Falsity struct{}

// False is the constant denoting a contradiction.
var False Prop = Falsity{}

// Variable is a named propositional variable.
type Variable struct {
	Name string
}

// Conjunction is L /\ R.
type Conjunction struct {
	L, R Prop
}

// Disjunction is L \/ R.
type Disjunction struct {
	L, R Prop
}

// Implication is L -> R.
type Implication struct {
	L, R Prop
}

// Equivalence is L <-> R.
type Equivalence struct {
	L, R Prop
}

// Var generates a named variable.
func Var(name string) Prop { return Variable{Name: name} }

// And generates the conjunction of two subformulas.
func And(l, r Prop) Prop { return Conjunction{L: l, R: r} }

// Or generates the disjunction of two subformulas.
func Or(l, r Prop) Prop { return Disjunction{L: l, R: r} }

// Implies indicates a subformula implies another one.
func Implies(l, r Prop) Prop { return Implication{L: l, R: r} }

// Eq indicates a subformula is equivalent to another one.
func Eq(l, r Prop) Prop { return Equivalence{L: l, R: r} }

// Not builds the negation of p, i.e p -> !.
func Not(p Prop) Prop { return Implication{L: p, R: False} }

// IsNegation returns the negated formula if p has the shape P -> !.
func IsNegation(p Prop) (Prop, bool) {
	if imp, ok := p.(Implication); ok {
		if _, ok := imp.R.(Falsity); ok {
			return imp.L, true
		}
	}
	return nil, false
}

// Equal reports whether a and b are structurally equal.
func Equal(a, b Prop) bool {
	switch a := a.(type) {
	case Falsity:
		_, ok := b.(Falsity)
		return ok
	case Variable:
		b, ok := b.(Variable)
		return ok && a.Name == b.Name
	case Conjunction:
		b, ok := b.(Conjunction)
		return ok && Equal(a.L, b.L) && Equal(a.R, b.R)
	case Disjunction:
		b, ok := b.(Disjunction)
		return ok && Equal(a.L, b.L) && Equal(a.R, b.R)
	case Implication:
		b, ok := b.(Implication)
		return ok && Equal(a.L, b.L) && Equal(a.R, b.R)
	case Equivalence:
		b, ok := b.(Equivalence)
		return ok && Equal(a.L, b.L) && Equal(a.R, b.R)
	default:
		return false
	}
}

// Index returns the index of the first formula of props structurally equal to p, or -1.
func Index(props []Prop, p Prop) int {
	for i, q := range props {
		if Equal(p, q) {
			return i
		}
	}
	return -1
}

// Operands returns the two subformulas of a binary formula.
// ok is false for variables and the falsity constant.
func Operands(p Prop) (l, r Prop, ok bool) {
	switch p := p.(type) {
	case Conjunction:
		return p.L, p.R, true
	case Disjunction:
		return p.L, p.R, true
	case Implication:
		return p.L, p.R, true
	case Equivalence:
		return p.L, p.R, true
	default:
		return nil, nil, false
	}
}

// Vars returns the sorted names of the variables appearing in the given formulas.
func Vars(props ...Prop) []string {
	seen := make(map[string]struct{})
	var rec func(p Prop)
	rec = func(p Prop) {
		if v, ok := p.(Variable); ok {
			seen[v.Name] = struct{}{}
			return
		}
		if l, r, ok := Operands(p); ok {
			rec(l)
			rec(r)
		}
	}
	for _, p := range props {
		rec(p)
	}
	res := make([]string, 0, len(seen))
	for name := range seen {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// Size returns the number of nodes in p.
func Size(p Prop) int {
	if l, r, ok := Operands(p); ok {
		return 1 + Size(l) + Size(r)
	}
	return 1
}

func (f Falsity) String() string     { return Format(f, DefaultStyle).String() }
func (v Variable) String() string    { return v.Name }
func (c Conjunction) String() string { return Format(c, DefaultStyle).String() }
func (d Disjunction) String() string { return Format(d, DefaultStyle).String() }
func (i Implication) String() string { return Format(i, DefaultStyle).String() }
func (e Equivalence) String() string { return Format(e, DefaultStyle).String() }

// precedence is the binding strength of a formula's top connective.
// The higher the value, the looser the binding.
type precedence int

const (
	precAtomic precedence = iota
	precNegation
	precConjunction
	precDisjunction
	precImplication
	precEquivalence
)

func (Falsity) precedence() precedence     { return precAtomic }
func (Variable) precedence() precedence    { return precAtomic }
func (Conjunction) precedence() precedence { return precConjunction }
func (Disjunction) precedence() precedence { return precDisjunction }
func (Equivalence) precedence() precedence { return precEquivalence }
func (Implication) precedence() precedence { return precImplication }
