// Package prop defines propositional formulas and their textual representation.
//
// A formula is built from variables, the falsity constant and four binary connectives:
// conjunction, disjunction, implication and equivalence.
// Negation is not a connective of its own: ~P is the implication P -> !.
//
// Formulas are written using the following operators (from lowest to highest priority):
//
// - for an equivalence, the "<->" operator,
// - for an implication, the "->" operator,
// - for a disjunction ("or"), the "\/" operator,
// - for a conjunction ("and"), the "/\" operator,
// - for a negation, the "~" unary operator.
//
// The falsity constant is written "!". Binary operators associate to the right,
// so that "A -> B -> C" is read as "A -> (B -> C)".
//
// For example, the following formula:
//
// (A /\ B -> C) -> A -> B -> C
//
// can be parsed with
//
// f, err := Parse("(A /\\ B -> C) -> A -> B -> C")
//
// or built with the following code:
//
// f := Implies(Implies(And(Var("A"), Var("B")), Var("C")), Implies(Var("A"), Implies(Var("B"), Var("C"))))
//
// Formulas are printed back by Format, which returns a styled Text rather than a raw string,
// so that a caller can highlight parentheses, names and operators without the printer knowing
// anything about terminals.
package prop
