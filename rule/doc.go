// Package rule implements the natural-deduction calculus.
//
// A rule is applied to a sequent. If its precondition does not hold, Apply returns a
// *NotApplicableError carrying a short machine-readable Reason. Otherwise, it returns
// the rule that was used and the premises that remain to be proved, in order.
// Apply never modifies its argument: premises are fresh sequents.
//
// Rule requests are typically read from user input with ParseRequest:
//
//	h                  hypothesis
//	i                  introduction of the conclusion's connective
//	ii                 implication introduction
//	iis                chained implication introduction
//	e <N>              elimination of the Nth hypothesis
//	mp <F>             modus ponens on F
//	dil, dir           disjunction introduction, left or right
//	de <F>, <F>        disjunction elimination
//	ci                 conjunction introduction
//	ce <F>, <F>        conjunction elimination
//	xf                 exfalso
//	aff <N> <N> ...    weakening: removal of hypotheses
//
// Hypotheses are numbered from 0.
package rule
