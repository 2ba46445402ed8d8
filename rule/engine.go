package rule

import (
	"fmt"

	"github.com/uben0/prove/prop"
	"github.com/uben0/prove/sequent"
)

// A Reason tells why a rule could not be applied.
type Reason string

// Reasons for a rule not to be applicable.
const (
	NotImplication     Reason = "not-implication"
	NotDisjunction     Reason = "not-disjunction"
	NotConjunction     Reason = "not-conjunction"
	NotEquivalence     Reason = "not-equivalence"
	NotIntroducible    Reason = "not-introducible"
	NotEliminable      Reason = "not-eliminable"
	ConsequentMismatch Reason = "consequent-mismatch"
	HypothesisNotFound Reason = "hypothesis-not-found"
	IndexOutOfRange    Reason = "index-out-of-range"
	EmptyIndexSet      Reason = "empty-index-set"
)

// A NotApplicableError is returned when the precondition of a rule does not hold.
type NotApplicableError struct {
	Request Request
	Reason  Reason
}

func (e *NotApplicableError) Error() string {
	return fmt.Sprintf("cannot apply %q: %s", e.Request.String(), e.Reason)
}

// A Step is a successful rule application.
type Step struct {
	Kind     Kind
	Premises []sequent.Sequent
}

// Apply applies the requested rule to s.
// Requests built by hand with a wrong number of arguments are rejected with a *CommandError.
func Apply(s sequent.Sequent, req Request) (Step, error) {
	if err := req.Validate(); err != nil {
		return Step{}, err
	}
	e := engine{s: s, req: req}
	switch req.Op {
	case OpHypothesis:
		return e.hypothesis()
	case OpIntro:
		return e.intro()
	case OpImplIntro:
		return e.implIntro()
	case OpImplIntros:
		return e.implIntros()
	case OpElim:
		return e.elim(req.Indices[0])
	case OpModusPonens:
		return e.modusPonens(req.Props[0])
	case OpDisjIntroLeft:
		return e.disjIntro(true)
	case OpDisjIntroRight:
		return e.disjIntro(false)
	case OpDisjElim:
		return e.disjElim(req.Props[0], req.Props[1])
	case OpConjIntro:
		return e.conjIntro()
	case OpConjElim:
		return e.conjElim(req.Props[0], req.Props[1])
	case OpExfalso:
		return e.step(Exfalso, e.with(e.s.Hypotheses(), prop.False))
	case OpWeaken:
		return e.weaken(req.Indices)
	default:
		panic(fmt.Sprintf("invalid rule request %d", req.Op))
	}
}

type engine struct {
	s   sequent.Sequent
	req Request
}

func (e engine) fail(reason Reason) (Step, error) {
	return Step{}, &NotApplicableError{Request: e.req, Reason: reason}
}

func (e engine) step(kind Kind, premises ...sequent.Sequent) (Step, error) {
	if len(premises) != kind.Arity() {
		panic(fmt.Sprintf("rule %v expects %d premises, got %d", kind, kind.Arity(), len(premises)))
	}
	return Step{Kind: kind, Premises: premises}, nil
}

// with returns the sequent hyps |- concl.
func (e engine) with(hyps []prop.Prop, concl prop.Prop) sequent.Sequent {
	return sequent.New(hyps, concl)
}

// extended returns the hypotheses of the target with the given formulas appended.
func (e engine) extended(props ...prop.Prop) []prop.Prop {
	return append(e.s.Hypotheses(), props...)
}

// hypothesis closes the target when its conclusion is one of its hypotheses.
func (e engine) hypothesis() (Step, error) {
	if e.s.HasHypothesis(e.s.Conclusion()) == -1 {
		return e.fail(HypothesisNotFound)
	}
	return e.step(Hypothesis)
}

func (e engine) intro() (Step, error) {
	switch e.s.Conclusion().(type) {
	case prop.Equivalence:
		return e.equivIntro()
	case prop.Conjunction:
		return e.conjIntro()
	case prop.Implication:
		return e.implIntro()
	default:
		return e.fail(NotIntroducible)
	}
}

func (e engine) implIntro() (Step, error) {
	imp, ok := e.s.Conclusion().(prop.Implication)
	if !ok {
		return e.fail(NotImplication)
	}
	return e.step(ImplicationIntro, e.with(e.extended(imp.L), imp.R))
}

// implIntros strips all leading implications of the conclusion at once.
func (e engine) implIntros() (Step, error) {
	hyps := e.s.Hypotheses()
	concl := e.s.Conclusion()
	for {
		imp, ok := concl.(prop.Implication)
		if !ok {
			break
		}
		hyps = append(hyps, imp.L)
		concl = imp.R
	}
	return e.step(ImplicationIntros, e.with(hyps, concl))
}

func (e engine) modusPonens(b prop.Prop) (Step, error) {
	hyps := e.s.Hypotheses()
	return e.step(ModusPonens,
		e.with(hyps, prop.Implies(b, e.s.Conclusion())),
		e.with(hyps, b),
	)
}

// weakModusPonens uses a hypothesis P -> Q to prove Q from P.
// The premise hyps |- P -> Q is closed by the hypothesis rule, which is checked
// rather than assumed.
func (e engine) weakModusPonens(imp prop.Implication) (Step, error) {
	if !prop.Equal(imp.R, e.s.Conclusion()) {
		return e.fail(ConsequentMismatch)
	}
	hyps := e.s.Hypotheses()
	closed := engine{s: e.with(hyps, imp), req: ByHypothesis()}
	if _, err := closed.hypothesis(); err != nil {
		return e.fail(HypothesisNotFound)
	}
	return e.step(WeakModusPonens, e.with(hyps, imp.L))
}

func (e engine) disjIntro(left bool) (Step, error) {
	disj, ok := e.s.Conclusion().(prop.Disjunction)
	if !ok {
		return e.fail(NotDisjunction)
	}
	if left {
		return e.step(DisjunctionIntroLeft, e.with(e.s.Hypotheses(), disj.L))
	}
	return e.step(DisjunctionIntroRight, e.with(e.s.Hypotheses(), disj.R))
}

func (e engine) disjElim(a, b prop.Prop) (Step, error) {
	concl := e.s.Conclusion()
	return e.step(DisjunctionElim,
		e.with(e.s.Hypotheses(), prop.Or(a, b)),
		e.with(e.extended(a), concl),
		e.with(e.extended(b), concl),
	)
}

// replaced returns the hypotheses of the target where the one at index i is replaced by props.
func (e engine) replaced(i int, props ...prop.Prop) []prop.Prop {
	hyps := e.s.Hypotheses()
	res := make([]prop.Prop, 0, len(hyps)+len(props)-1)
	res = append(res, hyps[:i]...)
	res = append(res, props...)
	return append(res, hyps[i+1:]...)
}

func (e engine) disjWeakElim(i int, disj prop.Disjunction) (Step, error) {
	concl := e.s.Conclusion()
	return e.step(DisjunctionWeakElim,
		e.with(e.replaced(i, disj.L), concl),
		e.with(e.replaced(i, disj.R), concl),
	)
}

func (e engine) conjIntro() (Step, error) {
	conj, ok := e.s.Conclusion().(prop.Conjunction)
	if !ok {
		return e.fail(NotConjunction)
	}
	hyps := e.s.Hypotheses()
	return e.step(ConjunctionIntro, e.with(hyps, conj.L), e.with(hyps, conj.R))
}

func (e engine) conjElim(a, b prop.Prop) (Step, error) {
	return e.step(ConjunctionElim,
		e.with(e.s.Hypotheses(), prop.And(a, b)),
		e.with(e.extended(a, b), e.s.Conclusion()),
	)
}

func (e engine) conjWeakElim(i int, conj prop.Conjunction) (Step, error) {
	return e.step(ConjunctionWeakElim, e.with(e.replaced(i, conj.L, conj.R), e.s.Conclusion()))
}

func (e engine) equivIntro() (Step, error) {
	eq, ok := e.s.Conclusion().(prop.Equivalence)
	if !ok {
		return e.fail(NotEquivalence)
	}
	hyps := e.s.Hypotheses()
	return e.step(EquivalenceIntro,
		e.with(hyps, prop.Implies(eq.L, eq.R)),
		e.with(hyps, prop.Implies(eq.R, eq.L)),
	)
}

func (e engine) equivWeakElim(i int, eq prop.Equivalence) (Step, error) {
	hyps := e.replaced(i, prop.Implies(eq.L, eq.R), prop.Implies(eq.R, eq.L))
	return e.step(EquivalenceWeakElim, e.with(hyps, e.s.Conclusion()))
}

// elim chooses the elimination rule matching the connective of the hypothesis i.
func (e engine) elim(i int) (Step, error) {
	h, ok := e.s.Hypothesis(i)
	if !ok {
		return e.fail(IndexOutOfRange)
	}
	switch h := h.(type) {
	case prop.Equivalence:
		return e.equivWeakElim(i, h)
	case prop.Conjunction:
		return e.conjWeakElim(i, h)
	case prop.Disjunction:
		return e.disjWeakElim(i, h)
	case prop.Implication:
		return e.weakModusPonens(h)
	default:
		return e.fail(NotEliminable)
	}
}

func (e engine) weaken(indices []int) (Step, error) {
	if len(indices) == 0 {
		return e.fail(EmptyIndexSet)
	}
	removed := make(map[int]bool, len(indices))
	for _, i := range indices {
		if _, ok := e.s.Hypothesis(i); !ok {
			return e.fail(IndexOutOfRange)
		}
		removed[i] = true
	}
	var hyps []prop.Prop
	for i, h := range e.s.Hypotheses() {
		if !removed[i] {
			hyps = append(hyps, h)
		}
	}
	return e.step(Weaken, e.with(hyps, e.s.Conclusion()))
}
