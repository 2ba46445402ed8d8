package rule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uben0/prove/prop"
	"github.com/uben0/prove/sequent"
)

func p(s string) prop.Prop { return prop.MustParse(s) }

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		sequent  string
		req      Request
		kind     Kind
		premises []string
	}{
		{"hypothesis", "A, B |- B", ByHypothesis(), Hypothesis, nil},
		{"hypothesis duplicated", "A, A |- A", ByHypothesis(), Hypothesis, nil},
		{"implication intro", "C |- A -> B", ByImplIntro(), ImplicationIntro, []string{"C, A |- B"}},
		{"implication intro of negation", "|- ~A", ByImplIntro(), ImplicationIntro, []string{"A |- !"}},
		{"implication intros", "C |- A -> B -> D", ByImplIntros(), ImplicationIntros, []string{"C, A, B |- D"}},
		{"implication intros stops at non implication", `|- (A -> B) -> A /\ B`, ByImplIntros(), ImplicationIntros, []string{`A -> B |- A /\ B`}},
		{"implication intros without implication", "A |- B", ByImplIntros(), ImplicationIntros, []string{"A |- B"}},
		{"modus ponens", "A |- C", ByModusPonens(p("B")), ModusPonens, []string{"A |- B -> C", "A |- B"}},
		{"weak modus ponens", "A -> B, C |- B", ByElim(0), WeakModusPonens, []string{"A -> B, C |- A"}},
		{"disjunction intro left", `H |- A \/ B`, ByDisjIntroLeft(), DisjunctionIntroLeft, []string{"H |- A"}},
		{"disjunction intro right", `H |- A \/ B`, ByDisjIntroRight(), DisjunctionIntroRight, []string{"H |- B"}},
		{"disjunction elim", "H |- C", ByDisjElim(p("A"), p("B")), DisjunctionElim, []string{`H |- A \/ B`, "H, A |- C", "H, B |- C"}},
		{"disjunction weak elim", `H, A \/ B, K |- C`, ByElim(1), DisjunctionWeakElim, []string{"H, A, K |- C", "H, B, K |- C"}},
		{"conjunction intro", `H |- A /\ B`, ByConjIntro(), ConjunctionIntro, []string{"H |- A", "H |- B"}},
		{"conjunction elim", "H |- C", ByConjElim(p("A"), p("B")), ConjunctionElim, []string{`H |- A /\ B`, "H, A, B |- C"}},
		{"conjunction weak elim", `H, A /\ B, K |- C`, ByElim(1), ConjunctionWeakElim, []string{"H, A, B, K |- C"}},
		{"equivalence intro", "H |- A <-> B", ByIntro(), EquivalenceIntro, []string{"H |- A -> B", "H |- B -> A"}},
		{"equivalence weak elim", "A <-> B, K |- C", ByElim(0), EquivalenceWeakElim, []string{"A -> B, B -> A, K |- C"}},
		{"exfalso", "A |- B", ByExfalso(), Exfalso, []string{"A |- !"}},
		{"weaken", "A, B, C, D |- A", ByWeaken(1, 3), Weaken, []string{"A, C |- A"}},
		{"weaken duplicated index", "A, B |- A", ByWeaken(1, 1), Weaken, []string{"A |- A"}},
		{"weaken all", "A, B |- A", ByWeaken(0, 1), Weaken, []string{"|- A"}},
		{"intro of conjunction", `|- A /\ B`, ByIntro(), ConjunctionIntro, []string{"|- A", "|- B"}},
		{"intro of implication", "|- A -> B", ByIntro(), ImplicationIntro, []string{"A |- B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sequent.MustParse(tt.sequent)
			before := s.String()
			step, err := Apply(s, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, step.Kind)
			require.Len(t, step.Premises, len(tt.premises))
			require.Len(t, step.Premises, tt.kind.Arity())
			for i, want := range tt.premises {
				assert.True(t, sequent.MustParse(want).Equal(step.Premises[i]),
					"premise #%d: expected %q, got %q", i, want, step.Premises[i])
			}
			assert.Equal(t, before, s.String(), "target sequent was modified")
		})
	}
}

func TestApplyNotApplicable(t *testing.T) {
	tests := []struct {
		sequent string
		req     Request
		reason  Reason
	}{
		{"A |- B", ByHypothesis(), HypothesisNotFound},
		{"|- A", ByImplIntro(), NotImplication},
		{`|- A \/ B`, ByIntro(), NotIntroducible},
		{"|- A", ByIntro(), NotIntroducible},
		{"|- !", ByIntro(), NotIntroducible},
		{`|- A /\ B`, ByDisjIntroLeft(), NotDisjunction},
		{`|- A \/ B`, ByConjIntro(), NotConjunction},
		{"A |- B", ByElim(1), IndexOutOfRange},
		{"A |- B", ByElim(-1), IndexOutOfRange},
		{"A |- B", ByElim(0), NotEliminable},
		{"! |- B", ByElim(0), NotEliminable},
		{"A -> C |- B", ByElim(0), ConsequentMismatch},
		{"A |- B", ByWeaken(), EmptyIndexSet},
		{"A |- B", ByWeaken(0, 1), IndexOutOfRange},
	}
	for _, tt := range tests {
		s := sequent.MustParse(tt.sequent)
		step, err := Apply(s, tt.req)
		var naErr *NotApplicableError
		if !errors.As(err, &naErr) {
			t.Errorf("%s on %q: expected a NotApplicableError, got %v", tt.req, tt.sequent, err)
			continue
		}
		assert.Equal(t, tt.reason, naErr.Reason, "%s on %q", tt.req, tt.sequent)
		assert.Empty(t, step.Premises)
	}
}

func TestApplyInvalidRequest(t *testing.T) {
	_, err := Apply(sequent.MustParse("A |- A"), Request{Op: OpModusPonens})
	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, "mp expects 1 formula argument, got 0", cmdErr.Msg)
}

func TestDisjunctionScenario(t *testing.T) {
	s := sequent.MustParse(`P \/ Q, P -> R, Q -> R |- R`)
	step, err := Apply(s, ByElim(0))
	require.NoError(t, err)
	require.Equal(t, DisjunctionWeakElim, step.Kind)
	assert.Equal(t, "P, P->R, Q->R |- R", step.Premises[0].String())
	assert.Equal(t, "Q, P->R, Q->R |- R", step.Premises[1].String())
	for i, idx := range []int{1, 2} {
		mp, err := Apply(step.Premises[i], ByElim(idx))
		require.NoError(t, err)
		require.Equal(t, WeakModusPonens, mp.Kind)
		_, err = Apply(mp.Premises[0], ByHypothesis())
		assert.NoError(t, err)
	}
}

func TestKindLabels(t *testing.T) {
	for k := Hypothesis; k < nbKinds; k++ {
		assert.NotEmpty(t, k.Label(false), "ascii label of %v", k)
		assert.NotEmpty(t, k.Label(true), "unicode label of %v", k)
		assert.NotEqual(t, "unknown", k.String())
	}
	assert.Equal(t, "->i", ImplicationIntro.Label(false))
	assert.Equal(t, "➔i", ImplicationIntro.Label(true))
	assert.Equal(t, "unknown", Kind(-1).String())
}
