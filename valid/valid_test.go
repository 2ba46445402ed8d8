package valid

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/crillab/gophersat/bf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uben0/prove/prop"
	"github.com/uben0/prove/sequent"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		seq   string
		valid bool
	}{
		{"A |- A", true},
		{"A -> B, A |- B", true},
		{`|- A \/ ~A`, true},
		{"|- ((A -> B) -> A) -> A", true},
		{"! |- A", true},
		{`A /\ B |- B /\ A`, true},
		{"A <-> B, B |- A", true},
		{`P \/ Q, P -> R, Q -> R |- R`, true},
		{"A |- B", false},
		{"|- !", false},
		{"A -> B, B |- A", false},
		{"A <-> B |- A", false},
		{`A \/ B |- A`, false},
	}
	for _, test := range tests {
		s := sequent.MustParse(test.seq)
		res, err := Check(context.Background(), s)
		require.NoError(t, err)
		if res.Valid != test.valid {
			t.Errorf("invalid result for %q: expected %t, got %t", test.seq, test.valid, res.Valid)
			continue
		}
		if test.valid {
			assert.Nil(t, res.Countermodel, test.seq)
			continue
		}
		for _, h := range s.Hypotheses() {
			assert.True(t, eval(h, res.Countermodel), "hypothesis %s should hold in %v", h, res.Countermodel)
		}
		assert.False(t, eval(s.Conclusion(), res.Countermodel), "conclusion of %q should not hold in %v", test.seq, res.Countermodel)
	}
}

func TestCountermodel(t *testing.T) {
	res, err := Check(context.Background(), sequent.MustParse("A |- B"))
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"A": true, "B": false}, res.Countermodel)
	assert.Equal(t, "not valid, countermodel: A=true B=false", res.String())

	res, err = Check(context.Background(), sequent.MustParse("|- !"))
	require.NoError(t, err)
	assert.Equal(t, "not valid, countermodel: any", res.String())
}

// eval evaluates p under the given model, unbound variables being false.
func eval(p prop.Prop, model map[string]bool) bool {
	switch p := p.(type) {
	case prop.Falsity:
		return false
	case prop.Variable:
		return model[p.Name]
	case prop.Conjunction:
		return eval(p.L, model) && eval(p.R, model)
	case prop.Disjunction:
		return eval(p.L, model) || eval(p.R, model)
	case prop.Implication:
		return !eval(p.L, model) || eval(p.R, model)
	case prop.Equivalence:
		return eval(p.L, model) == eval(p.R, model)
	}
	panic(fmt.Sprintf("unexpected formula %T", p))
}

func randomProp(rng *rand.Rand, depth int) prop.Prop {
	if depth == 0 || rng.Intn(4) == 0 {
		if rng.Intn(8) == 0 {
			return prop.False
		}
		return prop.Var(string(rune('A' + rng.Intn(3))))
	}
	l, r := randomProp(rng, depth-1), randomProp(rng, depth-1)
	switch rng.Intn(4) {
	case 0:
		return prop.And(l, r)
	case 1:
		return prop.Or(l, r)
	case 2:
		return prop.Implies(l, r)
	default:
		return prop.Eq(l, r)
	}
}

// bruteForce tells whether s is valid by enumerating all models.
func bruteForce(s sequent.Sequent) bool {
	names := prop.Vars(append(s.Hypotheses(), s.Conclusion())...)
	for i := 0; i < 1<<len(names); i++ {
		model := make(map[string]bool)
		for j, name := range names {
			model[name] = i&(1<<j) != 0
		}
		holds := true
		for _, h := range s.Hypotheses() {
			holds = holds && eval(h, model)
		}
		if holds && !eval(s.Conclusion(), model) {
			return false
		}
	}
	return true
}

func TestCheckRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 300; i++ {
		hyps := make([]prop.Prop, rng.Intn(3))
		for j := range hyps {
			hyps[j] = randomProp(rng, 3)
		}
		s := sequent.New(hyps, randomProp(rng, 3))
		res, err := Check(context.Background(), s)
		require.NoError(t, err)
		if expected := bruteForce(s); res.Valid != expected {
			t.Fatalf("invalid result for %s: expected %t, got %t", s, expected, res.Valid)
		}
	}
}

func TestNeeded(t *testing.T) {
	tests := []struct {
		seq    string
		needed []int
	}{
		{"A |- A", []int{0}},
		{"|- A -> A", nil},
		{"A, B, A -> C |- C", []int{0, 2}},
		{"A, A |- A", []int{1}},
		{"B, !, C |- A", []int{1}},
	}
	for _, test := range tests {
		needed, err := Needed(context.Background(), sequent.MustParse(test.seq))
		require.NoError(t, err, test.seq)
		assert.Equal(t, test.needed, needed, test.seq)
	}
	_, err := Needed(context.Background(), sequent.MustParse("A |- B"))
	assert.Error(t, err)
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Check(ctx, sequent.MustParse("A |- A"))
	assert.ErrorIs(t, err, context.Canceled)
	_, err = Needed(ctx, sequent.MustParse("A |- A"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDeadline(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		hyps := make([]prop.Prop, 1+rng.Intn(6))
		for j := range hyps {
			hyps[j] = randomProp(rng, 5)
		}
		s := sequent.New(hyps, randomProp(rng, 5))
		timeout := time.Duration(rng.Intn(200)) * time.Microsecond

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		res, err := Check(ctx, s)
		cancel()
		if err != nil {
			assert.ErrorIs(t, err, context.DeadlineExceeded)
			assert.Equal(t, Result{}, res)
		} else {
			assert.Equal(t, bruteForce(s), res.Valid, s.String())
		}

		ctx, cancel = context.WithTimeout(context.Background(), timeout)
		needed, err := Needed(ctx, s)
		cancel()
		if err != nil && errors.Is(err, context.DeadlineExceeded) {
			assert.Nil(t, needed)
		} else if err == nil {
			sub := make([]prop.Prop, len(needed))
			for j, k := range needed {
				sub[j] = hyps[k]
			}
			assert.True(t, bruteForce(sequent.New(sub, s.Conclusion())), s.String())
		}
	}
}

func ExampleCheck() {
	res, err := Check(context.Background(), sequent.MustParse(`A \/ B, ~A |- B`))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res)
	res, _ = Check(context.Background(), sequent.MustParse(`A \/ B |- B`))
	fmt.Println(res)
	// Output:
	// classically valid
	// not valid, countermodel: A=true B=false
}

func TestCore(t *testing.T) {
	s := sequent.MustParse("A, B, A -> C, C -> D |- C")
	candidates, err := core(s.Hypotheses(), s.Conclusion())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, candidates)

	_, err = core(s.Hypotheses(), prop.Var("E"))
	assert.Error(t, err)
}

func TestDimacs(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, encode([]prop.Prop{prop.Implies(prop.Var("A"), prop.Var("B")), prop.Var("A")}, prop.Var("B")).dimacs(&sb))
	assert.Equal(t, ""+
		"p cnf 3 6\n"+
		"-3 -1 2 0\n"+
		"3 1 0\n"+
		"3 -2 0\n"+
		"3 0\n"+
		"1 0\n"+
		"-2 0\n", sb.String())
}

// countLits counts the literal occurrences in a DIMACS text.
func countLits(dimacs string) int {
	n := 0
	for _, line := range strings.Split(dimacs, "\n") {
		if line == "" || line[0] == 'p' || line[0] == 'c' {
			continue
		}
		n += len(strings.Fields(line)) - 1
	}
	return n
}

// bf copies both operands of an equivalence, our encoding names each subformula once.
func TestEquivalenceChain(t *testing.T) {
	const depth = 12
	chain := prop.Var("A0")
	bfChain := bf.Var("A0")
	for i := 1; i <= depth; i++ {
		name := fmt.Sprintf("A%d", i)
		chain = prop.Eq(chain, prop.Var(name))
		bfChain = bf.Eq(bfChain, bf.Var(name))
	}
	var sb strings.Builder
	require.NoError(t, encode(nil, chain).dimacs(&sb))
	assert.Less(t, countLits(sb.String()), 200)

	sb.Reset()
	require.NoError(t, bf.Dimacs(bfChain, &sb))
	assert.Greater(t, countLits(sb.String()), 1<<depth)
}

// bf only guards the first clause of a conjunction nested in a disjunction,
// so it finds no model for this satisfiable problem.
func TestNestedDisjunction(t *testing.T) {
	a, b, c, d, e := prop.Var("A"), prop.Var("B"), prop.Var("C"), prop.Var("D"), prop.Var("E")
	f := prop.Or(prop.And(prop.Or(prop.And(a, b), c), d), e)
	s := sequent.New([]prop.Prop{prop.Not(a), prop.Not(b), prop.Not(c), prop.Not(d), f}, prop.False)
	res, err := Check(context.Background(), s)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.True(t, res.Countermodel["E"])

	bfA, bfB, bfC, bfD, bfE := bf.Var("A"), bf.Var("B"), bf.Var("C"), bf.Var("D"), bf.Var("E")
	bfF := bf.Or(bf.And(bf.Or(bf.And(bfA, bfB), bfC), bfD), bfE)
	assert.Nil(t, bf.Solve(bf.And(bf.Not(bfA), bf.Not(bfB), bf.Not(bfC), bf.Not(bfD), bfF)))
}
