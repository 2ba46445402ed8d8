package prop

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomProp builds a random formula of the given depth.
func randomProp(rng *rand.Rand, depth int) Prop {
	if depth == 0 {
		if rng.Intn(5) == 0 {
			return False
		}
		return Var(string(rune('A' + rng.Intn(4))))
	}
	l, r := randomProp(rng, depth-1), randomProp(rng, rng.Intn(depth))
	switch rng.Intn(5) {
	case 0:
		return And(l, r)
	case 1:
		return Or(l, r)
	case 2:
		return Implies(l, r)
	case 3:
		return Eq(l, r)
	default:
		return Not(l)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	styles := []Style{{}, {Negation: true}, {Unicode: true}, {Unicode: true, Negation: true}}
	for i := 0; i < 500; i++ {
		f := randomProp(rng, 1+rng.Intn(5))
		for _, st := range styles {
			text := Format(f, st).String()
			got, err := Parse(text)
			require.NoError(t, err, "could not parse printed formula %q", text)
			assert.True(t, Equal(f, got), "round trip of %q gave %v", text, got)
		}
	}
}

func TestFormatNegation(t *testing.T) {
	notA := MustParse("~A")
	assert.True(t, Equal(notA, Implies(Var("A"), False)))
	assert.Equal(t, "~A", Format(notA, Style{Negation: true}).String())
	assert.Equal(t, "A->!", Format(notA, Style{}).String())
	assert.Equal(t, "A➔⊥", Format(notA, Style{Unicode: true}).String())

	nested := MustParse(`~(A/\B) -> !`)
	assert.Equal(t, `~~(A/\B)`, Format(nested, Style{Negation: true}).String())
	assert.Equal(t, `(A/\B->!)->!`, Format(nested, Style{}).String())
}

func TestFormatParentheses(t *testing.T) {
	a, b, c := Var("A"), Var("B"), Var("C")
	tests := []struct {
		f    Prop
		want string
	}{
		{Implies(a, Implies(b, c)), "A->B->C"},
		{Implies(Implies(a, b), c), "(A->B)->C"},
		{And(Or(a, b), c), `(A\/B)/\C`},
		{Or(And(a, b), c), `A/\B\/C`},
		{Eq(Implies(a, b), Implies(b, a)), "A->B<->B->A"},
		{Implies(Eq(a, b), c), "(A<->B)->C"},
		{Not(Or(a, b)), `~(A\/B)`},
		{And(Not(a), Not(b)), `~A/\~B`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.f.String())
	}
}

func TestFormatSpans(t *testing.T) {
	text := Format(MustParse(`(A \/ !) /\ B`), DefaultStyle)
	want := Text{
		{Text: "(", Class: Paren},
		{Text: "A", Class: Name},
		{Text: `\/`, Class: Operator},
		{Text: "!", Class: Constant},
		{Text: ")", Class: Paren},
		{Text: `/\`, Class: Operator},
		{Text: "B", Class: Name},
	}
	assert.Equal(t, want, text)
	for _, s := range text.Emphasize() {
		assert.True(t, s.Emphasis)
	}
	assert.False(t, text[0].Emphasis, "Emphasize must not modify its receiver")
}

func TestEqualAndVars(t *testing.T) {
	f := MustParse(`(B -> A) /\ C <-> B`)
	assert.True(t, Equal(f, MustParse(`((B -> A) /\ C) <-> B`)))
	assert.False(t, Equal(f, MustParse(`(B -> A) /\ (C <-> B)`)))
	assert.False(t, Equal(Var("A"), False))
	assert.Equal(t, []string{"A", "B", "C"}, Vars(f, Var("A")))
	assert.Equal(t, 7, Size(f))
	assert.Equal(t, 1, Index([]Prop{Var("B"), MustParse("B -> A"), Var("C")}, Implies(Var("B"), Var("A"))))
	assert.Equal(t, -1, Index(nil, False))
}
