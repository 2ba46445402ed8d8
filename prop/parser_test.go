package prop

import (
	"errors"
	"fmt"
	"testing"
)

// To each expression, associate its expected printed form.
var exprToString = map[string]string{
	"A":                            "A",
	"~A":                           "~A",
	"~~A":                          "~~A",
	"(A)":                          "A",
	"((A))":                        "A",
	"!":                            "!",
	`A \/ B`:                       `A\/B`,
	`A /\ B`:                       `A/\B`,
	"A -> B -> C":                  "A->B->C",
	"(A -> B) -> C":                "(A->B)->C",
	`A /\ B /\ C`:                  `A/\B/\C`,
	`A /\ (B /\ C) /\ D`:           `A/\(B/\C)/\D`,
	`A <-> B \/ C -> ~(D /\ E)`:    `A<->B\/C->~(D/\E)`,
	"A -> !":                       "~A",
	`~A /\ B`:                      `~A/\B`,
	"~(A -> B)":                    "~(A->B)",
	"(A -> !) -> !":                "~~A",
	"A_1 -> b2":                    "A_1->b2",
	" A\t->\nB ":                   "A->B",
	"A ∧ B ➔ ⊥":                    `~(A/\B)`,
	"¬A ∨ B → C ↔ D":               `~A\/B->C<->D`,
	`(A \/ B) /\ C`:                `(A\/B)/\C`,
	`A <-> B <-> C`:                "A<->B<->C",
	`(A <-> B) <-> C`:              "(A<->B)<->C",
	`~(A /\ B) -> ~A \/ ~B`:        `~(A/\B)->~A\/~B`,
	`((A -> B) -> A) -> A`:         "((A->B)->A)->A",
	`P \/ Q -> (P -> R) -> R \/ Q`: `P\/Q->(P->R)->R\/Q`,
}

func TestParse(t *testing.T) {
	for expr, expected := range exprToString {
		f, err := Parse(expr)
		if err != nil {
			t.Errorf("could not parse expression %q: %v", expr, err)
		} else if f.String() != expected {
			t.Errorf("for expression %q, expected formula %q, got %q", expr, expected, f.String())
		}
	}
}

func TestParseAssociativity(t *testing.T) {
	a, b, c := Var("A"), Var("B"), Var("C")
	tests := []struct {
		expr string
		want Prop
	}{
		{"A->B->C", Implies(a, Implies(b, c))},
		{`A/\B/\C`, And(a, And(b, c))},
		{`A\/B\/C`, Or(a, Or(b, c))},
		{"A<->B<->C", Eq(a, Eq(b, c))},
		{`A/\B\/C`, Or(And(a, b), c)},
		{`A\/B/\C`, Or(a, And(b, c))},
		{"~A", Implies(a, False)},
		{`~A/\B`, And(Not(a), b)},
		{"~~A", Not(Not(a))},
	}
	for _, tt := range tests {
		got, err := Parse(tt.expr)
		if err != nil {
			t.Errorf("could not parse %q: %v", tt.expr, err)
			continue
		}
		if !Equal(got, tt.want) {
			t.Errorf("for %q, expected %v, got %v", tt.expr, tt.want, got)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		expr   string
		lex    bool // Whether a LexError is expected rather than a SyntaxError
		offset int  // Expected offset for lex errors
		msg    string
	}{
		{expr: "", msg: "empty expression"},
		{expr: "   ", msg: "empty expression"},
		{expr: "A B", msg: "operator not found"},
		{expr: "A ~B", msg: "negation is not a binary operator"},
		{expr: "A -> ", msg: "empty expression"},
		{expr: "-> A", msg: "empty expression"},
		{expr: "()", msg: "empty expression"},
		{expr: "~", msg: "empty expression"},
		{expr: "(A", lex: true, offset: 0, msg: "closing parenthesis expected"},
		{expr: "A)", lex: true, offset: 1, msg: "unexpected closing parenthesis"},
		{expr: "(A))", lex: true, offset: 3, msg: "unexpected closing parenthesis"},
		{expr: "A - B", lex: true, offset: 3, msg: "unexpected character in operator"},
		{expr: "A <- B", lex: true, offset: 4, msg: "unexpected character in operator"},
		{expr: "A /", lex: true, offset: 2, msg: "unexpected end of input in operator"},
		{expr: "A $ B", lex: true, offset: 2, msg: "unexpected character '$'"},
		{expr: "1A", lex: true, offset: 0, msg: "unexpected character '1'"},
	}
	for _, tt := range tests {
		_, err := Parse(tt.expr)
		if err == nil {
			t.Errorf("expected an error for %q", tt.expr)
			continue
		}
		var lexErr *LexError
		var synErr *SyntaxError
		switch {
		case tt.lex && errors.As(err, &lexErr):
			if lexErr.Offset != tt.offset || lexErr.Msg != tt.msg {
				t.Errorf("for %q, expected %q at %d, got %q at %d", tt.expr, tt.msg, tt.offset, lexErr.Msg, lexErr.Offset)
			}
		case !tt.lex && errors.As(err, &synErr):
			if synErr.Msg != tt.msg {
				t.Errorf("for %q, expected %q, got %q", tt.expr, tt.msg, synErr.Msg)
			}
		default:
			t.Errorf("for %q, unexpected error type %T: %v", tt.expr, err, err)
		}
	}
}

func ExampleParse() {
	f, err := Parse("(A /\\ B -> C) -> A -> B -> C")
	if err != nil {
		fmt.Printf("could not parse formula: %v", err)
		return
	}
	fmt.Println(f)
	fmt.Println(Format(f, Style{Unicode: true}))
	// Output:
	// (A/\B->C)->A->B->C
	// (A∧B➔C)➔A➔B➔C
}
