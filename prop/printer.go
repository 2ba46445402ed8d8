package prop

import "strings"

// Style selects how formulas are spelled.
// It is purely presentational: it never changes how a formula is parsed or compared.
type Style struct {
	Unicode  bool // Use ∧, ∨, ➔, ↔, ⊥ rather than /\, \/, ->, <->, !
	Negation bool // Print P -> ! as ~P
}

// DefaultStyle is the style used by the String methods.
var DefaultStyle = Style{Negation: true}

// A Class tells what a span of printed text stands for, so that it can be highlighted.
type Class int

// Classes of printed text.
const (
	Plain Class = iota
	Paren
	Name
	Operator
	Constant
	Turnstile
	Comma
)

// A Span is a piece of printed text.
type Span struct {
	Text     string
	Class    Class
	Emphasis bool
}

// Text is the styled output of the printers.
// Its plain string representation is given by String.
type Text []Span

func (t Text) String() string {
	var sb strings.Builder
	for _, s := range t {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Emphasize returns a copy of t where all spans are emphasized.
func (t Text) Emphasize() Text {
	res := make(Text, len(t))
	for i, s := range t {
		s.Emphasis = true
		res[i] = s
	}
	return res
}

// Format prints p according to the given style.
func Format(p Prop, st Style) Text {
	pr := printer{st: st}
	pr.prop(p)
	return pr.out
}

type printer struct {
	st  Style
	out Text
}

func (pr *printer) write(text string, class Class) {
	pr.out = append(pr.out, Span{Text: text, Class: class})
}

func (pr *printer) sym(s Symbol) {
	switch s {
	case SymOpen, SymClose:
		pr.write(s.Repr(pr.st.Unicode), Paren)
	case SymFalse:
		pr.write(s.Repr(pr.st.Unicode), Constant)
	default:
		pr.write(s.Repr(pr.st.Unicode), Operator)
	}
}

// prec is the precedence of p as it will be displayed.
func (pr *printer) prec(p Prop) precedence {
	if _, ok := IsNegation(p); ok && pr.st.Negation {
		return precNegation
	}
	return p.precedence()
}

func (pr *printer) paren(p Prop, wrap bool) {
	if !wrap {
		pr.prop(p)
		return
	}
	pr.sym(SymOpen)
	pr.prop(p)
	pr.sym(SymClose)
}

// binary prints l op r. The left operand is wrapped when it binds as loosely as op,
// the right one only when it binds more loosely: right-nested chains need no parentheses.
func (pr *printer) binary(l, r Prop, op Symbol, prec precedence) {
	pr.paren(l, pr.prec(l) >= prec)
	pr.sym(op)
	pr.paren(r, pr.prec(r) > prec)
}

func (pr *printer) prop(p Prop) {
	switch p := p.(type) {
	case Falsity:
		pr.sym(SymFalse)
	case Variable:
		pr.write(p.Name, Name)
	case Conjunction:
		pr.binary(p.L, p.R, SymAnd, precConjunction)
	case Disjunction:
		pr.binary(p.L, p.R, SymOr, precDisjunction)
	case Implication:
		if neg, ok := IsNegation(p); ok && pr.st.Negation {
			pr.sym(SymNot)
			pr.paren(neg, pr.prec(neg) > precNegation)
			return
		}
		pr.binary(p.L, p.R, SymImplies, precImplication)
	case Equivalence:
		pr.binary(p.L, p.R, SymIff, precEquivalence)
	default:
		panic("invalid formula type")
	}
}
