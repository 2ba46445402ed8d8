// Package sequent defines sequents, i.e claims of the form H1, ..., Hn |- C.
package sequent

import (
	"fmt"
	"strings"

	"github.com/uben0/prove/prop"
)

// A Sequent is an ordered list of hypotheses and a conclusion.
// Hypotheses are addressed by their index; duplicates are kept.
// A Sequent is a value: its hypotheses are never modified after creation.
type Sequent struct {
	hyps  []prop.Prop
	concl prop.Prop
}

// New returns the sequent hyps |- concl.
// hyps is copied, the caller is free to modify it afterwards.
func New(hyps []prop.Prop, concl prop.Prop) Sequent {
	return Sequent{hyps: append([]prop.Prop(nil), hyps...), concl: concl}
}

// Hypotheses returns a copy of the hypotheses of s.
func (s Sequent) Hypotheses() []prop.Prop {
	return append([]prop.Prop(nil), s.hyps...)
}

// Hypothesis returns the hypothesis at index i.
func (s Sequent) Hypothesis(i int) (prop.Prop, bool) {
	if i < 0 || i >= len(s.hyps) {
		return nil, false
	}
	return s.hyps[i], true
}

// NbHypotheses returns the number of hypotheses of s.
func (s Sequent) NbHypotheses() int { return len(s.hyps) }

// Conclusion returns the conclusion of s.
func (s Sequent) Conclusion() prop.Prop { return s.concl }

// HasHypothesis returns the index of a hypothesis equal to p, or -1.
func (s Sequent) HasHypothesis(p prop.Prop) int { return prop.Index(s.hyps, p) }

// Equal reports whether both sequents have the same hypotheses, in the same order, and the same conclusion.
func (s Sequent) Equal(other Sequent) bool {
	if len(s.hyps) != len(other.hyps) || !prop.Equal(s.concl, other.concl) {
		return false
	}
	for i, h := range s.hyps {
		if !prop.Equal(h, other.hyps[i]) {
			return false
		}
	}
	return true
}

// Format prints s with the given style.
// If emphasis is true, the spans of the conclusion are emphasized.
func (s Sequent) Format(st prop.Style, emphasis bool) prop.Text {
	var res prop.Text
	for i, h := range s.hyps {
		if i > 0 {
			res = append(res, prop.Span{Text: prop.SymComma.Repr(st.Unicode), Class: prop.Comma}, prop.Span{Text: " "})
		}
		res = append(res, prop.Format(h, st)...)
	}
	if len(s.hyps) > 0 {
		res = append(res, prop.Span{Text: " "})
	}
	res = append(res, prop.Span{Text: prop.SymTurnstile.Repr(st.Unicode), Class: prop.Turnstile}, prop.Span{Text: " "})
	concl := prop.Format(s.concl, st)
	if emphasis {
		concl = concl.Emphasize()
	}
	return append(res, concl...)
}

func (s Sequent) String() string {
	return s.Format(prop.DefaultStyle, false).String()
}

// A SyntaxError is returned when a sequent cannot be parsed.
// If the problem lies in one of the formulas, Err holds the formula error.
type SyntaxError struct {
	Msg string
	Err error
}

func (e *SyntaxError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *SyntaxError) Unwrap() error { return e.Err }

var turnstiles = []string{prop.SymTurnstile.Repr(false), prop.SymTurnstile.Repr(true)}

// Parse parses a sequent written as "H1, ..., Hn |- C".
// The hypotheses part can be empty.
func Parse(text string) (Sequent, error) {
	var (
		idx   = -1
		width int
		count int
	)
	for _, ts := range turnstiles {
		for i := 0; i+len(ts) <= len(text); i++ {
			if strings.HasPrefix(text[i:], ts) {
				count++
				if idx == -1 {
					idx, width = i, len(ts)
				}
			}
		}
	}
	switch {
	case count == 0:
		return Sequent{}, &SyntaxError{Msg: "missing sequent symbol"}
	case count > 1:
		return Sequent{}, &SyntaxError{Msg: "expecting only one sequent symbol"}
	}
	left, right := text[:idx], text[idx+width:]
	var hyps []prop.Prop
	if strings.TrimSpace(left) != "" {
		for i, h := range strings.Split(left, prop.SymComma.Repr(false)) {
			p, err := prop.Parse(h)
			if err != nil {
				return Sequent{}, &SyntaxError{Msg: fmt.Sprintf("invalid hypothesis #%d", i), Err: err}
			}
			hyps = append(hyps, p)
		}
	}
	concl, err := prop.Parse(right)
	if err != nil {
		return Sequent{}, &SyntaxError{Msg: "invalid conclusion", Err: err}
	}
	return Sequent{hyps: hyps, concl: concl}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string) Sequent {
	s, err := Parse(text)
	if err != nil {
		panic("sequent: cannot parse " + text + ": " + err.Error())
	}
	return s
}
