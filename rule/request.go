package rule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/uben0/prove/prop"
)

// An Op is the kind of rule a user asks for.
// Some ops map to a single Kind, others (Intro, Elim) choose the Kind
// depending on the shape of the sequent.
type Op int

// Rule requests.
const (
	OpHypothesis Op = iota
	OpIntro
	OpImplIntro
	OpImplIntros
	OpElim
	OpModusPonens
	OpDisjIntroLeft
	OpDisjIntroRight
	OpDisjElim
	OpConjIntro
	OpConjElim
	OpExfalso
	OpWeaken
)

// A Request is a rule application asked by the user, with its arguments.
type Request struct {
	Op      Op
	Props   []prop.Prop // Formula arguments, for mp, de and ce
	Indices []int       // Hypothesis indices, for e and aff
}

// ByHypothesis requests the hypothesis rule.
func ByHypothesis() Request { return Request{Op: OpHypothesis} }

// ByIntro requests the introduction rule matching the conclusion.
func ByIntro() Request { return Request{Op: OpIntro} }

// ByImplIntro requests the implication introduction.
func ByImplIntro() Request { return Request{Op: OpImplIntro} }

// ByImplIntros requests the chained implication introduction.
func ByImplIntros() Request { return Request{Op: OpImplIntros} }

// ByElim requests the elimination rule matching the hypothesis at index i.
func ByElim(i int) Request { return Request{Op: OpElim, Indices: []int{i}} }

// ByModusPonens requests modus ponens on b.
func ByModusPonens(b prop.Prop) Request { return Request{Op: OpModusPonens, Props: []prop.Prop{b}} }

// ByDisjIntroLeft requests the left disjunction introduction.
func ByDisjIntroLeft() Request { return Request{Op: OpDisjIntroLeft} }

// ByDisjIntroRight requests the right disjunction introduction.
func ByDisjIntroRight() Request { return Request{Op: OpDisjIntroRight} }

// ByDisjElim requests the elimination of the disjunction a \/ b.
func ByDisjElim(a, b prop.Prop) Request {
	return Request{Op: OpDisjElim, Props: []prop.Prop{a, b}}
}

// ByConjIntro requests the conjunction introduction.
func ByConjIntro() Request { return Request{Op: OpConjIntro} }

// ByConjElim requests the elimination of the conjunction a /\ b.
func ByConjElim(a, b prop.Prop) Request {
	return Request{Op: OpConjElim, Props: []prop.Prop{a, b}}
}

// ByExfalso requests the exfalso rule.
func ByExfalso() Request { return Request{Op: OpExfalso} }

// ByWeaken requests the removal of the given hypotheses.
func ByWeaken(indices ...int) Request { return Request{Op: OpWeaken, Indices: indices} }

type opSyntax struct {
	name    string
	props   int // Number of formula arguments
	indices int // Number of index arguments, -1 for any
}

var ops = map[Op]opSyntax{
	OpHypothesis:     {"h", 0, 0},
	OpIntro:          {"i", 0, 0},
	OpImplIntro:      {"ii", 0, 0},
	OpImplIntros:     {"iis", 0, 0},
	OpElim:           {"e", 0, 1},
	OpModusPonens:    {"mp", 1, 0},
	OpDisjIntroLeft:  {"dil", 0, 0},
	OpDisjIntroRight: {"dir", 0, 0},
	OpDisjElim:       {"de", 2, 0},
	OpConjIntro:      {"ci", 0, 0},
	OpConjElim:       {"ce", 2, 0},
	OpExfalso:        {"xf", 0, 0},
	OpWeaken:         {"aff", 0, -1},
}

var opsByName = func() map[string]Op {
	res := make(map[string]Op, len(ops))
	for op, syn := range ops {
		res[syn.name] = op
	}
	return res
}()

// Names returns the names of all rule requests, sorted.
func Names() []string {
	res := make([]string, 0, len(opsByName))
	for name := range opsByName {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func (r Request) String() string {
	syn := ops[r.Op]
	args := make([]string, 0, len(r.Props)+len(r.Indices))
	for _, p := range r.Props {
		args = append(args, p.String())
	}
	if len(args) > 0 {
		return syn.name + " " + strings.Join(args, ", ")
	}
	for _, i := range r.Indices {
		args = append(args, strconv.Itoa(i))
	}
	if len(args) > 0 {
		return syn.name + " " + strings.Join(args, " ")
	}
	return syn.name
}

// Validate checks r has the number of arguments its op expects.
func (r Request) Validate() error {
	syn, ok := ops[r.Op]
	if !ok {
		return &CommandError{Msg: fmt.Sprintf("unknown rule request %d", r.Op)}
	}
	if len(r.Props) != syn.props {
		return &CommandError{Input: syn.name, Msg: arityMsg(syn.name, syn.props, "formula", len(r.Props))}
	}
	if syn.indices >= 0 && len(r.Indices) != syn.indices {
		return &CommandError{Input: syn.name, Msg: arityMsg(syn.name, syn.indices, "index", len(r.Indices))}
	}
	return nil
}

// A CommandError is returned when a rule request cannot be parsed.
type CommandError struct {
	Input string
	Msg   string
	Err   error // Underlying formula or number error, if any
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// ParseRequest parses a rule request such as "h", "e 2", "mp A -> B" or "de A, B".
// Formula arguments are separated by commas, index arguments by spaces or commas.
func ParseRequest(line string) (Request, error) {
	line = strings.TrimSpace(line)
	name, args := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		name, args = line[:i], strings.TrimSpace(line[i:])
	}
	op, ok := opsByName[name]
	if !ok {
		if name == "" {
			return Request{}, &CommandError{Input: line, Msg: "empty rule application"}
		}
		return Request{}, &CommandError{Input: line, Msg: fmt.Sprintf("unknown rule application %q", name)}
	}
	syn := ops[op]
	req := Request{Op: op}
	switch {
	case syn.props > 0:
		parts := splitArgs(args, ",")
		if len(parts) != syn.props {
			return Request{}, &CommandError{Input: line, Msg: arityMsg(syn.name, syn.props, "formula", len(parts))}
		}
		for i, part := range parts {
			p, err := prop.Parse(part)
			if err != nil {
				return Request{}, &CommandError{Input: line, Msg: fmt.Sprintf("invalid formula argument #%d", i), Err: err}
			}
			req.Props = append(req.Props, p)
		}
	case syn.indices != 0:
		parts := strings.FieldsFunc(args, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
		if syn.indices > 0 && len(parts) != syn.indices {
			return Request{}, &CommandError{Input: line, Msg: arityMsg(syn.name, syn.indices, "index", len(parts))}
		}
		if len(parts) == 0 {
			return Request{}, &CommandError{Input: line, Msg: fmt.Sprintf("%s expects at least one index", syn.name)}
		}
		for _, part := range parts {
			i, err := strconv.Atoi(part)
			if err != nil {
				return Request{}, &CommandError{Input: line, Msg: fmt.Sprintf("not a number: %q", part), Err: err}
			}
			req.Indices = append(req.Indices, i)
		}
	default:
		if args != "" {
			return Request{}, &CommandError{Input: line, Msg: fmt.Sprintf("%s expects no argument", syn.name)}
		}
	}
	return req, nil
}

// splitArgs splits s around sep. An empty s gives no argument at all.
func splitArgs(s, sep string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, sep)
}

func arityMsg(name string, want int, what string, got int) string {
	plural := "s"
	if want == 1 {
		plural = ""
	}
	return fmt.Sprintf("%s expects %d %s argument%s, got %d", name, want, what, plural, got)
}
