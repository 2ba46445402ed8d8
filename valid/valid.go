// Package valid decides whether sequents are classically valid.
//
// A sequent H1, ..., Hn |- C is classically valid iff H1 & ... & Hn & ~C has no model.
// That formula is translated to CNF and given to the gophersat solver.
//
// The translation is a Tseitin encoding: each compound subformula is given a fresh variable
// equivalent to it, so the CNF grows linearly with the size of the sequent.
// For instance, the sequent A -> B, A |- B yields the following clauses,
// x1 standing for A -> B:
//
//	(-x1 | -a | b) (x1 | a) (x1 | -b) (x1) (a) (-b)
//
// The natural deduction calculus of this module is intuitionistic: a sequent such as
// |- A \/ ~A is classically valid but cannot be proved. Validity is thus a necessary
// condition for a proof to exist, not a sufficient one.
package valid

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/crillab/gophersat/explain"
	"github.com/crillab/gophersat/solver"

	"github.com/uben0/prove/prop"
	"github.com/uben0/prove/sequent"
)

// Result is the outcome of a validity check.
type Result struct {
	Valid bool
	// Countermodel binds every variable of the sequent so that all hypotheses hold
	// and the conclusion does not. It is nil when the sequent is valid.
	Countermodel map[string]bool
}

// String describes the result, the countermodel's variables being sorted.
func (r Result) String() string {
	if r.Valid {
		return "classically valid"
	}
	names := make([]string, 0, len(r.Countermodel))
	for name := range r.Countermodel {
		names = append(names, name)
	}
	sort.Strings(names)
	res := "not valid, countermodel:"
	if len(names) == 0 {
		res += " any"
	}
	for _, name := range names {
		res += fmt.Sprintf(" %s=%t", name, r.Countermodel[name])
	}
	return res
}

// Check tells whether s is classically valid.
// If ctx is done before the solver returns, its error is returned.
func Check(ctx context.Context, s sequent.Sequent) (Result, error) {
	cnf := encode(s.Hypotheses(), s.Conclusion())
	model, err := run(ctx, cnf.solve)
	if err != nil {
		return Result{}, err
	}
	return Result{Valid: model == nil, Countermodel: model}, nil
}

// Needed returns the indices, in increasing order, of a subset of the hypotheses of s
// that is enough to keep s valid. No hypothesis can be removed from that subset.
// Every other hypothesis can be weakened away.
// It fails if s is not valid.
//
// The hypotheses appearing in a minimal unsatisfiable subset of the CNF are tried first.
// That subset is not always minimal in terms of hypotheses, since the clauses defining
// subformulas may be only partially in it, so it is then reduced by deletion, one solver
// call per remaining hypothesis.
func Needed(ctx context.Context, s sequent.Sequent) ([]int, error) {
	hyps := s.Hypotheses()
	kept := make([]bool, len(hyps))
	for i := range kept {
		kept[i] = true
	}
	valid := func() (bool, error) {
		var sub []prop.Prop
		for i, h := range hyps {
			if kept[i] {
				sub = append(sub, h)
			}
		}
		return run(ctx, func() bool { return encode(sub, s.Conclusion()).solve() == nil })
	}
	ok, err := valid()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("sequent %s is not valid", s)
	}
	mus, err := run(ctx, func() coreResult {
		candidates, err := core(hyps, s.Conclusion())
		return coreResult{candidates, err}
	})
	if err != nil {
		return nil, err
	}
	// Without a core, every hypothesis is a candidate.
	if mus.err == nil {
		for i := range kept {
			kept[i] = false
		}
		for _, i := range mus.candidates {
			kept[i] = true
		}
		if ok, err := valid(); err != nil {
			return nil, err
		} else if !ok {
			for i := range kept {
				kept[i] = true
			}
		}
	}
	for i := range hyps {
		if !kept[i] {
			continue
		}
		kept[i] = false
		ok, err := valid()
		if err != nil {
			return nil, err
		}
		if !ok {
			kept[i] = true
		}
	}
	var res []int
	for i, k := range kept {
		if k {
			res = append(res, i)
		}
	}
	return res, nil
}

type coreResult struct {
	candidates []int
	err        error
}

// core returns the indices of the hypotheses whose unit clause is in a minimal
// unsatisfiable subset of the CNF of hyps |- concl.
func core(hyps []prop.Prop, concl prop.Prop) ([]int, error) {
	c := encode(hyps, concl)
	var sb strings.Builder
	if err := c.dimacs(&sb); err != nil {
		return nil, err
	}
	pb, err := explain.ParseCNF(strings.NewReader(sb.String()))
	if err != nil {
		return nil, fmt.Errorf("could not parse CNF: %w", err)
	}
	mus, err := pb.MUS()
	if err != nil {
		return nil, fmt.Errorf("could not extract MUS: %w", err)
	}
	units := make(map[int]bool)
	for _, clause := range mus.Clauses {
		if len(clause) == 1 {
			units[clause[0]] = true
		}
	}
	var res []int
	for i, lit := range c.hyps {
		if units[lit] {
			res = append(res, i)
		}
	}
	return res, nil
}

// run calls f in its own goroutine and waits for its result or for the end of ctx.
// The solver cannot be interrupted: when ctx ends first, f keeps running and its
// result is dropped.
func run[T any](ctx context.Context, f func() T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	ch := make(chan T, 1)
	go func() { ch <- f() }()
	select {
	case res := <-ch:
		return res, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

type vars struct {
	all map[string]int // all vars, including those standing for subformulas
	pb  map[string]int // only the vars of the sequent
}

// value returns the index associated with the given variable of the sequent.
// If the var was not referenced yet, it is created first.
func (vars *vars) value(name string) int {
	val, ok := vars.pb[name]
	if !ok {
		val = vars.dummy()
		vars.pb[name] = val
	}
	return val
}

// dummy creates a fresh variable and returns its index.
func (vars *vars) dummy() int {
	val := len(vars.all) + 1
	vars.all[fmt.Sprintf("x%d", val)] = val
	return val
}

type cnf struct {
	vars    vars
	clauses [][]int
	hyps    []int // literal asserted by each hypothesis
	falsity int   // index of the variable standing for falsity, 0 if none
}

// encode returns the CNF of hyps[0] & ... & hyps[n-1] & ~concl.
func encode(hyps []prop.Prop, concl prop.Prop) *cnf {
	c := &cnf{vars: vars{all: make(map[string]int), pb: make(map[string]int)}}
	for _, h := range hyps {
		lit := c.lit(h)
		c.hyps = append(c.hyps, lit)
		c.clauses = append(c.clauses, []int{lit})
	}
	c.clauses = append(c.clauses, []int{-c.lit(concl)})
	return c
}

// lit returns a literal equivalent to p, adding the clauses defining it.
func (c *cnf) lit(p prop.Prop) int {
	switch p := p.(type) {
	case prop.Falsity:
		if c.falsity == 0 {
			c.falsity = c.vars.dummy()
			c.clauses = append(c.clauses, []int{-c.falsity})
		}
		return c.falsity
	case prop.Variable:
		return c.vars.value(p.Name)
	case prop.Conjunction:
		a, b := c.lit(p.L), c.lit(p.R)
		x := c.vars.dummy()
		c.clauses = append(c.clauses, []int{-x, a}, []int{-x, b}, []int{x, -a, -b})
		return x
	case prop.Disjunction:
		a, b := c.lit(p.L), c.lit(p.R)
		x := c.vars.dummy()
		c.clauses = append(c.clauses, []int{-x, a, b}, []int{x, -a}, []int{x, -b})
		return x
	case prop.Implication:
		a, b := c.lit(p.L), c.lit(p.R)
		x := c.vars.dummy()
		c.clauses = append(c.clauses, []int{-x, -a, b}, []int{x, a}, []int{x, -b})
		return x
	case prop.Equivalence:
		a, b := c.lit(p.L), c.lit(p.R)
		x := c.vars.dummy()
		c.clauses = append(c.clauses,
			[]int{-x, -a, b}, []int{-x, a, -b},
			[]int{x, a, b}, []int{x, -a, -b})
		return x
	default:
		panic(fmt.Sprintf("invalid formula type %T", p))
	}
}

// dimacs writes the CNF in the DIMACS format.
func (c *cnf) dimacs(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "p cnf %d %d\n", len(c.vars.all), len(c.clauses)); err != nil {
		return fmt.Errorf("could not write DIMACS output: %w", err)
	}
	for _, clause := range c.clauses {
		lits := make([]string, len(clause))
		for i, lit := range clause {
			lits[i] = strconv.Itoa(lit)
		}
		if _, err := fmt.Fprintf(w, "%s 0\n", strings.Join(lits, " ")); err != nil {
			return fmt.Errorf("could not write DIMACS output: %w", err)
		}
	}
	return nil
}

// solve gives the CNF to gophersat.
// If it is satisfiable, the function returns a model binding each variable of the sequent.
// Else, the function returns nil.
func (c *cnf) solve() map[string]bool {
	pb := solver.ParseSlice(c.clauses)
	s := solver.New(pb)
	if s.Solve() != solver.Sat {
		return nil
	}
	m := s.Model()
	model := make(map[string]bool, len(c.vars.pb))
	for name, idx := range c.vars.pb {
		model[name] = idx-1 < len(m) && m[idx-1]
	}
	return model
}
