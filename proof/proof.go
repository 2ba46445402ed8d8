// Package proof holds natural-deduction proof trees.
//
// A Proof pairs a sequent with the rule that proves it, if any. The premises of that
// rule are themselves proofs. A node without a rule is a goal that remains to be proved.
//
// Proofs are values: applying a rule never modifies a tree, it returns a new one that
// shares its untouched subtrees with the original. Keeping an old tree is therefore
// enough to undo a step.
package proof

import (
	"errors"
	"fmt"

	"github.com/uben0/prove/rule"
	"github.com/uben0/prove/sequent"
)

// ErrComplete is returned when a rule is applied on a complete proof.
var ErrComplete = errors.New("proof is complete")

// A Proof is a proof tree, possibly partial.
type Proof struct {
	seq  sequent.Sequent
	rule *node // nil if the sequent is not proved yet
}

type node struct {
	kind     rule.Kind
	premises []Proof
}

// A Path locates a node in a tree: the successive indices of the premises
// to follow from the root. The root's path is empty.
type Path []int

func (p Path) String() string {
	return fmt.Sprint([]int(p))
}

// New returns the unproved proof of s.
func New(s sequent.Sequent) Proof {
	return Proof{seq: s}
}

// Parse returns the unproved proof of the sequent written in text.
func Parse(text string) (Proof, error) {
	s, err := sequent.Parse(text)
	if err != nil {
		return Proof{}, err
	}
	return New(s), nil
}

// Sequent returns the sequent proved by p.
func (p Proof) Sequent() sequent.Sequent { return p.seq }

// Rule returns the rule proving p's sequent, if any.
func (p Proof) Rule() (rule.Kind, bool) {
	if p.rule == nil {
		return 0, false
	}
	return p.rule.kind, true
}

// Premises returns the premises of p's rule.
// It returns nil if p is not proved yet.
func (p Proof) Premises() []Proof {
	if p.rule == nil {
		return nil
	}
	return append([]Proof(nil), p.rule.premises...)
}

// NextGoal returns the path of the first unproved node, in pre-order, left to right.
// ok is false if the proof is complete.
func (p Proof) NextGoal() (path Path, ok bool) {
	if p.rule == nil {
		return Path{}, true
	}
	for i, prem := range p.rule.premises {
		if sub, ok := prem.NextGoal(); ok {
			return append(Path{i}, sub...), true
		}
	}
	return nil, false
}

// Complete is true iff no node is left unproved.
func (p Proof) Complete() bool {
	_, ok := p.NextGoal()
	return !ok
}

// At returns the node at the given path.
func (p Proof) At(path Path) (Proof, bool) {
	for _, i := range path {
		if p.rule == nil || i < 0 || i >= len(p.rule.premises) {
			return Proof{}, false
		}
		p = p.rule.premises[i]
	}
	return p, true
}

// Apply applies the requested rule to the unproved node at the given path.
// It returns a new tree; p itself is left untouched, whether the rule applies or not.
func (p Proof) Apply(path Path, req rule.Request) (Proof, error) {
	target, ok := p.At(path)
	if !ok {
		return p, fmt.Errorf("no node at path %v", path)
	}
	if target.rule != nil {
		return p, fmt.Errorf("node at path %v is already proved by %v", path, target.rule.kind)
	}
	step, err := rule.Apply(target.seq, req)
	if err != nil {
		return p, err
	}
	premises := make([]Proof, len(step.Premises))
	for i, s := range step.Premises {
		premises[i] = New(s)
	}
	return p.replace(path, Proof{seq: target.seq, rule: &node{kind: step.Kind, premises: premises}}), nil
}

// replace returns a copy of p where the node at path is replaced by repl.
// Only the nodes along the path are copied.
func (p Proof) replace(path Path, repl Proof) Proof {
	if len(path) == 0 {
		return repl
	}
	premises := append([]Proof(nil), p.rule.premises...)
	premises[path[0]] = premises[path[0]].replace(path[1:], repl)
	return Proof{seq: p.seq, rule: &node{kind: p.rule.kind, premises: premises}}
}

// ProveNext applies the requested rule to the next goal.
func (p Proof) ProveNext(req rule.Request) (Proof, error) {
	path, ok := p.NextGoal()
	if !ok {
		return p, ErrComplete
	}
	return p.Apply(path, req)
}

// Walk calls fn on every node of p, in pre-order, left to right.
// If fn returns false, the premises of the node are not visited.
func (p Proof) Walk(fn func(path Path, node Proof) bool) {
	p.walk(Path{}, fn)
}

func (p Proof) walk(path Path, fn func(Path, Proof) bool) {
	if !fn(path, p) || p.rule == nil {
		return
	}
	for i, prem := range p.rule.premises {
		sub := make(Path, len(path)+1)
		copy(sub, path)
		sub[len(path)] = i
		prem.walk(sub, fn)
	}
}

// Stats describes the size of a proof.
type Stats struct {
	Nodes  int // Total number of nodes
	Proved int // Number of nodes with a rule
	Goals  int // Number of unproved nodes
	Depth  int // Number of nodes on the longest branch
}

// Stats returns the size of p.
func (p Proof) Stats() Stats {
	var st Stats
	p.Walk(func(path Path, n Proof) bool {
		st.Nodes++
		if n.rule == nil {
			st.Goals++
		} else {
			st.Proved++
		}
		if len(path)+1 > st.Depth {
			st.Depth = len(path) + 1
		}
		return true
	})
	return st
}
