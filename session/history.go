package session

import "github.com/uben0/prove/proof"

// History retains every state of a proof so that steps can be undone and redone.
// Proofs are immutable, so the states share all their untouched nodes.
type History struct {
	root    proof.Proof
	past    []proof.Proof // States before the current one, oldest first
	current proof.Proof
	future  []proof.Proof // Undone states, most recently undone last
}

// NewHistory returns a history whose only state is root.
func NewHistory(root proof.Proof) *History {
	return &History{root: root, current: root}
}

// Current returns the current state.
func (h *History) Current() proof.Proof { return h.current }

// Push makes p the current state. Undone states are forgotten.
func (h *History) Push(p proof.Proof) {
	h.past = append(h.past, h.current)
	h.current = p
	h.future = h.future[:0]
}

// Undo goes back one state. It returns false if there is nothing to undo.
func (h *History) Undo() bool {
	if len(h.past) == 0 {
		return false
	}
	h.future = append(h.future, h.current)
	h.current = h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	return true
}

// Redo reapplies the last undone state. It returns false if there is nothing to redo.
func (h *History) Redo() bool {
	if len(h.future) == 0 {
		return false
	}
	h.past = append(h.past, h.current)
	h.current = h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	return true
}

// Reset goes back to the initial state and forgets every other one.
func (h *History) Reset() {
	h.past = h.past[:0]
	h.future = h.future[:0]
	h.current = h.root
}

// Steps is the number of states before the current one.
func (h *History) Steps() int { return len(h.past) }
