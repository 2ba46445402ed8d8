// Package render draws proof trees as text.
//
// The conclusion of the proof is on the bottom row. Above each proved sequent is an
// inference line labeled with the rule's name, and above that line are its premises,
// side by side, each drawn the same way. The proof of |- A->A is drawn as:
//
//	──────h
//	A |- A
//	───────->i
//	|- A->A
//
// The layout is computed bottom-up, from the leaves to the root, then painted row by row
// from the top. Each sequent is centered with its premises, however unbalanced they are.
package render

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/uben0/prove/proof"
	"github.com/uben0/prove/prop"
)

// gap is the number of columns between two premises.
const gap = 4

// ruleLine is the character the inference lines are made of.
const ruleLine = "─"

// widths measures printed text. Ambiguous-width symbols such as ⊢ are one column wide
// whatever the locale, so that a layout does not depend on the environment.
var widths = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// A Painter turns printed text into the string written on the output.
// It is only used for sequents, never for spacing, so it cannot alter the layout.
type Painter interface {
	Paint(text prop.Text) string
}

type plainPainter struct{}

func (plainPainter) Paint(text prop.Text) string { return text.String() }

// Plain is the painter that discards all styling.
var Plain Painter = plainPainter{}

// Options configures the rendering of a proof.
type Options struct {
	Style    prop.Style
	Painter  Painter // Defaults to Plain
	Emphasis bool    // Emphasize the conclusion of the next goal
}

// geom is the layout of a node, computed bottom-up.
type geom struct {
	text        prop.Text
	proved      bool
	label       string
	labelWidth  int
	over        []*geom // Layouts of the premises
	width       int     // Total width of the block
	height      int     // Total height of the block
	bottomX     int     // Column where the sequent starts
	bottomWidth int     // Printed width of the sequent
	center      int     // Column the sequent and the premises are centered on
}

func measure(p proof.Proof, path proof.Path, goal proof.Path, opts Options) *geom {
	emph := opts.Emphasis && goal != nil && equalPaths(path, goal)
	g := &geom{text: p.Sequent().Format(opts.Style, emph)}
	g.bottomWidth = widths.StringWidth(g.text.String())
	kind, proved := p.Rule()
	if !proved {
		g.width = g.bottomWidth
		g.height = 1
		g.center = g.bottomWidth / 2
		return g
	}
	g.proved = true
	g.label = kind.Label(opts.Style.Unicode)
	g.labelWidth = widths.StringWidth(g.label)
	for i, prem := range p.Premises() {
		g.over = append(g.over, measure(prem, appendPath(path, i), goal, opts))
	}
	uLeft, uRight := g.upperHalves()
	bLeft, bRight := g.bottomHalves()
	_, lRight := g.lineHalves()
	g.center = max(uLeft, bLeft)
	lineEnd := g.center + max(bRight, lRight)
	g.width = max(g.center+max(uRight, bRight), lineEnd+g.labelWidth)
	g.height = g.overHeight() + 2
	g.bottomX = g.center - bLeft
	return g
}

func appendPath(path proof.Path, i int) proof.Path {
	res := make(proof.Path, len(path)+1)
	copy(res, path)
	res[len(path)] = i
	return res
}

func equalPaths(a, b proof.Path) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// spanX is the column, relative to the premises block, where the first premise's sequent starts.
func (g *geom) spanX() int {
	if len(g.over) == 0 {
		return 0
	}
	return g.over[0].bottomX
}

// spanWidth is the distance between the start of the first premise's sequent
// and the end of the last premise's sequent.
func (g *geom) spanWidth() int {
	switch len(g.over) {
	case 0:
		return 0
	case 1:
		return g.over[0].bottomWidth
	}
	first, last := g.over[0], g.over[len(g.over)-1]
	w := first.width - first.bottomX + gap + last.bottomX + last.bottomWidth
	for _, o := range g.over[1 : len(g.over)-1] {
		w += o.width + gap
	}
	return w
}

// overWidth is the width of the premises block.
func (g *geom) overWidth() int {
	w := 0
	for i, o := range g.over {
		if i > 0 {
			w += gap
		}
		w += o.width
	}
	return w
}

func (g *geom) overHeight() int {
	h := 0
	for _, o := range g.over {
		h = max(h, o.height)
	}
	return h
}

// upperHalves splits the premises block around the middle of the premises' sequents.
func (g *geom) upperHalves() (left, right int) {
	c := g.spanX() + g.spanWidth()/2
	return c, g.overWidth() - c
}

// lineHalves splits the span of the premises' sequents in two.
func (g *geom) lineHalves() (left, right int) {
	w := g.spanWidth()
	return w / 2, w - w/2
}

// bottomHalves splits the node's own sequent in two.
func (g *geom) bottomHalves() (left, right int) {
	return g.bottomWidth / 2, g.bottomWidth - g.bottomWidth/2
}

// paint writes the given row of g, row 0 being the node's own sequent.
// Every row is exactly g.width columns wide.
func (g *geom) paint(sb *strings.Builder, row int, painter Painter) {
	switch {
	case row == 0:
		sb.WriteString(strings.Repeat(" ", g.bottomX))
		sb.WriteString(painter.Paint(g.text))
		sb.WriteString(strings.Repeat(" ", g.width-g.bottomX-g.bottomWidth))
	case !g.proved:
		sb.WriteString(strings.Repeat(" ", g.width))
	case row == 1:
		bLeft, bRight := g.bottomHalves()
		lLeft, lRight := g.lineHalves()
		begin := g.center - max(bLeft, lLeft)
		end := g.center + max(bRight, lRight)
		sb.WriteString(strings.Repeat(" ", begin))
		sb.WriteString(strings.Repeat(ruleLine, end-begin))
		sb.WriteString(g.label)
		sb.WriteString(strings.Repeat(" ", g.width-end-g.labelWidth))
	default:
		uLeft, uRight := g.upperHalves()
		sb.WriteString(strings.Repeat(" ", g.center-uLeft))
		for i, o := range g.over {
			if i > 0 {
				sb.WriteString(strings.Repeat(" ", gap))
			}
			o.paint(sb, row-2, painter)
		}
		sb.WriteString(strings.Repeat(" ", g.width-g.center-uRight))
	}
}

// Lines renders p, top row first.
// All lines have the same width, padded with spaces.
func Lines(p proof.Proof, opts Options) []string {
	if opts.Painter == nil {
		opts.Painter = Plain
	}
	goal, ok := p.NextGoal()
	if !ok {
		goal = nil
	}
	g := measure(p, proof.Path{}, goal, opts)
	lines := make([]string, 0, g.height)
	for row := g.height - 1; row >= 0; row-- {
		var sb strings.Builder
		g.paint(&sb, row, opts.Painter)
		lines = append(lines, sb.String())
	}
	return lines
}

// String renders p as a single string, one line per row, trailing spaces removed.
func String(p proof.Proof, opts Options) string {
	var sb strings.Builder
	for _, line := range Lines(p, opts) {
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
