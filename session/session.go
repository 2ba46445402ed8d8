// Package session drives the interactive proof of a list of sequents.
//
// A session proves its sequents one after the other. Each input line is either a rule
// request, applied to the next goal of the current proof, or a meta command starting
// with a colon (see Usage). Every successful step is kept in a History, so it can be undone.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/uben0/prove/logging"
	"github.com/uben0/prove/proof"
	"github.com/uben0/prove/prop"
	"github.com/uben0/prove/render"
	"github.com/uben0/prove/rule"
	"github.com/uben0/prove/sequent"
	"github.com/uben0/prove/valid"
)

// Usage describes the commands of a session.
const Usage = `COMMANDS
  :b            back one step, undo the last action
  :f            forward one step, redo the last undone action
  :r            reset all steps, undo all actions
  :s            skip to the next sequent
  :h            print this help message
  :n            toggle on/off the negation representation
  :u            toggle on/off unicode symbols
  :c            check the current goal is classically valid
  :w            show which hypotheses of the current goal can be weakened away
  :q            quit the program

APPLICABLE RULES
  h             hypothesis
  i             introduction of the conclusion (the rule is chosen
                from the conclusion's connective)
  xf            exfalso
  e <N>         elimination of the Nth hypothesis (the rule is chosen
                from the hypothesis' connective)
  ii            implication introduction
  iis           implications introduction (for chained implications)
  dil           disjunction introduction left
  dir           disjunction introduction right
  ci            conjunction introduction
  mp <F>        modus ponens on F (a formula like ~P/\Q)
  de <F>, <F>   disjunction elimination of left formula and right formula
  ce <F>, <F>   conjunction elimination of left formula and right formula
  aff <N> ...   weakening, removal of the given hypotheses

Hypotheses are numbered from 0.
`

// Kind tells what an input did.
type Kind int

const (
	Applied  Kind = iota // A rule was applied, goals remain
	Solved               // A rule was applied and the proof is complete
	Moved                // The history was moved: undo, redo or restart
	Next                 // The session moved to the next sequent
	Styled               // The display style was changed
	Message              // Information about the current goal
	Help                 // Usage was requested
	Finished             // There are no more sequents
	Quit                 // The user asked to quit
)

var kindNames = [...]string{
	Applied:  "applied",
	Solved:   "solved",
	Moved:    "moved",
	Next:     "next",
	Styled:   "styled",
	Message:  "message",
	Help:     "help",
	Finished: "finished",
	Quit:     "quit",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Outcome is the result of a successful input.
type Outcome struct {
	Kind    Kind
	Message string
}

// ErrEmptyInput is returned when an input line is blank.
var ErrEmptyInput = errors.New("empty input")

// ErrNoHistory is returned when there is no step to undo or redo.
var ErrNoHistory = errors.New("no more history")

// ErrUnknownCommand is returned for a meta command that does not exist.
var ErrUnknownCommand = errors.New("unknown command")

// Options configures a session.
type Options struct {
	Style    prop.Style
	Emphasis bool           // Emphasize the next goal in renders
	Painter  render.Painter // Defaults to render.Plain
	Logger   *slog.Logger   // Defaults to a discarding logger

	// CheckTimeout bounds the validity checks run by :c and :w, 0 for no bound.
	CheckTimeout time.Duration
}

// A Session is the state of an interactive proof.
type Session struct {
	seqs  []sequent.Sequent
	index int // Index of the current sequent, len(seqs) once all were seen
	hist  *History
	opts  Options
	log   *slog.Logger
}

// New returns a session over the given sequents, starting with the first one.
func New(seqs []sequent.Sequent, opts Options) (*Session, error) {
	if len(seqs) == 0 {
		return nil, errors.New("no sequent to prove")
	}
	if opts.Painter == nil {
		opts.Painter = render.Plain
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	s := &Session{seqs: seqs, opts: opts, log: opts.Logger}
	s.start(0)
	return s, nil
}

func (s *Session) start(index int) {
	s.index = index
	if index < len(s.seqs) {
		s.hist = NewHistory(proof.New(s.seqs[index]))
		s.log.Info("proving sequent", "index", index, "sequent", s.seqs[index].String())
	}
}

// Done is true once every sequent was either proved or skipped.
func (s *Session) Done() bool { return s.index >= len(s.seqs) }

// Index returns the index of the current sequent and the number of sequents.
func (s *Session) Index() (index, total int) { return s.index, len(s.seqs) }

// Proof returns the current proof. It must not be called once the session is done.
func (s *Session) Proof() proof.Proof { return s.hist.Current() }

// Style returns the current display style.
func (s *Session) Style() prop.Style { return s.opts.Style }

// Goal returns the sequent the next rule request applies to.
// Once the proof is complete, that is the proved sequent itself.
func (s *Session) Goal() sequent.Sequent {
	p := s.Proof()
	path, ok := p.NextGoal()
	if !ok {
		return p.Sequent()
	}
	goal, _ := p.At(path)
	return goal.Sequent()
}

// Render returns the current proof tree.
func (s *Session) Render() string {
	if s.Done() {
		return ""
	}
	return render.String(s.Proof(), render.Options{
		Style:    s.opts.Style,
		Painter:  s.opts.Painter,
		Emphasis: s.opts.Emphasis,
	})
}

// Status returns a one-line summary of the session.
func (s *Session) Status() string {
	if s.Done() {
		return fmt.Sprintf("%d/%d sequents", len(s.seqs), len(s.seqs))
	}
	st := s.Proof().Stats()
	return fmt.Sprintf("sequent %d/%d, step %d, %d goals left", s.index+1, len(s.seqs), s.hist.Steps(), st.Goals)
}

// Exec executes an input line.
// On error, the state of the session is unchanged.
func (s *Session) Exec(ctx context.Context, line string) (Outcome, error) {
	line = strings.TrimSpace(line)
	if s.Done() {
		if line == ":q" {
			return Outcome{Kind: Quit}, nil
		}
		return Outcome{Kind: Finished, Message: "no more sequents"}, nil
	}
	// Once proved, any input that is not a meta command moves on.
	if s.Proof().Complete() && !strings.HasPrefix(line, ":") {
		return s.next("next sequent"), nil
	}
	if line == "" {
		return Outcome{}, ErrEmptyInput
	}
	if line[0] == ':' {
		return s.meta(ctx, line)
	}
	return s.apply(line)
}

func (s *Session) apply(line string) (Outcome, error) {
	req, err := rule.ParseRequest(line)
	if err != nil {
		s.log.Info("invalid rule request", "input", line, "error", err)
		return Outcome{}, err
	}
	cur := s.Proof()
	path, _ := cur.NextGoal()
	goal, _ := cur.At(path)
	p, err := cur.ProveNext(req)
	if err != nil {
		s.log.Info("rule not applicable", "request", req.String(), "goal", goal.Sequent().String(), "error", err)
		return Outcome{}, err
	}
	s.hist.Push(p)
	applied, _ := p.At(path)
	kind, _ := applied.Rule()
	s.log.Debug("rule applied",
		"rule", kind.String(),
		"path", path.String(),
		"goal", goal.Sequent().String(),
		"premises", len(applied.Premises()))
	if p.Complete() {
		s.log.Info("sequent proved", "index", s.index, "steps", s.hist.Steps())
		return Outcome{Kind: Solved, Message: "solved"}, nil
	}
	return Outcome{Kind: Applied}, nil
}

func (s *Session) meta(ctx context.Context, line string) (Outcome, error) {
	switch line {
	case ":b":
		if !s.hist.Undo() {
			return Outcome{}, ErrNoHistory
		}
		return Outcome{Kind: Moved}, nil
	case ":f":
		if !s.hist.Redo() {
			return Outcome{}, ErrNoHistory
		}
		return Outcome{Kind: Moved}, nil
	case ":r":
		s.hist.Reset()
		return Outcome{Kind: Moved}, nil
	case ":s":
		s.log.Info("sequent skipped", "index", s.index)
		return s.next("skipped"), nil
	case ":h":
		return Outcome{Kind: Help, Message: Usage}, nil
	case ":n":
		s.opts.Style.Negation = !s.opts.Style.Negation
		return Outcome{Kind: Styled, Message: onOff("negation", s.opts.Style.Negation)}, nil
	case ":u":
		s.opts.Style.Unicode = !s.opts.Style.Unicode
		return Outcome{Kind: Styled, Message: onOff("unicode", s.opts.Style.Unicode)}, nil
	case ":c", ":w":
		ctx, cancel := s.checkContext(ctx)
		defer cancel()
		if line == ":c" {
			return Check(ctx, s.Goal())
		}
		return Needed(ctx, s.Goal())
	case ":q":
		return Outcome{Kind: Quit}, nil
	}
	return Outcome{}, fmt.Errorf("%w %q", ErrUnknownCommand, line)
}

func (s *Session) checkContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.CheckTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opts.CheckTimeout)
}

func (s *Session) next(msg string) Outcome {
	s.start(s.index + 1)
	if s.Done() {
		return Outcome{Kind: Finished, Message: "no more sequents"}
	}
	return Outcome{Kind: Next, Message: msg}
}

func onOff(name string, on bool) string {
	if on {
		return name + " on"
	}
	return name + " off"
}

// Check reports whether goal is classically valid.
func Check(ctx context.Context, goal sequent.Sequent) (Outcome, error) {
	res, err := valid.Check(ctx, goal)
	if err != nil {
		return Outcome{}, fmt.Errorf("could not check validity: %w", err)
	}
	msg := res.String()
	if res.Valid {
		msg += " (a proof may still not exist)"
	} else {
		msg += " (there is no proof)"
	}
	return Outcome{Kind: Message, Message: msg}, nil
}

// Needed reports which hypotheses of goal can be weakened away while keeping it valid,
// with the rule request doing so.
func Needed(ctx context.Context, goal sequent.Sequent) (Outcome, error) {
	needed, err := valid.Needed(ctx, goal)
	if err != nil {
		return Outcome{}, fmt.Errorf("could not find needed hypotheses: %w", err)
	}
	var useless []string
	for i, j := 0, 0; i < goal.NbHypotheses(); i++ {
		if j < len(needed) && needed[j] == i {
			j++
			continue
		}
		useless = append(useless, strconv.Itoa(i))
	}
	if len(useless) == 0 {
		return Outcome{Kind: Message, Message: "every hypothesis is needed"}, nil
	}
	return Outcome{Kind: Message, Message: "hypotheses not needed: aff " + strings.Join(useless, " ")}, nil
}
