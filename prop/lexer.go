package prop

import (
	"unicode/utf8"
)

type tokenKind int

const (
	tokName tokenKind = iota
	tokFalse
	tokAnd
	tokOr
	tokNot
	tokImplies
	tokIff
	tokOpen
	tokClose
	tokGroup // Only produced by group, never by lex
)

type token struct {
	kind   tokenKind
	name   string  // For tokName
	offset int     // Byte offset in the input
	group  []token // For tokGroup: the tokens between the parentheses
}

// prec returns the precedence of an operator token.
// ok is false if the token is an operand.
func (t token) prec() (p precedence, ok bool) {
	switch t.kind {
	case tokNot:
		return precNegation, true
	case tokAnd:
		return precConjunction, true
	case tokOr:
		return precDisjunction, true
	case tokImplies:
		return precImplication, true
	case tokIff:
		return precEquivalence, true
	default:
		return 0, false
	}
}

// Unicode spellings are accepted as aliases since the printer can emit them.
var unicodeTokens = map[rune]tokenKind{
	'∧': tokAnd,
	'∨': tokOr,
	'¬': tokNot,
	'➔': tokImplies,
	'→': tokImplies,
	'↔': tokIff,
	'⇔': tokIff,
	'⊥': tokFalse,
}

func isLetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

func isNameChar(b byte) bool { return isLetter(b) || (b >= '0' && b <= '9') || b == '_' }

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

type lexer struct {
	input string
	pos   int
}

// mustFollow consumes the expected continuation of a multi-character operator.
func (l *lexer) mustFollow(start int, next string) error {
	if l.pos+len(next) > len(l.input) {
		return &LexError{Offset: start, Msg: "unexpected end of input in operator"}
	}
	for i := 0; i < len(next); i++ {
		if l.input[l.pos+i] != next[i] {
			return &LexError{Offset: l.pos + i, Msg: "unexpected character in operator"}
		}
	}
	l.pos += len(next)
	return nil
}

// lex splits the input into a flat list of tokens.
func lex(input string) ([]token, error) {
	l := lexer{input: input}
	var toks []token
	for l.pos < len(l.input) {
		start := l.pos
		b := l.input[l.pos]
		if isSpace(b) {
			l.pos++
			continue
		}
		if isLetter(b) {
			for l.pos < len(l.input) && isNameChar(l.input[l.pos]) {
				l.pos++
			}
			toks = append(toks, token{kind: tokName, name: l.input[start:l.pos], offset: start})
			continue
		}
		l.pos++
		var kind tokenKind
		switch b {
		case '(':
			kind = tokOpen
		case ')':
			kind = tokClose
		case '!':
			kind = tokFalse
		case '~':
			kind = tokNot
		case '/':
			kind = tokAnd
			if err := l.mustFollow(start, `\`); err != nil {
				return nil, err
			}
		case '\\':
			kind = tokOr
			if err := l.mustFollow(start, "/"); err != nil {
				return nil, err
			}
		case '-':
			kind = tokImplies
			if err := l.mustFollow(start, ">"); err != nil {
				return nil, err
			}
		case '<':
			kind = tokIff
			if err := l.mustFollow(start, "->"); err != nil {
				return nil, err
			}
		default:
			r, size := utf8.DecodeRuneInString(l.input[start:])
			k, ok := unicodeTokens[r]
			if !ok {
				return nil, &LexError{Offset: start, Msg: "unexpected character " + quoteRune(r)}
			}
			l.pos = start + size
			kind = k
		}
		toks = append(toks, token{kind: kind, offset: start})
	}
	return toks, nil
}

func quoteRune(r rune) string {
	if r == utf8.RuneError {
		return "(invalid UTF-8)"
	}
	return "'" + string(r) + "'"
}

// group nests the tokens between matching parentheses into tokGroup tokens,
// so that the parser never has to track nesting depth.
func group(toks []token) ([]token, error) {
	res, _, err := groupRec(toks, -1)
	return res, err
}

// groupRec collects tokens until the closing parenthesis matching the one at offset open.
// open is -1 at top level. It returns the collected tokens and the remaining ones,
// starting with the closing parenthesis if any.
func groupRec(toks []token, open int) (res, rest []token, err error) {
	for len(toks) > 0 {
		tok := toks[0]
		switch tok.kind {
		case tokOpen:
			sub, rest, err := groupRec(toks[1:], tok.offset)
			if err != nil {
				return nil, nil, err
			}
			if len(rest) == 0 {
				return nil, nil, &LexError{Offset: tok.offset, Msg: "closing parenthesis expected"}
			}
			res = append(res, token{kind: tokGroup, offset: tok.offset, group: sub})
			toks = rest[1:]
		case tokClose:
			if open < 0 {
				return nil, nil, &LexError{Offset: tok.offset, Msg: "unexpected closing parenthesis"}
			}
			return res, toks, nil
		default:
			res = append(res, tok)
			toks = toks[1:]
		}
	}
	return res, nil, nil
}
