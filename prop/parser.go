package prop

// Parse parses the formula written in s.
// See the package documentation for the accepted syntax.
func Parse(s string) (Prop, error) {
	toks, err := lex(s)
	if err != nil {
		return nil, err
	}
	toks, err = group(toks)
	if err != nil {
		return nil, err
	}
	return parseTokens(toks)
}

// MustParse is like Parse but panics if s is not a valid formula.
// It is meant for tests and for formulas known at compile time.
func MustParse(s string) Prop {
	p, err := Parse(s)
	if err != nil {
		panic("prop: cannot parse " + s + ": " + err.Error())
	}
	return p
}

// splitAtWeakest returns the index of the operator with the loosest binding.
// When several operators share that precedence, the leftmost one is chosen,
// which makes chains of the same operator right-associative.
// It returns -1 if toks contains no operator.
func splitAtWeakest(toks []token) int {
	idx := -1
	var weakest precedence
	for i, tok := range toks {
		if p, ok := tok.prec(); ok && (idx == -1 || p > weakest) {
			idx = i
			weakest = p
		}
	}
	return idx
}

func parseTokens(toks []token) (Prop, error) {
	switch len(toks) {
	case 0:
		return nil, &SyntaxError{Msg: "empty expression"}
	case 1:
		switch tok := toks[0]; tok.kind {
		case tokName:
			return Var(tok.name), nil
		case tokFalse:
			return False, nil
		case tokGroup:
			return parseTokens(tok.group)
		}
	}
	idx := splitAtWeakest(toks)
	if idx == -1 {
		return nil, &SyntaxError{Msg: "operator not found"}
	}
	op := toks[idx]
	if op.kind == tokNot {
		if idx != 0 {
			return nil, &SyntaxError{Msg: "negation is not a binary operator"}
		}
		sub, err := parseTokens(toks[1:])
		if err != nil {
			return nil, err
		}
		return Not(sub), nil
	}
	l, err := parseTokens(toks[:idx])
	if err != nil {
		return nil, err
	}
	r, err := parseTokens(toks[idx+1:])
	if err != nil {
		return nil, err
	}
	switch op.kind {
	case tokAnd:
		return And(l, r), nil
	case tokOr:
		return Or(l, r), nil
	case tokImplies:
		return Implies(l, r), nil
	case tokIff:
		return Eq(l, r), nil
	default:
		panic("unexpected operator token")
	}
}
