package prop

// A Symbol is a lexeme that has both an ASCII and a Unicode spelling.
type Symbol int

// Symbols used to write formulas and sequents.
const (
	SymOpen Symbol = iota
	SymClose
	SymFalse
	SymAnd
	SymOr
	SymNot
	SymImplies
	SymIff
	SymTurnstile
	SymComma
)

var symbolRepr = [...][2]string{
	SymOpen:      {"(", "("},
	SymClose:     {")", ")"},
	SymFalse:     {"!", "⊥"},
	SymAnd:       {`/\`, "∧"},
	SymOr:        {`\/`, "∨"},
	SymNot:       {"~", "~"},
	SymImplies:   {"->", "➔"},
	SymIff:       {"<->", "↔"},
	SymTurnstile: {"|-", "⊢"},
	SymComma:     {",", ","},
}

// Repr returns the spelling of the symbol.
func (s Symbol) Repr(unicode bool) string {
	if unicode {
		return symbolRepr[s][1]
	}
	return symbolRepr[s][0]
}

func (s Symbol) String() string { return s.Repr(false) }
