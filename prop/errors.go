package prop

import "fmt"

// A LexError is returned when the input contains an illegal character,
// a malformed operator or unbalanced parentheses.
type LexError struct {
	Offset int // Byte offset of the faulty character in the input
	Msg    string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("at offset %d: %s", e.Offset, e.Msg)
}

// A SyntaxError is returned when a well-lexed input is not a formula.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Msg
}
