package circuit

import (
	"fmt"
	"unicode/utf8"
)

// LexError reports a character outside the circmark alphabet.
type LexError struct {
	Pos  int  // byte offset of the offending character
	Char rune // the character itself
}

// Error implements the error interface.
func (e *LexError) Error() string {
	return fmt.Sprintf("unexpected character %q at position %d", e.Char, e.Pos)
}

// elementLetters is the set of letters that start an element.
const elementLetters = "ORCLVIZ"

// Lexer turns a circmark source string into a lazy token stream. It is
// single-use: create a new Lexer to restart from the beginning. Tokens are
// produced on demand by Next and are meant to be consumed immediately by the
// parser.
type Lexer struct {
	src       string
	pos       int
	afterElem bool // previous token was an element letter
}

// NewLexer creates a lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Next returns the next token, or a *LexError if the input contains a
// character outside the recognized alphabet. Once TokenEOF is returned every
// subsequent call returns TokenEOF again.
func (l *Lexer) Next() (Token, error) {
	if l.pos >= len(l.src) {
		return Token{Kind: TokenEOF, Pos: l.pos}, nil
	}

	start := l.pos
	c := l.src[l.pos]

	// Directly after an element letter the only valid alphanumeric
	// continuation is the element's identifier, so the letter set does not
	// apply here: "RL7" is R followed by identifier "L7".
	if l.afterElem && isAlnum(c) {
		l.afterElem = false
		return l.lexIdent(start), nil
	}
	l.afterElem = false

	switch c {
	case '|':
		l.pos++
		return Token{Kind: TokenPipe, Pos: start}, nil
	case '-':
		l.pos++
		return Token{Kind: TokenDash, Pos: start}, nil
	case '+':
		l.pos++
		return Token{Kind: TokenPlus, Pos: start}, nil
	case '(':
		l.pos++
		return Token{Kind: TokenLParen, Pos: start}, nil
	case ')':
		l.pos++
		return Token{Kind: TokenRParen, Pos: start}, nil
	}

	if isElementLetter(c) {
		l.pos++
		if c == 'O' && (l.pos >= len(l.src) || !isAlnum(l.src[l.pos])) {
			return Token{Kind: TokenOpen, Pos: start}, nil
		}
		l.afterElem = true
		return Token{Kind: TokenLetter, Pos: start, Text: string(c)}, nil
	}

	if isAlnum(c) {
		return l.lexIdent(start), nil
	}

	// Decode the full rune so multi-byte characters are reported as
	// themselves, not as their first byte.
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return Token{}, &LexError{Pos: start, Char: r}
}

// lexIdent consumes a maximal run of alphanumeric characters.
func (l *Lexer) lexIdent(start int) Token {
	for l.pos < len(l.src) && isAlnum(l.src[l.pos]) {
		l.pos++
	}
	return Token{Kind: TokenIdent, Pos: start, Text: l.src[start:l.pos]}
}

func isElementLetter(c byte) bool {
	for i := 0; i < len(elementLetters); i++ {
		if elementLetters[i] == c {
			return true
		}
	}
	return false
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
