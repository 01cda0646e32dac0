package circuit

import "fmt"

// TokenKind identifies the lexical class of a token.
type TokenKind int

// Token kinds produced by the lexer. TokenDoublePipe is never emitted by the
// lexer itself: the parser merges two adjacent TokenPipe tokens into the
// parallel operator when it is inside a parallel-group production. A lone
// pipe at the document or link level is always a shunt-link operator.
const (
	TokenEOF TokenKind = iota
	TokenPipe
	TokenDash
	TokenPlus
	TokenDoublePipe
	TokenLParen
	TokenRParen
	TokenLetter // element letter from {O,R,C,L,V,I,Z}
	TokenIdent  // maximal run of alphanumeric characters
	TokenOpen   // 'O' with no following identifier
)

// String returns a human-readable name for the token kind, used in
// diagnostics.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of input"
	case TokenPipe:
		return "'|'"
	case TokenDash:
		return "'-'"
	case TokenPlus:
		return "'+'"
	case TokenDoublePipe:
		return "'||'"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenLetter:
		return "element letter"
	case TokenIdent:
		return "identifier"
	case TokenOpen:
		return "'O'"
	default:
		return "unknown token"
	}
}

// Token is a single lexical unit. Pos is the byte offset of the token's
// first character in the source string. Text carries the identifier text for
// TokenIdent and the letter for TokenLetter; it is empty for operator tokens.
type Token struct {
	Kind TokenKind
	Pos  int
	Text string
}

// String formats the token for diagnostics, e.g. "identifier \"th1\"".
func (t Token) String() string {
	switch t.Kind {
	case TokenIdent:
		return fmt.Sprintf("identifier %q", t.Text)
	case TokenLetter:
		return fmt.Sprintf("letter %q", t.Text)
	default:
		return t.Kind.String()
	}
}
