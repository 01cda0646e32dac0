package circuit

import "fmt"

// SyntaxErrorKind classifies grammar violations.
type SyntaxErrorKind int

const (
	// UnexpectedToken marks a token the grammar forbids at its position.
	UnexpectedToken SyntaxErrorKind = iota
	// MissingIdentifier marks an element letter other than 'O' with no
	// following identifier.
	MissingIdentifier
	// EmptyGroup marks parentheses enclosing nothing.
	EmptyGroup
	// UnexpectedLetter marks an element letter the grammar has no
	// production for at its position (e.g. 'O' followed by an identifier).
	UnexpectedLetter
)

// SyntaxError reports the first grammar violation encountered. Parsing stops
// at the first error; there is no recovery or partial result.
type SyntaxError struct {
	Kind     SyntaxErrorKind
	Pos      int    // byte offset of the offending token
	Found    Token  // the offending token
	Expected string // description of what the grammar allowed here
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	switch e.Kind {
	case MissingIdentifier:
		return fmt.Sprintf("element letter at position %d is missing its identifier", e.Pos)
	case EmptyGroup:
		return fmt.Sprintf("empty group at position %d", e.Pos)
	case UnexpectedLetter:
		return fmt.Sprintf("unexpected %s at position %d: %s", e.Found, e.Pos, e.Expected)
	default:
		return fmt.Sprintf("unexpected %s at position %d, expected %s", e.Found, e.Pos, e.Expected)
	}
}

// parser consumes the token stream with a single token of lookahead.
type parser struct {
	lex *Lexer
	tok Token
}

// Parse parses a complete circmark document and returns the root of the
// topology tree. The document is a twoport network when the first token is
// '|' or '-', and a subcircuit otherwise. The whole input must be consumed.
//
// Errors are *LexError or *SyntaxError; the first one encountered aborts the
// parse.
func Parse(src string) (Node, error) {
	p := &parser{lex: NewLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var (
		root Node
		err  error
	)
	switch p.tok.Kind {
	case TokenPipe, TokenDash:
		root, err = p.parseTwoport()
	default:
		root, err = p.parseSubcircuit()
	}
	if err != nil {
		return nil, err
	}

	if p.tok.Kind != TokenEOF {
		return nil, p.unexpected("end of input")
	}
	return root, nil
}

// advance reads the next token from the lexer.
func (p *parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// unexpected builds an UnexpectedToken error for the current token.
func (p *parser) unexpected(expected string) *SyntaxError {
	return &SyntaxError{
		Kind:     UnexpectedToken,
		Pos:      p.tok.Pos,
		Found:    p.tok,
		Expected: expected,
	}
}

// parseTwoport parses link+ where link := ('|' | '-') subcircuit. The
// dispatch in Parse guarantees at least one link operator is present.
func (p *parser) parseTwoport() (Node, error) {
	tp := &Twoport{}
	for p.tok.Kind == TokenPipe || p.tok.Kind == TokenDash {
		kind := Shunt
		if p.tok.Kind == TokenDash {
			kind = Series
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		target, err := p.parseSubcircuit()
		if err != nil {
			return nil, err
		}
		tp.Links = append(tp.Links, Link{Kind: kind, Target: target})
	}
	return tp, nil
}

// parseSubcircuit parses element | '(' series_group ')'. A parenthesized
// group degenerates to its single term when no operator is present, so the
// returned node is never a singleton wrapper.
func (p *parser) parseSubcircuit() (Node, error) {
	switch p.tok.Kind {
	case TokenLParen:
		openPos := p.tok.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.Kind == TokenRParen {
			return nil, &SyntaxError{Kind: EmptyGroup, Pos: openPos, Found: p.tok}
		}
		inner, err := p.parseSeries()
		if err != nil {
			return nil, err
		}
		if p.tok.Kind != TokenRParen {
			return nil, p.unexpected("')'")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return inner, nil

	case TokenOpen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Element{Kind: Open}, nil

	case TokenLetter:
		return p.parseElement()

	default:
		return nil, p.unexpected("element or '('")
	}
}

// parseElement parses an element letter plus its identifier.
func (p *parser) parseElement() (Node, error) {
	letter := p.tok
	kind, ok := kindForLetter(letter.Text[0])
	if !ok {
		// 'O' reaches here when followed by an identifier; the lexer
		// rejects everything else, but stray letters are handled anyway.
		return nil, &SyntaxError{
			Kind:     UnexpectedLetter,
			Pos:      letter.Pos,
			Found:    letter,
			Expected: "letter 'O' takes no identifier",
		}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.Kind != TokenIdent {
		return nil, &SyntaxError{Kind: MissingIdentifier, Pos: letter.Pos, Found: p.tok}
	}
	id := p.tok.Text
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &Element{Kind: kind, ID: id}, nil
}

// parseSeries parses parallel_group ('+' parallel_group)*, flattening all
// terms at this level into one SeriesGroup. '+' binds looser than '||'.
func (p *parser) parseSeries() (Node, error) {
	first, err := p.parseParallel()
	if err != nil {
		return nil, err
	}
	terms := []Node{first}
	for p.tok.Kind == TokenPlus {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseParallel()
		if err != nil {
			return nil, err
		}
		terms = append(terms, next)
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return &SeriesGroup{Members: terms}, nil
}

// parseParallel parses subcircuit ('||' subcircuit)*, flattened into one
// ParallelGroup. The lexer emits single '|' tokens; inside a group two
// adjacent pipes always form the parallel operator, since shunt links only
// occur at the document level.
func (p *parser) parseParallel() (Node, error) {
	first, err := p.parseSubcircuit()
	if err != nil {
		return nil, err
	}
	branches := []Node{first}
	for p.tok.Kind == TokenPipe {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.Kind != TokenPipe {
			return nil, p.unexpected("'|' to complete '||'")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		branch, err := p.parseSubcircuit()
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}
	if len(branches) == 1 {
		return branches[0], nil
	}
	return &ParallelGroup{Branches: branches}, nil
}
