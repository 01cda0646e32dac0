package circuit

import (
	"errors"
	"testing"
)

// collectTokens drains the lexer and returns all tokens up to and including EOF.
func collectTokens(t *testing.T, src string) []Token {
	t.Helper()
	lex := NewLexer(src)
	var toks []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			t.Fatalf("Next() error on %q: %v", src, err)
		}
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks
		}
	}
}

func TestLexerTokenKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []TokenKind
	}{
		{
			name: "single element",
			src:  "R1",
			want: []TokenKind{TokenLetter, TokenIdent, TokenEOF},
		},
		{
			name: "open element",
			src:  "O",
			want: []TokenKind{TokenOpen, TokenEOF},
		},
		{
			name: "series group",
			src:  "(R1+C2)",
			want: []TokenKind{TokenLParen, TokenLetter, TokenIdent, TokenPlus, TokenLetter, TokenIdent, TokenRParen, TokenEOF},
		},
		{
			name: "double pipe emits two pipes",
			src:  "(R1||R2)",
			want: []TokenKind{TokenLParen, TokenLetter, TokenIdent, TokenPipe, TokenPipe, TokenLetter, TokenIdent, TokenRParen, TokenEOF},
		},
		{
			name: "twoport operators",
			src:  "|O-R1|O",
			want: []TokenKind{TokenPipe, TokenOpen, TokenDash, TokenLetter, TokenIdent, TokenPipe, TokenOpen, TokenEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := collectTokens(t, tt.src)
			if len(toks) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d: %v", len(toks), len(tt.want), toks)
			}
			for i, tok := range toks {
				if tok.Kind != tt.want[i] {
					t.Errorf("token %d: got %v, want %v", i, tok.Kind, tt.want[i])
				}
			}
		})
	}
}

func TestLexerIdentifierAfterLetter(t *testing.T) {
	// The run after an element letter is always an identifier, even when it
	// starts with another element letter.
	toks := collectTokens(t, "RL7")
	if toks[0].Kind != TokenLetter || toks[0].Text != "R" {
		t.Fatalf("first token: got %v %q, want Letter R", toks[0].Kind, toks[0].Text)
	}
	if toks[1].Kind != TokenIdent || toks[1].Text != "L7" {
		t.Fatalf("second token: got %v %q, want Ident L7", toks[1].Kind, toks[1].Text)
	}
}

func TestLexerOpenFollowedByIdent(t *testing.T) {
	// 'O' with a trailing alphanumeric run lexes as a letter, so the parser
	// can reject it with a precise error.
	toks := collectTokens(t, "O1")
	if toks[0].Kind != TokenLetter || toks[0].Text != "O" {
		t.Fatalf("first token: got %v %q, want Letter O", toks[0].Kind, toks[0].Text)
	}
	if toks[1].Kind != TokenIdent || toks[1].Text != "1" {
		t.Fatalf("second token: got %v %q, want Ident 1", toks[1].Kind, toks[1].Text)
	}
}

func TestLexerPositions(t *testing.T) {
	toks := collectTokens(t, "(R1+C22)")
	wantPos := []int{0, 1, 2, 3, 4, 5, 7, 8}
	for i, tok := range toks {
		if tok.Pos != wantPos[i] {
			t.Errorf("token %d (%v): pos %d, want %d", i, tok.Kind, tok.Pos, wantPos[i])
		}
	}
}

func TestLexerInvalidCharacter(t *testing.T) {
	tests := []struct {
		src     string
		wantPos int
		wantChr rune
	}{
		{"R*", 1, '*'},
		{"R1 +C2", 2, ' '},
		{"(R1+C2)!", 7, '!'},
		{"#", 0, '#'},
		// Multi-byte characters are reported whole, not byte by byte.
		{"R1é", 2, 'é'},
		{"(R1+Ω2)", 4, 'Ω'},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			lex := NewLexer(tt.src)
			var lexErr *LexError
			for {
				tok, err := lex.Next()
				if err != nil {
					if !errors.As(err, &lexErr) {
						t.Fatalf("got error %T, want *LexError", err)
					}
					break
				}
				if tok.Kind == TokenEOF {
					t.Fatalf("lexed %q without error", tt.src)
				}
			}
			if lexErr.Pos != tt.wantPos {
				t.Errorf("pos: got %d, want %d", lexErr.Pos, tt.wantPos)
			}
			if lexErr.Char != tt.wantChr {
				t.Errorf("char: got %q, want %q", lexErr.Char, tt.wantChr)
			}
		})
	}
}

func TestLexerEOFIsSticky(t *testing.T) {
	lex := NewLexer("O")
	if tok, _ := lex.Next(); tok.Kind != TokenOpen {
		t.Fatalf("got %v, want TokenOpen", tok.Kind)
	}
	for i := 0; i < 3; i++ {
		tok, err := lex.Next()
		if err != nil || tok.Kind != TokenEOF {
			t.Fatalf("call %d after end: got %v, %v", i, tok.Kind, err)
		}
	}
}
