package lang

import (
	"log/slog"
	"unicode"
	"unicode/utf8"
)

// lexer holds the scanner state.
type lexer struct {
	input []byte
	pos   int
	line  int
	col   int
}

// lex scans the entire input and returns the token stream, excluding
// comments, terminated by a KindEOF token. The first unrecognizable
// span aborts the scan with a lexical error.
func lex(source string) ([]Token, error) {
	l := &lexer{
		input: []byte(source),
		pos:   0,
		line:  1,
		col:   1,
	}

	toks := make([]Token, 0, 64)

	for {
		l.skipWhitespaceAndComments()

		if l.eof() {
			toks = append(toks, Token{Kind: KindEOF, Pos: l.position()})

			return toks, nil
		}

		tok, err := l.next()
		if err != nil {
			return nil, err
		}

		toks = append(toks, tok)
	}
}

// next scans one token. The caller has already skipped whitespace and
// comments, so the current character begins a token or is invalid.
func (l *lexer) next() (Token, error) {
	pos := l.position()
	ch := l.peek()

	switch ch {
	case '{':
		l.advance()

		return Token{Kind: KindLBrace, Text: "{", Pos: pos}, nil
	case '}':
		l.advance()

		return Token{Kind: KindRBrace, Text: "}", Pos: pos}, nil
	case '(':
		l.advance()

		return Token{Kind: KindLParen, Text: "(", Pos: pos}, nil
	case ')':
		l.advance()

		return Token{Kind: KindRParen, Text: ")", Pos: pos}, nil
	case ',':
		l.advance()

		return Token{Kind: KindComma, Text: ",", Pos: pos}, nil
	case ';':
		l.advance()

		return Token{Kind: KindSemi, Text: ";", Pos: pos}, nil
	case ':':
		l.advance()

		return Token{Kind: KindColon, Text: ":", Pos: pos}, nil
	case '/':
		// "//" comments were consumed by skipWhitespaceAndComments, so
		// a slash here is the statement partition token.
		l.advance()

		return Token{Kind: KindSlash, Text: "/", Pos: pos}, nil
	case '\'':
		return l.lexRegion(pos)
	}

	if isWordChar(ch) {
		return l.lexWord(pos)
	}

	return Token{}, newParseError(ErrLexical, pos, string(l.input), "",
		"a keyword, identifier, or punctuation").
		With(slog.String("character", string(ch)))
}

// lexRegion scans a region identifier: a ' sigil followed by one or
// more word characters.
func (l *lexer) lexRegion(pos Position) (Token, error) {
	start := l.pos

	l.advance() // consume sigil

	if l.eof() || !isWordChar(l.peek()) {
		return Token{}, newParseError(ErrLexical, pos, string(l.input), "'",
			"a word character after the region sigil")
	}

	for !l.eof() && isWordChar(l.peek()) {
		l.advance()
	}

	return Token{
		Kind: KindRegion,
		Text: string(l.input[start:l.pos]),
		Pos:  pos,
	}, nil
}

// lexWord scans a bare word and classifies it as a keyword or as a
// block, loan, or variable identifier by its leading sigil. Any other
// word is a lexical error: the format has no free-form identifiers.
func (l *lexer) lexWord(pos Position) (Token, error) {
	start := l.pos

	for !l.eof() && isWordChar(l.peek()) {
		l.advance()
	}

	word := string(l.input[start:l.pos])

	if kind, ok := keywords[word]; ok {
		return Token{Kind: kind, Text: word, Pos: pos}, nil
	}

	// Identifier classes require at least one word character after
	// the sigil.
	if len(word) > 1 {
		switch word[0] {
		case 'B':
			return Token{Kind: KindBlock, Text: word, Pos: pos}, nil
		case 'L':
			return Token{Kind: KindLoan, Text: word, Pos: pos}, nil
		case 'V':
			return Token{Kind: KindVariable, Text: word, Pos: pos}, nil
		}
	}

	return Token{}, newParseError(ErrLexical, pos, string(l.input), word,
		"a keyword or a B/L/V-prefixed identifier")
}

// Helper methods

func (l *lexer) peek() rune {
	if l.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(l.input[l.pos:])

	return r
}

func (l *lexer) peekN(n int) string {
	if l.pos+n > len(l.input) {
		return string(l.input[l.pos:])
	}

	return string(l.input[l.pos : l.pos+n])
}

func (l *lexer) advance() {
	if l.eof() {
		return
	}

	r, size := utf8.DecodeRune(l.input[l.pos:])

	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.input)
}

func (l *lexer) position() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.col,
	}
}

func (l *lexer) skipWhitespaceAndComments() {
	for {
		for !l.eof() && unicode.IsSpace(l.peek()) {
			l.advance()
		}

		if l.peekN(2) == "//" {
			for !l.eof() && l.peek() != '\n' {
				l.advance()
			}

			continue
		}

		return
	}
}

// isWordChar reports whether r may appear in the word part of an
// identifier or keyword.
func isWordChar(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}
