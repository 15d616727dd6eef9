package lexer

// Lookahead is a token that has been peeked but not consumed.
// It is only valid until the next call to Next.
type Lookahead struct {
	Token
	seq int
}

// Cursor hands out the tokens of an input one at a time.
// Tokens are lexed on demand, and peeked tokens are buffered so that they
// are only lexed once.
type Cursor struct {
	lexicon Lexicon
	input   string
	pos     int
	ahead   []Token
	seq     int // sequence number of ahead[0]
}

// NewCursor creates a cursor over input.
func NewCursor(lexicon Lexicon, input string) *Cursor {
	return &Cursor{
		lexicon: lexicon,
		input:   input,
	}
}

// lex appends one more token to the lookahead buffer.
func (c *Cursor) lex() bool {
	tok, ok := c.lexicon.Match(c.input[c.pos:])
	if !ok {
		return false
	}
	c.pos += len(tok.Text)
	c.ahead = append(c.ahead, tok)
	return true
}

// fill makes sure index n of the lookahead buffer exists.
func (c *Cursor) fill(n int) bool {
	for len(c.ahead) <= n {
		if !c.lex() {
			return false
		}
	}
	return true
}

// Next consumes and returns the next token.
// It returns false at the end of the input.
func (c *Cursor) Next() (tok Token, ok bool) {
	if !c.fill(0) {
		return
	}

	tok = c.ahead[0]
	c.ahead[0] = Token{}
	c.ahead = c.ahead[1:]
	c.seq++

	return tok, true
}

// Peek returns the next token without consuming it.
func (c *Cursor) Peek() (look Lookahead, ok bool) {
	if !c.fill(0) {
		return
	}

	return Lookahead{Token: c.ahead[0], seq: c.seq}, true
}

// PeekAfter returns the token following a previous lookahead.
// It returns false at the end of the input, or if look has been consumed.
func (c *Cursor) PeekAfter(look Lookahead) (next Lookahead, ok bool) {
	n := look.seq + 1 - c.seq
	if n <= 0 || !c.fill(n) {
		return
	}

	return Lookahead{Token: c.ahead[n], seq: look.seq + 1}, true
}

// Skip consumes tokens while they are of one of the given kinds.
func (c *Cursor) Skip(kinds ...Kind) {
	for {
		look, ok := c.Peek()
		if !ok || !look.Is(kinds...) {
			return
		}
		c.Next()
	}
}

// Is returns true if the token is one of the given kinds.
func (tok Token) Is(kinds ...Kind) bool {
	for _, kind := range kinds {
		if tok.Kind == kind {
			return true
		}
	}
	return false
}
