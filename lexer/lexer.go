// Package lexer splits text into typed tokens using a ranked table of
// regular expressions.
//
// A Lexicon is tried rule by rule at the current position, and the first
// rule that matches there wins. Text that no rule matches becomes a single
// character KIND_UNDEFINED token, so lexing never fails.
package lexer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

//go:generate go tool stringer -linecomment -type=Kind

// Kind is the category of a token.
type Kind int

const (
	KIND_UNDEFINED  = Kind(0)  // undefined
	KIND_IDENTIFIER = Kind(1)  // identifier
	KIND_MNEMONIC   = Kind(2)  // mnemonic
	KIND_DIRECTIVE  = Kind(3)  // directive
	KIND_HEX        = Kind(4)  // hex
	KIND_BINARY     = Kind(5)  // binary
	KIND_INTEGER    = Kind(6)  // integer
	KIND_POUND      = Kind(7)  // #
	KIND_REGISTER   = Kind(8)  // register
	KIND_COMMA      = Kind(9)  // ,
	KIND_INCREMENT2 = Kind(10) // ++
	KIND_INCREMENT1 = Kind(11) // +
	KIND_DECREMENT2 = Kind(12) // --
	KIND_DECREMENT1 = Kind(13) // -
	KIND_PLUS       = Kind(14) // plus
	KIND_MINUS      = Kind(15) // minus
	KIND_ASTERISK   = Kind(16) // *
	KIND_LPAREN     = Kind(17) // (
	KIND_RPAREN     = Kind(18) // )
	KIND_COMMENT    = Kind(19) // comment
	KIND_WHITESPACE = Kind(20) // whitespace
	KIND_NEWLINE    = Kind(21) // newline
)

// Token is a single lexed item. Text is the exact source text matched.
type Token struct {
	Kind Kind
	Text string
}

// Word returns the token text without surrounding blanks, upper cased.
func (tok Token) Word() string {
	return strings.ToUpper(strings.TrimSpace(tok.Text))
}

// Rule matches one kind of token.
type Rule struct {
	Kind    Kind
	Pattern *regexp.Regexp
}

// MakeRule compiles pattern so that it only matches at the start of the input.
// It panics if pattern is not a valid regular expression.
func MakeRule(kind Kind, pattern string) Rule {
	return Rule{
		Kind:    kind,
		Pattern: regexp.MustCompile(`^(?:` + pattern + `)`),
	}
}

// Lexicon is a list of rules in priority order.
type Lexicon []Rule

// Match returns the token at the start of input.
// It returns false only if input is empty.
func (lx Lexicon) Match(input string) (tok Token, ok bool) {
	if len(input) == 0 {
		return
	}

	for _, rule := range lx {
		loc := rule.Pattern.FindStringIndex(input)
		if loc == nil || loc[1] == 0 {
			continue
		}
		return Token{Kind: rule.Kind, Text: input[:loc[1]]}, true
	}

	_, size := utf8.DecodeRuneInString(input)
	return Token{Kind: KIND_UNDEFINED, Text: input[:size]}, true
}
