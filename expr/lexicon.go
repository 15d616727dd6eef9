package expr

import (
	"github.com/ezrec/cocoasm/lexer"
)

// Lexicon of operand expressions.
var Lexicon = lexer.Lexicon{
	lexer.MakeRule(lexer.KIND_LPAREN, `\(`),
	lexer.MakeRule(lexer.KIND_RPAREN, `\)`),
	lexer.MakeRule(lexer.KIND_ASTERISK, `\*`),
	lexer.MakeRule(lexer.KIND_PLUS, `\+`),
	lexer.MakeRule(lexer.KIND_MINUS, `-`),
	lexer.MakeRule(lexer.KIND_HEX, `\$[0-9a-fA-F]+`),
	lexer.MakeRule(lexer.KIND_BINARY, `%[01]+`),
	lexer.MakeRule(lexer.KIND_IDENTIFIER, `[a-zA-Z_][a-zA-Z0-9_]*`),
	lexer.MakeRule(lexer.KIND_INTEGER, `[0-9]+`),
	lexer.MakeRule(lexer.KIND_NEWLINE, `\r\n|\r|\n`),
	lexer.MakeRule(lexer.KIND_WHITESPACE, `[ \t]+`),
}
