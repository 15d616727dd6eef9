package cpu

import (
	"iter"
	"slices"

	"github.com/ezrec/cocoasm/internal"
	"github.com/ezrec/cocoasm/lexer"
)

// Mnemonics of the 6809, in lexing priority order.
//
// Each mnemonic must be preceded by at least one blank and must end at a
// word boundary, so that labels such as START are not split into STA and
// RT. Where one mnemonic is a prefix of another, the longer one is ranked
// first.
var Mnemonics = []string{
	"BCC", "LBCC", "BCS", "LBCS", "BEQ", "LBEQ", "BGE", "LBGE",
	"BGT", "LBGT", "BHI", "LBHI", "BHS", "LBHS", "BLE", "LBLE",
	"BLO", "LBLO", "BLS", "LBLS", "BLT", "LBLT", "BMI", "LBMI",
	"BNE", "LBNE", "BPL", "LBPL", "BRA", "LBRA", "BRN", "LBRN",
	"BSR", "LBSR", "BVC", "LBVC", "BVS", "LBVS",
	"ABX", "ADCA", "ADCB", "ADDA", "ADDB", "ADDD", "ANDA", "ANDB", "ANDCC",
	"ASLA", "ASLB", "ASL", "ASRA", "ASRB", "ASR", "BITA", "BITB",
	"CLRA", "CLRB", "CLR", "CMPA", "CMPB", "CMPD", "CMPS", "CMPU", "CMPX", "CMPY",
	"COMA", "COMB", "COM", "CWAI", "DAA", "DECA", "DECB", "DEC",
	"EORA", "EORB", "EXG", "INCA", "INCB", "INC", "JMP", "JSR",
	"LDA", "LDB", "LDD", "LDS", "LDU", "LDX", "LDY",
	"LEAS", "LEAU", "LEAX", "LEAY", "LSLA", "LSLB", "LSL", "LSRA", "LSRB", "LSR",
	"MUL", "NEGA", "NEGB", "NEG", "NOP", "ORA", "ORB", "ORCC",
	"PSHS", "PSHU", "PULS", "PULU", "ROLA", "ROLB", "ROL", "RORA", "RORB", "ROR",
	"RTI", "RTS", "SBCA", "SBCB", "SEX",
	"STA", "STB", "STD", "STS", "STU", "STX", "STY",
	"SUBA", "SUBB", "SUBD", "SWI2", "SWI3", "SWI", "SYNC", "TFR",
	"TSTA", "TSTB", "TST",
}

// Directives of the assembler, ranked after the mnemonics.
var Directives = []string{"END", "EQU", "ORG"}

func keywordRules(kind lexer.Kind, words []string) iter.Seq[lexer.Rule] {
	return func(yield func(lexer.Rule) bool) {
		for _, word := range words {
			if !yield(lexer.MakeRule(kind, `[ \t]+(?i:`+word+`)\b`)) {
				return
			}
		}
	}
}

// Lexicon of assembly source lines.
//
// Identifiers are at least five characters long, optionally preceded by a
// single blank. Shorter names are lexed as registers and undefined
// characters, and so can only be used inside operand expressions.
var Lexicon = lexer.Lexicon(slices.Collect(internal.IterSeqConcat(
	keywordRules(lexer.KIND_MNEMONIC, Mnemonics),
	keywordRules(lexer.KIND_DIRECTIVE, Directives),
	slices.Values([]lexer.Rule{
		lexer.MakeRule(lexer.KIND_IDENTIFIER, `[ \t]?[a-zA-Z_][a-zA-Z0-9_]{4,}`),
		lexer.MakeRule(lexer.KIND_HEX, `\$[0-9a-fA-F]+`),
		lexer.MakeRule(lexer.KIND_BINARY, `%[01]+`),
		lexer.MakeRule(lexer.KIND_INTEGER, `[0-9]+`),
		lexer.MakeRule(lexer.KIND_POUND, `#`),
		lexer.MakeRule(lexer.KIND_REGISTER, `[ABDXYSUabdxysu]`),
		lexer.MakeRule(lexer.KIND_COMMA, `,`),
		lexer.MakeRule(lexer.KIND_INCREMENT2, `\+\+`),
		lexer.MakeRule(lexer.KIND_INCREMENT1, `\+`),
		lexer.MakeRule(lexer.KIND_DECREMENT2, `--`),
		lexer.MakeRule(lexer.KIND_DECREMENT1, `-`),
		lexer.MakeRule(lexer.KIND_LPAREN, `\(`),
		lexer.MakeRule(lexer.KIND_RPAREN, `\)`),
		lexer.MakeRule(lexer.KIND_COMMENT, `\*.*`),
		lexer.MakeRule(lexer.KIND_WHITESPACE, `[ \t]+`),
		lexer.MakeRule(lexer.KIND_NEWLINE, `\r\n|\r|\n`),
	}),
)))
