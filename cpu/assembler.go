// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"io"
	"log"
	"maps"
	"slices"
	"strings"

	"github.com/ezrec/cocoasm/expr"
	"github.com/ezrec/cocoasm/lexer"
)

// Assembler is a two pass assembler for the 6809.
//
// The first pass records the offset of every label; the second pass
// evaluates operands strictly and generates code. Both passes lex the
// source from scratch.
type Assembler struct {
	Verbose bool // If set, verbosely logs each line of each pass.

	predefine map[string]uint16 // Equates defined before the first pass.
}

// Predefine defines an equate that is visible to every line of the source.
func (asm *Assembler) Predefine(name string, value uint16) {
	if asm.predefine == nil {
		asm.predefine = map[string]uint16{}
	}
	asm.predefine[strings.ToUpper(name)] = value
}

type pass int

const (
	passLabels = pass(1) // Collect label offsets.
	passCode   = pass(2) // Generate code.
)

// session is the state of a single assembly.
type session struct {
	asm  *Assembler
	pass pass
	scan int // Number of completed label passes.

	symbol  map[string]uint16 // Label offsets from the origin.
	equate  map[string]uint16 // Equate values.
	defined map[string]int    // Line number of each definition.

	offset uint16
	origin uint16
	exec   uint16
	lineNo int
	label  string // Label defined on the current line.

	prog *Program
}

// line is a cursor over the tokens of one source line.
type line struct {
	cursor *lexer.Cursor
}

func (ln *line) skip(kinds ...lexer.Kind) {
	ln.cursor.Skip(kinds...)
}

// drain consumes the rest of the line.
func (ln *line) drain() {
	for _, ok := ln.cursor.Next(); ok; _, ok = ln.cursor.Next() {
	}
}

// operand collects the text of an operand expression, up to the end of the
// line or the first token of one of the stop kinds. found is set if a stop
// token was consumed.
//
// A comment begins at a '*' that follows a blank. A '*' directly after an
// operand is a multiplication.
func (ln *line) operand(stop ...lexer.Kind) (text string, found bool) {
	var sb strings.Builder

	for {
		look, ok := ln.cursor.Peek()
		if !ok {
			break
		}

		switch {
		case look.Is(stop...):
			ln.cursor.Next()
			found = true
		case look.Kind == lexer.KIND_NEWLINE:
			ln.drain()
		case look.Kind == lexer.KIND_WHITESPACE:
			after, ok := ln.cursor.PeekAfter(look)
			if ok && after.Kind == lexer.KIND_COMMENT {
				ln.drain()
			} else {
				ln.cursor.Next()
				continue
			}
		case look.Kind == lexer.KIND_COMMENT:
			if sb.Len() == 0 {
				ln.drain()
				break
			}
			sb.WriteString("*")
			ln.cursor = lexer.NewCursor(Lexicon, look.Text[1:])
			continue
		default:
			ln.cursor.Next()
			sb.WriteString(look.Text)
			continue
		}
		break
	}

	text = sb.String()
	return
}

// evaluate an operand expression.
func (s *session) evaluate(text string) (value uint16, err error) {
	return expr.Evaluate(text, expr.Equates(s.equate), s.pass == passCode)
}

// define a label at the current offset.
func (s *session) define(name string) (err error) {
	switch s.pass {
	case passLabels:
		if s.scan == 0 {
			prev, ok := s.defined[name]
			if ok {
				err = ErrLabel{Label: name, PrevLineNo: prev, Err: ErrLabelDuplicate}
				return
			}
			s.defined[name] = s.lineNo
		}
		s.symbol[name] = s.offset
	case passCode:
		offset, ok := s.symbol[name]
		if ok && offset != s.offset {
			err = ErrLabel{Label: name, Err: ErrPhase}
			return
		}
	}

	s.label = name
	return
}

// directive handles ORG, EQU and END.
func (s *session) directive(name string, ln *line) (err error) {
	switch name {
	case "ORG":
		text, _ := ln.operand()
		s.origin, err = s.evaluate(text)
	case "EQU":
		if len(s.label) == 0 {
			err = ErrLabelRequired
			return
		}
		text, _ := ln.operand()
		var value uint16
		value, err = s.evaluate(text)
		if err != nil {
			return
		}
		if s.pass == passCode && s.equate[s.label] != value {
			err = ErrLabel{Label: s.label, Err: ErrPhase}
			return
		}
		delete(s.symbol, s.label)
		s.equate[s.label] = value
	case "END":
		ln.skip(lexer.KIND_WHITESPACE)
		tok, ok := ln.cursor.Next()
		if !ok || tok.Kind != lexer.KIND_IDENTIFIER {
			err = ErrLabel{Label: tok.Text, Err: ErrLabelInvalid}
			return
		}
		if s.pass != passCode {
			return
		}
		name := tok.Word()
		offset, ok := s.symbol[name]
		if !ok {
			err = ErrLabel{Label: name, Err: ErrLabelUndefined}
			return
		}
		s.exec = offset + s.origin
	}

	return
}

// instruction encodes a mnemonic and its operand.
func (s *session) instruction(mnemonic string, ln *line) (code []byte, err error) {
	ins, ok := Instructions[mnemonic]
	if !ok {
		err = ErrInstruction(mnemonic)
		return
	}

	if ins.Inherent != nil {
		code = slices.Clone(ins.Inherent)
		return
	}

	ln.skip(lexer.KIND_WHITESPACE)
	look, ok := ln.cursor.Peek()
	if !ok {
		err = ErrEndOfLine
		return
	}

	if look.Kind == lexer.KIND_POUND {
		ln.cursor.Next()
		text, _ := ln.operand()
		var value uint16
		value, err = s.evaluate(text)
		if err != nil {
			return
		}
		switch {
		case ins.Immediate8 != nil:
			if value > 0xff && s.pass == passCode {
				err = ErrOverflow
				return
			}
			code = append(slices.Clone(ins.Immediate8), byte(value))
		case ins.Immediate16 != nil:
			code = append(slices.Clone(ins.Immediate16), byte(value>>8), byte(value))
		default:
			err = ErrInstruction(mnemonic)
		}
		return
	}

	if ins.Indexed == nil {
		err = ErrInstruction(mnemonic)
		return
	}

	post, err := s.indexed(ln)
	if err != nil {
		return
	}

	code = append(slices.Clone(ins.Indexed), post...)
	return
}

// indexed encodes an operand of the forms [-]offset,R ,R ,R+ ,R++ ,-R and ,--R.
func (s *session) indexed(ln *line) (post []byte, err error) {
	negate := false
	look, ok := ln.cursor.Peek()
	if ok && look.Kind == lexer.KIND_DECREMENT1 {
		ln.cursor.Next()
		negate = true
	}

	text, found := ln.operand(lexer.KIND_COMMA)
	if !found {
		err = ErrEndOfLine
		return
	}

	var offset uint16
	if len(strings.TrimSpace(text)) != 0 {
		offset, err = s.evaluate(text)
		if err != nil {
			return
		}
	}

	auto := AUTO_NONE
	ln.skip(lexer.KIND_WHITESPACE)
	tok, ok := ln.cursor.Next()
	switch {
	case !ok:
	case tok.Kind == lexer.KIND_DECREMENT1:
		auto = AUTO_DEC1
		tok, ok = ln.cursor.Next()
	case tok.Kind == lexer.KIND_DECREMENT2:
		auto = AUTO_DEC2
		tok, ok = ln.cursor.Next()
	}
	if !ok {
		err = ErrEndOfLine
		return
	}

	reg, valid := ParseRegister(tok.Word())
	if tok.Kind != lexer.KIND_REGISTER || !valid {
		err = ErrRegister(tok.Word())
		return
	}

	if auto == AUTO_NONE {
		look, ok := ln.cursor.Peek()
		if ok && look.Kind == lexer.KIND_INCREMENT1 {
			auto = AUTO_INC1
		} else if ok && look.Kind == lexer.KIND_INCREMENT2 {
			auto = AUTO_INC2
		}
	}

	if auto != AUTO_NONE && offset != 0 {
		err = ErrOperandInvalid
		return
	}

	post = Postbyte(reg, offset, negate, auto)
	return
}

// statement assembles a single source line.
func (s *session) statement(text string) (err error) {
	ln := &line{cursor: lexer.NewCursor(Lexicon, text)}
	s.label = ""
	start := s.offset

	ln.skip(lexer.KIND_WHITESPACE)
	look, ok := ln.cursor.Peek()
	if ok && look.Kind == lexer.KIND_IDENTIFIER {
		ln.cursor.Next()
		err = s.define(look.Word())
		if err != nil {
			return
		}
	}

	var code []byte
	ln.skip(lexer.KIND_WHITESPACE)
	tok, ok := ln.cursor.Next()
	switch {
	case !ok:
	case tok.Kind == lexer.KIND_COMMENT, tok.Kind == lexer.KIND_NEWLINE:
	case tok.Kind == lexer.KIND_DIRECTIVE:
		err = s.directive(tok.Word(), ln)
	case tok.Kind == lexer.KIND_MNEMONIC:
		code, err = s.instruction(tok.Word(), ln)
	default:
		err = ErrToken(tok.Text)
	}
	if err != nil {
		return
	}

	s.offset += uint16(len(code))

	if s.pass == passCode {
		s.prog.Code = append(s.prog.Code, code...)
		s.prog.Lines = append(s.prog.Lines, Line{
			LineNo: s.lineNo,
			Offset: start,
			Text:   text,
			Code:   code,
		})
	}

	return
}

// run makes one pass over the source.
func (s *session) run(source string, p pass) (err error) {
	s.pass = p
	s.offset = 0
	s.origin = 0
	s.exec = 0
	s.lineNo = 0

	for text := range strings.Lines(source) {
		text = strings.TrimRight(text, "\r\n")
		s.lineNo++

		if s.asm.Verbose {
			log.Printf("pass %d: %v: %v\n", s.pass, s.lineNo, text)
		}

		err = s.statement(text)
		if err != nil {
			err = ErrSyntax{LineNo: s.lineNo, Line: text, Err: err}
			return
		}
	}

	return
}

// Assemble the source text into a program.
func (asm *Assembler) Assemble(source string) (prog *Program, err error) {
	s := &session{
		asm:     asm,
		symbol:  map[string]uint16{},
		equate:  maps.Clone(asm.predefine),
		defined: map[string]int{},
		prog:    &Program{},
	}
	if s.equate == nil {
		s.equate = map[string]uint16{}
	}
	for name := range s.equate {
		s.defined[name] = 0
	}

	// Equates may refer forward to other equates, so the label pass
	// repeats until every offset and value settles.
	for {
		symbol := maps.Clone(s.symbol)
		equate := maps.Clone(s.equate)
		err = s.run(source, passLabels)
		if err != nil {
			return
		}
		s.scan++
		settled := maps.Equal(symbol, s.symbol) && maps.Equal(equate, s.equate)
		if (s.scan > 1 && settled) || s.scan > len(s.defined)+1 {
			break
		}
	}

	err = s.run(source, passCode)
	if err != nil {
		return
	}

	prog = s.prog
	prog.Origin = s.origin
	prog.Exec = s.exec
	prog.Label = s.symbol
	prog.Equate = s.equate

	return
}

// Parse reads the whole of input and assembles it.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	source, err := io.ReadAll(input)
	if err != nil {
		return
	}

	return asm.Assemble(string(source))
}

// Assemble the source text with a default assembler.
// The start address is the origin, and exec is the address given by END.
func Assemble(source string) (code []byte, start uint16, exec uint16, err error) {
	asm := &Assembler{}
	prog, err := asm.Assemble(source)
	if err != nil {
		return
	}

	return prog.Code, prog.Origin, prog.Exec, nil
}
