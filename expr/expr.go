// Package expr evaluates the arithmetic operand expressions of the assembler.
//
// Expressions are 16-bit unsigned. Operands are decimal integers, $hex and
// %binary literals, and symbol names. The operators are '+', '-' and '*',
// with '*' binding tighter, and parentheses group. Every intermediate
// result wraps to 16 bits.
package expr

import (
	"strconv"
	"strings"

	"github.com/ezrec/cocoasm/internal"
	"github.com/ezrec/cocoasm/lexer"
)

// Resolver looks up the value of a symbol name.
type Resolver interface {
	Resolve(name string) (value uint16, ok bool)
}

// Equates is a Resolver over upper case symbol names.
type Equates map[string]uint16

// Resolve looks name up without regard to case.
func (eq Equates) Resolve(name string) (value uint16, ok bool) {
	value, ok = eq[strings.ToUpper(name)]
	return
}

// precedence of an operator on the operator stack.
func precedence(op lexer.Kind) int {
	switch op {
	case lexer.KIND_ASTERISK:
		return 2
	case lexer.KIND_PLUS, lexer.KIND_MINUS:
		return 1
	default:
		return 0
	}
}

type evaluator struct {
	values internal.Stack[uint16]
	ops    internal.Stack[lexer.Kind]
}

// reduce applies the operator on top of the operator stack.
func (ev *evaluator) reduce() (err error) {
	op, ok := ev.ops.Pop()
	if !ok {
		return ErrMalformed
	}

	right, ok := ev.values.Pop()
	if !ok {
		return ErrMalformed
	}
	left, ok := ev.values.Pop()
	if !ok {
		return ErrMalformed
	}

	switch op {
	case lexer.KIND_PLUS:
		ev.values.Push(left + right)
	case lexer.KIND_MINUS:
		ev.values.Push(left - right)
	case lexer.KIND_ASTERISK:
		ev.values.Push(left * right)
	default:
		return ErrMalformed
	}

	return
}

// operand converts a literal or symbol token to its value.
func operand(tok lexer.Token, names Resolver, strict bool) (value uint16, err error) {
	var base int
	var digits string

	switch tok.Kind {
	case lexer.KIND_HEX:
		base, digits = 16, tok.Text[1:]
	case lexer.KIND_BINARY:
		base, digits = 2, tok.Text[1:]
	case lexer.KIND_INTEGER:
		base, digits = 10, tok.Text
	case lexer.KIND_IDENTIFIER:
		var ok bool
		if names != nil {
			value, ok = names.Resolve(tok.Text)
		}
		if !ok && strict {
			err = ErrSymbol{Name: strings.ToUpper(tok.Text), Err: ErrUndefined}
		}
		return
	default:
		err = ErrMalformed
		return
	}

	n, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		err = ErrMalformed
		return
	}

	value = uint16(n)
	return
}

// Evaluate computes the value of the expression in text.
//
// Symbols are looked up in names. When strict is false, a symbol that
// cannot be resolved has the value zero; otherwise it is an ErrUndefined.
func Evaluate(text string, names Resolver, strict bool) (value uint16, err error) {
	defer func() {
		if err == ErrMalformed {
			err = ErrExpression{Text: text, Err: err}
		}
	}()

	ev := &evaluator{}
	cursor := lexer.NewCursor(Lexicon, text)
	expectOperand := true

	for tok, ok := cursor.Next(); ok; tok, ok = cursor.Next() {
		switch tok.Kind {
		case lexer.KIND_WHITESPACE, lexer.KIND_NEWLINE:
			continue
		case lexer.KIND_HEX, lexer.KIND_BINARY, lexer.KIND_INTEGER, lexer.KIND_IDENTIFIER:
			if !expectOperand {
				return 0, ErrMalformed
			}
			var v uint16
			v, err = operand(tok, names, strict)
			if err != nil {
				return
			}
			ev.values.Push(v)
			expectOperand = false
		case lexer.KIND_LPAREN:
			if !expectOperand {
				return 0, ErrMalformed
			}
			ev.ops.Push(tok.Kind)
		case lexer.KIND_RPAREN:
			if expectOperand {
				return 0, ErrMalformed
			}
			for {
				top, ok := ev.ops.Peek()
				if !ok {
					return 0, ErrMalformed
				}
				if top == lexer.KIND_LPAREN {
					ev.ops.Pop()
					break
				}
				err = ev.reduce()
				if err != nil {
					return
				}
			}
		case lexer.KIND_PLUS, lexer.KIND_MINUS, lexer.KIND_ASTERISK:
			if expectOperand {
				return 0, ErrMalformed
			}
			for {
				top, ok := ev.ops.Peek()
				if !ok || top == lexer.KIND_LPAREN || precedence(top) < precedence(tok.Kind) {
					break
				}
				err = ev.reduce()
				if err != nil {
					return
				}
			}
			ev.ops.Push(tok.Kind)
			expectOperand = true
		default:
			return 0, ErrMalformed
		}
	}

	if expectOperand {
		return 0, ErrMalformed
	}

	for !ev.ops.Empty() {
		top, _ := ev.ops.Peek()
		if top == lexer.KIND_LPAREN {
			return 0, ErrMalformed
		}
		err = ev.reduce()
		if err != nil {
			return
		}
	}

	value, ok := ev.values.Pop()
	if !ok || !ev.values.Empty() {
		return 0, ErrMalformed
	}

	return
}
