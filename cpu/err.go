package cpu

import (
	"errors"

	"github.com/ezrec/cocoasm/expr"
	"github.com/ezrec/cocoasm/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrOpcodeInvalid  = errors.New(f("opcode invalid"))
	ErrPostbyte       = errors.New(f("indexed post-byte unsupported"))
	ErrStepsExhausted = errors.New(f("step limit reached"))

	// Assembler errors
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelUndefined     = expr.ErrUndefined
	ErrLabelRequired      = errors.New(f("label required"))
	ErrLabelInvalid       = errors.New(f("label invalid"))
	ErrOverflow           = errors.New(f("value overflow"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrOperandInvalid     = errors.New(f("operand invalid"))
	ErrEndOfLine          = errors.New(f("unexpected end of line"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrTokenUnexpected    = errors.New(f("unexpected token"))
	ErrPhase              = errors.New(f("label moved between passes"))
)

// ErrSyntax locates an assembler error in the source.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrLabel names the label an error is about. PrevLineNo is the line of an
// earlier definition, or zero.
type ErrLabel struct {
	Label      string
	PrevLineNo int
	Err        error
}

func (err ErrLabel) Error() string {
	if err.PrevLineNo != 0 {
		return f("%v %v, first defined on line %d", err.Err, err.Label, err.PrevLineNo)
	}
	return f("%v %v", err.Err, err.Label)
}

func (err ErrLabel) Unwrap() error {
	return err.Err
}

// ErrToken reports a token that is not valid where it was found.
type ErrToken string

func (err ErrToken) Error() string {
	return f("unexpected '%v'", string(err))
}

func (err ErrToken) Is(target error) bool {
	return target == ErrTokenUnexpected
}

// ErrInstruction reports a mnemonic that cannot be encoded with its operand.
type ErrInstruction string

func (err ErrInstruction) Error() string {
	return f("%v not supported for %v", ErrInstructionInvalid, string(err))
}

func (err ErrInstruction) Is(target error) bool {
	return target == ErrInstructionInvalid
}

// ErrRegister reports an invalid index register name.
type ErrRegister string

func (err ErrRegister) Error() string {
	return f("%v '%v'", ErrRegisterInvalid, string(err))
}

func (err ErrRegister) Is(target error) bool {
	return target == ErrRegisterInvalid
}

// ErrOpcode reports an opcode the cpu cannot execute.
type ErrOpcode struct {
	Pc     uint16
	Opcode []byte
}

func (err ErrOpcode) Error() string {
	return f("bad opcode % x at $%04X", err.Opcode, err.Pc)
}

func (err ErrOpcode) Is(target error) bool {
	return target == ErrOpcodeInvalid
}
