package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/cocoasm/expr"
)

var sampleSource = strings.Join([]string{
	"\tORG\t$3F00",
	"START\tLDX\t#1024",
	"\tLDA\t#65",
	"\tSTA\t$10,X",
	"\tRTS",
	"\tEND\tSTART",
}, "\n")

func TestAssemble_Sample(t *testing.T) {
	assert := assert.New(t)

	code, start, exec, err := Assemble(sampleSource)
	assert.NoError(err)
	assert.Equal([]byte{0x8e, 0x04, 0x00, 0x86, 0x41, 0xa7, 0x10, 0x39}, code)
	assert.Equal(uint16(0x3f00), start)
	assert.Equal(uint16(0x3f00), exec)
}

func TestAssemble_Deterministic(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	first, err := asm.Assemble(sampleSource)
	assert.NoError(err)
	second, err := asm.Assemble(sampleSource)
	assert.NoError(err)
	assert.Equal(first, second)
}

func TestAssemble_Encoding(t *testing.T) {
	table := [](struct {
		name   string
		source string
		code   []byte
	}){
		{"lda_imm", "\tLDA\t#255", []byte{0x86, 0xff}},
		{"lda_imm_lower", "\tlda\t#$10", []byte{0x86, 0x10}},
		{"lda_imm_mul", "\tLDA\t#2*3", []byte{0x86, 0x06}},
		{"lda_imm_comment", "\tLDA\t#1+2 * three", []byte{0x86, 0x03}},
		{"lda_imm_binary", "\tLDA\t#%10000001", []byte{0x86, 0x81}},
		{"ldx_imm", "\tLDX\t#$0400", []byte{0x8e, 0x04, 0x00}},
		{"ldx_imm_wrap", "\tLDX\t#0-1", []byte{0x8e, 0xff, 0xff}},
		{"ldy_imm", "\tLDY\t#$1234", []byte{0x10, 0x8e, 0x12, 0x34}},
		{"rts", "\tRTS", []byte{0x39}},
		{"rts_trailing", "\tRTS\tand the rest", []byte{0x39}},
		{"swi2", "\tSWI2", []byte{0x10, 0x3f}},
		{"comment_line", "* just a comment", nil},
		{"blank_line", "", nil},
		{"label_only", "THERE", nil},
		{"sta_zero", "\tSTA\t,X", []byte{0xa7, 0x84}},
		{"sta_zero_expr", "\tSTA\t0,X", []byte{0xa7, 0x84}},
		{"sta_5bit", "\tSTA\t5,X", []byte{0xa7, 0x05}},
		{"sta_5bit_16", "\tSTA\t16,X", []byte{0xa7, 0x10}},
		{"sta_5bit_neg", "\tSTA\t-5,X", []byte{0xa7, 0x1b}},
		{"sta_5bit_y", "\tSTA\t5,Y", []byte{0xa7, 0x25}},
		{"sta_8bit", "\tSTA\t100,X", []byte{0xa7, 0x88, 0x64}},
		{"sta_8bit_17", "\tSTA\t17,X", []byte{0xa7, 0x88, 0x11}},
		{"sta_8bit_128", "\tSTA\t128,X", []byte{0xa7, 0x88, 0x80}},
		{"sta_8bit_neg", "\tSTA\t-100,X", []byte{0xa7, 0x88, 0x9c}},
		{"sta_16bit", "\tSTA\t129,X", []byte{0xa7, 0x89, 0x00, 0x81}},
		{"sta_16bit_y", "\tSTA\t300,Y", []byte{0xa7, 0xa9, 0x01, 0x2c}},
		{"sta_16bit_neg", "\tSTA\t-300,U", []byte{0xa7, 0xc9, 0xfe, 0xd4}},
		{"sta_y", "\tSTA\t,Y", []byte{0xa7, 0xa4}},
		{"sta_u", "\tSTA\t,U", []byte{0xa7, 0xc4}},
		{"sta_s", "\tSTA\t,S", []byte{0xa7, 0xe4}},
		{"sta_inc1", "\tSTA\t,X+", []byte{0xa7, 0x80}},
		{"sta_inc2", "\tSTA\t,X++", []byte{0xa7, 0x81}},
		{"sta_inc1_y", "\tSTA\t,Y+", []byte{0xa7, 0xa0}},
		{"sta_dec1", "\tSTA\t,-X", []byte{0xa7, 0x82}},
		{"sta_dec2", "\tSTA\t,--X", []byte{0xa7, 0x83}},
		{"sta_mul_offset", "\tSTA\t2*3,X", []byte{0xa7, 0x06}},
		{"sta_comment", "\tSTA\t$10,X * store", []byte{0xa7, 0x10}},
		{"lda_indexed", "\tLDA\t,X", []byte{0xa6, 0x84}},
		{"leax", "\tLEAX\t1,X", []byte{0x30, 0x01}},
		{"jsr", "\tJSR\t,Y", []byte{0xad, 0xa4}},
		{"std_16bit", "\tSTD\t$1000,S", []byte{0xed, 0xe9, 0x10, 0x00}},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			code, _, _, err := Assemble(entry.source)
			assert.NoError(err)
			assert.Equal(entry.code, code)
		})
	}
}

func TestAssemble_Errors(t *testing.T) {
	table := [](struct {
		name   string
		source string
		lineNo int
		err    error
	}){
		{"overflow", "\tLDA\t#260", 1, ErrOverflow},
		{"overflow_forward", "\tLDA\t#LIMIT\nLIMIT\tEQU\t$100", 1, ErrOverflow},
		{"inc_offset", "\tSTA\t1,X+", 1, ErrOperandInvalid},
		{"dec_offset", "\tSTA\t1,--X", 1, ErrOperandInvalid},
		{"register_acc", "\tSTA\t5,A", 1, ErrRegisterInvalid},
		{"register_pc", "\tSTA\t5,P", 1, ErrRegisterInvalid},
		{"no_comma", "\tSTA\t5", 1, ErrEndOfLine},
		{"no_register", "\tSTA\t5,", 1, ErrEndOfLine},
		{"no_operand", "\tLDA", 1, ErrEndOfLine},
		{"sta_immediate", "\tSTA\t#5", 1, ErrInstructionInvalid},
		{"unsupported", "\tNOP\n\tBRA\tAGAIN", 2, ErrInstructionInvalid},
		{"equ_no_label", "\tEQU\t5", 1, ErrLabelRequired},
		{"end_no_label", "\tEND\t5", 1, ErrLabelInvalid},
		{"end_nothing", "\tEND", 1, ErrLabelInvalid},
		{"end_undefined", "\tRTS\n\tEND\tNOWHERE", 2, ErrLabelUndefined},
		{"end_equate", "ENTRY\tEQU\t1\n\tEND\tENTRY", 2, ErrLabelUndefined},
		{"expr_undefined", "\tLDA\t#MISSING", 1, ErrLabelUndefined},
		{"expr_label", "\tLDX\t#START\nSTART\tRTS", 1, ErrLabelUndefined},
		{"expr_malformed", "\tLDA\t#(1", 1, expr.ErrMalformed},
		{"binary_digit", "\tLDA\t#%10_01", 1, expr.ErrMalformed},
		{"short_label", "\tNOP\nLOOP\tRTS", 2, ErrTokenUnexpected},
		{"stray_token", "\t#5", 1, ErrTokenUnexpected},
		{"equate_cycle", "ALPHA\tEQU\tBRAVO+1\nBRAVO\tEQU\tALPHA", 1, ErrPhase},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			_, _, _, err := Assemble(entry.source)
			assert.True(errors.Is(err, entry.err), "%v", err)

			var es ErrSyntax
			if assert.True(errors.As(err, &es)) {
				assert.Equal(entry.lineNo, es.LineNo)
			}
		})
	}
}

func TestAssemble_Duplicate(t *testing.T) {
	table := [](struct {
		name   string
		source string
	}){
		{"labels", "START\tRTS\nSTART\tRTS"},
		{"equates", "VALUE\tEQU\t1\nVALUE\tEQU\t2"},
		{"mixed", "VALUE\tRTS\nVALUE\tEQU\t2"},
		{"case", "Value\tRTS\nVALUE\tRTS"},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			_, _, _, err := Assemble(entry.source)
			assert.True(errors.Is(err, ErrLabelDuplicate), "%v", err)

			var es ErrSyntax
			assert.True(errors.As(err, &es))
			assert.Equal(2, es.LineNo)

			var el ErrLabel
			assert.True(errors.As(err, &el))
			assert.Equal(1, el.PrevLineNo)
			assert.Contains(err.Error(), "line 2")
			assert.Contains(err.Error(), "line 1")
		})
	}
}

func TestAssemble_ForwardEnd(t *testing.T) {
	assert := assert.New(t)

	source := strings.Join([]string{
		"\tORG\t$1000",
		"\tEND\tENTRY",
		"\tNOP",
		"ENTRY\tRTS",
	}, "\n")

	code, start, exec, err := Assemble(source)
	assert.NoError(err)
	assert.Equal([]byte{0x12, 0x39}, code)
	assert.Equal(uint16(0x1000), start)
	assert.Equal(uint16(0x1001), exec)
}

func TestAssemble_Equate(t *testing.T) {
	assert := assert.New(t)

	source := strings.Join([]string{
		"\tLDA\t#LIMIT-1",
		"\tLDX\t#SCREEN+LIMIT",
		"LIMIT\tEQU\t$20",
		"SCREEN\tequ\t$400 * text screen",
		"\tSTA\tLIMIT,X",
	}, "\n")

	asm := &Assembler{}
	prog, err := asm.Assemble(source)
	assert.NoError(err)
	assert.Equal([]byte{0x86, 0x1f, 0x8e, 0x04, 0x20, 0xa7, 0x88, 0x20}, prog.Code)
	assert.Equal(map[string]uint16{"LIMIT": 0x20, "SCREEN": 0x400}, prog.Equate)
	assert.Empty(prog.Label)
}

func TestAssemble_EquateForward(t *testing.T) {
	table := [](struct {
		name   string
		source string
		code   []byte
		label  map[string]uint16
	}){
		{"chain", "\tLDA\t#FIRST\nFIRST\tEQU\tSECOND\nSECOND\tEQU\t5",
			[]byte{0x86, 0x05}, map[string]uint16{}},
		{"chain3", "\tLDX\t#FIRST\nFIRST\tEQU\tSECOND+1\nSECOND\tEQU\tTHIRD*2\nTHIRD\tEQU\t$100",
			[]byte{0x8e, 0x02, 0x01}, map[string]uint16{}},
		{"offset_size", "\tLDA\tAHEAD,X\nAHEAD\tEQU\t200\nLATER\tRTS",
			[]byte{0xa6, 0x89, 0x00, 0xc8, 0x39}, map[string]uint16{"LATER": 4}},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			asm := &Assembler{}
			prog, err := asm.Assemble(entry.source)
			if assert.NoError(err) {
				assert.Equal(entry.code, prog.Code)
				assert.Equal(entry.label, prog.Label)
			}
		})
	}
}

func TestAssembler_Predefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("screen", 0x400)

	prog, err := asm.Assemble("\tLDX\t#SCREEN")
	assert.NoError(err)
	assert.Equal([]byte{0x8e, 0x04, 0x00}, prog.Code)

	_, err = asm.Assemble("SCREEN\tEQU\t1")
	assert.True(errors.Is(err, ErrLabelDuplicate))
}

func TestAssembler_Parse(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.ReplaceAll(sampleSource, "\n", "\r\n")))
	assert.NoError(err)
	assert.Equal(uint16(0x3f00), prog.Exec)
	assert.Equal(8, len(prog.Code))
	assert.Equal(map[string]uint16{"START": 0}, prog.Label)
}
