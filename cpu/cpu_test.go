package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testReturn = uint16(0xffff) // Return address pushed before running.
	testStack  = uint16(0x0f00) // Initial stack pointer.
)

// runSource assembles source and runs it until it returns.
func runSource(source string) (cpu *Cpu, err error) {
	asm := &Assembler{}
	prog, err := asm.Assemble(source)
	if err != nil {
		return
	}

	cpu = NewCpu()
	cpu.Load(prog.Origin, prog.Code)
	cpu.Reset(prog.Exec, testStack)
	cpu.Push16(testReturn)

	for cpu.Pc != testReturn {
		if cpu.Ticks >= 1000 {
			err = ErrStepsExhausted
			return
		}
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

func program(lines ...string) string {
	return strings.Join(append(append([]string{"\tORG\t$1000", "BEGIN\tNOP"}, lines...), "\tRTS", "\tEND\tBEGIN"), "\n")
}

func TestCpu_Sample(t *testing.T) {
	assert := assert.New(t)

	cpu, err := runSource(sampleSource)
	assert.NoError(err)
	// $10 is the 5-bit form, which the core reads as -16.
	assert.Equal(byte(0x41), cpu.Memory[0x03f0])
	assert.Equal(byte(0x00), cpu.Memory[0x0410])
	assert.Equal(byte(0x41), cpu.A)
	assert.Equal(uint16(0x0400), cpu.X)
	assert.Equal(testStack, cpu.S)
	assert.Equal(4, cpu.Ticks)
}

func TestCpu_Program(t *testing.T) {
	table := [](struct {
		name   string
		source string
		check  func(assert *assert.Assertions, cpu *Cpu)
	}){
		{"add", program("\tLDA\t#5", "\tADDA\t#3"), func(assert *assert.Assertions, cpu *Cpu) {
			assert.Equal(byte(8), cpu.A)
		}},
		{"sub_borrow", program("\tLDB\t#1", "\tSUBB\t#2"), func(assert *assert.Assertions, cpu *Cpu) {
			assert.Equal(byte(0xff), cpu.B)
			assert.NotZero(cpu.Cc & CC_C)
			assert.NotZero(cpu.Cc & CC_N)
		}},
		{"mul", program("\tLDA\t#12", "\tLDB\t#10", "\tMUL"), func(assert *assert.Assertions, cpu *Cpu) {
			assert.Equal(uint16(120), cpu.D())
		}},
		{"sex", program("\tLDB\t#$80", "\tSEX"), func(assert *assert.Assertions, cpu *Cpu) {
			assert.Equal(uint16(0xff80), cpu.D())
		}},
		{"auto_inc", program("\tLDX\t#$2000", "\tLDA\t#$AA", "\tSTA\t,X+", "\tSTA\t,X+"), func(assert *assert.Assertions, cpu *Cpu) {
			assert.Equal(uint16(0x2002), cpu.X)
			assert.Equal([]byte{0xaa, 0xaa, 0x00}, cpu.Memory[0x2000:0x2003])
		}},
		{"auto_dec", program("\tLDU\t#$2000", "\tLDD\t#$1234", "\tSTD\t,--U", "\tLDY\t,U++"), func(assert *assert.Assertions, cpu *Cpu) {
			assert.Equal(uint16(0x2000), cpu.U)
			assert.Equal(uint16(0x1234), cpu.Y)
			assert.Equal([]byte{0x12, 0x34}, cpu.Memory[0x1ffe:0x2000])
		}},
		{"offsets", program("\tLDX\t#$2010", "\tLDB\t#7", "\tSTB\t-5,X", "\tSTB\t-100,X", "\tSTB\t-300,X", "\tSTB\t100,X", "\tSTB\t300,X"), func(assert *assert.Assertions, cpu *Cpu) {
			assert.Equal(byte(7), cpu.Memory[0x200b])
			assert.Equal(byte(7), cpu.Memory[0x1fac])
			assert.Equal(byte(7), cpu.Memory[0x1ee4])
			assert.Equal(byte(7), cpu.Memory[0x2074])
			assert.Equal(byte(7), cpu.Memory[0x213c])
		}},
		{"lea", program("\tLDX\t#$1000", "\tLEAY\t-1,X", "\tLEAX\t$200,Y"), func(assert *assert.Assertions, cpu *Cpu) {
			assert.Equal(uint16(0x0fff), cpu.Y)
			assert.Equal(uint16(0x11ff), cpu.X)
		}},
		{"jsr", strings.Join([]string{
			"\tORG\t$1000",
			"BEGIN\tLDX\t#$1008",
			"\tJSR\t,X",
			"\tLDA\t#$11",
			"\tRTS",
			"\tLDB\t#$22",
			"\tRTS",
			"\tEND\tBEGIN",
		}, "\n"), func(assert *assert.Assertions, cpu *Cpu) {
			assert.Equal(byte(0x11), cpu.A)
			assert.Equal(byte(0x22), cpu.B)
			assert.Equal(testStack, cpu.S)
		}},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			cpu, err := runSource(entry.source)
			if !assert.NoError(err) {
				return
			}
			entry.check(assert, cpu)
		})
	}
}

func TestCpu_OpcodeInvalid(t *testing.T) {
	table := [](struct {
		name   string
		code   []byte
		opcode []byte
	}){
		{"page0", []byte{0x01}, []byte{0x01}},
		{"page2", []byte{0x10, 0x01}, []byte{0x10, 0x01}},
		{"page3", []byte{0x11, 0x01}, []byte{0x11, 0x01}},
		{"sta_immediate", []byte{0x87, 0x00}, []byte{0x87}},
		{"extended", []byte{0xb6, 0x12, 0x34}, []byte{0xb6}},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			cpu := NewCpu()
			cpu.Load(0x1000, entry.code)
			cpu.Reset(0x1000, testStack)

			err := cpu.Tick()
			assert.True(errors.Is(err, ErrOpcodeInvalid), "%v", err)

			var eo ErrOpcode
			if assert.True(errors.As(err, &eo)) {
				assert.Equal(uint16(0x1000), eo.Pc)
				assert.Equal(entry.opcode, eo.Opcode)
			}
			assert.Equal(uint16(0x1000), cpu.Pc)
			assert.Equal(0, cpu.Ticks)
		})
	}
}

func TestCpu_Postbyte(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	// LDA [,X]
	cpu.Load(0x1000, []byte{0xa6, 0x94})
	cpu.Reset(0x1000, testStack)

	err := cpu.Tick()
	assert.ErrorIs(err, ErrPostbyte)
	assert.Equal(uint16(0x1000), cpu.Pc)
}

func TestCpu_String(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Reset(0x3f00, testStack)
	cpu.SetD(0x1234)

	text := cpu.String()
	assert.Contains(text, "pc: 3F00")
	assert.Contains(text, "a: 12")
	assert.Contains(text, "b: 34")
	assert.Contains(text, "s: 0F00")
	assert.Equal(8, strings.Count(text, "\n"))
}
