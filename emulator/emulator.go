// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs assembled programs on the 6809 core.
package emulator

import (
	"bytes"
	"iter"
	"strings"

	"github.com/ezrec/cocoasm/cpu"
	"github.com/ezrec/cocoasm/disk"
	"github.com/ezrec/cocoasm/internal"
)

const (
	STACK_TOP      = uint16(0x8000) // Initial hardware stack.
	RETURN_ADDRESS = uint16(0xffff) // Return address of the entry routine.
	SCREEN         = uint16(0x0400) // Text screen.
	SCREEN_WIDTH   = 32             // Characters per screen row.
	SCREEN_HEIGHT  = 16             // Screen rows.
	SCREEN_BLANK   = byte(0x60)     // Space character.
)

var _emulator_defines = map[string]uint16{
	"STACK_TOP": STACK_TOP,
	"SCREEN":    SCREEN,
}

// Emulator state. CPU and the listing of the loaded program.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Listing of the loaded program, if any.

	entry uint16
}

// NewEmulator creates a new emulator, with a clear text screen.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(),
	}

	emu.Cpu.Load(SCREEN, bytes.Repeat([]byte{SCREEN_BLANK}, SCREEN_WIDTH*SCREEN_HEIGHT))

	return
}

// Defines returns an iterator over the addresses a program may predefine.
func (emu *Emulator) Defines() iter.Seq2[string, uint16] {
	return internal.IterSorted(_emulator_defines)
}

// LoadProgram copies an assembled program into memory, and keeps its
// listing to map faults to source lines.
func (emu *Emulator) LoadProgram(prog *cpu.Program) {
	emu.Program = prog
	emu.Cpu.Load(prog.Origin, prog.Code)
	emu.entry = prog.Exec
}

// LoadEnvelope copies every segment of a loadable binary into memory.
func (emu *Emulator) LoadEnvelope(binary []byte) (err error) {
	segments, exec, err := disk.ParseEnvelope(binary)
	if err != nil {
		return
	}

	for _, seg := range segments {
		emu.Cpu.Load(seg.Address, seg.Data)
	}
	emu.entry = exec

	return
}

// Reset the cpu to call the entry point, with RETURN_ADDRESS on the stack.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset(emu.entry, STACK_TOP)
	emu.Cpu.Push16(RETURN_ADDRESS)
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// LineNo returns the source line of the next instruction, or zero.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	line := emu.Program.Debug(emu.Cpu.Pc)
	if line == nil {
		return 0
	}

	return line.LineNo
}

// Tick performs a single instruction. done is set when the entry routine
// has returned.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Cpu.Pc == RETURN_ADDRESS {
		done = true
		return
	}

	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	pc := emu.Cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = emu.Cpu.Pc == RETURN_ADDRESS
	return
}

// Run ticks until the entry routine returns, or until limit instructions
// have executed.
func (emu *Emulator) Run(limit int) (err error) {
	for range limit {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}

	err = &ErrRuntime{LineNo: emu.LineNo(), Pc: emu.Cpu.Pc, Err: cpu.ErrStepsExhausted}
	return
}

// Screen returns the text screen, one line per row.
// Semigraphics characters are shown as '#'.
func (emu *Emulator) Screen() string {
	var sb strings.Builder

	for row := range SCREEN_HEIGHT {
		for col := range SCREEN_WIDTH {
			c := emu.Cpu.Read8(SCREEN + uint16(row*SCREEN_WIDTH+col))
			switch {
			case c >= 0x80:
				c = '#'
			case c&0x3f < 0x20:
				c = 0x40 + c&0x3f
			default:
				c &= 0x3f
			}
			sb.WriteByte(c)
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
