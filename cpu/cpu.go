package cpu

import (
	"fmt"
	"log"
)

const (
	CC_C = byte(0x01) // Carry
	CC_V = byte(0x02) // Overflow
	CC_Z = byte(0x04) // Zero
	CC_N = byte(0x08) // Negative
	CC_I = byte(0x10) // IRQ mask
	CC_H = byte(0x20) // Half carry
	CC_F = byte(0x40) // FIRQ mask
	CC_E = byte(0x80) // Entire state stacked
)

// Cpu is a 6809 core that executes the instructions the assembler
// generates. Interrupts, direct and extended addressing, branches, and
// indirect indexed modes are not implemented.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	A, B       byte   // Accumulators.
	X, Y, U, S uint16 // Index and stack registers.
	Pc         uint16 // Program counter.
	Cc         byte   // Condition codes.

	Ticks  int           // Instructions executed since reset.
	Memory [0x10000]byte // Address space.
}

// NewCpu creates a new cpu with cleared memory.
func NewCpu() (cpu *Cpu) {
	return &Cpu{}
}

// D returns the concatenation of A and B.
func (cpu *Cpu) D() uint16 {
	return uint16(cpu.A)<<8 | uint16(cpu.B)
}

// SetD sets A and B from a 16-bit value.
func (cpu *Cpu) SetD(value uint16) {
	cpu.A = byte(value >> 8)
	cpu.B = byte(value)
}

// String dumps the registers, one per line.
func (cpu *Cpu) String() (text string) {
	regs := []struct {
		name  string
		value string
	}{
		{"pc", fmt.Sprintf("%04X", cpu.Pc)},
		{"a", fmt.Sprintf("%02X", cpu.A)},
		{"b", fmt.Sprintf("%02X", cpu.B)},
		{"x", fmt.Sprintf("%04X", cpu.X)},
		{"y", fmt.Sprintf("%04X", cpu.Y)},
		{"u", fmt.Sprintf("%04X", cpu.U)},
		{"s", fmt.Sprintf("%04X", cpu.S)},
		{"cc", fmt.Sprintf("%08b", cpu.Cc)},
	}
	for _, reg := range regs {
		text += fmt.Sprintf("% 3s: %v\n", reg.name, reg.value)
	}

	return
}

// Reset clears the registers and sets the program counter and stack.
func (cpu *Cpu) Reset(pc uint16, sp uint16) {
	cpu.A, cpu.B = 0, 0
	cpu.X, cpu.Y, cpu.U = 0, 0, 0
	cpu.S = sp
	cpu.Pc = pc
	cpu.Cc = CC_I | CC_F
	cpu.Ticks = 0

	if cpu.Verbose {
		log.Printf("reset: pc=%04X s=%04X", pc, sp)
	}
}

// Load copies data into memory at addr, wrapping at the end of memory.
func (cpu *Cpu) Load(addr uint16, data []byte) {
	for n, b := range data {
		cpu.Memory[addr+uint16(n)] = b
	}
}

func (cpu *Cpu) Read8(addr uint16) byte {
	return cpu.Memory[addr]
}

func (cpu *Cpu) Read16(addr uint16) uint16 {
	return uint16(cpu.Memory[addr])<<8 | uint16(cpu.Memory[addr+1])
}

func (cpu *Cpu) Write8(addr uint16, value byte) {
	cpu.Memory[addr] = value
}

func (cpu *Cpu) Write16(addr uint16, value uint16) {
	cpu.Memory[addr] = byte(value >> 8)
	cpu.Memory[addr+1] = byte(value)
}

// Push16 pushes a word on the hardware stack.
func (cpu *Cpu) Push16(value uint16) {
	cpu.S -= 2
	cpu.Write16(cpu.S, value)
}

// Pull16 pulls a word from the hardware stack.
func (cpu *Cpu) Pull16() (value uint16) {
	value = cpu.Read16(cpu.S)
	cpu.S += 2
	return
}

func (cpu *Cpu) fetch8() (value byte) {
	value = cpu.Memory[cpu.Pc]
	cpu.Pc++
	return
}

func (cpu *Cpu) fetch16() (value uint16) {
	value = cpu.Read16(cpu.Pc)
	cpu.Pc += 2
	return
}

func (cpu *Cpu) flag(flag byte, set bool) {
	if set {
		cpu.Cc |= flag
	} else {
		cpu.Cc &^= flag
	}
}

func (cpu *Cpu) nz8(value byte) {
	cpu.flag(CC_N, value&0x80 != 0)
	cpu.flag(CC_Z, value == 0)
}

func (cpu *Cpu) nz16(value uint16) {
	cpu.flag(CC_N, value&0x8000 != 0)
	cpu.flag(CC_Z, value == 0)
}

func (cpu *Cpu) add8(a, m, c byte) (r byte) {
	sum := uint16(a) + uint16(m) + uint16(c)
	r = byte(sum)
	cpu.nz8(r)
	cpu.flag(CC_H, (a&0xf)+(m&0xf)+c > 0xf)
	cpu.flag(CC_V, (^(a^m)&(a^r))&0x80 != 0)
	cpu.flag(CC_C, sum > 0xff)
	return
}

func (cpu *Cpu) sub8(a, m, c byte) (r byte) {
	r = a - m - c
	cpu.nz8(r)
	cpu.flag(CC_V, ((a^m)&(a^r))&0x80 != 0)
	cpu.flag(CC_C, uint16(a) < uint16(m)+uint16(c))
	return
}

func (cpu *Cpu) add16(a, m uint16) (r uint16) {
	sum := uint32(a) + uint32(m)
	r = uint16(sum)
	cpu.nz16(r)
	cpu.flag(CC_V, (^(a^m)&(a^r))&0x8000 != 0)
	cpu.flag(CC_C, sum > 0xffff)
	return
}

func (cpu *Cpu) sub16(a, m uint16) (r uint16) {
	r = a - m
	cpu.nz16(r)
	cpu.flag(CC_V, ((a^m)&(a^r))&0x8000 != 0)
	cpu.flag(CC_C, a < m)
	return
}

// indexReg returns the register selected by an indexed post-byte.
func (cpu *Cpu) indexReg(post byte) *uint16 {
	switch (post >> 5) & 3 {
	case 0:
		return &cpu.X
	case 1:
		return &cpu.Y
	case 2:
		return &cpu.U
	default:
		return &cpu.S
	}
}

// indexed decodes an indexed post-byte and returns the effective address.
func (cpu *Cpu) indexed() (ea uint16, err error) {
	post := cpu.fetch8()
	reg := cpu.indexReg(post)

	if post&0x80 == 0 {
		offset := uint16(post & 0x1f)
		if offset&0x10 != 0 {
			offset |= 0xffe0
		}
		ea = *reg + offset
		return
	}

	if post&0x10 != 0 {
		err = ErrPostbyte
		return
	}

	switch post & 0x0f {
	case 0x00:
		ea = *reg
		*reg += 1
	case 0x01:
		ea = *reg
		*reg += 2
	case 0x02:
		*reg -= 1
		ea = *reg
	case 0x03:
		*reg -= 2
		ea = *reg
	case 0x04:
		ea = *reg
	case 0x05:
		ea = *reg + uint16(int8(cpu.B))
	case 0x06:
		ea = *reg + uint16(int8(cpu.A))
	case 0x08:
		ea = *reg + uint16(int8(cpu.fetch8()))
	case 0x09:
		ea = *reg + cpu.fetch16()
	case 0x0b:
		ea = *reg + cpu.D()
	default:
		err = ErrPostbyte
	}

	return
}

// address returns the operand address of an accumulator or index register
// opcode, for its immediate and indexed columns.
func (cpu *Cpu) address(op byte, size uint16) (ea uint16, err error) {
	switch op & 0xf0 {
	case 0x80, 0xc0:
		ea = cpu.Pc
		cpu.Pc += size
	case 0xa0, 0xe0:
		ea, err = cpu.indexed()
	default:
		err = ErrOpcodeInvalid
	}

	return
}

func isImmediate(op byte) bool {
	return op&0xf0 == 0x80 || op&0xf0 == 0xc0
}

// alu8 executes an 8-bit accumulator operation, selected by the low
// nibble of the opcode.
func (cpu *Cpu) alu8(op byte, acc *byte) (err error) {
	ea, err := cpu.address(op, 1)
	if err != nil {
		return
	}
	m := cpu.Read8(ea)
	a := *acc

	switch op & 0x0f {
	case 0x0:
		*acc = cpu.sub8(a, m, 0)
	case 0x1:
		cpu.sub8(a, m, 0)
	case 0x2:
		*acc = cpu.sub8(a, m, cpu.Cc&CC_C)
	case 0x4:
		*acc = a & m
		cpu.nz8(*acc)
		cpu.flag(CC_V, false)
	case 0x5:
		cpu.nz8(a & m)
		cpu.flag(CC_V, false)
	case 0x6:
		*acc = m
		cpu.nz8(m)
		cpu.flag(CC_V, false)
	case 0x8:
		*acc = a ^ m
		cpu.nz8(*acc)
		cpu.flag(CC_V, false)
	case 0x9:
		*acc = cpu.add8(a, m, cpu.Cc&CC_C)
	case 0xa:
		*acc = a | m
		cpu.nz8(*acc)
		cpu.flag(CC_V, false)
	case 0xb:
		*acc = cpu.add8(a, m, 0)
	default:
		err = ErrOpcodeInvalid
	}

	return
}

// inherent executes the single accumulator operations 0x40-0x5f.
func (cpu *Cpu) inherent(op byte) (err error) {
	acc := &cpu.A
	if op >= 0x50 {
		acc = &cpu.B
	}
	v := *acc
	carry := cpu.Cc & CC_C

	switch op & 0x0f {
	case 0x0: // NEG
		*acc = cpu.sub8(0, v, 0)
	case 0x3: // COM
		*acc = ^v
		cpu.nz8(*acc)
		cpu.flag(CC_V, false)
		cpu.flag(CC_C, true)
	case 0x4: // LSR
		*acc = v >> 1
		cpu.nz8(*acc)
		cpu.flag(CC_C, v&1 != 0)
	case 0x6: // ROR
		*acc = v>>1 | carry<<7
		cpu.nz8(*acc)
		cpu.flag(CC_C, v&1 != 0)
	case 0x7: // ASR
		*acc = v>>1 | v&0x80
		cpu.nz8(*acc)
		cpu.flag(CC_C, v&1 != 0)
	case 0x8: // ASL
		*acc = v << 1
		cpu.nz8(*acc)
		cpu.flag(CC_V, (v^(v<<1))&0x80 != 0)
		cpu.flag(CC_C, v&0x80 != 0)
	case 0x9: // ROL
		*acc = v<<1 | carry
		cpu.nz8(*acc)
		cpu.flag(CC_V, (v^(v<<1))&0x80 != 0)
		cpu.flag(CC_C, v&0x80 != 0)
	case 0xa: // DEC
		*acc = v - 1
		cpu.nz8(*acc)
		cpu.flag(CC_V, v == 0x80)
	case 0xc: // INC
		*acc = v + 1
		cpu.nz8(*acc)
		cpu.flag(CC_V, v == 0x7f)
	case 0xd: // TST
		cpu.nz8(v)
		cpu.flag(CC_V, false)
	case 0xf: // CLR
		*acc = 0
		cpu.nz8(0)
		cpu.flag(CC_V, false)
		cpu.flag(CC_C, false)
	default:
		err = ErrOpcodeInvalid
	}

	return
}

func (cpu *Cpu) load16(op byte, reg *uint16) (err error) {
	ea, err := cpu.address(op, 2)
	if err != nil {
		return
	}
	*reg = cpu.Read16(ea)
	cpu.nz16(*reg)
	cpu.flag(CC_V, false)
	return
}

func (cpu *Cpu) store8(op byte, value byte) (err error) {
	if isImmediate(op) {
		return ErrOpcodeInvalid
	}
	ea, err := cpu.address(op, 1)
	if err != nil {
		return
	}
	cpu.Write8(ea, value)
	cpu.nz8(value)
	cpu.flag(CC_V, false)
	return
}

func (cpu *Cpu) store16(op byte, value uint16) (err error) {
	if isImmediate(op) {
		return ErrOpcodeInvalid
	}
	ea, err := cpu.address(op, 2)
	if err != nil {
		return
	}
	cpu.Write16(ea, value)
	cpu.nz16(value)
	cpu.flag(CC_V, false)
	return
}

// arith16 executes a 16-bit subtract, add or compare against value, and
// returns the result.
func (cpu *Cpu) arith16(op byte, value uint16, add bool) (r uint16, err error) {
	ea, err := cpu.address(op, 2)
	if err != nil {
		return
	}
	m := cpu.Read16(ea)
	if add {
		r = cpu.add16(value, m)
	} else {
		r = cpu.sub16(value, m)
	}
	return
}

// page0 executes an unprefixed opcode.
func (cpu *Cpu) page0(op byte) (err error) {
	switch {
	case op == 0x12: // NOP
	case op == 0x1a: // ORCC
		cpu.Cc |= cpu.fetch8()
	case op == 0x1c: // ANDCC
		cpu.Cc &= cpu.fetch8()
	case op == 0x1d: // SEX
		cpu.A = 0
		if cpu.B&0x80 != 0 {
			cpu.A = 0xff
		}
		cpu.nz16(cpu.D())
	case op >= 0x30 && op <= 0x33: // LEAX LEAY LEAS LEAU
		var ea uint16
		ea, err = cpu.indexed()
		if err != nil {
			return
		}
		switch op {
		case 0x30:
			cpu.X = ea
			cpu.flag(CC_Z, ea == 0)
		case 0x31:
			cpu.Y = ea
			cpu.flag(CC_Z, ea == 0)
		case 0x32:
			cpu.S = ea
		case 0x33:
			cpu.U = ea
		}
	case op == 0x39: // RTS
		cpu.Pc = cpu.Pull16()
	case op == 0x3a: // ABX
		cpu.X += uint16(cpu.B)
	case op == 0x3d: // MUL
		cpu.SetD(uint16(cpu.A) * uint16(cpu.B))
		cpu.flag(CC_Z, cpu.D() == 0)
		cpu.flag(CC_C, cpu.B&0x80 != 0)
	case op >= 0x40 && op <= 0x5f:
		err = cpu.inherent(op)
	case op == 0x6e: // JMP
		var ea uint16
		ea, err = cpu.indexed()
		if err != nil {
			return
		}
		cpu.Pc = ea
	case op >= 0x80:
		err = cpu.memory(op)
	default:
		err = ErrOpcodeInvalid
	}

	return
}

// memory executes the accumulator and index register opcodes 0x80-0xff.
func (cpu *Cpu) memory(op byte) (err error) {
	acc := &cpu.A
	if op >= 0xc0 {
		acc = &cpu.B
	}

	switch op & 0x0f {
	case 0x0, 0x1, 0x2, 0x4, 0x5, 0x6, 0x8, 0x9, 0xa, 0xb:
		err = cpu.alu8(op, acc)
	case 0x3: // SUBD ADDD
		var d uint16
		d, err = cpu.arith16(op, cpu.D(), op >= 0xc0)
		if err == nil {
			cpu.SetD(d)
		}
	case 0x7: // STA STB
		err = cpu.store8(op, *acc)
	case 0xc: // CMPX LDD
		if op < 0xc0 {
			_, err = cpu.arith16(op, cpu.X, false)
		} else {
			var d uint16
			err = cpu.load16(op, &d)
			if err == nil {
				cpu.SetD(d)
			}
		}
	case 0xd: // JSR STD
		switch op {
		case 0xad:
			var ea uint16
			ea, err = cpu.indexed()
			if err != nil {
				return
			}
			cpu.Push16(cpu.Pc)
			cpu.Pc = ea
		case 0xed:
			err = cpu.store16(op, cpu.D())
		default:
			err = ErrOpcodeInvalid
		}
	case 0xe: // LDX LDU
		if op < 0xc0 {
			err = cpu.load16(op, &cpu.X)
		} else {
			err = cpu.load16(op, &cpu.U)
		}
	case 0xf: // STX STU
		if op < 0xc0 {
			err = cpu.store16(op, cpu.X)
		} else {
			err = cpu.store16(op, cpu.U)
		}
	default:
		err = ErrOpcodeInvalid
	}

	return
}

// page2 executes an opcode prefixed by 0x10.
func (cpu *Cpu) page2(op byte) (err error) {
	switch op {
	case 0x83, 0xa3: // CMPD
		_, err = cpu.arith16(op, cpu.D(), false)
	case 0x8c, 0xac: // CMPY
		_, err = cpu.arith16(op, cpu.Y, false)
	case 0x8e, 0xae: // LDY
		err = cpu.load16(op, &cpu.Y)
	case 0xaf: // STY
		err = cpu.store16(op, cpu.Y)
	case 0xce, 0xee: // LDS
		err = cpu.load16(op, &cpu.S)
	case 0xef: // STS
		err = cpu.store16(op, cpu.S)
	default:
		err = ErrOpcodeInvalid
	}

	return
}

// page3 executes an opcode prefixed by 0x11.
func (cpu *Cpu) page3(op byte) (err error) {
	switch op {
	case 0x83, 0xa3: // CMPU
		_, err = cpu.arith16(op, cpu.U, false)
	case 0x8c, 0xac: // CMPS
		_, err = cpu.arith16(op, cpu.S, false)
	default:
		err = ErrOpcodeInvalid
	}

	return
}

// Tick executes a single instruction.
// On error the program counter is left at the failing instruction.
func (cpu *Cpu) Tick() (err error) {
	pc := cpu.Pc

	op := cpu.fetch8()
	opcode := []byte{op}
	switch op {
	case 0x10:
		op = cpu.fetch8()
		opcode = append(opcode, op)
		err = cpu.page2(op)
	case 0x11:
		op = cpu.fetch8()
		opcode = append(opcode, op)
		err = cpu.page3(op)
	default:
		err = cpu.page0(op)
	}

	if err == ErrOpcodeInvalid {
		err = ErrOpcode{Pc: pc, Opcode: opcode}
	}
	if err != nil {
		cpu.Pc = pc
		return
	}

	cpu.Ticks++

	if cpu.Verbose {
		log.Printf("%04X: % X => pc=%04X a=%02X b=%02X x=%04X y=%04X u=%04X s=%04X cc=%02X",
			pc, opcode, cpu.Pc, cpu.A, cpu.B, cpu.X, cpu.Y, cpu.U, cpu.S, cpu.Cc)
	}

	return
}
