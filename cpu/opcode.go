package cpu

//go:generate go tool stringer -linecomment -type=Register

// Register is an index register of an indexed operand.
type Register int

const (
	REG_X = Register(0) // X
	REG_Y = Register(1) // Y
	REG_U = Register(2) // U
	REG_S = Register(3) // S
)

// ParseRegister returns the index register named by name.
func ParseRegister(name string) (reg Register, ok bool) {
	switch name {
	case "X", "x":
		return REG_X, true
	case "Y", "y":
		return REG_Y, true
	case "U", "u":
		return REG_U, true
	case "S", "s":
		return REG_S, true
	}
	return
}

// mask narrows a post-byte with all register bits set to this register.
func (reg Register) mask() byte {
	switch reg {
	case REG_X:
		return 0x9f
	case REG_Y:
		return 0xbf
	case REG_U:
		return 0xdf
	default:
		return 0xff
	}
}

// AutoMode is the automatic increment or decrement of an indexed operand.
type AutoMode int

const (
	AUTO_NONE = AutoMode(0) // ,R
	AUTO_INC1 = AutoMode(1) // ,R+
	AUTO_INC2 = AutoMode(2) // ,R++
	AUTO_DEC1 = AutoMode(3) // ,-R
	AUTO_DEC2 = AutoMode(4) // ,--R
)

const (
	POSTBYTE_ZERO     = 0x84 // No offset
	POSTBYTE_OFFSET8  = 0x88 // 8-bit offset follows
	POSTBYTE_OFFSET16 = 0x89 // 16-bit offset follows
	POSTBYTE_AUTO     = 0xe0 // Auto increment/decrement field
	POSTBYTE_REG_ALL  = 0x60 // Register field before narrowing
	POSTBYTE_OFFSET5  = 0x1f // 5-bit offset field
)

// Postbyte encodes an indexed operand.
//
// The offset is a magnitude, negated when negate is set. Magnitudes from
// 1 to 16 use the 5-bit form, 17 to 128 the 8-bit form, and larger ones
// the 16-bit form. Automatic modes ignore the offset.
func Postbyte(reg Register, offset uint16, negate bool, auto AutoMode) (post []byte) {
	signed := offset
	if negate {
		signed = -offset
	}

	var base byte
	switch {
	case auto != AUTO_NONE:
		base = POSTBYTE_ZERO
	case offset == 0:
		base = POSTBYTE_ZERO
	case offset <= 16:
		base = byte(signed) & POSTBYTE_OFFSET5
	case offset <= 128:
		base = POSTBYTE_OFFSET8
		post = []byte{byte(signed)}
	default:
		base = POSTBYTE_OFFSET16
		post = []byte{byte(signed >> 8), byte(signed)}
	}

	base = (base | POSTBYTE_REG_ALL) & reg.mask()
	if auto != AUTO_NONE {
		base = (base & POSTBYTE_AUTO) | byte(auto-1)
	}

	return append([]byte{base}, post...)
}

// Instruction lists the opcode bytes of a mnemonic for each addressing
// mode. A nil entry means the mode is not available.
type Instruction struct {
	Inherent    []byte
	Immediate8  []byte
	Immediate16 []byte
	Indexed     []byte
}

// Instructions the assembler can encode, by mnemonic.
var Instructions = map[string]Instruction{
	// Inherent
	"ABX":  {Inherent: []byte{0x3a}},
	"ASLA": {Inherent: []byte{0x48}},
	"ASLB": {Inherent: []byte{0x58}},
	"ASRA": {Inherent: []byte{0x47}},
	"ASRB": {Inherent: []byte{0x57}},
	"CLRA": {Inherent: []byte{0x4f}},
	"CLRB": {Inherent: []byte{0x5f}},
	"COMA": {Inherent: []byte{0x43}},
	"COMB": {Inherent: []byte{0x53}},
	"DAA":  {Inherent: []byte{0x19}},
	"DECA": {Inherent: []byte{0x4a}},
	"DECB": {Inherent: []byte{0x5a}},
	"INCA": {Inherent: []byte{0x4c}},
	"INCB": {Inherent: []byte{0x5c}},
	"LSLA": {Inherent: []byte{0x48}},
	"LSLB": {Inherent: []byte{0x58}},
	"LSRA": {Inherent: []byte{0x44}},
	"LSRB": {Inherent: []byte{0x54}},
	"MUL":  {Inherent: []byte{0x3d}},
	"NEGA": {Inherent: []byte{0x40}},
	"NEGB": {Inherent: []byte{0x50}},
	"NOP":  {Inherent: []byte{0x12}},
	"ROLA": {Inherent: []byte{0x49}},
	"ROLB": {Inherent: []byte{0x59}},
	"RORA": {Inherent: []byte{0x46}},
	"RORB": {Inherent: []byte{0x56}},
	"RTI":  {Inherent: []byte{0x3b}},
	"RTS":  {Inherent: []byte{0x39}},
	"SEX":  {Inherent: []byte{0x1d}},
	"SWI":  {Inherent: []byte{0x3f}},
	"SWI2": {Inherent: []byte{0x10, 0x3f}},
	"SWI3": {Inherent: []byte{0x11, 0x3f}},
	"SYNC": {Inherent: []byte{0x13}},
	"TSTA": {Inherent: []byte{0x4d}},
	"TSTB": {Inherent: []byte{0x5d}},

	// 8-bit accumulators
	"ADCA":  {Immediate8: []byte{0x89}},
	"ADCB":  {Immediate8: []byte{0xc9}},
	"ADDA":  {Immediate8: []byte{0x8b}},
	"ADDB":  {Immediate8: []byte{0xcb}},
	"ANDA":  {Immediate8: []byte{0x84}},
	"ANDB":  {Immediate8: []byte{0xc4}},
	"ANDCC": {Immediate8: []byte{0x1c}},
	"BITA":  {Immediate8: []byte{0x85}},
	"BITB":  {Immediate8: []byte{0xc5}},
	"CMPA":  {Immediate8: []byte{0x81}},
	"CMPB":  {Immediate8: []byte{0xc1}},
	"CWAI":  {Immediate8: []byte{0x3c}},
	"EORA":  {Immediate8: []byte{0x88}},
	"EORB":  {Immediate8: []byte{0xc8}},
	"LDA":   {Immediate8: []byte{0x86}, Indexed: []byte{0xa6}},
	"LDB":   {Immediate8: []byte{0xc6}, Indexed: []byte{0xe6}},
	"ORA":   {Immediate8: []byte{0x8a}},
	"ORB":   {Immediate8: []byte{0xca}},
	"ORCC":  {Immediate8: []byte{0x1a}},
	"SBCA":  {Immediate8: []byte{0x82}},
	"SBCB":  {Immediate8: []byte{0xc2}},
	"STA":   {Indexed: []byte{0xa7}},
	"STB":   {Indexed: []byte{0xe7}},
	"SUBA":  {Immediate8: []byte{0x80}},
	"SUBB":  {Immediate8: []byte{0xc0}},

	// 16-bit registers
	"ADDD": {Immediate16: []byte{0xc3}},
	"CMPD": {Immediate16: []byte{0x10, 0x83}},
	"CMPS": {Immediate16: []byte{0x11, 0x8c}},
	"CMPU": {Immediate16: []byte{0x11, 0x83}},
	"CMPX": {Immediate16: []byte{0x8c}},
	"CMPY": {Immediate16: []byte{0x10, 0x8c}},
	"LDD":  {Immediate16: []byte{0xcc}, Indexed: []byte{0xec}},
	"LDS":  {Immediate16: []byte{0x10, 0xce}, Indexed: []byte{0x10, 0xee}},
	"LDU":  {Immediate16: []byte{0xce}, Indexed: []byte{0xee}},
	"LDX":  {Immediate16: []byte{0x8e}, Indexed: []byte{0xae}},
	"LDY":  {Immediate16: []byte{0x10, 0x8e}, Indexed: []byte{0x10, 0xae}},
	"STD":  {Indexed: []byte{0xed}},
	"STS":  {Indexed: []byte{0x10, 0xef}},
	"STU":  {Indexed: []byte{0xef}},
	"STX":  {Indexed: []byte{0xaf}},
	"STY":  {Indexed: []byte{0x10, 0xaf}},
	"SUBD": {Immediate16: []byte{0x83}},

	// Effective address and control flow
	"JMP":  {Indexed: []byte{0x6e}},
	"JSR":  {Indexed: []byte{0xad}},
	"LEAS": {Indexed: []byte{0x32}},
	"LEAU": {Indexed: []byte{0x33}},
	"LEAX": {Indexed: []byte{0x30}},
	"LEAY": {Indexed: []byte{0x31}},
}
