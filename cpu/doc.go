// Package cpu implements the 6809 assembler and a 6809 core to run its output.
//
// The assembler makes two passes over the source. The first pass records
// the offset of each label. The second pass evaluates operand expressions
// against the equates and generates code. Supported directives are ORG,
// EQU and END. Encodings are looked up by mnemonic in Instructions, and
// indexed operands are packed by Postbyte.
//
// The core executes the inherent, immediate and indexed instructions that
// the assembler generates, so that assembled programs can be checked by
// running them.
package cpu
