package cpu

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/ezrec/cocoasm/internal"
)

// Line is the assembly of a single source line.
type Line struct {
	LineNo int    // Source line number, from 1.
	Offset uint16 // Offset of the code from the origin.
	Text   string // Source text.
	Code   []byte // Generated code, possibly empty.
}

// Program is the output of the assembler.
type Program struct {
	Origin uint16 // Load address of the code.
	Exec   uint16 // Execution address, from END.
	Code   []byte // Generated code.
	Lines  []Line // Every source line, in order.

	Label  map[string]uint16 // Label offsets from the origin.
	Equate map[string]uint16 // Equate values.
}

// Address of a line's code.
func (prog *Program) Address(line *Line) uint16 {
	return prog.Origin + line.Offset
}

// Debug returns the line that generated the code at addr, or nil.
func (prog *Program) Debug(addr uint16) (line *Line) {
	for n := range prog.Lines {
		ln := &prog.Lines[n]
		if len(ln.Code) == 0 {
			continue
		}
		start := prog.Address(ln)
		if addr-start < uint16(len(ln.Code)) {
			line = ln
			break
		}
	}

	return
}

// Symbols iterates over the label addresses, then the equate values, each
// in name order.
func (prog *Program) Symbols() iter.Seq2[string, uint16] {
	var labels iter.Seq2[string, uint16] = func(yield func(string, uint16) bool) {
		for name, offset := range internal.IterSorted(prog.Label) {
			if !yield(name, prog.Origin+offset) {
				return
			}
		}
	}

	return internal.IterSeq2Concat(labels, internal.IterSorted(prog.Equate))
}

// Listing writes the address, code and source of every line, followed by
// the symbol table.
func (prog *Program) Listing(w io.Writer) (err error) {
	for n := range prog.Lines {
		ln := &prog.Lines[n]

		var hex strings.Builder
		for _, b := range ln.Code {
			fmt.Fprintf(&hex, "%02X ", b)
		}

		_, err = fmt.Fprintf(w, "%04X  %-12s %5d  %s\n", prog.Address(ln), hex.String(), ln.LineNo, ln.Text)
		if err != nil {
			return
		}
	}

	if len(prog.Label)+len(prog.Equate) == 0 {
		return
	}

	_, err = fmt.Fprintln(w)
	if err != nil {
		return
	}

	for name, value := range prog.Symbols() {
		kind := "EQU"
		if _, ok := prog.Label[name]; ok {
			kind = "LABEL"
		}
		_, err = fmt.Fprintf(w, "%-16s %-5s $%04X\n", name, kind, value)
		if err != nil {
			return
		}
	}

	return
}
