package vm

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Instruction is one op-code/operand pair
type Instruction struct {
	Op  OpCode
	Arg int
}

// Word packs the instruction as op<<16 | arg
func (in Instruction) Word() uint32 {
	return uint32(in.Op)<<16 | uint32(in.Arg)&MaxArgument
}

// String renders the instruction the way listings show it
func (in Instruction) String() string {
	if HasArgument(in.Op) {
		return fmt.Sprintf("%s %d", in.Op, in.Arg)
	}
	return in.Op.String()
}

// Program represents compiled OCP code
type Program struct {
	Code     []Instruction // Instructions in execution order
	LineInfo []LineEntry   // Source line mapping
}

// LineEntry maps an instruction index to a source line
type LineEntry struct {
	StartIP int // First instruction for this line
	Line    int // Source line number
}

// LineForIP returns the source line number for a given instruction index
func (p *Program) LineForIP(ip int) int {
	for i := len(p.LineInfo) - 1; i >= 0; i-- {
		if p.LineInfo[i].StartIP <= ip {
			return p.LineInfo[i].Line
		}
	}
	return 0
}

// Words returns the packed instruction words
func (p *Program) Words() []uint32 {
	words := make([]uint32, len(p.Code))
	for i, in := range p.Code {
		words[i] = in.Word()
	}
	return words
}

// Bytes returns the packed words, big-endian
func (p *Program) Bytes() []byte {
	buf := make([]byte, 0, 4*len(p.Code))
	for _, in := range p.Code {
		buf = binary.BigEndian.AppendUint32(buf, in.Word())
	}
	return buf
}

// Listing returns one line per instruction, e.g. "PUSH_NUM 9" or "ADD"
func (p *Program) Listing() []string {
	lines := make([]string, len(p.Code))
	for i, in := range p.Code {
		lines[i] = in.String()
	}
	return lines
}

// String returns a numbered disassembly
func (p *Program) String() string {
	var sb strings.Builder
	for i, in := range p.Code {
		fmt.Fprintf(&sb, "%04d  %s\n", i, in)
	}
	return sb.String()
}
