package vm

import (
	"bytes"
	"reflect"
	"testing"

	"ocp/parser"
)

func TestInstructionWord(t *testing.T) {
	tests := []struct {
		in       Instruction
		expected uint32
	}{
		{Instruction{Op: OP_PUSH_NUM, Arg: 65}, 17<<16 | 65},
		{Instruction{Op: OP_LOOKUP, Arg: MaxArgument}, 16<<16 | 0xFFFF},
		{Instruction{Op: OP_RIGHT_OUTPUT}, 1 << 16},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			if got := tt.in.Word(); got != tt.expected {
				t.Errorf("expected %#x, got %#x", tt.expected, got)
			}
		})
	}
}

func TestProgramBytes(t *testing.T) {
	p := &Program{Code: []Instruction{
		{Op: OP_PUSH_NUM, Arg: 0x0102},
		{Op: OP_RIGHT_OUTPUT},
	}}

	expected := []byte{0, 17, 1, 2, 0, 1, 0, 0}
	if got := p.Bytes(); !bytes.Equal(got, expected) {
		t.Errorf("expected % x, got % x", expected, got)
	}
	if got := p.Words(); !reflect.DeepEqual(got, []uint32{17<<16 | 0x0102, 1 << 16}) {
		t.Errorf("unexpected words %v", got)
	}
}

func TestProgramString(t *testing.T) {
	p := &Program{Code: []Instruction{
		{Op: OP_PUSH_CHAR, Arg: 1},
		{Op: OP_PUSH_NUM, Arg: 2},
		{Op: OP_MULT},
	}}

	expected := "0000  PUSH_CHAR 1\n0001  PUSH_NUM 2\n0002  MULT\n"
	if got := p.String(); got != expected {
		t.Errorf("expected:\n%s\ngot:\n%s", expected, got)
	}
}

func TestLineInfo(t *testing.T) {
	c := NewCompiler()
	p := parser.NewParser("1 +\n2")
	a, err := p.ParseArith()
	if err != nil {
		t.Fatal(err)
	}
	if err := c.OutRight(a); err != nil {
		t.Fatal(err)
	}

	prog := c.Program()
	if line := prog.LineForIP(0); line != 1 {
		t.Errorf("expected line 1 for ip 0, got %d", line)
	}
	if line := prog.LineForIP(1); line != 2 {
		t.Errorf("expected line 2 for ip 1, got %d", line)
	}
	if line := prog.LineForIP(3); line != 2 {
		t.Errorf("expected line 2 for ip 3, got %d", line)
	}
}

func TestOpCodeNames(t *testing.T) {
	for op, name := range OpCodeNames {
		if op.String() != name {
			t.Errorf("%d: expected %s, got %s", op, name, op.String())
		}
		if got, ok := LookupOpCode(name); !ok || got != op {
			t.Errorf("LookupOpCode(%s) = %d, %v", name, got, ok)
		}
	}
	if OpCode(0).String() != "UNKNOWN" {
		t.Errorf("expected UNKNOWN for opcode 0")
	}

	// Omega numbering
	expected := map[OpCode]OpCode{
		OP_RIGHT_OUTPUT: 1, OP_PBACK_OUTPUT: 6, OP_ADD: 11, OP_SUB: 12, OP_MULT: 13,
		OP_DIV: 14, OP_MOD: 15, OP_LOOKUP: 16, OP_PUSH_NUM: 17, OP_PUSH_CHAR: 18, OP_PUSH_LCHAR: 19,
	}
	for op, value := range expected {
		if op != value {
			t.Errorf("%s: expected %d, got %d", op, value, op)
		}
	}
}
