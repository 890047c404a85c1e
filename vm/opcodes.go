package vm

// OpCode represents an OCP instruction
type OpCode byte

// Output actions
const (
	OP_RIGHT_OUTPUT OpCode = 1 // Pop a; send a to the output
	OP_PBACK_OUTPUT OpCode = 6 // Pop a; push a back onto the input
)

// Arithmetic
const (
	OP_ADD  OpCode = 11 + iota // Pop b, a; push a + b
	OP_SUB                     // Pop b, a; push a - b
	OP_MULT                    // Pop b, a; push a * b
	OP_DIV                     // Pop b, a; push a div b
	OP_MOD                     // Pop b, a; push a mod b
)

// Loads
const (
	OP_LOOKUP     OpCode = OP_MOD + 1 + iota // Pop idx; push table[arg][idx]
	OP_PUSH_NUM                              // Push arg
	OP_PUSH_CHAR                             // Push matched character [arg]
	OP_PUSH_LCHAR                            // Push matched character [arg] counted from the last
)

// MaxArgument is the largest operand an instruction can carry
const MaxArgument = 0xFFFF

// OpCodeNames maps opcodes to their string names for listings
var OpCodeNames = map[OpCode]string{
	OP_RIGHT_OUTPUT: "RIGHT_OUTPUT",
	OP_PBACK_OUTPUT: "PBACK_OUTPUT",
	OP_ADD:          "ADD",
	OP_SUB:          "SUB",
	OP_MULT:         "MULT",
	OP_DIV:          "DIV",
	OP_MOD:          "MOD",
	OP_LOOKUP:       "LOOKUP",
	OP_PUSH_NUM:     "PUSH_NUM",
	OP_PUSH_CHAR:    "PUSH_CHAR",
	OP_PUSH_LCHAR:   "PUSH_LCHAR",
}

// String returns the name of an opcode
func (op OpCode) String() string {
	if name, ok := OpCodeNames[op]; ok {
		return name
	}
	return "UNKNOWN"
}

// HasArgument reports whether an opcode uses its operand
func HasArgument(op OpCode) bool {
	switch op {
	case OP_LOOKUP, OP_PUSH_NUM, OP_PUSH_CHAR, OP_PUSH_LCHAR:
		return true
	default:
		return false
	}
}

// LookupOpCode returns the opcode with the given name
func LookupOpCode(name string) (OpCode, bool) {
	for op, n := range OpCodeNames {
		if n == name {
			return op, true
		}
	}
	return 0, false
}
