package vm

import (
	"fmt"
)

// machine is a minimal stack evaluator used to check what compiled code
// computes. chars holds the matched input (\1 is chars[0]).
type machine struct {
	chars  []int
	tables [][]int
	stack  []int
	out    []int
	pback  []int
}

func (m *machine) pop() (int, error) {
	if len(m.stack) == 0 {
		return 0, fmt.Errorf("stack underflow")
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v, nil
}

func (m *machine) run(p *Program) error {
	for ip, in := range p.Code {
		switch in.Op {
		case OP_PUSH_NUM:
			m.stack = append(m.stack, in.Arg)
		case OP_PUSH_CHAR:
			if in.Arg < 1 || in.Arg > len(m.chars) {
				return fmt.Errorf("%d: no character %d", ip, in.Arg)
			}
			m.stack = append(m.stack, m.chars[in.Arg-1])
		case OP_PUSH_LCHAR:
			i := len(m.chars) - 1 - in.Arg
			if i < 0 {
				return fmt.Errorf("%d: no character $-%d", ip, in.Arg)
			}
			m.stack = append(m.stack, m.chars[i])
		case OP_LOOKUP:
			idx, err := m.pop()
			if err != nil {
				return err
			}
			m.stack = append(m.stack, m.tables[in.Arg][idx])
		case OP_ADD, OP_SUB, OP_MULT, OP_DIV, OP_MOD:
			b, err := m.pop()
			if err != nil {
				return err
			}
			a, err := m.pop()
			if err != nil {
				return err
			}
			m.stack = append(m.stack, arith(in.Op, a, b))
		case OP_RIGHT_OUTPUT, OP_PBACK_OUTPUT:
			v, err := m.pop()
			if err != nil {
				return err
			}
			if in.Op == OP_RIGHT_OUTPUT {
				m.out = append(m.out, v)
			} else {
				m.pback = append(m.pback, v)
			}
		default:
			return fmt.Errorf("%d: unknown opcode %s", ip, in.Op)
		}
	}
	return nil
}

func arith(op OpCode, a, b int) int {
	switch op {
	case OP_ADD:
		return a + b
	case OP_SUB:
		return a - b
	case OP_MULT:
		return a * b
	case OP_DIV:
		return a / b
	default:
		return a % b
	}
}
