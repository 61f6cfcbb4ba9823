package vm

import (
	"github.com/retroenv/retrochip8/internal/opcode"
)

// NextWord returns the instruction word at PC without executing it.
// A word that does not fit in memory is reported with the address of PC.
func (m *Machine) NextWord() (uint16, error) {
	if checkRange(int(m.pc), opcode.Size) != nil {
		return 0, &MemoryOutOfBoundsError{Address: int(m.pc)}
	}
	return opcode.FromBytes(m.memory[m.pc], m.memory[m.pc+1]), nil
}

// Step fetches, decodes and executes one instruction.
// PC is advanced past the instruction before it executes, so jumps and
// skips operate on the address of the following instruction. On error the
// machine is left as it was before the call.
func (m *Machine) Step() error {
	word, err := m.NextWord()
	if err != nil {
		return err
	}

	m.pc += opcode.Size
	if err := m.execute(opcode.Decode(word)); err != nil {
		m.pc -= opcode.Size
		return err
	}
	return nil
}

// SkipInstruction moves PC past the instruction at PC without executing it.
// Hosts use it to continue after an unknown opcode.
func (m *Machine) SkipInstruction() {
	m.pc += opcode.Size
}
