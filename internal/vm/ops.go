package vm

import (
	"github.com/retroenv/retrochip8/internal/opcode"
)

// execute runs a decoded instruction. PC already points to the next
// instruction. Handlers check every failure condition before mutating state.
//
//nolint:funlen,cyclop // one case per instruction kind
func (m *Machine) execute(ins opcode.Instruction) error {
	x, y := ins.X, ins.Y

	switch ins.Kind {
	case opcode.KindUnknown:
		return &UnknownOpcodeError{Word: ins.Word}

	case opcode.KindSys:
		if !m.quirks.SysNoop {
			return &UnknownOpcodeError{Word: ins.Word}
		}

	case opcode.KindCls:
		m.fb = Framebuffer{}

	case opcode.KindRet:
		if m.sp == 0 {
			return ErrStackUnderflow
		}
		m.sp--
		m.pc = m.stack[m.sp]

	case opcode.KindJp:
		m.pc = ins.Addr

	case opcode.KindCall:
		if int(m.sp) >= StackSize {
			return ErrStackOverflow
		}
		m.stack[m.sp] = m.pc
		m.sp++
		m.pc = ins.Addr

	case opcode.KindSeByte:
		m.skipIf(m.v[x] == ins.Byte)
	case opcode.KindSneByte:
		m.skipIf(m.v[x] != ins.Byte)
	case opcode.KindSeReg:
		m.skipIf(m.v[x] == m.v[y])
	case opcode.KindSneReg:
		m.skipIf(m.v[x] != m.v[y])

	case opcode.KindLdByte:
		m.v[x] = ins.Byte
	case opcode.KindAddByte:
		m.v[x] += ins.Byte

	case opcode.KindLdReg:
		m.v[x] = m.v[y]
	case opcode.KindOr:
		m.v[x] |= m.v[y]
		m.resetFlagQuirk()
	case opcode.KindAnd:
		m.v[x] &= m.v[y]
		m.resetFlagQuirk()
	case opcode.KindXor:
		m.v[x] ^= m.v[y]
		m.resetFlagQuirk()

	case opcode.KindAddReg:
		sum := uint16(m.v[x]) + uint16(m.v[y])
		m.v[x] = uint8(sum)
		m.setFlag(sum > 0xFF)

	case opcode.KindSub:
		vx, vy := m.v[x], m.v[y]
		m.v[x] = vx - vy
		m.setFlag(vx > vy)

	case opcode.KindSubn:
		vx, vy := m.v[x], m.v[y]
		m.v[x] = vy - vx
		m.setFlag(vy > vx)

	case opcode.KindShr:
		src := m.shiftSource(x, y)
		m.v[x] = src >> 1
		m.v[FlagRegister] = src & 0x01

	case opcode.KindShl:
		src := m.shiftSource(x, y)
		m.v[x] = src << 1
		m.v[FlagRegister] = src >> 7

	case opcode.KindLdI:
		m.i = ins.Addr

	case opcode.KindJpV0:
		reg := uint8(0)
		if m.quirks.JumpUsesVx {
			reg = x
		}
		m.pc = ins.Addr + uint16(m.v[reg])

	case opcode.KindRnd:
		m.v[x] = uint8(m.rng.Uint32()) & ins.Byte

	case opcode.KindDrw:
		return m.draw(x, y, ins.N)

	case opcode.KindSkp:
		m.skipIf(m.keys[m.v[x]&0xF])
	case opcode.KindSknp:
		m.skipIf(!m.keys[m.v[x]&0xF])

	case opcode.KindLdVxDT:
		m.v[x] = m.delay

	case opcode.KindLdVxK:
		m.waitForKey(x)

	case opcode.KindLdDTVx:
		m.delay = m.v[x]
	case opcode.KindLdSTVx:
		m.sound = m.v[x]

	case opcode.KindAddI:
		m.i += uint16(m.v[x])

	case opcode.KindLdF:
		m.i = uint16(m.v[x]) * FontGlyphSize

	case opcode.KindLdB:
		return m.storeBCD(m.v[x])

	case opcode.KindStore:
		return m.storeRegisters(x)
	case opcode.KindLoad:
		return m.loadRegisters(x)
	}

	return nil
}

func (m *Machine) skipIf(cond bool) {
	if cond {
		m.pc += opcode.Size
	}
}

// setFlag writes the carry or borrow flag. It is written after the result so
// that VF holds the flag when it is also the destination register.
func (m *Machine) setFlag(set bool) {
	if set {
		m.v[FlagRegister] = 1
	} else {
		m.v[FlagRegister] = 0
	}
}

func (m *Machine) resetFlagQuirk() {
	if m.quirks.VFReset {
		m.v[FlagRegister] = 0
	}
}

func (m *Machine) shiftSource(x, y uint8) uint8 {
	if m.quirks.ShiftUsesVy {
		return m.v[y]
	}
	return m.v[x]
}

// draw XORs an n byte sprite read from I onto the display at (Vx, Vy).
// Pixels wrap around both display edges.
func (m *Machine) draw(x, y, n uint8) error {
	if err := checkRange(int(m.i), int(n)); err != nil {
		return err
	}

	col := int(m.v[x]) % Width
	row := int(m.v[y]) % Height
	collision := false
	for offset := range int(n) {
		sprite := m.memory[int(m.i)+offset]
		if m.fb.drawRow(col, row+offset, sprite) {
			collision = true
		}
	}
	m.setFlag(collision)
	return nil
}

// waitForKey stores the lowest pressed key in Vx. Without a pressed key PC
// is moved back so that the next step executes this instruction again.
func (m *Machine) waitForKey(x uint8) {
	for key, pressed := range m.keys {
		if pressed {
			m.v[x] = uint8(key)
			return
		}
	}
	m.pc -= opcode.Size
}

func (m *Machine) storeBCD(value uint8) error {
	if err := checkRange(int(m.i), 3); err != nil {
		return err
	}
	m.memory[m.i] = value / 100
	m.memory[m.i+1] = value / 10 % 10
	m.memory[m.i+2] = value % 10
	return nil
}

func (m *Machine) storeRegisters(x uint8) error {
	count := int(x) + 1
	if err := checkRange(int(m.i), count); err != nil {
		return err
	}
	copy(m.memory[m.i:], m.v[:count])
	m.advanceIndexQuirk(count)
	return nil
}

func (m *Machine) loadRegisters(x uint8) error {
	count := int(x) + 1
	if err := checkRange(int(m.i), count); err != nil {
		return err
	}
	copy(m.v[:count], m.memory[m.i:])
	m.advanceIndexQuirk(count)
	return nil
}

func (m *Machine) advanceIndexQuirk(count int) {
	if m.quirks.LoadStoreIncrementsI {
		m.i += uint16(count)
	}
}
