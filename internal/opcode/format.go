package opcode

import (
	"fmt"
	"strings"
)

// Name returns the upper case mnemonic of the instruction.
func (i Instruction) Name() string {
	switch i.Kind {
	case KindUnknown:
		return "DW"
	case KindSys:
		return "SYS"
	}
	return strings.ToUpper(i.Kind.Instruction().Name)
}

// String returns the instruction as assembler text, for example "LD V0, $05".
func (i Instruction) String() string {
	return i.Format(false)
}

// Format returns the instruction as assembler text. With jumpUsesVx the
// offset jump Bxnn names register Vx instead of V0, matching the
// interpreters that add Vx to the target.
func (i Instruction) Format(jumpUsesVx bool) string {
	name := i.Name()
	if params := i.params(jumpUsesVx); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// Disassemble decodes a word and returns its assembler text.
func Disassemble(word uint16) string {
	return Decode(word).String()
}

// params formats the operands of the instruction.
func (i Instruction) params(jumpUsesVx bool) string {
	switch i.Kind {
	case KindCls, KindRet:
		return "" // no parameters

	case KindUnknown:
		return fmt.Sprintf("$%04X", i.Word)

	case KindSys, KindJp, KindCall:
		return fmt.Sprintf("$%03X", i.Addr)

	case KindSeByte, KindSneByte, KindLdByte, KindAddByte, KindRnd:
		return fmt.Sprintf("V%X, $%02X", i.X, i.Byte)

	case KindSeReg, KindSneReg, KindLdReg, KindOr, KindAnd, KindXor,
		KindAddReg, KindSub, KindSubn:
		return fmt.Sprintf("V%X, V%X", i.X, i.Y)

	case KindShr, KindShl, KindSkp, KindSknp:
		return fmt.Sprintf("V%X", i.X)

	case KindLdI:
		return fmt.Sprintf("I, $%03X", i.Addr)

	case KindJpV0:
		if jumpUsesVx {
			return fmt.Sprintf("V%X, $%03X", i.X, i.Addr)
		}
		return fmt.Sprintf("V0, $%03X", i.Addr)

	case KindDrw:
		return fmt.Sprintf("V%X, V%X, $%X", i.X, i.Y, i.N)

	case KindLdVxDT:
		return fmt.Sprintf("V%X, DT", i.X)
	case KindLdVxK:
		return fmt.Sprintf("V%X, K", i.X)
	case KindLdDTVx:
		return fmt.Sprintf("DT, V%X", i.X)
	case KindLdSTVx:
		return fmt.Sprintf("ST, V%X", i.X)
	case KindAddI:
		return fmt.Sprintf("I, V%X", i.X)
	case KindLdF:
		return fmt.Sprintf("F, V%X", i.X)
	case KindLdB:
		return fmt.Sprintf("B, V%X", i.X)
	case KindStore:
		return fmt.Sprintf("[I], V%X", i.X)
	case KindLoad:
		return fmt.Sprintf("V%X, [I]", i.X)
	}
	return ""
}
