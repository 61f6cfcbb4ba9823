package opcode

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Kind identifies one of the 35 CHIP-8 instructions.
type Kind uint8

// Instruction kinds, named after the opcode pattern they decode from.
const (
	KindUnknown Kind = iota
	KindSys          // 0nnn
	KindCls          // 00E0
	KindRet          // 00EE
	KindJp           // 1nnn
	KindCall         // 2nnn
	KindSeByte       // 3xkk
	KindSneByte      // 4xkk
	KindSeReg        // 5xy0
	KindLdByte       // 6xkk
	KindAddByte      // 7xkk
	KindLdReg        // 8xy0
	KindOr           // 8xy1
	KindAnd          // 8xy2
	KindXor          // 8xy3
	KindAddReg       // 8xy4
	KindSub          // 8xy5
	KindShr          // 8xy6
	KindSubn         // 8xy7
	KindShl          // 8xyE
	KindSneReg       // 9xy0
	KindLdI          // Annn
	KindJpV0         // Bnnn
	KindRnd          // Cxkk
	KindDrw          // Dxyn
	KindSkp          // Ex9E
	KindSknp         // ExA1
	KindLdVxDT       // Fx07
	KindLdVxK        // Fx0A
	KindLdDTVx       // Fx15
	KindLdSTVx       // Fx18
	KindAddI         // Fx1E
	KindLdF          // Fx29
	KindLdB          // Fx33
	KindStore        // Fx55
	KindLoad         // Fx65

	kindCount
)

// pattern maps a masked instruction word to its kind.
type pattern struct {
	Mask  uint16
	Value uint16
	Kind  Kind
}

// patterns is the dispatch table. Order matters: the first matching entry
// wins, so exact matches precede the wildcards of the same class.
var patterns = [...]pattern{
	{0xFFFF, 0x00E0, KindCls},
	{0xFFFF, 0x00EE, KindRet},
	{0xF000, 0x0000, KindSys},
	{0xF000, 0x1000, KindJp},
	{0xF000, 0x2000, KindCall},
	{0xF000, 0x3000, KindSeByte},
	{0xF000, 0x4000, KindSneByte},
	{0xF00F, 0x5000, KindSeReg},
	{0xF000, 0x6000, KindLdByte},
	{0xF000, 0x7000, KindAddByte},
	{0xF00F, 0x8000, KindLdReg},
	{0xF00F, 0x8001, KindOr},
	{0xF00F, 0x8002, KindAnd},
	{0xF00F, 0x8003, KindXor},
	{0xF00F, 0x8004, KindAddReg},
	{0xF00F, 0x8005, KindSub},
	{0xF00F, 0x8006, KindShr},
	{0xF00F, 0x8007, KindSubn},
	{0xF00F, 0x800E, KindShl},
	{0xF00F, 0x9000, KindSneReg},
	{0xF000, 0xA000, KindLdI},
	{0xF000, 0xB000, KindJpV0},
	{0xF000, 0xC000, KindRnd},
	{0xF000, 0xD000, KindDrw},
	{0xF0FF, 0xE09E, KindSkp},
	{0xF0FF, 0xE0A1, KindSknp},
	{0xF0FF, 0xF007, KindLdVxDT},
	{0xF0FF, 0xF00A, KindLdVxK},
	{0xF0FF, 0xF015, KindLdDTVx},
	{0xF0FF, 0xF018, KindLdSTVx},
	{0xF0FF, 0xF01E, KindAddI},
	{0xF0FF, 0xF029, KindLdF},
	{0xF0FF, 0xF033, KindLdB},
	{0xF0FF, 0xF055, KindStore},
	{0xF0FF, 0xF065, KindLoad},
}

// byClass holds the patterns grouped by the first nibble, keeping table order.
var byClass [16][]pattern

func init() {
	for _, p := range patterns {
		class := p.Value >> 12
		byClass[class] = append(byClass[class], p)
	}
}

// Lookup returns the kind of the first pattern matching the word.
func Lookup(word uint16) Kind {
	for _, p := range byClass[word>>12] {
		if word&p.Mask == p.Value {
			return p.Kind
		}
	}
	return KindUnknown
}

// mnemonics maps kinds to the retrogolib instruction set definitions.
// SYS has no entry since it is not part of the interpreted instruction set.
var mnemonics = [kindCount]*chip8.Instruction{
	KindCls:     chip8.ClsInst,
	KindRet:     chip8.RetInst,
	KindJp:      chip8.JpInst,
	KindCall:    chip8.CallInst,
	KindSeByte:  chip8.SeInst,
	KindSneByte: chip8.SneInst,
	KindSeReg:   chip8.SeInst,
	KindLdByte:  chip8.LdInst,
	KindAddByte: chip8.AddInst,
	KindLdReg:   chip8.LdInst,
	KindOr:      chip8.OrInst,
	KindAnd:     chip8.AndInst,
	KindXor:     chip8.XorInst,
	KindAddReg:  chip8.AddInst,
	KindSub:     chip8.SubInst,
	KindShr:     chip8.ShrInst,
	KindSubn:    chip8.SubnInst,
	KindShl:     chip8.ShlInst,
	KindSneReg:  chip8.SneInst,
	KindLdI:     chip8.LdInst,
	KindJpV0:    chip8.JpInst,
	KindRnd:     chip8.RndInst,
	KindDrw:     chip8.DrwInst,
	KindSkp:     chip8.SkpInst,
	KindSknp:    chip8.SknpInst,
	KindLdVxDT:  chip8.LdInst,
	KindLdVxK:   chip8.LdInst,
	KindLdDTVx:  chip8.LdInst,
	KindLdSTVx:  chip8.LdInst,
	KindAddI:    chip8.AddInst,
	KindLdF:     chip8.LdInst,
	KindLdB:     chip8.LdInst,
	KindStore:   chip8.LdInst,
	KindLoad:    chip8.LdInst,
}

// Instruction returns the retrogolib instruction definition of the kind,
// nil for SYS and unknown words.
func (k Kind) Instruction() *chip8.Instruction {
	if k >= kindCount {
		return nil
	}
	return mnemonics[k]
}

// IsJump returns true for the absolute and the offset jump.
func (k Kind) IsJump() bool {
	return k == KindJp || k == KindJpV0
}

// IsCall returns true if the kind is a subroutine call.
func (k Kind) IsCall() bool {
	return k == KindCall
}

// IsReturn returns true if the kind returns from a subroutine.
func (k Kind) IsReturn() bool {
	return k == KindRet
}

// IsSkip returns true if the kind conditionally skips the next instruction.
func (k Kind) IsSkip() bool {
	ins := k.Instruction()
	if ins == nil {
		return false
	}
	return chip8.SkipInstructions.Contains(ins.Name)
}
