package opcode

// Size is the size of a CHIP-8 instruction in bytes.
const Size = 2

// Instruction is a decoded CHIP-8 instruction word.
type Instruction struct {
	Word uint16
	Kind Kind

	N1, N2, N3, N4 uint8 // nibbles, most significant first

	X    uint8  // register operand, N2
	Y    uint8  // register operand, N3
	N    uint8  // 4-bit immediate, N4
	Byte uint8  // 8-bit immediate, N3N4
	Addr uint16 // 12-bit address, N2N3N4
}

// Decode splits a word into its operand fields and resolves its kind.
// Every word decodes, words outside the instruction set get KindUnknown.
func Decode(word uint16) Instruction {
	ins := Instruction{
		Word: word,
		N1:   uint8(word >> 12),
		N2:   uint8(word>>8) & 0xF,
		N3:   uint8(word>>4) & 0xF,
		N4:   uint8(word) & 0xF,
	}
	ins.X = ins.N2
	ins.Y = ins.N3
	ins.N = ins.N4
	ins.Byte = uint8(word)
	ins.Addr = word & 0x0FFF
	ins.Kind = Lookup(word)
	return ins
}

// FromBytes combines two bytes read from memory into a big-endian word.
func FromBytes(hi, lo byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

// IsUnknown returns true if the word did not match any instruction pattern.
func (i Instruction) IsUnknown() bool {
	return i.Kind == KindUnknown
}
