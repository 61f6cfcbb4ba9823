// Package opcode decodes CHIP-8 instruction words.
//
// # Instruction Format
//
// Every CHIP-8 instruction is a big-endian 16-bit word. The four nibbles
// N1..N4 carry the opcode class and the operands:
//
//	N1 N2 N3 N4
//	   X  Y  N     register operands and 4-bit immediate
//	      kk       8-bit immediate (Byte)
//	   nnn         12-bit address (Addr)
//
// # Dispatch
//
// Decoding selects one of 35 instruction kinds through a priority ordered
// table of mask/value pairs. The first entry whose masked word equals its
// value wins, so exact patterns like 00E0 are listed before the 0nnn
// wildcard. Class 8 needs all four nibbles to pick one of nine ALU kinds and
// classes E and F need the low byte. Words that match no entry decode to
// KindUnknown.
//
// # Disassembly
//
// Instruction.String renders assembler text using the mnemonic names of the
// retrogolib CHIP-8 instruction set:
//
//	ins := opcode.Decode(0x8014)
//	fmt.Println(ins) // ADD V0, V1
package opcode
