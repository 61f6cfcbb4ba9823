package opcode

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecode_Fields(t *testing.T) {
	ins := Decode(0xD12F)

	assert.Equal(t, uint16(0xD12F), ins.Word)
	assert.Equal(t, uint8(0xD), ins.N1)
	assert.Equal(t, uint8(0x1), ins.N2)
	assert.Equal(t, uint8(0x2), ins.N3)
	assert.Equal(t, uint8(0xF), ins.N4)
	assert.Equal(t, uint8(0x1), ins.X)
	assert.Equal(t, uint8(0x2), ins.Y)
	assert.Equal(t, uint8(0xF), ins.N)
	assert.Equal(t, uint8(0x2F), ins.Byte)
	assert.Equal(t, uint16(0x12F), ins.Addr)
	assert.Equal(t, KindDrw, ins.Kind)
}

func TestFromBytes(t *testing.T) {
	assert.Equal(t, uint16(0x6005), FromBytes(0x60, 0x05))
	assert.Equal(t, uint16(0xFF00), FromBytes(0xFF, 0x00))
}

func TestPatterns_Count(t *testing.T) {
	assert.Len(t, patterns, 35)

	seen := map[Kind]bool{}
	for _, p := range patterns {
		assert.False(t, seen[p.Kind], "duplicate kind in dispatch table")
		seen[p.Kind] = true
		assert.Equal(t, p.Value, p.Value&p.Mask, "pattern value has bits outside its mask")
	}
	assert.Equal(t, int(kindCount)-1, len(seen))
}

func TestLookup(t *testing.T) {
	tests := []struct {
		word uint16
		kind Kind
	}{
		{0x00E0, KindCls},
		{0x00EE, KindRet},
		{0x0123, KindSys},
		{0x0FFF, KindSys},
		{0x1234, KindJp},
		{0x2ABC, KindCall},
		{0x3A55, KindSeByte},
		{0x4A55, KindSneByte},
		{0x5AB0, KindSeReg},
		{0x6A12, KindLdByte},
		{0x7A12, KindAddByte},
		{0x8AB0, KindLdReg},
		{0x8AB1, KindOr},
		{0x8AB2, KindAnd},
		{0x8AB3, KindXor},
		{0x8AB4, KindAddReg},
		{0x8AB5, KindSub},
		{0x8AB6, KindShr},
		{0x8AB7, KindSubn},
		{0x8ABE, KindShl},
		{0x9AB0, KindSneReg},
		{0xA123, KindLdI},
		{0xB123, KindJpV0},
		{0xCA0F, KindRnd},
		{0xDAB5, KindDrw},
		{0xEA9E, KindSkp},
		{0xEAA1, KindSknp},
		{0xFA07, KindLdVxDT},
		{0xFA0A, KindLdVxK},
		{0xFA15, KindLdDTVx},
		{0xFA18, KindLdSTVx},
		{0xFA1E, KindAddI},
		{0xFA29, KindLdF},
		{0xFA33, KindLdB},
		{0xFA55, KindStore},
		{0xFA65, KindLoad},

		{0x5AB1, KindUnknown},
		{0x8AB8, KindUnknown},
		{0x8ABF, KindUnknown},
		{0x9AB1, KindUnknown},
		{0xE000, KindUnknown},
		{0xEA9F, KindUnknown},
		{0xF000, KindUnknown},
		{0xFAFF, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(Disassemble(tt.word), func(t *testing.T) {
			assert.Equal(t, tt.kind, Lookup(tt.word))
		})
	}
}

func TestLookup_ExactBeforeWildcard(t *testing.T) {
	// 00E0 and 00EE also match the 0nnn wildcard
	assert.Equal(t, KindCls, Decode(0x00E0).Kind)
	assert.Equal(t, KindRet, Decode(0x00EE).Kind)
	assert.Equal(t, KindSys, Decode(0x00E1).Kind)
}

func TestLookup_MatchesRetrogolibTable(t *testing.T) {
	words := []uint16{0x00E0, 0x00EE, 0x1234, 0x2ABC, 0x3A55, 0x6A12, 0x8AB4, 0xA123, 0xDAB5, 0xEA9E, 0xFA65}

	for _, word := range words {
		var found *chip8.Instruction
		for _, op := range chip8.Opcodes[int(word>>12)] {
			if op.Info.Mask&word == op.Info.Value {
				found = op.Instruction
				break
			}
		}
		assert.NotNil(t, found)
		assert.Equal(t, found.Name, Lookup(word).Instruction().Name)
	}
}

func TestKind_Predicates(t *testing.T) {
	assert.True(t, KindJp.IsJump())
	assert.True(t, KindJpV0.IsJump())
	assert.False(t, KindCall.IsJump())
	assert.True(t, KindCall.IsCall())
	assert.True(t, KindRet.IsReturn())
	assert.False(t, KindJp.IsReturn())

	for _, k := range []Kind{KindSeByte, KindSneByte, KindSeReg, KindSneReg, KindSkp, KindSknp} {
		assert.True(t, k.IsSkip())
	}
	for _, k := range []Kind{KindUnknown, KindSys, KindLdByte, KindDrw, KindJp} {
		assert.False(t, k.IsSkip())
	}
}

func TestKind_Instruction(t *testing.T) {
	assert.Nil(t, KindUnknown.Instruction())
	assert.Nil(t, KindSys.Instruction())
	assert.Nil(t, Kind(200).Instruction())

	for k := KindCls; k < kindCount; k++ {
		assert.NotNil(t, k.Instruction())
	}
}

func TestInstruction_String(t *testing.T) {
	name := func(ins *chip8.Instruction) string {
		return strings.ToUpper(ins.Name)
	}

	tests := []struct {
		word uint16
		want string
	}{
		{0x00E0, name(chip8.ClsInst)},
		{0x00EE, name(chip8.RetInst)},
		{0x0123, "SYS $123"},
		{0x0FFF, "SYS $FFF"},
		{0x1200, name(chip8.JpInst) + " $200"},
		{0x2300, name(chip8.CallInst) + " $300"},
		{0x6005, name(chip8.LdInst) + " V0, $05"},
		{0x7A01, name(chip8.AddInst) + " VA, $01"},
		{0x8014, name(chip8.AddInst) + " V0, V1"},
		{0x8126, name(chip8.ShrInst) + " V1"},
		{0x8127, name(chip8.SubnInst) + " V1, V2"},
		{0xA050, name(chip8.LdInst) + " I, $050"},
		{0xB300, name(chip8.JpInst) + " V0, $300"},
		{0xC3F0, name(chip8.RndInst) + " V3, $F0"},
		{0xD125, name(chip8.DrwInst) + " V1, V2, $5"},
		{0xE49E, name(chip8.SkpInst) + " V4"},
		{0xF40A, name(chip8.LdInst) + " V4, K"},
		{0xF415, name(chip8.LdInst) + " DT, V4"},
		{0xF41E, name(chip8.AddInst) + " I, V4"},
		{0xF433, name(chip8.LdInst) + " B, V4"},
		{0xF355, name(chip8.LdInst) + " [I], V3"},
		{0xF365, name(chip8.LdInst) + " V3, [I]"},
		{0xFFFF, "DW $FFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Disassemble(tt.word))
		})
	}
}

func TestInstruction_FormatJumpRegister(t *testing.T) {
	jp := strings.ToUpper(chip8.JpInst.Name)
	ins := Decode(0xB3A0)

	assert.Equal(t, jp+" V0, $3A0", ins.Format(false))
	assert.Equal(t, jp+" V3, $3A0", ins.Format(true))
	assert.Equal(t, ins.Format(false), ins.String())

	// other kinds do not depend on the jump register
	assert.Equal(t, Decode(0x1200).String(), Decode(0x1200).Format(true))
}

func TestDecode_Total(t *testing.T) {
	unknown := 0
	for word := 0; word <= 0xFFFF; word++ {
		ins := Decode(uint16(word))
		assert.Equal(t, uint16(word), ins.Word)
		if ins.IsUnknown() {
			unknown++
		}
	}
	assert.True(t, unknown > 0)
}
