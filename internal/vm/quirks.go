package vm

// Quirks selects between the behaviors that CHIP-8 interpreters disagree on.
// The zero value is the baseline instruction set.
type Quirks struct {
	// ShiftUsesVy makes 8xy6 and 8xyE shift Vy into Vx instead of shifting Vx.
	ShiftUsesVy bool
	// LoadStoreIncrementsI makes Fx55 and Fx65 leave I pointing past the
	// last register transferred.
	LoadStoreIncrementsI bool
	// VFReset clears VF after 8xy1, 8xy2 and 8xy3.
	VFReset bool
	// JumpUsesVx makes Bnnn jump to nnn + Vx, where x is the high nibble of nnn.
	JumpUsesVx bool
	// SysNoop ignores 0nnn machine code calls instead of reporting them as
	// unknown opcodes.
	SysNoop bool
}
