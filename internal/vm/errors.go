package vm

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOpcode is matched by UnknownOpcodeError.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrMemoryOutOfBounds is matched by MemoryOutOfBoundsError.
	ErrMemoryOutOfBounds = errors.New("memory address out of bounds")

	ErrStackOverflow   = errors.New("stack overflow")
	ErrStackUnderflow  = errors.New("stack underflow")
	ErrProgramTooLarge = errors.New("program too large")
	ErrInvalidKey      = errors.New("invalid key")
)

// UnknownOpcodeError reports an instruction word that can not be executed.
type UnknownOpcodeError struct {
	Word uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode %04x", e.Word)
}

func (e *UnknownOpcodeError) Unwrap() error {
	return ErrUnknownOpcode
}

// MemoryOutOfBoundsError reports the first address of an access outside of
// the 4KB address space.
type MemoryOutOfBoundsError struct {
	Address int
}

func (e *MemoryOutOfBoundsError) Error() string {
	return fmt.Sprintf("memory address %04x out of bounds", e.Address)
}

func (e *MemoryOutOfBoundsError) Unwrap() error {
	return ErrMemoryOutOfBounds
}
