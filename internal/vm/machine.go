package vm

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// CHIP-8 memory map (4KB total):
//
//	0x000-0x04F: built-in font, 16 glyphs of 5 bytes
//	0x050-0x1FF: reserved for the interpreter
//	0x200-0xFFF: program space
const (
	MemorySize     = 0x1000
	ProgramStart   = 0x200
	MaxProgramSize = MemorySize - ProgramStart

	RegisterCount = 16
	StackSize     = 16
	KeyCount      = 16

	// FlagRegister is VF, set by arithmetic, shifts and sprite collisions.
	FlagRegister = 0xF

	// FontGlyphSize is the size of a font glyph in bytes.
	FontGlyphSize = 5
)

var font = [...]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Machine is a CHIP-8 virtual machine. It is not safe for concurrent use,
// the host owns it and interleaves Step, TickTimers and its I/O.
type Machine struct {
	memory [MemorySize]byte
	v      [RegisterCount]uint8
	i      uint16
	pc     uint16

	stack [StackSize]uint16
	sp    uint8

	delay uint8
	sound uint8

	keys [KeyCount]bool
	fb   Framebuffer

	quirks  Quirks
	rng     *rand.Rand
	program []byte
}

// State is a snapshot of the machine registers.
type State struct {
	V     [RegisterCount]uint8
	I     uint16
	PC    uint16
	SP    uint8
	Stack [StackSize]uint16
	Delay uint8
	Sound uint8
}

// Option configures a Machine.
type Option func(*Machine)

// WithQuirks sets the interpreter quirks.
func WithQuirks(q Quirks) Option {
	return func(m *Machine) {
		m.quirks = q
	}
}

// WithSeed seeds the random number generator used by RND, making the
// sequence of random values reproducible.
func WithSeed(seed uint64) Option {
	return func(m *Machine) {
		m.rng = newRand(seed)
	}
}

// New returns a machine with the font installed and PC at the program start.
func New(opts ...Option) *Machine {
	m := &Machine{}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = newRand(uint64(time.Now().UnixNano()))
	}
	m.Reset()
	return m
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// Load resets the machine and copies the program image to the program start.
func (m *Machine) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes exceed the maximum of %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	m.program = append(m.program[:0], program...)
	m.Reset()
	return nil
}

// Reset restores the state after loading the current program.
func (m *Machine) Reset() {
	m.memory = [MemorySize]byte{}
	copy(m.memory[:], font[:])
	copy(m.memory[ProgramStart:], m.program)

	m.v = [RegisterCount]uint8{}
	m.i = 0
	m.pc = ProgramStart
	m.stack = [StackSize]uint16{}
	m.sp = 0
	m.delay = 0
	m.sound = 0
	m.keys = [KeyCount]bool{}
	m.fb = Framebuffer{}
}

// TickTimers decrements the delay and sound timers if they are not zero.
// The host calls it at 60 Hz, independent of the instruction rate.
func (m *Machine) TickTimers() {
	if m.delay > 0 {
		m.delay--
	}
	if m.sound > 0 {
		m.sound--
	}
}

// SetKey sets the pressed state of a keypad key.
func (m *Machine) SetKey(key uint8, pressed bool) error {
	if key >= KeyCount {
		return fmt.Errorf("%w: %d", ErrInvalidKey, key)
	}
	m.keys[key] = pressed
	return nil
}

// Keys returns the keypad state.
func (m *Machine) Keys() [KeyCount]bool {
	return m.keys
}

// Framebuffer returns a copy of the display.
func (m *Machine) Framebuffer() Framebuffer {
	return m.fb
}

// SoundTimer returns the sound timer, the host emits a tone while it is not zero.
func (m *Machine) SoundTimer() uint8 {
	return m.sound
}

// DelayTimer returns the delay timer.
func (m *Machine) DelayTimer() uint8 {
	return m.delay
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// Quirks returns the interpreter quirks in use.
func (m *Machine) Quirks() Quirks {
	return m.quirks
}

// Registers returns a snapshot of the registers, timers and stack.
func (m *Machine) Registers() State {
	return State{
		V:     m.v,
		I:     m.i,
		PC:    m.pc,
		SP:    m.sp,
		Stack: m.stack,
		Delay: m.delay,
		Sound: m.sound,
	}
}

// ReadMemory returns the byte at the given address.
func (m *Machine) ReadMemory(address uint16) (byte, error) {
	if err := checkRange(int(address), 1); err != nil {
		return 0, err
	}
	return m.memory[address], nil
}

// checkRange verifies that n bytes starting at address are addressable.
func checkRange(address, n int) error {
	switch {
	case address >= MemorySize:
		return &MemoryOutOfBoundsError{Address: address}
	case address+n > MemorySize:
		return &MemoryOutOfBoundsError{Address: MemorySize}
	}
	return nil
}
