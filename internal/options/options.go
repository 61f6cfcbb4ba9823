// Package options contains the program options.
package options

import (
	"github.com/retroenv/retrogolib/set"
)

// Parameters contains file path options.
type Parameters struct {
	Input      string // ROM file to run
	Batch      string // glob pattern of ROM files to run one after another
	Wav        string // WAV file to record the sound timer to
	Screen     string // text file to write the final screen to, "-" for stdout
	StateGraph string // Graphviz file to write the final machine state graph to
}

// Flags contains behavior options.
type Flags struct {
	System     string // system to run, only chip8 is supported
	Quirks     string // quirk profile name
	Keys       string // key script, for example "100:5:down,160:5:up"
	Breaks     string // comma separated breakpoint addresses
	Unknown    string // unknown opcode policy: halt, skip or log
	Seed       uint64
	HasSeed    bool
	Debug      bool
	Quiet      bool
	Trace      bool
	Realtime   bool
	StopOnLoop bool
	StatsView  bool
}

// Timing contains the cycle loop pacing options.
type Timing struct {
	CPUHz  int    // instructions per second
	Cycles uint64 // cycles to run, 0 runs until halted or interrupted
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	Timing
}

// Unknown opcode policies.
const (
	UnknownHalt = "halt"
	UnknownSkip = "skip"
	UnknownLog  = "log"
)

// Defaults.
const (
	DefaultCPUHz  = 700
	DefaultQuirks = "chip8"
)

// KeyEvent changes the state of a keypad key before the given cycle executes.
type KeyEvent struct {
	Cycle   uint64
	Key     uint8
	Pressed bool
}

// Runner defines options to control the cycle loop.
type Runner struct {
	CPUHz       int
	TimerHz     int
	Cycles      uint64
	Realtime    bool
	StopOnLoop  bool
	Trace       bool
	Unknown     string
	Keys        []KeyEvent
	Breakpoints set.Set[uint16]
}

// NewRunner returns runner options with default settings.
func NewRunner() Runner {
	return Runner{
		CPUHz:       DefaultCPUHz,
		TimerHz:     60,
		Unknown:     UnknownHalt,
		Breakpoints: set.New[uint16](),
	}
}
