// Package runner implements the host cycle loop that drives the interpreter.
//
// Every emulated frame executes the instruction rate divided by the timer
// rate cycles, carrying the remainder to later frames, and then ticks the
// delay and sound timers once.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// SoundSink receives the sound timer state once per frame.
type SoundSink interface {
	Frame(active bool) error
}

// StopReason describes why a run ended without an error.
type StopReason int

// Stop reasons.
const (
	StopCycles StopReason = iota
	StopBreakpoint
	StopLoop
)

func (s StopReason) String() string {
	switch s {
	case StopCycles:
		return "cycle limit"
	case StopBreakpoint:
		return "breakpoint"
	case StopLoop:
		return "self loop"
	default:
		return fmt.Sprintf("StopReason(%d)", int(s))
	}
}

// Result summarizes a finished run.
type Result struct {
	Cycles  uint64 // executed instructions
	Frames  uint64 // timer ticks
	Skipped uint64 // unknown opcodes skipped by policy
	PC      uint16 // program counter after the run
	Reason  StopReason
}

// Runner drives a machine with the configured pacing, input and policies.
type Runner struct {
	logger  *log.Logger
	machine *vm.Machine
	opts    options.Runner
	sound   SoundSink

	cycle    uint64
	frames   uint64
	skipped  uint64
	keyIndex int
}

// New returns a runner for the machine. sound can be nil.
func New(logger *log.Logger, machine *vm.Machine, opts options.Runner, sound SoundSink) *Runner {
	if opts.TimerHz <= 0 {
		opts.TimerHz = 60
	}
	if opts.CPUHz <= 0 {
		opts.CPUHz = options.DefaultCPUHz
	}
	if opts.Unknown == "" {
		opts.Unknown = options.UnknownHalt
	}

	return &Runner{
		logger:  logger,
		machine: machine,
		opts:    opts,
		sound:   sound,
	}
}

// Run executes frames until the cycle limit is reached, a stop condition
// hits, an instruction fails or the context is canceled.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	perFrame := r.opts.CPUHz / r.opts.TimerHz
	remainder := r.opts.CPUHz % r.opts.TimerHz
	carry := 0

	var ticker *time.Ticker
	if r.opts.Realtime {
		ticker = time.NewTicker(time.Second / time.Duration(r.opts.TimerHz))
		defer ticker.Stop()
	}

	for {
		cycles := perFrame
		carry += remainder
		if carry >= r.opts.TimerHz {
			cycles++
			carry -= r.opts.TimerHz
		}

		for range cycles {
			if err := ctx.Err(); err != nil {
				return r.result(StopCycles), err
			}
			if r.opts.Cycles > 0 && r.cycle >= r.opts.Cycles {
				return r.result(StopCycles), nil
			}

			stop, reason, err := r.cycleOnce()
			if err != nil {
				return r.result(StopCycles), err
			}
			if stop {
				r.logger.Info("Execution stopped",
					log.Stringer("reason", reason),
					log.Hex("pc", r.machine.PC()))
				return r.result(reason), nil
			}
		}

		if err := r.endFrame(); err != nil {
			return r.result(StopCycles), err
		}

		if ticker != nil {
			select {
			case <-ctx.Done():
				return r.result(StopCycles), ctx.Err()
			case <-ticker.C:
			}
		}
	}
}

// cycleOnce applies pending input, checks the stop conditions and executes
// a single instruction.
func (r *Runner) cycleOnce() (bool, StopReason, error) {
	if err := r.applyKeys(); err != nil {
		return false, StopCycles, err
	}

	pc := r.machine.PC()
	if r.opts.Breakpoints.Contains(pc) {
		return true, StopBreakpoint, nil
	}

	word, err := r.machine.NextWord()
	if err != nil {
		return false, StopCycles, fmt.Errorf("executing instruction at %04x: %w", pc, err)
	}
	ins := opcode.Decode(word)

	if r.opts.StopOnLoop && ins.Kind == opcode.KindJp && ins.Addr == pc {
		return true, StopLoop, nil
	}

	if r.opts.Trace {
		r.logger.Debug("exec",
			log.Hex("pc", pc),
			log.Hex("opcode", word),
			log.String("instruction", r.describe(ins)))
	}

	if err := r.machine.Step(); err != nil {
		if !r.handleUnknown(pc, word, err) {
			return false, StopCycles, fmt.Errorf("executing instruction at %04x: %w", pc, err)
		}
	}
	r.cycle++
	return false, StopCycles, nil
}

// describe returns the assembler text of an instruction as the machine
// executes it under its quirks.
func (r *Runner) describe(ins opcode.Instruction) string {
	return ins.Format(r.machine.Quirks().JumpUsesVx)
}

// handleUnknown applies the unknown opcode policy and returns whether
// execution continues.
func (r *Runner) handleUnknown(pc, word uint16, err error) bool {
	if !errors.Is(err, vm.ErrUnknownOpcode) {
		return false
	}

	switch r.opts.Unknown {
	case options.UnknownSkip:
	case options.UnknownLog:
		r.logger.Warn("Skipping unknown opcode",
			log.Hex("pc", pc),
			log.Hex("opcode", word))
	default:
		return false
	}

	r.machine.SkipInstruction()
	r.skipped++
	return true
}

// applyKeys applies all scripted key events that are due at the current cycle.
func (r *Runner) applyKeys() error {
	for r.keyIndex < len(r.opts.Keys) {
		event := r.opts.Keys[r.keyIndex]
		if event.Cycle > r.cycle {
			return nil
		}

		if err := r.machine.SetKey(event.Key, event.Pressed); err != nil {
			return fmt.Errorf("applying key event at cycle %d: %w", event.Cycle, err)
		}
		r.logger.Debug("Key event",
			log.Hex("key", event.Key),
			log.String("state", keyState(event.Pressed)))
		r.keyIndex++
	}
	return nil
}

// endFrame reports the sound state of the finished frame and ticks the timers.
func (r *Runner) endFrame() error {
	if r.sound != nil {
		if err := r.sound.Frame(r.machine.SoundTimer() > 0); err != nil {
			return fmt.Errorf("recording sound: %w", err)
		}
	}

	r.machine.TickTimers()
	r.frames++
	return nil
}

func (r *Runner) result(reason StopReason) Result {
	return Result{
		Cycles:  r.cycle,
		Frames:  r.frames,
		Skipped: r.skipped,
		PC:      r.machine.PC(),
		Reason:  reason,
	}
}

func keyState(pressed bool) string {
	if pressed {
		return "down"
	}
	return "up"
}
