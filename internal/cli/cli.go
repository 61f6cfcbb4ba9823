// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/arch"
)

// ParseFlags parses command line flags and returns program and runner options
func ParseFlags() (options.Program, options.Runner, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Batch == "" && opts.Input == "") {
		return opts, options.Runner{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Runner{}, err
	}

	flags.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.HasSeed = true
		}
	})

	if err := normalizeOptions(&opts); err != nil {
		return opts, options.Runner{}, err
	}

	if opts.System != "" {
		if system, ok := arch.SystemFromString(opts.System); !ok || system == "" {
			return opts, options.Runner{}, &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("unsupported system '%s', valid options: %s", opts.System, arch.CHIP8System),
			}
		}
	}

	if opts.Batch == "" && len(args) > 0 {
		if opts.Input != "" {
			return opts, options.Runner{}, &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("ROM file given with -i and as argument %s, please pass only one", args[0]),
			}
		}
		opts.Input = args[0]
	}

	runnerOptions, err := createRunnerOptions(opts)
	if err != nil {
		return opts, options.Runner{}, err
	}
	return opts, runnerOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file to run as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.System = strings.ToLower(opts.System)
	opts.Quirks = strings.ToLower(opts.Quirks)
	if _, err := config.Quirks(opts.Quirks); err != nil {
		return err
	}

	opts.Unknown = strings.ToLower(opts.Unknown)
	validPolicies := []string{options.UnknownHalt, options.UnknownSkip, options.UnknownLog}
	valid := false
	for _, policy := range validPolicies {
		if opts.Unknown == policy {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unsupported unknown opcode policy: %s. Valid options: %s",
			opts.Unknown, strings.Join(validPolicies, ", "))
	}

	if opts.CPUHz <= 0 {
		return fmt.Errorf("invalid instruction rate %d, must be positive", opts.CPUHz)
	}
	return nil
}

// createRunnerOptions creates runner options based on program options
func createRunnerOptions(opts options.Program) (options.Runner, error) {
	runnerOptions := options.NewRunner()
	runnerOptions.CPUHz = opts.CPUHz
	runnerOptions.Cycles = opts.Cycles
	runnerOptions.Realtime = opts.Realtime
	runnerOptions.StopOnLoop = opts.StopOnLoop
	runnerOptions.Trace = opts.Trace
	runnerOptions.Unknown = opts.Unknown

	keys, err := ParseKeyScript(opts.Keys)
	if err != nil {
		return options.Runner{}, err
	}
	runnerOptions.Keys = keys

	breaks, err := ParseBreakpoints(opts.Breaks)
	if err != nil {
		return options.Runner{}, err
	}
	for _, address := range breaks {
		runnerOptions.Breakpoints.Add(address)
	}

	return runnerOptions, nil
}

// ParseKeyScript parses a comma separated list of key events in the form
// cycle:key:down or cycle:key:up. The key is a hex digit.
// The returned events are sorted by cycle, events of the same cycle keep
// their order.
func ParseKeyScript(script string) ([]options.KeyEvent, error) {
	if script == "" {
		return nil, nil
	}

	var events []options.KeyEvent
	for _, entry := range strings.Split(script, ",") {
		entry = strings.TrimSpace(entry)
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid key event '%s', expected cycle:key:down|up", entry)
		}

		cycle, err := strconv.ParseUint(parts[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid cycle in key event '%s': %w", entry, err)
		}
		key, err := strconv.ParseUint(parts[1], 16, 8)
		if err != nil || key >= vm.KeyCount {
			return nil, fmt.Errorf("invalid key in key event '%s', expected 0-F", entry)
		}

		var pressed bool
		switch strings.ToLower(parts[2]) {
		case "down":
			pressed = true
		case "up":
		default:
			return nil, fmt.Errorf("invalid key state in key event '%s', expected down or up", entry)
		}

		events = append(events, options.KeyEvent{
			Cycle:   cycle,
			Key:     uint8(key),
			Pressed: pressed,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Cycle < events[j].Cycle
	})
	return events, nil
}

// ParseBreakpoints parses a comma separated list of hex addresses with an
// optional 0x or $ prefix.
func ParseBreakpoints(list string) ([]uint16, error) {
	if list == "" {
		return nil, nil
	}

	var addresses []uint16
	for _, entry := range strings.Split(list, ",") {
		s := strings.ToLower(strings.TrimSpace(entry))
		s = strings.TrimPrefix(s, "0x")
		s = strings.TrimPrefix(s, "$")

		address, err := strconv.ParseUint(s, 16, 16)
		if err != nil || address >= vm.MemorySize {
			return nil, fmt.Errorf("invalid breakpoint address '%s'", entry)
		}
		addresses = append(addresses, uint16(address))
	}
	return addresses, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Batch, "batch", "", "run a batch of given path and file mask one after another, for example *.ch8")
	flags.StringVar(&opts.System, "s", "", "system of the ROM file (chip8) - if not auto-detected from file extension")
	flags.StringVar(&opts.Wav, "wav", "", "name of the .wav file to record the sound timer to")
	flags.StringVar(&opts.Screen, "screen", "", "name of the file to write the final screen to, - for console output")
	flags.StringVar(&opts.StateGraph, "memviz", "", "name of the Graphviz .dot file to write the final machine state to")
	flags.StringVar(&opts.Quirks, "quirks", options.DefaultQuirks, "interpreter quirk profile ("+strings.Join(config.QuirkProfiles(), "/")+")")
	flags.StringVar(&opts.Keys, "keys", "", "key script of comma separated cycle:key:down|up events, for example 100:5:down,160:5:up")
	flags.StringVar(&opts.Breaks, "break", "", "comma separated hex addresses to stop execution at, for example 0x2a0,0x300")
	flags.StringVar(&opts.Unknown, "unknown", options.UnknownHalt, "unknown opcode policy (halt/skip/log)")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, random if not set")
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "number of instructions to execute, 0 runs until halted or interrupted")
	flags.IntVar(&opts.CPUHz, "hz", options.DefaultCPUHz, "instructions executed per second")
	flags.BoolVar(&opts.Realtime, "realtime", false, "pace execution to the instruction rate instead of running as fast as possible")
	flags.BoolVar(&opts.StopOnLoop, "stop-on-loop", false, "stop when the program jumps to its own address")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.BoolVar(&opts.StatsView, "statsview", false, "serve runtime statistics on localhost:18066")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
