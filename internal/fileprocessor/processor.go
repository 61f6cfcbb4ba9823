// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/screen"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// MachineState is the snapshot of a machine that is written as state graph.
type MachineState struct {
	Registers vm.State
	Quirks    vm.Quirks
	Keys      [vm.KeyCount]bool
	Screen    vm.Framebuffer
	Result    runner.Result
}

// ProcessFile handles the complete file processing workflow: the ROM is
// loaded and run, afterwards the requested outputs are written. Outputs are
// also written when the run ended with an error.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program,
	runnerOptions options.Runner) (runner.Result, error) {

	if _, err := detector.New(logger).Detect(opts); err != nil {
		return runner.Result{}, err
	}

	image, err := loader.New().Load(opts.Input)
	if err != nil {
		return runner.Result{}, fmt.Errorf("loading ROM: %w", err)
	}

	machine, err := setupMachine(opts, image)
	if err != nil {
		return runner.Result{}, fmt.Errorf("setting up machine: %w", err)
	}

	var recorder *audio.Recorder
	var sound runner.SoundSink
	if opts.Wav != "" {
		recorder, err = audio.NewRecorder(opts.Wav)
		if err != nil {
			return runner.Result{}, fmt.Errorf("creating sound recorder: %w", err)
		}
		sound = recorder
	}

	logger.Info("Running",
		log.String("file", opts.Input),
		log.Int("size", len(image)),
		log.String("quirks", opts.Quirks))

	result, runErr := runner.New(logger, machine, runnerOptions, sound).Run(ctx)

	var outputErrs []error
	if recorder != nil {
		if err := recorder.Close(); err != nil {
			outputErrs = append(outputErrs, err)
		}
	}
	if opts.Screen != "" {
		if err := screen.WriteFile(opts.Screen, machine.Framebuffer()); err != nil {
			outputErrs = append(outputErrs, err)
		}
	}
	if opts.StateGraph != "" {
		if err := WriteStateGraph(opts.StateGraph, machine, result); err != nil {
			outputErrs = append(outputErrs, err)
		}
	}

	if runErr != nil {
		return result, errors.Join(append([]error{runErr}, outputErrs...)...)
	}
	if len(outputErrs) > 0 {
		return result, fmt.Errorf("writing outputs: %w", errors.Join(outputErrs...))
	}

	fb := machine.Framebuffer()
	logger.Info("Finished",
		log.Stringer("reason", result.Reason),
		log.Int("cycles", int(result.Cycles)),
		log.Int("frames", int(result.Frames)),
		log.Hex("pc", result.PC),
		log.String("screen", screen.Digest(fb)))
	return result, nil
}

func setupMachine(opts options.Program, image []byte) (*vm.Machine, error) {
	quirks, err := config.Quirks(opts.Quirks)
	if err != nil {
		return nil, err
	}

	machineOptions := []vm.Option{vm.WithQuirks(quirks)}
	if opts.HasSeed {
		machineOptions = append(machineOptions, vm.WithSeed(opts.Seed))
	}

	machine := vm.New(machineOptions...)
	if err := machine.Load(image); err != nil {
		return nil, err
	}
	return machine, nil
}

// WriteStateGraph writes a Graphviz graph of the machine state to the named file.
func WriteStateGraph(filename string, machine *vm.Machine, result runner.Result) error {
	state := &MachineState{
		Registers: machine.Registers(),
		Quirks:    machine.Quirks(),
		Keys:      machine.Keys(),
		Screen:    machine.Framebuffer(),
		Result:    result,
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating state graph file %s: %w", filename, err)
	}
	memviz.Map(f, state)
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing state graph file %s: %w", filename, err)
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates an output filename with the given
// extension for an input file.
func GenerateOutputFilename(inputFile, extension string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + extension
}

// OutputsForFile returns the options for running a single file of a batch.
// Every requested output gets a name derived from the input file.
func OutputsForFile(opts options.Program, file string) options.Program {
	opts.Input = file
	if opts.Batch == "" {
		return opts
	}

	if opts.Wav != "" {
		opts.Wav = GenerateOutputFilename(file, ".wav")
	}
	if opts.Screen != "" && opts.Screen != "-" {
		opts.Screen = GenerateOutputFilename(file, ".txt")
	}
	if opts.StateGraph != "" {
		opts.StateGraph = GenerateOutputFilename(file, ".dot")
	}
	return opts
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("retrochip8", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
