// Package detector handles system architecture detection.
package detector

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Detector handles system architecture detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the system architecture from options or file auto-detection
// and returns an error for systems that the interpreter can not run.
func (d *Detector) Detect(opts options.Program) (arch.System, error) {
	if opts.System != "" {
		system, ok := arch.SystemFromString(opts.System)
		if !ok || system == "" {
			return "", fmt.Errorf("unsupported system '%s'", opts.System)
		}
		return d.check(system, opts.Input)
	}

	system := d.detectFromFile(opts.Input)
	d.logger.Debug("Auto-detected system",
		log.Stringer("system", system),
		log.String("file", opts.Input))
	return d.check(system, opts.Input)
}

// check returns an error for systems that the interpreter can not run.
func (d *Detector) check(system arch.System, input string) (arch.System, error) {
	if system != arch.CHIP8System {
		return system, fmt.Errorf("unsupported system '%s' for file %s", system, input)
	}
	return system, nil
}

// detectFromFile determines the system type based on file extension.
func (d *Detector) detectFromFile(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".nes":
		return arch.NES
	default:
		// .ch8, .c8, .rom and files without a known extension are run as CHIP-8
		return arch.CHIP8System
	}
}
