// Package config handles application configuration and setup
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// quirkProfiles maps profile names to interpreter quirks.
var quirkProfiles = map[string]vm.Quirks{
	"chip8": {},
	"cosmac": {
		ShiftUsesVy:          true,
		LoadStoreIncrementsI: true,
		VFReset:              true,
	},
	"schip": {
		JumpUsesVx: true,
		SysNoop:    true,
	},
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Quirks returns the interpreter quirks of a named profile.
func Quirks(profile string) (vm.Quirks, error) {
	q, ok := quirkProfiles[strings.ToLower(profile)]
	if !ok {
		return vm.Quirks{}, fmt.Errorf("unsupported quirk profile '%s'. Valid options: %s",
			profile, strings.Join(QuirkProfiles(), ", "))
	}
	return q, nil
}

// QuirkProfiles returns the sorted names of all quirk profiles.
func QuirkProfiles() []string {
	names := make([]string, 0, len(quirkProfiles))
	for name := range quirkProfiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
