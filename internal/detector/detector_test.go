package detector

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDetect(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name       string
		systemOpt  string
		inputFile  string
		wantSystem arch.System
		wantErr    bool
	}{
		{
			name:       "explicit CHIP8 system option",
			systemOpt:  "chip8",
			inputFile:  "game.bin",
			wantSystem: arch.CHIP8System,
		},
		{
			name:       "explicit NES system option is rejected",
			systemOpt:  "nes",
			inputFile:  "game.ch8",
			wantSystem: arch.NES,
			wantErr:    true,
		},
		{
			name:      "unknown system option",
			systemOpt: "foo",
			inputFile: "game.ch8",
			wantErr:   true,
		},
		{
			name:       "detect from .ch8 extension",
			inputFile:  "game.ch8",
			wantSystem: arch.CHIP8System,
		},
		{
			name:       "detect from .rom extension",
			inputFile:  "GAME.ROM",
			wantSystem: arch.CHIP8System,
		},
		{
			name:       "unknown extension defaults to CHIP8",
			inputFile:  "game.bin",
			wantSystem: arch.CHIP8System,
		},
		{
			name:       "NES ROM is rejected",
			inputFile:  "game.nes",
			wantSystem: arch.NES,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.Program{
				Parameters: options.Parameters{Input: tt.inputFile},
				Flags:      options.Flags{System: tt.systemOpt},
			}

			got, err := d.Detect(opts)
			assert.Equal(t, tt.wantSystem, got)
			if tt.wantErr {
				assert.ErrorContains(t, err, "unsupported system")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
