package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = append([]string{"prog"}, args...)
}

func TestParseFlags_Defaults(t *testing.T) {
	setArgs(t, "game.ch8")

	opts, runnerOpts, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "game.ch8", opts.Input)
	assert.Equal(t, options.DefaultQuirks, opts.Quirks)
	assert.False(t, opts.HasSeed)

	assert.Equal(t, options.DefaultCPUHz, runnerOpts.CPUHz)
	assert.Equal(t, 60, runnerOpts.TimerHz)
	assert.Equal(t, uint64(0), runnerOpts.Cycles)
	assert.Equal(t, options.UnknownHalt, runnerOpts.Unknown)
	assert.Empty(t, runnerOpts.Keys)
	assert.False(t, runnerOpts.Breakpoints.Contains(0x200))
}

func TestParseFlags_RunnerOptions(t *testing.T) {
	setArgs(t,
		"-hz", "500",
		"-cycles", "1000",
		"-seed", "0",
		"-quirks", "COSMAC",
		"-unknown", "log",
		"-keys", "160:5:up,100:5:down",
		"-break", "0x2a0,$300",
		"-realtime",
		"-stop-on-loop",
		"-trace",
		"game.ch8",
	)

	opts, runnerOpts, err := ParseFlags()
	assert.NoError(t, err)
	assert.True(t, opts.HasSeed)
	assert.Equal(t, uint64(0), opts.Seed)
	assert.Equal(t, "cosmac", opts.Quirks)

	assert.Equal(t, 500, runnerOpts.CPUHz)
	assert.Equal(t, uint64(1000), runnerOpts.Cycles)
	assert.Equal(t, options.UnknownLog, runnerOpts.Unknown)
	assert.True(t, runnerOpts.Realtime)
	assert.True(t, runnerOpts.StopOnLoop)
	assert.True(t, runnerOpts.Trace)
	assert.Equal(t, []options.KeyEvent{
		{Cycle: 100, Key: 5, Pressed: true},
		{Cycle: 160, Key: 5, Pressed: false},
	}, runnerOpts.Keys)
	assert.True(t, runnerOpts.Breakpoints.Contains(0x2A0))
	assert.True(t, runnerOpts.Breakpoints.Contains(0x300))
	assert.False(t, runnerOpts.Breakpoints.Contains(0x200))
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "unknown quirks", args: []string{"-quirks", "xochip", "game.ch8"}, wantMsg: "unsupported quirk profile"},
		{name: "unknown policy", args: []string{"-unknown", "ignore", "game.ch8"}, wantMsg: "unsupported unknown opcode policy"},
		{name: "zero rate", args: []string{"-hz", "0", "game.ch8"}, wantMsg: "invalid instruction rate"},
		{name: "bad key script", args: []string{"-keys", "10:G:down", "game.ch8"}, wantMsg: "invalid key"},
		{name: "bad breakpoint", args: []string{"-break", "0x1000", "game.ch8"}, wantMsg: "invalid breakpoint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			_, _, err := ParseFlags()
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}
}

func TestParseFlags_Usage(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		setArgs(t)

		_, _, err := ParseFlags()
		var usageErr *UsageError
		assert.True(t, errors.As(err, &usageErr))
	})

	t.Run("flag after file", func(t *testing.T) {
		setArgs(t, "game.ch8", "-debug")

		_, _, err := ParseFlags()
		var usageErr *UsageError
		assert.True(t, errors.As(err, &usageErr))
		assert.ErrorContains(t, err, "-debug")
	})

	t.Run("input flag", func(t *testing.T) {
		setArgs(t, "-i", "game.ch8")

		opts, _, err := ParseFlags()
		assert.NoError(t, err)
		assert.Equal(t, "game.ch8", opts.Input)
	})

	t.Run("input flag and argument", func(t *testing.T) {
		setArgs(t, "-i", "game.ch8", "other.ch8")

		_, _, err := ParseFlags()
		var usageErr *UsageError
		assert.True(t, errors.As(err, &usageErr))
		assert.ErrorContains(t, err, "other.ch8")
	})

	t.Run("unknown system", func(t *testing.T) {
		setArgs(t, "-s", "foo", "game.ch8")

		_, _, err := ParseFlags()
		var usageErr *UsageError
		assert.True(t, errors.As(err, &usageErr))
		assert.ErrorContains(t, err, "unsupported system 'foo'")
	})

	t.Run("batch without file", func(t *testing.T) {
		setArgs(t, "-batch", "*.ch8")

		opts, _, err := ParseFlags()
		assert.NoError(t, err)
		assert.Equal(t, "*.ch8", opts.Batch)
		assert.Equal(t, "", opts.Input)
	})
}

func TestParseKeyScript(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		want    []options.KeyEvent
		wantErr bool
	}{
		{name: "empty", script: ""},
		{
			name:   "hex key",
			script: "0:f:down",
			want:   []options.KeyEvent{{Cycle: 0, Key: 0xF, Pressed: true}},
		},
		{
			name:   "sorted by cycle",
			script: "20:1:up, 10:1:DOWN",
			want: []options.KeyEvent{
				{Cycle: 10, Key: 1, Pressed: true},
				{Cycle: 20, Key: 1, Pressed: false},
			},
		},
		{name: "missing state", script: "10:1", wantErr: true},
		{name: "bad cycle", script: "x:1:down", wantErr: true},
		{name: "key out of range", script: "1:10:down", wantErr: true},
		{name: "bad state", script: "1:1:hold", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKeyScript(tt.script)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBreakpoints(t *testing.T) {
	tests := []struct {
		name    string
		list    string
		want    []uint16
		wantErr bool
	}{
		{name: "empty", list: ""},
		{name: "prefixes", list: "0x200, $2A0,ffe", want: []uint16{0x200, 0x2A0, 0xFFE}},
		{name: "out of memory", list: "1000", wantErr: true},
		{name: "not hex", list: "0xZZ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBreakpoints(tt.list)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
