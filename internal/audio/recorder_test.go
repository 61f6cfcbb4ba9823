package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/retroenv/retrogolib/assert"
)

func TestRecorder(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "sound.wav")

	r, err := NewRecorder(filename)
	assert.NoError(t, err)

	for i := range 6 {
		assert.NoError(t, r.Frame(i < 3))
	}
	assert.Equal(t, 6, r.Frames())
	assert.NoError(t, r.Close())

	f, err := os.Open(filename)
	assert.NoError(t, err)
	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	assert.True(t, dec.IsValidFile())

	buf, err := dec.FullPCMBuffer()
	assert.NoError(t, err)
	assert.Equal(t, uint32(SampleRate), dec.SampleRate)
	assert.Equal(t, uint16(BitDepth), dec.BitDepth)
	assert.Equal(t, uint16(1), dec.NumChans)
	assert.Len(t, buf.Data, 6*samplesPerFrame)

	tone := buf.Data[:3*samplesPerFrame]
	assert.Equal(t, amplitude, tone[0])
	assert.Equal(t, -amplitude, tone[halfPeriod])
	for _, sample := range tone {
		assert.True(t, sample == amplitude || sample == -amplitude)
	}
	for _, sample := range buf.Data[3*samplesPerFrame:] {
		assert.Equal(t, 0, sample)
	}
}

func TestRecorder_Empty(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "empty.wav")

	r, err := NewRecorder(filename)
	assert.NoError(t, err)
	assert.NoError(t, r.Close())
	assert.Equal(t, 1, r.Frames())

	f, err := os.Open(filename)
	assert.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.True(t, wav.NewDecoder(f).IsValidFile())
}

func TestNewRecorder_InvalidPath(t *testing.T) {
	_, err := NewRecorder(filepath.Join(t.TempDir(), "missing", "sound.wav"))
	assert.ErrorContains(t, err, "creating wav file")
}
