// Package audio records the interpreter sound timer as a WAV file.
package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Output format of the recorded tone.
const (
	SampleRate = 44100
	FrameRate  = 60
	ToneHz     = 440
	BitDepth   = 16

	samplesPerFrame = SampleRate / FrameRate
	halfPeriod      = SampleRate / (2 * ToneHz)
	amplitude       = 0x2000
	wavFormatPCM    = 1
)

// Recorder writes a square wave tone for every frame in which the sound
// timer is active and silence for all other frames.
type Recorder struct {
	filename string
	file     *os.File
	enc      *wav.Encoder
	buf      *audio.IntBuffer
	phase    int
	frames   int
}

// NewRecorder creates the WAV file and returns a recorder writing to it.
func NewRecorder(filename string) (*Recorder, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("creating wav file %s: %w", filename, err)
	}

	r := &Recorder{
		filename: filename,
		file:     file,
		enc:      wav.NewEncoder(file, SampleRate, BitDepth, 1, wavFormatPCM),
		buf: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: 1,
				SampleRate:  SampleRate,
			},
			Data:           make([]int, samplesPerFrame),
			SourceBitDepth: BitDepth,
		},
	}
	return r, nil
}

// Frame records one 60 Hz frame of output.
func (r *Recorder) Frame(active bool) error {
	for i := range r.buf.Data {
		switch {
		case !active:
			r.buf.Data[i] = 0
		case (r.phase/halfPeriod)%2 == 0:
			r.buf.Data[i] = amplitude
		default:
			r.buf.Data[i] = -amplitude
		}
		r.phase++
	}

	if err := r.enc.Write(r.buf); err != nil {
		return fmt.Errorf("writing wav frame: %w", err)
	}
	r.frames++
	return nil
}

// Frames returns the number of recorded frames.
func (r *Recorder) Frames() int {
	return r.frames
}

// Close finalizes the WAV header and closes the file.
// A recording without frames gets a single silent frame so that the file
// always carries a complete header.
func (r *Recorder) Close() error {
	if r.frames == 0 {
		if err := r.Frame(false); err != nil {
			_ = r.file.Close()
			return err
		}
	}

	encErr := r.enc.Close()
	fileErr := r.file.Close()
	if encErr != nil {
		return fmt.Errorf("finalizing wav file %s: %w", r.filename, encErr)
	}
	if fileErr != nil {
		return fmt.Errorf("closing wav file %s: %w", r.filename, fileErr)
	}
	return nil
}
