// Package loader handles ROM file loading operations.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
)

// ErrEmptyProgram is returned for ROM files without any content.
var ErrEmptyProgram = errors.New("empty program")

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the ROM file named by path and returns the raw program image.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return l.LoadFromReader(file)
}

// LoadFromBytes returns the program image contained in data.
func (l *Loader) LoadFromBytes(data []byte) ([]byte, error) {
	return l.LoadFromReader(bytes.NewReader(data))
}

// LoadFromReader reads a raw program image from reader.
// The image is checked against the interpreter memory limit before it is
// handed to the machine.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	counter := &countingReader{reader: io.LimitReader(reader, vm.MaxProgramSize+1)}

	cart, err := cartridge.LoadBuffer(counter)
	switch {
	case counter.read > vm.MaxProgramSize:
		return nil, fmt.Errorf("%w: more than %d bytes", vm.ErrProgramTooLarge, vm.MaxProgramSize)
	case err != nil && counter.read == 0 && !counter.failed:
		return nil, ErrEmptyProgram
	case err != nil:
		return nil, fmt.Errorf("loading cartridge: %w", err)
	case counter.read == 0:
		return nil, ErrEmptyProgram
	}

	// the raw buffer loader pads the image to a full bank, cut it back to
	// the size that was read
	if len(cart.PRG) < counter.read {
		return nil, fmt.Errorf("loading cartridge: image truncated to %d bytes", len(cart.PRG))
	}
	image := make([]byte, counter.read)
	copy(image, cart.PRG)
	return image, nil
}

// countingReader counts the bytes read from the wrapped reader.
type countingReader struct {
	reader io.Reader
	read   int
	failed bool
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	c.read += n
	if err != nil && !errors.Is(err, io.EOF) {
		c.failed = true
	}
	return n, err
}
