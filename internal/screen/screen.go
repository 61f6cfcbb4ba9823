// Package screen renders the interpreter framebuffer as text and computes
// a digest of its content for regression comparisons.
package screen

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/vm"
)

// Characters used for lit and unlit pixels.
const (
	On  = '#'
	Off = '.'
)

// Dump returns the framebuffer as one text line per pixel row.
func Dump(fb vm.Framebuffer) string {
	var sb strings.Builder
	sb.Grow((vm.Width + 1) * vm.Height)

	for y := range vm.Height {
		for x := range vm.Width {
			if fb.Pixel(x, y) {
				sb.WriteByte(On)
			} else {
				sb.WriteByte(Off)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Digest returns the hex encoded SHA1 of the framebuffer rows.
// The use of sha1 is fine here as this is not a cryptographic task.
func Digest(fb vm.Framebuffer) string {
	var data [vm.Height * 8]byte
	for y, row := range fb {
		binary.BigEndian.PutUint64(data[y*8:], row)
	}
	return fmt.Sprintf("%x", sha1.Sum(data[:]))
}

// Write writes the text dump and digest of the framebuffer to writer.
func Write(writer io.Writer, fb vm.Framebuffer) error {
	if _, err := io.WriteString(writer, Dump(fb)); err != nil {
		return fmt.Errorf("writing screen: %w", err)
	}
	if _, err := fmt.Fprintf(writer, "sha1: %s\n", Digest(fb)); err != nil {
		return fmt.Errorf("writing screen digest: %w", err)
	}
	return nil
}

// WriteFile writes the screen to the named file, "-" writes to stdout.
func WriteFile(filename string, fb vm.Framebuffer) error {
	if filename == "-" {
		return Write(os.Stdout, fb)
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating screen file %s: %w", filename, err)
	}
	if err := Write(f, fb); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing screen file %s: %w", filename, err)
	}
	return nil
}
