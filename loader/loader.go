// Package loader reads CHIP-8 program images.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/c8sim/emu"
)

// ErrProgramTooLarge is returned for images that do not fit above
// emu.ProgramStart.
var ErrProgramTooLarge = errors.New("program too large")

// Program is a raw program image ready to be copied to emu.ProgramStart.
type Program struct {
	// Path is the file the image was read from, if any.
	Path string
	// Data is the image, loaded byte for byte.
	Data []byte
}

// Size returns the image size in bytes.
func (p *Program) Size() int {
	return len(p.Data)
}

// Load reads the program image at path.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open program file: %w", err)
	}
	defer func() { _ = f.Close() }()

	prog, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	prog.Path = path

	return prog, nil
}

// Read reads a whole program image from r.
func Read(r io.Reader) (*Program, error) {
	// One byte past the limit is enough to tell an oversized image apart.
	data, err := io.ReadAll(io.LimitReader(r, emu.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}

	if len(data) > emu.MaxProgramSize {
		return nil, fmt.Errorf("image exceeds %d bytes: %w",
			emu.MaxProgramSize, ErrProgramTooLarge)
	}

	return &Program{Data: data}, nil
}
