package insts

import (
	"fmt"
	"io"
)

// Disassemble writes one line per complete instruction word in image,
// addressed from base. A trailing odd byte is ignored.
func Disassemble(w io.Writer, image []byte, base uint16) error {
	decoder := NewDecoder()

	for off := 0; off+Size <= len(image); off += Size {
		word := Word(image[off], image[off+1])
		inst := decoder.Decode(word)

		_, err := fmt.Fprintf(w, "%03X  %04X  %s\n", int(base)+off, word, inst)
		if err != nil {
			return err
		}
	}

	return nil
}
