// Package loader reads LC-3 program images: a flat, big-endian stream
// of 16-bit words whose first word is the load origin.
package loader

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/dputtick/lc3-vm/vm"
)

// MaxWords is the largest image body the address space can hold after
// the origin word itself.
const MaxWords = 1<<16 - 1

// Image is a program ready for loading into a VM's memory: Words[i]
// belongs at mem[Origin+i], wrapping at 2^16.
type Image struct {
	// Origin is the address the first word of Words loads at.
	Origin uint16
	// Words is the program body, in load order.
	Words []uint16
}

// Load reads a big-endian word stream from r: the first word is the
// origin, every subsequent word is program body.
func Load(r io.Reader) (*Image, error) {
	var originBuf [2]byte
	if _, err := io.ReadFull(r, originBuf[:]); err != nil {
		return nil, fmt.Errorf("loader: read origin: %w", err)
	}

	img := &Image{Origin: binary.BigEndian.Uint16(originBuf[:])}

	var wordBuf [2]byte
	for {
		_, err := io.ReadFull(r, wordBuf[:])
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("loader: odd-length image: trailing byte after word %d", len(img.Words))
		}
		if err != nil {
			return nil, fmt.Errorf("loader: read word %d: %w", len(img.Words), err)
		}
		if len(img.Words) >= MaxWords {
			return nil, fmt.Errorf("loader: image exceeds %d words", MaxWords)
		}
		img.Words = append(img.Words, binary.BigEndian.Uint16(wordBuf[:]))
	}

	return img, nil
}

// LoadInto copies img's body into mem starting at img.Origin, wrapping
// addresses at 2^16.
func (img *Image) LoadInto(mem *vm.Memory) {
	mem.LoadImage(img.Origin, img.Words)
}
