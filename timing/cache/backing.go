package cache

import (
	"github.com/sarchlab/c8sim/emu"
)

// MemoryBacking wraps emu.Memory as a BackingStore.
type MemoryBacking struct {
	memory *emu.Memory
}

// NewMemoryBacking creates a new MemoryBacking adapter.
func NewMemoryBacking(memory *emu.Memory) *MemoryBacking {
	return &MemoryBacking{memory: memory}
}

// Read fetches data from the backing memory. Bytes past the end of the
// address space read as zero.
func (m *MemoryBacking) Read(addr uint64, size int) []byte {
	data := make([]byte, size)
	for i := 0; i < size; i++ {
		a := addr + uint64(i)
		if a >= emu.MemorySize {
			break
		}
		data[i] = m.memory.Read8(uint16(a))
	}
	return data
}
