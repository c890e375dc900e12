// Package cache models an instruction fetch cache in front of CHIP-8
// memory using Akita cache components.
package cache

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// Config holds cache configuration parameters.
type Config struct {
	// Size in bytes
	Size int `json:"size"`
	// Associativity (number of ways)
	Associativity int `json:"associativity"`
	// BlockSize in bytes (cache line size)
	BlockSize int `json:"block_size"`
	// HitLatency in cycles
	HitLatency uint64 `json:"hit_latency"`
	// MissLatency in cycles (includes memory access time)
	MissLatency uint64 `json:"miss_latency"`
}

// DefaultConfig returns a small fetch cache configuration: 256 bytes,
// 2-way, 16-byte lines. A line holds eight instructions.
func DefaultConfig() Config {
	return Config{
		Size:          256,
		Associativity: 2,
		BlockSize:     16,
		HitLatency:    1,
		MissLatency:   8,
	}
}

// AccessResult contains the result of a cache access.
type AccessResult struct {
	// Hit indicates whether the access was a cache hit.
	Hit bool
	// Latency is the number of cycles this access takes.
	Latency uint64
	// Data is the data read, big-endian.
	Data uint64
	// Evicted is true if a valid block was replaced.
	Evicted bool
	// EvictedAddr is the address of the evicted block (if Evicted is true).
	EvictedAddr uint64
}

// Statistics holds cache performance statistics.
type Statistics struct {
	Reads         uint64
	Hits          uint64
	Misses        uint64
	Evictions     uint64
	Invalidations uint64
}

// HitRate returns hits as a fraction of reads.
func (s Statistics) HitRate() float64 {
	if s.Reads == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Reads)
}

// BackingStore interface for the next level in the memory hierarchy.
type BackingStore interface {
	// Read fetches data from the backing store.
	Read(addr uint64, size int) []byte
}

// Cache is a read-only cache using an Akita directory for tag and LRU
// state. Writes go straight to memory; the cache only sees them as
// invalidations.
type Cache struct {
	config Config

	// Akita cache directory for tag/state management
	directory *akitacache.DirectoryImpl

	// Data storage - indexed by (setID * associativity + wayID)
	dataStore [][]byte

	stats   Statistics
	backing BackingStore
}

// New creates a new cache with the given configuration.
func New(config Config, backing BackingStore) *Cache {
	numSets := config.Size / (config.Associativity * config.BlockSize)
	totalBlocks := numSets * config.Associativity

	dataStore := make([][]byte, totalBlocks)
	for i := range dataStore {
		dataStore[i] = make([]byte, config.BlockSize)
	}

	return &Cache{
		config: config,
		directory: akitacache.NewDirectory(
			numSets,
			config.Associativity,
			config.BlockSize,
			akitacache.NewLRUVictimFinder(),
		),
		dataStore: dataStore,
		backing:   backing,
	}
}

// Config returns the cache configuration.
func (c *Cache) Config() Config {
	return c.config
}

// Stats returns cache statistics.
func (c *Cache) Stats() Statistics {
	return c.stats
}

// ResetStats clears cache statistics.
func (c *Cache) ResetStats() {
	c.stats = Statistics{}
}

func (c *Cache) blockIndex(block *akitacache.Block) int {
	return block.SetID*c.config.Associativity + block.WayID
}

func (c *Cache) blockAddr(addr uint64) uint64 {
	return (addr / uint64(c.config.BlockSize)) * uint64(c.config.BlockSize)
}

// Fetch reads the big-endian opcode at addr. It satisfies emu.FetchCache.
func (c *Cache) Fetch(addr uint16) (uint16, uint64) {
	result := c.Read(uint64(addr), 2)
	return uint16(result.Data), result.Latency
}

// Read performs a cache read of size bytes. An access that straddles two
// lines is served line by line and costs the slower of the two.
func (c *Cache) Read(addr uint64, size int) AccessResult {
	c.stats.Reads++

	first := c.blockAddr(addr)
	last := c.blockAddr(addr + uint64(size) - 1)

	if first == last {
		return c.count(c.readLine(addr, size))
	}

	head := int(first + uint64(c.config.BlockSize) - addr)
	r1 := c.readLine(addr, head)
	r2 := c.readLine(last, size-head)

	result := AccessResult{
		Hit:     r1.Hit && r2.Hit,
		Latency: max(r1.Latency, r2.Latency),
		Data:    r1.Data<<(8*uint(size-head)) | r2.Data,
	}
	switch {
	case r2.Evicted:
		result.Evicted, result.EvictedAddr = true, r2.EvictedAddr
	case r1.Evicted:
		result.Evicted, result.EvictedAddr = true, r1.EvictedAddr
	}
	return c.count(result)
}

func (c *Cache) count(result AccessResult) AccessResult {
	if result.Hit {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	return result
}

// readLine reads bytes that lie within a single line.
func (c *Cache) readLine(addr uint64, size int) AccessResult {
	blockAddr := c.blockAddr(addr)
	block := c.directory.Lookup(0, blockAddr)

	if block != nil && block.IsValid {
		c.directory.Visit(block) // Update LRU

		offset := addr - blockAddr
		return AccessResult{
			Hit:     true,
			Latency: c.config.HitLatency,
			Data:    extractData(c.dataStore[c.blockIndex(block)], offset, size),
		}
	}

	return c.handleMiss(addr, size)
}

// handleMiss handles a cache miss by filling a victim line from the
// backing store.
func (c *Cache) handleMiss(addr uint64, size int) AccessResult {
	result := AccessResult{
		Hit:     false,
		Latency: c.config.MissLatency,
	}

	blockAddr := c.blockAddr(addr)

	victim := c.directory.FindVictim(blockAddr)
	if victim == nil {
		return result
	}

	victimData := c.dataStore[c.blockIndex(victim)]

	if victim.IsValid {
		c.stats.Evictions++
		result.Evicted = true
		result.EvictedAddr = victim.Tag
	}

	if c.backing != nil {
		copy(victimData, c.backing.Read(blockAddr, c.config.BlockSize))
	} else {
		clear(victimData)
	}

	victim.Tag = blockAddr
	victim.IsValid = true
	victim.IsDirty = false

	result.Data = extractData(victimData, addr-blockAddr, size)

	c.directory.Visit(victim) // Update LRU

	return result
}

// Invalidate marks the line holding addr as invalid. It satisfies
// emu.FetchCache and is called on every memory write.
func (c *Cache) Invalidate(addr uint16) {
	block := c.directory.Lookup(0, c.blockAddr(uint64(addr)))
	if block != nil && block.IsValid {
		block.IsValid = false
		c.stats.Invalidations++
	}
}

// Reset invalidates all cache lines and clears statistics.
func (c *Cache) Reset() {
	c.directory.Reset()
	c.stats = Statistics{}
}

// extractData reads a big-endian value of the given size from a line.
func extractData(data []byte, offset uint64, size int) uint64 {
	if data == nil || int(offset)+size > len(data) {
		return 0
	}

	var result uint64
	for i := 0; i < size; i++ {
		result = result<<8 | uint64(data[int(offset)+i])
	}
	return result
}
