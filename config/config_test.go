package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/config"
)

var _ = Describe("Config", func() {
	Describe("Defaults", func() {
		It("should pace at 2ms per cycle", func() {
			c := config.DefaultConfig()
			Expect(c.CycleInterval()).To(Equal(2 * time.Millisecond))
		})

		It("should leave the fetch cache off and be valid", func() {
			c := config.DefaultConfig()
			Expect(c.EnableFetchCache).To(BeFalse())
			Expect(c.MaxInstructions).To(Equal(uint64(0)))
			Expect(c.Validate()).To(Succeed())
		})

		It("should be valid with the fetch cache on", func() {
			c := config.DefaultConfig()
			c.EnableFetchCache = true
			Expect(c.Validate()).To(Succeed())
		})
	})

	Describe("Validate", func() {
		var c *config.Config

		BeforeEach(func() {
			c = config.DefaultConfig()
			c.EnableFetchCache = true
		})

		It("should reject a zero key hold", func() {
			c.KeyHoldPolls = 0
			Expect(c.Validate()).To(MatchError(config.ErrInvalidConfig))
		})

		It("should reject a block size that is not a power of two", func() {
			c.FetchCache.BlockSize = 12
			Expect(c.Validate()).To(MatchError(config.ErrInvalidConfig))
		})

		It("should reject a size that does not divide into sets", func() {
			c.FetchCache.Size = 100
			Expect(c.Validate()).To(MatchError(config.ErrInvalidConfig))
		})

		It("should reject a miss faster than a hit", func() {
			c.FetchCache.MissLatency = 0
			Expect(c.Validate()).To(MatchError(config.ErrInvalidConfig))
		})

		It("should check latencies only when they are enabled", func() {
			c.Latency.ALULatency = 0
			Expect(c.Validate()).To(Succeed())

			c.EnableLatency = true
			Expect(c.Validate()).To(MatchError(config.ErrInvalidConfig))
		})

		It("should ignore cache geometry when the cache is off", func() {
			c.EnableFetchCache = false
			c.FetchCache.Size = 0
			Expect(c.Validate()).To(Succeed())
		})
	})

	Describe("Clone", func() {
		It("should not share state with the original", func() {
			original := config.DefaultConfig()
			clone := original.Clone()
			clone.FetchCache.Size = 1024
			clone.KeyHoldPolls = 3

			Expect(original.FetchCache.Size).To(Equal(256))
			Expect(original.KeyHoldPolls).To(Equal(8))
		})
	})

	Describe("File Operations", func() {
		var tempDir string

		BeforeEach(func() {
			var err error
			tempDir, err = os.MkdirTemp("", "config-test")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			_ = os.RemoveAll(tempDir)
		})

		It("should save and load config", func() {
			original := config.DefaultConfig()
			original.CycleIntervalMicros = 0
			original.EnableFetchCache = true
			original.FetchCache.MissLatency = 20
			original.EnableLatency = true
			original.Latency.ClearLatency = 40

			path := filepath.Join(tempDir, "c8sim.json")
			Expect(original.SaveConfig(path)).To(Succeed())

			loaded, err := config.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(original))
		})

		It("should keep defaults for missing fields", func() {
			path := filepath.Join(tempDir, "partial.json")
			err := os.WriteFile(path, []byte(`{"max_instructions": 500}`), 0644)
			Expect(err).NotTo(HaveOccurred())

			loaded, err := config.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.MaxInstructions).To(Equal(uint64(500)))
			Expect(loaded.CycleIntervalMicros).To(Equal(uint64(2000)))
			Expect(loaded.FetchCache).To(Equal(config.DefaultConfig().FetchCache))
		})

		It("should return error for non-existent file", func() {
			_, err := config.LoadConfig("/nonexistent/path/c8sim.json")
			Expect(err).To(HaveOccurred())
		})

		It("should return error for invalid JSON", func() {
			path := filepath.Join(tempDir, "invalid.json")
			err := os.WriteFile(path, []byte("not valid json"), 0644)
			Expect(err).NotTo(HaveOccurred())

			_, err = config.LoadConfig(path)
			Expect(err).To(HaveOccurred())
		})
	})
})
