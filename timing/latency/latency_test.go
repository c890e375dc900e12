package latency_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/insts"
	"github.com/sarchlab/c8sim/timing/latency"
)

var _ = Describe("Latency", func() {
	var (
		table   *latency.Table
		decoder *insts.Decoder
	)

	BeforeEach(func() {
		table = latency.NewTable()
		decoder = insts.NewDecoder()
	})

	Describe("Default Timing Values", func() {
		It("should have correct ALU latency", func() {
			Expect(table.Config().ALULatency).To(Equal(uint64(1)))
		})

		It("should have correct call latency", func() {
			Expect(table.Config().CallLatency).To(Equal(uint64(2)))
		})

		It("should be valid", func() {
			Expect(table.Config().Validate()).To(Succeed())
		})
	})

	DescribeTable("GetLatency",
		func(word uint16, want uint64) {
			Expect(table.GetLatency(decoder.Decode(word))).To(Equal(want))
		},
		Entry("LD Vx, nn", uint16(0x6005), uint64(1)),
		Entry("ADD Vx, Vy", uint16(0x8014), uint64(1)),
		Entry("SHL", uint16(0x810E), uint64(1)),
		Entry("LD I", uint16(0xA300), uint64(1)),
		Entry("JP", uint16(0x1200), uint64(1)),
		Entry("SKP", uint16(0xE09E), uint64(1)),
		Entry("CALL", uint16(0x2300), uint64(2)),
		Entry("RET", uint16(0x00EE), uint64(2)),
		Entry("LD B", uint16(0xF033), uint64(3)),
		Entry("store of V0-V4", uint16(0xF555), uint64(5)),
		Entry("store of nothing", uint16(0xF055), uint64(0)),
		Entry("restore of V0-V5", uint16(0xF565), uint64(6)),
		Entry("DRW of 5 rows", uint16(0xD125), uint64(11)),
		Entry("DRW of 0 rows", uint16(0xD120), uint64(1)),
		Entry("CLS", uint16(0x00E0), uint64(8)),
		Entry("LD Vx, K", uint16(0xF00A), uint64(1)),
		Entry("RND", uint16(0xC0FF), uint64(1)),
		Entry("unknown", uint16(0xFFFF), uint64(1)),
	)

	It("should return 1 for a nil instruction", func() {
		Expect(table.GetLatency(nil)).To(Equal(uint64(1)))
	})

	Describe("Custom Configuration", func() {
		It("should scale draws with the row latency", func() {
			config := latency.DefaultTimingConfig()
			config.DrawRowLatency = 10
			table = latency.NewTableWithConfig(config)

			Expect(table.GetLatency(decoder.Decode(0xD013))).To(Equal(uint64(31)))
		})
	})

	Describe("Classification", func() {
		It("should classify memory ops", func() {
			Expect(table.IsMemoryOp(decoder.Decode(0xF065))).To(BeTrue())
			Expect(table.IsMemoryOp(decoder.Decode(0xD011))).To(BeTrue())
			Expect(table.IsMemoryOp(decoder.Decode(0x6000))).To(BeFalse())
			Expect(table.IsMemoryOp(nil)).To(BeFalse())
		})

		It("should classify store ops", func() {
			Expect(table.IsStoreOp(decoder.Decode(0xF055))).To(BeTrue())
			Expect(table.IsStoreOp(decoder.Decode(0xF033))).To(BeTrue())
			Expect(table.IsStoreOp(decoder.Decode(0xF065))).To(BeFalse())
		})

		It("should classify branch ops", func() {
			Expect(table.IsBranchOp(decoder.Decode(0x2200))).To(BeTrue())
			Expect(table.IsBranchOp(decoder.Decode(0x3000))).To(BeTrue())
			Expect(table.IsBranchOp(decoder.Decode(0xB200))).To(BeTrue())
			Expect(table.IsBranchOp(decoder.Decode(0x7001))).To(BeFalse())
		})

		It("should record an instruction mix", func() {
			var mix latency.Mix
			for _, word := range []uint16{0x1200, 0xF155, 0xF033, 0xF265, 0x6001} {
				table.Record(&mix, decoder.Decode(word))
			}
			table.Record(&mix, nil)

			Expect(mix).To(Equal(latency.Mix{Branches: 1, MemoryOps: 3, Stores: 2}))
		})
	})

	Describe("Validation", func() {
		It("should reject a zero ALU latency", func() {
			config := latency.DefaultTimingConfig()
			config.ALULatency = 0
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should allow free draw rows", func() {
			config := latency.DefaultTimingConfig()
			config.DrawRowLatency = 0
			Expect(config.Validate()).To(Succeed())
		})
	})

	Describe("Clone", func() {
		It("should not share state with the original", func() {
			original := latency.DefaultTimingConfig()
			clone := original.Clone()
			clone.ClearLatency = 99

			Expect(original.ClearLatency).To(Equal(uint64(8)))
		})
	})

	Describe("File Operations", func() {
		var tempDir string

		BeforeEach(func() {
			var err error
			tempDir, err = os.MkdirTemp("", "latency-test")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			_ = os.RemoveAll(tempDir)
		})

		It("should save and load config", func() {
			original := latency.DefaultTimingConfig()
			original.ALULatency = 5
			original.DrawRowLatency = 10

			path := filepath.Join(tempDir, "timing.json")
			Expect(original.SaveConfig(path)).To(Succeed())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.ALULatency).To(Equal(uint64(5)))
			Expect(loaded.DrawRowLatency).To(Equal(uint64(10)))
		})

		It("should return error for non-existent file", func() {
			_, err := latency.LoadConfig("/nonexistent/path/timing.json")
			Expect(err).To(HaveOccurred())
		})

		It("should return error for invalid JSON", func() {
			path := filepath.Join(tempDir, "invalid.json")
			err := os.WriteFile(path, []byte("not valid json"), 0644)
			Expect(err).NotTo(HaveOccurred())

			_, err = latency.LoadConfig(path)
			Expect(err).To(HaveOccurred())
		})
	})
})
