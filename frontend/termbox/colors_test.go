package termbox_test

import (
	tb "github.com/nsf/termbox-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/frontend/termbox"
)

var _ = Describe("ParseColor", func() {
	DescribeTable("known names",
		func(name string, want tb.Attribute) {
			c, err := termbox.ParseColor(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(c).To(Equal(want))
		},
		Entry("default", "default", tb.ColorDefault),
		Entry("green", "green", tb.ColorGreen),
		Entry("upper case", "WHITE", tb.ColorWhite),
	)

	It("should reject unknown names", func() {
		_, err := termbox.ParseColor("amber")
		Expect(err).To(MatchError(termbox.ErrUnknownColor))
	})
})
