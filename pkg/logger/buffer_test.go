//go:build !integration

package logger_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/orgair/orgair-mcp/pkg/config"
	"github.com/orgair/orgair-mcp/pkg/logger"
)

var _ = Describe("RingBuffer", func() {
	It("keeps only the newest lines once full", func() {
		buffer := logger.NewRingBuffer(3)
		for _, line := range []string{"a", "b", "c", "d", "e"} {
			buffer.Append(line)
		}
		Expect(buffer.Len()).To(Equal(3))
		Expect(buffer.Last(0)).To(Equal([]string{"c", "d", "e"}))
		Expect(buffer.Last(2)).To(Equal([]string{"d", "e"}))
		Expect(buffer.Last(10)).To(Equal([]string{"c", "d", "e"}))
	})

	It("returns an empty slice when nothing was logged", func() {
		buffer := logger.NewRingBuffer(0)
		Expect(buffer.Capacity()).To(Equal(logger.DefaultBufferLines))
		Expect(buffer.Last(5)).To(BeEmpty())
	})
})

var _ = Describe("New", func() {
	It("mirrors records, bound attributes and groups into the buffer", func() {
		cfg := config.DefaultConfig()
		cfg.LogFormat = "text"
		var out bytes.Buffer
		buffer := logger.NewRingBuffer(10)

		log := logger.New(cfg, &out, buffer).With("component", "dispatcher")
		log.WithGroup("call").Info("operation invoked", "operation", "calculate_score")
		log.Debug("hidden below the configured level")

		lines := buffer.Last(0)
		Expect(lines).To(HaveLen(1))
		Expect(lines[0]).To(ContainSubstring("INFO operation invoked component=dispatcher call.operation=calculate_score"))
		Expect(out.String()).To(ContainSubstring("operation=calculate_score"))
	})

	It("maps level names", func() {
		Expect(logger.ParseLevel("debug").String()).To(Equal("DEBUG"))
		Expect(logger.ParseLevel("bogus").String()).To(Equal("INFO"))
	})
})
