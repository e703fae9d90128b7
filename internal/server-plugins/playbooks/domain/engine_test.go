//go:build !integration

package domain_test

import (
	"context"
	"log/slog"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/orgair/orgair-mcp/internal/server-plugins/playbooks/domain"
	"github.com/orgair/orgair-mcp/internal/shared"
)

var _ = Describe("Engine", func() {
	var (
		ctx    context.Context
		engine *domain.Engine
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		engine, err = domain.NewEngine([]domain.PromptSpec{
			{
				Name:        "greet",
				Description: "Greets someone",
				Arguments: []domain.ArgumentSpec{
					{Name: "who", Required: true},
					{Name: "tone"},
				},
				Body: "Hello {{ .who }} ({{ .tone }})",
			},
			{
				Name:      "shout",
				Arguments: []domain.ArgumentSpec{{Name: "word", Required: true}},
				Body:      "{{ .word }}!",
				Prepare: func(args map[string]string) map[string]string {
					args["word"] = strings.ToUpper(args["word"])
					return args
				},
			},
		}, slog.New(slog.DiscardHandler), nil)
		Expect(err).NotTo(HaveOccurred())
	})

	It("lists specs in registration order", func() {
		names := []string{}
		for _, spec := range engine.List() {
			names = append(names, spec.Name)
		}
		Expect(names).To(Equal([]string{"greet", "shout"}))

		spec, ok := engine.Lookup("greet")
		Expect(ok).To(BeTrue())
		Expect(spec.Description).To(Equal("Greets someone"))
		_, ok = engine.Lookup("wave")
		Expect(ok).To(BeFalse())
	})

	It("trims values and fills optional ones with the placeholder", func() {
		text, err := engine.Render(ctx, "greet", map[string]string{"who": "  Ada "})
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("Hello Ada (" + domain.Placeholder + ")"))
	})

	It("applies the prepare hook before rendering", func() {
		text, err := engine.Render(ctx, "shout", map[string]string{"word": "go"})
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("GO!"))
	})

	It("reports the missing argument by name", func() {
		_, err := engine.Render(ctx, "greet", map[string]string{"tone": "warm"})
		Expect(err).To(MatchError(shared.ErrMissingRequiredArgument))
		Expect(err.(*shared.Error).Fields).To(Equal([]string{"who"}))
	})

	It("fails for unknown names", func() {
		_, err := engine.Render(ctx, "wave", nil)
		Expect(shared.IsKind(err, shared.KindUnknownTemplate)).To(BeTrue())
	})
})
