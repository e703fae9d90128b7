//go:build !integration

package application_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	capabilities "github.com/orgair/orgair-mcp/internal/server-plugins/capabilities/application"
	playbooks "github.com/orgair/orgair-mcp/internal/server-plugins/playbooks/application"
	"github.com/orgair/orgair-mcp/internal/server-plugins/workflow/application"
	"github.com/orgair/orgair-mcp/internal/server-plugins/workflow/domain"
	"github.com/orgair/orgair-mcp/internal/shared"
)

// failingInvoker delegates to next until it reaches failOn.
type failingInvoker struct {
	next   domain.OperationInvoker
	failOn string
	err    error
	calls  []string
}

func (f *failingInvoker) Invoke(ctx context.Context, name string, args map[string]any) (any, error) {
	f.calls = append(f.calls, name)
	if name == f.failOn {
		return nil, f.err
	}
	return f.next.Invoke(ctx, name, args)
}

// jsonInvoker hands payloads back as generic JSON values, as a remote caller would see them.
type jsonInvoker struct {
	next domain.OperationInvoker
}

func (j jsonInvoker) Invoke(ctx context.Context, name string, args map[string]any) (any, error) {
	payload, err := j.next.Invoke(ctx, name, args)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return generic, nil
}

var decimalHundred = decimal.NewFromInt(100)

var _ = Describe("Orchestrator", func() {
	var (
		ctx     context.Context
		logger  *slog.Logger
		invoker domain.OperationInvoker
		engine  domain.PromptRenderer
		request domain.Request
	)

	expectedScore := func() capabilities.ScoreResult {
		return capabilities.CalculateScore(capabilities.ScoreInput{
			CompanyID:           "ACME-001",
			SectorID:            "technology",
			DimensionScores:     []float64{70, 65, 75, 68, 72, 60, 70},
			TalentConcentration: 0.2,
		})
	}

	expectedEBITDA := func() string {
		score := expectedScore()
		projection := capabilities.ProjectEBITDA(capabilities.EBITDAInput{
			CompanyID:          "ACME-001",
			EntryScore:         score.FinalScore,
			TargetScore:        80,
			HRScore:            score.Components.HRScore,
			HoldingPeriodYears: 3,
		})
		return projection.Scenarios.Base.EBITDAImpactPct.Mul(decimalHundred).StringFixed(2)
	}

	BeforeEach(func() {
		ctx = context.Background()
		logger = slog.New(slog.DiscardHandler)

		dispatcher, err := capabilities.NewDispatcher(logger, nil)
		Expect(err).NotTo(HaveOccurred())
		invoker = application.NewDispatcherInvoker(dispatcher)

		prompts, err := playbooks.NewEngine(logger, nil)
		Expect(err).NotTo(HaveOccurred())
		engine = prompts

		request = domain.Request{CompanyID: "ACME-001", TargetScore: 80, TimelineMonths: 18}
	})

	It("summarizes the company, the current score and the base EBITDA impact", func() {
		result, err := application.NewOrchestrator(invoker, engine, logger).Run(ctx, request)
		Expect(err).NotTo(HaveOccurred())

		Expect(result.Summary).To(ContainSubstring("ACME-001"))
		Expect(result.Summary).To(ContainSubstring(fmt.Sprintf("%.2f", expectedScore().FinalScore)))
		Expect(result.Summary).To(ContainSubstring(expectedEBITDA() + "%"))
		Expect(result.Summary).To(ContainSubstring("$360,000.00"))
		Expect(result.CurrentScore).To(Equal(expectedScore().FinalScore))
		Expect(result.HRScore).To(Equal(expectedScore().Components.HRScore))
	})

	It("records the steps in their fixed order", func() {
		result, err := application.NewOrchestrator(invoker, engine, logger).Run(ctx, request)
		Expect(err).NotTo(HaveOccurred())

		targets := []string{}
		for i, step := range result.Steps {
			Expect(step.Index).To(Equal(i + 1))
			targets = append(targets, string(step.Kind)+":"+step.Target)
		}
		Expect(targets).To(Equal([]string{
			"prompt:value_creation_plan",
			"operation:calculate_score",
			"operation:get_evidence",
			"operation:analyze_whatif",
			"operation:project_ebitda_impact",
			"summary:",
		}))
		Expect(result.Steps[0].Output).To(ContainSubstring("within 18 months"))
	})

	It("decodes payloads that arrive as generic JSON", func() {
		direct, err := application.NewOrchestrator(invoker, engine, logger).Run(ctx, request)
		Expect(err).NotTo(HaveOccurred())

		remote, err := application.NewOrchestrator(jsonInvoker{next: invoker}, engine, logger).Run(ctx, request)
		Expect(err).NotTo(HaveOccurred())
		Expect(remote.Summary).To(Equal(direct.Summary))
		Expect(remote.BaseEBITDAImpact.Equal(direct.BaseEBITDAImpact)).To(BeTrue())
	})

	It("aborts on the first failing operation and returns its error unchanged", func() {
		cause := shared.NewError(shared.KindInvalidArgument, "evidence store offline")
		failing := &failingInvoker{next: invoker, failOn: capabilities.OpGetEvidence, err: cause}

		result, err := application.NewOrchestrator(failing, engine, logger).Run(ctx, request)
		Expect(err).To(BeIdenticalTo(cause))
		Expect(failing.calls).To(Equal([]string{capabilities.OpCalculateScore, capabilities.OpGetEvidence}))
		Expect(result.Steps).To(HaveLen(2))
		Expect(result.Summary).To(BeEmpty())
	})

	It("surfaces template failures before any operation runs", func() {
		failing := &failingInvoker{next: invoker}
		request.CompanyID = ""

		_, err := application.NewOrchestrator(failing, engine, logger).Run(ctx, request)
		Expect(shared.IsKind(err, shared.KindMissingRequiredArgument)).To(BeTrue())
		Expect(failing.calls).To(BeEmpty())
	})

	It("surfaces dispatcher rejections with their kind", func() {
		request.TargetScore = 150

		_, err := application.NewOrchestrator(invoker, engine, logger).Run(ctx, request)
		Expect(shared.IsKind(err, shared.KindInvalidArgument)).To(BeTrue())
		Expect(err.(*shared.Error).Fields).To(Equal([]string{"target_score"}))
	})
})
