package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aura-blueprint/aura/internal/blueprint/analysis"
	"github.com/aura-blueprint/aura/internal/blueprint/domain"
	"github.com/aura-blueprint/aura/internal/llm"
)

// AnalyzeService turns an idea into a validated blueprint candidate through
// an LLM provider.
type AnalyzeService struct {
	completer llm.Completer
	timeout   time.Duration
}

func NewAnalyzeService(completer llm.Completer) *AnalyzeService {
	return &AnalyzeService{completer: completer, timeout: AnalyzeTimeout}
}

// Analyze validates idea, runs the completion and parses the model output.
// Every returned error is a *domain.Error.
func (s *AnalyzeService) Analyze(ctx context.Context, idea string) (bp *domain.Blueprint, err error) {
	logger := NewLogger(ctx)
	defer func() { recordOutcome("analyze", err) }()

	idea, err = analysis.ValidateIdea(idea)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	logger.LogInfof("analyze", "analyzing idea chars=%d provider=%s", len(idea), s.completer.Provider())
	start := time.Now()
	content, err := s.completer.Complete(ctx, analysis.SystemPrompt, []llm.Message{
		{Role: llm.RoleUser, Content: analysis.UserPrompt(idea)},
	})
	recordUpstreamCall(s.completer.Provider(), "analyze", time.Since(start), err)
	if err != nil {
		err = classifyUpstream(err)
		logger.LogError("analyze", err)
		return nil, err
	}

	bp, err = analysis.Parse(content, idea)
	if err != nil {
		logger.LogError("analyze", err)
		return nil, err
	}
	logger.LogInfof("analyze", "blueprint parsed title=%q type=%s phases=%d", bp.Title, bp.ProjectType, len(bp.WorkflowPhases()))
	return bp, nil
}

// classifyUpstream maps provider failures onto the endpoint error contract.
func classifyUpstream(err error) error {
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		return domain.NewError(domain.KindMisconfiguredClient, err)
	case errors.Is(err, llm.ErrEmptyCompletion):
		return domain.Errorf(domain.KindServiceUnavailable, "No response from AI", err)
	}
	switch llm.StatusCode(err) {
	case 0:
		return domain.NewError(domain.KindServiceUnavailable, err)
	case http.StatusTooManyRequests:
		return domain.NewError(domain.KindRateLimited, err)
	case http.StatusPaymentRequired:
		return domain.NewError(domain.KindQuotaExhausted, err)
	default:
		return domain.Errorf(domain.KindServiceUnavailable, "AI analysis failed", fmt.Errorf("upstream: %w", err))
	}
}
