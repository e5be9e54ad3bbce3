package service

import (
	"context"
	"strings"
	"time"

	"github.com/aura-blueprint/aura/internal/blueprint/analysis"
	"github.com/aura-blueprint/aura/internal/blueprint/domain"
	"github.com/aura-blueprint/aura/internal/llm"
)

// ChatRequest is one question about one blueprint section. History holds the
// prior turns of the same conversation; the service keeps no state.
type ChatRequest struct {
	Question       string        `json:"question"`
	SectionName    string        `json:"sectionName"`
	SectionContext string        `json:"sectionContext"`
	History        []llm.Message `json:"history"`
}

type ChatService struct {
	completer llm.Completer
	timeout   time.Duration
}

func NewChatService(completer llm.Completer) *ChatService {
	return &ChatService{completer: completer, timeout: ChatTimeout}
}

// Ask answers req.Question grounded in the section context.
func (s *ChatService) Ask(ctx context.Context, req ChatRequest) (answer string, err error) {
	logger := NewLogger(ctx)
	defer func() { recordOutcome("chat", err) }()

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return "", domain.Errorf(domain.KindInvalidInput, "Question is required", nil)
	}
	if strings.TrimSpace(req.SectionName) == "" {
		return "", domain.Errorf(domain.KindInvalidInput, "Section name is required", nil)
	}

	history := req.History
	if len(history) > MaxChatHistory {
		history = history[len(history)-MaxChatHistory:]
	}
	messages := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		role := llm.RoleUser
		if m.Role == llm.RoleAssistant {
			role = llm.RoleAssistant
		}
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: question})

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	answer, err = s.completer.Complete(ctx, analysis.SectionSystemPrompt(req.SectionName, req.SectionContext), messages)
	recordUpstreamCall(s.completer.Provider(), "chat", time.Since(start), err)
	if err != nil {
		err = classifyUpstream(err)
		logger.LogError("chat", err)
		return "", err
	}
	logger.LogInfof("chat", "answered section=%s turns=%d", req.SectionName, len(messages))
	return strings.TrimSpace(answer), nil
}
