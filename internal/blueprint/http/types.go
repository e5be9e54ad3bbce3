package http

import (
	"context"

	"github.com/aura-blueprint/aura/internal/blueprint/domain"
	"github.com/aura-blueprint/aura/internal/blueprint/service"
	"github.com/aura-blueprint/aura/internal/llm"
)

// Analyzer produces a blueprint candidate from an idea.
type Analyzer interface {
	Analyze(ctx context.Context, idea string) (*domain.Blueprint, error)
}

// Asker answers questions about one blueprint section.
type Asker interface {
	Ask(ctx context.Context, req service.ChatRequest) (string, error)
}

// Handler bundles the dependencies for the blueprint endpoints.
type Handler struct {
	analyzer Analyzer
	asker    Asker
}

func New(analyzer Analyzer, asker Asker) *Handler {
	return &Handler{analyzer: analyzer, asker: asker}
}

type analyzeReq struct {
	Idea string `json:"idea"`
}

type analyzeResp struct {
	Success   bool              `json:"success"`
	Blueprint *domain.Blueprint `json:"blueprint"`
}

type chatReq struct {
	Question       string        `json:"question"`
	SectionName    string        `json:"sectionName"`
	SectionContext string        `json:"sectionContext"`
	History        []llm.Message `json:"history"`
}

type chatResp struct {
	Answer string `json:"answer"`
}

// errorResp is the failure body of every blueprint endpoint.
type errorResp struct {
	Error string      `json:"error"`
	Kind  domain.Kind `json:"kind"`
}
