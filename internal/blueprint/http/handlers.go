package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aura-blueprint/aura/internal/blueprint/domain"
	"github.com/aura-blueprint/aura/internal/blueprint/service"
)

func (h *Handler) analyzeProject(c *gin.Context) {
	var req analyzeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, domain.Errorf(domain.KindInvalidInput, "Idea is required", err))
		return
	}

	bp, err := h.analyzer.Analyze(c.Request.Context(), req.Idea)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, analyzeResp{Success: true, Blueprint: bp})
}

func (h *Handler) chatSection(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, domain.Errorf(domain.KindInvalidInput, "Invalid request body", err))
		return
	}

	answer, err := h.asker.Ask(c.Request.Context(), service.ChatRequest{
		Question:       req.Question,
		SectionName:    req.SectionName,
		SectionContext: req.SectionContext,
		History:        req.History,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, chatResp{Answer: answer})
}

// writeError answers with the status of the failure kind and one
// user-facing line. Technical causes stay in the logs.
func writeError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	_ = c.Error(err)
	c.JSON(domain.HTTPStatus(kind), errorResp{Error: domain.UserMessage(err), Kind: kind})
}
