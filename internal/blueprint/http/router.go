package http

import "github.com/gin-gonic/gin"

// Register attaches blueprint routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/analyze-project", h.analyzeProject)
	rg.POST("/chat-section", h.chatSection)
}
