package handler

import (
	"net/http"
	"strings"

	"github.com/akinmix/sibelgpt-backend/internal/model"
	"github.com/akinmix/sibelgpt-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles the /chat and /web-search endpoints
type ChatHandler struct {
	orchestrator *service.Orchestrator
	webSearcher  *service.WebSearcher
}

// NewChatHandler creates a new chat handler
func NewChatHandler(orchestrator *service.Orchestrator, webSearcher *service.WebSearcher) *ChatHandler {
	return &ChatHandler{orchestrator: orchestrator, webSearcher: webSearcher}
}

// Chat handles POST /chat
func (h *ChatHandler) Chat(c *gin.Context) {
	if h.orchestrator == nil {
		c.JSON(http.StatusServiceUnavailable, model.ErrorResponse{Error: "Servis henüz hazır değil. Lütfen biraz sonra tekrar deneyin."})
		return
	}

	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Geçersiz istek: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Lütfen bir soru yazın."})
		return
	}

	persona, err := model.ParsePersona(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Geçersiz mod: " + req.Mode})
		return
	}

	reply := h.orchestrator.Answer(c.Request.Context(), req.Question, persona, req.ConversationHistory)
	c.JSON(http.StatusOK, model.ChatResponse{Reply: reply})
}

// WebSearch handles POST /web-search
func (h *ChatHandler) WebSearch(c *gin.Context) {
	if h.webSearcher == nil {
		c.JSON(http.StatusServiceUnavailable, model.ErrorResponse{Error: "Servis henüz hazır değil. Lütfen biraz sonra tekrar deneyin."})
		return
	}

	var req model.WebSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Geçersiz istek: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Lütfen bir arama sorgusu yazın."})
		return
	}

	persona, err := model.ParsePersona(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Geçersiz mod: " + req.Mode})
		return
	}

	reply := h.webSearcher.Answer(c.Request.Context(), req.Query, persona)
	c.JSON(http.StatusOK, model.ChatResponse{Reply: reply})
}
