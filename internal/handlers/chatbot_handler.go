package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/hirely/internal/dtos"
	"github.com/justsurfingit/hirely/internal/logging"
	"github.com/justsurfingit/hirely/internal/services"
)

type ChatbotHandler struct {
	Jobs     *services.JobService
	JobChat  services.JobChatResponder
	SiteChat *services.WebsiteChatResponder
	Log      *logging.Logger
}

func NewChatbotHandler(jobs *services.JobService, job services.JobChatResponder, site *services.WebsiteChatResponder, log *logging.Logger) *ChatbotHandler {
	return &ChatbotHandler{Jobs: jobs, JobChat: job, SiteChat: site, Log: log}
}

// Chat answers a question about the listing the user is viewing.
func (h *ChatbotHandler) Chat(c *gin.Context) {
	var req dtos.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	details := req.JobDetails
	if details == nil && strings.TrimSpace(req.JobID) != "" && h.Jobs != nil {
		d, err := h.Jobs.ChatDetails(c.Request.Context(), strings.TrimSpace(req.JobID))
		if err != nil {
			// Fall back to the generic context.
			h.Log.Warn("job lookup for chat failed", "jobId", req.JobID, "err", err)
		} else {
			details = d
		}
	}

	reply, err := h.JobChat.Respond(c.Request.Context(), req.Message, services.NewJobContext(details))
	if err != nil {
		_ = c.Error(err)
		if errors.Is(err, services.ErrModelUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid API key",
				"hint":  "Check GEMINI_API_KEY in your .env file",
			})
			return
		}
		h.Log.Error("chat response failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate response",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dtos.ChatResponse{Response: reply})
}

// WebsiteChat answers general questions about the site.
func (h *ChatbotHandler) WebsiteChat(c *gin.Context) {
	var req dtos.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}
	c.JSON(http.StatusOK, dtos.ChatResponse{Response: h.SiteChat.Respond(req.Message)})
}
