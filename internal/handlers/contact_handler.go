package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/hirely/internal/dtos"
	"github.com/justsurfingit/hirely/internal/services"
)

type ContactHandler struct {
	Email *services.EmailService
}

func NewContactHandler(email *services.EmailService) *ContactHandler {
	return &ContactHandler{Email: email}
}

// Submit is POST /api/contact.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req dtos.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Name, email and message are required"})
		return
	}
	if !emailPattern.MatchString(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid email format"})
		return
	}

	delivered, err := h.Email.SendContact(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to send message"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"delivered": delivered,
		"message":   "Thank you for your message! We'll get back to you soon.",
	})
}
