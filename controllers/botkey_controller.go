// Package controllers controllers/botkey_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go-con-board/logger"
	"go-con-board/middleware"
	"go-con-board/services"
)

// BotKeyController provisions API keys for automated submitters.
type BotKeyController struct {
	svc *services.BotKeyService
}

// NewBotKeyController wires key issuance to its service.
func NewBotKeyController(svc *services.BotKeyService) *BotKeyController {
	return &BotKeyController{svc: svc}
}

// GetBotKeyUsage documents the endpoint for agents that GET it first.
func (bc *BotKeyController) GetBotKeyUsage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "POST a JSON body to this endpoint to receive an API key.",
		"example": `curl -X POST ` + ApplicationURL + `/api/bot-key -H "Content-Type: application/json" -d '{"email":"bot@example.com"}'`,
		"note":    "The key is shown once. Requests are limited to 3 per hour per address.",
	})
}

type botKeyRequest struct {
	Email string `json:"email"`
}

// CreateBotKey handles POST /api/bot-key.
func (bc *BotKeyController) CreateBotKey(c *gin.Context) {
	var req botKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid email required"})
		return
	}

	ip := middleware.GetClientIP(c)
	apiKey, err := bc.svc.Issue(req.Email, ip)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Try again later."})
		case errors.Is(err, services.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": "valid email required"})
		case errors.Is(err, services.ErrKeyExists):
			c.JSON(http.StatusConflict, gin.H{
				"error":  "A key already exists for this email. Keys are shown only once.",
				"exists": true,
			})
		default:
			logger.Error.Printf("CreateBotKey: issuance failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue key"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"api_key": apiKey,
		"warning": "Save this key securely. It will NOT be shown again.",
	})
}
