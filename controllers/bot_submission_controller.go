// Package controllers controllers/bot_submission_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go-con-board/logger"
	"go-con-board/models"
	"go-con-board/services"
	"go-con-board/websocket"
)

// BotSubmissionController accepts submissions from key-holding agents.
type BotSubmissionController struct {
	store services.Store
}

// NewBotSubmissionController wires the bot API to its store.
func NewBotSubmissionController(store services.Store) *BotSubmissionController {
	return &BotSubmissionController{store: store}
}

type botSubmissionRequest struct {
	Type          string   `json:"type"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	PresenterName string   `json:"presenter_name"`
	Links         []string `json:"links"`
	OnBehalfOf    string   `json:"on_behalf_of"`
	City          string   `json:"city"`
}

// Create handles POST /api/submissions, authenticated by X-Bot-Key.
func (bc *BotSubmissionController) Create(c *gin.Context) {
	apiKey := c.GetHeader("X-Bot-Key")
	if apiKey == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "X-Bot-Key header required"})
		return
	}

	email, err := bc.store.BotKeyEmail(apiKey)
	if err != nil {
		if errors.Is(err, services.ErrBotKeyNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			return
		}
		logger.Error.Printf("bot submission: key lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "key lookup failed"})
		return
	}

	var req botSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	req.Type = strings.TrimSpace(req.Type)
	if !models.ValidSubmissionType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown submission type"})
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	city := models.GetCity(req.City)
	event, err := bc.store.EventBySlug(city.EventSlug)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no event configured for that city"})
			return
		}
		logger.Error.Printf("bot submission: event lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "event lookup failed"})
		return
	}

	submittedBy := models.SubmittedByBot
	onBehalf := strings.TrimSpace(req.OnBehalfOf)
	if onBehalf != "" {
		submittedBy = models.SubmittedByBotOnBehalf
	}

	presenter := strings.TrimSpace(req.PresenterName)
	if presenter == "" {
		presenter = email
	}

	id, err := bc.store.InsertSubmission(models.Submission{
		EventID:          event.ID,
		Title:            req.Title,
		Description:      strings.TrimSpace(req.Description),
		PresenterName:    presenter,
		Links:            services.SanitizeLinks(req.Links),
		SubmissionType:   req.Type,
		SubmittedBy:      submittedBy,
		SubmittedForName: onBehalf,
	})
	if err != nil {
		logger.Error.Printf("bot submission: insert failed for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create submission"})
		return
	}

	logger.Info.Printf("bot submission %s (%s) created by %s", id, req.Type, email)
	websocket.BroadcastNewSubmission(city.EventSlug, id, req.Title)

	c.JSON(http.StatusCreated, gin.H{"id": id, "submitted_by": submittedBy})
}
