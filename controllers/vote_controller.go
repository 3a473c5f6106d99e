// Package controllers controllers/vote_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go-con-board/logger"
	"go-con-board/middleware"
	"go-con-board/models"
	"go-con-board/services"
	"go-con-board/websocket"
)

// VoteController records votes and pushes updated tallies to viewers.
type VoteController struct {
	store services.Store
}

// NewVoteController wires voting to its store.
func NewVoteController(store services.Store) *VoteController {
	return &VoteController{store: store}
}

type voteRequest struct {
	SubmissionID string `json:"submission_id" binding:"required"`
	City         string `json:"city"`
}

// CastVote handles POST /vote. One vote per user per submission; a second
// attempt is a conflict, not an error page.
func (vc *VoteController) CastVote(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Sign in to vote."})
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "submission_id is required"})
		return
	}

	if err := vc.store.InsertVote(req.SubmissionID, userID); err != nil {
		if errors.Is(err, services.ErrAlreadyVoted) {
			c.JSON(http.StatusConflict, gin.H{"error": "You already voted on that."})
			return
		}
		logger.Error.Printf("CastVote: insert failed for user %s on %s: %v", userID, req.SubmissionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	count, err := vc.store.VoteCount(req.SubmissionID)
	if err != nil {
		logger.Error.Printf("CastVote: counting votes for %s failed: %v", req.SubmissionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	city := models.GetCity(req.City)
	websocket.BroadcastVoteUpdate(city.EventSlug, req.SubmissionID, count)
	go websocket.PublishVoteCast(city.EventSlug)

	logger.Info.Printf("vote recorded: user=%s submission=%s count=%d", userID, req.SubmissionID, count)
	c.JSON(http.StatusOK, gin.H{"ok": true, "vote_count": count})
}
