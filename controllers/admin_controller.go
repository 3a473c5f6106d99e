// Package controllers provides HTTP handlers for privileged admin operations.
// file: controllers/admin_controller.go
package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go-con-board/logger"
	"go-con-board/models"
	"go-con-board/services"
)

// AdminController exposes the remediation jobs. Routes using it sit
// behind AdminTokenRequired.
type AdminController struct {
	svc *services.AdminService
}

// NewAdminController wires the admin API to its service.
func NewAdminController(svc *services.AdminService) *AdminController {
	return &AdminController{svc: svc}
}

type cleanupRequest struct {
	Suffix string `json:"suffix"`
}

// Cleanup handles POST /api/admin/cleanup. The response reports each
// sub-step's outcome so a partial failure is visible, not fatal.
func (ac *AdminController) Cleanup(c *gin.Context) {
	var req cleanupRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Suffix) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "suffix is required"})
		return
	}

	suffix := strings.TrimSpace(req.Suffix)
	logger.Info.Printf("admin cleanup requested for suffix %s", suffix)

	report := ac.svc.CleanupBots(suffix)
	c.JSON(http.StatusOK, report)
}

// Audit handles GET /api/admin/audit?suffix=...&city=...
func (ac *AdminController) Audit(c *gin.Context) {
	suffix := strings.TrimSpace(c.Query("suffix"))
	if suffix == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "suffix is required"})
		return
	}

	city := models.GetCity(c.Query("city"))
	report, err := ac.svc.Audit(suffix, city.EventSlug)
	if err != nil {
		logger.Error.Printf("admin audit failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
