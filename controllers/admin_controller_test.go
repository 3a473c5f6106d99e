// file: controllers/admin_controller_test.go
package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go-con-board/middleware"
	"go-con-board/models"
	"go-con-board/services"
)

func adminTestRouter(store *services.MockStore, token string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	ac := NewAdminController(services.NewAdminService(store))
	authed := router.Group("/api/admin", middleware.AdminTokenRequired(token))
	authed.POST("/cleanup", ac.Cleanup)
	authed.GET("/audit", ac.Audit)
	return router
}

func TestCleanup_RequiresToken(t *testing.T) {
	router := adminTestRouter(new(services.MockStore), "s3cret")

	req, _ := http.NewRequest("POST", "/api/admin/cleanup", strings.NewReader(`{"suffix":"@x.to"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCleanup_MissingSuffix(t *testing.T) {
	router := adminTestRouter(new(services.MockStore), "s3cret")

	req, _ := http.NewRequest("POST", "/api/admin/cleanup", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Token", "s3cret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "suffix is required")
}

func TestCleanup_ReportsEachStep(t *testing.T) {
	store := new(services.MockStore)
	store.On("UsersByEmailSuffix", "@x.to").Return([]models.User{
		{ID: "u-a", Email: "a@x.to"},
	}, nil)
	store.On("DeleteVotesByUsers", []string{"u-a"}).Return(int64(3), nil)
	store.On("BanUser", "u-a", mock.AnythingOfType("time.Time")).Return(nil)
	store.On("AddVoteExclusion", "@x.to").Return(nil)

	router := adminTestRouter(store, "s3cret")

	req, _ := http.NewRequest("POST", "/api/admin/cleanup", strings.NewReader(`{"suffix":"@x.to"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Token", "s3cret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted_votes":3`)
	assert.Contains(t, w.Body.String(), `"exclusion_added":true`)
	store.AssertExpectations(t)
}

func TestAudit_ReturnsSnapshot(t *testing.T) {
	store := new(services.MockStore)
	store.On("UsersByEmailSuffix", "@x.to").Return([]models.User{
		{ID: "u-a", Email: "a@x.to"},
	}, nil)
	store.On("VotesByUsers", []string{"u-a"}).Return([]models.Vote{}, nil)
	store.On("RankedSubmissions", "con-nyc").Return([]models.Submission{}, nil)
	store.On("EventBySlug", "con-nyc").Return(models.Event{ID: "e2", Slug: "con-nyc"}, nil)
	store.On("SubmissionsByEvent", "e2").Return([]models.Submission{}, nil)

	router := adminTestRouter(store, "s3cret")

	req, _ := http.NewRequest("GET", "/api/admin/audit?suffix=@x.to&city=nyc&token=s3cret", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	store.AssertCalled(t, "RankedSubmissions", "con-nyc")
}

func TestAudit_MissingSuffix(t *testing.T) {
	router := adminTestRouter(new(services.MockStore), "s3cret")

	req, _ := http.NewRequest("GET", "/api/admin/audit?token=s3cret", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
