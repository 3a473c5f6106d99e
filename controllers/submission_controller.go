// Package controllers controllers/submission_controller.go
package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go-con-board/logger"
	"go-con-board/middleware"
	"go-con-board/models"
	"go-con-board/services"
	"go-con-board/websocket"
)

// SubmissionController accepts new entries from the category forms.
type SubmissionController struct {
	store services.Store
}

// NewSubmissionController wires the submission forms to their store.
func NewSubmissionController(store services.Store) *SubmissionController {
	return &SubmissionController{store: store}
}

// HandleSubmit returns the POST handler for one category's form. Routes
// using it sit behind AuthRequired.
func (sc *SubmissionController) HandleSubmit(cat models.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		city := models.GetCity(c.Query("city"))

		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			return
		}

		values := make(map[string]string, len(cat.Fields))
		for _, f := range cat.Fields {
			values[f.Key] = c.PostForm(f.Key)
		}

		for _, f := range cat.Fields {
			if f.Required && strings.TrimSpace(values[f.Key]) == "" {
				c.String(http.StatusBadRequest, f.Label+" is required.")
				return
			}
		}

		draft := cat.BuildItem(values)
		if draft.Title == "" {
			c.String(http.StatusBadRequest, "Title is required.")
			return
		}

		links := append(draft.Links, harvestLinks(cat.Fields, values)...)
		links = services.SanitizeLinks(links)

		event, err := sc.store.EventBySlug(city.EventSlug)
		if err != nil {
			logger.Error.Printf("HandleSubmit: event lookup for %s failed: %v", city.EventSlug, err)
			c.String(http.StatusInternalServerError, "Something went wrong.")
			return
		}

		id, err := sc.store.InsertSubmission(models.Submission{
			EventID:        event.ID,
			Title:          draft.Title,
			Description:    draft.Description,
			PresenterName:  draft.PresenterName,
			Links:          links,
			SubmissionType: cat.Type,
			SubmittedBy:    models.SubmittedByHuman,
		})
		if err != nil {
			logger.Error.Printf("HandleSubmit: insert failed for user %s: %v", userID, err)
			c.String(http.StatusInternalServerError, "Something went wrong.")
			return
		}

		logger.Info.Printf("submission %s (%s) created by %s", id, cat.Type, userID)
		websocket.BroadcastNewSubmission(city.EventSlug, id, draft.Title)

		c.Redirect(http.StatusFound, "/"+cat.Path+"?city="+city.Key)
	}
}

// harvestLinks pulls URL-looking values out of any submitted field, so a
// link pasted into a notes box still lands on the card. Values may carry
// several URLs separated by commas. Fields are walked in declaration
// order to keep link order stable.
func harvestLinks(fields []models.SubmitField, values map[string]string) []string {
	var links []string
	for _, f := range fields {
		v := values[f.Key]
		if !strings.Contains(v, "http") {
			continue
		}
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if strings.Contains(part, "http") {
				links = append(links, part)
			}
		}
	}
	return links
}
