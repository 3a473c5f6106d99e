// file: controllers/submission_controller_test.go
package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-con-board/models"
	"go-con-board/services"
)

func submitTestRouter(t *testing.T, store *services.MockStore, cat models.Category) (*gin.Engine, *http.Cookie) {
	router := setupTestRouter(t)
	sc := NewSubmissionController(store)
	router.POST("/"+cat.Path+"/submit", sc.HandleSubmit(cat))
	cookie := SetSession(router, "/set-session", map[string]interface{}{"userID": "u-1"})
	return router, cookie
}

func postForm(router *gin.Engine, cookie *http.Cookie, path string, form url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleSubmit_RequiresSignIn(t *testing.T) {
	store := new(services.MockStore)
	router, _ := submitTestRouter(t, store, demosCategory(t))

	w := postForm(router, nil, "/demos/submit", url.Values{"title": {"Demo"}})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	store.AssertNotCalled(t, "InsertSubmission", mock.Anything)
}

func TestHandleSubmit_MissingRequiredField(t *testing.T) {
	store := new(services.MockStore)
	router, cookie := submitTestRouter(t, store, demosCategory(t))

	w := postForm(router, cookie, "/demos/submit", url.Values{
		"title": {"Robot arm demo"},
		// presenter is required and missing
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Presenter is required.")
	store.AssertNotCalled(t, "InsertSubmission", mock.Anything)
}

func TestHandleSubmit_CreatesSubmission(t *testing.T) {
	store := new(services.MockStore)
	store.On("EventBySlug", "con-sf").Return(models.Event{ID: "e1", Slug: "con-sf"}, nil)

	var inserted models.Submission
	store.On("InsertSubmission", mock.AnythingOfType("models.Submission")).
		Run(func(args mock.Arguments) {
			inserted = args.Get(0).(models.Submission)
		}).
		Return("s-new", nil)

	router, cookie := submitTestRouter(t, store, demosCategory(t))
	w := postForm(router, cookie, "/demos/submit", url.Values{
		"title":       {"Robot arm demo"},
		"presenter":   {"Ada"},
		"description": {"Watch http://sketchy.example and https://good.example/x"},
		"url":         {"https://good.example/x"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/demos?city=sf", w.Header().Get("Location"))

	require.Equal(t, "Robot arm demo", inserted.Title)
	assert.Equal(t, "e1", inserted.EventID)
	assert.Equal(t, "demo", inserted.SubmissionType)
	assert.Equal(t, models.SubmittedByHuman, inserted.SubmittedBy)
	// the http:// link is rejected, the https one kept once
	assert.Equal(t, []string{"https://good.example/x"}, inserted.Links)
}

func TestHandleSubmit_JobComposesDescription(t *testing.T) {
	jobs, ok := models.CategoryByPath("jobs")
	require.True(t, ok)

	store := new(services.MockStore)
	store.On("EventBySlug", "con-sf").Return(models.Event{ID: "e1", Slug: "con-sf"}, nil)

	var inserted models.Submission
	store.On("InsertSubmission", mock.AnythingOfType("models.Submission")).
		Run(func(args mock.Arguments) {
			inserted = args.Get(0).(models.Submission)
		}).
		Return("s-job", nil)

	router, cookie := submitTestRouter(t, store, jobs)
	w := postForm(router, cookie, "/jobs/submit", url.Values{
		"company":  {"Acme"},
		"title":    {"Founding Engineer"},
		"location": {"SF"},
		"comp":     {"$250k"},
		"url":      {"https://acme.example/jobs/1"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "Founding Engineer", inserted.Title)
	assert.Equal(t, "Acme", inserted.PresenterName)
	assert.Equal(t, "Location: SF · Comp: $250k", inserted.Description)
}
