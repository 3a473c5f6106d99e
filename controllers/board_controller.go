// Package controllers controllers/board_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go-con-board/logger"
	"go-con-board/middleware"
	"go-con-board/models"
	"go-con-board/services"
)

// BoardController renders the ranked board for each category.
type BoardController struct {
	store services.Store
}

// NewBoardController wires the board pages to their store.
func NewBoardController(store services.Store) *BoardController {
	return &BoardController{store: store}
}

// boardItem is one row of the rendered board.
type boardItem struct {
	Submission models.Submission
	TimeAgo    string
	Domains    []linkView
}

type linkView struct {
	URL    string
	Domain string
}

// ShowBoard returns the handler for one category's page. Every category
// page is the same template driven by the registry entry.
func (bc *BoardController) ShowBoard(cat models.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		city := models.GetCity(c.Query("city"))

		userID, signedIn := middleware.CurrentUserID(c)

		data := gin.H{
			"Category":     cat,
			"Categories":   models.Categories,
			"City":         city,
			"Cities":       models.Cities,
			"SignedIn":     signedIn,
			"UserID":       userID,
			"WebsocketURL": WebsocketURL,
			"Items":        []boardItem{},
		}

		if _, err := bc.store.EventBySlug(city.EventSlug); err != nil {
			if errors.Is(err, services.ErrEventNotFound) {
				logger.Warn.Printf("ShowBoard: no event configured for city %s", city.Key)
				data["Notice"] = "This board is not configured yet. Check back soon."
				c.HTML(http.StatusOK, "board.html", data)
				return
			}
			logger.Error.Printf("ShowBoard: event lookup failed: %v", err)
			c.String(http.StatusInternalServerError, "Something went wrong.")
			return
		}

		subs, err := bc.store.RankedSubmissions(city.EventSlug)
		if err != nil {
			logger.Error.Printf("ShowBoard: listing submissions failed: %v", err)
			c.String(http.StatusInternalServerError, "Something went wrong.")
			return
		}

		var filtered []models.Submission
		for _, s := range subs {
			if s.SubmissionType == cat.Type {
				filtered = append(filtered, s)
			}
		}
		filtered = services.RankSubmissions(filtered)

		items := make([]boardItem, 0, len(filtered))
		for _, s := range filtered {
			item := boardItem{Submission: s, TimeAgo: services.TimeAgo(s.CreatedAt)}
			for _, link := range s.Links {
				item.Domains = append(item.Domains, linkView{URL: link, Domain: services.Domain(link)})
			}
			items = append(items, item)
		}
		data["Items"] = items

		c.HTML(http.StatusOK, "board.html", data)
	}
}
