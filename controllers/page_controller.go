// Package controllers file: controllers/page_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"go-con-board/logger"
	"go-con-board/models"
	"go-con-board/services"
)

var (
	ApplicationURL string
	WebsocketURL   string
)

// SetConfig sets global application and WebSocket URLs
func SetConfig(appURL, wsURL string) {
	ApplicationURL = appURL
	WebsocketURL = wsURL
	logger.Info.Printf("SetConfig: ApplicationURL=%s, WebsocketURL=%s", appURL, wsURL)
}

// Health reports liveness for the load balancer.
func Health(c *gin.Context) {
	logger.Debug.Println("Health: health check requested")
	c.String(http.StatusOK, "OK")
}

// Index sends visitors to the first board.
func Index(c *gin.Context) {
	target := "/" + models.Categories[0].Path
	if city := c.Query("city"); city != "" {
		target += "?city=" + city
	}
	c.Redirect(http.StatusFound, target)
}

// Logout clears the session and returns to the login page.
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	if email := session.Get("userEmail"); email != nil {
		logger.Info.Printf("Logout: signing out %v", email)
	}
	session.Clear()
	if err := session.Save(); err != nil {
		logger.Error.Printf("Logout: error saving session: %v", err)
	}
	c.Redirect(http.StatusFound, "/login")
}

// GetQRCode serves a QR code pointing phones at the board.
func GetQRCode(c *gin.Context) {
	logger.Info.Println("GetQRCode: generating QR code")

	qrBytes, err := services.GenerateQRCode(ApplicationURL, 300, 300, services.QRCodeEncoder(qrcode.Encode))
	if err != nil {
		logger.Error.Printf("GetQRCode: error generating QR code: %v", err)
		c.String(http.StatusInternalServerError, "QR generation failed")
		return
	}

	c.Header("Content-Type", "image/png")
	c.Header("Content-Disposition", "inline; filename=\"qrcode.png\"")
	if _, err := c.Writer.Write(qrBytes); err != nil {
		logger.Error.Printf("GetQRCode: error writing QR code bytes: %v", err)
	}
}
