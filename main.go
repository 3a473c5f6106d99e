// main.go
package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"go-con-board/config"
	"go-con-board/controllers"
	"go-con-board/logger"
	"go-con-board/middleware"
	"go-con-board/models"
	"go-con-board/services"
	"go-con-board/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.SetLogLevel(cfg.Env)
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := sql.Open(cfg.DriverName(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	store := services.NewSQLStore(db)
	if err := store.CreateSchema(); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	seedEvents(store)

	websocketURL := os.Getenv("WEBSOCKET_URL")
	if websocketURL == "" {
		websocketURL = fmt.Sprintf("ws://localhost:%d/board-updates", cfg.Port)
	}
	controllers.SetConfig(cfg.ApplicationURL, websocketURL)

	router := setupRouter(cfg, store)

	// Start the WebSocket fan-out loop
	go websocket.HandleMessages()

	logger.Info.Printf("listening on :%d", cfg.Port)
	if err := router.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

// seedEvents makes sure every configured city has its event row.
func seedEvents(store *services.SQLStore) {
	for _, city := range models.Cities {
		if _, err := store.EnsureEvent(city.EventSlug, city.Label); err != nil {
			log.Fatalf("Failed to seed event %s: %v", city.EventSlug, err)
		}
	}
}

// setupRouter wires every route. Split from main so tests can build the
// same router against a test store.
func setupRouter(cfg config.Config, store services.Store) *gin.Engine {
	router := gin.Default()

	// Session store
	cookieStore := cookie.NewStore([]byte(cfg.SessionSecret))
	cookieStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.Env == "production",
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("conboard", cookieStore))

	// Templates live next to the binary source
	_, b, _, _ := runtime.Caller(0)
	basepath := filepath.Dir(b)
	router.LoadHTMLGlob(filepath.Join(basepath, "templates", "*.html"))
	router.Static("/static", "./static")

	// Controllers
	boardCtl := controllers.NewBoardController(store)
	submitCtl := controllers.NewSubmissionController(store)
	voteCtl := controllers.NewVoteController(store)
	authCtl := controllers.NewAuthController(store)
	botKeyCtl := controllers.NewBotKeyController(
		services.NewBotKeyService(store, services.NewMemoryLimiter(services.BotKeyWindow, services.BotKeyMaxPerWindow)))
	botSubmitCtl := controllers.NewBotSubmissionController(store)
	adminCtl := controllers.NewAdminController(services.NewAdminService(store))

	// Public routes
	router.GET("/health", controllers.Health)
	router.GET("/", controllers.Index)
	router.GET("/login", authCtl.ShowLogin)
	router.POST("/login", authCtl.PerformLogin)
	router.GET("/register", authCtl.ShowRegister)
	router.POST("/register", authCtl.PerformRegister)
	router.GET("/logout", controllers.Logout)
	router.GET("/qrcode", controllers.GetQRCode)
	router.GET("/board-updates", func(c *gin.Context) {
		websocket.ServeWs(c.Writer, c.Request)
	})

	// One page per category, driven by the registry
	for _, cat := range models.Categories {
		cat := cat
		router.GET("/"+cat.Path, boardCtl.ShowBoard(cat))
		router.POST("/"+cat.Path+"/submit", middleware.AuthRequired, submitCtl.HandleSubmit(cat))
	}

	router.POST("/vote", voteCtl.CastVote)

	// Bot API
	router.GET("/api/bot-key", botKeyCtl.GetBotKeyUsage)
	router.POST("/api/bot-key", botKeyCtl.CreateBotKey)
	router.POST("/api/submissions", botSubmitCtl.Create)

	// Admin API
	admin := router.Group("/api/admin", middleware.AdminTokenRequired(cfg.AdminToken))
	admin.POST("/cleanup", adminCtl.Cleanup)
	admin.GET("/audit", adminCtl.Audit)

	return router
}
