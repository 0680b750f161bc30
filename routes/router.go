package routes

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"debatebot/config"
	"debatebot/controllers"
	"debatebot/db"
	"debatebot/middlewares"
	"debatebot/services"
	"debatebot/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Dependencies are the external collaborators of the router. Archive and
// Limiter are optional.
type Dependencies struct {
	Generator services.Generator
	Archive   db.Archive
	Limiter   middlewares.Limiter
	Logger    *slog.Logger
}

// NewRouter builds the HTTP surface of the debate bot
func NewRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	logger := deps.Logger

	router := gin.New()
	router.Use(gin.Recovery(), middlewares.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middlewares.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middlewares.RequestIDHeader, controllers.DebateIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middlewares.MaxBodySize(cfg.Server.MaxBodyBytes))

	debates := services.NewDebateService(deps.Generator, logger, services.DebateOptions{
		Sequential:   cfg.Debate.Sequential,
		SummaryWords: cfg.Debate.SummaryWords,
	}).WithArchive(deps.Archive)

	debateController := controllers.NewDebateController(debates, deps.Archive, logger)
	liveController := controllers.NewLiveCounterController(
		services.NewLiveCounterService(deps.Generator, logger, cfg.LiveCounter.StrictRounds), logger)
	coachController := controllers.NewCoachController(
		services.NewScoringService(deps.Generator, logger),
		services.NewFeedbackService(deps.Generator, logger),
	)

	router.GET("/", controllers.Root)

	api := router.Group("/api")
	{
		api.GET("/health", controllers.Health)
		api.GET("/debates", debateController.ListDebates)
		api.GET("/debates/:id", debateController.GetDebate)
	}

	// Every POST costs at least one model call.
	llm := api.Group("")
	if deps.Limiter != nil {
		llm.Use(middlewares.RateLimit(deps.Limiter, logger))
	}
	{
		llm.POST("/debate", debateController.CreateDebate)
		llm.POST("/live-counter", liveController.Counter)
		llm.POST("/score-argument", coachController.ScoreArgument)
		llm.POST("/get-feedback", coachController.GetFeedback)
	}

	router.GET("/ws/debate", websocket.DebateStreamHandler(
		debates, websocket.NewUpgrader(cfg.Server.AllowedOrigins), logger))

	if dir := cfg.Server.StaticDir; dir != "" {
		setupStatic(router, dir)
	}
	return router
}

// setupStatic serves the frontend bundle and falls back to its index page
// for unknown non-API paths
func setupStatic(router *gin.Engine, dir string) {
	router.Static("/static", dir)
	index := filepath.Join(dir, "index.html")
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.File(index)
	})
}
