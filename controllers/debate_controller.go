package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"debatebot/db"
	"debatebot/models"
	"debatebot/services"

	"github.com/gin-gonic/gin"
)

const (
	// DebateIDHeader carries the archive id of a generated debate
	DebateIDHeader = "X-Debate-ID"

	defaultListLimit = 20
	maxListLimit     = 100
)

type DebateController struct {
	debates *services.DebateService
	archive db.Archive
	logger  *slog.Logger
}

// NewDebateController wires the debate endpoints. archive may be nil, in
// which case debates are not stored and the archive endpoints answer 503.
func NewDebateController(debates *services.DebateService, archive db.Archive, logger *slog.Logger) *DebateController {
	return &DebateController{debates: debates, archive: archive, logger: logger}
}

// CreateDebate runs a full six-speech debate on the requested topic
func (dc *DebateController) CreateDebate(c *gin.Context) {
	var req models.DebateRequest
	if !bindJSON(c, &req) {
		return
	}

	debate, err := dc.debates.Run(c.Request.Context(), req.Topic, nil)
	if err != nil {
		dc.logger.Error("debate generation failed", "topic", req.Topic, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if id := dc.debates.Archive(c.Request.Context(), debate); id != "" {
		c.Header(DebateIDHeader, id)
	}
	c.JSON(http.StatusOK, debate)
}

// ListDebates returns the most recently archived debates, newest first
func (dc *DebateController) ListDebates(c *gin.Context) {
	if dc.archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": ErrArchiveDisabled.Error()})
		return
	}

	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxListLimit)
	}

	records, err := dc.archive.RecentDebates(c.Request.Context(), limit)
	if err != nil {
		dc.logger.Error("failed to list debates", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list debates"})
		return
	}
	if records == nil {
		records = []models.DebateRecord{}
	}
	c.JSON(http.StatusOK, records)
}

// GetDebate returns one archived debate
func (dc *DebateController) GetDebate(c *gin.Context) {
	if dc.archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": ErrArchiveDisabled.Error()})
		return
	}

	record, err := dc.archive.GetDebate(c.Request.Context(), c.Param("id"))
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		dc.logger.Error("failed to load debate", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load debate"})
		return
	}
	c.JSON(http.StatusOK, record)
}
