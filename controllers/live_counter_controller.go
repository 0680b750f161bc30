package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"debatebot/models"
	"debatebot/services"

	"github.com/gin-gonic/gin"
)

type LiveCounterController struct {
	counters *services.LiveCounterService
	logger   *slog.Logger
}

func NewLiveCounterController(counters *services.LiveCounterService, logger *slog.Logger) *LiveCounterController {
	return &LiveCounterController{counters: counters, logger: logger}
}

// Counter answers a user's argument with a counter-argument for the round
func (lc *LiveCounterController) Counter(c *gin.Context) {
	var req models.LiveDebateRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := lc.counters.Counter(c.Request.Context(), req)
	if errors.Is(err, services.ErrUnknownRound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		lc.logger.Error("counter-argument generation failed", "topic", req.Topic, "round", req.Round, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}
