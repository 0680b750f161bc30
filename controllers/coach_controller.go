package controllers

import (
	"net/http"

	"debatebot/models"
	"debatebot/services"

	"github.com/gin-gonic/gin"
)

// CoachController scores arguments and turns scores into feedback. Neither
// endpoint fails on model errors; both fall back to rule-based results.
type CoachController struct {
	scoring  *services.ScoringService
	feedback *services.FeedbackService
}

func NewCoachController(scoring *services.ScoringService, feedback *services.FeedbackService) *CoachController {
	return &CoachController{scoring: scoring, feedback: feedback}
}

func (cc *CoachController) ScoreArgument(c *gin.Context) {
	var req models.ScoringRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, cc.scoring.Score(c.Request.Context(), req))
}

func (cc *CoachController) GetFeedback(c *gin.Context) {
	var req models.FeedbackRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, cc.feedback.Feedback(c.Request.Context(), req))
}
