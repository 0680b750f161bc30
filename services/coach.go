package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"debatebot/models"
)

const maxTips = 3

// Feedback types
const (
	FeedbackSuccess     = "success"
	FeedbackImprovement = "improvement"
	FeedbackWarning     = "warning"
)

// Rule-based tips, in priority order
var (
	coherenceTip = models.Tip{Metric: "coherence", Tip: "Structure your argument as claim, reasoning, then evidence, and use transitions so each point builds on the last."}
	relevanceTip = models.Tip{Metric: "relevance", Tip: "Tie every point directly back to the motion and cut sentences that drift away from it."}
	evidenceTip  = models.Tip{Metric: "evidence", Tip: "Back your claims with concrete evidence such as statistics, studies or real-world examples."}
	logicTip     = models.Tip{Metric: "logic", Tip: "Check your reasoning for fallacies like hasty generalizations or appeals to emotion, and answer the strongest counterargument directly."}
	generalTip   = models.Tip{Metric: "overall", Tip: "Your argument is solid. Sharpen the wording and anticipate the strongest rebuttal to push it further."}
)

type feedbackOutput struct {
	Type    string       `json:"type"`
	Message string       `json:"message"`
	Tips    []models.Tip `json:"tips"`
}

// FeedbackService coaches a user toward a target argument score
type FeedbackService struct {
	gen    Generator
	logger *slog.Logger
}

func NewFeedbackService(gen Generator, logger *slog.Logger) *FeedbackService {
	return &FeedbackService{gen: gen, logger: logger}
}

// ScoreGap is how many percentage points the argument is short of target
func ScoreGap(target int, strength float64) int {
	return target - percent(strength)
}

// Feedback always returns coaching. Upstream errors and unusable model
// output fall back to FallbackFeedback.
func (s *FeedbackService) Feedback(ctx context.Context, req models.FeedbackRequest) models.FeedbackResult {
	current := percent(req.Scores.ArgumentStrength)
	gap := ScoreGap(req.TargetScore, req.Scores.ArgumentStrength)

	raw, err := s.gen.Generate(ctx, feedbackPrompt(req, current, gap))
	if err != nil {
		s.logger.Error("feedback generation failed, using fallback", "error", err)
		return FallbackFeedback(req.Scores, req.TargetScore)
	}

	extraction := ExtractJSON(raw, feedbackOutput{})
	if !extraction.Parsed {
		s.logger.Warn("feedback output unusable, using fallback", "reason", extraction.Reason)
		return FallbackFeedback(req.Scores, req.TargetScore)
	}
	out := extraction.Value
	if strings.TrimSpace(out.Message) == "" {
		s.logger.Warn("feedback output has no message, using fallback")
		return FallbackFeedback(req.Scores, req.TargetScore)
	}

	result := models.FeedbackResult{
		Type:    out.Type,
		Message: strings.TrimSpace(out.Message),
		Tips:    cleanTips(out.Tips),
	}
	if result.Type == "" {
		result.Type = feedbackType(gap)
	}
	if len(result.Tips) == 0 {
		result.Tips = ruleTips(req.Scores)
	}
	return result
}

// FallbackFeedback builds deterministic coaching from score thresholds
func FallbackFeedback(scores models.Scores, target int) models.FeedbackResult {
	current := percent(scores.ArgumentStrength)
	gap := target - current

	var message string
	if gap <= 0 {
		message = fmt.Sprintf("Your argument scores %d%%, meeting your target of %d%%. Keep refining it.", current, target)
	} else {
		message = fmt.Sprintf("Your argument scores %d%%. You're %d points away from your target of %d%%.", current, gap, target)
	}

	return models.FeedbackResult{
		Type:    feedbackType(gap),
		Message: message,
		Tips:    ruleTips(scores),
	}
}

func ruleTips(scores models.Scores) []models.Tip {
	var tips []models.Tip
	if scores.Coherence < 0.75 {
		tips = append(tips, coherenceTip)
	}
	if scores.Relevance < 0.8 {
		tips = append(tips, relevanceTip)
	}
	if scores.EvidenceStrength < 0.7 {
		tips = append(tips, evidenceTip)
	}
	if scores.FallacyPenalty > 0.1 {
		tips = append(tips, logicTip)
	}
	if len(tips) == 0 {
		return []models.Tip{generalTip}
	}
	if len(tips) > maxTips {
		tips = tips[:maxTips]
	}
	return tips
}

func cleanTips(tips []models.Tip) []models.Tip {
	out := make([]models.Tip, 0, maxTips)
	for _, t := range tips {
		if strings.TrimSpace(t.Tip) == "" {
			continue
		}
		out = append(out, models.Tip{Metric: strings.TrimSpace(t.Metric), Tip: strings.TrimSpace(t.Tip)})
		if len(out) == maxTips {
			break
		}
	}
	return out
}

func feedbackType(gap int) string {
	switch {
	case gap <= 0:
		return FeedbackSuccess
	case gap <= 15:
		return FeedbackImprovement
	default:
		return FeedbackWarning
	}
}
