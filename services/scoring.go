package services

import (
	"context"
	"log/slog"
	"math"

	"debatebot/models"
)

// Rubric weights for argument strength
const (
	weightCoherence = 0.25
	weightRelevance = 0.30
	weightEvidence  = 0.30
	weightFallacy   = 0.15
)

// Defaults used when the model omits a metric or its output is unusable
const (
	defaultCoherence        = 0.7
	defaultRelevance        = 0.7
	defaultEvidenceStrength = 0.6
	defaultFallacyPenalty   = 0.1
	fallbackStrength        = 0.72
)

// rubricOutput is the JSON object the scoring prompt asks for. Counts are
// floats because models sometimes write 3.0.
type rubricOutput struct {
	Coherence        *float64 `json:"coherence"`
	Relevance        *float64 `json:"relevance"`
	EvidenceStrength *float64 `json:"evidence_strength"`
	FallacyPenalty   *float64 `json:"fallacy_penalty"`
	SentenceCount    *float64 `json:"sentence_count"`
	EvidenceCount    float64  `json:"evidence_count"`
	Fallacies        []string `json:"fallacies"`
}

// ScoringService scores an argument against the debate rubric
type ScoringService struct {
	gen    Generator
	logger *slog.Logger
}

func NewScoringService(gen Generator, logger *slog.Logger) *ScoringService {
	return &ScoringService{gen: gen, logger: logger}
}

// Score always returns a result. Upstream errors and unusable model output
// both produce FallbackScore; the cause is only logged.
func (s *ScoringService) Score(ctx context.Context, req models.ScoringRequest) models.ScoreResult {
	raw, err := s.gen.Generate(ctx, scoringPrompt(req.Topic, req.Argument))
	if err != nil {
		s.logger.Error("scoring generation failed, using fallback", "error", err)
		return FallbackScore(req.Argument)
	}

	extraction := ExtractJSON(raw, rubricOutput{})
	if !extraction.Parsed {
		s.logger.Warn("scoring output unusable, using fallback", "reason", extraction.Reason)
		return FallbackScore(req.Argument)
	}
	return scoreFromRubric(extraction.Value, req.Argument)
}

func scoreFromRubric(out rubricOutput, argument string) models.ScoreResult {
	result := models.ScoreResult{
		Coherence:        clamp01(valueOr(out.Coherence, defaultCoherence)),
		Relevance:        clamp01(valueOr(out.Relevance, defaultRelevance)),
		EvidenceStrength: clamp01(valueOr(out.EvidenceStrength, defaultEvidenceStrength)),
		FallacyPenalty:   clamp01(valueOr(out.FallacyPenalty, defaultFallacyPenalty)),
	}
	result.ArgumentStrength = ArgumentStrength(result.Coherence, result.Relevance, result.EvidenceStrength, result.FallacyPenalty)

	sentences := CountSentences(argument)
	if out.SentenceCount != nil && *out.SentenceCount >= 0 {
		sentences = int(math.Round(*out.SentenceCount))
	}
	fallacies := out.Fallacies
	if fallacies == nil {
		fallacies = []string{}
	}
	result.Details = models.ScoreDetails{
		SentenceCount:     sentences,
		EvidenceCount:     int(math.Max(0, math.Round(out.EvidenceCount))),
		FallaciesDetected: fallacies,
	}

	result.Coherence = round2(result.Coherence)
	result.Relevance = round2(result.Relevance)
	result.EvidenceStrength = round2(result.EvidenceStrength)
	result.FallacyPenalty = round2(result.FallacyPenalty)
	return result
}

// ArgumentStrength combines the rubric metrics into one score in [0,1],
// rounded to two decimals
func ArgumentStrength(coherence, relevance, evidence, fallacy float64) float64 {
	strength := weightCoherence*coherence +
		weightRelevance*relevance +
		weightEvidence*evidence -
		weightFallacy*fallacy
	return round2(clamp01(strength))
}

// FallbackScore is the fixed result used whenever the model cannot score
func FallbackScore(argument string) models.ScoreResult {
	return models.ScoreResult{
		Coherence:        defaultCoherence,
		Relevance:        defaultRelevance,
		EvidenceStrength: defaultEvidenceStrength,
		FallacyPenalty:   defaultFallacyPenalty,
		ArgumentStrength: fallbackStrength,
		Details: models.ScoreDetails{
			SentenceCount:     CountSentences(argument),
			EvidenceCount:     0,
			FallaciesDetected: []string{},
		},
	}
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func percent(v float64) int {
	return int(math.Round(v * 100))
}
