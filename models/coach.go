package models

// ScoringRequest is the payload for rubric scoring of a single argument
type ScoringRequest struct {
	Argument string `json:"argument" binding:"required"`
	Topic    string `json:"topic"`
}

// ScoreDetails carries the counts reported alongside the rubric metrics
type ScoreDetails struct {
	SentenceCount     int      `json:"sentenceCount"`
	EvidenceCount     int      `json:"evidenceCount"`
	FallaciesDetected []string `json:"fallaciesDetected"`
}

// ScoreResult is the rubric evaluation of an argument. All metrics are in [0,1].
type ScoreResult struct {
	Coherence        float64      `json:"coherence"`
	Relevance        float64      `json:"relevance"`
	EvidenceStrength float64      `json:"evidenceStrength"`
	FallacyPenalty   float64      `json:"fallacyPenalty"`
	ArgumentStrength float64      `json:"argumentStrength"`
	Details          ScoreDetails `json:"details"`
}

// Scores is the subset of a ScoreResult a client sends back for coaching
type Scores struct {
	Coherence        float64 `json:"coherence"`
	Relevance        float64 `json:"relevance"`
	EvidenceStrength float64 `json:"evidenceStrength"`
	FallacyPenalty   float64 `json:"fallacyPenalty"`
	ArgumentStrength float64 `json:"argumentStrength"`
}

// FeedbackRequest asks for coaching toward a target score (0-100)
type FeedbackRequest struct {
	Argument    string `json:"argument"`
	Topic       string `json:"topic"`
	Scores      Scores `json:"scores"`
	TargetScore int    `json:"target_score" binding:"gte=0,lte=100"`
}

// Tip is a single coaching suggestion tied to a rubric metric
type Tip struct {
	Metric string `json:"metric"`
	Tip    string `json:"tip"`
}

// FeedbackResult is the coaching response
type FeedbackResult struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Tips    []Tip  `json:"tips"`
}
