package models

// DebateRequest is the payload for a scripted debate on a motion
type DebateRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// Argument is one generated speech together with its one-line summary
type Argument struct {
	Summary string `json:"summary" bson:"summary"`
	Full    string `json:"full" bson:"full"`
}

// StageSet holds the three speeches delivered by one side
type StageSet struct {
	Opening  Argument `json:"opening" bson:"opening"`
	Rebuttal Argument `json:"rebuttal" bson:"rebuttal"`
	Closing  Argument `json:"closing" bson:"closing"`
}

// Set stores an argument under the given round. Unknown rounds are ignored.
func (s *StageSet) Set(round Round, arg Argument) {
	switch round {
	case RoundOpening:
		s.Opening = arg
	case RoundRebuttal:
		s.Rebuttal = arg
	case RoundClosing:
		s.Closing = arg
	}
}

// DebateResponse is the full scripted debate returned to the client
type DebateResponse struct {
	Topic       string   `json:"topic" bson:"topic"`
	Proposition StageSet `json:"proposition" bson:"proposition"`
	Opposition  StageSet `json:"opposition" bson:"opposition"`
}

// Side returns the stage set for the given side
func (r *DebateResponse) Side(side Side) *StageSet {
	if side == SideOpposition {
		return &r.Opposition
	}
	return &r.Proposition
}
