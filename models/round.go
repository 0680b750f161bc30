package models

// Round is a debate stage. The zero value is RoundUnknown.
type Round int

const (
	RoundUnknown Round = iota
	RoundOpening
	RoundRebuttal
	RoundClosing
)

// Rounds lists the recognized rounds in speaking order
var Rounds = []Round{RoundOpening, RoundRebuttal, RoundClosing}

func (r Round) String() string {
	switch r {
	case RoundOpening:
		return "opening"
	case RoundRebuttal:
		return "rebuttal"
	case RoundClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// ParseRound maps a client supplied round name onto a Round. Names match
// exactly: ok is false for anything other than "opening", "rebuttal" or
// "closing", including other casings. Callers decide how to treat that case.
func ParseRound(s string) (Round, bool) {
	switch s {
	case "opening":
		return RoundOpening, true
	case "rebuttal":
		return RoundRebuttal, true
	case "closing":
		return RoundClosing, true
	default:
		return RoundUnknown, false
	}
}

// Side is one of the two benches in a formal debate
type Side int

const (
	SideProposition Side = iota
	SideOpposition
)

func (s Side) String() string {
	if s == SideOpposition {
		return "Opposition"
	}
	return "Proposition"
}

// Opponent returns the other bench
func (s Side) Opponent() Side {
	if s == SideOpposition {
		return SideProposition
	}
	return SideOpposition
}
