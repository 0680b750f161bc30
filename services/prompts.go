package services

import (
	"fmt"
	"strings"

	"debatebot/models"
)

// debatePrompt builds the scripted debate prompt for one side and round.
// history is the opponent's opening for rebuttals and the accumulated
// exchange for closings. Anything other than opening or rebuttal gets the
// closing prompt.
func debatePrompt(topic string, side models.Side, round models.Round, history string) string {
	switch round {
	case models.RoundOpening:
		return fmt.Sprintf(`You are a world-class debater participating in a formal debate.
Motion: %s
Your Stance: %s

Write a compelling, concise opening statement (max 150 words).
Present 2-3 clear, distinct arguments. Be persuasive and articulate.`, topic, side)

	case models.RoundRebuttal:
		return fmt.Sprintf(`You are a world-class debater.
Motion: %s
Your Stance: %s

OPPONENT'S ARGUMENTS:
%s

Write a sharp rebuttal (max 150 words) countering the opponent's points.
Address their specific arguments and provide counter-evidence.`, topic, side, history)

	default:
		return fmt.Sprintf(`You are a world-class debater giving your closing argument.
Motion: %s
Your Stance: %s

DEBATE SO FAR:
%s

Write a powerful closing statement (max 150 words).
Summarize your strongest points and make a final appeal.`, topic, side, history)
	}
}

// closingHistory is what each side sees of the debate before its closing
func closingHistory(ownOpening, opponentRebuttal string) string {
	return fmt.Sprintf("Your Opening: %s\nOpponent's Rebuttal: %s", ownOpening, opponentRebuttal)
}

// formatLiveHistory renders prior live exchanges as a labeled transcript
func formatLiveHistory(history []models.HistoryItem) string {
	if len(history) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\n\nPREVIOUS EXCHANGES:\n")
	for _, item := range history {
		if item.Type == models.SpeakerUser {
			sb.WriteString(fmt.Sprintf("USER'S ARGUMENT: %s\n", item.Text))
		} else {
			sb.WriteString(fmt.Sprintf("AI COUNTER: %s\n", item.Text))
		}
	}
	return sb.String()
}

// livePrompt builds the counter-argument prompt for a live round
func livePrompt(topic, userArgument string, round models.Round, history []models.HistoryItem) string {
	historyContext := formatLiveHistory(history)

	switch round {
	case models.RoundOpening:
		return fmt.Sprintf(`You are an expert AI debater analyzing and countering arguments.
Motion: %s
Your Role: Opposition (countering the user's position)

USER'S OPENING ARGUMENT:
%s
%s

Generate a compelling counter-argument (max 200 words) that:
1. Acknowledges the user's point briefly
2. Presents clear counter-evidence or reasoning
3. Explains why the opposing view is stronger

Be analytical, respectful, and persuasive. Write in a formal debate style.`, topic, userArgument, historyContext)

	case models.RoundRebuttal:
		return fmt.Sprintf(`You are an expert AI debater in a rebuttal round.
Motion: %s
Your Role: Opposition (countering the user's position)

USER'S REBUTTAL ARGUMENT:
%s
%s

Generate a sharp rebuttal (max 200 words) that:
1. Directly addresses the user's specific points
2. Identifies weaknesses in their reasoning
3. Reinforces your counter-position with evidence

Be analytical and point out logical gaps. Maintain a respectful but firm debate tone.`, topic, userArgument, historyContext)

	default:
		return fmt.Sprintf(`You are an expert AI debater giving a closing counter-argument.
Motion: %s
Your Role: Opposition (summarizing why the user's position is weaker)

USER'S CLOSING ARGUMENT:
%s
%s

Generate a powerful closing counter-argument (max 200 words) that:
1. Summarizes the key weaknesses in the user's overall position
2. Highlights the strongest points from your counter-arguments
3. Makes a compelling final case for the opposing view

Be persuasive and conclusive.`, topic, userArgument, historyContext)
	}
}

func scoringPrompt(topic, argument string) string {
	return fmt.Sprintf(`Act as an impartial debate adjudicator. Evaluate the following argument made on the motion "%s".

Argument:
"""
%s
"""

Score the argument on these criteria, each as a number between 0 and 1:
- coherence: logical structure and flow between claims
- relevance: how directly the argument addresses the motion
- evidence_strength: quality and specificity of supporting evidence
- fallacy_penalty: severity of logical fallacies (0 means none)

Also count the sentences and the distinct pieces of evidence, and name any logical fallacies you detect.

Required Output Format (JSON):
{
  "coherence": 0.0,
  "relevance": 0.0,
  "evidence_strength": 0.0,
  "fallacy_penalty": 0.0,
  "sentence_count": 0,
  "evidence_count": 0,
  "fallacies": ["name of fallacy"]
}

Provide ONLY the JSON output without additional text or markdown formatting.`, topic, argument)
}

func feedbackPrompt(req models.FeedbackRequest, current, gap int) string {
	return fmt.Sprintf(`Act as a supportive debate coach. A student made the following argument on the motion "%s".

Argument:
"""
%s
"""

Current scores:
- Coherence: %d%%
- Relevance: %d%%
- Evidence strength: %d%%
- Fallacy penalty: %d%%
- Overall argument strength: %d%%

The student's target is %d%%, a gap of %d points.

Give focused coaching that closes the gap. Offer 2-3 tips, each tied to one metric
(coherence, relevance, evidence or logic).

Required Output Format (JSON):
{
  "type": "success | improvement | warning",
  "message": "one or two sentences on where the argument stands",
  "tips": [
    {"metric": "coherence", "tip": "specific, actionable advice"}
  ]
}

Provide ONLY the JSON output without additional text or markdown formatting.`,
		req.Topic, req.Argument,
		percent(req.Scores.Coherence), percent(req.Scores.Relevance),
		percent(req.Scores.EvidenceStrength), percent(req.Scores.FallacyPenalty),
		current, req.TargetScore, gap,
	)
}
