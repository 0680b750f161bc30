package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"debatebot/models"
)

// speechGenerator returns a distinct speech per side and stage so tests can
// check which speech went where
func speechGenerator() *stubGenerator {
	return &stubGenerator{respond: func(prompt string) (string, error) {
		side := "Prop"
		if strings.Contains(prompt, "Your Stance: Opposition") {
			side = "Opp"
		}
		switch {
		case strings.Contains(prompt, "opening statement"):
			return side + " opening claim. More detail.", nil
		case strings.Contains(prompt, "sharp rebuttal"):
			return side + " rebuttal claim. More detail.", nil
		default:
			return side + " closing claim. More detail.", nil
		}
	}}
}

func TestDebateServiceRun(t *testing.T) {
	for _, sequential := range []bool{true, false} {
		name := "parallel"
		if sequential {
			name = "sequential"
		}
		t.Run(name, func(t *testing.T) {
			gen := speechGenerator()
			svc := NewDebateService(gen, testLogger, DebateOptions{Sequential: sequential})

			resp, err := svc.Run(context.Background(), "School uniforms should be mandatory", nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Topic != "School uniforms should be mandatory" {
				t.Errorf("unexpected topic %q", resp.Topic)
			}

			checks := []struct {
				arg  models.Argument
				want string
			}{
				{resp.Proposition.Opening, "Prop opening claim"},
				{resp.Proposition.Rebuttal, "Prop rebuttal claim"},
				{resp.Proposition.Closing, "Prop closing claim"},
				{resp.Opposition.Opening, "Opp opening claim"},
				{resp.Opposition.Rebuttal, "Opp rebuttal claim"},
				{resp.Opposition.Closing, "Opp closing claim"},
			}
			for _, c := range checks {
				if c.arg.Full != c.want+". More detail." {
					t.Errorf("expected full %q, got %q", c.want+". More detail.", c.arg.Full)
				}
				if c.arg.Summary != c.want+"." {
					t.Errorf("expected summary %q, got %q", c.want+".", c.arg.Summary)
				}
			}

			if n := len(gen.seen()); n != 6 {
				t.Errorf("expected 6 generations, got %d", n)
			}
		})
	}
}

func TestDebateServiceHistories(t *testing.T) {
	gen := speechGenerator()
	svc := NewDebateService(gen, testLogger, DebateOptions{})

	if _, err := svc.Run(context.Background(), "AI should be regulated", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prompts := gen.seen()

	if _, ok := promptWith(prompts, "Your Stance: Proposition", "OPPONENT'S ARGUMENTS:\nOpp opening claim. More detail."); !ok {
		t.Errorf("proposition rebuttal should answer the opposition opening")
	}
	if _, ok := promptWith(prompts, "Your Stance: Opposition", "OPPONENT'S ARGUMENTS:\nProp opening claim. More detail."); !ok {
		t.Errorf("opposition rebuttal should answer the proposition opening")
	}
	propHistory := "Your Opening: Prop opening claim. More detail.\nOpponent's Rebuttal: Opp rebuttal claim. More detail."
	if _, ok := promptWith(prompts, "Your Stance: Proposition", "DEBATE SO FAR:\n"+propHistory); !ok {
		t.Errorf("proposition closing should see its opening and the opposing rebuttal")
	}
	oppHistory := "Your Opening: Opp opening claim. More detail.\nOpponent's Rebuttal: Prop rebuttal claim. More detail."
	if _, ok := promptWith(prompts, "Your Stance: Opposition", "DEBATE SO FAR:\n"+oppHistory); !ok {
		t.Errorf("opposition closing should see its opening and the opposing rebuttal")
	}
	for _, p := range prompts {
		if !strings.Contains(p, "Motion: AI should be regulated") {
			t.Errorf("prompt missing motion: %q", p)
		}
		if !strings.Contains(p, "max 150 words") {
			t.Errorf("prompt missing word limit: %q", p)
		}
	}
}

func TestDebateServiceEmitsInSpeakingOrder(t *testing.T) {
	svc := NewDebateService(speechGenerator(), testLogger, DebateOptions{})

	var events []ArgumentEvent
	_, err := svc.Run(context.Background(), "Homework should be banned", func(ev ArgumentEvent) {
		events = append(events, ev)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		side  models.Side
		round models.Round
	}{
		{models.SideProposition, models.RoundOpening},
		{models.SideOpposition, models.RoundOpening},
		{models.SideProposition, models.RoundRebuttal},
		{models.SideOpposition, models.RoundRebuttal},
		{models.SideProposition, models.RoundClosing},
		{models.SideOpposition, models.RoundClosing},
	}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, w := range want {
		if events[i].Side != w.side || events[i].Round != w.round {
			t.Errorf("event %d: got %s %s, want %s %s", i, events[i].Side, events[i].Round, w.side, w.round)
		}
	}
}

func TestDebateServiceFailureAbortsDebate(t *testing.T) {
	upstream := errors.New("quota exceeded")
	gen := &stubGenerator{respond: func(prompt string) (string, error) {
		if strings.Contains(prompt, "sharp rebuttal") {
			return "", upstream
		}
		return "Fine speech.", nil
	}}
	svc := NewDebateService(gen, testLogger, DebateOptions{Sequential: true})

	resp, err := svc.Run(context.Background(), "Cats are better than dogs", nil)
	if !errors.Is(err, upstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if resp != nil {
		t.Errorf("expected no partial result, got %+v", resp)
	}
	for _, p := range gen.seen() {
		if strings.Contains(p, "closing argument") {
			t.Errorf("closings should not be generated after a failed rebuttal")
		}
	}
}

func TestDebateServiceRejectsEmptySpeech(t *testing.T) {
	for _, text := range []string{"", "  ", "\n\t \n"} {
		svc := NewDebateService(fixed(text), testLogger, DebateOptions{})
		resp, err := svc.Run(context.Background(), "Space exploration is worth it", nil)
		if !errors.Is(err, ErrEmptyResponse) {
			t.Errorf("speech %q: expected ErrEmptyResponse, got %v", text, err)
		}
		if resp != nil {
			t.Errorf("speech %q: expected no debate, got %+v", text, resp)
		}
	}
}

func TestDebateServiceKeepsSpeechVerbatim(t *testing.T) {
	svc := NewDebateService(fixed("  Opening line. Detail.\n"), testLogger, DebateOptions{})
	resp, err := svc.Run(context.Background(), "Space exploration is worth it", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Proposition.Opening.Full != "  Opening line. Detail.\n" {
		t.Errorf("expected full text unchanged, got %q", resp.Proposition.Opening.Full)
	}
	if resp.Proposition.Opening.Summary != "Opening line." {
		t.Errorf("unexpected summary %q", resp.Proposition.Opening.Summary)
	}
}

type memoryArchive struct {
	mu      sync.Mutex
	records []models.DebateRecord
	err     error
}

func (a *memoryArchive) SaveDebate(_ context.Context, r models.DebateRecord) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return "", a.err
	}
	a.records = append(a.records, r)
	return "debate-1", nil
}

func TestDebateServiceArchive(t *testing.T) {
	debate := &models.DebateResponse{Topic: "Four-day work week"}

	if id := NewDebateService(fixed("x"), testLogger, DebateOptions{}).Archive(context.Background(), debate); id != "" {
		t.Errorf("expected no id without an archive, got %q", id)
	}

	archive := &memoryArchive{}
	svc := NewDebateService(fixed("x"), testLogger, DebateOptions{}).WithArchive(archive)
	if id := svc.Archive(context.Background(), debate); id != "debate-1" {
		t.Errorf("expected archived id, got %q", id)
	}
	if len(archive.records) != 1 || archive.records[0].Topic != "Four-day work week" || archive.records[0].CreatedAt.IsZero() {
		t.Errorf("unexpected archived records %+v", archive.records)
	}

	archive.err = errors.New("disk full")
	if id := svc.Archive(context.Background(), debate); id != "" {
		t.Errorf("expected empty id on archive failure, got %q", id)
	}
}
