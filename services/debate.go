package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"debatebot/models"

	"golang.org/x/sync/errgroup"
)

// Archiver stores finished debates. Implementations live in package db.
type Archiver interface {
	SaveDebate(ctx context.Context, record models.DebateRecord) (string, error)
}

// ArgumentEvent reports one generated argument while a debate runs
type ArgumentEvent struct {
	Side     models.Side
	Round    models.Round
	Argument models.Argument
}

// DebateOptions tunes the debate pipeline
type DebateOptions struct {
	// Sequential disables running the independent halves of each round
	// concurrently.
	Sequential   bool
	SummaryWords int
}

// DebateService scripts a full two-sided debate on a motion
type DebateService struct {
	gen     Generator
	logger  *slog.Logger
	opts    DebateOptions
	archive Archiver
}

func NewDebateService(gen Generator, logger *slog.Logger, opts DebateOptions) *DebateService {
	if opts.SummaryWords <= 0 {
		opts.SummaryWords = defaultSummaryWords
	}
	return &DebateService{gen: gen, logger: logger, opts: opts}
}

// WithArchive sets the archive used by Archive. A nil archiver disables it.
func (s *DebateService) WithArchive(a Archiver) *DebateService {
	s.archive = a
	return s
}

// Run generates openings, rebuttals and closings for both sides. Each
// rebuttal answers the opposing opening; each closing sees its own opening
// and the opponent's rebuttal. Any failed generation aborts the debate.
//
// onArgument, when non-nil, is called once per argument in speaking order
// (proposition before opposition, opening through closing) from the
// calling goroutine.
func (s *DebateService) Run(ctx context.Context, topic string, onArgument func(ArgumentEvent)) (*models.DebateResponse, error) {
	resp := &models.DebateResponse{Topic: topic}
	start := time.Now()

	emit := func(round models.Round, prop, opp string) {
		for _, side := range []models.Side{models.SideProposition, models.SideOpposition} {
			text := prop
			if side == models.SideOpposition {
				text = opp
			}
			arg := models.Argument{Summary: Summarize(text, s.opts.SummaryWords), Full: text}
			resp.Side(side).Set(round, arg)
			if onArgument != nil {
				onArgument(ArgumentEvent{Side: side, Round: round, Argument: arg})
			}
		}
	}

	propOpening, oppOpening, err := s.pair(ctx, topic, models.RoundOpening, "", "")
	if err != nil {
		return nil, err
	}
	emit(models.RoundOpening, propOpening, oppOpening)

	propRebuttal, oppRebuttal, err := s.pair(ctx, topic, models.RoundRebuttal, oppOpening, propOpening)
	if err != nil {
		return nil, err
	}
	emit(models.RoundRebuttal, propRebuttal, oppRebuttal)

	propClosing, oppClosing, err := s.pair(ctx, topic, models.RoundClosing,
		closingHistory(propOpening, oppRebuttal),
		closingHistory(oppOpening, propRebuttal),
	)
	if err != nil {
		return nil, err
	}
	emit(models.RoundClosing, propClosing, oppClosing)

	s.logger.Info("debate generated", "topic", topic, "duration", time.Since(start))
	return resp, nil
}

// Archive stores a finished debate and returns its id. It returns an empty
// id when no archive is configured. Errors are logged, never returned: an
// archive outage must not fail a debate that was already generated.
func (s *DebateService) Archive(ctx context.Context, debate *models.DebateResponse) string {
	if s.archive == nil || debate == nil {
		return ""
	}
	id, err := s.archive.SaveDebate(ctx, models.DebateRecord{
		Topic:     debate.Topic,
		Debate:    *debate,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("failed to archive debate", "topic", debate.Topic, "error", err)
		return ""
	}
	return id
}

// pair generates the proposition and opposition speech for one round.
// The two calls share no data, so they run concurrently unless the
// service is configured to be sequential.
func (s *DebateService) pair(ctx context.Context, topic string, round models.Round, propHistory, oppHistory string) (string, string, error) {
	if s.opts.Sequential {
		prop, err := s.generate(ctx, topic, models.SideProposition, round, propHistory)
		if err != nil {
			return "", "", err
		}
		opp, err := s.generate(ctx, topic, models.SideOpposition, round, oppHistory)
		if err != nil {
			return "", "", err
		}
		return prop, opp, nil
	}

	var prop, opp string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		prop, err = s.generate(gctx, topic, models.SideProposition, round, propHistory)
		return err
	})
	g.Go(func() error {
		var err error
		opp, err = s.generate(gctx, topic, models.SideOpposition, round, oppHistory)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", "", err
	}
	return prop, opp, nil
}

func (s *DebateService) generate(ctx context.Context, topic string, side models.Side, round models.Round, history string) (string, error) {
	text, err := s.gen.Generate(ctx, debatePrompt(topic, side, round, history))
	if err != nil {
		return "", fmt.Errorf("failed to generate %s %s: %w", side, round, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("failed to generate %s %s: %w", side, round, ErrEmptyResponse)
	}
	return text, nil
}
