package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"debatebot/models"
)

// ErrUnknownRound is returned in strict mode for a round that is not
// opening, rebuttal or closing
var ErrUnknownRound = errors.New("unknown round")

// LiveCounterService answers a user's live argument with an AI counter
type LiveCounterService struct {
	gen    Generator
	logger *slog.Logger
	strict bool
}

// NewLiveCounterService creates the service. With strictRounds set,
// unrecognized rounds are rejected instead of treated as closing.
func NewLiveCounterService(gen Generator, logger *slog.Logger, strictRounds bool) *LiveCounterService {
	return &LiveCounterService{gen: gen, logger: logger, strict: strictRounds}
}

// ResolveRound maps the requested round onto a prompt template. An
// unrecognized round takes the closing template unless the service is
// strict, in which case ErrUnknownRound is returned.
func (s *LiveCounterService) ResolveRound(name string) (models.Round, error) {
	round, ok := models.ParseRound(name)
	if ok {
		return round, nil
	}
	if s.strict {
		return models.RoundUnknown, fmt.Errorf("%w: %q", ErrUnknownRound, name)
	}
	s.logger.Warn("unrecognized round, using closing template", "round", name)
	return models.RoundClosing, nil
}

// Counter generates the counter-argument and splits it into points.
// Generation failures are returned to the caller.
func (s *LiveCounterService) Counter(ctx context.Context, req models.LiveDebateRequest) (*models.LiveDebateResponse, error) {
	round, err := s.ResolveRound(req.Round)
	if err != nil {
		return nil, err
	}

	text, err := s.gen.Generate(ctx, livePrompt(req.Topic, req.UserArgument, round, req.ArgumentHistory))
	if err != nil {
		return nil, fmt.Errorf("failed to generate counter-argument: %w", err)
	}

	return &models.LiveDebateResponse{
		CounterArgument: text,
		Points:          SplitPoints(text),
	}, nil
}
