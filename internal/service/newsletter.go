package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/portfolioapp/tweet-service/internal/moderation"
	"github.com/portfolioapp/tweet-service/internal/repository"
	"go.uber.org/zap"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type newsletterService struct {
	logger *zap.Logger
	repo   *repository.Repository
	gate   *moderation.Gate
}

func newNewsletterService(logger *zap.Logger, repo *repository.Repository, gate *moderation.Gate) Newsletter {
	return &newsletterService{
		logger: logger,
		repo:   repo,
		gate:   gate,
	}
}

func (s *newsletterService) Subscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	if s.gate.ContainsBadWords(email) {
		return moderation.ErrProhibitedWord
	}

	if err := s.repo.Postgres.Subscriber.Subscribe(ctx, email, time.Now()); err != nil {
		s.logger.Sugar().Errorf("failed to subscribe %s: %s", email, err.Error())
		return ErrInternal
	}

	return nil
}

func (s *newsletterService) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	if err := s.repo.Postgres.Subscriber.Unsubscribe(ctx, email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotSubscribed
		}
		s.logger.Sugar().Errorf("failed to unsubscribe %s: %s", email, err.Error())
		return ErrInternal
	}

	return nil
}
