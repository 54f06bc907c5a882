package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/portfolioapp/tweet-service/internal/dto"
	"github.com/portfolioapp/tweet-service/internal/model"
	"github.com/portfolioapp/tweet-service/internal/moderation"
	"github.com/portfolioapp/tweet-service/internal/repository"
	"github.com/portfolioapp/tweet-service/internal/repository/redisrepo"
	"go.uber.org/zap"
)

const previewLen = 100

type moderationService struct {
	logger *zap.Logger
	repo   *repository.Repository
	gate   *moderation.Gate
}

func newModerationService(logger *zap.Logger, repo *repository.Repository, gate *moderation.Gate) Moderation {
	return &moderationService{
		logger: logger,
		repo:   repo,
		gate:   gate,
	}
}

// Sweep re-scans every stored tweet against the prohibited-word check (only
// that check, not length or the spam heuristics) and deletes the ones that
// fail. Word lists grow over time, so a tweet that passed the gate at write
// time can still be flagged here. Running it again right away removes
// nothing.
func (s *moderationService) Sweep(ctx context.Context) (*dto.ModerationResult, error) {
	flagged, err := s.flagged(ctx)
	if err != nil {
		return nil, err
	}

	removed := []string{}
	for _, tweet := range flagged {
		if !tweet.IsAdmin() {
			if err := s.repo.Postgres.AdminReply.DeleteByTweetID(ctx, tweet.ID); err != nil {
				s.logger.Sugar().Errorf("failed to delete admin replies for flagged tweet(%s): %s", tweet.ID, err.Error())
				return nil, ErrInternal
			}
		}
		if err := s.repo.Postgres.Tweet.Delete(ctx, tweet.ID); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Sugar().Errorf("failed to delete flagged tweet(%s): %s", tweet.ID, err.Error())
			return nil, ErrInternal
		}
		removed = append(removed, tweet.ID)
	}

	if len(removed) > 0 {
		s.invalidateCache(ctx)
		s.logger.Sugar().Infof("moderation sweep removed %d tweet(s)", len(removed))
	}

	return &dto.ModerationResult{
		Success:    true,
		Removed:    len(removed),
		RemovedIDs: removed,
	}, nil
}

// Status is the read-only audit view: the same scan, nothing deleted,
// content truncated to a preview.
func (s *moderationService) Status(ctx context.Context) (*dto.ModerationStatus, error) {
	flagged, err := s.flagged(ctx)
	if err != nil {
		return nil, err
	}

	out := []dto.FlaggedTweet{}
	for _, tweet := range flagged {
		out = append(out, dto.FlaggedTweet{
			ID:      tweet.ID,
			Author:  tweet.Author,
			Handle:  tweet.Handle,
			Preview: preview(tweet.Content),
		})
	}

	return &dto.ModerationStatus{Success: true, Flagged: out}, nil
}

func (s *moderationService) flagged(ctx context.Context) ([]model.Tweet, error) {
	tweets, err := s.repo.Postgres.Tweet.All(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to load tweets for moderation scan: %s", err.Error())
		return nil, ErrInternal
	}

	var flagged []model.Tweet
	for _, tweet := range tweets {
		if s.gate.ContainsBadWords(tweet.Content + " " + tweet.Author + " " + tweet.Handle) {
			flagged = append(flagged, tweet)
		}
	}

	return flagged, nil
}

func (s *moderationService) invalidateCache(ctx context.Context) {
	keys, err := s.repo.Redis.Default.Keys(ctx, redisrepo.TWEET_KEYS_PATTERN).Result()
	if err != nil {
		s.logger.Sugar().Errorf("failed to list tweet cache keys: %s", err.Error())
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.repo.Redis.Default.Del(ctx, keys...).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate tweet cache: %s", err.Error())
	}
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLen {
		return content
	}
	return string(runes[:previewLen])
}
