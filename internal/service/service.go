package service

import (
	"context"

	"github.com/portfolioapp/tweet-service/internal/dto"
	"github.com/portfolioapp/tweet-service/internal/model"
	"github.com/portfolioapp/tweet-service/internal/moderation"
	"github.com/portfolioapp/tweet-service/internal/repository"
	"go.uber.org/zap"
)

const (
	DEFAULT_LIMIT = 50
	MAX_LIMIT     = 100
)

// clampPage normalizes pagination to limit in [1, MAX_LIMIT] (default 50)
// and offset >= 0.
func clampPage(limit *int, offset *int) {
	if *limit <= 0 {
		*limit = DEFAULT_LIMIT
	}
	if *limit > MAX_LIMIT {
		*limit = MAX_LIMIT
	}
	if *offset < 0 {
		*offset = 0
	}
}

type Tweet interface {
	Create(ctx context.Context, req dto.CreateTweetRequest) (*model.Tweet, error)
	List(ctx context.Context, limit int, offset int) (*dto.TweetsPage, error)
	FindByID(ctx context.Context, id string) (*model.Tweet, error)
	AddComment(ctx context.Context, tweetID string, payload dto.CommentPayload) (*model.Tweet, error)
	AddAdminReply(ctx context.Context, tweetID string, req dto.UpdateTweetRequest) (*model.AdminReply, error)
	Edit(ctx context.Context, id string, req dto.EditTweetRequest) (*model.Tweet, error)
	Delete(ctx context.Context, id string, isAdmin bool) error
	Like(ctx context.Context, id string, unlike bool) (int64, error)
}

type Moderation interface {
	Sweep(ctx context.Context) (*dto.ModerationResult, error)
	Status(ctx context.Context) (*dto.ModerationStatus, error)
}

type Newsletter interface {
	Subscribe(ctx context.Context, email string) error
	Unsubscribe(ctx context.Context, email string) error
}

type Service struct {
	Tweet
	Moderation
	Newsletter
}

func New(logger *zap.Logger, repo *repository.Repository, gate *moderation.Gate) *Service {
	return &Service{
		Tweet:      newTweetService(logger, repo, gate),
		Moderation: newModerationService(logger, repo, gate),
		Newsletter: newNewsletterService(logger, repo, gate),
	}
}
