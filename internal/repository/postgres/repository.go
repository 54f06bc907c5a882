package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/portfolioapp/tweet-service/internal/model"
)

type Tweet interface {
	Create(ctx context.Context, tweet model.Tweet) (*model.Tweet, error)
	FindByID(ctx context.Context, id string) (*model.Tweet, error)
	FindAll(ctx context.Context, limit int, offset int) ([]model.Tweet, error)
	All(ctx context.Context) ([]model.Tweet, error)
	Count(ctx context.Context) (int64, error)
	UpdateContent(ctx context.Context, id string, content string, updatedAt time.Time) error
	UpdateComments(ctx context.Context, id string, comments []model.Comment) error
	Like(ctx context.Context, id string, unlike bool) (int64, error)
	Delete(ctx context.Context, id string) error
}

type AdminReply interface {
	Create(ctx context.Context, reply model.AdminReply) (*model.AdminReply, error)
	FindAll(ctx context.Context) ([]model.AdminReply, error)
	FindByTweetID(ctx context.Context, tweetID string) ([]model.AdminReply, error)
	DeleteByTweetID(ctx context.Context, tweetID string) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, email string, at time.Time) error
	Unsubscribe(ctx context.Context, email string) error
}

type PostgresRepository struct {
	Tweet
	AdminReply
	Subscriber
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		Tweet:      newTweetRepo(db),
		AdminReply: newAdminReplyRepo(db),
		Subscriber: newSubscriberRepo(db),
	}
}
