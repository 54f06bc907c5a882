package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/portfolioapp/tweet-service/internal/dto"
	"github.com/portfolioapp/tweet-service/internal/model"
	"github.com/portfolioapp/tweet-service/internal/moderation"
	"github.com/portfolioapp/tweet-service/internal/repository"
	"github.com/portfolioapp/tweet-service/internal/repository/redisrepo"
	"github.com/portfolioapp/tweet-service/internal/thread"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	maxAuthorLen = 50
	maxHandleLen = 30
)

type tweetService struct {
	logger *zap.Logger
	repo   *repository.Repository
	gate   *moderation.Gate
}

func newTweetService(logger *zap.Logger, repo *repository.Repository, gate *moderation.Gate) Tweet {
	return &tweetService{
		logger: logger,
		repo:   repo,
		gate:   gate,
	}
}

func editWindow() time.Duration {
	if d := viper.GetDuration("tweets.edit_window"); d > 0 {
		return d
	}
	return time.Hour
}

func cacheTTL() time.Duration {
	if d := viper.GetDuration("cache.ttl"); d > 0 {
		return d
	}
	return 5 * time.Minute
}

func (s *tweetService) Create(ctx context.Context, req dto.CreateTweetRequest) (*model.Tweet, error) {
	if res := s.gate.Validate(req.Author, maxAuthorLen); !res.Valid {
		return nil, res.Err
	}
	if res := s.gate.Validate(req.Handle, maxHandleLen); !res.Valid {
		return nil, res.Err
	}
	res := s.gate.ValidatePost(req.Content, req.Author, req.Handle, moderation.DefaultTweetMaxLen)
	if !res.Valid {
		return nil, res.Err
	}

	now := time.Now()
	tweet := model.Tweet{
		ID:          model.NewTweetID(req.IsAdmin, now),
		Author:      moderation.Sanitize(req.Author),
		Handle:      moderation.Sanitize(req.Handle),
		Content:     res.Sanitized,
		AvatarImage: req.AvatarImage,
		ImageURL:    req.ImageURL,
		Comments:    []model.Comment{},
		CreatedAt:   now,
	}

	created, err := s.repo.Postgres.Tweet.Create(ctx, tweet)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create tweet(%s): %s", tweet.ID, err.Error())
		return nil, ErrInternal
	}

	s.invalidateCache(ctx)

	return created, nil
}

func (s *tweetService) List(ctx context.Context, limit int, offset int) (*dto.TweetsPage, error) {
	clampPage(&limit, &offset)

	cached, err := redisrepo.Get[dto.TweetsPage](s.repo.Redis.Default, ctx, redisrepo.TweetsPageKey(limit, offset))
	if err == nil && cached != nil {
		return cached, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get tweets page(%d:%d) from redis: %s", limit, offset, err.Error())
	}

	tweets, err := s.repo.Postgres.Tweet.FindAll(ctx, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find tweets from postgres: %s", err.Error())
		return nil, ErrInternal
	}

	total, err := s.repo.Postgres.Tweet.Count(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count tweets: %s", err.Error())
		return nil, ErrInternal
	}

	replies, err := s.repo.Postgres.AdminReply.FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find admin replies: %s", err.Error())
		return nil, ErrInternal
	}

	page := &dto.TweetsPage{
		Success: true,
		Tweets:  thread.ComposeAll(tweets, replies),
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}
	if page.Tweets == nil {
		page.Tweets = []model.Tweet{}
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.TweetsPageKey(limit, offset), page, cacheTTL()); err != nil {
		s.logger.Sugar().Errorf("failed to cache tweets page(%d:%d): %s", limit, offset, err.Error())
	}

	return page, nil
}

func (s *tweetService) FindByID(ctx context.Context, id string) (*model.Tweet, error) {
	cached, err := redisrepo.Get[model.Tweet](s.repo.Redis.Default, ctx, redisrepo.TweetKey(id))
	if err == nil && cached != nil {
		return cached, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get tweet(%s) from redis: %s", id, err.Error())
	}

	tweet, err := s.loadTweet(ctx, id)
	if err != nil {
		return nil, err
	}

	replies, err := s.repo.Postgres.AdminReply.FindByTweetID(ctx, id)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find admin replies for tweet(%s): %s", id, err.Error())
		return nil, ErrInternal
	}

	composed := thread.Compose(*tweet, replies)

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.TweetKey(id), composed, cacheTTL()); err != nil {
		s.logger.Sugar().Errorf("failed to cache tweet(%s): %s", id, err.Error())
	}

	return &composed, nil
}

func (s *tweetService) AddComment(ctx context.Context, tweetID string, payload dto.CommentPayload) (*model.Tweet, error) {
	if res := s.gate.Validate(payload.Author, maxAuthorLen); !res.Valid {
		return nil, res.Err
	}
	res := s.gate.ValidatePost(payload.Content, payload.Author, "", moderation.DefaultCommentMaxLen)
	if !res.Valid {
		return nil, res.Err
	}

	tweet, err := s.loadTweet(ctx, tweetID)
	if err != nil {
		return nil, err
	}

	comment := model.NewComment(moderation.Sanitize(payload.Author), res.Sanitized, false, time.Now())
	tweet.Comments = append(tweet.Comments, comment)

	if err := s.repo.Postgres.Tweet.UpdateComments(ctx, tweetID, tweet.Comments); err != nil {
		s.logger.Sugar().Errorf("failed to update comments for tweet(%s): %s", tweetID, err.Error())
		return nil, ErrInternal
	}

	s.invalidateCache(ctx)

	return tweet, nil
}

// AddAdminReply persists the reply as a free-standing record instead of
// mutating the tweet's own comments, so the admin write path never races a
// concurrent user comment on the same row. The positional index from the
// client is resolved to the target comment's stable id here, while the
// comments snapshot still matches what the admin was looking at.
func (s *tweetService) AddAdminReply(ctx context.Context, tweetID string, req dto.UpdateTweetRequest) (*model.AdminReply, error) {
	payload := req.Comments[len(req.Comments)-1]

	res := s.gate.Validate(payload.Content, moderation.DefaultCommentMaxLen)
	if !res.Valid {
		return nil, res.Err
	}

	tweet, err := s.loadTweet(ctx, tweetID)
	if err != nil {
		return nil, err
	}

	reply := model.AdminReply{
		ID:           uuid.NewString(),
		TweetID:      tweetID,
		CommentIndex: req.CommentIndex,
		ReplyID:      req.ReplyID,
		Author:       moderation.Sanitize(payload.Author),
		Content:      res.Sanitized,
		Timestamp:    time.Now(),
	}
	if req.CommentIndex != nil && *req.CommentIndex >= 0 && *req.CommentIndex < len(tweet.Comments) {
		reply.CommentID = &tweet.Comments[*req.CommentIndex].ID
	}

	created, err := s.repo.Postgres.AdminReply.Create(ctx, reply)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create admin reply for tweet(%s): %s", tweetID, err.Error())
		return nil, ErrInternal
	}

	s.invalidateCache(ctx)

	return created, nil
}

func (s *tweetService) Edit(ctx context.Context, id string, req dto.EditTweetRequest) (*model.Tweet, error) {
	tweet, err := s.loadTweet(ctx, id)
	if err != nil {
		return nil, err
	}

	if !req.IsAdmin && (tweet.IsAdmin() || tweet.Handle != req.Handle) {
		return nil, ErrNotOwner
	}
	if time.Since(tweet.CreatedAt) > editWindow() {
		return nil, ErrEditWindowExpired
	}

	res := s.gate.ValidatePost(req.Content, tweet.Author, tweet.Handle, moderation.DefaultTweetMaxLen)
	if !res.Valid {
		return nil, res.Err
	}

	now := time.Now()
	if err := s.repo.Postgres.Tweet.UpdateContent(ctx, id, res.Sanitized, now); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTweetNotFound
		}
		s.logger.Sugar().Errorf("failed to edit tweet(%s): %s", id, err.Error())
		return nil, ErrInternal
	}

	tweet.Content = res.Sanitized
	tweet.Edited = true
	tweet.UpdatedAt = &now

	s.invalidateCache(ctx)

	return tweet, nil
}

func (s *tweetService) Delete(ctx context.Context, id string, isAdmin bool) error {
	tweet, err := s.loadTweet(ctx, id)
	if err != nil {
		return err
	}

	if !isAdmin && tweet.IsAdmin() {
		return ErrNotOwner
	}

	// dependent replies go first; the FK cascade would catch them anyway but
	// the in-memory store used in tests has no such luxury
	if err := s.repo.Postgres.AdminReply.DeleteByTweetID(ctx, id); err != nil {
		s.logger.Sugar().Errorf("failed to delete admin replies for tweet(%s): %s", id, err.Error())
		return ErrInternal
	}

	if err := s.repo.Postgres.Tweet.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTweetNotFound
		}
		s.logger.Sugar().Errorf("failed to delete tweet(%s): %s", id, err.Error())
		return ErrInternal
	}

	s.invalidateCache(ctx)

	return nil
}

func (s *tweetService) Like(ctx context.Context, id string, unlike bool) (int64, error) {
	likes, err := s.repo.Postgres.Tweet.Like(ctx, id, unlike)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrTweetNotFound
		}
		s.logger.Sugar().Errorf("failed to like tweet(%s): %s", id, err.Error())
		return 0, ErrInternal
	}

	s.invalidateCache(ctx)

	return likes, nil
}

func (s *tweetService) loadTweet(ctx context.Context, id string) (*model.Tweet, error) {
	tweet, err := s.repo.Postgres.Tweet.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTweetNotFound
		}
		s.logger.Sugar().Errorf("failed to find tweet(%s) from postgres: %s", id, err.Error())
		return nil, ErrInternal
	}
	return tweet, nil
}

func (s *tweetService) invalidateCache(ctx context.Context) {
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
