// Package mocks provides in-memory stand-ins for the postgres and redis
// repositories, with the same not-found semantics (pgx.ErrNoRows, redis.Nil)
// the real ones surface.
package mocks

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/portfolioapp/tweet-service/internal/model"
	"github.com/portfolioapp/tweet-service/internal/repository"
	"github.com/portfolioapp/tweet-service/internal/repository/postgres"
	"github.com/portfolioapp/tweet-service/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
)

// NewRepository wires the fakes into the real aggregate so services can be
// constructed exactly as in production.
func NewRepository() *repository.Repository {
	return &repository.Repository{
		Postgres: &postgres.PostgresRepository{
			Tweet:      NewTweetRepo(),
			AdminReply: NewAdminReplyRepo(),
			Subscriber: NewSubscriberRepo(),
		},
		Redis: &redisrepo.RedisRepository{
			Default: NewCache(),
		},
	}
}

type TweetRepo struct {
	mu     sync.Mutex
	tweets map[string]model.Tweet
}

func NewTweetRepo() *TweetRepo {
	return &TweetRepo{tweets: make(map[string]model.Tweet)}
}

func (r *TweetRepo) Create(_ context.Context, tweet model.Tweet) (*model.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tweets[tweet.ID] = tweet
	return &tweet, nil
}

func (r *TweetRepo) FindByID(_ context.Context, id string) (*model.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tweet, ok := r.tweets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &tweet, nil
}

func (r *TweetRepo) FindAll(ctx context.Context, limit int, offset int) ([]model.Tweet, error) {
	all, _ := r.All(ctx)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *TweetRepo) All(_ context.Context) ([]model.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Tweet, 0, len(r.tweets))
	for _, t := range r.tweets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *TweetRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.tweets)), nil
}

func (r *TweetRepo) UpdateContent(_ context.Context, id string, content string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tweet, ok := r.tweets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	tweet.Content = content
	tweet.Edited = true
	tweet.UpdatedAt = &updatedAt
	r.tweets[id] = tweet
	return nil
}

func (r *TweetRepo) UpdateComments(_ context.Context, id string, comments []model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tweet, ok := r.tweets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	tweet.Comments = comments
	r.tweets[id] = tweet
	return nil
}

func (r *TweetRepo) Like(_ context.Context, id string, unlike bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tweet, ok := r.tweets[id]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	if unlike {
		if tweet.Likes > 0 {
			tweet.Likes--
		}
	} else {
		tweet.Likes++
	}
	r.tweets[id] = tweet
	return tweet.Likes, nil
}

func (r *TweetRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tweets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tweets, id)
	return nil
}

type AdminReplyRepo struct {
	mu      sync.Mutex
	replies []model.AdminReply
}

func NewAdminReplyRepo() *AdminReplyRepo {
	return &AdminReplyRepo{}
}

func (r *AdminReplyRepo) Create(_ context.Context, reply model.AdminReply) (*model.AdminReply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies = append(r.replies, reply)
	return &reply, nil
}

func (r *AdminReplyRepo) FindAll(_ context.Context) ([]model.AdminReply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.AdminReply, len(r.replies))
	copy(out, r.replies)
	return out, nil
}

func (r *AdminReplyRepo) FindByTweetID(_ context.Context, tweetID string) ([]model.AdminReply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.AdminReply
	for _, reply := range r.replies {
		if reply.TweetID == tweetID {
			out = append(out, reply)
		}
	}
	return out, nil
}

func (r *AdminReplyRepo) DeleteByTweetID(_ context.Context, tweetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.replies[:0]
	for _, reply := range r.replies {
		if reply.TweetID != tweetID {
			kept = append(kept, reply)
		}
	}
	r.replies = kept
	return nil
}

type SubscriberRepo struct {
	mu     sync.Mutex
	emails map[string]time.Time
}

func NewSubscriberRepo() *SubscriberRepo {
	return &SubscriberRepo{emails: make(map[string]time.Time)}
}

func (r *SubscriberRepo) Subscribe(_ context.Context, email string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.emails[email]; !ok {
		r.emails[email] = at
	}
	return nil
}

func (r *SubscriberRepo) Unsubscribe(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.emails[email]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.emails, email)
	return nil
}

// Cache is an in-memory redisrepo.Default. Pattern matching supports the
// trailing-star globs the services actually use.
type Cache struct {
	mu     sync.Mutex
	values map[string]string
}

func NewCache() *Cache {
	return &Cache{values: make(map[string]string)}
}

func (c *Cache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = string(b)
	return nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.Set(ctx, key, value, ttl)
}

func (c *Cache) Get(ctx context.Context, key string) *redis.StringCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.values[key]
	if !ok {
		cmd := redis.NewStringCmd(ctx)
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd := redis.NewStringCmd(ctx)
	cmd.SetVal(value)
	return cmd
}

func (c *Cache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	var removed int64
	for _, key := range keys {
		if _, ok := c.values[key]; ok {
			delete(c.values, key)
			removed++
		}
	}
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(removed)
	return cmd
}

func (c *Cache) Keys(ctx context.Context, pattern string) *redis.StringSliceCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	var keys []string
	for key := range c.values {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	cmd := redis.NewStringSliceCmd(ctx)
	cmd.SetVal(keys)
	return cmd
}

func (c *Cache) Incr(ctx context.Context, key string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	if v, ok := c.values[key]; ok {
		_ = json.Unmarshal([]byte(v), &n)
	}
	n++
	b, _ := json.Marshal(n)
	c.values[key] = string(b)
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(n)
	return cmd
}

func (c *Cache) Expire(ctx context.Context, _ string, _ time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx)
	cmd.SetVal(true)
	return cmd
}

func (c *Cache) TTL(ctx context.Context, _ string) *redis.DurationCmd {
	cmd := redis.NewDurationCmd(ctx, time.Second)
	cmd.SetVal(time.Minute)
	return cmd
}
