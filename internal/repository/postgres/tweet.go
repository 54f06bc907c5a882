package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/portfolioapp/tweet-service/internal/model"
)

type tweetRepo struct {
	db *pgxpool.Pool
}

func newTweetRepo(db *pgxpool.Pool) Tweet {
	return &tweetRepo{
		db: db,
	}
}

func (r *tweetRepo) Create(ctx context.Context, tweet model.Tweet) (*model.Tweet, error) {
	if tweet.Comments == nil {
		tweet.Comments = []model.Comment{}
	}
	commentsJSON, err := json.Marshal(tweet.Comments)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.Exec(
		ctx,
		`INSERT INTO tweets(id, author, handle, content, avatar_image, image_url, likes, comments, edited, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		tweet.ID,
		tweet.Author,
		tweet.Handle,
		tweet.Content,
		tweet.AvatarImage,
		tweet.ImageURL,
		tweet.Likes,
		commentsJSON,
		tweet.Edited,
		tweet.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &tweet, nil
}

func (r *tweetRepo) FindByID(ctx context.Context, id string) (*model.Tweet, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT t.id, t.author, t.handle, t.content, t.avatar_image, t.image_url, t.likes, t.comments, t.edited, t.created_at, t.updated_at
		FROM tweets t
		WHERE t.id = $1`,
		id,
	)
	return scanTweet(row)
}

func (r *tweetRepo) FindAll(ctx context.Context, limit int, offset int) ([]model.Tweet, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT t.id, t.author, t.handle, t.content, t.avatar_image, t.image_url, t.likes, t.comments, t.edited, t.created_at, t.updated_at
		FROM tweets t
		ORDER BY t.created_at DESC
		LIMIT $1
		OFFSET $2`,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tweets []model.Tweet
	for rows.Next() {
		tweet, err := scanTweet(rows)
		if err != nil {
			return nil, err
		}
		tweets = append(tweets, *tweet)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tweets, nil
}

// All returns every stored tweet, admin and user alike. Only the moderation
// sweep uses this; the read endpoints always paginate.
func (r *tweetRepo) All(ctx context.Context) ([]model.Tweet, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT t.id, t.author, t.handle, t.content, t.avatar_image, t.image_url, t.likes, t.comments, t.edited, t.created_at, t.updated_at
		FROM tweets t
		ORDER BY t.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tweets []model.Tweet
	for rows.Next() {
		tweet, err := scanTweet(rows)
		if err != nil {
			return nil, err
		}
		tweets = append(tweets, *tweet)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tweets, nil
}

func (r *tweetRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM tweets").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *tweetRepo) UpdateContent(ctx context.Context, id string, content string, updatedAt time.Time) error {
	tag, err := r.db.Exec(
		ctx,
		"UPDATE tweets SET content = $2, updated_at = $3, edited = TRUE WHERE id = $1",
		id,
		content,
		updatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tweetRepo) UpdateComments(ctx context.Context, id string, comments []model.Comment) error {
	if comments == nil {
		comments = []model.Comment{}
	}
	commentsJSON, err := json.Marshal(comments)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, "UPDATE tweets SET comments = $2 WHERE id = $1", id, commentsJSON)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Like adjusts the counter by one in either direction; the floor keeps an
// unlike race from driving it negative.
func (r *tweetRepo) Like(ctx context.Context, id string, unlike bool) (int64, error) {
	delta := int64(1)
	if unlike {
		delta = -1
	}

	var likes int64
	if err := r.db.QueryRow(
		ctx,
		"UPDATE tweets SET likes = GREATEST(likes + $2, 0) WHERE id = $1 RETURNING likes",
		id,
		delta,
	).Scan(&likes); err != nil {
		return 0, err
	}

	return likes, nil
}

func (r *tweetRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM tweets WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTweet(row pgx.Row) (*model.Tweet, error) {
	var (
		tweet        model.Tweet
		commentsJSON []byte
	)
	if err := row.Scan(
		&tweet.ID,
		&tweet.Author,
		&tweet.Handle,
		&tweet.Content,
		&tweet.AvatarImage,
		&tweet.ImageURL,
		&tweet.Likes,
		&commentsJSON,
		&tweet.Edited,
		&tweet.CreatedAt,
		&tweet.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(commentsJSON, &tweet.Comments); err != nil {
		return nil, err
	}

	return &tweet, nil
}
