package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/portfolioapp/tweet-service/internal/model"
)

type adminReplyRepo struct {
	db *pgxpool.Pool
}

func newAdminReplyRepo(db *pgxpool.Pool) AdminReply {
	return &adminReplyRepo{
		db: db,
	}
}

func (r *adminReplyRepo) Create(ctx context.Context, reply model.AdminReply) (*model.AdminReply, error) {
	if _, err := r.db.Exec(
		ctx,
		`INSERT INTO admin_replies(id, tweet_id, comment_id, comment_index, reply_id, author, content, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)`,
		reply.ID,
		reply.TweetID,
		reply.CommentID,
		reply.CommentIndex,
		reply.ReplyID,
		reply.Author,
		reply.Content,
		reply.Timestamp,
	); err != nil {
		return nil, err
	}

	return &reply, nil
}

func (r *adminReplyRepo) FindAll(ctx context.Context) ([]model.AdminReply, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT a.id, a.tweet_id, a.comment_id, a.comment_index, a.reply_id, a.author, a.content, a.created_at
		FROM admin_replies a
		ORDER BY a.created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReplies(rows)
}

func (r *adminReplyRepo) FindByTweetID(ctx context.Context, tweetID string) ([]model.AdminReply, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT a.id, a.tweet_id, a.comment_id, a.comment_index, a.reply_id, a.author, a.content, a.created_at
		FROM admin_replies a
		WHERE a.tweet_id = $1
		ORDER BY a.created_at ASC`,
		tweetID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReplies(rows)
}

func (r *adminReplyRepo) DeleteByTweetID(ctx context.Context, tweetID string) error {
	_, err := r.db.Exec(ctx, "DELETE FROM admin_replies WHERE tweet_id = $1", tweetID)
	return err
}

func scanReplies(rows pgx.Rows) ([]model.AdminReply, error) {
	var replies []model.AdminReply
	for rows.Next() {
		var reply model.AdminReply
		if err := rows.Scan(
			&reply.ID,
			&reply.TweetID,
			&reply.CommentID,
			&reply.CommentIndex,
			&reply.ReplyID,
			&reply.Author,
			&reply.Content,
			&reply.Timestamp,
		); err != nil {
			return nil, err
		}
		replies = append(replies, reply)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return replies, nil
}
