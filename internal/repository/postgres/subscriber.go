package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type subscriberRepo struct {
	db *pgxpool.Pool
}

func newSubscriberRepo(db *pgxpool.Pool) Subscriber {
	return &subscriberRepo{
		db: db,
	}
}

// Subscribe is an upsert so re-subscribing an existing address stays quiet.
func (r *subscriberRepo) Subscribe(ctx context.Context, email string, at time.Time) error {
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO subscribers(email, subscribed_at) VALUES($1, $2) ON CONFLICT (email) DO NOTHING",
		email,
		at,
	)
	return err
}

func (r *subscriberRepo) Unsubscribe(ctx context.Context, email string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM subscribers WHERE email = $1", email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
