package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/portfolioapp/tweet-service/internal/model"
	"github.com/portfolioapp/tweet-service/internal/repository"
)

// seed writes straight to the store, bypassing the gate, the way content
// that predates a word-list update would have gotten in.
func seed(t *testing.T, repo *repository.Repository, id string, content string, author string) model.Tweet {
	t.Helper()
	tweet := model.Tweet{
		ID:        id,
		Author:    author,
		Handle:    "@" + strings.ToLower(strings.Fields(author)[0]),
		Content:   content,
		CreatedAt: time.Now(),
	}
	if _, err := repo.Postgres.Tweet.Create(context.Background(), tweet); err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
	return tweet
}

func TestSweepRemovesFlaggedAndIsIdempotent(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	seed(t, repo, "user-1", "Hello world", "Clean User")
	seed(t, repo, "user-2", "this is total spam honestly", "Someone")
	seed(t, repo, "admin-3", "a scam warning... written poorly", "Admin")

	result, err := svc.Moderation.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if result.Removed != 2 {
		t.Fatalf("Removed = %d, want 2 (ids: %v)", result.Removed, result.RemovedIDs)
	}
	removed := map[string]bool{}
	for _, id := range result.RemovedIDs {
		removed[id] = true
	}
	if !removed["user-2"] || !removed["admin-3"] {
		t.Fatalf("wrong tweets removed: %v", result.RemovedIDs)
	}

	if _, err := repo.Postgres.Tweet.FindByID(ctx, "user-1"); err != nil {
		t.Fatalf("clean tweet must survive the sweep: %v", err)
	}

	again, err := svc.Moderation.Sweep(ctx)
	if err != nil {
		t.Fatalf("second Sweep: %v", err)
	}
	if again.Removed != 0 {
		t.Fatalf("sweep must be idempotent, second run removed %d", again.Removed)
	}
}

func TestSweepFlagsOffensiveIdentity(t *testing.T) {
	svc, repo := newTestService(t)

	seed(t, repo, "user-1", "a perfectly acceptable message", "spam king")

	result, err := svc.Moderation.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if result.Removed != 1 || result.RemovedIDs[0] != "user-1" {
		t.Fatalf("offensive author must flag the tweet: %+v", result)
	}
}

func TestSweepCascadesAdminReplies(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	seed(t, repo, "user-1", "utter spam", "Someone")
	if _, err := repo.Postgres.AdminReply.Create(ctx, model.AdminReply{
		ID:        uuid.NewString(),
		TweetID:   "user-1",
		Author:    "Admin",
		Content:   "please stop",
		Timestamp: time.Now(),
	}); err != nil {
		t.Fatalf("seed reply: %v", err)
	}

	if _, err := svc.Moderation.Sweep(ctx); err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	replies, err := repo.Postgres.AdminReply.FindByTweetID(ctx, "user-1")
	if err != nil {
		t.Fatalf("FindByTweetID: %v", err)
	}
	if len(replies) != 0 {
		t.Fatalf("replies referencing a removed tweet must be removed too, %d left", len(replies))
	}
}

func TestStatusDoesNotDeleteAndTruncates(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	long := "spam " + strings.Repeat("abcdefghij ", 20)
	seed(t, repo, "user-1", long, "Someone")

	status, err := svc.Moderation.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(status.Flagged) != 1 {
		t.Fatalf("Flagged = %d, want 1", len(status.Flagged))
	}
	if got := len([]rune(status.Flagged[0].Preview)); got != 100 {
		t.Fatalf("preview length = %d, want 100", got)
	}

	if _, err := repo.Postgres.Tweet.FindByID(ctx, "user-1"); err != nil {
		t.Fatalf("status must not delete anything: %v", err)
	}
}
