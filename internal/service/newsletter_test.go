package service

import (
	"context"
	"errors"
	"testing"

	"github.com/portfolioapp/tweet-service/internal/moderation"
)

func TestSubscribeValidatesEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Newsletter.Subscribe(ctx, "not-an-email"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("bad address must be rejected, got %v", err)
	}
	if err := svc.Newsletter.Subscribe(ctx, "spam@example.com"); !errors.Is(err, moderation.ErrProhibitedWord) {
		t.Fatalf("prohibited address must be rejected, got %v", err)
	}
	if err := svc.Newsletter.Subscribe(ctx, "Reader@Example.COM"); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	// re-subscribing is a quiet no-op
	if err := svc.Newsletter.Subscribe(ctx, "reader@example.com"); err != nil {
		t.Fatalf("duplicate Subscribe: %v", err)
	}
}

func TestUnsubscribe(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Newsletter.Unsubscribe(ctx, "reader@example.com"); !errors.Is(err, ErrNotSubscribed) {
		t.Fatalf("unsubscribing an unknown address, got %v", err)
	}

	if err := svc.Newsletter.Subscribe(ctx, "reader@example.com"); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if err := svc.Newsletter.Unsubscribe(ctx, "reader@example.com"); err != nil {
		t.Fatalf("Unsubscribe: %v", err)
	}
}
