package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "github.com/akreem/alliance/internal/adapters/redis"
	"github.com/akreem/alliance/internal/domain"
)

func newStore(t *testing.T) *redisad.Sessions {
	t.Helper()
	mr := miniredis.RunT(t)
	return redisad.NewSessions(mr.Addr(), "", 0, time.Hour)
}

func TestSessions_RoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	u := domain.User{ID: 7, Username: "amira", Email: "amira@example.com", IsStaff: true}
	if err := s.SetToken(ctx, "sid-1", "bearer-xyz"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if err := s.SetUser(ctx, "sid-1", u); err != nil {
		t.Fatalf("set user: %v", err)
	}

	tok, ok, err := s.Token(ctx, "sid-1")
	if err != nil || !ok || tok != "bearer-xyz" {
		t.Fatalf("token: %q ok=%v err=%v", tok, ok, err)
	}
	got, ok, err := s.User(ctx, "sid-1")
	if err != nil || !ok || got != u {
		t.Fatalf("user: %+v ok=%v err=%v", got, ok, err)
	}
}

func TestSessions_MissingHalves(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	// nothing stored
	if _, ok, _ := s.Token(ctx, "nope"); ok {
		t.Fatalf("token should be absent")
	}
	if _, ok, _ := s.User(ctx, "nope"); ok {
		t.Fatalf("user should be absent")
	}

	// token without user
	_ = s.SetToken(ctx, "half", "t")
	if _, ok, _ := s.User(ctx, "half"); ok {
		t.Fatalf("user should still be absent")
	}
}

func TestSessions_ClearRemovesBoth(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_ = s.SetToken(ctx, "sid", "t")
	_ = s.SetUser(ctx, "sid", domain.User{Username: "x"})
	if err := s.Clear(ctx, "sid"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := s.Token(ctx, "sid"); ok {
		t.Fatalf("token survived clear")
	}
	if _, ok, _ := s.User(ctx, "sid"); ok {
		t.Fatalf("user survived clear")
	}
}
