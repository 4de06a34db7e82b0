package redisad

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/akreem/alliance/internal/domain"
)

// Sessions is the redis-backed session store. The token and the user record
// live under separate keys, mirroring the authToken/user pair the browser
// client kept in storage; the authentication gate requires both.
type Sessions struct {
	c   *redis.Client
	ttl time.Duration
}

func NewSessions(addr, pass string, db int, ttl time.Duration) *Sessions {
	return &Sessions{
		c:   redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		ttl: ttl,
	}
}

func tokenKey(sid string) string { return fmt.Sprintf("session:%s:authToken", sid) }
func userKey(sid string) string  { return fmt.Sprintf("session:%s:user", sid) }

func (s *Sessions) SetToken(ctx context.Context, sid, token string) error {
	return s.c.Set(ctx, tokenKey(sid), token, s.ttl).Err()
}

func (s *Sessions) SetUser(ctx context.Context, sid string, u domain.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.c.Set(ctx, userKey(sid), b, s.ttl).Err()
}

func (s *Sessions) Token(ctx context.Context, sid string) (string, bool, error) {
	v, err := s.c.Get(ctx, tokenKey(sid)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, v != "", nil
}

func (s *Sessions) User(ctx context.Context, sid string) (domain.User, bool, error) {
	b, err := s.c.Get(ctx, userKey(sid)).Bytes()
	if err == redis.Nil {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}
	var u domain.User
	if err := json.Unmarshal(b, &u); err != nil {
		// corrupt record counts as absent, not fatal
		return domain.User{}, false, nil
	}
	return u, true, nil
}

func (s *Sessions) Clear(ctx context.Context, sid string) error {
	return s.c.Del(ctx, tokenKey(sid), userKey(sid)).Err()
}
