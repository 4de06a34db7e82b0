package domain

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrInvalidCredentials is deliberately generic: login failures never
	// reveal which half of the credential pair was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ListingsAPI is the upstream brokerage REST API. Payloads come back as loose
// maps and are normalized exactly once in the app layer.
type ListingsAPI interface {
	ListProperties(ctx context.Context) ([]map[string]any, error)
	GetProperty(ctx context.Context, id string) (map[string]any, error)
	ToggleFavorite(ctx context.Context, id string) (map[string]any, error)
	ListAgents(ctx context.Context) ([]map[string]any, error)

	// Authenticated write paths; token is the upstream bearer.
	CreateProperty(ctx context.Context, token string, draft PropertyDraft) (map[string]any, error)
	UpdateProperty(ctx context.Context, token, id string, draft PropertyDraft) (map[string]any, error)
	DeleteProperty(ctx context.Context, token, id string) error
	UpdateMainImage(ctx context.Context, token, id, imageURL string) (map[string]any, error)
	UpdateImages(ctx context.Context, token, id string, images []ImageInput) (map[string]any, error)

	Register(ctx context.Context, username, email, password string) (map[string]any, error)
	Login(ctx context.Context, username, password string) (map[string]any, error)
	SubmitContact(ctx context.Context, form ContactForm) (map[string]any, error)
}

// SnapshotStore persists the last synced view of the catalog so reads can
// degrade to stale-but-real data when the upstream is down.
type SnapshotStore interface {
	UpsertProperty(ctx context.Context, p Property) error
	UpsertAgent(ctx context.Context, a Agent) error
	GetProperty(ctx context.Context, id string) (Property, error)
	ListProperties(ctx context.Context) ([]Property, error)
	ListAgents(ctx context.Context) ([]Agent, error)
	LogMiss(ctx context.Context, id string, status int, reason string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// SessionStore mediates all access to the persisted session pair. The two
// halves live under separate keys on purpose: the authentication gate is
// defined as "both present", and either may go missing independently.
type SessionStore interface {
	SetToken(ctx context.Context, sid, token string) error
	SetUser(ctx context.Context, sid string, u User) error
	Token(ctx context.Context, sid string) (string, bool, error)
	User(ctx context.Context, sid string) (User, bool, error)
	Clear(ctx context.Context, sid string) error
}
