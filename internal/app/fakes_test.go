package app_test

import (
	"context"
	"errors"

	"github.com/akreem/alliance/internal/domain"
)

// ---- fakes ----

var errUpstreamDown = errors.New("upstream down")

// fakeAPI implements domain.ListingsAPI with per-call hooks; unset hooks fail
// the call so tests only wire what they use.
type fakeAPI struct {
	listFn     func(ctx context.Context) ([]map[string]any, error)
	getFn      func(ctx context.Context, id string) (map[string]any, error)
	toggleFn   func(ctx context.Context, id string) (map[string]any, error)
	agentsFn   func(ctx context.Context) ([]map[string]any, error)
	loginFn    func(ctx context.Context, username, password string) (map[string]any, error)
	registerFn func(ctx context.Context, username, email, password string) (map[string]any, error)
	contactFn  func(ctx context.Context, form domain.ContactForm) (map[string]any, error)
	createFn   func(ctx context.Context, token string, draft domain.PropertyDraft) (map[string]any, error)
	updateFn   func(ctx context.Context, token, id string, draft domain.PropertyDraft) (map[string]any, error)
	deleteFn   func(ctx context.Context, token, id string) error
}

func (f *fakeAPI) ListProperties(ctx context.Context) ([]map[string]any, error) {
	if f.listFn == nil {
		return nil, errUpstreamDown
	}
	return f.listFn(ctx)
}

func (f *fakeAPI) GetProperty(ctx context.Context, id string) (map[string]any, error) {
	if f.getFn == nil {
		return nil, errUpstreamDown
	}
	return f.getFn(ctx, id)
}

func (f *fakeAPI) ToggleFavorite(ctx context.Context, id string) (map[string]any, error) {
	if f.toggleFn == nil {
		return nil, errUpstreamDown
	}
	return f.toggleFn(ctx, id)
}

func (f *fakeAPI) ListAgents(ctx context.Context) ([]map[string]any, error) {
	if f.agentsFn == nil {
		return nil, errUpstreamDown
	}
	return f.agentsFn(ctx)
}

func (f *fakeAPI) CreateProperty(ctx context.Context, token string, draft domain.PropertyDraft) (map[string]any, error) {
	if f.createFn == nil {
		return nil, errUpstreamDown
	}
	return f.createFn(ctx, token, draft)
}

func (f *fakeAPI) UpdateProperty(ctx context.Context, token, id string, draft domain.PropertyDraft) (map[string]any, error) {
	if f.updateFn == nil {
		return nil, errUpstreamDown
	}
	return f.updateFn(ctx, token, id, draft)
}

func (f *fakeAPI) DeleteProperty(ctx context.Context, token, id string) error {
	if f.deleteFn == nil {
		return errUpstreamDown
	}
	return f.deleteFn(ctx, token, id)
}

func (f *fakeAPI) UpdateMainImage(ctx context.Context, token, id, imageURL string) (map[string]any, error) {
	return nil, errUpstreamDown
}

func (f *fakeAPI) UpdateImages(ctx context.Context, token, id string, images []domain.ImageInput) (map[string]any, error) {
	return nil, errUpstreamDown
}

func (f *fakeAPI) Register(ctx context.Context, username, email, password string) (map[string]any, error) {
	if f.registerFn == nil {
		return nil, errUpstreamDown
	}
	return f.registerFn(ctx, username, email, password)
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (map[string]any, error) {
	if f.loginFn == nil {
		return nil, errUpstreamDown
	}
	return f.loginFn(ctx, username, password)
}

func (f *fakeAPI) SubmitContact(ctx context.Context, form domain.ContactForm) (map[string]any, error) {
	if f.contactFn == nil {
		return nil, errUpstreamDown
	}
	return f.contactFn(ctx, form)
}

// fakeCache stores live values; good enough for hit/miss/invalidation tests.
type fakeCache struct {
	store map[string]any
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *[]domain.Property:
		*d = v.([]domain.Property)
	case *domain.Property:
		*d = v.(domain.Property)
	case *[]domain.Agent:
		*d = v.([]domain.Agent)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

// fakeSessions is an in-memory SessionStore.
type fakeSessions struct {
	tokens map[string]string
	users  map[string]domain.User
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{tokens: map[string]string{}, users: map[string]domain.User{}}
}

func (s *fakeSessions) SetToken(ctx context.Context, sid, token string) error {
	s.tokens[sid] = token
	return nil
}

func (s *fakeSessions) SetUser(ctx context.Context, sid string, u domain.User) error {
	s.users[sid] = u
	return nil
}

func (s *fakeSessions) Token(ctx context.Context, sid string) (string, bool, error) {
	t, ok := s.tokens[sid]
	return t, ok, nil
}

func (s *fakeSessions) User(ctx context.Context, sid string) (domain.User, bool, error) {
	u, ok := s.users[sid]
	return u, ok, nil
}

func (s *fakeSessions) Clear(ctx context.Context, sid string) error {
	delete(s.tokens, sid)
	delete(s.users, sid)
	return nil
}

// fakeSnap serves canned snapshot data.
type fakeSnap struct {
	properties []domain.Property
	agents     []domain.Agent
	misses     []string
	upserted   []domain.Property
}

func (f *fakeSnap) UpsertProperty(ctx context.Context, p domain.Property) error {
	f.upserted = append(f.upserted, p)
	return nil
}

func (f *fakeSnap) UpsertAgent(ctx context.Context, a domain.Agent) error { return nil }

func (f *fakeSnap) GetProperty(ctx context.Context, id string) (domain.Property, error) {
	for _, p := range f.properties {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Property{}, domain.ErrNotFound
}

func (f *fakeSnap) ListProperties(ctx context.Context) ([]domain.Property, error) {
	return f.properties, nil
}

func (f *fakeSnap) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	return f.agents, nil
}

func (f *fakeSnap) LogMiss(ctx context.Context, id string, status int, reason string) error {
	f.misses = append(f.misses, id+":"+reason)
	return nil
}
