package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/akreem/alliance/internal/domain"
)

// SyncService pulls the upstream catalog into the local snapshot store so
// read paths can degrade to real data when the upstream is down.
type SyncService struct {
	api   domain.ListingsAPI
	snap  domain.SnapshotStore
	cache domain.Cache
}

func NewSyncService(api domain.ListingsAPI, snap domain.SnapshotStore, cache domain.Cache) *SyncService {
	return &SyncService{api: api, snap: snap, cache: cache}
}

// ListIDs returns the upstream's current listing identifiers.
func (s *SyncService) ListIDs(ctx context.Context) ([]string, error) {
	raw, err := s.api.ListProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	ids := make([]string, 0, len(raw))
	for _, p := range mapProperties(raw) {
		if p.ID != "" {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

// SyncProperty fetches the full detail record for one listing and upserts it.
// A 404 means the listing is gone: record the miss, evict its caches, and
// stop gracefully. 401/403 are recorded as inactive the same way. Anything
// else (network, 5xx, decode) bubbles up.
func (s *SyncService) SyncProperty(ctx context.Context, id string) error {
	raw, err := s.api.GetProperty(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			_ = s.snap.LogMiss(ctx, id, 404, "not found")
			s.invalidate(ctx, id)
			return nil
		case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrForbidden):
			_ = s.snap.LogMiss(ctx, id, 403, "inactive")
			s.invalidate(ctx, id)
			return nil
		default:
			return err
		}
	}

	p := mapProperty(raw)
	if p.ID == "" {
		p.ID = id
	}
	if err := s.snap.UpsertProperty(ctx, p); err != nil {
		return fmt.Errorf("upsert property %s: %w", id, err)
	}
	if p.Agent != nil {
		if err := s.snap.UpsertAgent(ctx, *p.Agent); err != nil {
			return fmt.Errorf("upsert agent for %s: %w", id, err)
		}
	}
	s.invalidate(ctx, id)
	return nil
}

// SyncAgents refreshes the shared agent roster.
func (s *SyncService) SyncAgents(ctx context.Context) (int, error) {
	raw, err := s.api.ListAgents(ctx)
	if err != nil {
		return 0, fmt.Errorf("list agents: %w", err)
	}
	agents := mapAgents(raw)
	for _, a := range agents {
		if a.Email == "" {
			continue
		}
		if err := s.snap.UpsertAgent(ctx, a); err != nil {
			return 0, fmt.Errorf("upsert agent %s: %w", a.Email, err)
		}
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, cacheKeyAgents)
	}
	return len(agents), nil
}

func (s *SyncService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, cacheKeyProperties)
	_ = s.cache.Del(ctx, cacheKeyProperty(id))
}
