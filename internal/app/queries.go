package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/akreem/alliance/internal/domain"
)

const (
	cacheKeyProperties = "properties:all"
	cacheKeyAgents     = "agents:all"
)

func cacheKeyProperty(id string) string { return fmt.Sprintf("property:%s", id) }

// QueryService serves the read paths: listing collection, single listing,
// agents, and filtered search. Reads go cache -> upstream -> snapshot, and
// degrade to an empty result (never an error) on the collection paths, the
// way the browser client did.
type QueryService struct {
	api      domain.ListingsAPI
	snap     domain.SnapshotStore // optional
	cache    domain.Cache
	cacheTTL time.Duration
	demo     bool
}

func NewQueryService(api domain.ListingsAPI, snap domain.SnapshotStore, cache domain.Cache, ttl time.Duration, demo bool) *QueryService {
	return &QueryService{api: api, snap: snap, cache: cache, cacheTTL: ttl, demo: demo}
}

func (s *QueryService) ListProperties(ctx context.Context) ([]domain.Property, error) {
	var cached []domain.Property
	if ok, _ := s.cache.Get(ctx, cacheKeyProperties, &cached); ok {
		return cached, nil
	}

	raw, err := s.api.ListProperties(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("upstream property list failed")
		return s.fallbackList(ctx), nil
	}
	out := mapProperties(raw)
	_ = s.cache.Set(ctx, cacheKeyProperties, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

// Search lists and filters in one step; the predicate itself is pure.
func (s *QueryService) Search(ctx context.Context, f domain.FilterState) ([]domain.Property, error) {
	all, err := s.ListProperties(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterProperties(all, f), nil
}

func (s *QueryService) GetProperty(ctx context.Context, id string) (domain.Property, error) {
	key := cacheKeyProperty(id)
	var cached domain.Property
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	raw, err := s.api.GetProperty(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Property{}, domain.ErrNotFound
		}
		log.Warn().Err(err).Str("id", id).Msg("upstream property fetch failed")
		if s.snap != nil {
			if p, serr := s.snap.GetProperty(ctx, id); serr == nil {
				return p, nil
			}
		}
		return domain.Property{}, fmt.Errorf("get property %s: %w", id, err)
	}
	p := mapProperty(raw)
	_ = s.cache.Set(ctx, key, p, int(s.cacheTTL.Seconds()))
	return p, nil
}

// PropertyTypes returns the distinct type tags of the current collection,
// in first-seen order (drives the type filter options).
func (s *QueryService) PropertyTypes(ctx context.Context) ([]string, error) {
	all, err := s.ListProperties(ctx)
	if err != nil {
		return nil, err
	}
	return domain.PropertyTypes(all), nil
}

func (s *QueryService) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	var cached []domain.Agent
	if ok, _ := s.cache.Get(ctx, cacheKeyAgents, &cached); ok {
		return cached, nil
	}

	raw, err := s.api.ListAgents(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("upstream agent list failed")
		if s.snap != nil {
			if agents, serr := s.snap.ListAgents(ctx); serr == nil && len(agents) > 0 {
				return agents, nil
			}
		}
		return []domain.Agent{}, nil
	}
	out := mapAgents(raw)
	_ = s.cache.Set(ctx, cacheKeyAgents, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

// fallbackList is the degraded read path: last synced snapshot when
// configured, the built-in demo listings when explicitly enabled, otherwise
// an empty collection.
func (s *QueryService) fallbackList(ctx context.Context) []domain.Property {
	if s.snap != nil {
		if ps, err := s.snap.ListProperties(ctx); err == nil && len(ps) > 0 {
			return ps
		}
	}
	if s.demo {
		return DemoProperties()
	}
	return []domain.Property{}
}
