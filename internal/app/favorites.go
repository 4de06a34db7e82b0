package app

import (
	"context"
	"fmt"

	"github.com/akreem/alliance/internal/domain"
)

// FavoriteService reconciles the volatile isFavorite flag with the upstream.
// Toggle issues exactly one request; concurrent toggles on the same id are
// not coalesced, so the last response to arrive wins.
type FavoriteService struct {
	api   domain.ListingsAPI
	cache domain.Cache
}

func NewFavoriteService(api domain.ListingsAPI, cache domain.Cache) *FavoriteService {
	return &FavoriteService{api: api, cache: cache}
}

// Toggle asks the upstream to flip the favorite flag for id and returns the
// server-confirmed state. On any failure the caller's collection must stay
// untouched; applying the result is the caller's move via ApplyToggleResult.
func (s *FavoriteService) Toggle(ctx context.Context, id string) (domain.ToggleResult, error) {
	payload, err := s.api.ToggleFavorite(ctx, id)
	if err != nil {
		return domain.ToggleResult{}, fmt.Errorf("toggle favorite %s: %w", id, err)
	}
	res := mapToggleResult(payload, id)

	// Cached reads must observe the confirmed flag on their next miss.
	if s.cache != nil {
		_ = s.cache.Del(ctx, cacheKeyProperties)
		_ = s.cache.Del(ctx, cacheKeyProperty(res.ID))
	}
	return res, nil
}

// ApplyToggleResult returns a copy of properties in which only the matching
// record's IsFavorite is replaced; every other record and every other field
// is value-identical to the input. Unknown ids leave the copy unchanged.
func ApplyToggleResult(properties []domain.Property, res domain.ToggleResult) []domain.Property {
	out := make([]domain.Property, len(properties))
	copy(out, properties)
	for i := range out {
		if out[i].ID == res.ID {
			out[i].IsFavorite = res.IsFavorite
		}
	}
	return out
}
