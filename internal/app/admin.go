package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/akreem/alliance/internal/domain"
)

// AdminService proxies the authenticated catalog writes. Every successful
// write invalidates the affected cache entries so the next read re-fetches.
type AdminService struct {
	api   domain.ListingsAPI
	cache domain.Cache
}

func NewAdminService(api domain.ListingsAPI, cache domain.Cache) *AdminService {
	return &AdminService{api: api, cache: cache}
}

func (s *AdminService) CreateProperty(ctx context.Context, token string, draft domain.PropertyDraft) (domain.Property, error) {
	payload, err := s.api.CreateProperty(ctx, token, draft)
	if err != nil {
		return domain.Property{}, fmt.Errorf("create property: %w", err)
	}
	p := mapProperty(payload)
	s.invalidate(ctx, p.ID)
	log.Info().Str("id", p.ID).Str("title", p.Title).Msg("property created")
	return p, nil
}

func (s *AdminService) UpdateProperty(ctx context.Context, token, id string, draft domain.PropertyDraft) (domain.Property, error) {
	payload, err := s.api.UpdateProperty(ctx, token, id, draft)
	if err != nil {
		return domain.Property{}, fmt.Errorf("update property %s: %w", id, err)
	}
	p := mapProperty(payload)
	if p.ID == "" {
		p.ID = id
	}
	s.invalidate(ctx, id)
	return p, nil
}

func (s *AdminService) DeleteProperty(ctx context.Context, token, id string) error {
	if err := s.api.DeleteProperty(ctx, token, id); err != nil {
		return fmt.Errorf("delete property %s: %w", id, err)
	}
	s.invalidate(ctx, id)
	log.Info().Str("id", id).Msg("property deleted")
	return nil
}

func (s *AdminService) SetMainImage(ctx context.Context, token, id, imageURL string) (domain.Property, error) {
	payload, err := s.api.UpdateMainImage(ctx, token, id, imageURL)
	if err != nil {
		return domain.Property{}, fmt.Errorf("update main image %s: %w", id, err)
	}
	p := mapProperty(payload)
	if p.ID == "" {
		p.ID = id
	}
	s.invalidate(ctx, id)
	return p, nil
}

func (s *AdminService) SetImages(ctx context.Context, token, id string, images []domain.ImageInput) (domain.Property, error) {
	payload, err := s.api.UpdateImages(ctx, token, id, images)
	if err != nil {
		return domain.Property{}, fmt.Errorf("update images %s: %w", id, err)
	}
	p := mapProperty(payload)
	if p.ID == "" {
		p.ID = id
	}
	s.invalidate(ctx, id)
	return p, nil
}

func (s *AdminService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, cacheKeyProperties)
	if id != "" {
		_ = s.cache.Del(ctx, cacheKeyProperty(id))
	}
}
