package carousel

import (
	"context"
	"time"

	"kloth-be/internal/cache"
)

const cacheKey = "carousel"

type Service interface {
	ListItems(ctx context.Context) ([]*Item, error)
	GetImage(ctx context.Context, id string) (*Image, error)
}

type service struct {
	repo  Repository
	cache cache.Cache
	ttl   time.Duration
}

func NewService(repo Repository, c cache.Cache, ttl time.Duration) Service {
	return &service{repo: repo, cache: c, ttl: ttl}
}

func (s *service) ListItems(ctx context.Context) ([]*Item, error) {
	return cache.Fetch(ctx, s.cache, cacheKey, s.ttl, s.repo.List)
}

// GetImage is never cached; images are large and served with HTTP caching headers.
func (s *service) GetImage(ctx context.Context, id string) (*Image, error) {
	if id == "" {
		return nil, ErrImageNotFound
	}
	return s.repo.GetImage(ctx, id)
}
