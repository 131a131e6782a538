package category

import (
	"context"
	"time"

	"kloth-be/internal/cache"
)

const cacheKey = "categories"

type Service interface {
	ListCategories(ctx context.Context) ([]*Category, error)
}

type service struct {
	repo  Repository
	cache cache.Cache
	ttl   time.Duration
}

// NewService wraps repo with a read-through cache; c may be nil.
func NewService(repo Repository, c cache.Cache, ttl time.Duration) Service {
	return &service{repo: repo, cache: c, ttl: ttl}
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return cache.Fetch(ctx, s.cache, cacheKey, s.ttl, s.repo.List)
}
