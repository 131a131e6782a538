package product

import (
	"context"

	"kloth-be/internal/logger"
	"kloth-be/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	ListPage(ctx context.Context, page int) ([]*Product, error)
	Count(ctx context.Context) (int, error)
	Filter(ctx context.Context, opts FilterOptions) ([]*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	GetImage(ctx context.Context, id string) (*Image, error)
}

type service struct {
	repo     Repository
	pageSize int
}

// NewService serves fixed-size pages of pageSize products.
func NewService(repo Repository, pageSize int) Service {
	if pageSize <= 0 {
		pageSize = 6
	}
	return &service{repo: repo, pageSize: pageSize}
}

func (s *service) ListPage(ctx context.Context, page int) ([]*Product, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}

	timer := metrics.StartTimer()
	products, err := s.repo.ListPage(ctx, s.pageSize, (page-1)*s.pageSize)
	metrics.PageQueries.Inc()
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Debug("product page served",
		zap.String("layer", "service"),
		zap.Int("page", page),
		zap.Int("count", len(products)),
		zap.Duration("duration", timer.ObserveInto(&metrics.PageQueryMicros)),
	)
	return products, nil
}

// Count is never cached; it must agree with the uncached pages.
func (s *service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *service) Filter(ctx context.Context, opts FilterOptions) ([]*Product, error) {
	/* ---------- INPUT NORMALIZATION ---------- */

	seen := make(map[string]struct{}, len(opts.CategoryIDs))
	ids := make([]string, 0, len(opts.CategoryIDs))
	for _, id := range opts.CategoryIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		if _, err := uuid.Parse(id); err != nil {
			return nil, ErrInvalidCategoryID
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	opts.CategoryIDs = ids

	if opts.Price != nil && opts.Price.Min.GreaterThan(opts.Price.Max) {
		return nil, ErrInvalidPriceRange
	}

	return s.repo.Filter(ctx, opts)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	if slug == "" {
		return nil, ErrProductNotFound
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *service) GetImage(ctx context.Context, id string) (*Image, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrImageNotFound
	}
	return s.repo.GetImage(ctx, id)
}
