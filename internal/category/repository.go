package category

import (
	"context"
	"database/sql"
	"fmt"

	"kloth-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]*Category, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]*Category, error) {
	log := logger.FromCtx(ctx)
	log.Info("ListCategories started")

	query := `
		SELECT
			c.id,
			c.name,
			c.slug
		FROM categories c
		ORDER BY c.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("DB query failed ListCategories", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedListCategories, err)
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrFailedListCategories, err)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedListCategories, err)
	}

	log.Info("ListCategories success", zap.Int("count", len(categories)))
	return categories, nil
}
