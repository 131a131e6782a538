package carousel

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kloth-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]*Item, error)
	GetImage(ctx context.Context, id string) (*Image, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]*Item, error) {
	log := logger.FromCtx(ctx)

	query := `
		SELECT id, title, position
		FROM carousel
		ORDER BY position ASC, created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("DB query failed ListCarousel", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedListItems, err)
	}
	defer rows.Close()

	items := make([]*Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Title, &it.Position); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedListItems, err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedListItems, err)
	}

	return items, nil
}

func (r *repository) GetImage(ctx context.Context, id string) (*Image, error) {
	log := logger.FromCtx(ctx).With(zap.String("carousel_id", id))

	var img Image
	var contentType sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT photo, photo_type FROM carousel WHERE id = $1`, id,
	).Scan(&img.Data, &contentType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		log.Error("DB query failed GetCarouselImage", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetImage, err)
	}
	if len(img.Data) == 0 {
		return nil, ErrImageNotFound
	}

	img.ContentType = contentType.String
	return &img, nil
}
