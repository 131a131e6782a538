package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"kloth-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	ListPage(ctx context.Context, limit, offset int) ([]*Product, error)
	Count(ctx context.Context) (int, error)
	Filter(ctx context.Context, opts FilterOptions) ([]*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	GetImage(ctx context.Context, id string) (*Image, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	p.id,
	p.name,
	p.slug,
	p.description,
	p.price,
	p.category_id,
	p.quantity
`

// Newest first with id as tie breaker, so offset pages never overlap.
const productOrder = " ORDER BY p.created_at DESC, p.id DESC"

func (r *repository) ListPage(ctx context.Context, limit, offset int) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.Int("limit", limit),
		zap.Int("offset", offset),
	)
	log.Info("ListProducts started")

	query := "SELECT" + productColumns + "FROM products p" + productOrder + " LIMIT $1 OFFSET $2"

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("DB query failed ListProducts", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedListProducts, err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		log.Error("Row scan failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedListProducts, err)
	}

	log.Info("ListProducts success", zap.Int("count", len(products)))
	return products, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		logger.FromCtx(ctx).Error("DB query failed CountProducts", zap.Error(err))
		return 0, fmt.Errorf("%w: %v", ErrFailedCountProducts, err)
	}
	return total, nil
}

func (r *repository) Filter(ctx context.Context, opts FilterOptions) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.Strings("category_ids", opts.CategoryIDs),
		zap.Bool("has_price", opts.Price != nil),
	)
	log.Info("FilterProducts started")

	// ---------- BASE QUERY ----------
	query := "SELECT" + productColumns + "FROM products p"

	where := []string{}
	args := []interface{}{}

	// ---------- FILTER ----------
	if len(opts.CategoryIDs) > 0 {
		where = append(where, fmt.Sprintf("p.category_id = ANY($%d::uuid[])", len(args)+1))
		args = append(args, pq.Array(opts.CategoryIDs))
	}

	if opts.Price != nil {
		where = append(where, fmt.Sprintf("p.price BETWEEN $%d AND $%d", len(args)+1, len(args)+2))
		args = append(args, opts.Price.Min, opts.Price.Max)
	}

	if opts.Active() {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	// ---------- ORDER ----------
	query += productOrder

	log.Debug("Executing FilterProducts query",
		zap.String("query", query),
		zap.Any("args", args),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed FilterProducts", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedFilterProducts, err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		log.Error("Row scan failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedFilterProducts, err)
	}

	log.Info("FilterProducts success", zap.Int("count", len(products)))
	return products, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	query := "SELECT" + productColumns + "FROM products p WHERE p.slug = $1"

	var p Product
	err := r.db.QueryRowContext(ctx, query, slug).
		Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.CategoryID, &p.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("DB query failed GetProductBySlug",
			zap.String("slug", slug),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrFailedGetProduct, err)
	}
	return &p, nil
}

func (r *repository) GetImage(ctx context.Context, id string) (*Image, error) {
	var img Image
	var contentType sql.NullString

	err := r.db.QueryRowContext(ctx,
		`SELECT photo, photo_type FROM products WHERE id = $1`, id,
	).Scan(&img.Data, &contentType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("DB query failed GetProductImage",
			zap.String("product_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrFailedGetImage, err)
	}
	if len(img.Data) == 0 {
		return nil, ErrImageNotFound
	}

	img.ContentType = contentType.String
	return &img, nil
}

func scanProducts(rows *sql.Rows) ([]*Product, error) {
	products := make([]*Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.CategoryID, &p.Quantity); err != nil {
			return nil, err
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}
