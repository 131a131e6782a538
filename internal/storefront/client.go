package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"kloth-be/internal/carousel"
	"kloth-be/internal/category"
	"kloth-be/internal/product"

	"github.com/shopspring/decimal"
)

// CatalogService is the catalog query API the view controller consumes.
type CatalogService interface {
	ListCategories(ctx context.Context) ([]*category.Category, error)
	ListCarouselItems(ctx context.Context) ([]*carousel.Item, error)
	// ListProducts returns one server-sized page; page is 1-based.
	ListProducts(ctx context.Context, page int) ([]*product.Product, error)
	CountProducts(ctx context.Context) (int, error)
	FilterProducts(ctx context.Context, categoryIDs []string, price *product.PriceRange) ([]*product.Product, error)
	// ProductImageURL references an image without fetching it.
	ProductImageURL(productID string) string
	CarouselImageURL(itemID string) string
}

const (
	pathCategories    = "/api/v1/category/get-category"
	pathCarousel      = "/api/v1/craousel"
	pathCarouselImage = "/api/v1/craousel/image/"
	pathProductList   = "/api/v1/product/product-list/"
	pathProductCount  = "/api/v1/product/product-count"
	pathProductFilter = "/api/v1/product/product-filters"
	pathProductImage  = "/api/v1/product/product-image/"
	pathProduct       = "/api/v1/product/get-product/"
)

// HTTPClient talks to the catalog REST API. Every failure wraps ErrNetwork.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type categoriesEnvelope struct {
	Success  bool                 `json:"success"`
	Category []*category.Category `json:"category"`
}

type productsEnvelope struct {
	Products []*product.Product `json:"products"`
}

type countEnvelope struct {
	Total int `json:"total"`
}

type productEnvelope struct {
	Product *product.Product `json:"product"`
}

type filterBody struct {
	Checked []string          `json:"checked"`
	Radio   []decimal.Decimal `json:"radio"`
}

func (c *HTTPClient) ListCategories(ctx context.Context) ([]*category.Category, error) {
	var env categoriesEnvelope
	if err := c.getJSON(ctx, pathCategories, &env); err != nil {
		return nil, err
	}
	// success=false leaves the facet list empty without an error.
	if !env.Success {
		return []*category.Category{}, nil
	}
	return env.Category, nil
}

func (c *HTTPClient) ListCarouselItems(ctx context.Context) ([]*carousel.Item, error) {
	var items []*carousel.Item
	if err := c.getJSON(ctx, pathCarousel, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*carousel.Item{}
	}
	return items, nil
}

func (c *HTTPClient) ListProducts(ctx context.Context, page int) ([]*product.Product, error) {
	var env productsEnvelope
	if err := c.getJSON(ctx, pathProductList+strconv.Itoa(page), &env); err != nil {
		return nil, err
	}
	return env.Products, nil
}

func (c *HTTPClient) CountProducts(ctx context.Context) (int, error) {
	var env countEnvelope
	if err := c.getJSON(ctx, pathProductCount, &env); err != nil {
		return 0, err
	}
	return env.Total, nil
}

func (c *HTTPClient) FilterProducts(ctx context.Context, categoryIDs []string, price *product.PriceRange) ([]*product.Product, error) {
	body := filterBody{Checked: categoryIDs, Radio: []decimal.Decimal{}}
	if body.Checked == nil {
		body.Checked = []string{}
	}
	if price != nil {
		body.Radio = []decimal.Decimal{price.Min, price.Max}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode filter request: %w", err)
	}

	var env productsEnvelope
	if err := c.do(ctx, http.MethodPost, pathProductFilter, bytes.NewReader(payload), &env); err != nil {
		return nil, err
	}
	if env.Products == nil {
		env.Products = []*product.Product{}
	}
	return env.Products, nil
}

// GetProduct fetches the detail record behind a card's "More Details" link.
func (c *HTTPClient) GetProduct(ctx context.Context, slug string) (*product.Product, error) {
	var env productEnvelope
	if err := c.getJSON(ctx, pathProduct+url.PathEscape(slug), &env); err != nil {
		return nil, err
	}
	if env.Product == nil {
		return nil, fmt.Errorf("%w: product %q missing from response", ErrNetwork, slug)
	}
	return env.Product, nil
}

// FetchProductImage downloads the image bytes and their content type.
func (c *HTTPClient) FetchProductImage(ctx context.Context, productID string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ProductImageURL(productID), nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: GET product image: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: GET product image: status %d", ErrNetwork, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: read product image: %v", ErrNetwork, err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func (c *HTTPClient) ProductImageURL(productID string) string {
	return c.baseURL + pathProductImage + url.PathEscape(productID)
}

func (c *HTTPClient) CarouselImageURL(itemID string) string {
	return c.baseURL + pathCarouselImage + url.PathEscape(itemID)
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, dst any) error {
	return c.do(ctx, http.MethodGet, path, nil, dst)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, dst any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s %s: status %d", ErrNetwork, method, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrNetwork, path, err)
	}
	return nil
}
