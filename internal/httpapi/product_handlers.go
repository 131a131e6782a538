package httpapi

import (
	"net/http"
	"strconv"

	"kloth-be/internal/product"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type productListResponse struct {
	Success  bool               `json:"success"`
	Products []*product.Product `json:"products"`
}

type productCountResponse struct {
	Success bool `json:"success"`
	Total   int  `json:"total"`
}

type productResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Product *product.Product `json:"product"`
}

// filterRequest carries the selected category ids and an optional [min, max] price interval.
type filterRequest struct {
	Checked []string          `json:"checked" validate:"omitempty,dive,required"`
	Radio   []decimal.Decimal `json:"radio" validate:"omitempty,len=2"`
}

func (f filterRequest) options() product.FilterOptions {
	opts := product.FilterOptions{CategoryIDs: f.Checked}
	if len(f.Radio) == 2 {
		opts.Price = &product.PriceRange{Min: f.Radio[0], Max: f.Radio[1]}
	}
	return opts
}

func (a *API) handleProductList(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid page", product.ErrInvalidPage)
		return
	}

	products, err := a.productSvc.ListPage(r.Context(), page)
	if err != nil {
		handleDomainError(w, r, "Error in per page ctrl", err)
		return
	}

	writeJSON(w, http.StatusOK, productListResponse{Success: true, Products: products})
}

func (a *API) handleProductCount(w http.ResponseWriter, r *http.Request) {
	total, err := a.productSvc.Count(r.Context())
	if err != nil {
		handleDomainError(w, r, "Error in product count", err)
		return
	}

	writeJSON(w, http.StatusOK, productCountResponse{Success: true, Total: total})
}

func (a *API) handleProductFilters(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := a.decodeAndValidate(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid filter request", err)
		return
	}

	products, err := a.productSvc.Filter(r.Context(), req.options())
	if err != nil {
		handleDomainError(w, r, "Error while filtering products", err)
		return
	}

	writeJSON(w, http.StatusOK, productListResponse{Success: true, Products: products})
}

func (a *API) handleProductImage(w http.ResponseWriter, r *http.Request) {
	img, err := a.productSvc.GetImage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, r, "Error while getting photo", err)
		return
	}
	writeImage(w, img.ContentType, img.Data)
}

func (a *API) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := a.productSvc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		handleDomainError(w, r, "Error while getting single product", err)
		return
	}

	writeJSON(w, http.StatusOK, productResponse{
		Success: true,
		Message: "Single Product Fetched",
		Product: p,
	})
}
