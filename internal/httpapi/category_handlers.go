package httpapi

import (
	"net/http"

	"kloth-be/internal/category"
)

type categoryListResponse struct {
	Success  bool                 `json:"success"`
	Message  string               `json:"message"`
	Category []*category.Category `json:"category"`
}

func (a *API) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.categorySvc.ListCategories(r.Context())
	if err != nil {
		handleDomainError(w, r, "Error while getting all categories", err)
		return
	}

	writeJSON(w, http.StatusOK, categoryListResponse{
		Success:  true,
		Message:  "All Categories List",
		Category: categories,
	})
}
