package httpapi

import (
	"net/http"

	"kloth-be/internal/carousel"

	"github.com/go-chi/chi/v5"
)

// The carousel endpoint returns a bare array, unlike the other listings.
func (a *API) handleListCarousel(w http.ResponseWriter, r *http.Request) {
	items, err := a.carouselSvc.ListItems(r.Context())
	if err != nil {
		handleDomainError(w, r, "Error while getting carousel", err)
		return
	}
	if items == nil {
		items = []*carousel.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (a *API) handleCarouselImage(w http.ResponseWriter, r *http.Request) {
	img, err := a.carouselSvc.GetImage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, r, "Error while getting carousel image", err)
		return
	}
	writeImage(w, img.ContentType, img.Data)
}

func writeImage(w http.ResponseWriter, contentType string, data []byte) {
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
