package api

import (
	"net/http"

	"github.com/Siteline-Labs/Siteline/internal/engine"
)

type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler { return &CatalogHandler{} }

type CatalogEntry struct {
	BusinessID string          `json:"business_id"`
	Category   engine.Category `json:"category"`
}

func (h *CatalogHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	ids := engine.KnownBusinesses()
	entries := make([]CatalogEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, CatalogEntry{BusinessID: id, Category: engine.CategoryOf(id)})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"businesses": entries,
		"factors":    engine.AllFactors,
	})
}
