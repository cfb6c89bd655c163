package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/brickstash/brickstash/internal/catalog"
)

// resultsPerPage matches the page size the collection UI renders.
const resultsPerPage = 5

// CatalogSearcher defines the catalog lookup required by the search handler.
type CatalogSearcher interface {
	Search(ctx context.Context, term string, field catalog.SearchField) ([]catalog.Set, error)
}

// SearchHandler proxies set searches to the catalog API, paginated in groups
// of five.
type SearchHandler struct {
	// Catalog performs the underlying catalog lookups.
	Catalog CatalogSearcher
}

// SearchResponse is one page of catalog search results.
type SearchResponse struct {
	Results    []catalog.Set `json:"results"`
	Count      int           `json:"count"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
}

// Search handles GET /api/search?q=&by=&page=.
// "by" selects the searched field (name or set_num, defaulting to name);
// "page" is 1-based.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		http.Error(w, "missing search query", http.StatusBadRequest)
		return
	}

	field := catalog.SearchField(r.URL.Query().Get("by"))
	if field == "" {
		field = catalog.FieldName
	}
	if field != catalog.FieldName && field != catalog.FieldSetNum {
		http.Error(w, "unknown search field", http.StatusBadRequest)
		return
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			http.Error(w, "invalid page", http.StatusBadRequest)
			return
		}
		page = n
	}

	sets, err := h.Catalog.Search(r.Context(), term, field)
	if err != nil {
		http.Error(w, "catalog search failed", http.StatusBadGateway)
		return
	}

	totalPages := (len(sets) + resultsPerPage - 1) / resultsPerPage
	start := (page - 1) * resultsPerPage
	end := start + resultsPerPage
	if start > len(sets) {
		start = len(sets)
	}
	if end > len(sets) {
		end = len(sets)
	}

	pageResults := sets[start:end]
	if pageResults == nil {
		pageResults = []catalog.Set{}
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Results:    pageResults,
		Count:      len(sets),
		Page:       page,
		TotalPages: totalPages,
	})
}
