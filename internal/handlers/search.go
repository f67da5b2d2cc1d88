package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/archivo-digital/apiserver/internal/services"
	"github.com/archivo-digital/apiserver/types"
	"github.com/go-chi/chi/v5"
)

const noFilesFound = "no files found"

// SearchHandler serves name search across the catalog. Its errors use the
// {"message": ...} shape.
type SearchHandler struct {
	search *services.SearchService
	logger *slog.Logger
}

func NewSearchHandler(search *services.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{search: search, logger: logger}
}

// SearchRouter registers the search route on the given router.
func SearchRouter(r chi.Router, search *services.SearchService, logger *slog.Logger) {
	handler := NewSearchHandler(search, logger)

	r.Get("/find", handler.Find)
}

// Find matches ?search= against file names, optionally within ?category=.
func (h *SearchHandler) Find(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var categoryID *int
	if raw := strings.TrimSpace(query.Get("category")); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			// no category can match a non-numeric id
			writeJSON(w, http.StatusNotFound, MessageResponse{Message: noFilesFound})
			return
		}
		categoryID = &id
	}

	files, err := h.search.Search(r.Context(), query.Get("search"), categoryID)
	if err != nil {
		status, message := serviceErrorStatus(err, "internal server error while searching files")
		if status == http.StatusInternalServerError {
			logServerError(r, h.logger, err)
		}
		writeJSON(w, status, MessageResponse{Message: message})
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{Files: files})
}

// SearchResponse lists the files whose name matches the query.
type SearchResponse struct {
	Files []types.File `json:"files"`
}
