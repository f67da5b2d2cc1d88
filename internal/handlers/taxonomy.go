package handlers

import (
	"log/slog"
	"net/http"

	"github.com/archivo-digital/apiserver/internal/services"
	"github.com/go-chi/chi/v5"
)

// TaxonomyHandler serves the category, subcategory and folder tree.
type TaxonomyHandler struct {
	taxonomy *services.TaxonomyService
	logger   *slog.Logger
}

// NewTaxonomyHandler constructs a TaxonomyHandler with the provided dependencies.
func NewTaxonomyHandler(taxonomy *services.TaxonomyService, logger *slog.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomy: taxonomy, logger: logger}
}

// TaxonomyRouter registers taxonomy routes on the given router.
func TaxonomyRouter(r chi.Router, taxonomy *services.TaxonomyService, logger *slog.Logger) {
	handler := NewTaxonomyHandler(taxonomy, logger)

	r.Get("/categories", handler.ListCategories)
	r.Get("/subcategories/{categoryID}", handler.ListSubcategories)
	r.Post("/subcategories", handler.CreateSubcategory)
	r.Get("/folders/{subcategoryID}", handler.ListFolders)
	r.Post("/folders", handler.CreateFolder)
}

func (h *TaxonomyHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.taxonomy.ListCategories(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err, "failed to fetch categories")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *TaxonomyHandler) ListSubcategories(w http.ResponseWriter, r *http.Request) {
	categoryID, err := parseIDParam(r, "categoryID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	subcategories, err := h.taxonomy.ListSubcategories(r.Context(), categoryID)
	if err != nil {
		respondError(w, r, h.logger, err, "failed to fetch subcategories")
		return
	}
	writeJSON(w, http.StatusOK, subcategories)
}

func (h *TaxonomyHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	subcategoryID, err := parseIDParam(r, "subcategoryID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid subcategory id")
		return
	}

	folders, err := h.taxonomy.ListFolders(r.Context(), subcategoryID)
	if err != nil {
		respondError(w, r, h.logger, err, "failed to fetch folders")
		return
	}
	writeJSON(w, http.StatusOK, folders)
}

func (h *TaxonomyHandler) CreateSubcategory(w http.ResponseWriter, r *http.Request) {
	var req CreateSubcategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	subcategory, err := h.taxonomy.CreateSubcategory(r.Context(), req.Name, int(req.CategoryID))
	if err != nil {
		respondError(w, r, h.logger, err, "failed to create subcategory")
		return
	}
	writeJSON(w, http.StatusOK, CreatedResponse{Message: "subcategory created successfully", ID: subcategory.ID})
}

func (h *TaxonomyHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req CreateFolderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	folder, err := h.taxonomy.CreateFolder(r.Context(), req.Name, int(req.SubcategoryID))
	if err != nil {
		respondError(w, r, h.logger, err, "failed to create folder")
		return
	}
	writeJSON(w, http.StatusOK, CreatedResponse{Message: "folder created successfully", ID: folder.ID})
}

// CreateSubcategoryRequest is the body of POST /subcategories.
type CreateSubcategoryRequest struct {
	Name       string     `json:"name"`
	CategoryID flexibleID `json:"category_id"`
}

// CreateFolderRequest is the body of POST /folders.
type CreateFolderRequest struct {
	Name          string     `json:"name"`
	SubcategoryID flexibleID `json:"subcategory_id"`
}

// CreatedResponse reports the ID of a created subcategory or folder.
type CreatedResponse struct {
	Message string `json:"message"`
	ID      int    `json:"id"`
}
