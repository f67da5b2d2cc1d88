package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/archivo-digital/apiserver/internal/services"
	"github.com/archivo-digital/apiserver/internal/storage"
	"github.com/archivo-digital/apiserver/types"
	"github.com/go-chi/chi/v5"
)

// Multipart field names accepted for uploaded files.
var uploadFields = []string{"files", "files[]"}

// FileHandler handles uploads and serves file content and folder listings.
type FileHandler struct {
	files     *services.FileService
	taxonomy  *services.TaxonomyService
	maxFiles  int
	maxMemory int64
	logger    *slog.Logger
}

// UploadLimits bounds a single upload request.
type UploadLimits struct {
	MaxFiles  int
	MaxMemory int64
}

// NewFileHandler constructs a FileHandler with the provided dependencies.
func NewFileHandler(files *services.FileService, taxonomy *services.TaxonomyService, limits UploadLimits, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		files:     files,
		taxonomy:  taxonomy,
		maxFiles:  limits.MaxFiles,
		maxMemory: limits.MaxMemory,
		logger:    logger,
	}
}

// FileRouter registers upload and file routes on the given router.
func FileRouter(r chi.Router, files *services.FileService, taxonomy *services.TaxonomyService, limits UploadLimits, logger *slog.Logger) {
	handler := NewFileHandler(files, taxonomy, limits, logger)

	r.Post("/upload", handler.Upload)
	r.Get("/files/{name}", handler.ServeFile)
}

// Upload stores a multipart batch of files and registers them in a folder.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var uploads []services.Upload
	folderID := 0

	reader, err := r.MultipartReader()
	switch {
	case err == nil:
		batch, err := readUploadBatch(reader, h.maxFiles, h.maxMemory)
		defer batch.RemoveAll()
		if errors.Is(err, errTooManyFiles) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("too many files, at most %d per upload", h.maxFiles))
			return
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		uploads, folderID = batch.uploads, batch.folderID
	case errors.Is(err, http.ErrNotMultipart):
		// treated as an empty batch
	default:
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	result, err := h.files.RegisterUpload(r.Context(), folderID, uploads)
	if err != nil {
		respondError(w, r, h.logger, err, "failed to upload files")
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		Message: "files uploaded and registered successfully",
		Files:   result.Files,
		Failed:  result.Failed,
	})
}

// ServeFile answers /files/{name}. Stored content named name wins; otherwise a
// numeric name lists the files of that folder.
func (h *FileHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	content, err := h.files.OpenContent(r.Context(), name)
	if err == nil {
		defer content.Close()
		h.writeContent(w, r, name, content)
		return
	}
	if !errors.Is(err, storage.ErrObjectNotFound) {
		respondError(w, r, h.logger, err, "failed to read file")
		return
	}

	folderID, convErr := strconv.Atoi(name)
	if convErr != nil || folderID < 1 {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}

	files, err := h.taxonomy.ListFiles(r.Context(), folderID)
	if err != nil {
		respondError(w, r, h.logger, err, "failed to fetch files")
		return
	}
	writeJSON(w, http.StatusOK, files)
}

func (h *FileHandler) writeContent(w http.ResponseWriter, r *http.Request, name string, content io.Reader) {
	if seeker, ok := content.(io.ReadSeeker); ok {
		http.ServeContent(w, r, name, time.Time{}, seeker)
		return
	}

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, content); err != nil {
		h.logger.WarnContext(r.Context(), "content copy interrupted", "filename", name, "error", err)
	}
}

// UploadResponse describes every received file. Failed lists the ones that were not persisted.
type UploadResponse struct {
	Message string                  `json:"message"`
	Files   []types.StoredFile      `json:"files"`
	Failed  []services.FailedUpload `json:"failed,omitempty"`
}
