package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/FlamingoLogic/chat-markdown-app/internal/config"
	libSvc "github.com/FlamingoLogic/chat-markdown-app/internal/domain/services/library"
	"github.com/FlamingoLogic/chat-markdown-app/internal/httputil"
)

// multipart overhead allowed on top of the file itself
const uploadFormOverhead = 1 << 20

// UploadHandler accepts file uploads
type UploadHandler struct {
	uploads libSvc.UploadService
	logger  *slog.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploads libSvc.UploadService, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		uploads: uploads,
		logger:  logger,
	}
}

// Upload converts a multipart "file" into a draft document.
// Optional form fields: folder_id, category_id.
// POST /api/uploads
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		httputil.RespondError(w, http.StatusUnsupportedMediaType, "expected multipart/form-data")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize+uploadFormOverhead)
	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge, "upload exceeds the size limit")
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	req := &libSvc.UploadRequest{
		Filename: header.Filename,
		Content:  file,
		FolderID: r.FormValue("folder_id"),
	}
	if categoryID := r.FormValue("category_id"); categoryID != "" {
		req.CategoryID = &categoryID
	}

	result, err := h.uploads.Upload(r.Context(), req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, result)
}

// SupportedTypes lists accepted file extensions
// GET /api/uploads/types
func (h *UploadHandler) SupportedTypes(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"extensions": h.uploads.SupportedExtensions(),
		"max_size":   config.MaxUploadSize,
	})
}
