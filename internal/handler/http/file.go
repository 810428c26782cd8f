package http

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dayflow-hr/hrms-backend-go/internal/handler/http/response"
	"github.com/dayflow-hr/hrms-backend-go/internal/service/file"
	"github.com/go-chi/chi/v5"
)

type FileHandler interface {
	UploadLeaveAttachment(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type FileHandlerImpl struct {
	fileService file.FileService
	maxSize     int64
}

func NewFileHandler(fileService file.FileService, maxSize int64) FileHandler {
	return &FileHandlerImpl{fileService: fileService, maxSize: maxSize}
}

// UploadLeaveAttachment implements FileHandler. Expects a multipart form
// with the document in the "file" field.
func (h *FileHandlerImpl) UploadLeaveAttachment(w http.ResponseWriter, r *http.Request) {
	// room for the multipart envelope
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+1<<20)
	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}
	defer r.MultipartForm.RemoveAll()

	upload, header, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Field 'file' is required", map[string]string{"file": "file is required"})
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer upload.Close()

	attachment, err := h.fileService.UploadLeaveAttachment(r.Context(), upload, header.Filename)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attachment uploaded successfully", attachment)
}

// Download implements FileHandler.
func (h *FileHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if key == "" {
		response.BadRequest(w, "File path is required", nil)
		return
	}

	rc, contentType, err := h.fileService.Open(r.Context(), key)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		slog.Error("Failed to stream file", "path", key, "error", err)
	}
}

// Delete implements FileHandler.
func (h *FileHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if err := h.fileService.DeleteFile(r.Context(), key); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "File deleted successfully", nil)
}
