package handlers

import (
	"errors"
	"mime"
	"net/http"

	"tasktracker/internal/adapter/http/mapper"
	"tasktracker/internal/adapter/http/middleware"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
	"tasktracker/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// multipartOverhead leaves room for the multipart envelope around the file.
const multipartOverhead = 1 << 20

type FileHandler struct {
	fileService    ports.FileService
	maxUploadBytes int64
}

func NewFileHandler(fileService ports.FileService, maxUploadBytes int64) *FileHandler {
	return &FileHandler{fileService: fileService, maxUploadBytes: maxUploadBytes}
}

func (h *FileHandler) UploadTaskFile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	input, cleanup, ok := h.readUpload(c)
	if !ok {
		return
	}
	defer cleanup()

	file, err := h.fileService.UploadTaskFile(c.Request.Context(), p, taskID, input)
	if err != nil {
		h.respondUploadError(c, err, zap.Uint64("task_id", taskID))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToFileItem(file))
}

func (h *FileHandler) UploadProjectFile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	input, cleanup, ok := h.readUpload(c)
	if !ok {
		return
	}
	defer cleanup()

	file, err := h.fileService.UploadProjectFile(c.Request.Context(), p, projectID, input)
	if err != nil {
		h.respondUploadError(c, err, zap.Uint64("project_id", projectID))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToFileItem(file))
}

func (h *FileHandler) ListProjectFiles(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	files, err := h.fileService.ListProjectFiles(c.Request.Context(), p, projectID)
	if err != nil {
		respondError(c, err, "failed to list project files", zap.Uint64("project_id", projectID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToFileItems(files))
}

// Download streams the stored content under its original name.
func (h *FileHandler) Download(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	fileID, ok := parseID(c, "id")
	if !ok {
		return
	}

	file, content, err := h.fileService.OpenFile(c.Request.Context(), p, fileID)
	if err != nil {
		respondError(c, err, "failed to open file", zap.Uint64("file_id", fileID))
		return
	}
	defer content.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": file.OriginalName})
	if disposition == "" {
		disposition = "attachment"
	}

	c.DataFromReader(http.StatusOK, file.Size, file.MimeType, content, map[string]string{
		"Content-Disposition": disposition,
	})
}

func (h *FileHandler) DeleteFile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	fileID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.fileService.DeleteFile(c.Request.Context(), p, fileID); err != nil {
		respondError(c, err, "failed to delete file", zap.Uint64("file_id", fileID))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *FileHandler) DeleteProjectFile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	fileID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.fileService.DeleteProjectFile(c.Request.Context(), p, fileID); err != nil {
		respondError(c, err, "failed to delete project file", zap.Uint64("file_id", fileID))
		return
	}

	c.Status(http.StatusNoContent)
}

// readUpload opens the "file" form field. The request body is capped so an
// oversized upload fails while it is read.
func (h *FileHandler) readUpload(c *gin.Context) (domain.UploadInput, func(), bool) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondTooLarge(c)
			return domain.UploadInput{}, nil, false
		}
		if errors.Is(err, http.ErrMissingFile) {
			respondBadRequest(c, apierrors.MsgFileRequired)
			return domain.UploadInput{}, nil, false
		}
		respondBadRequest(c, apierrors.MsgInvalidPayload)
		return domain.UploadInput{}, nil, false
	}

	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		respondTooLarge(c)
		return domain.UploadInput{}, nil, false
	}

	content, err := header.Open()
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidPayload)
		return domain.UploadInput{}, nil, false
	}

	cleanup := func() {
		if err := content.Close(); err != nil {
			zap.L().Warn("failed to close uploaded file", zap.Error(err))
		}
	}

	return domain.UploadInput{
		OriginalName: header.Filename,
		MimeType:     header.Header.Get("Content-Type"),
		Content:      content,
	}, cleanup, true
}

func (h *FileHandler) respondUploadError(c *gin.Context, err error, fields ...zap.Field) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) || errors.Is(err, domain.ErrFileTooLarge) {
		respondTooLarge(c)
		return
	}
	respondError(c, err, "failed to upload file", fields...)
}

func respondTooLarge(c *gin.Context) {
	c.JSON(
		http.StatusRequestEntityTooLarge,
		apierrors.CreateError(http.StatusRequestEntityTooLarge, apierrors.MsgFileTooLarge, middleware.GetLang(c)),
	)
}
