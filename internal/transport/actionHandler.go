package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ds124wfegd/mineru-extract/internal/action"
	"github.com/ds124wfegd/mineru-extract/internal/entity"
	"github.com/gin-gonic/gin"
)

// uploadFileField is the multipart part carrying the document.
const uploadFileField = "file"

func (h *ActionHandler) ListActions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"actions": h.catalog.List()})
}

func (h *ActionHandler) GetAction(c *gin.Context) {
	a, err := h.catalog.Find(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, a)
}

// RunExtractContent takes a JSON object of property values, the file given
// as {filename, extension, base64}.
func (h *ActionHandler) RunExtractContent(c *gin.Context) {
	h.limitBody(c)

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		writeError(c, fmt.Errorf("%w: %w", entity.ErrInvalidInput, err))
		return
	}
	h.run(c, raw)
}

// UploadDocument takes a multipart form: the document in the "file" part and
// the remaining properties as plain fields.
func (h *ActionHandler) UploadDocument(c *gin.Context) {
	h.limitBody(c)

	header, err := c.FormFile(uploadFileField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			writeError(c, fmt.Errorf("%w: %s", entity.ErrMissingParameter, uploadFileField))
			return
		}
		writeError(c, fmt.Errorf("%w: %w", entity.ErrInvalidInput, err))
		return
	}

	data, err := readUpload(header)
	if err != nil {
		writeError(c, err)
		return
	}

	raw := make(map[string]any)
	for name, values := range c.Request.MultipartForm.Value {
		if name == uploadFileField || len(values) == 0 || values[0] == "" {
			continue
		}
		raw[name] = values[0]
	}
	raw[uploadFileField] = entity.FilePayload{
		Filename:  header.Filename,
		Extension: strings.TrimPrefix(filepath.Ext(header.Filename), "."),
		Data:      data,
	}

	h.run(c, raw)
}

func (h *ActionHandler) run(c *gin.Context, raw map[string]any) {
	a, err := h.catalog.Find(action.ExtractContentName)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	values, err := a.Resolve(raw)
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := h.service.ExtractContent(c.Request.Context(), action.Input(values))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ActionHandler) limitBody(c *gin.Context) {
	if h.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	}
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}

func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var (
		upstream *entity.UpstreamStatusError
		mismatch *entity.FormatMismatchError
		tooLarge *http.MaxBytesError
	)
	switch {
	case errors.As(err, &tooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrMissingParameter), errors.Is(err, entity.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &upstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "upstream_status": upstream.StatusCode})
	case errors.As(err, &mismatch):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}
