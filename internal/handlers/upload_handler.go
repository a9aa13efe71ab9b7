package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"carpicks_backend/internal/logger"
	"carpicks_backend/internal/storage"
	"carpicks_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxUploadSize caps a single multipart request at 20 MB
const maxUploadSize = 20 << 20

type UploadHandler struct {
	*BaseHandler
	store storage.Storage
}

func NewUploadHandler(base *BaseHandler, store storage.Storage) *UploadHandler {
	return &UploadHandler{
		BaseHandler: base,
		store:       store,
	}
}

func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploadImage", h.UploadImages)
}

// UploadImages accepts one or more files under the multipart field
// "carImage", stores each under a fresh uuid name and returns the public
// URLs. The returned URLs are what clients put into a listing's carImages.
func (h *UploadHandler) UploadImages(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	form, err := c.MultipartForm()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return
	}

	files := form.File["carImage"]
	if len(files) == 0 {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Please upload at least one image."))
		return
	}

	urls := make([]string, 0, len(files))
	for _, fileHeader := range files {
		src, err := fileHeader.Open()
		if err != nil {
			apperrors.HandleError(c, apperrors.InternalError(err))
			return
		}

		name := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(fileHeader.Filename))
		if err := h.store.Save(c.Request.Context(), name, src); err != nil {
			src.Close()
			logger.CtxError(c.Request.Context(), "failed to store uploaded image", "filename", fileHeader.Filename, "error", err)
			apperrors.HandleError(c, apperrors.InternalError(err))
			return
		}
		src.Close()

		urls = append(urls, h.store.GetURL(name))
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"imageUrls": urls,
	})
}
