package media

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ControllerImpl struct {
	service Service
}

func NewControllerImpl(service Service) *ControllerImpl {
	return &ControllerImpl{service: service}
}

// Upload handles POST /api/upload-media with a multipart "file" field.
func (c *ControllerImpl) Upload(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "no file part found in the request"})
		return
	}
	if header.Filename == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "no file was selected"})
		return
	}

	file, err := header.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "could not read the uploaded file"})
		return
	}
	defer file.Close()

	res, err := c.service.Upload(ctx.Request.Context(), UploadRequest{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrStorageNotConfigured):
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "the storage service is not configured on the server"})
		case errors.Is(err, ErrNoFile), errors.Is(err, ErrEmptyFilename):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "no file was selected"})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not upload the file to cloud storage"})
		}
		return
	}
	ctx.JSON(http.StatusOK, res)
}

func (c *ControllerImpl) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/upload-media", c.Upload)
}
