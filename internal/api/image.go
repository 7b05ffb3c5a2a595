package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrisnap/nutrisnap/backend/internal/middleware"
	"github.com/nutrisnap/nutrisnap/backend/internal/service"
)

// maxPhotoBytes caps uploads at 10 MB, matching typical phone photos.
const maxPhotoBytes = 10 << 20

// ImageHandler handles meal photo uploads.
type ImageHandler struct {
	imageService *service.ImageService
	validator    middleware.TokenValidator
}

func NewImageHandler(imageService *service.ImageService, validator middleware.TokenValidator) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
		validator:    validator,
	}
}

// RegisterRoutes registers the upload route.
func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals")
	meals.Use(middleware.AuthMiddleware(h.validator))
	{
		meals.POST("/photo", h.UploadPhoto)
	}
}

// UploadPhoto stores a multipart photo in S3 and returns its public
// URL, ready to hand to the analyze endpoint.
func (h *ImageHandler) UploadPhoto(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > maxPhotoBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "photo exceeds the 10MB limit"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read photo"})
		return
	}

	url, err := h.imageService.UploadMealPhoto(c.Request.Context(), data, header.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload photo"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
