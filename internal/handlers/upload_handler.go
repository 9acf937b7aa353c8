package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/loopline/backend/internal/services"
)

// UploadHandler handles image upload requests
type UploadHandler struct {
	uploads *services.UploadService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploads *services.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// RegisterUploadRoutes registers upload routes
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/uploads", h.UploadImage)
}

// UploadImage accepts a multipart image and returns its served path
func (h *UploadHandler) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file field")
	}

	path, err := h.uploads.SaveImage(fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUploadTooLarge):
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File too large")
		case errors.Is(err, services.ErrUploadTypeNotAllowed):
			return echo.NewHTTPError(http.StatusBadRequest, "File type not allowed")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store file")
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"path": path})
}
