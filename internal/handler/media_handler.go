package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"jobfair/internal/service"
)

// MediaHandler serves company videos, banners and posters.
type MediaHandler struct {
	videos service.VideoService
	files  service.FileService
}

// NewMediaHandler creates a new media handler.
func NewMediaHandler(videos service.VideoService, files service.FileService) *MediaHandler {
	return &MediaHandler{videos: videos, files: files}
}

// VideoRequest is a video link.
type VideoRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// AddVideo godoc
// @Summary Publish a video
// @Tags videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body VideoRequest true "Video link"
// @Success 201 {object} CreatedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /videos [post]
func (h *MediaHandler) AddVideo(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req VideoRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	video, err := h.videos.Add(c.Request().Context(), id.ID, req.URL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedResponse{Message: "Video añadido con éxito", ID: video.ID})
}

// ListVideos godoc
// @Summary List videos
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Video
// @Router /videos [get]
func (h *MediaHandler) ListVideos(c echo.Context) error {
	videos, err := h.videos.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, videos)
}

// UpdateFiles godoc
// @Summary Replace banner and/or poster
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Owner user ID"
// @Param banner formData file false "Banner image"
// @Param poster formData file false "Poster image"
// @Success 200 {object} model.CompanyFiles
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /files/{id} [put]
func (h *MediaHandler) UpdateFiles(c echo.Context) error {
	banner, closeBanner, err := optionalUpload(c, "banner")
	if err != nil {
		return err
	}
	defer closeBanner()
	poster, closePoster, err := optionalUpload(c, "poster")
	if err != nil {
		return err
	}
	defer closePoster()

	files, err := h.files.Replace(c.Request().Context(), c.Param("id"), banner, poster)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, files)
}

// GetFiles godoc
// @Summary Get banner and poster links
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param id path string true "Owner user ID"
// @Success 200 {object} model.CompanyFiles
// @Failure 404 {object} errors.ErrorResponse
// @Router /files/{id} [get]
func (h *MediaHandler) GetFiles(c echo.Context) error {
	files, err := h.files.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, files)
}
