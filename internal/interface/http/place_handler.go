package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yourplaces/api/internal/application"
	"github.com/yourplaces/api/internal/domain/entity"
	"github.com/yourplaces/api/internal/interface/middleware"
	"github.com/yourplaces/api/pkg/response"
	"github.com/yourplaces/api/pkg/validation"
)

type PlaceHandler struct {
	Svc    *application.PlaceService
	Logger *logrus.Logger
}

func NewPlaceHandler(svc *application.PlaceService, logger *logrus.Logger) *PlaceHandler {
	return &PlaceHandler{Svc: svc, Logger: logger}
}

type createPlaceRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description" binding:"required,min=5"`
	Address     string `form:"address" binding:"required"`
}

type updatePlaceRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required,min=5"`
}

// GetPlace GET /api/places/:pid
func (h *PlaceHandler) GetPlace(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("pid"))
	if err != nil {
		h.placeError(c, err, "could not fetch place")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"place": placeJSON(p)}, "place")
}

// GetPlacesByUser GET /api/places/user/:uid
func (h *PlaceHandler) GetPlacesByUser(c *gin.Context) {
	places, err := h.Svc.ListByUser(c.Request.Context(), c.Param("uid"))
	if err != nil {
		h.placeError(c, err, "could not fetch places")
		return
	}
	out := make([]gin.H, 0, len(places))
	for _, p := range places {
		out = append(out, placeJSON(p))
	}
	response.Success(c, http.StatusOK, gin.H{"places": out}, "places")
}

// CreatePlace POST /api/places (auth, multipart: title, description, address, image)
func (h *PlaceHandler) CreatePlace(c *gin.Context) {
	var req createPlaceRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid inputs passed, please check your data", validation.ToDetails(err))
		return
	}

	photo, closeFn, err := formImage(c, "image")
	if err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid inputs passed, please check your data", map[string]string{"image": "is required"})
		return
	}
	defer closeFn()

	p, err := h.Svc.Create(c.Request.Context(), application.CreatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		CreatorID:   c.GetString(middleware.CtxUserIDKey),
	}, photo)
	if err != nil {
		h.placeError(c, err, "creating place failed, please try again")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"place": placeJSON(p)}, "created place")
}

// UpdatePlace PATCH /api/places/:pid (auth, owner only)
func (h *PlaceHandler) UpdatePlace(c *gin.Context) {
	var req updatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid inputs passed, please check your data", validation.ToDetails(err))
		return
	}

	p, err := h.Svc.Update(c.Request.Context(), c.Param("pid"), c.GetString(middleware.CtxUserIDKey), application.UpdatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.placeError(c, err, "could not update place")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"place": placeJSON(p)}, "updated place")
}

// DeletePlace DELETE /api/places/:pid (auth, owner only)
func (h *PlaceHandler) DeletePlace(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("pid"), c.GetString(middleware.CtxUserIDKey)); err != nil {
		h.placeError(c, err, "could not delete place")
		return
	}
	response.Success[any](c, http.StatusOK, nil, "deleted place.")
}

// placeError maps service errors onto the API taxonomy: 404 for missing
// records, 401 for ownership violations, 500 for everything else including
// geocoding and persistence failures.
func (h *PlaceHandler) placeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, application.ErrPlaceNotFound):
		response.Error[any](c, http.StatusNotFound, "could not find a place for the provided id", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "could not find user for provided id", nil)
	case errors.Is(err, application.ErrNotOwner):
		response.Error[any](c, http.StatusUnauthorized, "you are not allowed to modify this place", nil)
	default:
		h.Logger.WithError(err).Error(fallback)
		response.Error[any](c, http.StatusInternalServerError, fallback, nil)
	}
}

// formImage opens the named multipart file and wraps it for the service
// layer. The returned close func is a no-op when opening failed.
func formImage(c *gin.Context, field string) (*application.ImageUpload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, func() {}, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &application.ImageUpload{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: contentTypeOf(fh),
	}, func() { _ = f.Close() }, nil
}

func contentTypeOf(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func placeJSON(p *entity.Place) gin.H {
	return gin.H{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
		"address":     p.Address,
		"location":    p.Location,
		"image":       p.ImageURL,
		"creator":     p.CreatorID,
		"created_at":  p.CreatedAt,
		"updated_at":  p.UpdatedAt,
	}
}
