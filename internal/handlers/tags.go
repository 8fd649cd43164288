package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/charlesng35/codeshelf/internal/services"
	apperrors "github.com/charlesng35/codeshelf/pkg/errors"
	"github.com/charlesng35/codeshelf/pkg/response"
)

// TagHandler exposes tag CRUD over HTTP.
type TagHandler struct {
	svc *services.TagService
}

// NewTagHandler constructs a tag handler backed by the provided database.
func NewTagHandler(db *gorm.DB) (*TagHandler, error) {
	svc, err := services.NewTagService(db)
	if err != nil {
		return nil, err
	}
	return &TagHandler{svc: svc}, nil
}

type createTagRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

type updateTagRequest struct {
	Name *string `json:"name" validate:"omitnil,notblank,max=100"`
}

// List handles GET /tags
func (h *TagHandler) List(c *gin.Context) {
	if h == nil || h.svc == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	tags, err := h.svc.List(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, tags)
}

// Get handles GET /tags/:id
func (h *TagHandler) Get(c *gin.Context) {
	if h == nil || h.svc == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	tag, err := h.svc.Get(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, tag)
}

// Create handles POST /tags
func (h *TagHandler) Create(c *gin.Context) {
	if h == nil || h.svc == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	var body createTagRequest
	if !bindAndValidate(c, &body) {
		return
	}

	tag, err := h.svc.Create(requestContext(c), body.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tag)
}

// Update handles PATCH /tags/:id
func (h *TagHandler) Update(c *gin.Context) {
	if h == nil || h.svc == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var body updateTagRequest
	if !bindAndValidate(c, &body) {
		return
	}

	tag, err := h.svc.Update(requestContext(c), id, services.UpdateTagInput{Name: body.Name})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, tag)
}

// Delete handles DELETE /tags/:id
func (h *TagHandler) Delete(c *gin.Context) {
	if h == nil || h.svc == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(requestContext(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c)
}
