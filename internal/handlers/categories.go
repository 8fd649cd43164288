package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/charlesng35/codeshelf/internal/services"
	apperrors "github.com/charlesng35/codeshelf/pkg/errors"
	"github.com/charlesng35/codeshelf/pkg/response"
)

// CategoryHandler exposes category CRUD over HTTP.
type CategoryHandler struct {
	svc *services.CategoryService
}

// NewCategoryHandler constructs a category handler backed by the provided database.
func NewCategoryHandler(db *gorm.DB) (*CategoryHandler, error) {
	svc, err := services.NewCategoryService(db)
	if err != nil {
		return nil, err
	}
	return &CategoryHandler{svc: svc}, nil
}

type createCategoryRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=100"`
	Description *string `json:"description"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitnil,notblank,max=100"`
	Description *string `json:"description"`
}

// List handles GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	if h == nil || h.svc == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	categories, err := h.svc.List(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, categories)
}

// Get handles GET /categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	if h == nil || h.svc == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	category, err := h.svc.Get(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, category)
}

// Create handles POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	if h == nil || h.svc == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	var body createCategoryRequest
	if !bindAndValidate(c, &body) {
		return
	}

	category, err := h.svc.Create(requestContext(c), services.CreateCategoryInput{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, category)
}

// Update handles PATCH /categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	if h == nil || h.svc == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var body updateCategoryRequest
	if !bindAndValidate(c, &body) {
		return
	}

	category, err := h.svc.Update(requestContext(c), id, services.UpdateCategoryInput{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, category)
}

// Delete handles DELETE /categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
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
