package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/charlesng35/codeshelf/internal/services"
	apperrors "github.com/charlesng35/codeshelf/pkg/errors"
	"github.com/charlesng35/codeshelf/pkg/response"
)

// SnippetHandler exposes snippet CRUD over HTTP.
type SnippetHandler struct {
	svc *services.SnippetService
}

// NewSnippetHandler constructs a snippet handler backed by the provided database.
func NewSnippetHandler(db *gorm.DB) (*SnippetHandler, error) {
	svc, err := services.NewSnippetService(db)
	if err != nil {
		return nil, err
	}
	return &SnippetHandler{svc: svc}, nil
}

type createSnippetRequest struct {
	Title       string  `json:"title" validate:"required,notblank,max=255"`
	Description *string `json:"description"`
	Language    string  `json:"language" validate:"required,notblank,max=64"`
	Code        string  `json:"code" validate:"required,notblank"`
	CategoryID  uint    `json:"categoryId" validate:"required,gt=0"`
	TagIDs      []uint  `json:"tagIds" validate:"omitempty,dive,gt=0"`
}

type updateSnippetRequest struct {
	Title       *string        `json:"title" validate:"omitnil,notblank,max=255"`
	Description nullableString `json:"description"`
	Language    *string        `json:"language" validate:"omitnil,notblank,max=64"`
	Code        *string        `json:"code" validate:"omitnil,notblank"`
	CategoryID  *uint          `json:"categoryId" validate:"omitnil,gt=0"`
	TagIDs      *[]uint        `json:"tagIds"`
}

// nullableString tells an absent field apart from an explicit null.
type nullableString struct {
	Present bool
	Value   *string
}

func (n *nullableString) UnmarshalJSON(data []byte) error {
	n.Present = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	n.Value = &value
	return nil
}

// List handles GET /snippets
func (h *SnippetHandler) List(c *gin.Context) {
	if h == nil || h.svc == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	opts := services.ListSnippetsOptions{
		Language: strings.TrimSpace(c.Query("language")),
	}

	tagIDs, err := parseIDList(c.Query("tagIds"))
	if err != nil {
		response.Error(c, apperrors.NewBadRequest("tagIds: "+err.Error()))
		return
	}
	opts.TagIDs = tagIDs

	if raw := strings.TrimSpace(c.Query("categoryId")); raw != "" {
		categoryID, err := parsePositiveID(raw)
		if err != nil {
			response.Error(c, apperrors.NewBadRequest("categoryId must be a positive integer"))
			return
		}
		opts.CategoryID = &categoryID
	}

	snippets, err := h.svc.List(requestContext(c), opts)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, snippets)
}

// Get handles GET /snippets/:id
func (h *SnippetHandler) Get(c *gin.Context) {
	if h == nil || h.svc == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	snippet, err := h.svc.Get(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, snippet)
}

// Create handles POST /snippets
func (h *SnippetHandler) Create(c *gin.Context) {
	if h == nil || h.svc == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	var body createSnippetRequest
	if !bindAndValidate(c, &body) {
		return
	}

	snippet, err := h.svc.Create(requestContext(c), services.CreateSnippetInput{
		Title:       body.Title,
		Description: body.Description,
		Language:    body.Language,
		Code:        body.Code,
		CategoryID:  body.CategoryID,
		TagIDs:      body.TagIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, snippet)
}

// Update handles PATCH /snippets/:id
func (h *SnippetHandler) Update(c *gin.Context) {
	if h == nil || h.svc == nil {
		response.Error(c, apperrors.ErrNotFound)
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var body updateSnippetRequest
	if !bindAndValidate(c, &body) {
		return
	}
	if body.TagIDs != nil {
		for _, tagID := range *body.TagIDs {
			if tagID == 0 {
				response.Error(c, apperrors.NewBadRequest("tagIds must contain positive integers"))
				return
			}
		}
	}

	snippet, err := h.svc.Update(requestContext(c), id, services.UpdateSnippetInput{
		Title:            body.Title,
		Description:      body.Description.Value,
		ClearDescription: body.Description.Present && body.Description.Value == nil,
		Language:         body.Language,
		Code:             body.Code,
		CategoryID:       body.CategoryID,
		TagIDs:           body.TagIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, snippet)
}

// Delete handles DELETE /snippets/:id
func (h *SnippetHandler) Delete(c *gin.Context) {
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
