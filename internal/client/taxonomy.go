package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charlesng35/codeshelf/internal/models"
)

type tagBody struct {
	Name string `json:"name"`
}

type categoryBody struct {
	Name        string  `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ListTags returns every tag ordered by name.
func (c *Client) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := c.do(ctx, http.MethodGet, "/tags", nil, nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// CreateTag stores a new tag.
func (c *Client) CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := c.do(ctx, http.MethodPost, "/tags", nil, tagBody{Name: name}, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// RenameTag changes a tag's name.
func (c *Client) RenameTag(ctx context.Context, id uint, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/tags/%d", id), nil, tagBody{Name: name}, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// DeleteTag removes a tag and detaches it from every snippet.
func (c *Client) DeleteTag(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tags/%d", id), nil, nil, nil)
}

// ListCategories returns every category ordered by name.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory stores a new category.
func (c *Client) CreateCategory(ctx context.Context, name string, description *string) (*models.Category, error) {
	var category models.Category
	body := categoryBody{Name: name, Description: description}
	if err := c.do(ctx, http.MethodPost, "/categories", nil, body, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory changes a category's name and/or description. Empty name leaves it unchanged.
func (c *Client) UpdateCategory(ctx context.Context, id uint, name string, description *string) (*models.Category, error) {
	var category models.Category
	body := categoryBody{Name: name, Description: description}
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/categories/%d", id), nil, body, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes an unreferenced category.
func (c *Client) DeleteCategory(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil, nil, nil)
}
