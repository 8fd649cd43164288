package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charlesng35/codeshelf/internal/models"
)

// SnippetQuery holds the server-side list filters. Zero values are omitted.
type SnippetQuery struct {
	Language   string
	TagIDs     []uint
	CategoryID uint
}

func (q SnippetQuery) values() url.Values {
	values := url.Values{}
	if q.Language != "" {
		values.Set("language", q.Language)
	}
	if len(q.TagIDs) > 0 {
		parts := make([]string, 0, len(q.TagIDs))
		for _, id := range q.TagIDs {
			parts = append(parts, strconv.FormatUint(uint64(id), 10))
		}
		values.Set("tagIds", strings.Join(parts, ","))
	}
	if q.CategoryID > 0 {
		values.Set("categoryId", strconv.FormatUint(uint64(q.CategoryID), 10))
	}
	return values
}

// CreateSnippet is the body of POST /snippets.
type CreateSnippet struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Language    string  `json:"language"`
	Code        string  `json:"code"`
	CategoryID  uint    `json:"categoryId"`
	TagIDs      []uint  `json:"tagIds,omitempty"`
}

// UpdateSnippet is the body of PATCH /snippets/:id. Nil fields are left unchanged; a non-nil
// TagIDs replaces the tag set. ClearDescription sends an explicit null for description.
type UpdateSnippet struct {
	Title            *string `json:"title,omitempty"`
	Description      *string `json:"description,omitempty"`
	ClearDescription bool    `json:"-"`
	Language         *string `json:"language,omitempty"`
	Code             *string `json:"code,omitempty"`
	CategoryID       *uint   `json:"categoryId,omitempty"`
	TagIDs           *[]uint `json:"tagIds,omitempty"`
}

// MarshalJSON writes "description": null when ClearDescription is set.
func (u UpdateSnippet) MarshalJSON() ([]byte, error) {
	type plain UpdateSnippet
	if !u.ClearDescription {
		return json.Marshal(plain(u))
	}
	return json.Marshal(struct {
		plain
		Description *string `json:"description"`
	}{plain: plain(u)})
}

func snippetPath(id uint) string {
	return fmt.Sprintf("/snippets/%d", id)
}

// ListSnippets returns snippets newest first.
func (c *Client) ListSnippets(ctx context.Context, query SnippetQuery) ([]models.Snippet, error) {
	var snippets []models.Snippet
	if err := c.do(ctx, http.MethodGet, "/snippets", query.values(), nil, &snippets); err != nil {
		return nil, err
	}
	return snippets, nil
}

// GetSnippet fetches one snippet.
func (c *Client) GetSnippet(ctx context.Context, id uint) (*models.Snippet, error) {
	var snippet models.Snippet
	if err := c.do(ctx, http.MethodGet, snippetPath(id), nil, nil, &snippet); err != nil {
		return nil, err
	}
	return &snippet, nil
}

// CreateSnippet stores a new snippet.
func (c *Client) CreateSnippet(ctx context.Context, input CreateSnippet) (*models.Snippet, error) {
	var snippet models.Snippet
	if err := c.do(ctx, http.MethodPost, "/snippets", nil, input, &snippet); err != nil {
		return nil, err
	}
	return &snippet, nil
}

// UpdateSnippet applies a partial update.
func (c *Client) UpdateSnippet(ctx context.Context, id uint, input UpdateSnippet) (*models.Snippet, error) {
	var snippet models.Snippet
	if err := c.do(ctx, http.MethodPatch, snippetPath(id), nil, input, &snippet); err != nil {
		return nil, err
	}
	return &snippet, nil
}

// DeleteSnippet removes a snippet.
func (c *Client) DeleteSnippet(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, snippetPath(id), nil, nil, nil)
}
