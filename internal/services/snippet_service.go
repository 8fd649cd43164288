package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/charlesng35/codeshelf/internal/models"
	apperrors "github.com/charlesng35/codeshelf/pkg/errors"
	"github.com/charlesng35/codeshelf/pkg/metrics"
)

var (
	// ErrSnippetNotFound indicates the requested snippet does not exist.
	ErrSnippetNotFound = apperrors.New("SNIPPET_NOT_FOUND", "Snippet not found", http.StatusNotFound)
)

// SnippetService manages CRUD operations for code snippets.
type SnippetService struct {
	db *gorm.DB
}

// NewSnippetService constructs a snippet service once a database handle is supplied.
func NewSnippetService(db *gorm.DB) (*SnippetService, error) {
	if db == nil {
		return nil, errors.New("snippet service: db is required")
	}
	return &SnippetService{db: db}, nil
}

// ListSnippetsOptions controls how snippets are filtered. Every non-empty option narrows the
// result; options combine with AND.
type ListSnippetsOptions struct {
	// Language matches as a case-insensitive substring.
	Language string
	// TagIDs keeps snippets carrying at least one of the tags.
	TagIDs []uint
	// CategoryID keeps snippets in exactly this category.
	CategoryID *uint
}

// CreateSnippetInput captures required fields when creating a snippet.
type CreateSnippetInput struct {
	Title       string
	Description *string
	Language    string
	Code        string
	CategoryID  uint
	TagIDs      []uint
}

// UpdateSnippetInput describes mutable snippet fields. A nil pointer indicates no change.
// A non-nil TagIDs replaces the whole tag set; an empty slice clears it. ClearDescription
// sets the description to NULL and wins over Description.
type UpdateSnippetInput struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Language         *string
	Code             *string
	CategoryID       *uint
	TagIDs           *[]uint
}

func (s *SnippetService) hydrated(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Category").Preload("Tags")
}

// List retrieves snippets newest first.
func (s *SnippetService) List(ctx context.Context, opts ListSnippetsOptions) ([]models.Snippet, error) {
	if s == nil {
		return nil, errors.New("snippet service: service not initialised")
	}
	ctx = ensureContext(ctx)

	query := s.hydrated(ctx).Model(&models.Snippet{})

	if language := strings.ToLower(strings.TrimSpace(opts.Language)); language != "" {
		query = query.Where("LOWER(language) LIKE ? ESCAPE '!'", "%"+escapeLike(language)+"%")
	}

	if tagIDs := normaliseIDs(opts.TagIDs); len(tagIDs) > 0 {
		tagged := s.db.WithContext(ctx).
			Table("snippet_tags").
			Select("snippet_id").
			Where("tag_id IN ?", tagIDs)
		query = query.Where("id IN (?)", tagged)
	}

	if opts.CategoryID != nil {
		query = query.Where("category_id = ?", *opts.CategoryID)
	}

	var snippets []models.Snippet
	if err := query.Order("created_at DESC").Order("id DESC").Find(&snippets).Error; err != nil {
		return nil, fmt.Errorf("snippet service: list snippets: %w", err)
	}
	return snippets, nil
}

// Get returns a single snippet with its category and tags.
func (s *SnippetService) Get(ctx context.Context, id uint) (*models.Snippet, error) {
	if s == nil {
		return nil, errors.New("snippet service: service not initialised")
	}
	ctx = ensureContext(ctx)

	var snippet models.Snippet
	err := s.hydrated(ctx).First(&snippet, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSnippetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("snippet service: load snippet: %w", err)
	}
	return &snippet, nil
}

// Create persists a new snippet and its tag associations in one transaction.
func (s *SnippetService) Create(ctx context.Context, input CreateSnippetInput) (snippet *models.Snippet, err error) {
	if s == nil {
		return nil, errors.New("snippet service: service not initialised")
	}
	ctx = ensureContext(ctx)
	defer func() { metrics.ObserveMutation("snippet", "create", err) }()

	record := models.Snippet{
		Title:       input.Title,
		Description: input.Description,
		Language:    input.Language,
		Code:        input.Code,
		CategoryID:  input.CategoryID,
	}
	record.Normalise()

	if err := validateSnippet(record); err != nil {
		return nil, err
	}
	tagIDs := normaliseIDs(input.TagIDs)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCategoryExists(tx, record.CategoryID); err != nil {
			return err
		}
		tags, err := loadTags(tx, tagIDs)
		if err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(&record).Error; err != nil {
			return fmt.Errorf("snippet service: create snippet: %w", err)
		}
		if len(tags) > 0 {
			if err := tx.Model(&record).Association("Tags").Append(tags); err != nil {
				return fmt.Errorf("snippet service: attach tags: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, record.ID)
}

// Update applies the provided fields to an existing snippet.
func (s *SnippetService) Update(ctx context.Context, id uint, input UpdateSnippetInput) (snippet *models.Snippet, err error) {
	if s == nil {
		return nil, errors.New("snippet service: service not initialised")
	}
	ctx = ensureContext(ctx)
	defer func() { metrics.ObserveMutation("snippet", "update", err) }()

	updates, err := snippetUpdates(input)
	if err != nil {
		return nil, err
	}

	var tagIDs []uint
	if input.TagIDs != nil {
		tagIDs = normaliseIDs(*input.TagIDs)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Snippet
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSnippetNotFound
			}
			return fmt.Errorf("snippet service: load snippet: %w", err)
		}

		if input.CategoryID != nil {
			if err := ensureCategoryExists(tx, *input.CategoryID); err != nil {
				return err
			}
		}

		if input.TagIDs != nil {
			tags, err := loadTags(tx, tagIDs)
			if err != nil {
				return err
			}
			association := tx.Model(&existing).Association("Tags")
			if len(tags) == 0 {
				err = association.Clear()
			} else {
				err = association.Replace(tags)
			}
			if err != nil {
				return fmt.Errorf("snippet service: replace tags: %w", err)
			}
			if len(updates) == 0 {
				updates["updated_at"] = time.Now()
			}
		}

		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&existing).Omit(clause.Associations).Updates(updates).Error; err != nil {
			return fmt.Errorf("snippet service: update snippet: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete removes the snippet and its tag associations. The category and tags stay.
func (s *SnippetService) Delete(ctx context.Context, id uint) (err error) {
	if s == nil {
		return errors.New("snippet service: service not initialised")
	}
	ctx = ensureContext(ctx)
	defer func() { metrics.ObserveMutation("snippet", "delete", err) }()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteSnippet(tx, id)
	})
}

// DeleteMany removes several snippets in one transaction. Missing ids fail the whole batch.
func (s *SnippetService) DeleteMany(ctx context.Context, ids []uint) (err error) {
	if s == nil {
		return errors.New("snippet service: service not initialised")
	}
	ctx = ensureContext(ctx)
	defer func() { metrics.ObserveMutation("snippet", "delete_many", err) }()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range normaliseIDs(ids) {
			if err := deleteSnippet(tx, id); err != nil {
				return err
			}
		}
		return nil
	})
}

func deleteSnippet(tx *gorm.DB, id uint) error {
	var existing models.Snippet
	if err := tx.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSnippetNotFound
		}
		return fmt.Errorf("snippet service: load snippet: %w", err)
	}

	if err := tx.Model(&existing).Association("Tags").Clear(); err != nil {
		return fmt.Errorf("snippet service: detach tags: %w", err)
	}
	if err := tx.Delete(&existing).Error; err != nil {
		return fmt.Errorf("snippet service: delete snippet: %w", err)
	}
	return nil
}

func validateSnippet(snippet models.Snippet) error {
	switch {
	case snippet.Title == "":
		return apperrors.NewBadRequest("title is required")
	case snippet.Language == "":
		return apperrors.NewBadRequest("language is required")
	case strings.TrimSpace(snippet.Code) == "":
		return apperrors.NewBadRequest("code is required")
	case snippet.CategoryID == 0:
		return apperrors.NewBadRequest("categoryId is required")
	}
	return nil
}

func snippetUpdates(input UpdateSnippetInput) (map[string]any, error) {
	updates := make(map[string]any)

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperrors.NewBadRequest("title cannot be empty")
		}
		updates["title"] = title
	}
	switch {
	case input.ClearDescription:
		updates["description"] = nil
	case input.Description != nil:
		updates["description"] = *trimmedPtr(input.Description)
	}
	if input.Language != nil {
		language := strings.TrimSpace(*input.Language)
		if language == "" {
			return nil, apperrors.NewBadRequest("language cannot be empty")
		}
		updates["language"] = language
	}
	if input.Code != nil {
		if strings.TrimSpace(*input.Code) == "" {
			return nil, apperrors.NewBadRequest("code cannot be empty")
		}
		updates["code"] = *input.Code
	}
	if input.CategoryID != nil {
		if *input.CategoryID == 0 {
			return nil, apperrors.NewBadRequest("categoryId must be a positive integer")
		}
		updates["category_id"] = *input.CategoryID
	}

	return updates, nil
}

func ensureCategoryExists(tx *gorm.DB, id uint) error {
	var count int64
	if err := tx.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("snippet service: check category: %w", err)
	}
	if count == 0 {
		return apperrors.NewReferenceError(fmt.Sprintf("category %d does not exist", id))
	}
	return nil
}

// loadTags fetches the tags for ids, failing with a reference error naming the first missing id.
func loadTags(tx *gorm.DB, ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var tags []models.Tag
	if err := tx.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("snippet service: load tags: %w", err)
	}
	if len(tags) == len(ids) {
		return tags, nil
	}

	found := make(map[uint]struct{}, len(tags))
	for _, tag := range tags {
		found[tag.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return nil, apperrors.NewReferenceError(fmt.Sprintf("tag %d does not exist", id))
		}
	}
	return tags, nil
}
