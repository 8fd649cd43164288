package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/charlesng35/codeshelf/internal/models"
	apperrors "github.com/charlesng35/codeshelf/pkg/errors"
	"github.com/charlesng35/codeshelf/pkg/metrics"
)

var (
	// ErrTagNotFound indicates the requested tag does not exist.
	ErrTagNotFound = apperrors.New("TAG_NOT_FOUND", "Tag not found", http.StatusNotFound)
	// ErrTagExists signals another tag already uses the name.
	ErrTagExists = apperrors.New("TAG_EXISTS", "Tag name already in use", http.StatusConflict)
)

// UpdateTagInput describes mutable tag fields.
type UpdateTagInput struct {
	Name *string
}

// TagService handles tag CRUD.
type TagService struct {
	db *gorm.DB
}

// NewTagService constructs a TagService instance.
func NewTagService(db *gorm.DB) (*TagService, error) {
	if db == nil {
		return nil, errors.New("tag service: db is required")
	}
	return &TagService{db: db}, nil
}

// List returns every tag ordered by name.
func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	ctx = ensureContext(ctx)

	var tags []models.Tag
	if err := s.db.WithContext(ctx).Order("LOWER(name)").Order("id").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("tag service: list tags: %w", err)
	}
	return tags, nil
}

// Get returns a tag by id.
func (s *TagService) Get(ctx context.Context, id uint) (*models.Tag, error) {
	ctx = ensureContext(ctx)

	var tag models.Tag
	err := s.db.WithContext(ctx).First(&tag, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTagNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("tag service: load tag: %w", err)
	}
	return &tag, nil
}

// Create registers a new tag.
func (s *TagService) Create(ctx context.Context, name string) (tag *models.Tag, err error) {
	ctx = ensureContext(ctx)
	defer func() { metrics.ObserveMutation("tag", "create", err) }()

	record := models.Tag{Name: name}
	record.Normalise()
	if record.Name == "" {
		return nil, apperrors.NewBadRequest("name is required")
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrTagExists
		}
		return nil, fmt.Errorf("tag service: create tag: %w", err)
	}
	return &record, nil
}

// Update renames a tag.
func (s *TagService) Update(ctx context.Context, id uint, input UpdateTagInput) (tag *models.Tag, err error) {
	ctx = ensureContext(ctx)
	defer func() { metrics.ObserveMutation("tag", "update", err) }()

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name == nil {
		return existing, nil
	}

	name := strings.TrimSpace(*input.Name)
	if name == "" {
		return nil, apperrors.NewBadRequest("name cannot be empty")
	}

	if err := s.db.WithContext(ctx).Model(existing).Update("name", name).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrTagExists
		}
		return nil, fmt.Errorf("tag service: update tag: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete detaches the tag from every snippet and removes it.
func (s *TagService) Delete(ctx context.Context, id uint) (err error) {
	ctx = ensureContext(ctx)
	defer func() { metrics.ObserveMutation("tag", "delete", err) }()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.First(&tag, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTagNotFound
			}
			return fmt.Errorf("tag service: load tag: %w", err)
		}

		if err := tx.Exec("DELETE FROM snippet_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
			return fmt.Errorf("tag service: detach tag: %w", err)
		}
		if err := tx.Delete(&tag).Error; err != nil {
			return fmt.Errorf("tag service: delete tag: %w", err)
		}
		return nil
	})
}
