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
	// ErrCategoryNotFound indicates the requested category does not exist.
	ErrCategoryNotFound = apperrors.New("CATEGORY_NOT_FOUND", "Category not found", http.StatusNotFound)
	// ErrCategoryExists signals another category already uses the name.
	ErrCategoryExists = apperrors.New("CATEGORY_EXISTS", "Category name already in use", http.StatusConflict)
	// ErrCategoryInUse blocks deleting a category that snippets still reference.
	ErrCategoryInUse = apperrors.New("CATEGORY_IN_USE", "Category is still referenced by snippets", http.StatusConflict)
)

// CreateCategoryInput captures new category metadata.
type CreateCategoryInput struct {
	Name        string
	Description *string
}

// UpdateCategoryInput describes mutable category fields.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
}

// CategoryService handles category CRUD.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService constructs a CategoryService instance.
func NewCategoryService(db *gorm.DB) (*CategoryService, error) {
	if db == nil {
		return nil, errors.New("category service: db is required")
	}
	return &CategoryService{db: db}, nil
}

// List returns every category ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	ctx = ensureContext(ctx)

	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("LOWER(name)").Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("category service: list categories: %w", err)
	}
	return categories, nil
}

// Get returns a category by id.
func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	ctx = ensureContext(ctx)

	var category models.Category
	err := s.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("category service: load category: %w", err)
	}
	return &category, nil
}

// Create registers a new category.
func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (category *models.Category, err error) {
	ctx = ensureContext(ctx)
	defer func() { metrics.ObserveMutation("category", "create", err) }()

	record := models.Category{Name: input.Name, Description: input.Description}
	record.Normalise()
	if record.Name == "" {
		return nil, apperrors.NewBadRequest("name is required")
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("category service: create category: %w", err)
	}
	return &record, nil
}

// Update applies the provided fields to a category.
func (s *CategoryService) Update(ctx context.Context, id uint, input UpdateCategoryInput) (category *models.Category, err error) {
	ctx = ensureContext(ctx)
	defer func() { metrics.ObserveMutation("category", "update", err) }()

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewBadRequest("name cannot be empty")
		}
		updates["name"] = name
	}
	if input.Description != nil {
		updates["description"] = *trimmedPtr(input.Description)
	}
	if len(updates) == 0 {
		return existing, nil
	}

	if err := s.db.WithContext(ctx).Model(existing).Updates(updates).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("category service: update category: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes a category that no snippet references.
func (s *CategoryService) Delete(ctx context.Context, id uint) (err error) {
	ctx = ensureContext(ctx)
	defer func() { metrics.ObserveMutation("category", "delete", err) }()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return fmt.Errorf("category service: load category: %w", err)
		}

		var references int64
		if err := tx.Model(&models.Snippet{}).Where("category_id = ?", category.ID).Count(&references).Error; err != nil {
			return fmt.Errorf("category service: count snippets: %w", err)
		}
		if references > 0 {
			return ErrCategoryInUse
		}

		if err := tx.Delete(&category).Error; err != nil {
			if isForeignKeyError(err) {
				return ErrCategoryInUse
			}
			return fmt.Errorf("category service: delete category: %w", err)
		}
		return nil
	})
}
