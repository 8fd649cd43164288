package database

import (
	"gorm.io/gorm"

	"github.com/charlesng35/codeshelf/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.Tag{},
		&models.Snippet{},
	)
}

func stringPtr(s string) *string { return &s }

// DefaultCategories are created on first start when seeding is enabled.
var DefaultCategories = []models.Category{
	{Name: "Frontend", Description: stringPtr("HTML, CSS and JavaScript snippets")},
	{Name: "Backend", Description: stringPtr("Server-side snippets")},
	{Name: "Database", Description: stringPtr("Queries and data access snippets")},
	{Name: "Utilities", Description: stringPtr("General purpose helpers")},
}

// DefaultTags are created on first start when seeding is enabled.
var DefaultTags = []string{
	"JavaScript", "TypeScript", "React", "Vue", "Node.js", "Python",
	"SQL", "CSS", "HTML", "API", "Hook", "Component",
}

// SeedData populates the default categories and tags. Existing rows are left untouched.
func SeedData(db *gorm.DB) error {
	for _, category := range DefaultCategories {
		if err := db.Where(models.Category{Name: category.Name}).Attrs(category).FirstOrCreate(&models.Category{}).Error; err != nil {
			return err
		}
	}

	for _, name := range DefaultTags {
		if err := db.Where(models.Tag{Name: name}).FirstOrCreate(&models.Tag{}).Error; err != nil {
			return err
		}
	}

	return nil
}
