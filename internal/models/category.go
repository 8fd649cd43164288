package models

import "strings"

// Category groups snippets. Every snippet belongs to exactly one category.
type Category struct {
	BaseModel

	Name        string  `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Description *string `gorm:"type:text" json:"description"`
}

// Normalise trims the category name and description.
func (c *Category) Normalise() {
	c.Name = strings.TrimSpace(c.Name)
	if c.Description != nil {
		trimmed := strings.TrimSpace(*c.Description)
		c.Description = &trimmed
	}
}

// DescriptionText returns the description or an empty string when unset.
func (c Category) DescriptionText() string {
	if c.Description == nil {
		return ""
	}
	return *c.Description
}
