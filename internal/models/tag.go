package models

import "strings"

// Tag labels snippets through the snippet_tags join table.
type Tag struct {
	BaseModel

	Name string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
}

// Normalise trims the tag name.
func (t *Tag) Normalise() {
	t.Name = strings.TrimSpace(t.Name)
}
