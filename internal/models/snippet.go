package models

import (
	"strings"
)

// Snippet is a stored piece of source code with its metadata. Reads always hydrate Category
// and Tags.
type Snippet struct {
	BaseModel

	Title       string  `gorm:"type:varchar(255);not null;index" json:"title"`
	Description *string `gorm:"type:text" json:"description"`
	Language    string  `gorm:"type:varchar(64);not null;index" json:"language"`
	Code        string  `gorm:"type:text;not null" json:"code"`

	CategoryID uint     `gorm:"not null;index" json:"categoryId"`
	Category   Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	Tags       []Tag    `gorm:"many2many:snippet_tags;constraint:OnDelete:CASCADE;" json:"tags"`
}

// Normalise trims the single-line text fields. Code is stored as given.
func (s *Snippet) Normalise() {
	s.Title = strings.TrimSpace(s.Title)
	s.Language = strings.TrimSpace(s.Language)
	if s.Description != nil {
		trimmed := strings.TrimSpace(*s.Description)
		s.Description = &trimmed
	}
}

// DescriptionText returns the description or an empty string when unset.
func (s Snippet) DescriptionText() string {
	if s.Description == nil {
		return ""
	}
	return *s.Description
}

// TagIDs lists the ids of the associated tags in association order.
func (s Snippet) TagIDs() []uint {
	ids := make([]uint, 0, len(s.Tags))
	for _, tag := range s.Tags {
		ids = append(ids, tag.ID)
	}
	return ids
}

// TagNames lists the names of the associated tags in association order.
func (s Snippet) TagNames() []string {
	names := make([]string, 0, len(s.Tags))
	for _, tag := range s.Tags {
		names = append(names, tag.Name)
	}
	return names
}
