// Package importer loads YAML snippet bundles into the store, resolving categories and tags
// by name.
package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Bundle is the on-disk import format.
type Bundle struct {
	Categories []CategoryEntry `yaml:"categories"`
	Snippets   []SnippetEntry  `yaml:"snippets"`
}

// CategoryEntry optionally describes a category referenced by snippets.
type CategoryEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// SnippetEntry is one snippet with its category and tags given by name.
type SnippetEntry struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Language    string   `yaml:"language"`
	Code        string   `yaml:"code"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
}

// Decode parses a bundle, rejecting unknown keys, and validates every entry.
func Decode(r io.Reader) (*Bundle, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var bundle Bundle
	if err := dec.Decode(&bundle); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("importer: bundle is empty")
		}
		return nil, fmt.Errorf("importer: decode bundle: %w", err)
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	return &bundle, nil
}

// LoadFile reads and decodes the bundle at path.
func LoadFile(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("importer: open bundle: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Validate reports every entry missing a required field.
func (b *Bundle) Validate() error {
	var errs error
	for i, c := range b.Categories {
		if strings.TrimSpace(c.Name) == "" {
			errs = multierr.Append(errs, fmt.Errorf("categories[%d]: name is required", i))
		}
	}
	for i, s := range b.Snippets {
		required := []struct{ field, value string }{
			{"title", s.Title},
			{"language", s.Language},
			{"code", s.Code},
			{"category", s.Category},
		}
		for _, r := range required {
			if strings.TrimSpace(r.value) == "" {
				errs = multierr.Append(errs, fmt.Errorf("snippets[%d]: %s is required", i, r.field))
			}
		}
	}
	return errs
}
