package importer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/charlesng35/codeshelf/internal/client"
	"github.com/charlesng35/codeshelf/internal/models"
	"github.com/charlesng35/codeshelf/pkg/logger"
)

// Store is the subset of the store client the importer needs.
type Store interface {
	ListSnippets(ctx context.Context, query client.SnippetQuery) ([]models.Snippet, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateTag(ctx context.Context, name string) (*models.Tag, error)
	CreateCategory(ctx context.Context, name string, description *string) (*models.Category, error)
	CreateSnippet(ctx context.Context, input client.CreateSnippet) (*models.Snippet, error)
}

// Result counts what an import did.
type Result struct {
	Created           int
	Skipped           int
	CreatedCategories int
	CreatedTags       int
}

// Importer writes bundles to a store.
type Importer struct {
	store Store
	log   *zap.Logger

	categories map[string]uint
	tags       map[string]uint
	titles     map[string]struct{}
}

// New constructs an importer for store.
func New(store Store) *Importer {
	return &Importer{store: store, log: logger.WithModule("importer")}
}

// Import creates every snippet of bundle whose title is not already present. Missing
// categories and tags are created on first use. A failing snippet does not stop the rest;
// all failures are returned together.
func (im *Importer) Import(ctx context.Context, bundle *Bundle) (Result, error) {
	var result Result
	if bundle == nil {
		return result, nil
	}
	if err := im.loadExisting(ctx); err != nil {
		return result, err
	}

	descriptions := make(map[string]string, len(bundle.Categories))
	for _, c := range bundle.Categories {
		descriptions[key(c.Name)] = strings.TrimSpace(c.Description)
	}

	var errs error
	for i, entry := range bundle.Snippets {
		title := strings.TrimSpace(entry.Title)
		if _, exists := im.titles[title]; exists {
			result.Skipped++
			im.log.Debug("snippet exists, skipping", zap.String("title", title))
			continue
		}

		categoryID, created, err := im.category(ctx, entry.Category, descriptions)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("snippets[%d] %q: %w", i, title, err))
			continue
		}
		if created {
			result.CreatedCategories++
		}

		tagIDs, createdTags, err := im.tagIDs(ctx, entry.Tags)
		result.CreatedTags += createdTags
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("snippets[%d] %q: %w", i, title, err))
			continue
		}

		input := client.CreateSnippet{
			Title:      title,
			Language:   strings.TrimSpace(entry.Language),
			Code:       entry.Code,
			CategoryID: categoryID,
			TagIDs:     tagIDs,
		}
		if desc := strings.TrimSpace(entry.Description); desc != "" {
			input.Description = &desc
		}
		if _, err := im.store.CreateSnippet(ctx, input); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("snippets[%d] %q: %w", i, title, err))
			continue
		}

		im.titles[title] = struct{}{}
		result.Created++
	}

	im.log.Info("import finished",
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", len(multierr.Errors(errs))),
	)
	return result, errs
}

func (im *Importer) loadExisting(ctx context.Context) error {
	snippets, err := im.store.ListSnippets(ctx, client.SnippetQuery{})
	if err != nil {
		return fmt.Errorf("importer: list snippets: %w", err)
	}
	tags, err := im.store.ListTags(ctx)
	if err != nil {
		return fmt.Errorf("importer: list tags: %w", err)
	}
	categories, err := im.store.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("importer: list categories: %w", err)
	}

	im.titles = make(map[string]struct{}, len(snippets))
	for _, s := range snippets {
		im.titles[strings.TrimSpace(s.Title)] = struct{}{}
	}
	im.tags = make(map[string]uint, len(tags))
	for _, t := range tags {
		im.tags[key(t.Name)] = t.ID
	}
	im.categories = make(map[string]uint, len(categories))
	for _, c := range categories {
		im.categories[key(c.Name)] = c.ID
	}
	return nil
}

func (im *Importer) category(ctx context.Context, name string, descriptions map[string]string) (uint, bool, error) {
	name = strings.TrimSpace(name)
	if id, ok := im.categories[key(name)]; ok {
		return id, false, nil
	}

	var description *string
	if desc := descriptions[key(name)]; desc != "" {
		description = &desc
	}
	category, err := im.store.CreateCategory(ctx, name, description)
	if err != nil {
		return 0, false, fmt.Errorf("create category %q: %w", name, err)
	}
	im.categories[key(name)] = category.ID
	return category.ID, true, nil
}

func (im *Importer) tagIDs(ctx context.Context, names []string) ([]uint, int, error) {
	ids := make([]uint, 0, len(names))
	created := 0
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if id, ok := im.tags[key(name)]; ok {
			ids = append(ids, id)
			continue
		}
		tag, err := im.store.CreateTag(ctx, name)
		if err != nil {
			return nil, created, fmt.Errorf("create tag %q: %w", name, err)
		}
		im.tags[key(name)] = tag.ID
		ids = append(ids, tag.ID)
		created++
	}
	return ids, created, nil
}

// key folds category and tag names so lookups ignore case and surrounding whitespace.
// Titles are only trimmed, matching how the duplicate cleaner groups them.
func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
