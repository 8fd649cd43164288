package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/charlesng35/codeshelf/internal/database/testutil"
	"github.com/charlesng35/codeshelf/internal/models"
)

type fixture struct {
	db         *gorm.DB
	snippets   *SnippetService
	tags       *TagService
	categories *CategoryService

	frontend models.Category
	backend  models.Category
	react    models.Tag
	hooks    models.Tag
	sql      models.Tag
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	snippetSvc, err := NewSnippetService(db)
	require.NoError(t, err)
	tagSvc, err := NewTagService(db)
	require.NoError(t, err)
	categorySvc, err := NewCategoryService(db)
	require.NoError(t, err)

	f := &fixture{db: db, snippets: snippetSvc, tags: tagSvc, categories: categorySvc}

	f.frontend = models.Category{Name: "Frontend"}
	f.backend = models.Category{Name: "Backend"}
	require.NoError(t, db.Create(&f.frontend).Error)
	require.NoError(t, db.Create(&f.backend).Error)

	f.react = models.Tag{Name: "React"}
	f.hooks = models.Tag{Name: "Hook"}
	f.sql = models.Tag{Name: "SQL"}
	for _, tag := range []*models.Tag{&f.react, &f.hooks, &f.sql} {
		require.NoError(t, db.Create(tag).Error)
	}

	return f
}

func (f *fixture) createSnippet(t *testing.T, title, language string, categoryID uint, tagIDs ...uint) *models.Snippet {
	t.Helper()

	snippet, err := f.snippets.Create(context.Background(), CreateSnippetInput{
		Title:      title,
		Language:   language,
		Code:       "// " + title,
		CategoryID: categoryID,
		TagIDs:     tagIDs,
	})
	require.NoError(t, err)
	return snippet
}

func ptr[T any](v T) *T { return &v }

func snippetTitles(snippets []models.Snippet) []string {
	titles := make([]string, 0, len(snippets))
	for _, s := range snippets {
		titles = append(titles, s.Title)
	}
	return titles
}
