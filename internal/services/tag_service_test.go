package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/charlesng35/codeshelf/pkg/errors"
)

func TestTagServiceLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.tags.Create(ctx, "  Go ")
	require.NoError(t, err)
	require.Equal(t, "Go", created.Name)

	_, err = f.tags.Create(ctx, "Go")
	require.ErrorIs(t, err, ErrTagExists)

	_, err = f.tags.Create(ctx, " ")
	require.ErrorIs(t, err, apperrors.ErrBadRequest)

	tags, err := f.tags.List(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	require.Equal(t, []string{"Go", "Hook", "React", "SQL"}, names)

	renamed, err := f.tags.Update(ctx, created.ID, UpdateTagInput{Name: ptr("Golang")})
	require.NoError(t, err)
	require.Equal(t, "Golang", renamed.Name)

	_, err = f.tags.Update(ctx, created.ID, UpdateTagInput{Name: ptr("React")})
	require.ErrorIs(t, err, ErrTagExists)

	_, err = f.tags.Update(ctx, 999, UpdateTagInput{Name: ptr("x")})
	require.ErrorIs(t, err, ErrTagNotFound)
}

func TestTagServiceDeleteDetachesSnippets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	snippet := f.createSnippet(t, "tagged", "jsx", f.frontend.ID, f.react.ID, f.hooks.ID)

	require.NoError(t, f.tags.Delete(ctx, f.react.ID))

	reloaded, err := f.snippets.Get(ctx, snippet.ID)
	require.NoError(t, err)
	require.Equal(t, []uint{f.hooks.ID}, reloaded.TagIDs())

	require.ErrorIs(t, f.tags.Delete(ctx, f.react.ID), ErrTagNotFound)
}
