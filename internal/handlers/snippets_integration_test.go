package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/codeshelf/internal/handlers/testutil"
	"github.com/charlesng35/codeshelf/internal/models"
)

func createSnippet(t *testing.T, env *testutil.Env, body map[string]any) models.Snippet {
	t.Helper()
	w := env.Request(http.MethodPost, "/snippets", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := testutil.DecodeResponse(t, w)
	require.True(t, resp.Success)
	var snippet models.Snippet
	testutil.DecodeInto(t, resp.Data, &snippet)
	return snippet
}

func listSnippets(t *testing.T, env *testutil.Env, query string) []models.Snippet {
	t.Helper()
	w := env.Request(http.MethodGet, "/snippets"+query, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := testutil.DecodeResponse(t, w)
	var snippets []models.Snippet
	testutil.DecodeInto(t, resp.Data, &snippets)
	require.NotNil(t, resp.Meta)
	require.Equal(t, len(snippets), resp.Meta.Total)
	return snippets
}

func titles(snippets []models.Snippet) []string {
	out := make([]string, 0, len(snippets))
	for _, s := range snippets {
		out = append(out, s.Title)
	}
	return out
}

func TestSnippetHandler_CreateGetUpdateDelete(t *testing.T) {
	env := testutil.NewEnv(t)
	frontend := env.Category("Frontend")
	backend := env.Category("Backend")
	react := env.Tag("React")
	hook := env.Tag("Hook")
	sql := env.Tag("SQL")

	created := createSnippet(t, env, map[string]any{
		"title":       "  useDebounce  ",
		"description": "Debounce a value",
		"language":    "typescript",
		"code":        "export function useDebounce() {}",
		"categoryId":  frontend.ID,
		"tagIds":      []uint{react.ID, hook.ID, react.ID},
	})
	require.NotZero(t, created.ID)
	require.Equal(t, "useDebounce", created.Title)
	require.Equal(t, "Frontend", created.Category.Name)
	require.ElementsMatch(t, []string{"React", "Hook"}, created.TagNames())
	require.False(t, created.CreatedAt.IsZero())

	w := env.Request(http.MethodGet, fmt.Sprintf("/api/snippets/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched models.Snippet
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &fetched)
	require.Equal(t, created.ID, fetched.ID)
	require.Equal(t, "Debounce a value", fetched.DescriptionText())

	w = env.Request(http.MethodPatch, fmt.Sprintf("/snippets/%d", created.ID), map[string]any{
		"title":      "useDebouncedValue",
		"categoryId": backend.ID,
		"tagIds":     []uint{sql.ID},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Snippet
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &updated)
	require.Equal(t, "useDebouncedValue", updated.Title)
	require.Equal(t, "typescript", updated.Language)
	require.Equal(t, backend.ID, updated.CategoryID)
	require.Equal(t, []string{"SQL"}, updated.TagNames())

	w = env.Request(http.MethodPatch, fmt.Sprintf("/snippets/%d", created.ID), map[string]any{"tagIds": []uint{}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &updated)
	require.Empty(t, updated.Tags)

	w = env.Request(http.MethodDelete, fmt.Sprintf("/snippets/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var deleted map[string]bool
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &deleted)
	require.True(t, deleted["deleted"])

	w = env.Request(http.MethodDelete, fmt.Sprintf("/snippets/%d", created.ID), nil)
	testutil.RequireError(t, w, http.StatusNotFound, "SNIPPET_NOT_FOUND")

	w = env.Request(http.MethodGet, fmt.Sprintf("/snippets/%d", created.ID), nil)
	testutil.RequireError(t, w, http.StatusNotFound, "SNIPPET_NOT_FOUND")
}

func TestSnippetHandler_PatchDescriptionNullClears(t *testing.T) {
	env := testutil.NewEnv(t)
	frontend := env.Category("Frontend")

	created := createSnippet(t, env, map[string]any{
		"title":       "Center a div",
		"description": "Flexbox centering",
		"language":    "css",
		"code":        ".c{display:flex}",
		"categoryId":  frontend.ID,
	})
	path := fmt.Sprintf("/snippets/%d", created.ID)

	w := env.Request(http.MethodPatch, path, map[string]any{"title": "Center anything"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Snippet
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &updated)
	require.Equal(t, "Flexbox centering", updated.DescriptionText(), "absent description is left alone")

	w = env.Request(http.MethodPatch, path, map[string]any{"description": nil})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var cleared models.Snippet
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &cleared)
	require.Nil(t, cleared.Description)
	require.Equal(t, "Center anything", cleared.Title)

	w = env.Request(http.MethodPatch, path, map[string]any{"description": 42})
	testutil.RequireError(t, w, http.StatusBadRequest, "BAD_REQUEST")
}

func TestSnippetHandler_ListFiltersAndOrder(t *testing.T) {
	env := testutil.NewEnv(t)
	frontend := env.Category("Frontend")
	database := env.Category("Database")
	react := env.Tag("React")
	sql := env.Tag("SQL")
	css := env.Tag("CSS")

	first := createSnippet(t, env, map[string]any{
		"title": "Button", "language": "TypeScript", "code": "<button/>",
		"categoryId": frontend.ID, "tagIds": []uint{react.ID, css.ID},
	})
	second := createSnippet(t, env, map[string]any{
		"title": "Join", "language": "sql", "code": "SELECT 1",
		"categoryId": database.ID, "tagIds": []uint{sql.ID},
	})
	third := createSnippet(t, env, map[string]any{
		"title": "Grid", "language": "css", "code": ".grid{}",
		"categoryId": frontend.ID, "tagIds": []uint{css.ID},
	})

	require.Equal(t, []string{third.Title, second.Title, first.Title}, titles(listSnippets(t, env, "")))
	require.Equal(t, []string{first.Title}, titles(listSnippets(t, env, "?language=script")))
	require.Equal(t, []string{third.Title, first.Title}, titles(listSnippets(t, env, fmt.Sprintf("?tagIds=%d", css.ID))))
	require.Equal(t, []string{third.Title, second.Title, first.Title},
		titles(listSnippets(t, env, fmt.Sprintf("?tagIds=%d,%d", css.ID, sql.ID))))
	require.Equal(t, []string{third.Title, first.Title}, titles(listSnippets(t, env, fmt.Sprintf("?categoryId=%d", frontend.ID))))
	require.Equal(t, []string{first.Title},
		titles(listSnippets(t, env, fmt.Sprintf("?categoryId=%d&tagIds=%d&language=TYPE", frontend.ID, react.ID))))
	require.Empty(t, listSnippets(t, env, "?language=%25"))

	testutil.RequireError(t, env.Request(http.MethodGet, "/snippets?tagIds=1,abc", nil), http.StatusBadRequest, "BAD_REQUEST")
	testutil.RequireError(t, env.Request(http.MethodGet, "/snippets?categoryId=-2", nil), http.StatusBadRequest, "BAD_REQUEST")
}

func TestSnippetHandler_ValidationErrors(t *testing.T) {
	env := testutil.NewEnv(t)
	frontend := env.Category("Frontend")

	valid := func() map[string]any {
		return map[string]any{"title": "t", "language": "go", "code": "package main", "categoryId": frontend.ID}
	}

	cases := map[string]map[string]any{
		"missing title":    func() map[string]any { b := valid(); delete(b, "title"); return b }(),
		"blank code":       func() map[string]any { b := valid(); b["code"] = "   "; return b }(),
		"blank language":   func() map[string]any { b := valid(); b["language"] = "\t"; return b }(),
		"zero category":    func() map[string]any { b := valid(); b["categoryId"] = 0; return b }(),
		"zero tag":         func() map[string]any { b := valid(); b["tagIds"] = []uint{0}; return b }(),
		"unknown field":    func() map[string]any { b := valid(); b["author"] = "x"; return b }(),
		"wrong field type": func() map[string]any { b := valid(); b["categoryId"] = "one"; return b }(),
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			testutil.RequireError(t, env.Request(http.MethodPost, "/snippets", body), http.StatusBadRequest, "BAD_REQUEST")
		})
	}

	resp := testutil.RequireError(t, env.Request(http.MethodPost, "/snippets", "{"), http.StatusBadRequest, "BAD_REQUEST")
	require.Equal(t, "invalid JSON payload", resp.Error.Message)

	resp = testutil.RequireError(t, env.Request(http.MethodPost, "/snippets", map[string]any{"bogus": true}), http.StatusBadRequest, "BAD_REQUEST")
	require.Contains(t, resp.Error.Message, "unknown field")

	testutil.RequireError(t, env.Request(http.MethodGet, "/snippets/abc", nil), http.StatusBadRequest, "BAD_REQUEST")
	testutil.RequireError(t, env.Request(http.MethodGet, "/snippets/0", nil), http.StatusBadRequest, "BAD_REQUEST")

	var count int64
	require.NoError(t, env.DB.Model(&models.Snippet{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestSnippetHandler_ReferenceErrors(t *testing.T) {
	env := testutil.NewEnv(t)
	frontend := env.Category("Frontend")

	w := env.Request(http.MethodPost, "/snippets", map[string]any{
		"title": "t", "language": "go", "code": "x", "categoryId": 9999,
	})
	testutil.RequireError(t, w, http.StatusUnprocessableEntity, "REFERENCE_NOT_FOUND")

	w = env.Request(http.MethodPost, "/snippets", map[string]any{
		"title": "t", "language": "go", "code": "x", "categoryId": frontend.ID, "tagIds": []uint{9999},
	})
	testutil.RequireError(t, w, http.StatusUnprocessableEntity, "REFERENCE_NOT_FOUND")

	created := createSnippet(t, env, map[string]any{
		"title": "t", "language": "go", "code": "x", "categoryId": frontend.ID,
	})

	w = env.Request(http.MethodPatch, fmt.Sprintf("/snippets/%d", created.ID), map[string]any{"categoryId": 9999})
	testutil.RequireError(t, w, http.StatusUnprocessableEntity, "REFERENCE_NOT_FOUND")

	w = env.Request(http.MethodPatch, fmt.Sprintf("/snippets/%d", created.ID), map[string]any{"title": "  "})
	testutil.RequireError(t, w, http.StatusBadRequest, "BAD_REQUEST")

	w = env.Request(http.MethodPatch, fmt.Sprintf("/snippets/%d", created.ID), map[string]any{"tagIds": []uint{0}})
	testutil.RequireError(t, w, http.StatusBadRequest, "BAD_REQUEST")

	w = env.Request(http.MethodPatch, "/snippets/424242", map[string]any{"title": "new"})
	testutil.RequireError(t, w, http.StatusNotFound, "SNIPPET_NOT_FOUND")
}
