// Package browser holds the client-side view of the store: the fetched snippets, tags and
// categories, the active search criteria with the derived result list, and one error banner.
package browser

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/charlesng35/codeshelf/internal/client"
	"github.com/charlesng35/codeshelf/internal/models"
	"github.com/charlesng35/codeshelf/internal/search"
	"github.com/charlesng35/codeshelf/pkg/logger"
)

// GenericErrorMessage is shown when the store gave no specific reason for a failure.
const GenericErrorMessage = "request failed"

// Store is the subset of the store client the browser uses.
type Store interface {
	ListSnippets(ctx context.Context, query client.SnippetQuery) ([]models.Snippet, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateSnippet(ctx context.Context, input client.CreateSnippet) (*models.Snippet, error)
	UpdateSnippet(ctx context.Context, id uint, input client.UpdateSnippet) (*models.Snippet, error)
	DeleteSnippet(ctx context.Context, id uint) error
}

// State is safe for concurrent use.
type State struct {
	store Store
	log   *zap.Logger

	mu         sync.RWMutex
	snippets   []models.Snippet
	tags       []models.Tag
	categories []models.Category
	criteria   search.Criteria
	filtered   []models.Snippet
	errMsg     string
}

// New constructs an empty state bound to store. Call Refresh to load data.
func New(store Store) *State {
	return &State{
		store:    store,
		log:      logger.WithModule("browser"),
		filtered: []models.Snippet{},
	}
}

// Refresh replaces snippets, tags and categories with a fresh copy from the store and clears
// the error banner. On failure the previous data is kept and the banner is set.
func (s *State) Refresh(ctx context.Context) error {
	snippets, err := s.store.ListSnippets(ctx, client.SnippetQuery{})
	if err != nil {
		return s.fail("refresh snippets", err)
	}
	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return s.fail("refresh tags", err)
	}
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return s.fail("refresh categories", err)
	}

	s.mu.Lock()
	s.snippets = snippets
	s.tags = tags
	s.categories = categories
	s.errMsg = ""
	s.recompute()
	s.mu.Unlock()
	return nil
}

// Create stores a new snippet and reloads everything.
func (s *State) Create(ctx context.Context, input client.CreateSnippet) error {
	if _, err := s.store.CreateSnippet(ctx, input); err != nil {
		return s.fail("create snippet", err)
	}
	return s.Refresh(ctx)
}

// Update applies a partial update and reloads everything.
func (s *State) Update(ctx context.Context, id uint, input client.UpdateSnippet) error {
	if _, err := s.store.UpdateSnippet(ctx, id, input); err != nil {
		return s.fail("update snippet", err)
	}
	return s.Refresh(ctx)
}

// Delete removes a snippet and reloads everything.
func (s *State) Delete(ctx context.Context, id uint) error {
	if err := s.store.DeleteSnippet(ctx, id); err != nil {
		return s.fail("delete snippet", err)
	}
	return s.Refresh(ctx)
}

// SetCriteria replaces the search criteria and recomputes the result list.
func (s *State) SetCriteria(criteria search.Criteria) {
	s.mu.Lock()
	s.criteria = criteria
	s.recompute()
	s.mu.Unlock()
}

// SetTerm changes only the search term.
func (s *State) SetTerm(term string) {
	s.mu.Lock()
	s.criteria.Term = term
	s.recompute()
	s.mu.Unlock()
}

// SetLanguage changes only the language filter.
func (s *State) SetLanguage(language string) {
	s.mu.Lock()
	s.criteria.Language = language
	s.recompute()
	s.mu.Unlock()
}

// SetCategory changes only the category filter.
func (s *State) SetCategory(category string) {
	s.mu.Lock()
	s.criteria.Category = category
	s.recompute()
	s.mu.Unlock()
}

// recompute must be called with mu held for writing.
func (s *State) recompute() {
	s.filtered = search.Filter(s.snippets, s.criteria)
	if s.filtered == nil {
		s.filtered = []models.Snippet{}
	}
}

// Criteria returns the active search criteria.
func (s *State) Criteria() search.Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

// Snippets returns every fetched snippet, newest first.
func (s *State) Snippets() []models.Snippet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snippets
}

// Filtered returns the snippets matching the current criteria.
func (s *State) Filtered() []models.Snippet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filtered
}

// Tags returns the fetched tags.
func (s *State) Tags() []models.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tags
}

// Categories returns the fetched categories.
func (s *State) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories
}

// Stats summarises the current result list.
func (s *State) Stats() search.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return search.Summarize(s.filtered, s.criteria.Term)
}

// Err returns the current error banner, or "" when there is none.
func (s *State) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// ClearError dismisses the error banner.
func (s *State) ClearError() {
	s.mu.Lock()
	s.errMsg = ""
	s.mu.Unlock()
}

// fail records err as the single visible error, replacing any earlier one, and returns it.
func (s *State) fail(op string, err error) error {
	msg := ErrorMessage(err)
	s.log.Warn("store call failed", zap.String("op", op), zap.Error(err))

	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
	return err
}

// ErrorMessage turns a store error into a user-facing message.
func ErrorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Code != "" && apiErr.Message != "" {
		return apiErr.Message
	}
	return GenericErrorMessage
}
