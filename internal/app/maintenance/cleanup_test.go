package maintenance

import (
	"context"
	"errors"
	"testing"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	testutil "github.com/charlesng35/codeshelf/internal/database/testutil"
	"github.com/charlesng35/codeshelf/internal/models"
	"github.com/charlesng35/codeshelf/internal/services"
)

func TestCleanerRunOnceRemovesDuplicates(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := services.NewSnippetService(db)
	require.NoError(t, err)

	category := models.Category{Name: "Frontend"}
	require.NoError(t, db.Create(&category).Error)
	tag := models.Tag{Name: "HTML"}
	require.NoError(t, db.Create(&tag).Error)

	ctx := context.Background()
	create := func(title, code string) *models.Snippet {
		s, err := svc.Create(ctx, services.CreateSnippetInput{
			Title: title, Language: "html", Code: code, CategoryID: category.ID, TagIDs: []uint{tag.ID},
		})
		require.NoError(t, err)
		return s
	}

	plain := create("Landing", "<div>plain</div>")
	rich := create("Landing", `<!DOCTYPE html><script src="https://cdn.tailwindcss.com"></script>`)
	other := create("Footer", "<footer></footer>")

	cleaner := NewCleaner(svc)
	stats, err := cleaner.RunOnce(ctx)
	require.NoError(t, err)
	require.Equal(t, Stats{Groups: 1, Removed: 1}, stats)

	remaining, err := svc.List(ctx, services.ListSnippetsOptions{})
	require.NoError(t, err)
	ids := make([]uint, 0, len(remaining))
	for _, s := range remaining {
		ids = append(ids, s.ID)
	}
	require.ElementsMatch(t, []uint{rich.ID, other.ID}, ids)

	_, err = svc.Get(ctx, plain.ID)
	require.ErrorIs(t, err, services.ErrSnippetNotFound)

	var tagCount int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&tagCount).Error)
	require.EqualValues(t, 1, tagCount)
}

func TestCleanerDryRunKeepsEverything(t *testing.T) {
	store := &fakeStore{snippets: []models.Snippet{
		{BaseModel: models.BaseModel{ID: 1}, Title: "a"},
		{BaseModel: models.BaseModel{ID: 2}, Title: "a"},
	}}

	stats, err := NewCleaner(store, WithDryRun(true)).RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, Stats{Groups: 1, DryRun: true}, stats)
	require.Empty(t, store.deleted)
}

func TestCleanerRunOnceAggregatesErrors(t *testing.T) {
	store := &fakeStore{
		snippets: []models.Snippet{
			{BaseModel: models.BaseModel{ID: 1}, Title: "a"},
			{BaseModel: models.BaseModel{ID: 2}, Title: "a"},
			{BaseModel: models.BaseModel{ID: 3}, Title: "b"},
			{BaseModel: models.BaseModel{ID: 4}, Title: "b"},
			{BaseModel: models.BaseModel{ID: 5}, Title: "c"},
			{BaseModel: models.BaseModel{ID: 6}, Title: "c"},
		},
		failOn: map[uint]error{2: errors.New("locked"), 6: errors.New("gone")},
	}

	stats, err := NewCleaner(store).RunOnce(context.Background())
	require.Error(t, err)
	require.Len(t, multierr.Errors(err), 2)
	require.Equal(t, 3, stats.Groups)
	require.Equal(t, 1, stats.Removed)
	require.Equal(t, [][]uint{{4}}, store.deleted)
}

func TestCleanerRunOnceListFailure(t *testing.T) {
	store := &fakeStore{listErr: errors.New("db down")}

	cleaner := NewCleaner(store)
	at, lastErr := cleaner.LastRun()
	require.True(t, at.IsZero())
	require.NoError(t, lastErr)

	_, err := cleaner.RunOnce(context.Background())
	require.EqualError(t, err, "db down")

	at, lastErr = cleaner.LastRun()
	require.False(t, at.IsZero())
	require.EqualError(t, lastErr, "db down")

	_, err = NewCleaner(nil).RunOnce(context.Background())
	require.Error(t, err)
}

func TestCleanerStartRegistersJob(t *testing.T) {
	scheduler := cron.New(cron.WithLogger(cron.DiscardLogger))
	cleaner := NewCleaner(&fakeStore{}, WithCron(scheduler), WithSchedule("@every 1h"))

	require.NoError(t, cleaner.Start())
	require.Len(t, scheduler.Entries(), 1)
	<-cleaner.Stop().Done()

	bad := NewCleaner(&fakeStore{}, WithSchedule("not a cron expression"))
	require.Error(t, bad.Start())
}

type fakeStore struct {
	snippets []models.Snippet
	listErr  error
	failOn   map[uint]error
	deleted  [][]uint
}

func (f *fakeStore) List(context.Context, services.ListSnippetsOptions) ([]models.Snippet, error) {
	return f.snippets, f.listErr
}

func (f *fakeStore) DeleteMany(_ context.Context, ids []uint) error {
	for _, id := range ids {
		if err := f.failOn[id]; err != nil {
			return err
		}
	}
	f.deleted = append(f.deleted, ids)
	return nil
}
