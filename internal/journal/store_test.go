package journal_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"rootsweep/internal/journal"
)

func openStore(t *testing.T) (*journal.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "journal.db")
	store, err := journal.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestRunRoundTrip(t *testing.T) {
	store, _ := openStore(t)
	ctx := context.Background()
	id := uuid.NewString()

	run, err := store.BeginRun(ctx, id, "/srv/webapp", "delete")
	require.NoError(t, err)
	assert.Equal(t, journal.StatusRunning, run.Status)
	assert.False(t, run.Finished())

	require.NoError(t, store.RecordAction(ctx, journal.Entry{RunID: id, Seq: 1, Kind: "remove_duplicate", Filename: "auth.ts", TargetDir: "server/", SizeBytes: 12}))
	require.NoError(t, store.RecordAction(ctx, journal.Entry{RunID: id, Seq: 2, Kind: "move", Filename: "button.tsx", TargetDir: "client/src/components/ui/", SizeBytes: 340}))

	require.NoError(t, store.FinishRun(ctx, id, journal.Summary{Status: journal.StatusCompleted, Deleted: 1, Moved: 1}))

	got, err := store.GetRun(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, journal.StatusCompleted, got.Status)
	assert.Equal(t, 1, got.Deleted)
	assert.Equal(t, 1, got.Moved)
	assert.Equal(t, 0, got.Skipped)
	assert.Equal(t, "/srv/webapp", got.Root)
	assert.Equal(t, "delete", got.Policy)
	assert.Empty(t, got.Error)
	assert.True(t, got.Finished())
	assert.False(t, got.FinishedAt.Before(got.StartedAt))
	assert.GreaterOrEqual(t, got.Duration(), time.Duration(0))

	entries, err := store.Actions(ctx, id)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "auth.ts", entries[0].Filename)
	assert.Equal(t, "remove_duplicate", entries[0].Kind)
	assert.Equal(t, "client/src/components/ui/", entries[1].TargetDir)
	assert.Equal(t, int64(340), entries[1].SizeBytes)
	assert.False(t, entries[1].At.IsZero())
}

func TestFinishRunRecordsFailure(t *testing.T) {
	store, _ := openStore(t)
	ctx := context.Background()
	id := uuid.NewString()

	_, err := store.BeginRun(ctx, id, "/srv/webapp", "verify")
	require.NoError(t, err)
	require.NoError(t, store.FinishRun(ctx, id, journal.Summary{
		Status:  journal.StatusFailed,
		Moved:   3,
		Skipped: 1,
		Error:   "filesystem error: reorganizer: move: db.ts: no such file or directory",
	}))

	got, err := store.GetRun(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, journal.StatusFailed, got.Status)
	assert.Equal(t, 3, got.Moved)
	assert.Equal(t, 1, got.Skipped)
	assert.Contains(t, got.Error, "db.ts")
}

func TestFinishRunUnknownID(t *testing.T) {
	store, _ := openStore(t)
	err := store.FinishRun(context.Background(), "missing", journal.Summary{})
	assert.ErrorIs(t, err, journal.ErrRunNotFound)
}

func TestRecordActionRequiresRun(t *testing.T) {
	store, _ := openStore(t)
	err := store.RecordAction(context.Background(), journal.Entry{RunID: "missing", Seq: 1, Kind: "move", Filename: "a.ts", TargetDir: "server/"})
	assert.Error(t, err)
}

func TestListRunsNewestFirst(t *testing.T) {
	store, _ := openStore(t)
	ctx := context.Background()

	ids := []string{"run-a", "run-b", "run-c"}
	for _, id := range ids {
		_, err := store.BeginRun(ctx, id, "/srv/webapp", "delete")
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "run-c", runs[0].ID)
	assert.Equal(t, "run-a", runs[2].ID)

	limited, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "run-b", limited[1].ID)
}

func TestGetRunByPrefix(t *testing.T) {
	store, _ := openStore(t)
	ctx := context.Background()

	for _, id := range []string{"abc-111", "abc-222", "def-333"} {
		_, err := store.BeginRun(ctx, id, "/srv/webapp", "delete")
		require.NoError(t, err)
	}

	run, err := store.GetRun(ctx, "def")
	require.NoError(t, err)
	assert.Equal(t, "def-333", run.ID)

	_, err = store.GetRun(ctx, "abc")
	assert.ErrorIs(t, err, journal.ErrAmbiguousRun)

	_, err = store.GetRun(ctx, "zzz")
	assert.ErrorIs(t, err, journal.ErrRunNotFound)

	_, err = store.GetRun(ctx, "%")
	assert.ErrorIs(t, err, journal.ErrRunNotFound)
}

func TestOpenReusesExistingDatabase(t *testing.T) {
	store, path := openStore(t)
	ctx := context.Background()
	_, err := store.BeginRun(ctx, "persisted", "/srv/webapp", "delete")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := journal.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	runs, err := reopened.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "persisted", runs[0].ID)
	assert.Equal(t, path, reopened.Path())
}

func TestOpenKeepsURIMetacharactersInPath(t *testing.T) {
	for _, dirName := range []string{"state#1", "what?x", "100%done"} {
		t.Run(dirName, func(t *testing.T) {
			base := t.TempDir()
			path := filepath.Join(base, dirName, "journal.db")

			store, err := journal.Open(path)
			require.NoError(t, err)
			_, err = store.BeginRun(context.Background(), uuid.NewString(), "/srv/webapp", "delete")
			require.NoError(t, err)
			require.NoError(t, store.Close())

			info, err := os.Stat(path)
			require.NoError(t, err, "journal must live at the requested path")
			assert.True(t, info.Mode().IsRegular())

			siblings, err := os.ReadDir(base)
			require.NoError(t, err)
			require.Len(t, siblings, 1)
			assert.Equal(t, dirName, siblings[0].Name())
		})
	}
}

func TestOpenResolvesRelativePath(t *testing.T) {
	t.Chdir(t.TempDir())
	store, err := journal.Open(filepath.Join("state", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	assert.True(t, filepath.IsAbs(store.Path()))
	_, err = os.Stat(filepath.Join("state", "journal.db"))
	assert.NoError(t, err)
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	store, path := openStore(t)
	require.NoError(t, store.Close())

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec("PRAGMA user_version = 99")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = journal.Open(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, journal.ErrSchemaMismatch), "got %v", err)
}

func TestParseStatus(t *testing.T) {
	assert.Equal(t, journal.StatusCanceled, journal.ParseStatus("canceled"))
	assert.Equal(t, journal.StatusFailed, journal.ParseStatus("exploded"))
}
