package storage

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyoko-docs/kanban/internal/model"
)

func discardLogger() *log.Logger {
	return log.New(os.Stderr, "test ", 0)
}

func TestAdapter_RoundTrip(t *testing.T) {
	kv := NewMemoryKV()
	a := NewAdapter(kv, discardLogger())

	tasks := []model.Task{
		{ID: "100", Title: "one", Details: "d", Workload: 5, Status: model.StatusBacklog, IterationID: "current_sprint"},
		{ID: "101", Title: "two", Workload: 0, Status: model.StatusDone, IterationID: "current_sprint"},
	}
	iter := model.Iteration{
		ID:        "current_sprint",
		Title:     "Current Sprint",
		StartDate: "2024-01-08",
		EndDate:   "2024-01-19",
		Holidays:  []string{"2024-01-15"},
		WorkLimit: 40,
	}

	require.NoError(t, a.Save(tasks, iter))

	gotTasks, gotIter := a.Load()
	assert.Equal(t, tasks, gotTasks)
	assert.Equal(t, iter, gotIter)
}

func TestAdapter_LoadAbsentKey(t *testing.T) {
	a := NewAdapter(NewMemoryKV(), discardLogger())

	tasks, iter := a.Load()
	assert.Equal(t, []model.Task{}, tasks)
	assert.Equal(t, model.DefaultIteration(), iter)
}

func TestAdapter_LoadMalformedBlob(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(BoardKey, []byte("{not json")))
	a := NewAdapter(kv, discardLogger())

	tasks, iter := a.Load()
	assert.Equal(t, []model.Task{}, tasks)
	assert.Equal(t, model.DefaultIteration(), iter)

	// Corrupted blob is left in place, not deleted.
	b, ok, err := kv.Get(BoardKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("{not json"), b)
}

func TestAdapter_LoadPartialIteration(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(BoardKey, []byte(`{"currentIteration":{"workLimit":16}}`)))
	a := NewAdapter(kv, discardLogger())

	tasks, iter := a.Load()
	assert.Equal(t, []model.Task{}, tasks, "missing tasks field becomes empty list")
	assert.Equal(t, "current_sprint", iter.ID)
	assert.Equal(t, "Current Sprint", iter.Title)
	assert.Equal(t, 16, iter.WorkLimit)
	assert.Equal(t, []string{}, iter.Holidays)
}

type failingKV struct{}

func (failingKV) Get(string) ([]byte, bool, error) { return nil, false, errors.New("disk gone") }
func (failingKV) Set(string, []byte) error         { return errors.New("disk gone") }

func TestAdapter_SaveFailureIsReportedNotFatal(t *testing.T) {
	a := NewAdapter(failingKV{}, discardLogger())

	err := a.Save([]model.Task{}, model.DefaultIteration())
	assert.ErrorIs(t, err, ErrPersistence)

	// Load degrades to defaults on a read failure too.
	tasks, iter := a.Load()
	assert.Equal(t, []model.Task{}, tasks)
	assert.Equal(t, model.DefaultIteration(), iter)
}

func TestFileKV(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	require.NoError(t, err)

	_, ok, err := kv.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(BoardKey, []byte(`{"tasks":[]}`)))
	b, ok, err := kv.Get(BoardKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"tasks":[]}`, string(b))

	// One file per key under the directory.
	_, err = os.Stat(filepath.Join(dir, BoardKey+".json"))
	assert.NoError(t, err)
}
