package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "runcheck.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestCreateAssignsID(t *testing.T) {
	repo := newTestRepo(t)

	run := &Run{
		File:     "hello.py",
		Language: "python",
		Status:   "Success",
		Runtime:  42 * time.Millisecond,
		RanAt:    time.Now(),
	}
	require.NoError(t, repo.Create(run))
	assert.NotZero(t, run.ID)
}

func TestRecentNewestFirst(t *testing.T) {
	repo := newTestRepo(t)

	for i, file := range []string{"a.py", "b.c", "c.java"} {
		run := &Run{
			File:     file,
			Language: "x",
			Status:   "Success",
			Runtime:  time.Duration(i) * time.Millisecond,
			RanAt:    time.Now(),
		}
		require.NoError(t, repo.Create(run))
	}

	runs, err := repo.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "c.java", runs[0].File)
	assert.Equal(t, "a.py", runs[2].File)
}

func TestRecentLimit(t *testing.T) {
	repo := newTestRepo(t)

	for i := 0; i < 5; i++ {
		run := &Run{File: "f.py", Language: "python", Status: "Success", RanAt: time.Now()}
		require.NoError(t, repo.Create(run))
	}

	runs, err := repo.Recent(2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestSameFileTwiceIsTwoRows(t *testing.T) {
	repo := newTestRepo(t)

	first := &Run{File: "same.py", Language: "python", Status: "Success", Runtime: time.Millisecond, RanAt: time.Now()}
	second := &Run{File: "same.py", Language: "python", Status: "Success", Runtime: 2 * time.Millisecond, RanAt: time.Now()}
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))

	runs, err := repo.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.NotEqual(t, runs[0].ID, runs[1].ID)
	assert.NotEqual(t, runs[0].Runtime, runs[1].Runtime)
}

func TestRoundTripFields(t *testing.T) {
	repo := newTestRepo(t)

	ranAt := time.Now().Truncate(time.Second)
	run := &Run{
		File:     "Main.java",
		Language: "java",
		Status:   "Runtime Error",
		Runtime:  1500 * time.Millisecond,
		RanAt:    ranAt,
	}
	require.NoError(t, repo.Create(run))

	runs, err := repo.Recent(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, "Main.java", got.File)
	assert.Equal(t, "java", got.Language)
	assert.Equal(t, "Runtime Error", got.Status)
	assert.Equal(t, 1500*time.Millisecond, got.Runtime)
	assert.True(t, got.RanAt.Equal(ranAt))
}
