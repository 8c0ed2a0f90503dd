package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobTitleRepository_Ensure(t *testing.T) {
	t.Run("adds a new title", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewJobTitleRepository(db)

		require.NoError(t, repo.Ensure(context.Background(), "QA Lead"))

		titles, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"QA Lead"}, titles)
	})

	t.Run("re-registering an existing title is a silent no-op", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewJobTitleRepository(db)

		require.NoError(t, repo.Ensure(context.Background(), "QA Lead"))
		require.NoError(t, repo.Ensure(context.Background(), "QA Lead"))

		titles, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, titles, 1, "duplicate row was inserted")
	})
}

func TestJobTitleRepository_List(t *testing.T) {
	t.Run("returns titles in alphabetical order", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewJobTitleRepository(db)

		for _, title := range []string{"Warehouse Operator", "Accountant", "QA Lead"} {
			require.NoError(t, repo.Ensure(context.Background(), title))
		}

		titles, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"Accountant", "QA Lead", "Warehouse Operator"}, titles)
	})

	t.Run("empty table yields an empty slice", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewJobTitleRepository(db)

		titles, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, titles)
	})
}
