// Package repotest holds behaviour checks shared by every repository backend.
package repotest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/rituday/internal/domain/entity"
	"github.com/oksasatya/rituday/internal/domain/repository"
)

// RunUserRepository checks a UserRepository. newRepo must return an empty store.
func RunUserRepository(t *testing.T, newRepo func(t *testing.T) repository.UserRepository) {
	t.Run("create and find", func(t *testing.T) {
		ctx := context.Background()
		r := newRepo(t)
		require.NoError(t, r.Create(ctx, &entity.User{ID: "alice", Name: "Alice", Email: "alice@example.com", Password: "h"}))

		u, err := r.FindOne(ctx, repository.UserFilter{ID: "alice"})
		require.NoError(t, err)
		assert.Equal(t, &entity.User{ID: "alice", Name: "Alice", Email: "alice@example.com", Password: "h"}, u)

		u, err = r.FindOne(ctx, repository.UserFilter{Name: "Alice", Email: "alice@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "alice", u.ID)

		_, err = r.FindOne(ctx, repository.UserFilter{ID: "alice", Email: "other@example.com"})
		assert.ErrorIs(t, err, repository.ErrNotFound)

		n, err := r.Count(ctx, repository.UserFilter{Email: "alice@example.com"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = r.Count(ctx, repository.UserFilter{ID: "bob"})
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("unique id and email", func(t *testing.T) {
		ctx := context.Background()
		r := newRepo(t)
		require.NoError(t, r.Create(ctx, &entity.User{ID: "alice", Email: "alice@example.com"}))

		assert.ErrorIs(t, r.Create(ctx, &entity.User{ID: "alice", Email: "other@example.com"}), repository.ErrDuplicate)
		assert.ErrorIs(t, r.Create(ctx, &entity.User{ID: "other", Email: "alice@example.com"}), repository.ErrDuplicate)

		n, err := r.Count(ctx, repository.UserFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("update never inserts", func(t *testing.T) {
		ctx := context.Background()
		r := newRepo(t)
		require.NoError(t, r.Create(ctx, &entity.User{ID: "alice", Email: "alice@example.com", Password: "old"}))

		pw := "new"
		matched, err := r.UpdateOne(ctx, repository.UserFilter{ID: "ghost"}, repository.UserUpdate{Password: &pw})
		require.NoError(t, err)
		assert.False(t, matched)
		n, err := r.Count(ctx, repository.UserFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		matched, err = r.UpdateOne(ctx, repository.UserFilter{ID: "alice"}, repository.UserUpdate{Password: &pw})
		require.NoError(t, err)
		assert.True(t, matched)
		u, err := r.FindOne(ctx, repository.UserFilter{ID: "alice"})
		require.NoError(t, err)
		assert.Equal(t, "new", u.Password)

		_, err = r.UpdateOne(ctx, repository.UserFilter{}, repository.UserUpdate{Password: &pw})
		assert.ErrorIs(t, err, repository.ErrEmptyFilter)
	})
}

// RunRitualRepository checks a RitualRepository. newRepo must return an empty store.
func RunRitualRepository(t *testing.T, newRepo func(t *testing.T) repository.RitualRepository) {
	seed := func(t *testing.T, r repository.RitualRepository) []*entity.Ritual {
		t.Helper()
		items := []*entity.Ritual{
			{Category: "run", Content: "a", Year: 2024, Month: 3, Day: 1, UserEmail: "a@x"},
			{Category: "read", Content: "b", Year: 2024, Month: 3, Day: 2, UserEmail: "b@x"},
			{Category: "run", Content: "c", Year: 2024, Month: 4, Day: 1, UserEmail: "a@x"},
			{Category: "run", Content: "d", Year: 2023, Month: 3, Day: 1, UserEmail: "a@x"},
			{Category: "sleep", Content: "e", Year: 2024, Month: 3, Day: 2, UserEmail: "a@x"},
		}
		for _, it := range items {
			require.NoError(t, r.Create(context.Background(), it))
			_, err := repository.ParseRitualID(it.ID)
			require.NoError(t, err)
		}
		return items
	}

	t.Run("find by date in insertion order", func(t *testing.T) {
		ctx := context.Background()
		r := newRepo(t)
		seed(t, r)

		month, err := r.FindByYearMonth(ctx, 2024, 3)
		require.NoError(t, err)
		require.Len(t, month, 3)
		assert.Equal(t, []string{"a", "b", "e"}, []string{month[0].Content, month[1].Content, month[2].Content})

		day, err := r.FindByYearMonthDay(ctx, 2024, 3, 2)
		require.NoError(t, err)
		require.Len(t, day, 2)
		assert.Equal(t, "read", day[0].Category)
		assert.Equal(t, "b@x", day[0].UserEmail)
		assert.Equal(t, "sleep", day[1].Category)

		none, err := r.FindByYearMonth(ctx, 1999, 1)
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("find update delete", func(t *testing.T) {
		ctx := context.Background()
		r := newRepo(t)
		items := seed(t, r)
		id := items[1].ID

		got, err := r.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, items[1], got)

		matched, err := r.UpdateContent(ctx, id, "changed")
		require.NoError(t, err)
		assert.True(t, matched)
		got, err = r.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "changed", got.Content)
		assert.Equal(t, "read", got.Category)
		assert.Equal(t, 2, got.Day)

		deleted, err := r.Delete(ctx, id)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = r.FindByID(ctx, id)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		deleted, err = r.Delete(ctx, id)
		require.NoError(t, err)
		assert.False(t, deleted)

		matched, err = r.UpdateContent(ctx, id, "again")
		require.NoError(t, err)
		assert.False(t, matched)
	})

	t.Run("uppercase hex id resolves", func(t *testing.T) {
		ctx := context.Background()
		r := newRepo(t)
		items := seed(t, r)
		upper := strings.ToUpper(items[0].ID)

		got, err := r.FindByID(ctx, upper)
		require.NoError(t, err)
		assert.Equal(t, items[0].ID, got.ID)

		matched, err := r.UpdateContent(ctx, upper, "shouted")
		require.NoError(t, err)
		assert.True(t, matched)

		deleted, err := r.Delete(ctx, upper)
		require.NoError(t, err)
		assert.True(t, deleted)
		_, err = r.FindByID(ctx, items[0].ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		ctx := context.Background()
		r := newRepo(t)

		_, err := r.FindByID(ctx, "xyz")
		assert.ErrorIs(t, err, repository.ErrInvalidID)
		_, err = r.UpdateContent(ctx, "xyz", "c")
		assert.ErrorIs(t, err, repository.ErrInvalidID)
		_, err = r.Delete(ctx, "xyz")
		assert.ErrorIs(t, err, repository.ErrInvalidID)
	})
}
