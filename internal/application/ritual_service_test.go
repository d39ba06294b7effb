package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/rituday/internal/domain/entity"
	"github.com/oksasatya/rituday/internal/infrastructure/memory"
	"github.com/oksasatya/rituday/pkg/helpers"
)

type ritualFixture struct {
	svc     *RitualService
	rituals *memory.RitualRepository
	users   *memory.UserRepository
}

func newRitualFixture(t *testing.T, idx RitualIndexer) *ritualFixture {
	t.Helper()
	users := memory.NewUserRepository()
	rituals := memory.NewRitualRepository()
	require.NoError(t, users.Create(context.Background(), &entity.User{ID: "alice", Password: "x", Name: "Alice", Email: "a@x"}))
	require.NoError(t, users.Create(context.Background(), &entity.User{ID: "bob", Password: "x", Name: "Bob", Email: "b@x"}))

	svc := NewRitualService(rituals, users, idx, helpers.NewDiscardLogger())
	svc.Now = func() time.Time { return time.Date(2024, 3, 9, 22, 30, 0, 0, time.Local) }
	return &ritualFixture{svc: svc, rituals: rituals, users: users}
}

func TestRitualService_EnrollStampsDateAndOwner(t *testing.T) {
	f := newRitualFixture(t, nil)

	r, err := f.svc.Enroll(context.Background(), "exercise", "ran 5k", "a@x")
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, 2024, r.Year)
	assert.Equal(t, 3, r.Month)
	assert.Equal(t, 9, r.Day)
	assert.Equal(t, "a@x", r.UserEmail)
}

func TestRitualService_EnrollNoContent(t *testing.T) {
	f := newRitualFixture(t, nil)

	_, err := f.svc.Enroll(context.Background(), "", "ran", "a@x")
	assert.ErrorIs(t, err, ErrNoContent)
	_, err = f.svc.Enroll(context.Background(), "exercise", "", "a@x")
	assert.ErrorIs(t, err, ErrNoContent)
	assert.Zero(t, f.rituals.Len())
}

func TestRitualService_ListByMonthJoinsNames(t *testing.T) {
	ctx := context.Background()
	f := newRitualFixture(t, nil)
	_, err := f.svc.Enroll(ctx, "exercise", "ran", "a@x")
	require.NoError(t, err)
	_, err = f.svc.Enroll(ctx, "read", "a book", "b@x")
	require.NoError(t, err)
	_, err = f.svc.Enroll(ctx, "sleep", "early", "gone@x")
	require.NoError(t, err)

	list, err := f.svc.ListByMonth(ctx, 2024, 3)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Alice", list[0].Name)
	assert.Equal(t, "ran", list[0].Content)
	assert.Equal(t, "Bob", list[1].Name)
	assert.Empty(t, list[2].Name)

	list, err = f.svc.ListByMonth(ctx, 2024, 4)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}

func TestRitualService_ListByDay(t *testing.T) {
	ctx := context.Background()
	f := newRitualFixture(t, nil)
	require.NoError(t, f.rituals.Create(ctx, entity.NewRitual("read", "old", "a@x", time.Date(2024, 3, 8, 9, 0, 0, 0, time.Local))))
	_, err := f.svc.Enroll(ctx, "exercise", "today", "a@x")
	require.NoError(t, err)

	list, err := f.svc.ListByDay(ctx, 2024, 3, 9)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "today", list[0].Content)
}

func TestRitualService_Get(t *testing.T) {
	ctx := context.Background()
	f := newRitualFixture(t, nil)
	r, err := f.svc.Enroll(ctx, "exercise", "ran", "a@x")
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r, got)

	got, err = f.svc.Get(ctx, "65a1b2c3d4e5f60718293a4b")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = f.svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrInvalidRitualID)
}

func TestRitualService_UpdateOwnership(t *testing.T) {
	ctx := context.Background()
	f := newRitualFixture(t, nil)
	r, err := f.svc.Enroll(ctx, "exercise", "ran", "a@x")
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.UpdateContent(ctx, r.ID, "hijacked", "b@x"), ErrForbidden)
	assert.ErrorIs(t, f.svc.UpdateContent(ctx, "65a1b2c3d4e5f60718293a4b", "x", "a@x"), ErrRitualNotFound)
	assert.ErrorIs(t, f.svc.UpdateContent(ctx, "bad", "x", "a@x"), ErrInvalidRitualID)

	require.NoError(t, f.svc.UpdateContent(ctx, r.ID, "ran 10k", "a@x"))
	got, err := f.svc.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "ran 10k", got.Content)
	assert.Equal(t, "exercise", got.Category)
}

func TestRitualService_DeleteOwnership(t *testing.T) {
	ctx := context.Background()
	f := newRitualFixture(t, nil)
	r, err := f.svc.Enroll(ctx, "exercise", "ran", "a@x")
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(ctx, r.ID, "b@x"), ErrForbidden)
	assert.Equal(t, 1, f.rituals.Len())

	require.NoError(t, f.svc.Delete(ctx, r.ID, "a@x"))
	assert.Zero(t, f.rituals.Len())
	assert.ErrorIs(t, f.svc.Delete(ctx, r.ID, "a@x"), ErrRitualNotFound)
}

func TestRitualService_KeepsIndexInSync(t *testing.T) {
	ctx := context.Background()
	idx := &mockIndexer{}
	f := newRitualFixture(t, idx)

	idx.On("Put", mock.Anything, mock.MatchedBy(func(r *entity.Ritual) bool { return r.Content == "ran" })).Return(nil).Once()
	r, err := f.svc.Enroll(ctx, "exercise", "ran", "a@x")
	require.NoError(t, err)

	// index failures are logged only
	idx.On("Put", mock.Anything, mock.MatchedBy(func(r *entity.Ritual) bool { return r.Content == "ran 10k" })).Return(errors.New("es down")).Once()
	require.NoError(t, f.svc.UpdateContent(ctx, r.ID, "ran 10k", "a@x"))

	idx.On("Remove", mock.Anything, r.ID).Return(nil).Once()
	require.NoError(t, f.svc.Delete(ctx, r.ID, "a@x"))

	idx.AssertExpectations(t)
}

func TestRitualService_Search(t *testing.T) {
	ctx := context.Background()

	f := newRitualFixture(t, nil)
	list, err := f.svc.Search(ctx, "ran", 10)
	require.NoError(t, err)
	assert.Empty(t, list)

	idx := &mockIndexer{}
	idx.On("Search", mock.Anything, "book", 5).Return([]entity.Ritual{{ID: "65a1b2c3d4e5f60718293a4b", Category: "read", Content: "a book", UserEmail: "b@x"}}, nil).Once()
	f = newRitualFixture(t, idx)

	list, err = f.svc.Search(ctx, "book", 5)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bob", list[0].Name)
	idx.AssertExpectations(t)
}
