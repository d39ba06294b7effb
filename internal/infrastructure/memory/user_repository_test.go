package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/rituday/internal/domain/entity"
	"github.com/oksasatya/rituday/internal/domain/repository"
	"github.com/oksasatya/rituday/internal/domain/repository/repotest"
)

func TestUserRepository(t *testing.T) {
	repotest.RunUserRepository(t, func(*testing.T) repository.UserRepository { return NewUserRepository() })
}

func TestUserRepository_FindReturnsCopy(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()
	require.NoError(t, r.Create(ctx, &entity.User{ID: "alice", Name: "Alice", Email: "a@x"}))

	u, _ := r.FindOne(ctx, repository.UserFilter{ID: "alice"})
	u.Name = "mutated"

	again, _ := r.FindOne(ctx, repository.UserFilter{ID: "alice"})
	assert.Equal(t, "Alice", again.Name)
}
