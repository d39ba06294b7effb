package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/rituday/config"
	"github.com/oksasatya/rituday/internal/domain/repository"
)

func TestUserWhere(t *testing.T) {
	where, args := userWhere(repository.UserFilter{}, 1)
	assert.Empty(t, where)
	assert.Nil(t, args)

	where, args = userWhere(repository.UserFilter{Name: "Alice", Email: "a@x"}, 1)
	assert.Equal(t, " WHERE name = $1 AND email = $2", where)
	assert.Equal(t, []any{"Alice", "a@x"}, args)

	where, args = userWhere(repository.UserFilter{ID: "alice"}, 2)
	assert.Equal(t, " WHERE id = $2", where)
	assert.Equal(t, []any{"alice"}, args)
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505"}
	assert.True(t, isUniqueViolation(dup))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", dup)))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
	assert.False(t, isUniqueViolation(nil))
}

func TestPoolConfig(t *testing.T) {
	cfg := &config.Config{
		AppName: "rituday", DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5432", DBName: "rituday", DBSSLMode: "disable",
		DBMaxConns: 8, DBMinConns: 20, DBMaxConnLife: 30 * time.Minute,
	}
	pc, err := poolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(8), pc.MinConns)
	assert.Equal(t, 30*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.Equal(t, "rituday", pc.ConnConfig.RuntimeParams["application_name"])

	cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife = 0, 0, 0
	pc, err = poolConfig(cfg)
	require.NoError(t, err)
	assert.Positive(t, pc.MaxConns)
	assert.Equal(t, time.Hour, pc.MaxConnLifetime)

	cfg.DBPort = "not-a-port"
	_, err = poolConfig(cfg)
	assert.Error(t, err)
}
