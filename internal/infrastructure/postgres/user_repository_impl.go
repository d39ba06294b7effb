package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/rituday/internal/domain/entity"
	"github.com/oksasatya/rituday/internal/domain/repository"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// userWhere renders f as a WHERE clause whose placeholders start at $first.
func userWhere(f repository.UserFilter, first int) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(col, v string) {
		if v == "" {
			return
		}
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, first+len(args)-1))
	}
	add("id", f.ID)
	add("name", f.Name)
	add("email", f.Email)
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (r *UserRepository) FindOne(ctx context.Context, f repository.UserFilter) (*entity.User, error) {
	where, args := userWhere(f, 1)
	u := &entity.User{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, password, name, email
		FROM users`+where+`
		ORDER BY created_at
		LIMIT 1
	`, args...)

	if err := row.Scan(&u.ID, &u.Password, &u.Name, &u.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Count(ctx context.Context, f repository.UserFilter) (int64, error) {
	where, args := userWhere(f, 1)
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`+where, args...).Scan(&n)
	return n, err
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, password, name, email)
		VALUES ($1, $2, $3, $4)
	`, u.ID, u.Password, u.Name, u.Email)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *UserRepository) UpdateOne(ctx context.Context, f repository.UserFilter, upd repository.UserUpdate) (bool, error) {
	if f.IsEmpty() {
		return false, repository.ErrEmptyFilter
	}
	if upd.Password == nil {
		return false, errors.New("no user fields to update")
	}
	where, args := userWhere(f, 2)

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password = $1, updated_at = now()
		WHERE id = (SELECT id FROM users`+where+` ORDER BY created_at LIMIT 1)
	`, append([]any{*upd.Password}, args...)...)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
