package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/rituday/internal/domain/entity"
	"github.com/oksasatya/rituday/internal/domain/repository"
)

// RitualRepository stores rituals keyed by the same 24-hex ids the document store uses,
// so ids stay portable between backends.
type RitualRepository struct {
	pool *pgxpool.Pool
}

func NewRitualRepository(pool *pgxpool.Pool) *RitualRepository {
	return &RitualRepository{pool: pool}
}

const ritualColumns = `id, category, content, year, month, day, user_email`

func scanRitual(row pgx.Row, x *entity.Ritual) error {
	return row.Scan(&x.ID, &x.Category, &x.Content, &x.Year, &x.Month, &x.Day, &x.UserEmail)
}

func (r *RitualRepository) list(ctx context.Context, query string, args ...any) ([]entity.Ritual, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Ritual, 0)
	for rows.Next() {
		var x entity.Ritual
		if err := scanRitual(rows, &x); err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, rows.Err()
}

func (r *RitualRepository) FindByYearMonth(ctx context.Context, year, month int) ([]entity.Ritual, error) {
	return r.list(ctx, `
		SELECT `+ritualColumns+`
		FROM rituals
		WHERE year = $1 AND month = $2
		ORDER BY id
	`, year, month)
}

func (r *RitualRepository) FindByYearMonthDay(ctx context.Context, year, month, day int) ([]entity.Ritual, error) {
	return r.list(ctx, `
		SELECT `+ritualColumns+`
		FROM rituals
		WHERE year = $1 AND month = $2 AND day = $3
		ORDER BY id
	`, year, month, day)
}

func (r *RitualRepository) FindByID(ctx context.Context, id string) (*entity.Ritual, error) {
	id, err := repository.CanonicalRitualID(id)
	if err != nil {
		return nil, err
	}
	x := &entity.Ritual{}
	row := r.pool.QueryRow(ctx, `SELECT `+ritualColumns+` FROM rituals WHERE id = $1`, id)
	if err := scanRitual(row, x); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return x, nil
}

func (r *RitualRepository) Create(ctx context.Context, x *entity.Ritual) error {
	id := repository.NewRitualID()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO rituals (`+ritualColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, x.Category, x.Content, x.Year, x.Month, x.Day, x.UserEmail)
	if err != nil {
		return err
	}
	x.ID = id
	return nil
}

func (r *RitualRepository) UpdateContent(ctx context.Context, id, content string) (bool, error) {
	id, err := repository.CanonicalRitualID(id)
	if err != nil {
		return false, err
	}
	res, err := r.pool.Exec(ctx, `UPDATE rituals SET content = $1 WHERE id = $2`, content, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (r *RitualRepository) Delete(ctx context.Context, id string) (bool, error) {
	id, err := repository.CanonicalRitualID(id)
	if err != nil {
		return false, err
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM rituals WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

var _ repository.RitualRepository = (*RitualRepository)(nil)
