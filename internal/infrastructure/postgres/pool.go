package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/rituday/config"
)

const pingTimeout = 5 * time.Second

// poolConfig maps the DB_* settings onto a pgxpool config.
// MinConns never exceeds MaxConns; non-positive limits keep pgx defaults.
func poolConfig(cfg *config.Config) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.DBMaxConns > 0 {
		pc.MaxConns = cfg.DBMaxConns
	}
	if cfg.DBMinConns > 0 {
		pc.MinConns = min(cfg.DBMinConns, pc.MaxConns)
	}
	if cfg.DBMaxConnLife > 0 {
		pc.MaxConnLifetime = cfg.DBMaxConnLife
	}
	pc.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	return pc, nil
}

// NewPool opens the pool described by cfg and pings it before returning.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pc, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}
