package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskflow/internal/models/board"
	"taskflow/internal/repository"
)

type settingRepo struct {
	pool *pgxpool.Pool
}

func (r *settingRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.pool.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("reading setting: %w", err)
	}
	return value, nil
}

func (r *settingRepo) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO settings (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("writing setting: %w", err)
	}
	return nil
}

func (r *settingRepo) List(ctx context.Context) ([]board.SettingRecord, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("listing settings: %w", err)
	}
	defer rows.Close()

	records := []board.SettingRecord{}
	for rows.Next() {
		var rec board.SettingRecord
		var value []byte
		if err := rows.Scan(&rec.Key, &value); err != nil {
			return nil, fmt.Errorf("scanning setting: %w", err)
		}
		rec.Value = value
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating settings: %w", err)
	}
	return records, nil
}
