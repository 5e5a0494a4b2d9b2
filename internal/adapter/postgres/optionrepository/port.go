package optionrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/arraypress/contentquery/internal/core/ports/primary"
	"github.com/arraypress/contentquery/internal/core/ports/secondary"
	"github.com/arraypress/contentquery/internal/domain"
)

var _ secondary.OptionStore = &optionRepo{}

var optionTbl = domain.GetOptionTable()

type optionRepo struct {
	db     *sqlx.DB
	logger primary.Logger
}

func New(db *sqlx.DB, logger primary.Logger) secondary.OptionStore {
	return &optionRepo{
		db:     db,
		logger: logger,
	}
}

func (r *optionRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		optionTbl.Value, optionTbl.TableName(), optionTbl.Key)
	err := r.db.GetContext(ctx, &value, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get option %q: %w", key, err)
	}
	return value, nil
}

func (r *optionRepo) Set(ctx context.Context, key string, value []byte, autoload bool) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		optionTbl.TableName(), optionTbl.Key, optionTbl.Value, optionTbl.Autoload,
		optionTbl.Key,
		optionTbl.Value, optionTbl.Value,
		optionTbl.Autoload, optionTbl.Autoload,
	)
	if _, err := r.db.ExecContext(ctx, query, key, value, autoload); err != nil {
		r.logger.Error("Failed to set option", "key", key, "error", err)
		return fmt.Errorf("failed to set option %q: %w", key, err)
	}
	return nil
}

func (r *optionRepo) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, optionTbl.TableName(), optionTbl.Key)
	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		r.logger.Error("Failed to delete option", "key", key, "error", err)
		return fmt.Errorf("failed to delete option %q: %w", key, err)
	}
	return nil
}

func (r *optionRepo) GetAutoload(ctx context.Context) (map[string][]byte, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = true`,
		optionTbl.Key, optionTbl.Value, optionTbl.TableName(), optionTbl.Autoload)
	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load autoload options: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			r.logger.Warn("Failed to scan option row", "error", err)
			continue
		}
		out[key] = value
	}
	return out, rows.Err()
}
