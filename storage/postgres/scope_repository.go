package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chulkilee/boruta-auth"
)

type scopeRepository struct {
	pool *pgxpool.Pool
}

func (r scopeRepository) Public(ctx context.Context) (boruta.ScopeList, error) {
	const op = "postgres.scopeRepository.Public"

	rows, err := r.pool.Query(ctx, `SELECT name FROM scopes WHERE public`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var scopes boruta.ScopeList
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		scopes = append(scopes, boruta.Scope{Name: name, Public: true})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return scopes, nil
}
