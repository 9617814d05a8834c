package ordering

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"elearn-backend/pkg/database"
)

// GlobalScope is the scope key of tables ordered as a single list.
const GlobalScope = "global"

// pgUniqueViolation is the Postgres error code for unique_violation.
const pgUniqueViolation = "23505"

// TableSpec binds the generic store to one ordered table. Identifiers
// are compiled-in constants of the host application, never user input.
type TableSpec struct {
	// Table holding the ordered rows.
	Table string
	// ScopeColumn is the uuid column the unique index is scoped by.
	// Empty means the whole table is one global scope.
	ScopeColumn string
	// TieBreakColumn orders rows without a meaningful position.
	// Defaults to created_at.
	TieBreakColumn string
}

// PostgresStore implements Store for one table. The table must carry a
// partial unique index on (scope, position) WHERE position > 0, created
// by the schema migrations.
type PostgresStore struct {
	pool *pgxpool.Pool
	spec TableSpec
}

func NewPostgresStore(pool *pgxpool.Pool, spec TableSpec) *PostgresStore {
	if spec.TieBreakColumn == "" {
		spec.TieBreakColumn = "created_at"
	}
	return &PostgresStore{pool: pool, spec: spec}
}

var _ Store = (*PostgresStore)(nil)

func (s *PostgresStore) ListByScope(ctx context.Context, scopeKey string) ([]Item, error) {
	var rows pgx.Rows
	var err error

	if s.spec.ScopeColumn == "" {
		query := fmt.Sprintf(
			`SELECT id::text, position, %s FROM %s ORDER BY position, %s DESC`,
			s.spec.TieBreakColumn, s.spec.Table, s.spec.TieBreakColumn,
		)
		rows, err = s.pool.Query(ctx, query)
	} else {
		query := fmt.Sprintf(
			`SELECT id::text, position, %s FROM %s WHERE %s = $1::uuid ORDER BY position, %s DESC`,
			s.spec.TieBreakColumn, s.spec.Table, s.spec.ScopeColumn, s.spec.TieBreakColumn,
		)
		rows, err = s.pool.Query(ctx, query, scopeKey)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s by scope: %w", s.spec.Table, err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		it := Item{ScopeKey: scopeKey}
		if err := rows.Scan(&it.ID, &it.Position, &it.TieBreak); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", s.spec.Table, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s rows: %w", s.spec.Table, err)
	}

	return items, nil
}

// ApplyPositions executes the writes in order, one statement each,
// inside a single transaction. The scope column guards every update so
// a stale id list cannot touch rows outside the scope.
func (s *PostgresStore) ApplyPositions(ctx context.Context, scopeKey string, writes []PositionWrite) error {
	if len(writes) == 0 {
		return nil
	}

	var query string
	if s.spec.ScopeColumn == "" {
		query = fmt.Sprintf(
			`UPDATE %s SET position = $1, updated_at = now() WHERE id = $2::uuid`,
			s.spec.Table,
		)
	} else {
		query = fmt.Sprintf(
			`UPDATE %s SET position = $1, updated_at = now() WHERE id = $2::uuid AND %s = $3::uuid`,
			s.spec.Table, s.spec.ScopeColumn,
		)
	}

	return database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		for _, w := range writes {
			args := []any{w.Position, w.ID}
			if s.spec.ScopeColumn != "" {
				args = append(args, scopeKey)
			}

			if _, err := tx.Exec(ctx, query, args...); err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
					return fmt.Errorf("%w: %s position %d", ErrPositionConflict, s.spec.Table, w.Position)
				}
				return fmt.Errorf("failed to update %s position: %w", s.spec.Table, err)
			}
		}
		return nil
	})
}

// ListScopeKeys returns every distinct scope currently present, for the
// maintenance job that re-densifies drifted scopes.
func (s *PostgresStore) ListScopeKeys(ctx context.Context) ([]string, error) {
	if s.spec.ScopeColumn == "" {
		return []string{GlobalScope}, nil
	}

	query := fmt.Sprintf(`SELECT DISTINCT %s::text FROM %s`, s.spec.ScopeColumn, s.spec.Table)
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s scopes: %w", s.spec.Table, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan scope key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scope keys: %w", err)
	}

	return keys, nil
}
