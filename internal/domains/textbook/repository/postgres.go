package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"elearn-backend/internal/domains/textbook"
	"elearn-backend/pkg/cache"
	"elearn-backend/pkg/logger"
)

const (
	ownerListCacheKey = "textbooks:owner:%s"
	listCacheTTL      = 5 * time.Minute
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) textbook.TextbookRepository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const textbookColumns = `
	id, owner_id, title, author, isbn, price,
	position, created_at, updated_at
`

func scanTextbook(row pgx.Row) (*textbook.Textbook, error) {
	entity := &textbook.Textbook{}
	err := row.Scan(
		&entity.ID,
		&entity.OwnerID,
		&entity.Title,
		&entity.Author,
		&entity.ISBN,
		&entity.Price,
		&entity.Position,
		&entity.CreatedAt,
		&entity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *postgresRepository) Create(ctx context.Context, entity *textbook.Textbook) (*textbook.Textbook, error) {
	const query = `
		INSERT INTO textbooks (
			id, owner_id, title, author, isbn, price,
			position, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + textbookColumns

	row := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.OwnerID,
		entity.Title,
		entity.Author,
		entity.ISBN,
		entity.Price,
		entity.Position,
		entity.CreatedAt,
		entity.UpdatedAt,
	)

	created, err := scanTextbook(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "uq_textbooks_isbn" {
			return nil, textbook.ErrDuplicateISBN
		}
		logger.Error("textbook Create: database error", err)
		return nil, fmt.Errorf("failed to create textbook: %w", err)
	}

	_ = r.InvalidateOwnerCache(ctx, entity.OwnerID)
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*textbook.Textbook, error) {
	const query = `SELECT ` + textbookColumns + ` FROM textbooks WHERE id = $1`

	entity, err := scanTextbook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, textbook.ErrTextbookNotFound
		}
		logger.Error("textbook GetByID: database error", err)
		return nil, fmt.Errorf("failed to get textbook: %w", err)
	}

	return entity, nil
}

func (r *postgresRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]textbook.Textbook, error) {
	cacheKey := fmt.Sprintf(ownerListCacheKey, ownerID)

	var cached []textbook.Textbook
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return cached, nil
	}

	const query = `
		SELECT ` + textbookColumns + `
		FROM textbooks
		WHERE owner_id = $1
		ORDER BY (position = 0), position, created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		logger.Error("textbook ListByOwner: database error", err)
		return nil, fmt.Errorf("failed to list textbooks: %w", err)
	}
	defer rows.Close()

	var textbooks []textbook.Textbook
	for rows.Next() {
		entity, err := scanTextbook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan textbook: %w", err)
		}
		textbooks = append(textbooks, *entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read textbooks: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, textbooks, listCacheTTL); err != nil {
		logger.Error("textbook ListByOwner: cache set failed", err)
	}

	return textbooks, nil
}

func (r *postgresRepository) Update(ctx context.Context, entity *textbook.Textbook) (*textbook.Textbook, error) {
	const query = `
		UPDATE textbooks
		SET title = $2, author = $3, isbn = $4, price = $5, updated_at = $6
		WHERE id = $1
		RETURNING ` + textbookColumns

	row := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.Title,
		entity.Author,
		entity.ISBN,
		entity.Price,
		time.Now(),
	)

	updated, err := scanTextbook(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, textbook.ErrTextbookNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "uq_textbooks_isbn" {
			return nil, textbook.ErrDuplicateISBN
		}
		logger.Error("textbook Update: database error", err)
		return nil, fmt.Errorf("failed to update textbook: %w", err)
	}

	_ = r.InvalidateOwnerCache(ctx, updated.OwnerID)
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM textbooks WHERE id = $1 RETURNING owner_id`

	var ownerID uuid.UUID
	if err := r.pool.QueryRow(ctx, query, id).Scan(&ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return textbook.ErrTextbookNotFound
		}
		logger.Error("textbook Delete: database error", err)
		return fmt.Errorf("failed to delete textbook: %w", err)
	}

	_ = r.InvalidateOwnerCache(ctx, ownerID)
	return nil
}

func (r *postgresRepository) InvalidateOwnerCache(ctx context.Context, ownerID uuid.UUID) error {
	return r.cache.Delete(ctx, fmt.Sprintf(ownerListCacheKey, ownerID))
}
