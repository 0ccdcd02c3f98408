package drawings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/drawgallery/internal/common"
	"github.com/dmitrijs2005/drawgallery/internal/dbx"
	"github.com/dmitrijs2005/drawgallery/internal/server/models"
	"github.com/google/uuid"
)

const drawingColumns = `id, user_id, name, data_url, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPostgres(s scanner) (*models.Drawing, error) {
	d := &models.Drawing{}
	if err := s.Scan(&d.ID, &d.UserID, &d.Name, &d.Content, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Drawing, error) {
	query := `SELECT ` + drawingColumns + ` FROM drawings WHERE id = $1`

	d, err := scanPostgres(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return d, nil
}

func (r *PostgresRepository) FindAllByOwner(ctx context.Context, ownerID string) ([]*models.Drawing, error) {
	query := `SELECT ` + drawingColumns + ` FROM drawings
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Drawing, 0)
	for rows.Next() {
		d, err := scanPostgres(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, ownerID, name, content string) (*models.Drawing, error) {
	query := `INSERT INTO drawings (id, user_id, name, data_url)
		 VALUES ($1, $2, $3, $4)
		 RETURNING ` + drawingColumns

	d, err := scanPostgres(r.db.QueryRowContext(ctx, query, uuid.NewString(), ownerID, name, content))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return d, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id, ownerID, name, content string) (*models.Drawing, error) {
	query := `UPDATE drawings SET name = $3, data_url = $4, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING ` + drawingColumns

	d, err := scanPostgres(r.db.QueryRowContext(ctx, query, id, ownerID, name, content))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return d, nil
}
