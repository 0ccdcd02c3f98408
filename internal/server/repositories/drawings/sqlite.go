package drawings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/drawgallery/internal/common"
	"github.com/dmitrijs2005/drawgallery/internal/dbx"
	"github.com/dmitrijs2005/drawgallery/internal/server/models"
	"github.com/google/uuid"
)

type SQLiteRepository struct {
	db dbx.DBTX
	// now is replaceable in tests.
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func scanSQLite(s scanner) (*models.Drawing, error) {
	var (
		d                models.Drawing
		created, updated string
	)
	if err := s.Scan(&d.ID, &d.UserID, &d.Name, &d.Content, &created, &updated); err != nil {
		return nil, err
	}

	var err error
	if d.CreatedAt, err = dbx.ParseTime(created); err != nil {
		return nil, err
	}
	if d.UpdatedAt, err = dbx.ParseTime(updated); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*models.Drawing, error) {
	d, err := scanSQLite(r.db.QueryRowContext(ctx,
		`SELECT `+drawingColumns+` FROM drawings WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}

func (r *SQLiteRepository) FindAllByOwner(ctx context.Context, ownerID string) ([]*models.Drawing, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+drawingColumns+` FROM drawings WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Drawing, 0)
	for rows.Next() {
		d, err := scanSQLite(rows)
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

func (r *SQLiteRepository) Create(ctx context.Context, ownerID, name, content string) (*models.Drawing, error) {
	now := r.now().UTC()
	d := &models.Drawing{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Name:      name,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ts := dbx.FormatTime(now)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO drawings (id, user_id, name, data_url, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, d.UserID, d.Name, d.Content, ts, ts)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return d, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id, ownerID, name, content string) (*models.Drawing, error) {
	d, err := scanSQLite(r.db.QueryRowContext(ctx,
		`UPDATE drawings SET name = ?, data_url = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?
		 RETURNING `+drawingColumns,
		name, content, dbx.FormatTime(r.now()), id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}
