package drafts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/dmitrijs2005/casekeeper/internal/dbx"
	"github.com/goccy/go-json"
)

// DB is satisfied by *sql.DB.
type DB interface {
	dbx.DBTX
	dbx.TxBeginner
}

type SQLiteRepository struct {
	db DB
}

func NewSQLiteRepository(db DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, d Draft) error {
	if d.CaseID.IsZero() {
		return fmt.Errorf("failed to save draft: empty case id")
	}
	if d.SavedAt.IsZero() {
		d.SavedAt = time.Now().UTC()
	}

	blob, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode draft[%s]: %w", d.CaseID, err)
	}

	err = dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM drafts WHERE case_id = ?`, d.CaseID.String()); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO drafts (case_id, case_name, state, saved_at) VALUES (?, ?, ?, ?)`,
			d.CaseID.String(), d.CaseName, blob, d.SavedAt)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to save draft[%s]: %w", d.CaseID, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, caseID models.ID) (*Draft, error) {
	var blob []byte
	err := r.db.QueryRowContext(ctx, `SELECT state FROM drafts WHERE case_id = ?`, caseID.String()).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft[%s]: %w", caseID, err)
	}

	d := &Draft{}
	if err := json.Unmarshal(blob, d); err != nil {
		return nil, fmt.Errorf("failed to decode draft[%s]: %w", caseID, err)
	}
	return d, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, caseID models.ID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM drafts WHERE case_id = ?`, caseID.String())
	if err != nil {
		return fmt.Errorf("failed to delete draft[%s]: %w", caseID, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Summary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT case_id, case_name, saved_at FROM drafts ORDER BY saved_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.CaseID, &s.CaseName, &s.SavedAt); err != nil {
			return nil, fmt.Errorf("failed to scan draft row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate draft rows: %w", err)
	}
	return out, nil
}
