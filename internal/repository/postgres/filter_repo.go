package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-cv-backend/internal/domain"
	"go-cv-backend/pkg/database"
)

type savedFilterRepo struct {
	db *pgxpool.Pool
}

func NewSavedFilterRepository(db *pgxpool.Pool) domain.SavedFilterRepository {
	return &savedFilterRepo{db: db}
}

const savedFilterColumns = `id, filter_name, filter_data, creator_id, created_at, updated_at`

type savedFilterRow struct {
	ID         string    `db:"id"`
	FilterName string    `db:"filter_name"`
	FilterData []byte    `db:"filter_data"`
	CreatorID  string    `db:"creator_id"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r savedFilterRow) filter() domain.SavedFilter {
	return domain.SavedFilter{
		ID:        r.ID,
		Name:      r.FilterName,
		Data:      json.RawMessage(r.FilterData),
		CreatorID: r.CreatorID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// filterData normalizes an absent payload to an empty object.
func filterData(data json.RawMessage) string {
	if len(data) == 0 || string(data) == "null" {
		return "{}"
	}
	return string(data)
}

func (r *savedFilterRepo) Create(ctx context.Context, f *domain.SavedFilter) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	now := time.Now()
	f.CreatedAt, f.UpdatedAt = now, now
	f.Data = json.RawMessage(filterData(f.Data))

	_, err := r.db.Exec(ctx,
		`INSERT INTO saved_filters (`+savedFilterColumns+`) VALUES ($1, $2, $3::jsonb, $4, $5, $6)`,
		f.ID, f.Name, string(f.Data), f.CreatorID, f.CreatedAt, f.UpdatedAt)
	return translate(err)
}

func (r *savedFilterRepo) FindAll(ctx context.Context, creatorID string) ([]domain.SavedFilter, error) {
	query := `SELECT ` + savedFilterColumns + ` FROM saved_filters`
	var args []any
	if creatorID != "" {
		query += ` WHERE creator_id = $1`
		args = append(args, creatorID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[savedFilterRow])
	if err != nil {
		return nil, translate(err)
	}
	out := make([]domain.SavedFilter, len(found))
	for i, row := range found {
		out[i] = row.filter()
	}
	return out, nil
}

func (r *savedFilterRepo) FindByID(ctx context.Context, id string) (*domain.SavedFilter, error) {
	rows, err := r.db.Query(ctx, `SELECT `+savedFilterColumns+` FROM saved_filters WHERE id = $1`, id)
	if err != nil {
		return nil, translate(err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[savedFilterRow])
	if err != nil {
		return nil, translate(err)
	}
	f := row.filter()
	return &f, nil
}

func (r *savedFilterRepo) Update(ctx context.Context, f *domain.SavedFilter) error {
	f.UpdatedAt = time.Now()
	f.Data = json.RawMessage(filterData(f.Data))
	tag, err := r.db.Exec(ctx,
		`UPDATE saved_filters SET filter_name = $2, filter_data = $3::jsonb, updated_at = $4 WHERE id = $1`,
		f.ID, f.Name, string(f.Data), f.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	return translate(database.ExpectRows(tag))
}

func (r *savedFilterRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM saved_filters WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	return translate(database.ExpectRows(tag))
}
