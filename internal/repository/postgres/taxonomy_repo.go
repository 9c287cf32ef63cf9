package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-cv-backend/internal/domain"
	"go-cv-backend/pkg/database"
)

// taxonomyTable describes where one taxonomy kind lives.
type taxonomyTable struct {
	name string
	// profileColumn is set for kinds referenced directly by profiles.
	profileColumn string
	// links are junctions cleared when an entry is retired.
	links []linkTable
}

var taxonomyTables = map[domain.TaxonomyKind]taxonomyTable{
	domain.KindGrade:               {name: "grades", profileColumn: "grade_id"},
	domain.KindMetier:              {name: "metiers", profileColumn: "metier_id"},
	domain.KindPoste:               {name: "postes"},
	domain.KindCompetence:          {name: "competences"},
	domain.KindExpertiseMetier:     {name: "expertise_metiers", links: []linkTable{posteExpertiseMetiers}},
	domain.KindExpertiseTechnique:  {name: "expertise_techniques"},
	domain.KindExpertiseLogicielle: {name: "expertise_logicielles"},
}

func tableFor(kind domain.TaxonomyKind) (taxonomyTable, error) {
	t, ok := taxonomyTables[kind]
	if !ok {
		return taxonomyTable{}, domain.NewValidationError(fmt.Sprintf("unknown taxonomy %q", kind))
	}
	return t, nil
}

func (t taxonomyTable) columns(kind domain.TaxonomyKind) string {
	if kind.SoftDelete() {
		return "id, name, name_en, active, created_at, updated_at"
	}
	return "id, name, name_en, NULL::boolean AS active, created_at, updated_at"
}

type taxonomyRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	NameEn    string    `db:"name_en"`
	Active    *bool     `db:"active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r taxonomyRow) taxonomy() domain.Taxonomy {
	return domain.Taxonomy{
		ID:        r.ID,
		Name:      r.Name,
		NameEn:    r.NameEn,
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type taxonomyRepo struct {
	db *pgxpool.Pool
}

func NewTaxonomyRepository(db *pgxpool.Pool) domain.TaxonomyRepository {
	return &taxonomyRepo{db: db}
}

func (r *taxonomyRepo) Create(ctx context.Context, kind domain.TaxonomyKind, t *domain.Taxonomy) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	return translate(insertTaxonomy(ctx, r.db, kind, table, t))
}

func insertTaxonomy(ctx context.Context, q database.Querier, kind domain.TaxonomyKind, table taxonomyTable, t *domain.Taxonomy) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	if kind.SoftDelete() {
		active := true
		t.Active = &active
	}
	_, err := q.Exec(ctx,
		fmt.Sprintf("INSERT INTO %s (id, name, name_en, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)", table.name),
		t.ID, t.Name, t.NameEn, t.CreatedAt, t.UpdatedAt)
	return err
}

// FindAll lists entries by name. Retired entries of soft-deleted kinds are hidden.
func (r *taxonomyRepo) FindAll(ctx context.Context, kind domain.TaxonomyKind, search string) ([]domain.Taxonomy, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	var conditions []string
	var args []any
	if kind.SoftDelete() {
		conditions = append(conditions, "active = TRUE")
	}
	if s := searchPattern(search); s != "" {
		args = append(args, s)
		conditions = append(conditions, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(name_en) LIKE $%d)", len(args), len(args)))
	}
	query := fmt.Sprintf("SELECT %s FROM %s", table.columns(kind), table.name)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[taxonomyRow])
	if err != nil {
		return nil, translate(err)
	}
	out := make([]domain.Taxonomy, len(found))
	for i, row := range found {
		out[i] = row.taxonomy()
	}
	return out, nil
}

func (r *taxonomyRepo) FindByID(ctx context.Context, kind domain.TaxonomyKind, id string) (*domain.Taxonomy, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx,
		fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", table.columns(kind), table.name), id)
	if err != nil {
		return nil, translate(err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[taxonomyRow])
	if err != nil {
		return nil, translate(err)
	}
	t := row.taxonomy()
	return &t, nil
}

func (r *taxonomyRepo) Update(ctx context.Context, kind domain.TaxonomyKind, t *domain.Taxonomy) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	return translate(updateTaxonomy(ctx, r.db, table, t))
}

func updateTaxonomy(ctx context.Context, q database.Querier, table taxonomyTable, t *domain.Taxonomy) error {
	t.UpdatedAt = time.Now()
	tag, err := q.Exec(ctx,
		fmt.Sprintf("UPDATE %s SET name = $2, name_en = $3, updated_at = $4 WHERE id = $1", table.name),
		t.ID, t.Name, t.NameEn, t.UpdatedAt)
	if err != nil {
		return err
	}
	return database.ExpectRows(tag)
}

// Delete retires soft-deleted kinds and removes the others, detaching profiles first.
func (r *taxonomyRepo) Delete(ctx context.Context, kind domain.TaxonomyKind, id string) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	err = database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		for _, link := range table.links {
			if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s = $1", link.name, link.target), id); err != nil {
				return fmt.Errorf("clear %s: %w", link.name, err)
			}
		}

		if kind.SoftDelete() {
			tag, err := tx.Exec(ctx,
				fmt.Sprintf("UPDATE %s SET active = FALSE, updated_at = NOW() WHERE id = $1", table.name), id)
			if err != nil {
				return err
			}
			return database.ExpectRows(tag)
		}

		if table.profileColumn != "" {
			if _, err := tx.Exec(ctx,
				fmt.Sprintf("UPDATE profiles SET %s = NULL WHERE %s = $1", table.profileColumn, table.profileColumn), id); err != nil {
				return fmt.Errorf("detach profiles: %w", err)
			}
		}
		tag, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table.name), id)
		if err != nil {
			return err
		}
		return database.ExpectRows(tag)
	})
	return translate(err)
}

func (r *taxonomyRepo) Names(ctx context.Context, kind domain.TaxonomyKind) ([]domain.NamePair, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT name, name_en FROM %s", table.name)
	if kind.SoftDelete() {
		query += " WHERE active = TRUE"
	}
	query += " ORDER BY name"

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, translate(err)
	}
	pairs, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.NamePair])
	return pairs, translate(err)
}
