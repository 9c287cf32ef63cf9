package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-cv-backend/internal/domain"
	"go-cv-backend/pkg/database"
)

type posteRepo struct {
	db *pgxpool.Pool
}

func NewPosteRepository(db *pgxpool.Pool) domain.PosteRepository {
	return &posteRepo{db: db}
}

var posteSelect = `SELECT po.id, po.name, po.name_en, po.active, po.created_at, po.updated_at,
       ` + posteCompetences.arrayExpr("po.id", "competences") + `,
       ` + posteExpertiseMetiers.arrayExpr("po.id", "expertise_metiers") + `,
       ` + posteExpertiseTechniques.arrayExpr("po.id", "expertise_techniques") + `,
       ` + posteExpertiseLogicielles.arrayExpr("po.id", "expertise_logicielles") + `
FROM postes po`

type posteRow struct {
	taxonomyRow
	Competences          []string `db:"competences"`
	ExpertiseMetiers     []string `db:"expertise_metiers"`
	ExpertiseTechniques  []string `db:"expertise_techniques"`
	ExpertiseLogicielles []string `db:"expertise_logicielles"`
}

func (r posteRow) poste() *domain.Poste {
	return &domain.Poste{
		Taxonomy: r.taxonomy(),
		PosteRelations: domain.PosteRelations{
			Competences:          nonNilIDs(r.Competences),
			ExpertiseMetiers:     nonNilIDs(r.ExpertiseMetiers),
			ExpertiseTechniques:  nonNilIDs(r.ExpertiseTechniques),
			ExpertiseLogicielles: nonNilIDs(r.ExpertiseLogicielles),
		},
	}
}

func replacePosteLinks(ctx context.Context, tx pgx.Tx, p *domain.Poste) error {
	if err := posteCompetences.replace(ctx, tx, p.ID, p.Competences); err != nil {
		return err
	}
	if err := posteExpertiseMetiers.replace(ctx, tx, p.ID, p.ExpertiseMetiers); err != nil {
		return err
	}
	if err := posteExpertiseTechniques.replace(ctx, tx, p.ID, p.ExpertiseTechniques); err != nil {
		return err
	}
	return posteExpertiseLogicielles.replace(ctx, tx, p.ID, p.ExpertiseLogicielles)
}

// CreateWithRelations inserts the poste and its four skill sets in one transaction.
func (r *posteRepo) CreateWithRelations(ctx context.Context, p *domain.Poste) error {
	table := taxonomyTables[domain.KindPoste]
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := insertTaxonomy(ctx, tx, domain.KindPoste, table, &p.Taxonomy); err != nil {
			return err
		}
		return replacePosteLinks(ctx, tx, p)
	})
	return translate(err)
}

func (r *posteRepo) UpdateWithRelations(ctx context.Context, p *domain.Poste) error {
	table := taxonomyTables[domain.KindPoste]
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := updateTaxonomy(ctx, tx, table, &p.Taxonomy); err != nil {
			return err
		}
		return replacePosteLinks(ctx, tx, p)
	})
	return translate(err)
}

func (r *posteRepo) FindByID(ctx context.Context, id string) (*domain.Poste, error) {
	rows, err := r.db.Query(ctx, posteSelect+" WHERE po.id = $1", id)
	if err != nil {
		return nil, translate(err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[posteRow])
	if err != nil {
		return nil, translate(err)
	}
	return row.poste(), nil
}
