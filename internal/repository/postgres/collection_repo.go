package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"go-cv-backend/internal/domain"
	"go-cv-backend/pkg/database"
	"go-cv-backend/pkg/logger"
)

type collectionRepo struct {
	db *pgxpool.Pool
}

func NewCollectionRepository(db *pgxpool.Pool) domain.CollectionRepository {
	return &collectionRepo{db: db}
}

type collectionRow struct {
	ID            string    `db:"id"`
	Name          string    `db:"collection_name"`
	CreatorID     *string   `db:"creator_id"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
	CreatorPrenom *string   `db:"creator_prenom"`
	CreatorNom    *string   `db:"creator_nom"`
	ProfileCount  int64     `db:"profile_count"`
}

func (r collectionRow) summary() domain.CollectionSummary {
	return domain.CollectionSummary{
		Collection: domain.Collection{
			ID:        r.ID,
			Name:      r.Name,
			CreatorID: r.CreatorID,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		},
		CreatorPrenom: r.CreatorPrenom,
		CreatorNom:    r.CreatorNom,
		ProfileCount:  r.ProfileCount,
	}
}

type memberRow struct {
	ProfileID  string  `db:"profile_id"`
	CVLanguage string  `db:"cv_language"`
	UserID     string  `db:"user_id"`
	Prenom     string  `db:"prenom"`
	Nom        string  `db:"nom"`
	Email      string  `db:"email"`
	Grade      *string `db:"grade"`
	Metier     *string `db:"metier"`
	Poste      *string `db:"poste"`
}

type userSummaryRow struct {
	ID     string `db:"id"`
	Prenom string `db:"prenom"`
	Nom    string `db:"nom"`
	Email  string `db:"email"`
}

func (u userSummaryRow) summary() domain.UserSummary {
	return domain.UserSummary{ID: u.ID, Prenom: u.Prenom, Nom: u.Nom, Email: u.Email}
}

func (r *collectionRepo) Create(ctx context.Context, c *domain.Collection, rel domain.CollectionRelations) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO collections (id, collection_name, creator_id, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			c.ID, c.Name, c.CreatorID, c.CreatedAt, c.UpdatedAt)
		if err != nil {
			return err
		}
		return insertRelations(ctx, tx, c.ID, rel)
	})
	if err != nil {
		logger.Log.Error("create collection failed", "collection_name", c.Name, "error", err)
	}
	return translate(err)
}

func insertRelations(ctx context.Context, tx pgx.Tx, id string, rel domain.CollectionRelations) error {
	if err := insertAll(ctx, tx, memberships(id, rel.ProfileIDs)); err != nil {
		return err
	}
	if err := insertAll(ctx, tx, actorsUse(id, rel.ActorsToUse)); err != nil {
		return err
	}
	return insertAll(ctx, tx, actorsUpdate(id, rel.ActorsToUpdate))
}

func (r *collectionRepo) FindByID(ctx context.Context, id string, populate bool) (*domain.CollectionDetail, error) {
	rows, err := r.db.Query(ctx, collectionSelect+"\nWHERE c.id = $1", id)
	if err != nil {
		return nil, translate(err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[collectionRow])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err)
	}

	s := row.summary()
	detail := &domain.CollectionDetail{
		Collection:    s.Collection,
		CreatorPrenom: s.CreatorPrenom,
		CreatorNom:    s.CreatorNom,
		Populated:     populate,
	}

	if !populate {
		detail.Relations, err = r.relationIDs(ctx, id)
		if err != nil {
			return nil, translate(err)
		}
		return detail, nil
	}

	if detail.Members, err = r.members(ctx, id); err != nil {
		return nil, translate(err)
	}
	if detail.UseActors, err = r.actors(ctx, CollectionActorUse{}.table(), id); err != nil {
		return nil, translate(err)
	}
	if detail.UpdateActors, err = r.actors(ctx, CollectionActorUpdate{}.table(), id); err != nil {
		return nil, translate(err)
	}
	return detail, nil
}

func (r *collectionRepo) relationIDs(ctx context.Context, id string) (domain.CollectionRelations, error) {
	var rel domain.CollectionRelations
	members, err := loadAll[CollectionMembership](ctx, r.db, id)
	if err != nil {
		return rel, err
	}
	use, err := loadAll[CollectionActorUse](ctx, r.db, id)
	if err != nil {
		return rel, err
	}
	update, err := loadAll[CollectionActorUpdate](ctx, r.db, id)
	if err != nil {
		return rel, err
	}
	rel.ProfileIDs = targetIDs(members)
	rel.ActorsToUse = targetIDs(use)
	rel.ActorsToUpdate = targetIDs(update)
	return rel, nil
}

func (r *collectionRepo) members(ctx context.Context, id string) ([]domain.CollectionMember, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id AS profile_id, p.cv_language, u.id AS user_id, u.prenom, u.nom, u.email,
		       g.name AS grade, m.name AS metier, po.name AS poste
		FROM collection_profiles cp
		JOIN profiles p ON p.id = cp.profil_id
		JOIN users u ON u.id = p.user_id
		LEFT JOIN grades g ON g.id = p.grade_id
		LEFT JOIN metiers m ON m.id = p.metier_id
		LEFT JOIN postes po ON po.id = p.poste_id
		WHERE cp.collection_id = $1
		ORDER BY u.nom, u.prenom`, id)
	if err != nil {
		return nil, err
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[memberRow])
	if err != nil {
		return nil, err
	}

	out := make([]domain.CollectionMember, len(found))
	for i, m := range found {
		out[i] = domain.CollectionMember{
			ProfileID:  m.ProfileID,
			User:       domain.UserSummary{ID: m.UserID, Prenom: m.Prenom, Nom: m.Nom, Email: m.Email},
			CVLanguage: domain.CVLanguage(m.CVLanguage),
			Grade:      m.Grade,
			Metier:     m.Metier,
			Poste:      m.Poste,
		}
	}
	return out, nil
}

func (r *collectionRepo) actors(ctx context.Context, table, id string) ([]domain.UserSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.prenom, u.nom, u.email
		FROM `+table+` ct
		JOIN users u ON u.id = ct.user_id
		WHERE ct.collection_id = $1
		ORDER BY u.nom, u.prenom`, id)
	if err != nil {
		return nil, err
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[userSummaryRow])
	if err != nil {
		return nil, err
	}
	out := make([]domain.UserSummary, len(found))
	for i, u := range found {
		out[i] = u.summary()
	}
	return out, nil
}

// FindByIDs returns the matching collections in the order of ids. Unknown ids are skipped.
func (r *collectionRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.CollectionSummary, error) {
	if len(ids) == 0 {
		return []domain.CollectionSummary{}, nil
	}
	rows, err := r.db.Query(ctx, collectionSelect+"\nWHERE c.id = ANY($1)", pq.Array(ids))
	if err != nil {
		return nil, translate(err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[collectionRow])
	if err != nil {
		return nil, translate(err)
	}

	byID := make(map[string]collectionRow, len(found))
	for _, row := range found {
		byID[row.ID] = row
	}
	out := make([]domain.CollectionSummary, 0, len(found))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			out = append(out, row.summary())
			delete(byID, id)
		}
	}
	return out, nil
}

// FindAll returns the matching page and the total match count.
func (r *collectionRepo) FindAll(ctx context.Context, f domain.CollectionFilter) ([]domain.CollectionSummary, int64, error) {
	var total int64
	if f.Limit > 0 {
		query, args := collectionCountQuery(f)
		if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
			return nil, 0, translate(err)
		}
	}

	query, args := collectionListQuery(f)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translate(err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[collectionRow])
	if err != nil {
		return nil, 0, translate(err)
	}

	out := make([]domain.CollectionSummary, len(found))
	for i, row := range found {
		out[i] = row.summary()
	}
	if f.Limit <= 0 {
		total = int64(len(out))
	}
	return out, total, nil
}

func (r *collectionRepo) Update(ctx context.Context, id, name string, rel domain.CollectionRelations) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE collections SET collection_name = $2, updated_at = NOW() WHERE id = $1`, id, name)
		if err != nil {
			return err
		}
		if err := database.ExpectRows(tag); err != nil {
			return err
		}
		if err := replaceAll(ctx, tx, id, memberships(id, rel.ProfileIDs)); err != nil {
			return err
		}
		if err := replaceAll(ctx, tx, id, actorsUse(id, rel.ActorsToUse)); err != nil {
			return err
		}
		return replaceAll(ctx, tx, id, actorsUpdate(id, rel.ActorsToUpdate))
	})
	if err != nil {
		logger.Log.Error("update collection failed", "collection_id", id, "error", err)
	}
	return translate(err)
}

// Delete removes the collection row. Relation rows go with it through ON DELETE CASCADE.
func (r *collectionRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return false, translate(err)
	}
	return tag.RowsAffected() > 0, nil
}

// Clone relies on uq_collections_name to reject a concurrent clone that picked the same name.
func (r *collectionRepo) Clone(ctx context.Context, originalID, baseName, creatorID string) (*domain.CollectionDetail, error) {
	now := time.Now()
	clone := &domain.CollectionDetail{
		Collection: domain.Collection{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
	}
	if creatorID != "" {
		clone.CreatorID = &creatorID
	}

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM collections WHERE id = $1)`, originalID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return pgx.ErrNoRows
		}

		rows, err := tx.Query(ctx,
			`SELECT collection_name FROM collections WHERE UPPER(collection_name) LIKE $1`,
			cloneNamePattern(baseName))
		if err != nil {
			return err
		}
		names, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return err
		}
		clone.Name = nextCloneName(baseName, names)

		if _, err := tx.Exec(ctx,
			`INSERT INTO collections (id, collection_name, creator_id, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			clone.ID, clone.Name, clone.CreatorID, clone.CreatedAt, clone.UpdatedAt); err != nil {
			return err
		}

		members, err := copyAll[CollectionMembership](ctx, tx, originalID, clone.ID)
		if err != nil {
			return err
		}
		use, err := copyAll[CollectionActorUse](ctx, tx, originalID, clone.ID)
		if err != nil {
			return err
		}
		update, err := copyAll[CollectionActorUpdate](ctx, tx, originalID, clone.ID)
		if err != nil {
			return err
		}
		clone.Relations = domain.CollectionRelations{
			ProfileIDs:     targetIDs(members),
			ActorsToUse:    targetIDs(use),
			ActorsToUpdate: targetIDs(update),
		}
		return nil
	})
	if err != nil {
		logger.Log.Error("clone collection failed", "original_id", originalID, "base_name", baseName, "error", err)
		return nil, translate(err)
	}
	return clone, nil
}

// addMembershipsSQL links zipped (collection, profile) pairs, skipping pairs
// already present, including ones inserted concurrently.
const addMembershipsSQL = `INSERT INTO collection_profiles (collection_id, profil_id)
SELECT pairs.collection_id, pairs.profil_id
FROM unnest($1::text[], $2::text[]) AS pairs(collection_id, profil_id)
ON CONFLICT DO NOTHING`

// AddProfiles links every profile to every collection and reports how many
// pairs were new. Running it twice with the same input inserts nothing the second time.
func (r *collectionRepo) AddProfiles(ctx context.Context, collectionIDs, profileIDs []string) (int, error) {
	pairs := crossMemberships(collectionIDs, profileIDs)
	if len(pairs) == 0 {
		return 0, nil
	}
	cids := make([]string, len(pairs))
	pids := make([]string, len(pairs))
	for i, m := range pairs {
		cids[i], pids[i] = m.CollectionID, m.ProfileID
	}

	tag, err := r.db.Exec(ctx, addMembershipsSQL, pq.Array(cids), pq.Array(pids))
	if err != nil {
		logger.Log.Error("add profiles to collections failed",
			"collections", len(collectionIDs), "profiles", len(profileIDs), "error", err)
		return 0, translate(err)
	}
	return int(tag.RowsAffected()), nil
}

// crossMemberships is the deduplicated cross product of collection and profile ids.
func crossMemberships(collectionIDs, profileIDs []string) []CollectionMembership {
	var pairs []CollectionMembership
	for _, cid := range buildRows(collectionIDs, func(id string) string { return id }) {
		pairs = append(pairs, memberships(cid, profileIDs)...)
	}
	return pairs
}
