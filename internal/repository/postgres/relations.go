package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

// relation is one row of a junction table keyed by an owner id.
type relation[R any] interface {
	table() string
	// columns lists the owner column first.
	columns() []string
	values() []any
	targetID() string
	withOwner(ownerID string) R
}

// CollectionMembership links a profile to a collection.
type CollectionMembership struct {
	CollectionID string `db:"collection_id"`
	ProfileID    string `db:"profil_id"`
}

func (CollectionMembership) table() string      { return "collection_profiles" }
func (CollectionMembership) columns() []string  { return []string{"collection_id", "profil_id"} }
func (m CollectionMembership) values() []any    { return []any{m.CollectionID, m.ProfileID} }
func (m CollectionMembership) targetID() string { return m.ProfileID }
func (m CollectionMembership) withOwner(id string) CollectionMembership {
	m.CollectionID = id
	return m
}

// CollectionActorUse grants a user visibility over a collection.
type CollectionActorUse struct {
	CollectionID string `db:"collection_id"`
	UserID       string `db:"user_id"`
}

func (CollectionActorUse) table() string      { return "collection_actors_use" }
func (CollectionActorUse) columns() []string  { return []string{"collection_id", "user_id"} }
func (a CollectionActorUse) values() []any    { return []any{a.CollectionID, a.UserID} }
func (a CollectionActorUse) targetID() string { return a.UserID }
func (a CollectionActorUse) withOwner(id string) CollectionActorUse {
	a.CollectionID = id
	return a
}

// CollectionActorUpdate grants a user edit rights over a collection.
type CollectionActorUpdate struct {
	CollectionID string `db:"collection_id"`
	UserID       string `db:"user_id"`
}

func (CollectionActorUpdate) table() string      { return "collection_actors_update" }
func (CollectionActorUpdate) columns() []string  { return []string{"collection_id", "user_id"} }
func (a CollectionActorUpdate) values() []any    { return []any{a.CollectionID, a.UserID} }
func (a CollectionActorUpdate) targetID() string { return a.UserID }
func (a CollectionActorUpdate) withOwner(id string) CollectionActorUpdate {
	a.CollectionID = id
	return a
}

func memberships(collectionID string, profileIDs []string) []CollectionMembership {
	return buildRows(profileIDs, func(id string) CollectionMembership {
		return CollectionMembership{CollectionID: collectionID, ProfileID: id}
	})
}

func actorsUse(collectionID string, userIDs []string) []CollectionActorUse {
	return buildRows(userIDs, func(id string) CollectionActorUse {
		return CollectionActorUse{CollectionID: collectionID, UserID: id}
	})
}

func actorsUpdate(collectionID string, userIDs []string) []CollectionActorUpdate {
	return buildRows(userIDs, func(id string) CollectionActorUpdate {
		return CollectionActorUpdate{CollectionID: collectionID, UserID: id}
	})
}

// buildRows drops empty and repeated ids, keeping first-seen order.
func buildRows[R any](ids []string, mk func(id string) R) []R {
	seen := make(map[string]struct{}, len(ids))
	rows := make([]R, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		rows = append(rows, mk(id))
	}
	return rows
}

func targetIDs[R relation[R]](rows []R) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.targetID()
	}
	return ids
}

// insertAll bulk-loads rows with COPY. An empty slice is a no-op.
func insertAll[R relation[R]](ctx context.Context, tx pgx.Tx, rows []R) error {
	if len(rows) == 0 {
		return nil
	}
	var zero R
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{zero.table()},
		zero.columns(),
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return rows[i].values(), nil
		}),
	)
	if err != nil {
		return fmt.Errorf("insert %s: %w", zero.table(), err)
	}
	return nil
}

// replaceAll deletes every row owned by ownerID, then inserts rows.
func replaceAll[R relation[R]](ctx context.Context, tx pgx.Tx, ownerID string, rows []R) error {
	var zero R
	cols := zero.columns()
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", zero.table(), cols[0])
	if _, err := tx.Exec(ctx, query, ownerID); err != nil {
		return fmt.Errorf("clear %s: %w", zero.table(), err)
	}
	return insertAll(ctx, tx, rows)
}

// loadAll reads every row owned by one of ownerIDs.
func loadAll[R relation[R]](ctx context.Context, q queryer, ownerIDs ...string) ([]R, error) {
	var zero R
	cols := zero.columns()
	query := fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s = ANY($1) ORDER BY %s",
		cols[0], cols[1], zero.table(), cols[0], cols[1])
	rows, err := q.Query(ctx, query, pq.Array(ownerIDs))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[R])
}

// copyAll duplicates every row owned by fromID onto toID and returns the new rows.
func copyAll[R relation[R]](ctx context.Context, tx pgx.Tx, fromID, toID string) ([]R, error) {
	existing, err := loadAll[R](ctx, tx, fromID)
	if err != nil {
		return nil, err
	}
	moved := make([]R, 0, len(existing))
	for _, r := range existing {
		if r.targetID() == "" {
			continue
		}
		moved = append(moved, r.withOwner(toID))
	}
	if err := insertAll(ctx, tx, moved); err != nil {
		return nil, err
	}
	return moved, nil
}

type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}
