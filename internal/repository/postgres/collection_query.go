package postgres

import (
	"fmt"
	"strings"
	"time"

	"go-cv-backend/internal/domain"
)

const collectionSelect = `SELECT c.id, c.collection_name, c.creator_id, c.created_at, c.updated_at,
       u.prenom AS creator_prenom, u.nom AS creator_nom,
       (SELECT COUNT(*) FROM collection_profiles cp WHERE cp.collection_id = c.id) AS profile_count
FROM collections c
LEFT JOIN users u ON u.id = c.creator_id`

// collectionWhere builds the AND-ed predicate set shared by the list and count queries.
func collectionWhere(f domain.CollectionFilter) (string, []any) {
	conditions := []string{}
	args := []any{}
	argIndex := 1

	for _, term := range []string{f.Search, f.Nom} {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		conditions = append(conditions, fmt.Sprintf(`LOWER(c.collection_name) LIKE $%d`, argIndex))
		args = append(args, "%"+escapeLike(strings.ToLower(term))+"%")
		argIndex++
	}

	if f.DateCreation != nil {
		d := *f.DateCreation
		start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
		conditions = append(conditions, fmt.Sprintf("c.created_at >= $%d AND c.created_at < $%d", argIndex, argIndex+1))
		args = append(args, start, start.AddDate(0, 0, 1))
		argIndex += 2
	}

	if f.Membre != "" {
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
    SELECT 1 FROM collection_profiles cp
    JOIN profiles p ON p.id = cp.profil_id
    WHERE cp.collection_id = c.id AND p.user_id = $%d)`, argIndex))
		args = append(args, f.Membre)
		argIndex++
	}

	if f.UserCount != nil && *f.UserCount > 0 {
		conditions = append(conditions, fmt.Sprintf(
			"(SELECT COUNT(*) FROM collection_profiles cp WHERE cp.collection_id = c.id) >= $%d", argIndex))
		args = append(args, *f.UserCount)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// collectionListQuery returns the page query. Limit <= 0 returns every row.
func collectionListQuery(f domain.CollectionFilter) (string, []any) {
	where, args := collectionWhere(f)
	query := collectionSelect
	if where != "" {
		query += "\n" + where
	}
	query += "\nORDER BY c.collection_name"
	if f.Limit > 0 {
		p := domain.NewPagination(0, f.Page, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, f.Limit, p.Offset())
	}
	return query, args
}

func collectionCountQuery(f domain.CollectionFilter) (string, []any) {
	where, args := collectionWhere(f)
	query := "SELECT COUNT(DISTINCT c.id) FROM collections c"
	if where != "" {
		query += "\n" + where
	}
	return query, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
