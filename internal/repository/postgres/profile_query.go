package postgres

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"go-cv-backend/internal/domain"
)

const profileListSelect = `SELECT p.id, p.created_at,
       u.id AS user_id, u.prenom, u.nom, u.email, u.telephone, u.status,
       g.name AS grade, po.name AS poste
FROM profiles p
JOIN users u ON u.id = p.user_id
LEFT JOIN grades g ON g.id = p.grade_id
LEFT JOIN postes po ON po.id = p.poste_id`

const profileListFrom = `FROM profiles p
JOIN users u ON u.id = p.user_id
LEFT JOIN postes po ON po.id = p.poste_id`

// profileQueryWhere builds the predicate set of POST /filter/apply.
func profileQueryWhere(q domain.ProfileQuery) (string, []any) {
	status := domain.StatusActive
	if !q.WantsActive() {
		status = domain.StatusArchived
	}
	conditions := []string{"u.status = $1"}
	args := []any{status}
	argIndex := 2

	if s := searchPattern(q.Search); s != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(u.nom) LIKE $%d OR LOWER(u.prenom) LIKE $%d)", argIndex, argIndex))
		args = append(args, s)
		argIndex++
	}

	if len(q.Grades) > 0 {
		conditions = append(conditions, fmt.Sprintf("p.grade_id = ANY($%d)", argIndex))
		args = append(args, pq.Array([]string(q.Grades)))
		argIndex++
	}

	if poste := strings.TrimSpace(q.Poste); poste != "" {
		conditions = append(conditions, fmt.Sprintf("(po.id = $%d OR po.name = $%d)", argIndex, argIndex))
		args = append(args, poste)
		argIndex++
	}

	for _, skill := range []struct {
		link linkTable
		ids  domain.IDList
	}{
		{profileCompetences, q.Competences},
		{profileExpertiseMetiers, q.ExpertiseMetiers},
		{profileExpertiseTechniques, q.ExpertiseTechniques},
		{profileExpertiseLogicielles, q.ExpertiseLogicielles},
	} {
		if len(skill.ids) == 0 {
			continue
		}
		conditions = append(conditions, skill.link.existsExpr("p.id", fmt.Sprintf("$%d", argIndex)))
		args = append(args, pq.Array([]string(skill.ids)))
		argIndex++
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

func profileQueryList(q domain.ProfileQuery) (string, []any) {
	where, args := profileQueryWhere(q)
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf("%s\n%s\nORDER BY u.nom, u.prenom LIMIT %d OFFSET $%d",
		profileListSelect, where, domain.ProfilePageSize, len(args)+1)
	return query, append(args, offset*domain.ProfilePageSize)
}

func profileQueryCount(q domain.ProfileQuery) (string, []any) {
	where, args := profileQueryWhere(q)
	return "SELECT COUNT(DISTINCT p.id)\n" + profileListFrom + "\n" + where, args
}
