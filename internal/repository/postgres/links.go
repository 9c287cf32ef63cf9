package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// linkTable is a plain (owner, target) junction such as poste_competences.
type linkTable struct {
	name   string
	owner  string
	target string
}

var (
	profileCompetences          = linkTable{"profile_competences", "profile_id", "competence_id"}
	profileExpertiseMetiers     = linkTable{"profile_expertise_metiers", "profile_id", "expertise_metier_id"}
	profileExpertiseTechniques  = linkTable{"profile_expertise_techniques", "profile_id", "expertise_technique_id"}
	profileExpertiseLogicielles = linkTable{"profile_expertise_logicielles", "profile_id", "expertise_logicielle_id"}

	posteCompetences          = linkTable{"poste_competences", "poste_id", "competence_id"}
	posteExpertiseMetiers     = linkTable{"poste_expertise_metiers", "poste_id", "expertise_metier_id"}
	posteExpertiseTechniques  = linkTable{"poste_expertise_techniques", "poste_id", "expertise_technique_id"}
	posteExpertiseLogicielles = linkTable{"poste_expertise_logicielles", "poste_id", "expertise_logicielle_id"}
)

// replace deletes the owner's links, then bulk-inserts ids.
func (l linkTable) replace(ctx context.Context, tx pgx.Tx, ownerID string, ids []string) error {
	if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s = $1", l.name, l.owner), ownerID); err != nil {
		return fmt.Errorf("clear %s: %w", l.name, err)
	}
	return l.insert(ctx, tx, ownerID, ids)
}

func (l linkTable) insert(ctx context.Context, tx pgx.Tx, ownerID string, ids []string) error {
	rows := buildRows(ids, func(id string) []any { return []any{ownerID, id} })
	if len(rows) == 0 {
		return nil
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{l.name}, []string{l.owner, l.target}, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("insert %s: %w", l.name, err)
	}
	return nil
}

// arrayExpr selects the owner's target ids as a text[] column aliased as alias.
func (l linkTable) arrayExpr(ownerRef, alias string) string {
	return fmt.Sprintf("ARRAY(SELECT x.%s FROM %s x WHERE x.%s = %s ORDER BY x.%s) AS %s",
		l.target, l.name, l.owner, ownerRef, l.target, alias)
}

// existsExpr matches owners linked to at least one id of the bound array parameter.
func (l linkTable) existsExpr(ownerRef, param string) string {
	return fmt.Sprintf("EXISTS (SELECT 1 FROM %s x WHERE x.%s = %s AND x.%s = ANY(%s))",
		l.name, l.owner, ownerRef, l.target, param)
}
