package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"go-cv-backend/internal/domain"
	"go-cv-backend/pkg/database"
)

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

var profileSelect = `SELECT p.id, p.user_id, p.images, p.cv_language, p.description, p.experience_years,
       p.poste_id, p.grade_id, p.metier_id,
       p.langues, p.formations, p.formations_en, p.exp_significatives, p.exp_significatives_en,
       p.created_at, p.updated_at,
       ` + profileCompetences.arrayExpr("p.id", "competences") + `,
       ` + profileExpertiseMetiers.arrayExpr("p.id", "expertise_metiers") + `,
       ` + profileExpertiseTechniques.arrayExpr("p.id", "expertise_techniques") + `,
       ` + profileExpertiseLogicielles.arrayExpr("p.id", "expertise_logicielles")

var profileDetailsSelect = profileSelect + `,
       u.prenom AS user_prenom, u.nom AS user_nom, u.email AS user_email,
       g.name AS grade_name, g.name_en AS grade_name_en,
       m.name AS metier_name, m.name_en AS metier_name_en,
       po.name AS poste_name, po.name_en AS poste_name_en
FROM profiles p
JOIN users u ON u.id = p.user_id
LEFT JOIN grades g ON g.id = p.grade_id
LEFT JOIN metiers m ON m.id = p.metier_id
LEFT JOIN postes po ON po.id = p.poste_id`

type profileRow struct {
	ID                   string    `db:"id"`
	UserID               string    `db:"user_id"`
	Images               *string   `db:"images"`
	CVLanguage           string    `db:"cv_language"`
	Description          *string   `db:"description"`
	ExperienceYears      *int      `db:"experience_years"`
	PosteID              *string   `db:"poste_id"`
	GradeID              *string   `db:"grade_id"`
	MetierID             *string   `db:"metier_id"`
	Langues              string    `db:"langues"`
	Formations           string    `db:"formations"`
	FormationsEn         string    `db:"formations_en"`
	ExpSignificatives    string    `db:"exp_significatives"`
	ExpSignificativesEn  string    `db:"exp_significatives_en"`
	CreatedAt            time.Time `db:"created_at"`
	UpdatedAt            time.Time `db:"updated_at"`
	Competences          []string  `db:"competences"`
	ExpertiseMetiers     []string  `db:"expertise_metiers"`
	ExpertiseTechniques  []string  `db:"expertise_techniques"`
	ExpertiseLogicielles []string  `db:"expertise_logicielles"`
}

// profile decodes the stored sub-documents; malformed JSON falls back to defaults.
func (r profileRow) profile() domain.Profile {
	return domain.Profile{
		ID:                   r.ID,
		UserID:               r.UserID,
		Images:               r.Images,
		CVLanguage:           domain.CVLanguage(r.CVLanguage),
		Description:          r.Description,
		ExperienceYears:      r.ExperienceYears,
		PosteID:              r.PosteID,
		GradeID:              r.GradeID,
		MetierID:             r.MetierID,
		Langues:              domain.DecodeLangues(r.Langues),
		Formations:           domain.DecodeFormations(r.Formations),
		FormationsEn:         domain.DecodeFormations(r.FormationsEn),
		ExpSignificatives:    domain.DecodeExpSignificatives(r.ExpSignificatives),
		ExpSignificativesEn:  domain.DecodeExpSignificatives(r.ExpSignificativesEn),
		Competences:          nonNilIDs(r.Competences),
		ExpertiseMetiers:     nonNilIDs(r.ExpertiseMetiers),
		ExpertiseTechniques:  nonNilIDs(r.ExpertiseTechniques),
		ExpertiseLogicielles: nonNilIDs(r.ExpertiseLogicielles),
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

type profileDetailsRow struct {
	profileRow
	UserPrenom   string  `db:"user_prenom"`
	UserNom      string  `db:"user_nom"`
	UserEmail    string  `db:"user_email"`
	GradeName    *string `db:"grade_name"`
	GradeNameEn  *string `db:"grade_name_en"`
	MetierName   *string `db:"metier_name"`
	MetierNameEn *string `db:"metier_name_en"`
	PosteName    *string `db:"poste_name"`
	PosteNameEn  *string `db:"poste_name_en"`
}

func (r profileDetailsRow) details() domain.ProfileDetails {
	return domain.ProfileDetails{
		Profile: r.profile(),
		User:    domain.UserSummary{ID: r.UserID, Prenom: r.UserPrenom, Nom: r.UserNom, Email: r.UserEmail},
		Grade:   namedRef(r.GradeID, r.GradeName, r.GradeNameEn),
		Metier:  namedRef(r.MetierID, r.MetierName, r.MetierNameEn),
		Poste:   namedRef(r.PosteID, r.PosteName, r.PosteNameEn),
	}
}

func namedRef(id, name, nameEn *string) *domain.NamedRef {
	if id == nil || name == nil {
		return nil
	}
	return &domain.NamedRef{ID: *id, Name: *name, NameEn: deref(nameEn)}
}

func nonNilIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

type profileDocs struct {
	langues, formations, formationsEn, exp, expEn string
}

func encodeDocs(p *domain.Profile) (profileDocs, error) {
	var d profileDocs
	var err error
	if d.langues, err = domain.EncodeDoc(p.Langues); err != nil {
		return d, err
	}
	if d.formations, err = domain.EncodeDoc(orDefaultFormations(p.Formations)); err != nil {
		return d, err
	}
	if d.formationsEn, err = domain.EncodeDoc(orDefaultFormations(p.FormationsEn)); err != nil {
		return d, err
	}
	if d.exp, err = domain.EncodeDoc(orEmptyExp(p.ExpSignificatives)); err != nil {
		return d, err
	}
	d.expEn, err = domain.EncodeDoc(orEmptyExp(p.ExpSignificativesEn))
	return d, err
}

func orDefaultFormations(f []domain.Formation) []domain.Formation {
	if len(f) == 0 {
		return domain.DefaultFormations()
	}
	return f
}

func orEmptyExp(e []domain.ExpSignificative) []domain.ExpSignificative {
	if e == nil {
		return []domain.ExpSignificative{}
	}
	return e
}

func replaceSkills(ctx context.Context, tx pgx.Tx, p *domain.Profile) error {
	if err := profileCompetences.replace(ctx, tx, p.ID, p.Competences); err != nil {
		return err
	}
	if err := profileExpertiseMetiers.replace(ctx, tx, p.ID, p.ExpertiseMetiers); err != nil {
		return err
	}
	if err := profileExpertiseTechniques.replace(ctx, tx, p.ID, p.ExpertiseTechniques); err != nil {
		return err
	}
	return profileExpertiseLogicielles.replace(ctx, tx, p.ID, p.ExpertiseLogicielles)
}

func (r *profileRepo) Create(ctx context.Context, p *domain.Profile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now

	docs, err := encodeDocs(p)
	if err != nil {
		return err
	}
	err = database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO profiles (id, user_id, images, cv_language, description, experience_years,
			                      poste_id, grade_id, metier_id, langues, formations, formations_en,
			                      exp_significatives, exp_significatives_en, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			p.ID, p.UserID, p.Images, p.CVLanguage, p.Description, p.ExperienceYears,
			p.PosteID, p.GradeID, p.MetierID, docs.langues, docs.formations, docs.formationsEn,
			docs.exp, docs.expEn, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return err
		}
		return replaceSkills(ctx, tx, p)
	})
	return translate(err)
}

func (r *profileRepo) Update(ctx context.Context, p *domain.Profile) error {
	docs, err := encodeDocs(p)
	if err != nil {
		return err
	}
	p.UpdatedAt = time.Now()
	err = database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE profiles SET cv_language = $2, description = $3, experience_years = $4,
			       poste_id = $5, grade_id = $6, metier_id = $7, langues = $8, formations = $9,
			       formations_en = $10, exp_significatives = $11, exp_significatives_en = $12,
			       updated_at = $13
			WHERE id = $1`,
			p.ID, p.CVLanguage, p.Description, p.ExperienceYears, p.PosteID, p.GradeID, p.MetierID,
			docs.langues, docs.formations, docs.formationsEn, docs.exp, docs.expEn, p.UpdatedAt)
		if err != nil {
			return err
		}
		if err := database.ExpectRows(tag); err != nil {
			return err
		}
		return replaceSkills(ctx, tx, p)
	})
	return translate(err)
}

func (r *profileRepo) getOne(ctx context.Context, where string, arg any) (*domain.Profile, error) {
	rows, err := r.db.Query(ctx, profileSelect+"\nFROM profiles p WHERE "+where, arg)
	if err != nil {
		return nil, translate(err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[profileRow])
	if err != nil {
		return nil, translate(err)
	}
	p := row.profile()
	return &p, nil
}

func (r *profileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	return r.getOne(ctx, "p.id = $1", id)
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	return r.getOne(ctx, "p.user_id = $1", userID)
}

func (r *profileRepo) GetDetails(ctx context.Context, id string) (*domain.ProfileDetails, error) {
	rows, err := r.db.Query(ctx, profileDetailsSelect+"\nWHERE p.id = $1", id)
	if err != nil {
		return nil, translate(err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[profileDetailsRow])
	if err != nil {
		return nil, translate(err)
	}
	d := row.details()
	return &d, nil
}

// DetailsByEmails returns one entry per known email, in the order given.
func (r *profileRepo) DetailsByEmails(ctx context.Context, emails []string) ([]domain.ProfileDetails, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	lowered := make([]string, len(emails))
	for i, e := range emails {
		lowered[i] = strings.ToLower(strings.TrimSpace(e))
	}
	rows, err := r.db.Query(ctx, profileDetailsSelect+"\nWHERE LOWER(u.email) = ANY($1)", pq.Array(lowered))
	if err != nil {
		return nil, translate(err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[profileDetailsRow])
	if err != nil {
		return nil, translate(err)
	}

	byEmail := make(map[string]domain.ProfileDetails, len(found))
	for _, row := range found {
		byEmail[strings.ToLower(row.UserEmail)] = row.details()
	}
	out := make([]domain.ProfileDetails, 0, len(found))
	for _, e := range lowered {
		if d, ok := byEmail[e]; ok {
			out = append(out, d)
			delete(byEmail, e)
		}
	}
	return out, nil
}

// DeleteByUserID removes the profile row only; the account stays.
func (r *profileRepo) DeleteByUserID(ctx context.Context, userID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return translate(err)
	}
	return translate(database.ExpectRows(tag))
}

func (r *profileRepo) SetImage(ctx context.Context, id, key string) error {
	tag, err := r.db.Exec(ctx, `UPDATE profiles SET images = $2, updated_at = NOW() WHERE id = $1`, id, key)
	if err != nil {
		return translate(err)
	}
	return translate(database.ExpectRows(tag))
}

type profileSearchRow struct {
	ID     string  `db:"id"`
	UserID string  `db:"user_id"`
	Prenom string  `db:"prenom"`
	Nom    string  `db:"nom"`
	Email  string  `db:"email"`
	Grade  *string `db:"grade"`
	Metier *string `db:"metier"`
}

func (r *profileRepo) SearchByName(ctx context.Context, search string) ([]domain.ProfileSearchItem, error) {
	query := `SELECT p.id, u.id AS user_id, u.prenom, u.nom, u.email, g.name AS grade, m.name AS metier
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		LEFT JOIN grades g ON g.id = p.grade_id
		LEFT JOIN metiers m ON m.id = p.metier_id`
	args := []any{}
	if s := searchPattern(search); s != "" {
		query += ` WHERE LOWER(u.nom) LIKE $1 OR LOWER(u.prenom) LIKE $1`
		args = append(args, s)
	}
	query += ` ORDER BY u.nom, u.prenom`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[profileSearchRow])
	if err != nil {
		return nil, translate(err)
	}
	out := make([]domain.ProfileSearchItem, len(found))
	for i, row := range found {
		out[i] = domain.ProfileSearchItem{
			ID:     row.ID,
			User:   domain.UserSummary{ID: row.UserID, Prenom: row.Prenom, Nom: row.Nom, Email: row.Email},
			Grade:  nameOnly(row.Grade),
			Metier: nameOnly(row.Metier),
		}
	}
	return out, nil
}

type profileListRow struct {
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UserID    string    `db:"user_id"`
	Prenom    string    `db:"prenom"`
	Nom       string    `db:"nom"`
	Email     string    `db:"email"`
	Telephone *string   `db:"telephone"`
	Status    string    `db:"status"`
	Grade     *string   `db:"grade"`
	Poste     *string   `db:"poste"`
}

func (r profileListRow) item() domain.ProfileListItem {
	return domain.ProfileListItem{
		ID: r.ID,
		User: domain.ProfileListUser{
			ID:        r.UserID,
			Prenom:    r.Prenom,
			Nom:       r.Nom,
			Email:     r.Email,
			Telephone: deref(r.Telephone),
			Status:    domain.UserStatus(r.Status),
		},
		Grade:     nameOnly(r.Grade),
		Poste:     nameOnly(r.Poste),
		CreatedAt: r.CreatedAt,
	}
}

func collectListItems(rows pgx.Rows) ([]domain.ProfileListItem, error) {
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[profileListRow])
	if err != nil {
		return nil, err
	}
	out := make([]domain.ProfileListItem, len(found))
	for i, row := range found {
		out[i] = row.item()
	}
	return out, nil
}

func (r *profileRepo) ListArchived(ctx context.Context, search string) ([]domain.ProfileListItem, error) {
	query := profileListSelect + "\nWHERE u.status = $1"
	args := []any{domain.StatusArchived}
	if s := searchPattern(search); s != "" {
		query += " AND (LOWER(u.nom) LIKE $2 OR LOWER(u.prenom) LIKE $2)"
		args = append(args, s)
	}
	query += "\nORDER BY p.created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	items, err := collectListItems(rows)
	return items, translate(err)
}

// Query runs an ad-hoc filter and returns one page plus the total match count.
func (r *profileRepo) Query(ctx context.Context, q domain.ProfileQuery) ([]domain.ProfileListItem, int64, error) {
	var total int64
	countSQL, countArgs := profileQueryCount(q)
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, translate(err)
	}

	listSQL, listArgs := profileQueryList(q)
	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, translate(err)
	}
	items, err := collectListItems(rows)
	if err != nil {
		return nil, 0, translate(err)
	}
	return items, total, nil
}

func nameOnly(name *string) *domain.NameOnly {
	if name == nil {
		return nil
	}
	return &domain.NameOnly{Name: *name}
}
