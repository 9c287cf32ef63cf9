package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-cv-backend/internal/domain"
	"go-cv-backend/pkg/database"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, prenom, nom, email, pays, telephone, password, type, status, activation_code, created_at, updated_at`

type userRow struct {
	ID             string    `db:"id"`
	Prenom         string    `db:"prenom"`
	Nom            string    `db:"nom"`
	Email          string    `db:"email"`
	Pays           *string   `db:"pays"`
	Telephone      *string   `db:"telephone"`
	Password       string    `db:"password"`
	Type           string    `db:"type"`
	Status         string    `db:"status"`
	ActivationCode *string   `db:"activation_code"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r userRow) user() *domain.User {
	return &domain.User{
		ID:             r.ID,
		Prenom:         r.Prenom,
		Nom:            r.Nom,
		Email:          r.Email,
		Pays:           deref(r.Pays),
		Telephone:      deref(r.Telephone),
		PasswordHash:   r.Password,
		Type:           domain.UserType(r.Type),
		Status:         domain.UserStatus(r.Status),
		ActivationCode: r.ActivationCode,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Type == "" {
		user.Type = domain.UserTypeUser
	}
	if user.Status == "" {
		user.Status = domain.StatusPendingActivation
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now

	query := `INSERT INTO users (` + userColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Prenom, user.Nom, user.Email, nullable(user.Pays), nullable(user.Telephone),
		user.PasswordHash, user.Type, user.Status, user.ActivationCode, user.CreatedAt, user.UpdatedAt)
	return translate(err)
}

func (r *userRepo) getOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	if err != nil {
		return nil, translate(err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[userRow])
	if err != nil {
		return nil, translate(err)
	}
	return row.user(), nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "LOWER(email) = LOWER($1)", email)
}

// Activate flips a pending account to active and clears its code in one statement.
func (r *userRepo) Activate(ctx context.Context, code string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET status = $2, activation_code = NULL, updated_at = NOW()
		WHERE activation_code = $1 AND status = $3`,
		code, domain.StatusActive, domain.StatusPendingActivation)
	if err != nil {
		return translate(err)
	}
	return translate(database.ExpectRows(tag))
}

func (r *userRepo) TransitionByProfileID(ctx context.Context, profileID string, from, to domain.UserStatus) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET status = $3, updated_at = NOW()
		WHERE status = $2 AND id = (SELECT user_id FROM profiles WHERE id = $1)`,
		profileID, from, to)
	if err != nil {
		return translate(err)
	}
	return translate(database.ExpectRows(tag))
}

// DeleteByProfileID removes the owner; the profile and its links follow by cascade.
func (r *userRepo) DeleteByProfileID(ctx context.Context, profileID string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM users WHERE id = (SELECT user_id FROM profiles WHERE id = $1)`, profileID)
	if err != nil {
		return translate(err)
	}
	return translate(database.ExpectRows(tag))
}

func (r *userRepo) List(ctx context.Context, search string) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	args := []any{}
	if s := searchPattern(search); s != "" {
		query += ` WHERE LOWER(nom) LIKE $1 OR LOWER(prenom) LIKE $1 OR LOWER(email) LIKE $1`
		args = append(args, s)
	}
	query += ` ORDER BY nom, prenom`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[userRow])
	if err != nil {
		return nil, translate(err)
	}
	out := make([]domain.User, len(found))
	for i, row := range found {
		out[i] = *row.user()
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// searchPattern lowercases and wraps a term for LIKE, or returns "" when blank.
func searchPattern(term string) string {
	term = strings.TrimSpace(term)
	if term == "" {
		return ""
	}
	return "%" + escapeLike(strings.ToLower(term)) + "%"
}
