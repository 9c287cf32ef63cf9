package domain

import (
	"context"
	"time"
)

type UserType string

const (
	UserTypeAdmin UserType = "admin"
	UserTypeUser  UserType = "user"
)

// UserStatus is the account lifecycle state:
// pending_activation -> active <-> archived.
type UserStatus string

const (
	StatusPendingActivation UserStatus = "pending_activation"
	StatusActive            UserStatus = "active"
	StatusArchived          UserStatus = "archived"
)

func (s UserStatus) Valid() bool {
	switch s {
	case StatusPendingActivation, StatusActive, StatusArchived:
		return true
	}
	return false
}

type User struct {
	ID             string     `json:"id"`
	Prenom         string     `json:"prenom"`
	Nom            string     `json:"nom"`
	Email          string     `json:"email"`
	Pays           string     `json:"pays,omitempty"`
	Telephone      string     `json:"telephone,omitempty"`
	PasswordHash   string     `json:"-"`
	Type           UserType   `json:"type"`
	Status         UserStatus `json:"status"`
	ActivationCode *string    `json:"-"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// UserSummary is the identity subset embedded in joined reads.
type UserSummary struct {
	ID     string `json:"id"`
	Prenom string `json:"prenom"`
	Nom    string `json:"nom"`
	Email  string `json:"email"`
}

// Actor is the authenticated caller.
type Actor struct {
	ID   string
	Type UserType
}

func (a Actor) IsAdmin() bool { return a.Type == UserTypeAdmin }

type RegisterInput struct {
	Prenom    string `json:"prenom" binding:"required,max=50,valid_name"`
	Nom       string `json:"nom" binding:"required,max=50,valid_name"`
	Email     string `json:"email" binding:"required,email,max=100"`
	Pays      string `json:"pays" binding:"omitempty,max=50"`
	Telephone string `json:"telephone" binding:"omitempty,valid_phone"`
	Password  string `json:"password" binding:"required,min=6,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// Activate moves a pending account to active and consumes its code.
	Activate(ctx context.Context, code string) error
	// TransitionByProfileID changes the status of the user owning profileID, only from `from`.
	TransitionByProfileID(ctx context.Context, profileID string, from, to UserStatus) error
	// DeleteByProfileID hard-deletes the user owning profileID.
	DeleteByProfileID(ctx context.Context, profileID string) error
	List(ctx context.Context, search string) ([]User, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (*User, error)
	ConfirmAccount(ctx context.Context, code string) error
	Login(ctx context.Context, in LoginInput, clientIP string) (*LoginResult, error)
	GetCurrentUser(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context, search string) ([]User, error)
}
