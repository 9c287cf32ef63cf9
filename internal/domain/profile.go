package domain

import (
	"context"
	"time"
)

// CVLanguage selects which localized sub-documents a CV is rendered from.
type CVLanguage string

const (
	CVLanguageFR CVLanguage = "fr"
	CVLanguageEN CVLanguage = "en"
)

func (l CVLanguage) Valid() bool { return l == CVLanguageFR || l == CVLanguageEN }

type Profile struct {
	ID                   string             `json:"id"`
	UserID               string             `json:"user"`
	Images               *string            `json:"images"`
	CVLanguage           CVLanguage         `json:"cvLanguage"`
	Description          *string            `json:"description"`
	ExperienceYears      *int               `json:"experience_years"`
	PosteID              *string            `json:"poste"`
	GradeID              *string            `json:"grade"`
	MetierID             *string            `json:"metier"`
	Langues              Langues            `json:"langues"`
	Formations           []Formation        `json:"formations"`
	FormationsEn         []Formation        `json:"formations_en"`
	ExpSignificatives    []ExpSignificative `json:"expSignificatives"`
	ExpSignificativesEn  []ExpSignificative `json:"expSignificatives_en"`
	Competences          []string           `json:"competences"`
	ExpertiseMetiers     []string           `json:"expertiseMetiers"`
	ExpertiseTechniques  []string           `json:"expertiseTechniques"`
	ExpertiseLogicielles []string           `json:"expertiseLogicielles"`
	CreatedAt            time.Time          `json:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt"`
}

type NamedRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameEn string `json:"name_en"`
}

// ProfileDetails is a profile with its owner and taxonomy labels resolved.
type ProfileDetails struct {
	Profile
	User   UserSummary `json:"user"`
	Grade  *NamedRef   `json:"grade"`
	Metier *NamedRef   `json:"metier"`
	Poste  *NamedRef   `json:"poste"`
}

type NameOnly struct {
	Name string `json:"name"`
}

// ProfileSearchItem is one row of the search-by-name endpoint.
type ProfileSearchItem struct {
	ID     string      `json:"id"`
	User   UserSummary `json:"user"`
	Grade  *NameOnly   `json:"grade"`
	Metier *NameOnly   `json:"metier"`
}

type ProfileListUser struct {
	ID        string     `json:"id"`
	Prenom    string     `json:"prenom"`
	Nom       string     `json:"nom"`
	Email     string     `json:"email"`
	Telephone string     `json:"telephone,omitempty"`
	Status    UserStatus `json:"status"`
}

// ProfileListItem is one row of the archived list and of filter results.
type ProfileListItem struct {
	ID        string          `json:"id"`
	User      ProfileListUser `json:"user"`
	Grade     *NameOnly       `json:"grade"`
	Poste     *NameOnly       `json:"poste"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ProfileInput is the writable part of a profile. Nil pointers leave values unchanged on update.
type ProfileInput struct {
	CVLanguage           *CVLanguage        `json:"cvLanguage" binding:"omitempty,cv_language"`
	Description          *string            `json:"description"`
	ExperienceYears      *int               `json:"experience_years" binding:"omitempty,min=0,max=60"`
	PosteID              *string            `json:"poste"`
	GradeID              *string            `json:"grade"`
	MetierID             *string            `json:"metier"`
	Langues              *Langues           `json:"langues"`
	Formations           []Formation        `json:"formations"`
	FormationsEn         []Formation        `json:"formations_en"`
	ExpSignificatives    []ExpSignificative `json:"expSignificatives"`
	ExpSignificativesEn  []ExpSignificative `json:"expSignificatives_en"`
	Competences          []string           `json:"competences"`
	ExpertiseMetiers     []string           `json:"expertiseMetiers"`
	ExpertiseTechniques  []string           `json:"expertiseTechniques"`
	ExpertiseLogicielles []string           `json:"expertiseLogicielles"`
}

type ProfileRepository interface {
	// Create inserts the profile and its skill links atomically.
	Create(ctx context.Context, p *Profile) error
	// Update rewrites scalar fields and replaces the skill links atomically.
	Update(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	GetDetails(ctx context.Context, id string) (*ProfileDetails, error)
	DetailsByEmails(ctx context.Context, emails []string) ([]ProfileDetails, error)
	DeleteByUserID(ctx context.Context, userID string) error
	SetImage(ctx context.Context, id, key string) error
	SearchByName(ctx context.Context, search string) ([]ProfileSearchItem, error)
	ListArchived(ctx context.Context, search string) ([]ProfileListItem, error)
	Query(ctx context.Context, q ProfileQuery) ([]ProfileListItem, int64, error)
}

type ProfileUsecase interface {
	Create(ctx context.Context, userID string, in ProfileInput) (*Profile, error)
	GetMine(ctx context.Context, userID string) (*ProfileDetails, error)
	UpdateMine(ctx context.Context, userID string, in ProfileInput) (*Profile, error)
	DeleteMine(ctx context.Context, userID string) error
	Preview(ctx context.Context, profileID string) (*ProfileDetails, error)
	Search(ctx context.Context, search string) ([]ProfileSearchItem, error)
	ListArchived(ctx context.Context, search string) ([]ProfileListItem, error)
	Archive(ctx context.Context, profileID string) error
	Restore(ctx context.Context, profileID string) error
	DeletePermanently(ctx context.Context, profileID string) error
	UploadImage(ctx context.Context, actor Actor, profileID, filename string, data []byte) (*Profile, error)
}
