package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-cv-backend/internal/domain"
	"go-cv-backend/pkg/apperror"
	"go-cv-backend/pkg/htmlsanitize"
	"go-cv-backend/pkg/imaging"
	"go-cv-backend/pkg/logger"
	"go-cv-backend/pkg/security"
	"go-cv-backend/pkg/security/antivirus"
)

// ActionGate caps expensive per-user actions. *security.ActionLimiter satisfies it.
type ActionGate interface {
	Allow(ctx context.Context, subject string) (bool, error)
}

type profileUsecase struct {
	profileRepo domain.ProfileRepository
	userRepo    domain.UserRepository
	store       domain.ObjectStore
	uploads     ActionGate
	scanner     antivirus.Scanner
}

type ProfileOption func(*profileUsecase)

// WithImageScanner makes uploads pass a malware scan before they are stored.
func WithImageScanner(s antivirus.Scanner) ProfileOption {
	return func(u *profileUsecase) { u.scanner = s }
}

func NewProfileUsecase(profileRepo domain.ProfileRepository, userRepo domain.UserRepository, store domain.ObjectStore, uploads ActionGate, opts ...ProfileOption) domain.ProfileUsecase {
	u := &profileUsecase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		store:       store,
		uploads:     uploads,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *profileUsecase) Create(ctx context.Context, userID string, in domain.ProfileInput) (*domain.Profile, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	existing, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("Un profil existe déjà pour cet utilisateur")
	}

	p := &domain.Profile{
		UserID:              userID,
		CVLanguage:          domain.CVLanguageFR,
		Formations:          domain.DefaultFormations(),
		FormationsEn:        domain.DefaultFormations(),
		ExpSignificatives:   []domain.ExpSignificative{},
		ExpSignificativesEn: []domain.ExpSignificative{},
	}
	if err := applyProfileInput(p, in); err != nil {
		return nil, err
	}
	if err := u.profileRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// applyProfileInput copies the provided fields onto p. Absent fields are left untouched;
// an empty skill list clears that skill set.
func applyProfileInput(p *domain.Profile, in domain.ProfileInput) error {
	if in.CVLanguage != nil {
		if !in.CVLanguage.Valid() {
			return domain.NewValidationError("Langue du CV invalide")
		}
		p.CVLanguage = *in.CVLanguage
	}
	if in.Description != nil {
		desc := htmlsanitize.Sanitize(strings.TrimSpace(*in.Description))
		p.Description = domain.CleanOptional(&desc)
	}
	if in.ExperienceYears != nil {
		if *in.ExperienceYears < 0 {
			return domain.NewValidationError("Les années d'expérience doivent être positives")
		}
		years := *in.ExperienceYears
		p.ExperienceYears = &years
	}
	if in.PosteID != nil {
		p.PosteID = domain.CleanOptional(in.PosteID)
	}
	if in.GradeID != nil {
		p.GradeID = domain.CleanOptional(in.GradeID)
	}
	if in.MetierID != nil {
		p.MetierID = domain.CleanOptional(in.MetierID)
	}
	if in.Langues != nil {
		p.Langues = *in.Langues
	}
	if in.Formations != nil {
		p.Formations = in.Formations
	}
	if in.FormationsEn != nil {
		p.FormationsEn = in.FormationsEn
	}
	if in.ExpSignificatives != nil {
		p.ExpSignificatives = in.ExpSignificatives
	}
	if in.ExpSignificativesEn != nil {
		p.ExpSignificativesEn = in.ExpSignificativesEn
	}
	if in.Competences != nil {
		p.Competences = in.Competences
	}
	if in.ExpertiseMetiers != nil {
		p.ExpertiseMetiers = in.ExpertiseMetiers
	}
	if in.ExpertiseTechniques != nil {
		p.ExpertiseTechniques = in.ExpertiseTechniques
	}
	if in.ExpertiseLogicielles != nil {
		p.ExpertiseLogicielles = in.ExpertiseLogicielles
	}
	return nil
}

func (u *profileUsecase) GetMine(ctx context.Context, userID string) (*domain.ProfileDetails, error) {
	p, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.profileRepo.GetDetails(ctx, p.ID)
}

func (u *profileUsecase) UpdateMine(ctx context.Context, userID string, in domain.ProfileInput) (*domain.Profile, error) {
	p, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := applyProfileInput(p, in); err != nil {
		return nil, err
	}
	if err := u.profileRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *profileUsecase) DeleteMine(ctx context.Context, userID string) error {
	return u.profileRepo.DeleteByUserID(ctx, userID)
}

func (u *profileUsecase) Preview(ctx context.Context, profileID string) (*domain.ProfileDetails, error) {
	return u.profileRepo.GetDetails(ctx, profileID)
}

func (u *profileUsecase) Search(ctx context.Context, search string) ([]domain.ProfileSearchItem, error) {
	return u.profileRepo.SearchByName(ctx, search)
}

func (u *profileUsecase) ListArchived(ctx context.Context, search string) ([]domain.ProfileListItem, error) {
	return u.profileRepo.ListArchived(ctx, search)
}

// Archive only moves an active owner to archived; any other state reports not found.
func (u *profileUsecase) Archive(ctx context.Context, profileID string) error {
	return u.userRepo.TransitionByProfileID(ctx, profileID, domain.StatusActive, domain.StatusArchived)
}

func (u *profileUsecase) Restore(ctx context.Context, profileID string) error {
	return u.userRepo.TransitionByProfileID(ctx, profileID, domain.StatusArchived, domain.StatusActive)
}

// DeletePermanently removes the owning account; the profile and its links cascade.
func (u *profileUsecase) DeletePermanently(ctx context.Context, profileID string) error {
	return u.userRepo.DeleteByProfileID(ctx, profileID)
}

func avatarKey(profileID string) string {
	return fmt.Sprintf("profiles/%s/avatar.png", profileID)
}

func (u *profileUsecase) UploadImage(ctx context.Context, actor domain.Actor, profileID, filename string, data []byte) (*domain.Profile, error) {
	if u.store == nil || !u.store.Enabled() {
		return nil, domain.ErrStorageDisabled
	}
	p, err := u.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && p.UserID != actor.ID {
		return nil, apperror.Forbidden("Vous ne pouvez modifier que votre propre profil")
	}
	if u.uploads != nil {
		allowed, err := u.uploads.Allow(ctx, actor.ID)
		if err != nil {
			logger.Log.Warn("upload limiter unavailable", "error", err)
		}
		if !allowed && err == nil {
			return nil, apperror.TooManyRequests("Trop de téléversements, réessayez plus tard")
		}
	}

	if err := security.ValidateImage(filename, data); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	if err := antivirus.Check(ctx, u.scanner, data); err != nil {
		if errors.Is(err, antivirus.ErrInfected) {
			logger.Log.Warn("infected upload rejected", "profile_id", p.ID, "user_id", actor.ID, "error", err)
			return nil, domain.NewValidationError("Fichier rejeté par l'antivirus")
		}
		logger.Log.Error("antivirus scan failed", "profile_id", p.ID, "error", err)
		return nil, apperror.Unavailable("Analyse antivirus indisponible")
	}
	thumb, err := imaging.FitPNG(data, imaging.AvatarSize)
	if err != nil {
		return nil, domain.NewValidationError("Image illisible")
	}

	key := avatarKey(p.ID)
	if err := u.store.Put(ctx, key, "image/png", thumb); err != nil {
		return nil, fmt.Errorf("store avatar: %w", err)
	}
	if err := u.profileRepo.SetImage(ctx, p.ID, key); err != nil {
		return nil, err
	}
	p.Images = &key
	return p, nil
}
