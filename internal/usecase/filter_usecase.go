package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"go-cv-backend/internal/domain"
)

type filterUsecase struct {
	filterRepo  domain.SavedFilterRepository
	profileRepo domain.ProfileRepository
}

func NewFilterUsecase(filterRepo domain.SavedFilterRepository, profileRepo domain.ProfileRepository) domain.FilterUsecase {
	return &filterUsecase{filterRepo: filterRepo, profileRepo: profileRepo}
}

func cleanFilterInput(in domain.SavedFilterInput) (domain.SavedFilterInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, domain.NewValidationError("Le nom du filtre est obligatoire")
	}
	if len(in.Data) > 0 && !json.Valid(in.Data) {
		return in, domain.NewValidationError("filterData doit être un JSON valide")
	}
	return in, nil
}

func (u *filterUsecase) Create(ctx context.Context, actor domain.Actor, in domain.SavedFilterInput) (*domain.SavedFilter, error) {
	in, err := cleanFilterInput(in)
	if err != nil {
		return nil, err
	}
	f := &domain.SavedFilter{Name: in.Name, Data: in.Data, CreatorID: actor.ID}
	if err := u.filterRepo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// List returns the caller's filters; admins see every filter.
func (u *filterUsecase) List(ctx context.Context, actor domain.Actor) ([]domain.SavedFilter, error) {
	creator := actor.ID
	if actor.IsAdmin() {
		creator = ""
	}
	filters, err := u.filterRepo.FindAll(ctx, creator)
	if err != nil {
		return nil, err
	}
	if filters == nil {
		filters = []domain.SavedFilter{}
	}
	return filters, nil
}

// owned loads a filter the actor may see. Other users' filters read as not found.
func (u *filterUsecase) owned(ctx context.Context, actor domain.Actor, id string) (*domain.SavedFilter, error) {
	f, err := u.filterRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && f.CreatorID != actor.ID {
		return nil, domain.ErrNotFound
	}
	return f, nil
}

func (u *filterUsecase) Get(ctx context.Context, actor domain.Actor, id string) (*domain.SavedFilter, error) {
	return u.owned(ctx, actor, id)
}

func (u *filterUsecase) Update(ctx context.Context, actor domain.Actor, id string, in domain.SavedFilterInput) (*domain.SavedFilter, error) {
	in, err := cleanFilterInput(in)
	if err != nil {
		return nil, err
	}
	f, err := u.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	f.Name, f.Data = in.Name, in.Data
	if err := u.filterRepo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (u *filterUsecase) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if _, err := u.owned(ctx, actor, id); err != nil {
		return err
	}
	return u.filterRepo.Delete(ctx, id)
}

// Apply runs an ad-hoc profile query; Offset selects a page of ProfilePageSize rows.
func (u *filterUsecase) Apply(ctx context.Context, q domain.ProfileQuery) (*domain.ProfileQueryResult, error) {
	if q.Offset < 0 {
		return nil, domain.NewValidationError("offset doit être positif")
	}
	q.Poste = strings.TrimSpace(q.Poste)
	profiles, total, err := u.profileRepo.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = []domain.ProfileListItem{}
	}
	return &domain.ProfileQueryResult{Profiles: profiles, CountDocs: total}, nil
}
