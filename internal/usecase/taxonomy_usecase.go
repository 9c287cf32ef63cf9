package usecase

import (
	"context"
	"strings"

	"go-cv-backend/internal/domain"
)

type taxonomyUsecase struct {
	repo domain.TaxonomyRepository
}

func NewTaxonomyUsecase(repo domain.TaxonomyRepository) domain.TaxonomyUsecase {
	return &taxonomyUsecase{repo: repo}
}

func checkKind(kind domain.TaxonomyKind) error {
	if !kind.Valid() {
		return domain.NewValidationError("Référentiel inconnu: " + string(kind))
	}
	return nil
}

func cleanNames(in domain.TaxonomyInput) (domain.TaxonomyInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.NameEn = strings.TrimSpace(in.NameEn)
	if in.Name == "" || in.NameEn == "" {
		return in, domain.NewValidationError("Les champs name et name_en sont obligatoires")
	}
	return in, nil
}

func (u *taxonomyUsecase) Create(ctx context.Context, kind domain.TaxonomyKind, in domain.TaxonomyInput) (*domain.Taxonomy, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	in, err := cleanNames(in)
	if err != nil {
		return nil, err
	}
	t := &domain.Taxonomy{Name: in.Name, NameEn: in.NameEn}
	if err := u.repo.Create(ctx, kind, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (u *taxonomyUsecase) List(ctx context.Context, kind domain.TaxonomyKind, search string) ([]domain.Taxonomy, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	return u.repo.FindAll(ctx, kind, search)
}

func (u *taxonomyUsecase) Get(ctx context.Context, kind domain.TaxonomyKind, id string) (*domain.Taxonomy, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	return u.repo.FindByID(ctx, kind, id)
}

func (u *taxonomyUsecase) Update(ctx context.Context, kind domain.TaxonomyKind, id string, in domain.TaxonomyInput) (*domain.Taxonomy, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	in, err := cleanNames(in)
	if err != nil {
		return nil, err
	}
	t, err := u.repo.FindByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	t.Name, t.NameEn = in.Name, in.NameEn
	if err := u.repo.Update(ctx, kind, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete retires or removes the entry depending on the kind.
func (u *taxonomyUsecase) Delete(ctx context.Context, kind domain.TaxonomyKind, id string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	return u.repo.Delete(ctx, kind, id)
}

func (u *taxonomyUsecase) GradeNames(ctx context.Context) ([]domain.NamePair, error) {
	return u.repo.Names(ctx, domain.KindGrade)
}

type posteUsecase struct {
	repo domain.PosteRepository
}

func NewPosteUsecase(repo domain.PosteRepository) domain.PosteUsecase {
	return &posteUsecase{repo: repo}
}

func (u *posteUsecase) Create(ctx context.Context, in domain.PosteInput) (*domain.Poste, error) {
	names, err := cleanNames(in.TaxonomyInput)
	if err != nil {
		return nil, err
	}
	p := &domain.Poste{
		Taxonomy:       domain.Taxonomy{Name: names.Name, NameEn: names.NameEn},
		PosteRelations: in.PosteRelations,
	}
	if err := u.repo.CreateWithRelations(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update renames the poste and replaces its four skill sets.
func (u *posteUsecase) Update(ctx context.Context, id string, in domain.PosteInput) (*domain.Poste, error) {
	names, err := cleanNames(in.TaxonomyInput)
	if err != nil {
		return nil, err
	}
	p, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name, p.NameEn = names.Name, names.NameEn
	p.PosteRelations = in.PosteRelations
	if err := u.repo.UpdateWithRelations(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *posteUsecase) Get(ctx context.Context, id string) (*domain.Poste, error) {
	return u.repo.FindByID(ctx, id)
}
