package usecase

import (
	"context"
	"strings"

	"go-cv-backend/internal/domain"
	"go-cv-backend/pkg/export"
	"go-cv-backend/pkg/logger"
)

type collectionUsecase struct {
	repo domain.CollectionRepository
}

func NewCollectionUsecase(repo domain.CollectionRepository) domain.CollectionUsecase {
	return &collectionUsecase{repo: repo}
}

func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.NewValidationError("Le nom de la collection est obligatoire")
	}
	return name, nil
}

func (u *collectionUsecase) Create(ctx context.Context, actor domain.Actor, in domain.CollectionInput) (*domain.CollectionDetail, error) {
	name, err := requireName(in.Name)
	if err != nil {
		return nil, err
	}
	c := &domain.Collection{Name: name}
	if actor.ID != "" {
		creator := actor.ID
		c.CreatorID = &creator
	}
	if err := u.repo.Create(ctx, c, in.CollectionRelations); err != nil {
		return nil, err
	}
	return &domain.CollectionDetail{Collection: *c, Relations: in.CollectionRelations}, nil
}

func (u *collectionUsecase) Get(ctx context.Context, id string, populate bool) (*domain.CollectionDetail, error) {
	detail, err := u.repo.FindByID(ctx, id, populate)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, domain.ErrNotFound
	}
	return detail, nil
}

func (u *collectionUsecase) GetByIDs(ctx context.Context, ids []string) ([]domain.CollectionSummary, error) {
	ids = compactIDs(ids)
	if len(ids) == 0 {
		return nil, domain.NewValidationError("Aucun identifiant de collection fourni")
	}
	return u.repo.FindByIDs(ctx, ids)
}

// List returns every match when Limit <= 0; otherwise one page with its pagination block.
func (u *collectionUsecase) List(ctx context.Context, f domain.CollectionFilter) (*domain.CollectionPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 0 {
		f.Limit = 0
	}
	rows, total, err := u.repo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	page := &domain.CollectionPage{Collections: rows}
	if page.Collections == nil {
		page.Collections = []domain.CollectionSummary{}
	}
	if f.Limit > 0 {
		p := domain.NewPagination(total, f.Page, f.Limit)
		page.Pagination = &p
	}
	return page, nil
}

func (u *collectionUsecase) Update(ctx context.Context, id string, in domain.CollectionInput) (*domain.CollectionDetail, error) {
	name, err := requireName(in.Name)
	if err != nil {
		return nil, err
	}
	if err := u.repo.Update(ctx, id, name, in.CollectionRelations); err != nil {
		return nil, err
	}
	return u.Get(ctx, id, false)
}

func (u *collectionUsecase) Delete(ctx context.Context, id string) error {
	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// Clone fails with a duplicate-key error when a concurrent clone took the same name.
func (u *collectionUsecase) Clone(ctx context.Context, actor domain.Actor, in domain.CloneInput) (*domain.CollectionDetail, error) {
	base, err := requireName(in.BaseName)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.OriginalID) == "" {
		return nil, domain.NewValidationError("originalId est obligatoire")
	}
	return u.repo.Clone(ctx, in.OriginalID, base, actor.ID)
}

func (u *collectionUsecase) AddProfiles(ctx context.Context, collectionIDs, profileIDs []string) (int, error) {
	collectionIDs = compactIDs(collectionIDs)
	profileIDs = compactIDs(profileIDs)
	if len(collectionIDs) == 0 || len(profileIDs) == 0 {
		return 0, domain.NewValidationError("Collections et profils sont obligatoires")
	}
	added, err := u.repo.AddProfiles(ctx, collectionIDs, profileIDs)
	if err != nil {
		return 0, err
	}
	logger.Log.Info("profiles attached to collections",
		"collections", len(collectionIDs), "profiles", len(profileIDs), "added", added)
	return added, nil
}

// ExportMembers renders the populated member list as an XLSX workbook.
func (u *collectionUsecase) ExportMembers(ctx context.Context, id string) ([]byte, string, error) {
	detail, err := u.Get(ctx, id, true)
	if err != nil {
		return nil, "", err
	}
	rows := make([]export.MemberRow, len(detail.Members))
	for i, m := range detail.Members {
		rows[i] = export.MemberRow{
			Nom:    m.User.Nom,
			Prenom: m.User.Prenom,
			Email:  m.User.Email,
			Grade:  valueOf(m.Grade),
			Metier: valueOf(m.Metier),
			Poste:  valueOf(m.Poste),
		}
	}
	data, err := export.MembersWorkbook(detail.Name, rows)
	if err != nil {
		return nil, "", err
	}
	return data, exportFileName(detail.Name), nil
}

func exportFileName(name string) string {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`/\:*?"<>|`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if clean == "" {
		clean = "collection"
	}
	return clean + ".xlsx"
}

// compactIDs trims ids and drops blanks and repeats, keeping first-seen order.
func compactIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func valueOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
