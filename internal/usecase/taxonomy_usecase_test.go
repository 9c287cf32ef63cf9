package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-cv-backend/internal/domain"
	"go-cv-backend/internal/usecase"
)

func TestTaxonomyCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject an unknown kind", func(t *testing.T) {
		_, err := usecase.NewTaxonomyUsecase(new(MockTaxonomyRepo)).
			Create(ctx, "department", domain.TaxonomyInput{Name: "a", NameEn: "b"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Should require both names", func(t *testing.T) {
		_, err := usecase.NewTaxonomyUsecase(new(MockTaxonomyRepo)).
			Create(ctx, domain.KindGrade, domain.TaxonomyInput{Name: "Senior", NameEn: "  "})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Should trim names", func(t *testing.T) {
		repo := new(MockTaxonomyRepo)
		repo.On("Create", ctx, domain.KindCompetence, mock.MatchedBy(func(tx *domain.Taxonomy) bool {
			return tx.Name == "Go" && tx.NameEn == "Go"
		})).Return(nil)

		_, err := usecase.NewTaxonomyUsecase(repo).
			Create(ctx, domain.KindCompetence, domain.TaxonomyInput{Name: " Go ", NameEn: "Go "})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestTaxonomyUpdate_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTaxonomyRepo)
	repo.On("FindByID", ctx, domain.KindMetier, "m1").Return(nil, domain.ErrNotFound)

	_, err := usecase.NewTaxonomyUsecase(repo).
		Update(ctx, domain.KindMetier, "m1", domain.TaxonomyInput{Name: "Audit", NameEn: "Audit"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaxonomyGradeNames(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTaxonomyRepo)
	repo.On("Names", ctx, domain.KindGrade).Return([]domain.NamePair{{Name: "Junior", NameEn: "Junior"}}, nil)

	names, err := usecase.NewTaxonomyUsecase(repo).GradeNames(ctx)
	require.NoError(t, err)
	assert.Len(t, names, 1)
}

func TestPosteUpdate_ReplacesRelations(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPosteRepo)
	repo.On("FindByID", ctx, "po1").Return(&domain.Poste{
		Taxonomy:       domain.Taxonomy{ID: "po1", Name: "Dev", NameEn: "Dev"},
		PosteRelations: domain.PosteRelations{Competences: []string{"c1", "c2"}},
	}, nil)
	repo.On("UpdateWithRelations", ctx, mock.MatchedBy(func(p *domain.Poste) bool {
		return p.Name == "Développeur" && len(p.Competences) == 1 && p.Competences[0] == "c3"
	})).Return(nil)

	p, err := usecase.NewPosteUsecase(repo).Update(ctx, "po1", domain.PosteInput{
		TaxonomyInput:  domain.TaxonomyInput{Name: "Développeur", NameEn: "Developer"},
		PosteRelations: domain.PosteRelations{Competences: []string{"c3"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Developer", p.NameEn)
	repo.AssertExpectations(t)
}
