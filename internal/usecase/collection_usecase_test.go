package usecase_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"go-cv-backend/internal/domain"
	"go-cv-backend/internal/usecase"
)

func strPtr(s string) *string { return &s }

func TestCollectionCreate(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{ID: "admin-1", Type: domain.UserTypeAdmin}

	t.Run("Should reject a blank name before touching storage", func(t *testing.T) {
		repo := new(MockCollectionRepo)
		_, err := usecase.NewCollectionUsecase(repo).Create(ctx, admin, domain.CollectionInput{Name: "   "})
		assert.ErrorIs(t, err, domain.ErrValidation)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should record the caller as creator and echo the relation sets", func(t *testing.T) {
		repo := new(MockCollectionRepo)
		rel := domain.CollectionRelations{ProfileIDs: []string{"p1"}, ActorsToUse: []string{"u2"}}
		repo.On("Create", ctx, mock.MatchedBy(func(c *domain.Collection) bool {
			return c.Name == "Team A" && c.CreatorID != nil && *c.CreatorID == "admin-1"
		}), rel).Return(nil)

		detail, err := usecase.NewCollectionUsecase(repo).
			Create(ctx, admin, domain.CollectionInput{Name: " Team A ", CollectionRelations: rel})
		require.NoError(t, err)
		assert.Equal(t, rel, detail.Relations)
		assert.False(t, detail.Populated)
	})

	t.Run("Should surface a duplicate name", func(t *testing.T) {
		repo := new(MockCollectionRepo)
		repo.On("Create", ctx, mock.Anything, mock.Anything).
			Return(fmt.Errorf("%w: uq_collections_name", domain.ErrDuplicateKey))

		_, err := usecase.NewCollectionUsecase(repo).Create(ctx, admin, domain.CollectionInput{Name: "Team A"})
		assert.ErrorIs(t, err, domain.ErrDuplicateKey)
	})
}

func TestCollectionGet_AbsentIsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCollectionRepo)
	repo.On("FindByID", ctx, "missing", true).Return(nil, nil)

	_, err := usecase.NewCollectionUsecase(repo).Get(ctx, "missing", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCollectionList_Pagination(t *testing.T) {
	ctx := context.Background()

	t.Run("25 rows with page size 10 gives three pages", func(t *testing.T) {
		repo := new(MockCollectionRepo)
		f := domain.CollectionFilter{Page: 3, Limit: 10}
		rows := make([]domain.CollectionSummary, 5)
		repo.On("FindAll", ctx, f).Return(rows, int64(25), nil)

		page, err := usecase.NewCollectionUsecase(repo).List(ctx, f)
		require.NoError(t, err)
		require.NotNil(t, page.Pagination)
		assert.Equal(t, 3, page.Pagination.TotalPages)
		assert.Equal(t, 3, page.Pagination.CurrentPage)
		assert.False(t, page.Pagination.HasNext())
		assert.Len(t, page.Collections, 5)
	})

	t.Run("A zero limit returns everything without pagination", func(t *testing.T) {
		repo := new(MockCollectionRepo)
		repo.On("FindAll", ctx, domain.CollectionFilter{Page: 1}).Return(nil, int64(0), nil)

		page, err := usecase.NewCollectionUsecase(repo).List(ctx, domain.CollectionFilter{})
		require.NoError(t, err)
		assert.Nil(t, page.Pagination)
		assert.NotNil(t, page.Collections)
	})
}

func TestCollectionUpdate_ReturnsReplacedSets(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCollectionRepo)
	rel := domain.CollectionRelations{ProfileIDs: []string{"P2", "P3"}}
	repo.On("Update", ctx, "c1", "Team A", rel).Return(nil)
	repo.On("FindByID", ctx, "c1", false).Return(&domain.CollectionDetail{
		Collection: domain.Collection{ID: "c1", Name: "Team A"},
		Relations:  rel,
	}, nil)

	detail, err := usecase.NewCollectionUsecase(repo).
		Update(ctx, "c1", domain.CollectionInput{Name: "Team A", CollectionRelations: rel})
	require.NoError(t, err)
	assert.Equal(t, []string{"P2", "P3"}, detail.Relations.ProfileIDs)
}

func TestCollectionDelete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCollectionRepo)
	repo.On("Delete", ctx, "c1").Return(true, nil)
	repo.On("Delete", ctx, "gone").Return(false, nil)
	uc := usecase.NewCollectionUsecase(repo)

	assert.NoError(t, uc.Delete(ctx, "c1"))
	assert.ErrorIs(t, uc.Delete(ctx, "gone"), domain.ErrNotFound)
}

func TestCollectionClone(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{ID: "admin-1", Type: domain.UserTypeAdmin}

	t.Run("Should pass the trimmed base name and caller", func(t *testing.T) {
		repo := new(MockCollectionRepo)
		repo.On("Clone", ctx, "c1", "Team A", "admin-1").Return(&domain.CollectionDetail{
			Collection: domain.Collection{ID: "c2", Name: "Team A -copie(4)"},
		}, nil)

		clone, err := usecase.NewCollectionUsecase(repo).
			Clone(ctx, admin, domain.CloneInput{OriginalID: "c1", BaseName: " Team A "})
		require.NoError(t, err)
		assert.Equal(t, "Team A -copie(4)", clone.Name)
	})

	t.Run("Should fail hard when a concurrent clone took the name", func(t *testing.T) {
		repo := new(MockCollectionRepo)
		repo.On("Clone", ctx, "c1", "Team A", "admin-1").Return(nil, domain.ErrDuplicateKey)

		_, err := usecase.NewCollectionUsecase(repo).
			Clone(ctx, admin, domain.CloneInput{OriginalID: "c1", BaseName: "Team A"})
		assert.ErrorIs(t, err, domain.ErrDuplicateKey)
		repo.AssertNumberOfCalls(t, "Clone", 1)
	})
}

func TestCollectionAddProfiles_CompactsIDs(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCollectionRepo)
	repo.On("AddProfiles", ctx, []string{"c1", "c2"}, []string{"p1"}).Return(2, nil)
	uc := usecase.NewCollectionUsecase(repo)

	added, err := uc.AddProfiles(ctx, []string{"c1", " c2", "", "c1"}, []string{"p1", "p1"})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	_, err = uc.AddProfiles(ctx, []string{"c1"}, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCollectionExportMembers(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCollectionRepo)
	repo.On("FindByID", ctx, "c1", true).Return(&domain.CollectionDetail{
		Collection: domain.Collection{ID: "c1", Name: "Team A"},
		Populated:  true,
		Members: []domain.CollectionMember{{
			ProfileID: "p1",
			User:      domain.UserSummary{ID: "u1", Prenom: "Jean", Nom: "Dupont", Email: "jean@example.com"},
			Grade:     strPtr("Senior"),
		}},
	}, nil)

	data, name, err := usecase.NewCollectionUsecase(repo).ExportMembers(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Team A.xlsx", name)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	nom, err := f.GetCellValue("Team A", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Dupont", nom)
	grade, _ := f.GetCellValue("Team A", "D2")
	assert.Equal(t, "Senior", grade)
}
