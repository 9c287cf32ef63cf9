package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-cv-backend/internal/domain"
	"go-cv-backend/internal/usecase"
)

var (
	filterOwner = domain.Actor{ID: "u1", Type: domain.UserTypeUser}
	filterAdmin = domain.Actor{ID: "a1", Type: domain.UserTypeAdmin}
)

func TestFilterCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject invalid JSON", func(t *testing.T) {
		repo := new(MockFilterRepo)
		_, err := usecase.NewFilterUsecase(repo, nil).Create(ctx, filterOwner,
			domain.SavedFilterInput{Name: "Seniors", Data: json.RawMessage(`{"grade":`)})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Should store the caller as creator", func(t *testing.T) {
		repo := new(MockFilterRepo)
		repo.On("Create", ctx, mock.MatchedBy(func(f *domain.SavedFilter) bool {
			return f.CreatorID == "u1" && f.Name == "Seniors"
		})).Return(nil)

		f, err := usecase.NewFilterUsecase(repo, nil).Create(ctx, filterOwner,
			domain.SavedFilterInput{Name: " Seniors ", Data: json.RawMessage(`{"grade":["g1"]}`)})
		require.NoError(t, err)
		assert.JSONEq(t, `{"grade":["g1"]}`, string(f.Data))
	})
}

func TestFilterList_ScopedToCreator(t *testing.T) {
	ctx := context.Background()
	repo := new(MockFilterRepo)
	repo.On("FindAll", ctx, "u1").Return(nil, nil)
	repo.On("FindAll", ctx, "").Return([]domain.SavedFilter{{ID: "f1"}, {ID: "f2"}}, nil)
	uc := usecase.NewFilterUsecase(repo, nil)

	mine, err := uc.List(ctx, filterOwner)
	require.NoError(t, err)
	assert.NotNil(t, mine)
	assert.Empty(t, mine)

	all, err := uc.List(ctx, filterAdmin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestFilterOwnership(t *testing.T) {
	ctx := context.Background()
	repo := new(MockFilterRepo)
	repo.On("FindByID", ctx, "f1").Return(&domain.SavedFilter{ID: "f1", CreatorID: "other"}, nil)
	repo.On("Delete", ctx, "f1").Return(nil)
	uc := usecase.NewFilterUsecase(repo, nil)

	_, err := uc.Get(ctx, filterOwner, "f1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, filterOwner, "f1"), domain.ErrNotFound)
	repo.AssertNotCalled(t, "Delete", ctx, "f1")

	assert.NoError(t, uc.Delete(ctx, filterAdmin, "f1"))
}

func TestFilterApply(t *testing.T) {
	ctx := context.Background()
	profiles := new(MockProfileRepo)
	q := domain.ProfileQuery{Poste: "Développeur", Offset: 2}
	profiles.On("Query", ctx, q).Return(nil, int64(41), nil)

	res, err := usecase.NewFilterUsecase(nil, profiles).Apply(ctx, domain.ProfileQuery{Poste: " Développeur ", Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(41), res.CountDocs)
	assert.NotNil(t, res.Profiles)

	_, err = usecase.NewFilterUsecase(nil, profiles).Apply(ctx, domain.ProfileQuery{Offset: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
