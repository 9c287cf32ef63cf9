package v1

import (
	"context"

	"github.com/stretchr/testify/mock"

	"go-cv-backend/internal/domain"
)

type MockAuthUC struct{ mock.Mock }

func (m *MockAuthUC) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, in)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *MockAuthUC) ConfirmAccount(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

func (m *MockAuthUC) Login(ctx context.Context, in domain.LoginInput, clientIP string) (*domain.LoginResult, error) {
	args := m.Called(ctx, in, clientIP)
	r, _ := args.Get(0).(*domain.LoginResult)
	return r, args.Error(1)
}

func (m *MockAuthUC) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *MockAuthUC) ListUsers(ctx context.Context, search string) ([]domain.User, error) {
	args := m.Called(ctx, search)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}

type MockProfileUC struct{ mock.Mock }

func (m *MockProfileUC) Create(ctx context.Context, userID string, in domain.ProfileInput) (*domain.Profile, error) {
	args := m.Called(ctx, userID, in)
	p, _ := args.Get(0).(*domain.Profile)
	return p, args.Error(1)
}

func (m *MockProfileUC) GetMine(ctx context.Context, userID string) (*domain.ProfileDetails, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*domain.ProfileDetails)
	return p, args.Error(1)
}

func (m *MockProfileUC) UpdateMine(ctx context.Context, userID string, in domain.ProfileInput) (*domain.Profile, error) {
	args := m.Called(ctx, userID, in)
	p, _ := args.Get(0).(*domain.Profile)
	return p, args.Error(1)
}

func (m *MockProfileUC) DeleteMine(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockProfileUC) Preview(ctx context.Context, profileID string) (*domain.ProfileDetails, error) {
	args := m.Called(ctx, profileID)
	p, _ := args.Get(0).(*domain.ProfileDetails)
	return p, args.Error(1)
}

func (m *MockProfileUC) Search(ctx context.Context, search string) ([]domain.ProfileSearchItem, error) {
	args := m.Called(ctx, search)
	items, _ := args.Get(0).([]domain.ProfileSearchItem)
	return items, args.Error(1)
}

func (m *MockProfileUC) ListArchived(ctx context.Context, search string) ([]domain.ProfileListItem, error) {
	args := m.Called(ctx, search)
	items, _ := args.Get(0).([]domain.ProfileListItem)
	return items, args.Error(1)
}

func (m *MockProfileUC) Archive(ctx context.Context, profileID string) error {
	return m.Called(ctx, profileID).Error(0)
}

func (m *MockProfileUC) Restore(ctx context.Context, profileID string) error {
	return m.Called(ctx, profileID).Error(0)
}

func (m *MockProfileUC) DeletePermanently(ctx context.Context, profileID string) error {
	return m.Called(ctx, profileID).Error(0)
}

func (m *MockProfileUC) UploadImage(ctx context.Context, actor domain.Actor, profileID, filename string, data []byte) (*domain.Profile, error) {
	args := m.Called(ctx, actor, profileID, filename, data)
	p, _ := args.Get(0).(*domain.Profile)
	return p, args.Error(1)
}

type MockTaxonomyUC struct{ mock.Mock }

func (m *MockTaxonomyUC) Create(ctx context.Context, kind domain.TaxonomyKind, in domain.TaxonomyInput) (*domain.Taxonomy, error) {
	args := m.Called(ctx, kind, in)
	t, _ := args.Get(0).(*domain.Taxonomy)
	return t, args.Error(1)
}

func (m *MockTaxonomyUC) List(ctx context.Context, kind domain.TaxonomyKind, search string) ([]domain.Taxonomy, error) {
	args := m.Called(ctx, kind, search)
	items, _ := args.Get(0).([]domain.Taxonomy)
	return items, args.Error(1)
}

func (m *MockTaxonomyUC) Get(ctx context.Context, kind domain.TaxonomyKind, id string) (*domain.Taxonomy, error) {
	args := m.Called(ctx, kind, id)
	t, _ := args.Get(0).(*domain.Taxonomy)
	return t, args.Error(1)
}

func (m *MockTaxonomyUC) Update(ctx context.Context, kind domain.TaxonomyKind, id string, in domain.TaxonomyInput) (*domain.Taxonomy, error) {
	args := m.Called(ctx, kind, id, in)
	t, _ := args.Get(0).(*domain.Taxonomy)
	return t, args.Error(1)
}

func (m *MockTaxonomyUC) Delete(ctx context.Context, kind domain.TaxonomyKind, id string) error {
	return m.Called(ctx, kind, id).Error(0)
}

func (m *MockTaxonomyUC) GradeNames(ctx context.Context) ([]domain.NamePair, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]domain.NamePair)
	return names, args.Error(1)
}

type MockPosteUC struct{ mock.Mock }

func (m *MockPosteUC) Create(ctx context.Context, in domain.PosteInput) (*domain.Poste, error) {
	args := m.Called(ctx, in)
	p, _ := args.Get(0).(*domain.Poste)
	return p, args.Error(1)
}

func (m *MockPosteUC) Update(ctx context.Context, id string, in domain.PosteInput) (*domain.Poste, error) {
	args := m.Called(ctx, id, in)
	p, _ := args.Get(0).(*domain.Poste)
	return p, args.Error(1)
}

func (m *MockPosteUC) Get(ctx context.Context, id string) (*domain.Poste, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Poste)
	return p, args.Error(1)
}

type MockCollectionUC struct{ mock.Mock }

func (m *MockCollectionUC) Create(ctx context.Context, actor domain.Actor, in domain.CollectionInput) (*domain.CollectionDetail, error) {
	args := m.Called(ctx, actor, in)
	d, _ := args.Get(0).(*domain.CollectionDetail)
	return d, args.Error(1)
}

func (m *MockCollectionUC) Get(ctx context.Context, id string, populate bool) (*domain.CollectionDetail, error) {
	args := m.Called(ctx, id, populate)
	d, _ := args.Get(0).(*domain.CollectionDetail)
	return d, args.Error(1)
}

func (m *MockCollectionUC) GetByIDs(ctx context.Context, ids []string) ([]domain.CollectionSummary, error) {
	args := m.Called(ctx, ids)
	rows, _ := args.Get(0).([]domain.CollectionSummary)
	return rows, args.Error(1)
}

func (m *MockCollectionUC) List(ctx context.Context, f domain.CollectionFilter) (*domain.CollectionPage, error) {
	args := m.Called(ctx, f)
	p, _ := args.Get(0).(*domain.CollectionPage)
	return p, args.Error(1)
}

func (m *MockCollectionUC) Update(ctx context.Context, id string, in domain.CollectionInput) (*domain.CollectionDetail, error) {
	args := m.Called(ctx, id, in)
	d, _ := args.Get(0).(*domain.CollectionDetail)
	return d, args.Error(1)
}

func (m *MockCollectionUC) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCollectionUC) Clone(ctx context.Context, actor domain.Actor, in domain.CloneInput) (*domain.CollectionDetail, error) {
	args := m.Called(ctx, actor, in)
	d, _ := args.Get(0).(*domain.CollectionDetail)
	return d, args.Error(1)
}

func (m *MockCollectionUC) AddProfiles(ctx context.Context, collectionIDs, profileIDs []string) (int, error) {
	args := m.Called(ctx, collectionIDs, profileIDs)
	return args.Int(0), args.Error(1)
}

func (m *MockCollectionUC) ExportMembers(ctx context.Context, id string) ([]byte, string, error) {
	args := m.Called(ctx, id)
	data, _ := args.Get(0).([]byte)
	return data, args.String(1), args.Error(2)
}

type MockFilterUC struct{ mock.Mock }

func (m *MockFilterUC) Create(ctx context.Context, actor domain.Actor, in domain.SavedFilterInput) (*domain.SavedFilter, error) {
	args := m.Called(ctx, actor, in)
	f, _ := args.Get(0).(*domain.SavedFilter)
	return f, args.Error(1)
}

func (m *MockFilterUC) List(ctx context.Context, actor domain.Actor) ([]domain.SavedFilter, error) {
	args := m.Called(ctx, actor)
	fs, _ := args.Get(0).([]domain.SavedFilter)
	return fs, args.Error(1)
}

func (m *MockFilterUC) Get(ctx context.Context, actor domain.Actor, id string) (*domain.SavedFilter, error) {
	args := m.Called(ctx, actor, id)
	f, _ := args.Get(0).(*domain.SavedFilter)
	return f, args.Error(1)
}

func (m *MockFilterUC) Update(ctx context.Context, actor domain.Actor, id string, in domain.SavedFilterInput) (*domain.SavedFilter, error) {
	args := m.Called(ctx, actor, id, in)
	f, _ := args.Get(0).(*domain.SavedFilter)
	return f, args.Error(1)
}

func (m *MockFilterUC) Delete(ctx context.Context, actor domain.Actor, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockFilterUC) Apply(ctx context.Context, q domain.ProfileQuery) (*domain.ProfileQueryResult, error) {
	args := m.Called(ctx, q)
	r, _ := args.Get(0).(*domain.ProfileQueryResult)
	return r, args.Error(1)
}

type MockNotificationUC struct{ mock.Mock }

func (m *MockNotificationUC) SendCVs(ctx context.Context, in domain.SendCVsInput) (int, error) {
	args := m.Called(ctx, in)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationUC) NotifyUpdate(ctx context.Context, r domain.Recipient) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockNotificationUC) NotifyCollection(ctx context.Context, users []domain.Recipient) error {
	return m.Called(ctx, users).Error(0)
}

type stubHealth struct {
	deps map[string]string
	ok   bool
}

func (s stubHealth) Check(context.Context) (map[string]string, bool) { return s.deps, s.ok }
