package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"go-cv-backend/internal/domain"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Activate(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

func (m *MockUserRepo) TransitionByProfileID(ctx context.Context, profileID string, from, to domain.UserStatus) error {
	return m.Called(ctx, profileID, from, to).Error(0)
}

func (m *MockUserRepo) DeleteByProfileID(ctx context.Context, profileID string) error {
	return m.Called(ctx, profileID).Error(0)
}

func (m *MockUserRepo) List(ctx context.Context, search string) ([]domain.User, error) {
	args := m.Called(ctx, search)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) GetDetails(ctx context.Context, id string) (*domain.ProfileDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfileDetails), args.Error(1)
}

func (m *MockProfileRepo) DetailsByEmails(ctx context.Context, emails []string) ([]domain.ProfileDetails, error) {
	args := m.Called(ctx, emails)
	details, _ := args.Get(0).([]domain.ProfileDetails)
	return details, args.Error(1)
}

func (m *MockProfileRepo) DeleteByUserID(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockProfileRepo) SetImage(ctx context.Context, id, key string) error {
	return m.Called(ctx, id, key).Error(0)
}

func (m *MockProfileRepo) SearchByName(ctx context.Context, search string) ([]domain.ProfileSearchItem, error) {
	args := m.Called(ctx, search)
	items, _ := args.Get(0).([]domain.ProfileSearchItem)
	return items, args.Error(1)
}

func (m *MockProfileRepo) ListArchived(ctx context.Context, search string) ([]domain.ProfileListItem, error) {
	args := m.Called(ctx, search)
	items, _ := args.Get(0).([]domain.ProfileListItem)
	return items, args.Error(1)
}

func (m *MockProfileRepo) Query(ctx context.Context, q domain.ProfileQuery) ([]domain.ProfileListItem, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]domain.ProfileListItem)
	return items, args.Get(1).(int64), args.Error(2)
}

type MockCollectionRepo struct {
	mock.Mock
}

func (m *MockCollectionRepo) Create(ctx context.Context, c *domain.Collection, rel domain.CollectionRelations) error {
	return m.Called(ctx, c, rel).Error(0)
}

func (m *MockCollectionRepo) FindByID(ctx context.Context, id string, populate bool) (*domain.CollectionDetail, error) {
	args := m.Called(ctx, id, populate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollectionDetail), args.Error(1)
}

func (m *MockCollectionRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.CollectionSummary, error) {
	args := m.Called(ctx, ids)
	rows, _ := args.Get(0).([]domain.CollectionSummary)
	return rows, args.Error(1)
}

func (m *MockCollectionRepo) FindAll(ctx context.Context, f domain.CollectionFilter) ([]domain.CollectionSummary, int64, error) {
	args := m.Called(ctx, f)
	rows, _ := args.Get(0).([]domain.CollectionSummary)
	return rows, args.Get(1).(int64), args.Error(2)
}

func (m *MockCollectionRepo) Update(ctx context.Context, id, name string, rel domain.CollectionRelations) error {
	return m.Called(ctx, id, name, rel).Error(0)
}

func (m *MockCollectionRepo) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCollectionRepo) Clone(ctx context.Context, originalID, baseName, creatorID string) (*domain.CollectionDetail, error) {
	args := m.Called(ctx, originalID, baseName, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollectionDetail), args.Error(1)
}

func (m *MockCollectionRepo) AddProfiles(ctx context.Context, collectionIDs, profileIDs []string) (int, error) {
	args := m.Called(ctx, collectionIDs, profileIDs)
	return args.Int(0), args.Error(1)
}

type MockFilterRepo struct {
	mock.Mock
}

func (m *MockFilterRepo) Create(ctx context.Context, f *domain.SavedFilter) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFilterRepo) FindAll(ctx context.Context, creatorID string) ([]domain.SavedFilter, error) {
	args := m.Called(ctx, creatorID)
	filters, _ := args.Get(0).([]domain.SavedFilter)
	return filters, args.Error(1)
}

func (m *MockFilterRepo) FindByID(ctx context.Context, id string) (*domain.SavedFilter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedFilter), args.Error(1)
}

func (m *MockFilterRepo) Update(ctx context.Context, f *domain.SavedFilter) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFilterRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockTaxonomyRepo struct {
	mock.Mock
}

func (m *MockTaxonomyRepo) Create(ctx context.Context, kind domain.TaxonomyKind, t *domain.Taxonomy) error {
	return m.Called(ctx, kind, t).Error(0)
}

func (m *MockTaxonomyRepo) FindAll(ctx context.Context, kind domain.TaxonomyKind, search string) ([]domain.Taxonomy, error) {
	args := m.Called(ctx, kind, search)
	items, _ := args.Get(0).([]domain.Taxonomy)
	return items, args.Error(1)
}

func (m *MockTaxonomyRepo) FindByID(ctx context.Context, kind domain.TaxonomyKind, id string) (*domain.Taxonomy, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Taxonomy), args.Error(1)
}

func (m *MockTaxonomyRepo) Update(ctx context.Context, kind domain.TaxonomyKind, t *domain.Taxonomy) error {
	return m.Called(ctx, kind, t).Error(0)
}

func (m *MockTaxonomyRepo) Delete(ctx context.Context, kind domain.TaxonomyKind, id string) error {
	return m.Called(ctx, kind, id).Error(0)
}

func (m *MockTaxonomyRepo) Names(ctx context.Context, kind domain.TaxonomyKind) ([]domain.NamePair, error) {
	args := m.Called(ctx, kind)
	pairs, _ := args.Get(0).([]domain.NamePair)
	return pairs, args.Error(1)
}

type MockPosteRepo struct {
	mock.Mock
}

func (m *MockPosteRepo) CreateWithRelations(ctx context.Context, p *domain.Poste) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPosteRepo) UpdateWithRelations(ctx context.Context, p *domain.Poste) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPosteRepo) FindByID(ctx context.Context, id string) (*domain.Poste, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Poste), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendActivation(ctx context.Context, to, prenom, confirmURL string) error {
	return m.Called(ctx, to, prenom, confirmURL).Error(0)
}

func (m *MockMailer) SendUpdateReminder(ctx context.Context, r domain.Recipient) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockMailer) SendWithAttachment(ctx context.Context, to []string, subject, htmlBody string, att domain.Attachment) error {
	return m.Called(ctx, to, subject, htmlBody, att).Error(0)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Enabled() bool {
	return m.Called().Bool(0)
}

func (m *MockStore) Put(ctx context.Context, key, contentType string, data []byte) error {
	return m.Called(ctx, key, contentType, data).Error(0)
}

type MockTokens struct {
	mock.Mock
}

func (m *MockTokens) Issue(userID, userType string) (string, time.Time, error) {
	args := m.Called(userID, userType)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

type MockGuard struct {
	mock.Mock
}

func (m *MockGuard) IsBlocked(ctx context.Context, email, ip string) (bool, error) {
	args := m.Called(ctx, email, ip)
	return args.Bool(0), args.Error(1)
}

func (m *MockGuard) RecordFailure(ctx context.Context, email, ip, reason string) (bool, error) {
	args := m.Called(ctx, email, ip, reason)
	return args.Bool(0), args.Error(1)
}

func (m *MockGuard) Clear(ctx context.Context, email, ip string) error {
	return m.Called(ctx, email, ip).Error(0)
}

type MockGate struct {
	mock.Mock
}

func (m *MockGate) Allow(ctx context.Context, subject string) (bool, error) {
	args := m.Called(ctx, subject)
	return args.Bool(0), args.Error(1)
}
