package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"

	"songsync/internal/models"
	"songsync/internal/services"
)

// MockCatalogService is a mock implementation of CatalogService for testing
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) GetServiceName() string {
	return models.ServiceSpotify
}

func (m *MockCatalogService) Lookup(ctx context.Context, service, refType, id string) (*services.EmbedInfo, error) {
	args := m.Called(ctx, service, refType, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.EmbedInfo), args.Error(1)
}

// MockSaveRepository is a mock implementation of SaveRepository for testing
type MockSaveRepository struct {
	mock.Mock
}

func (m *MockSaveRepository) FindByUser(ctx context.Context, userID string) (*models.Save, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Save), args.Error(1)
}

func (m *MockSaveRepository) Write(ctx context.Context, userID string, songs []*models.SongRef) error {
	args := m.Called(ctx, userID, songs)
	return args.Error(0)
}

func (m *MockSaveRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockIdentityService is a mock implementation of IdentityService for testing
type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) VerifyToken(ctx context.Context, bearer string) (string, error) {
	args := m.Called(ctx, bearer)
	return args.String(0), args.Error(1)
}

// MockOAuthService is a mock implementation of OAuthService for testing
type MockOAuthService struct {
	mock.Mock
}

func (m *MockOAuthService) AuthCodeURL() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockOAuthService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

func (m *MockOAuthService) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

func (m *MockOAuthService) VerifyState(state string) error {
	args := m.Called(state)
	return args.Error(0)
}

// Helper functions for setting up mock expectations

// ExpectCatalogLookup sets up expectation for a catalog Lookup
func ExpectCatalogLookup(m *MockCatalogService, refType, id string, info *services.EmbedInfo, err error) {
	m.On("Lookup", mock.Anything, models.ServiceSpotify, refType, id).Return(info, err)
}

// ExpectFindByUser sets up expectation for FindByUser
func ExpectFindByUser(m *MockSaveRepository, userID string, save *models.Save, err error) {
	m.On("FindByUser", mock.Anything, userID).Return(save, err)
}

// ExpectVerifyToken sets up expectation for VerifyToken
func ExpectVerifyToken(m *MockIdentityService, bearer, userID string, err error) {
	m.On("VerifyToken", mock.Anything, bearer).Return(userID, err)
}
