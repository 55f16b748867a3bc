package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"blogsite/internal/models"
	"blogsite/internal/repository"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req repository.CreateAccountRequest) (*models.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAuthService) Verify(ctx context.Context, username, password string) (*models.Account, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) List(ctx context.Context, identity *models.Account) ([]models.Account, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Account), args.Error(1)
}

func (m *MockAccountService) Get(ctx context.Context, identity *models.Account, accountID string) (*models.Account, error) {
	args := m.Called(ctx, identity, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountService) UpdateUsername(ctx context.Context, identity *models.Account, req repository.UpdateAccountRequest) error {
	args := m.Called(ctx, identity, req)
	return args.Error(0)
}

func (m *MockAccountService) UpdateOwnUsername(ctx context.Context, identity *models.Account, username string) error {
	args := m.Called(ctx, identity, username)
	return args.Error(0)
}

func (m *MockAccountService) Delete(ctx context.Context, identity *models.Account, accountID string) (int64, error) {
	args := m.Called(ctx, identity, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountService) Promote(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) List(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) Get(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Create(ctx context.Context, identity *models.Account, req repository.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) GetForEdit(ctx context.Context, identity *models.Account, postID string) (*models.Post, error) {
	args := m.Called(ctx, identity, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Update(ctx context.Context, identity *models.Account, req repository.UpdatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Delete(ctx context.Context, identity *models.Account, postID string) error {
	args := m.Called(ctx, identity, postID)
	return args.Error(0)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Counts(ctx context.Context) (*models.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stats), args.Error(1)
}

// accountTable backs the session authority in tests.
type accountTable map[string]*models.Account

func (t accountTable) GetByID(ctx context.Context, accountID string) (*models.Account, error) {
	if account, ok := t[accountID]; ok {
		return account, nil
	}
	return nil, repository.ErrNotFound
}
