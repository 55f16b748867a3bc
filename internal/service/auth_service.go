package service

import (
	"context"
	"fmt"
	"strings"

	"blogsite/internal/models"
	"blogsite/internal/repository"
)

// AuthService is the credential store: it creates accounts with hashed
// passwords and checks presented passwords. It never touches the session.
type AuthService interface {
	Register(ctx context.Context, req repository.CreateAccountRequest) (*models.Account, error)
	Verify(ctx context.Context, username, password string) (*models.Account, error)
}

type authService struct {
	accountRepo repository.AccountRepository
}

func NewAuthService(accountRepo repository.AccountRepository) AuthService {
	return &authService{accountRepo: accountRepo}
}

func (s *authService) Register(ctx context.Context, req repository.CreateAccountRequest) (*models.Account, error) {
	username, err := normalizeUsername(req.Username)
	if err != nil {
		return nil, err
	}

	account := &models.Account{Username: username}

	if err := s.accountRepo.Create(ctx, account, req.Password); err != nil {
		return nil, fmt.Errorf("error registering account: %w", err)
	}

	return account, nil
}

// Verify returns repository.ErrInvalidCredentials for an unknown username and
// for a wrong password alike.
func (s *authService) Verify(ctx context.Context, username, password string) (*models.Account, error) {
	account, err := s.accountRepo.VerifyPassword(ctx, strings.TrimSpace(username), password)
	if err != nil {
		return nil, err
	}

	return account, nil
}
