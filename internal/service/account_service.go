package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"blogsite/internal/guard"
	"blogsite/internal/models"
	"blogsite/internal/repository"
)

type AccountService interface {
	List(ctx context.Context, identity *models.Account) ([]models.Account, error)
	Get(ctx context.Context, identity *models.Account, accountID string) (*models.Account, error)
	UpdateUsername(ctx context.Context, identity *models.Account, req repository.UpdateAccountRequest) error
	UpdateOwnUsername(ctx context.Context, identity *models.Account, username string) error
	Delete(ctx context.Context, identity *models.Account, accountID string) (int64, error)
	Promote(ctx context.Context, username string) error
}

type accountService struct {
	accountRepo repository.AccountRepository
}

func NewAccountService(accountRepo repository.AccountRepository) AccountService {
	return &accountService{accountRepo: accountRepo}
}

func (s *accountService) List(ctx context.Context, identity *models.Account) ([]models.Account, error) {
	if err := guard.Admin(identity).Err(); err != nil {
		return nil, err
	}

	return s.accountRepo.List(ctx)
}

func (s *accountService) Get(ctx context.Context, identity *models.Account, accountID string) (*models.Account, error) {
	if err := guard.Admin(identity).Err(); err != nil {
		return nil, err
	}

	return s.accountRepo.GetByID(ctx, accountID)
}

func (s *accountService) UpdateUsername(ctx context.Context, identity *models.Account, req repository.UpdateAccountRequest) error {
	if err := guard.Admin(identity).Err(); err != nil {
		return err
	}

	username, err := normalizeUsername(req.Username)
	if err != nil {
		return err
	}

	if err := s.accountRepo.UpdateUsername(ctx, req.AccountID, username); err != nil {
		return err
	}

	log.Printf("account %s renamed to %q by %s", req.AccountID, username, identity.Username)
	return nil
}

func (s *accountService) UpdateOwnUsername(ctx context.Context, identity *models.Account, username string) error {
	if err := guard.Authenticated(identity).Err(); err != nil {
		return err
	}

	username, err := normalizeUsername(username)
	if err != nil {
		return err
	}

	if err := s.accountRepo.UpdateUsername(ctx, identity.AccountID, username); err != nil {
		return err
	}

	identity.Username = username
	return nil
}

func (s *accountService) Delete(ctx context.Context, identity *models.Account, accountID string) (int64, error) {
	if err := guard.Admin(identity).Err(); err != nil {
		return 0, err
	}

	removed, err := s.accountRepo.Delete(ctx, accountID)
	if err != nil {
		return 0, err
	}

	log.Printf("account %s deleted by %s, %d posts removed", accountID, identity.Username, removed)
	return removed, nil
}

// Promote is reachable only from the offline blogctl command.
func (s *accountService) Promote(ctx context.Context, username string) error {
	if err := s.accountRepo.Promote(ctx, strings.TrimSpace(username)); err != nil {
		return fmt.Errorf("error promoting %q: %w", username, err)
	}

	return nil
}
