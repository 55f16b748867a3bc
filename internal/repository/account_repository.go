package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"blogsite/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

const accountColumns = `account_id, username, password_hash, is_admin, created_at`

type accountRepository struct {
	db *sqlx.DB
}

type CreateAccountRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateAccountRequest struct {
	AccountID string `json:"accountId"`
	Username  string `json:"username"`
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// timingHash returns a fixed bcrypt hash that is compared against when the
// username does not exist, so both failure paths cost one bcrypt comparison.
func timingHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	return dummyHash
}

func NewAccountRepository(db *sqlx.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account, password string) error {
	// create password hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return ErrPasswordTooLong
		}
		return fmt.Errorf("error hashing password: %w", err)
	}

	if account.AccountID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("error generating account id: %w", err)
		}
		account.AccountID = id.String()
	}

	account.PasswordHash = string(hashedPassword)
	account.IsAdmin = false
	account.CreatedAt = time.Now().UTC()

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var taken int
		err := tx.GetContext(ctx, &taken, tx.Rebind(`SELECT COUNT(*) FROM accounts WHERE username = ?`), account.Username)
		if err != nil {
			return fmt.Errorf("error checking username: %w", err)
		}
		if taken > 0 {
			return ErrUsernameTaken
		}

		query := tx.Rebind(`
			INSERT INTO accounts (account_id, username, password_hash, is_admin, created_at)
			VALUES (?, ?, ?, FALSE, ?)
		`)

		_, err = tx.ExecContext(ctx, query, account.AccountID, account.Username, account.PasswordHash, account.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrUsernameTaken
			}
			return fmt.Errorf("error creating account: %w", err)
		}

		return nil
	})
}

func (r *accountRepository) GetByID(ctx context.Context, accountID string) (*models.Account, error) {
	var account models.Account

	query := r.db.Rebind(`SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ?`)

	err := r.db.GetContext(ctx, &account, query, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account %s: %w", accountID, ErrNotFound)
		}
		return nil, fmt.Errorf("error getting account: %w", err)
	}

	return &account, nil
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account

	query := r.db.Rebind(`SELECT ` + accountColumns + ` FROM accounts WHERE username = ?`)

	err := r.db.GetContext(ctx, &account, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account %q: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("error getting account by username: %w", err)
	}

	return &account, nil
}

func (r *accountRepository) List(ctx context.Context) ([]models.Account, error) {
	accounts := []models.Account{}

	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at, account_id`

	if err := r.db.SelectContext(ctx, &accounts, query); err != nil {
		return nil, fmt.Errorf("error listing accounts: %w", err)
	}

	return accounts, nil
}

func (r *accountRepository) VerifyPassword(ctx context.Context, username, password string) (*models.Account, error) {
	account, err := r.GetByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(timingHash(), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	// checking that the password hash is the same
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return account, nil
}

func (r *accountRepository) UpdateUsername(ctx context.Context, accountID, username string) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var exists int
		err := tx.GetContext(ctx, &exists, tx.Rebind(`SELECT COUNT(*) FROM accounts WHERE account_id = ?`), accountID)
		if err != nil {
			return fmt.Errorf("error checking account: %w", err)
		}
		if exists == 0 {
			return fmt.Errorf("account %s: %w", accountID, ErrNotFound)
		}

		var taken int
		err = tx.GetContext(ctx, &taken,
			tx.Rebind(`SELECT COUNT(*) FROM accounts WHERE username = ? AND account_id <> ?`),
			username, accountID)
		if err != nil {
			return fmt.Errorf("error checking username: %w", err)
		}
		if taken > 0 {
			return ErrUsernameTaken
		}

		_, err = tx.ExecContext(ctx, tx.Rebind(`UPDATE accounts SET username = ? WHERE account_id = ?`), username, accountID)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrUsernameTaken
			}
			return fmt.Errorf("error updating account: %w", err)
		}

		return nil
	})
}

// Promote grants administrator rights. Nothing revokes them.
func (r *accountRepository) Promote(ctx context.Context, username string) error {
	query := r.db.Rebind(`UPDATE accounts SET is_admin = TRUE WHERE username = ?`)

	result, err := r.db.ExecContext(ctx, query, username)
	if err != nil {
		return fmt.Errorf("error promoting account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("account %q: %w", username, ErrNotFound)
	}

	return nil
}

// Delete removes the account together with every post it owns and reports
// how many posts went with it.
func (r *accountRepository) Delete(ctx context.Context, accountID string) (int64, error) {
	var removedPosts int64

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM posts WHERE author_id = ?`), accountID)
		if err != nil {
			return fmt.Errorf("error deleting account posts: %w", err)
		}

		removedPosts, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("error checking deleted rows: %w", err)
		}

		result, err = tx.ExecContext(ctx, tx.Rebind(`DELETE FROM accounts WHERE account_id = ?`), accountID)
		if err != nil {
			return fmt.Errorf("error deleting account: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("error checking deleted rows: %w", err)
		}

		if rowsAffected == 0 {
			return fmt.Errorf("account %s: %w", accountID, ErrNotFound)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return removedPosts, nil
}
