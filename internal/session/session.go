// Package session binds an authenticated account to a browser session and
// resolves it back on later requests.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"blogsite/internal/config"
	"blogsite/internal/database"
	"blogsite/internal/models"
	"blogsite/internal/repository"

	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
)

const (
	accountKey = "account_id"
	flashKey   = "flash"
	nonceKey   = "csrf_nonce"
)

// Accounts resolves the account bound to a session.
type Accounts interface {
	GetByID(ctx context.Context, accountID string) (*models.Account, error)
}

type Authority struct {
	manager  *scs.SessionManager
	accounts Accounts
	csrf     csrfSigner
}

// NewStore picks the scs store matching the database driver. Drivers without
// a store keep sessions in memory.
func NewStore(db *database.DB) scs.Store {
	switch db.Driver {
	case database.DriverPostgres:
		return postgresstore.New(db.DB.DB)
	case database.DriverSQLite:
		return sqlite3store.New(db.DB.DB)
	default:
		return memstore.New()
	}
}

func New(cfg *config.Config, store scs.Store, accounts Accounts) *Authority {
	manager := scs.New()
	manager.Store = store
	manager.Lifetime = cfg.Session.Lifetime
	manager.IdleTimeout = cfg.Session.IdleTimeout
	manager.Cookie.Name = cfg.Session.CookieName
	manager.Cookie.HttpOnly = true
	manager.Cookie.SameSite = http.SameSiteLaxMode
	manager.Cookie.Secure = cfg.Session.CookieSecure
	manager.Cookie.Path = "/"

	return &Authority{
		manager:  manager,
		accounts: accounts,
		csrf: csrfSigner{
			key: []byte(cfg.SecretKey),
			ttl: cfg.CSRFTokenDuration,
		},
	}
}

// LoadAndSave loads the session for every request and writes it back with
// the response.
func (a *Authority) LoadAndSave(next http.Handler) http.Handler {
	return a.manager.LoadAndSave(next)
}

// Start binds account to the current session. The session token is renewed
// so an id planted before login is worthless afterwards.
func (a *Authority) Start(ctx context.Context, account *models.Account) error {
	if a.manager.GetString(ctx, accountKey) == account.AccountID {
		return nil
	}

	if err := a.manager.RenewToken(ctx); err != nil {
		return fmt.Errorf("error renewing session token: %w", err)
	}

	a.manager.Put(ctx, accountKey, account.AccountID)
	a.manager.Remove(ctx, nonceKey)
	return nil
}

func (a *Authority) End(ctx context.Context) error {
	if err := a.manager.Destroy(ctx); err != nil {
		return fmt.Errorf("error destroying session: %w", err)
	}
	return nil
}

// Current returns the account bound to the session, or nil for an anonymous
// caller. A binding to an account that no longer exists is dropped.
func (a *Authority) Current(ctx context.Context) (*models.Account, error) {
	accountID := a.manager.GetString(ctx, accountKey)
	if accountID == "" {
		return nil, nil
	}

	account, err := a.accounts.GetByID(ctx, accountID)
	if errors.Is(err, repository.ErrNotFound) {
		a.manager.Remove(ctx, accountKey)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error resolving session account: %w", err)
	}

	return account, nil
}

func (a *Authority) Flash(ctx context.Context, message string) {
	a.manager.Put(ctx, flashKey, message)
}

func (a *Authority) PopFlash(ctx context.Context) string {
	return a.manager.PopString(ctx, flashKey)
}
