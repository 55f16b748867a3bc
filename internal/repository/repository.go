package repository

import (
	"context"

	"blogsite/internal/models"

	"github.com/jmoiron/sqlx"
)

type AccountRepository interface {
	Create(ctx context.Context, account *models.Account, password string) error
	GetByID(ctx context.Context, accountID string) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
	VerifyPassword(ctx context.Context, username, password string) (*models.Account, error)
	UpdateUsername(ctx context.Context, accountID, username string) error
	Promote(ctx context.Context, username string) error
	Delete(ctx context.Context, accountID string) (int64, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID string) error
}

type StatsRepository interface {
	Counts(ctx context.Context) (*models.Stats, error)
}

type Repository struct {
	Account AccountRepository
	Post    PostRepository
	Stats   StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Account: NewAccountRepository(db),
		Post:    NewPostRepository(db),
		Stats:   NewStatsRepository(db),
	}
}
