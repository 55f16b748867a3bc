package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blogsite/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const postSelect = `
	SELECT p.post_id, p.author_id, a.username AS author_name,
	       p.title, p.content, p.created_at, p.updated_at
	FROM posts p
	JOIN accounts a ON a.account_id = p.author_id
`

// newest first; UUIDv7 ids grow with creation time so they settle ties
const postOrder = ` ORDER BY p.created_at DESC, p.post_id DESC`

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,max=100"`
	Content string `json:"content" validate:"required,notblank"`
}

type UpdatePostRequest struct {
	PostID  string `json:"postId" validate:"required"`
	Title   string `json:"title" validate:"required,max=100"`
	Content string `json:"content" validate:"required,notblank"`
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("error generating post id: %w", err)
		}
		post.PostID = id.String()
	}

	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	query := r.DB.Rebind(`
		INSERT INTO posts (post_id, author_id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)

	_, err := r.DB.ExecContext(ctx, query, post.PostID, post.AuthorID, post.Title, post.Content, post.CreatedAt, post.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("author %s: %w", post.AuthorID, ErrNotFound)
		}
		return fmt.Errorf("error creating post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := r.DB.Rebind(postSelect + ` WHERE p.post_id = ?`)

	var post models.Post
	err := r.DB.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("error getting post: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) List(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}

	err := r.DB.SelectContext(ctx, &posts, postSelect+postOrder)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	posts := []models.Post{}

	query := r.DB.Rebind(postSelect + ` WHERE p.author_id = ?` + postOrder)

	err := r.DB.SelectContext(ctx, &posts, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("error listing posts of %s: %w", authorID, err)
	}

	return posts, nil
}

// Update writes title and content only; the author and creation time of a
// post never change.
func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := r.DB.Rebind(`
		UPDATE posts SET
			title = ?,
			content = ?,
			updated_at = ?
		WHERE post_id = ?
	`)

	updatedAt := time.Now().UTC()

	result, err := r.DB.ExecContext(ctx, query, post.Title, post.Content, updatedAt, post.PostID)
	if err != nil {
		return fmt.Errorf("error updating post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", post.PostID, ErrNotFound)
	}

	post.UpdatedAt = updatedAt
	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	query := r.DB.Rebind(`DELETE FROM posts WHERE post_id = ?`)

	result, err := r.DB.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", postID, ErrNotFound)
	}

	return nil
}
