package service

import (
	"context"

	"blogsite/internal/guard"
	"blogsite/internal/models"
	"blogsite/internal/repository"
)

type PostService interface {
	List(ctx context.Context) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	Get(ctx context.Context, postID string) (*models.Post, error)
	Create(ctx context.Context, identity *models.Account, req repository.CreatePostRequest) (*models.Post, error)
	GetForEdit(ctx context.Context, identity *models.Account, postID string) (*models.Post, error)
	Update(ctx context.Context, identity *models.Account, req repository.UpdatePostRequest) (*models.Post, error)
	Delete(ctx context.Context, identity *models.Account, postID string) error
}

type postService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

func (p *postService) List(ctx context.Context) ([]models.Post, error) {
	return p.postRepo.List(ctx)
}

func (p *postService) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	return p.postRepo.ListByAuthor(ctx, authorID)
}

func (p *postService) Get(ctx context.Context, postID string) (*models.Post, error) {
	return p.postRepo.GetByID(ctx, postID)
}

func (p *postService) Create(ctx context.Context, identity *models.Account, req repository.CreatePostRequest) (*models.Post, error) {
	if err := guard.Authenticated(identity).Err(); err != nil {
		return nil, err
	}

	title, err := normalizePost(req.Title, req.Content)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID:   identity.AccountID,
		AuthorName: identity.Username,
		Title:      title,
		Content:    req.Content,
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// GetForEdit loads a post only for its owner or an administrator.
func (p *postService) GetForEdit(ctx context.Context, identity *models.Account, postID string) (*models.Post, error) {
	if err := guard.Authenticated(identity).Err(); err != nil {
		return nil, err
	}

	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := guard.OwnerOrAdmin(identity, post.AuthorID).Err(); err != nil {
		return nil, err
	}

	return post, nil
}

// Update and Delete check ownership in GetForEdit and write in a separate
// statement. author_id is written only by Create, so the owner checked is the
// owner at the write. A post deleted in between makes the write return
// ErrNotFound.
func (p *postService) Update(ctx context.Context, identity *models.Account, req repository.UpdatePostRequest) (*models.Post, error) {
	post, err := p.GetForEdit(ctx, identity, req.PostID)
	if err != nil {
		return nil, err
	}

	title, err := normalizePost(req.Title, req.Content)
	if err != nil {
		return nil, err
	}

	post.Title = title
	post.Content = req.Content

	if err := p.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) Delete(ctx context.Context, identity *models.Account, postID string) error {
	if _, err := p.GetForEdit(ctx, identity, postID); err != nil {
		return err
	}

	return p.postRepo.Delete(ctx, postID)
}
