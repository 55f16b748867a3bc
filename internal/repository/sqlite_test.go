package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogsite/internal/database/dbtest"
	"blogsite/internal/models"
)

func newSQLiteRepository(t *testing.T) *Repository {
	return NewRepository(dbtest.New(t).DB)
}

func createAccount(t *testing.T, repo *Repository, username string) *models.Account {
	t.Helper()
	account := &models.Account{Username: username}
	require.NoError(t, repo.Account.Create(context.Background(), account, "password123"))
	return account
}

func createPost(t *testing.T, repo *Repository, author *models.Account, title string) *models.Post {
	t.Helper()
	post := &models.Post{AuthorID: author.AccountID, Title: title, Content: title + " content"}
	require.NoError(t, repo.Post.Create(context.Background(), post))
	return post
}

func TestSQLite_DuplicateUsername(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()
	first := createAccount(t, repo, "alice")

	err := repo.Account.Create(ctx, &models.Account{Username: "alice"}, "other-password")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	stored, err := repo.Account.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.AccountID, stored.AccountID)
	assert.Equal(t, first.PasswordHash, stored.PasswordHash)
	assert.False(t, stored.IsAdmin)
}

func TestSQLite_UniqueViolationDetected(t *testing.T) {
	db := dbtest.New(t)
	insert := `INSERT INTO accounts (account_id, username, password_hash, created_at) VALUES (?, 'same', 'x', CURRENT_TIMESTAMP)`

	_, err := db.Exec(insert, "id-1")
	require.NoError(t, err)
	_, err = db.Exec(insert, "id-2")

	assert.True(t, isUniqueViolation(err))
	assert.False(t, isForeignKeyViolation(err))
}

func TestSQLite_VerifyPassword(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()
	alice := createAccount(t, repo, "alice")

	account, err := repo.Account.VerifyPassword(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, alice.AccountID, account.AccountID)

	_, err = repo.Account.VerifyPassword(ctx, "alice", "password124")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSQLite_PostsNewestFirst(t *testing.T) {
	repo := newSQLiteRepository(t)
	alice := createAccount(t, repo, "alice")
	createPost(t, repo, alice, "A")
	createPost(t, repo, alice, "B")

	posts, err := repo.Post.List(context.Background())
	require.NoError(t, err)

	titles := make([]string, 0, len(posts))
	for _, p := range posts {
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"B", "A"}, titles)
}

func TestSQLite_PostRoundTrip(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()
	alice := createAccount(t, repo, "alice")

	first := createPost(t, repo, alice, "First")
	second := createPost(t, repo, alice, "Second")

	fetched, err := repo.Post.GetByID(ctx, first.PostID)
	require.NoError(t, err)
	assert.Equal(t, "First", fetched.Title)
	assert.Equal(t, "First content", fetched.Content)
	assert.Equal(t, alice.AccountID, fetched.AuthorID)
	assert.Equal(t, "alice", fetched.AuthorName)
	assert.True(t, first.CreatedAt.Equal(fetched.CreatedAt))
	assert.False(t, second.CreatedAt.Before(first.CreatedAt))
}

func TestSQLite_PostUpdateKeepsOwnerAndCreation(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()
	alice := createAccount(t, repo, "alice")
	bob := createAccount(t, repo, "bob")
	post := createPost(t, repo, alice, "Original")

	// an attempt to smuggle a new author through Update is ignored
	err := repo.Post.Update(ctx, &models.Post{PostID: post.PostID, AuthorID: bob.AccountID, Title: "Edited", Content: "new"})
	require.NoError(t, err)

	fetched, err := repo.Post.GetByID(ctx, post.PostID)
	require.NoError(t, err)
	assert.Equal(t, "Edited", fetched.Title)
	assert.Equal(t, alice.AccountID, fetched.AuthorID)
	assert.True(t, post.CreatedAt.Equal(fetched.CreatedAt))
}

func TestSQLite_PostWithUnknownAuthor(t *testing.T) {
	repo := newSQLiteRepository(t)

	err := repo.Post.Create(context.Background(), &models.Post{AuthorID: "ghost", Title: "T", Content: "C"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_DeleteAccountCascadesPosts(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()
	alice := createAccount(t, repo, "alice")
	bob := createAccount(t, repo, "bob")
	alicePost := createPost(t, repo, alice, "alice-1")
	createPost(t, repo, alice, "alice-2")
	bobPost := createPost(t, repo, bob, "bob-1")

	removed, err := repo.Account.Delete(ctx, alice.AccountID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, err = repo.Account.GetByID(ctx, alice.AccountID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Post.GetByID(ctx, alicePost.PostID)
	assert.ErrorIs(t, err, ErrNotFound)

	posts, err := repo.Post.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, bobPost.PostID, posts[0].PostID)
}

func TestSQLite_UpdateUsernameCollisionLeavesRowIntact(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()
	alice := createAccount(t, repo, "alice")
	createAccount(t, repo, "bob")

	err := repo.Account.UpdateUsername(ctx, alice.AccountID, "bob")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	stored, err := repo.Account.GetByID(ctx, alice.AccountID)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Username)

	// keeping one's own name is not a collision
	assert.NoError(t, repo.Account.UpdateUsername(ctx, alice.AccountID, "alice"))
}

func TestSQLite_PromoteAndStats(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()
	alice := createAccount(t, repo, "alice")
	createPost(t, repo, alice, "A")

	require.NoError(t, repo.Account.Promote(ctx, "alice"))
	require.NoError(t, repo.Account.Promote(ctx, "alice"))

	stored, err := repo.Account.GetByID(ctx, alice.AccountID)
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin)

	accounts, err := repo.Account.List(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)

	stats, err := repo.Stats.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, &models.Stats{Accounts: 1, Posts: 1}, stats)
}
