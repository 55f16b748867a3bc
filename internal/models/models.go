package models

import (
	"time"
)

type Account struct {
	AccountID    string    `json:"accountId" db:"account_id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsAdmin      bool      `json:"isAdmin" db:"is_admin"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type Post struct {
	PostID     string    `json:"postId" db:"post_id"`
	AuthorID   string    `json:"authorId" db:"author_id"`
	AuthorName string    `json:"authorName" db:"author_name"`
	Title      string    `json:"title" db:"title"`
	Content    string    `json:"content" db:"content"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// Stats is the row count snapshot reported by the health endpoint.
type Stats struct {
	Accounts int `json:"accounts" db:"accounts"`
	Posts    int `json:"posts" db:"posts"`
}
