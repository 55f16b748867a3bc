package service

import (
	"blogsite/internal/repository"
)

type Service struct {
	Auth    AuthService
	Account AccountService
	Post    PostService
	Stats   StatsService
}

func NewService(rep *repository.Repository) *Service {
	return &Service{
		Auth:    NewAuthService(rep.Account),
		Account: NewAccountService(rep.Account),
		Post:    NewPostService(rep.Post),
		Stats:   NewStatsService(rep.Stats),
	}
}
