package service

import (
	"context"

	"blogsite/internal/models"
	"blogsite/internal/repository"
)

type StatsService interface {
	Counts(ctx context.Context) (*models.Stats, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) Counts(ctx context.Context) (*models.Stats, error) {
	return s.statsRepo.Counts(ctx)
}
