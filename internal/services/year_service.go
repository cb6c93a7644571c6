package services

import (
	"context"
	"errors"
	"fmt"

	"registru-backend/internal/models"
	"registru-backend/internal/repositories"
)

type YearService struct {
	YearRepo *repositories.RegistryYearRepository
}

func NewYearService(yearRepo *repositories.RegistryYearRepository) *YearService {
	return &YearService{YearRepo: yearRepo}
}

func (s *YearService) CreateYear(ctx context.Context, req *models.CreateYearRequest) (*models.RegistryYear, error) {
	if req.Year < 1990 || req.Year > 2100 {
		return nil, fmt.Errorf("year %d out of range", req.Year)
	}

	year := &models.RegistryYear{Year: req.Year}
	if err := s.YearRepo.Create(ctx, year); err != nil {
		if errors.Is(err, repositories.ErrYearExists) {
			return nil, fmt.Errorf("registry year %d already exists", req.Year)
		}
		return nil, err
	}
	return year, nil
}

func (s *YearService) ListYears(ctx context.Context) ([]*models.RegistryYear, error) {
	return s.YearRepo.ListWithCounts(ctx)
}

func (s *YearService) ActivateYear(ctx context.Context, id int) error {
	return s.YearRepo.Activate(ctx, id)
}

func (s *YearService) GetByYear(ctx context.Context, yearNumber int) (*models.RegistryYear, error) {
	return s.YearRepo.GetByYear(ctx, yearNumber)
}
