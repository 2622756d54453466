package services

import (
	"context"

	"calibration-tracker/internal/lifecycle"
	"calibration-tracker/internal/repositories"
)

type DashboardServiceInterface interface {
	GetStats(ctx context.Context) (*lifecycle.Stats, error)
}

type DashboardService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	now           Clock
}

func NewDashboardService(equipmentRepo repositories.EquipmentRepositoryInterface, now Clock) DashboardServiceInterface {
	return &DashboardService{equipmentRepo: equipmentRepo, now: now}
}

func (s *DashboardService) GetStats(ctx context.Context) (*lifecycle.Stats, error) {
	equipment, err := s.equipmentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	stats := lifecycle.ComputeStats(equipment, s.now())
	return &stats, nil
}
