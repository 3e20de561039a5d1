package services

import (
	"fmt"
	"time"

	"staffdesk_backend/internal/models"
	"staffdesk_backend/internal/repositories"
)

const recentActivityLimit = 5

// DashboardService aggregates the summary numbers for the landing page.
type DashboardService interface {
	GetSummary() (*models.DashboardSummary, error)
}

type dashboardService struct {
	dashboardRepo repositories.DashboardRepository
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(dr repositories.DashboardRepository) DashboardService {
	return &dashboardService{dashboardRepo: dr}
}

func (s *dashboardService) GetSummary() (*models.DashboardSummary, error) {
	totalStaff, err := s.dashboardRepo.CountStaff()
	if err != nil {
		return nil, fmt.Errorf("failed to count staff: %w", err)
	}

	activeSchedules, err := s.dashboardRepo.CountActiveSchedules(time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to count active schedules: %w", err)
	}

	favouriteStaff, err := s.dashboardRepo.CountFavouriteStaff()
	if err != nil {
		return nil, fmt.Errorf("failed to count favourite staff: %w", err)
	}

	recent, err := s.dashboardRepo.GetRecentAssignments(recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent assignments: %w", err)
	}

	return &models.DashboardSummary{
		TotalStaff:      totalStaff,
		ActiveSchedules: activeSchedules,
		FavouriteStaff:  favouriteStaff,
		RecentActivity:  recent,
	}, nil
}
