package service

import (
	"context"
	"time"

	"github.com/emsworks/employment-service/internal/domain"
	"github.com/emsworks/employment-service/internal/repository"
	apperrors "github.com/emsworks/employment-service/pkg/util/errorutil"
)

// DashboardStats holds the counters shown to the caller. Managers receive Org; linked employees receive Self.
type DashboardStats struct {
	Org  *domain.OrgStats
	Self *domain.EmployeeStats
}

// DashboardService computes role-shaped dashboard counters.
type DashboardService struct {
	stats repository.StatsRepository
	loc   *time.Location
	now   func() time.Time
}

// NewDashboardService constructs the service.
func NewDashboardService(stats repository.StatsRepository, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{stats: stats, loc: loc, now: time.Now}
}

// Stats returns organisation counters for managers and personal counters for anyone with an employee record.
func (s *DashboardService) Stats(ctx context.Context, actor Actor) (*DashboardStats, error) {
	today := domain.DateOf(s.now(), s.loc)
	result := &DashboardStats{}

	if actor.IsManager() {
		org, err := s.stats.OrgStats(ctx, today)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		result.Org = &org
	}

	if actor.Employee != nil {
		first, last := domain.MonthBounds(today)
		self, err := s.stats.EmployeeStats(ctx, actor.Employee.ID, first, last)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		result.Self = &self
	} else if !actor.IsManager() {
		_, err := requireEmployee(actor)
		return nil, err
	}
	return result, nil
}
