package services

import (
	"context"

	"github.com/ekurt/campusreg/internal/app/models/dto"
	"github.com/ekurt/campusreg/internal/pkg/cache"
)

// Cache keys for the dashboard aggregates
const (
	dashboardStatsKey  = "dashboard_stats"
	dashboardChartsKey = "dashboard_charts"
)

// DashboardService computes cross-entity totals and enrollment breakdowns.
// Results are held in a TTL cache that every College/Program/Student
// mutation invalidates, so totals never drift after a write.
type DashboardService struct {
	collegeRepo CollegeStore
	programRepo ProgramStore
	studentRepo StudentStore
	cache       *cache.TTLCache
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(collegeRepo CollegeStore, programRepo ProgramStore, studentRepo StudentStore, statsCache *cache.TTLCache) *DashboardService {
	return &DashboardService{
		collegeRepo: collegeRepo,
		programRepo: programRepo,
		studentRepo: studentRepo,
		cache:       statsCache,
	}
}

// Invalidate drops the cached aggregates. Called by the entity services
// after every create/update/delete.
func (s *DashboardService) Invalidate() {
	s.cache.Invalidate()
}

// GetStats returns the per-entity totals
func (s *DashboardService) GetStats(ctx context.Context) (*dto.DashboardStats, error) {
	if cached, ok := s.cache.Get(dashboardStatsKey); ok {
		return cached.(*dto.DashboardStats), nil
	}

	students, err := s.studentRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	programs, err := s.programRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	colleges, err := s.collegeRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := &dto.DashboardStats{
		TotalStudents: students,
		TotalPrograms: programs,
		TotalColleges: colleges,
	}
	s.cache.Set(dashboardStatsKey, stats)
	return stats, nil
}

// GetCharts returns the students-by-program and students-by-college
// breakdowns. Both tolerate empty tables and include parents with zero
// children.
func (s *DashboardService) GetCharts(ctx context.Context) (*dto.DashboardCharts, error) {
	if cached, ok := s.cache.Get(dashboardChartsKey); ok {
		return cached.(*dto.DashboardCharts), nil
	}

	enrollment, err := s.programRepo.GetEnrollmentStats(ctx)
	if err != nil {
		return nil, err
	}

	collegeStats, err := s.collegeRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	charts := &dto.DashboardCharts{
		StudentsByProgram: make([]dto.ProgramChartEntry, 0, len(enrollment)),
		StudentsByCollege: make([]dto.CollegeChartEntry, 0, len(collegeStats)),
	}

	for _, e := range enrollment {
		charts.StudentsByProgram = append(charts.StudentsByProgram, dto.ProgramChartEntry{
			ProgramCode:  e.Code,
			ProgramName:  e.Name,
			StudentCount: e.Enrollment,
		})
	}
	for _, c := range collegeStats {
		charts.StudentsByCollege = append(charts.StudentsByCollege, dto.CollegeChartEntry{
			CollegeCode:  c.Code,
			CollegeName:  c.Name,
			StudentCount: c.StudentCount,
		})
	}

	s.cache.Set(dashboardChartsKey, charts)
	return charts, nil
}
