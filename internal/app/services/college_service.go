package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ekurt/campusreg/internal/app/models"
	"github.com/ekurt/campusreg/internal/app/models/dto"
	"github.com/ekurt/campusreg/internal/pkg/apperrors"
	"github.com/ekurt/campusreg/internal/pkg/helpers"
	"github.com/ekurt/campusreg/internal/pkg/validation"
)

// CollegeService handles college-related operations
type CollegeService struct {
	collegeRepo CollegeStore
	programRepo ProgramStore
	dashboard   *DashboardService
}

// NewCollegeService creates a new college service
func NewCollegeService(collegeRepo CollegeStore, programRepo ProgramStore, dashboard *DashboardService) *CollegeService {
	return &CollegeService{
		collegeRepo: collegeRepo,
		programRepo: programRepo,
		dashboard:   dashboard,
	}
}

// validateCollege runs the field validators plus the live uniqueness check.
// currentCode is empty on create; on update the existing code is excluded
// from the duplicate check.
func (s *CollegeService) validateCollege(ctx context.Context, req *dto.CollegeRequest, currentCode string) error {
	errs := validation.ValidateCollegeFields(req)

	code := validation.NormalizeCode(req.Code)
	if code != "" && code != validation.NormalizeCode(currentCode) {
		exists, err := s.collegeRepo.Exists(ctx, code)
		if err != nil {
			return err
		}
		if exists {
			errs = append(errs, "College code already exists")
		}
	}

	if len(errs) > 0 {
		return apperrors.NewValidationError(errs)
	}
	return nil
}

// ListColleges retrieves a page of colleges. An empty page is a non-nil
// slice so the response envelope serializes items as [] rather than null.
func (s *CollegeService) ListColleges(ctx context.Context, params helpers.ListParams) ([]*models.College, int64, error) {
	colleges, total, err := s.collegeRepo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	if colleges == nil {
		colleges = []*models.College{}
	}
	return colleges, total, nil
}

// GetCollege retrieves a college with its programs, per-program student
// counts and the college-wide student total.
func (s *CollegeService) GetCollege(ctx context.Context, code string) (*dto.CollegeDetail, error) {
	college, err := s.collegeRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	programs, err := s.programRepo.GetByCollege(ctx, college.Code)
	if err != nil {
		return nil, err
	}

	detail := &dto.CollegeDetail{
		Code:     college.Code,
		Name:     college.Name,
		Programs: make([]dto.ProgramSummary, 0, len(programs)),
	}

	for _, p := range programs {
		count, err := s.programRepo.GetStudentCount(ctx, p.Code)
		if err != nil {
			return nil, err
		}
		detail.Programs = append(detail.Programs, dto.ProgramSummary{
			Code:         p.Code,
			Name:         p.Name,
			StudentCount: count,
		})
	}

	total, err := s.collegeRepo.GetTotalStudents(ctx, college.Code)
	if err != nil {
		return nil, err
	}
	detail.TotalStudents = total

	return detail, nil
}

// CreateCollege validates and stores a new college
func (s *CollegeService) CreateCollege(ctx context.Context, req *dto.CollegeRequest) (*models.College, error) {
	if err := s.validateCollege(ctx, req, ""); err != nil {
		return nil, err
	}

	college := &models.College{
		Code: validation.NormalizeCode(req.Code),
		Name: trimmed(req.Name),
	}

	if err := s.collegeRepo.Create(ctx, college); err != nil {
		if errors.Is(err, apperrors.ErrCollegeAlreadyExists) {
			return nil, apperrors.NewValidationError([]string{"College code already exists"})
		}
		return nil, err
	}

	s.dashboard.Invalidate()
	return college, nil
}

// UpdateCollege validates and applies changes to an existing college.
// The college code is its primary key and is not renamed here.
func (s *CollegeService) UpdateCollege(ctx context.Context, code string, req *dto.CollegeRequest) (*models.College, error) {
	college, err := s.collegeRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if req.Code == "" {
		req.Code = college.Code
	}
	if err := s.validateCollege(ctx, req, college.Code); err != nil {
		return nil, err
	}

	college.Name = trimmed(req.Name)
	if err := s.collegeRepo.Update(ctx, college.Code, college.Name); err != nil {
		return nil, err
	}

	s.dashboard.Invalidate()
	return college, nil
}

// DeleteCollege removes a college; its programs are detached under the
// SET NULL policy and the detached count is reported.
func (s *CollegeService) DeleteCollege(ctx context.Context, code string) (int64, error) {
	if _, err := s.collegeRepo.GetByCode(ctx, code); err != nil {
		return 0, err
	}

	detached, err := s.collegeRepo.Delete(ctx, code)
	if err != nil {
		return 0, err
	}

	s.dashboard.Invalidate()
	return detached, nil
}

// GetCollegeStats returns the total college count plus per-college
// program/student breakdowns.
func (s *CollegeService) GetCollegeStats(ctx context.Context) (*dto.CollegeStatsResponse, error) {
	total, err := s.collegeRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.collegeRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []*models.CollegeStats{}
	}

	return &dto.CollegeStatsResponse{
		TotalColleges: total,
		Colleges:      stats,
	}, nil
}

// CollegeCodeHints returns up to 5 valid college codes for error messages
func (s *CollegeService) CollegeCodeHints(ctx context.Context) []string {
	codes, err := s.collegeRepo.GetCodes(ctx, 5)
	if err != nil {
		return nil
	}
	return codes
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
