package services

import (
	"context"
	"errors"

	"github.com/ekurt/campusreg/internal/app/models"
	"github.com/ekurt/campusreg/internal/app/models/dto"
	"github.com/ekurt/campusreg/internal/pkg/apperrors"
	"github.com/ekurt/campusreg/internal/pkg/cache"
	"github.com/ekurt/campusreg/internal/pkg/helpers"
	"github.com/ekurt/campusreg/internal/pkg/logger"
	"github.com/ekurt/campusreg/internal/pkg/validation"
)

// ProgramService handles program-related operations, including the
// cascading code rename.
type ProgramService struct {
	programRepo ProgramStore
	collegeRepo CollegeStore
	codeCache   *cache.TTLCache
	dashboard   *DashboardService
}

// NewProgramService creates a new program service. codeCache is the
// short-lived cache of valid program codes shared with student validation;
// it is invalidated by every program mutation.
func NewProgramService(programRepo ProgramStore, collegeRepo CollegeStore, codeCache *cache.TTLCache, dashboard *DashboardService) *ProgramService {
	return &ProgramService{
		programRepo: programRepo,
		collegeRepo: collegeRepo,
		codeCache:   codeCache,
		dashboard:   dashboard,
	}
}

// validateProgram runs the field validators plus the live uniqueness and
// college reference checks. currentCode is empty on create.
func (s *ProgramService) validateProgram(ctx context.Context, req *dto.ProgramRequest, currentCode string) error {
	errs := validation.ValidateProgramFields(req)

	code := validation.NormalizeCode(req.Code)
	if code != "" && code != validation.NormalizeCode(currentCode) {
		exists, err := s.programRepo.Exists(ctx, code)
		if err != nil {
			return err
		}
		if exists {
			errs = append(errs, "Program code already exists")
		}
	}

	if college := validation.NormalizeCode(req.College); college != "" {
		exists, err := s.collegeRepo.Exists(ctx, college)
		if err != nil {
			return err
		}
		if !exists {
			hints, _ := s.collegeRepo.GetCodes(ctx, 5)
			errs = append(errs, validation.MissingReferenceError("college", hints))
		}
	}

	if len(errs) > 0 {
		return apperrors.NewValidationError(errs)
	}
	return nil
}

// invalidateCaches drops the program-code cache and the dashboard
// aggregates after any program mutation.
func (s *ProgramService) invalidateCaches() {
	s.codeCache.Invalidate()
	s.dashboard.Invalidate()
}

// ListPrograms retrieves a page of programs, optionally narrowed to one
// college code.
func (s *ProgramService) ListPrograms(ctx context.Context, params helpers.ListParams, college string) ([]*models.Program, int64, error) {
	programs, total, err := s.programRepo.List(ctx, params, college)
	if err != nil {
		return nil, 0, err
	}
	if programs == nil {
		programs = []*models.Program{}
	}
	return programs, total, nil
}

// GetProgram retrieves a program with its student year distribution
func (s *ProgramService) GetProgram(ctx context.Context, code string) (*dto.ProgramDetail, error) {
	program, err := s.programRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	years, err := s.programRepo.GetYearDistribution(ctx, program.Code)
	if err != nil {
		return nil, err
	}

	return &dto.ProgramDetail{
		Code:             program.Code,
		Name:             program.Name,
		College:          program.College,
		YearDistribution: years,
	}, nil
}

// CreateProgram validates and stores a new program
func (s *ProgramService) CreateProgram(ctx context.Context, req *dto.ProgramRequest) (*models.Program, error) {
	if err := s.validateProgram(ctx, req, ""); err != nil {
		return nil, err
	}

	college := validation.NormalizeCode(req.College)
	program := &models.Program{
		Code:    validation.NormalizeCode(req.Code),
		Name:    trimmed(req.Name),
		College: &college,
	}

	if err := s.programRepo.Create(ctx, program); err != nil {
		if errors.Is(err, apperrors.ErrProgramAlreadyExists) {
			return nil, apperrors.NewValidationError([]string{"Program code already exists"})
		}
		return nil, err
	}

	s.invalidateCaches()
	return program, nil
}

// UpdateProgram validates and applies changes to an existing program. A
// code change triggers the cascading rename: the program row and every
// student referencing the old code move together in one transaction, and
// any cascade-count mismatch rolls the whole operation back.
func (s *ProgramService) UpdateProgram(ctx context.Context, code string, req *dto.ProgramRequest) (*dto.ProgramUpdateResponse, error) {
	program, err := s.programRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if req.Code == "" {
		req.Code = program.Code
	}
	if req.College == "" && program.College != nil {
		req.College = *program.College
	}
	if err := s.validateProgram(ctx, req, program.Code); err != nil {
		return nil, err
	}

	newCode := validation.NormalizeCode(req.Code)
	newName := trimmed(req.Name)
	college := validation.NormalizeCode(req.College)
	var collegePtr *string
	if college != "" {
		collegePtr = &college
	}

	resp := &dto.ProgramUpdateResponse{Message: "Program updated successfully"}

	if newCode != program.Code {
		affected, err := s.programRepo.Rename(ctx, program.Code, newCode, newName, collegePtr)
		if err != nil {
			return nil, err
		}
		logger.Info().
			Str("oldCode", program.Code).
			Str("newCode", newCode).
			Int64("affectedStudents", affected).
			Msg("Program code renamed")
		resp.CodeChanged = true
		resp.AffectedStudents = affected
	} else {
		if err := s.programRepo.Update(ctx, program.Code, newName, collegePtr); err != nil {
			return nil, err
		}
	}

	updated, err := s.programRepo.GetByCode(ctx, newCode)
	if err != nil {
		return nil, err
	}
	resp.Program = updated

	s.invalidateCaches()
	return resp, nil
}

// DeleteProgram removes a program; enrolled students are detached under
// the SET NULL policy and the detached count is reported.
func (s *ProgramService) DeleteProgram(ctx context.Context, code string) (int64, error) {
	if _, err := s.programRepo.GetByCode(ctx, code); err != nil {
		return 0, err
	}

	detached, err := s.programRepo.Delete(ctx, code)
	if err != nil {
		return 0, err
	}

	s.invalidateCaches()
	return detached, nil
}

// GetProgramStats returns the total program count plus the per-college and
// per-program enrollment breakdowns.
func (s *ProgramService) GetProgramStats(ctx context.Context) (*dto.ProgramStatsResponse, error) {
	total, err := s.programRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	byCollege, err := s.programRepo.GetCountsByCollege(ctx)
	if err != nil {
		return nil, err
	}
	if byCollege == nil {
		byCollege = []*models.ProgramCollegeCount{}
	}

	enrollment, err := s.programRepo.GetEnrollmentStats(ctx)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		enrollment = []*models.ProgramEnrollment{}
	}

	return &dto.ProgramStatsResponse{
		TotalPrograms: total,
		ByCollege:     byCollege,
		Enrollment:    enrollment,
	}, nil
}

// programCodesCacheKey is the cache entry holding the set of valid codes
const programCodesCacheKey = "program_codes"

// ValidProgramCodes returns the set of valid program codes, served from
// the short-lived cache when possible.
func (s *ProgramService) ValidProgramCodes(ctx context.Context) (map[string]bool, error) {
	if cached, ok := s.codeCache.Get(programCodesCacheKey); ok {
		return cached.(map[string]bool), nil
	}

	codes, err := s.programRepo.GetCodes(ctx, 0)
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[validation.NormalizeCode(c)] = true
	}
	s.codeCache.Set(programCodesCacheKey, set)
	return set, nil
}

// ProgramCodeHints returns up to 5 valid program codes for error messages
func (s *ProgramService) ProgramCodeHints(ctx context.Context) []string {
	codes, err := s.programRepo.GetCodes(ctx, 5)
	if err != nil {
		return nil
	}
	return codes
}
