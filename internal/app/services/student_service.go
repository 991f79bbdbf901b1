package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/ekurt/campusreg/internal/app/models"
	"github.com/ekurt/campusreg/internal/app/models/dto"
	"github.com/ekurt/campusreg/internal/pkg/apperrors"
	"github.com/ekurt/campusreg/internal/pkg/filestorage"
	"github.com/ekurt/campusreg/internal/pkg/helpers"
	"github.com/ekurt/campusreg/internal/pkg/validation"
)

// StudentService handles student-related operations
type StudentService struct {
	studentRepo StudentStore
	programSvc  *ProgramService
	storage     *filestorage.LocalStorage
	dashboard   *DashboardService
}

// NewStudentService creates a new student service
func NewStudentService(studentRepo StudentStore, programSvc *ProgramService, storage *filestorage.LocalStorage, dashboard *DashboardService) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		programSvc:  programSvc,
		storage:     storage,
		dashboard:   dashboard,
	}
}

// validateStudent runs the field validators plus the live uniqueness check
// and the program reference check. The program lookup goes through the
// cached code set; currentID is empty on create.
func (s *StudentService) validateStudent(ctx context.Context, req *dto.StudentRequest, currentID string) error {
	errs := validation.ValidateStudentFields(req)

	id := strings.ToUpper(strings.TrimSpace(req.ID))
	if id != "" && id != strings.ToUpper(currentID) {
		exists, err := s.studentRepo.Exists(ctx, id)
		if err != nil {
			return err
		}
		if exists {
			errs = append(errs, "Student ID already exists")
		}
	}

	if course := validation.NormalizeCode(req.Course); course != "" {
		valid, err := s.programSvc.ValidProgramCodes(ctx)
		if err != nil {
			return err
		}
		if !valid[course] {
			hints := s.programSvc.ProgramCodeHints(ctx)
			errs = append(errs, validation.MissingReferenceError("program", hints))
		}
	}

	if len(errs) > 0 {
		return apperrors.NewValidationError(errs)
	}
	return nil
}

// ListStudents retrieves a page of students, optionally narrowed to one
// program code.
func (s *StudentService) ListStudents(ctx context.Context, params helpers.ListParams, course string) ([]*models.Student, int64, error) {
	students, total, err := s.studentRepo.List(ctx, params, course)
	if err != nil {
		return nil, 0, err
	}
	if students == nil {
		students = []*models.Student{}
	}
	return students, total, nil
}

// GetStudent retrieves a student by ID
func (s *StudentService) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// CreateStudent validates and stores a new student
func (s *StudentService) CreateStudent(ctx context.Context, req *dto.StudentRequest) (*models.Student, error) {
	if err := s.validateStudent(ctx, req, ""); err != nil {
		return nil, err
	}

	course := validation.NormalizeCode(req.Course)
	student := &models.Student{
		ID:        strings.ToUpper(strings.TrimSpace(req.ID)),
		FirstName: trimmed(req.FirstName),
		LastName:  trimmed(req.LastName),
		Course:    &course,
		Year:      req.Year,
		Gender:    req.Gender,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		if errors.Is(err, apperrors.ErrStudentAlreadyExists) {
			return nil, apperrors.NewValidationError([]string{"Student ID already exists"})
		}
		return nil, err
	}

	s.dashboard.Invalidate()
	return student, nil
}

// UpdateStudent validates and applies changes to an existing student
func (s *StudentService) UpdateStudent(ctx context.Context, id string, req *dto.StudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Absent fields keep the stored values
	if req.ID == "" {
		req.ID = student.ID
	}
	if req.FirstName == "" {
		req.FirstName = student.FirstName
	}
	if req.LastName == "" {
		req.LastName = student.LastName
	}
	if req.Course == "" && student.Course != nil {
		req.Course = *student.Course
	}
	if req.Year == 0 {
		req.Year = student.Year
	}
	if req.Gender == "" {
		req.Gender = student.Gender
	}

	if err := s.validateStudent(ctx, req, student.ID); err != nil {
		return nil, err
	}

	course := validation.NormalizeCode(req.Course)
	student.FirstName = trimmed(req.FirstName)
	student.LastName = trimmed(req.LastName)
	student.Course = &course
	student.Year = req.Year
	student.Gender = req.Gender

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	s.dashboard.Invalidate()
	return student, nil
}

// DeleteStudent removes a student and any stored profile photo
func (s *StudentService) DeleteStudent(ctx context.Context, id string) error {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.studentRepo.Delete(ctx, student.ID); err != nil {
		return err
	}

	if s.storage != nil && student.ProfilePhotoFilename != nil {
		_ = s.storage.DeleteFile(*student.ProfilePhotoFilename)
	}

	s.dashboard.Invalidate()
	return nil
}

// GetStudentStats returns the total student count plus year and course
// breakdowns.
func (s *StudentService) GetStudentStats(ctx context.Context) (*dto.StudentStatsResponse, error) {
	total, err := s.studentRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	byYear, err := s.studentRepo.CountByYear(ctx)
	if err != nil {
		return nil, err
	}

	byCourse, err := s.studentRepo.CountByCourse(ctx)
	if err != nil {
		return nil, err
	}
	if byCourse == nil {
		byCourse = []*models.CourseCount{}
	}

	return &dto.StudentStatsResponse{
		TotalStudents: total,
		ByYear:        byYear,
		ByCourse:      byCourse,
	}, nil
}

// UploadPhoto stores a profile photo for a student, replacing any previous
// one, and records the URL and filename on the student row.
func (s *StudentService) UploadPhoto(ctx context.Context, id string, fileHeader *multipart.FileHeader) (*dto.PhotoResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, filename, err := s.storage.SavePhoto(fileHeader)
	if err != nil {
		return nil, err
	}

	previous := student.ProfilePhotoFilename
	if err := s.studentRepo.UpdatePhoto(ctx, student.ID, &url, &filename); err != nil {
		// Keep the store consistent, the new file is orphaned otherwise
		_ = s.storage.DeleteFile(filename)
		return nil, err
	}

	if previous != nil {
		_ = s.storage.DeleteFile(*previous)
	}

	return &dto.PhotoResponse{PhotoURL: url, Filename: filename}, nil
}

// DeletePhoto removes a student's profile photo reference and file
func (s *StudentService) DeletePhoto(ctx context.Context, id string) error {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if student.ProfilePhotoFilename == nil {
		return apperrors.NewNotFoundError("student has no profile photo")
	}

	filename := *student.ProfilePhotoFilename
	if err := s.studentRepo.UpdatePhoto(ctx, student.ID, nil, nil); err != nil {
		return err
	}

	_ = s.storage.DeleteFile(filename)
	return nil
}
