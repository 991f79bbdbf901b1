// Package services holds the business logic between the HTTP controllers
// and the repositories.
//
// Services defined in this package:
//   - AuthService: login, signup and session identity lookups
//   - CollegeService: college CRUD and per-college statistics
//   - ProgramService: program CRUD including the cascading code rename
//   - StudentService: student CRUD, statistics and profile photos
//   - DashboardService: cached cross-entity aggregates
//
// Each service depends on small store interfaces rather than the concrete
// repositories so the logic can be tested against in-memory fakes.
package services

import (
	"context"

	"github.com/ekurt/campusreg/internal/app/models"
	"github.com/ekurt/campusreg/internal/pkg/helpers"
)

// CollegeStore is the persistence surface the services need for colleges
type CollegeStore interface {
	GetByCode(ctx context.Context, code string) (*models.College, error)
	List(ctx context.Context, params helpers.ListParams) ([]*models.College, int64, error)
	Exists(ctx context.Context, code string) (bool, error)
	GetCodes(ctx context.Context, limit int) ([]string, error)
	Create(ctx context.Context, college *models.College) error
	Update(ctx context.Context, code string, name string) error
	Delete(ctx context.Context, code string) (int64, error)
	Count(ctx context.Context) (int64, error)
	GetStats(ctx context.Context) ([]*models.CollegeStats, error)
	GetTotalStudents(ctx context.Context, code string) (int64, error)
}

// ProgramStore is the persistence surface the services need for programs
type ProgramStore interface {
	GetByCode(ctx context.Context, code string) (*models.Program, error)
	List(ctx context.Context, params helpers.ListParams, college string) ([]*models.Program, int64, error)
	Exists(ctx context.Context, code string) (bool, error)
	GetCodes(ctx context.Context, limit int) ([]string, error)
	Create(ctx context.Context, program *models.Program) error
	Update(ctx context.Context, code string, name string, college *string) error
	Rename(ctx context.Context, oldCode, newCode, name string, college *string) (int64, error)
	Delete(ctx context.Context, code string) (int64, error)
	Count(ctx context.Context) (int64, error)
	GetYearDistribution(ctx context.Context, code string) ([]models.YearCount, error)
	GetEnrollmentStats(ctx context.Context) ([]*models.ProgramEnrollment, error)
	GetCountsByCollege(ctx context.Context) ([]*models.ProgramCollegeCount, error)
	GetStudentCount(ctx context.Context, code string) (int64, error)
	GetByCollege(ctx context.Context, college string) ([]*models.Program, error)
}

// StudentStore is the persistence surface the services need for students
type StudentStore interface {
	GetByID(ctx context.Context, id string) (*models.Student, error)
	List(ctx context.Context, params helpers.ListParams, course string) ([]*models.Student, int64, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	UpdatePhoto(ctx context.Context, id string, photoURL, filename *string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountByYear(ctx context.Context) ([]models.YearCount, error)
	CountByCourse(ctx context.Context) ([]*models.CourseCount, error)
}

// UserStore is the persistence surface the auth service needs for users
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
}
