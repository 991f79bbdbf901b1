package repositories

import (
	"github.com/ekurt/campusreg/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	CollegeRepository *CollegeRepository
	ProgramRepository *ProgramRepository
	StudentRepository *StudentRepository
	UserRepository    *UserRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		CollegeRepository: NewCollegeRepository(database.Pool),
		ProgramRepository: NewProgramRepository(database),
		StudentRepository: NewStudentRepository(database.Pool),
		UserRepository:    NewUserRepository(database.Pool),
	}
}
