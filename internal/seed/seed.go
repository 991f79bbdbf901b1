package seed

import (
	"context"
	"errors"

	"github.com/ekurt/campusreg/internal/app/models"
	"github.com/ekurt/campusreg/internal/app/repositories"
	"github.com/ekurt/campusreg/internal/pkg/apperrors"
	"github.com/ekurt/campusreg/internal/pkg/auth"
	"github.com/ekurt/campusreg/internal/pkg/logger"
)

func strptr(s string) *string { return &s }

// CreateDefaultData seeds a starter catalog and the default admin account.
// Every insert tolerates the row already existing, so running it on a
// populated database is a no-op.
func CreateDefaultData(ctx context.Context, repos *repositories.Repositories) error {
	logger.Info().Msg("Checking/creating default data")

	var finalErr error

	colleges := []*models.College{
		{Code: "CCS", Name: "College of Computer Studies"},
		{Code: "COE", Name: "College of Engineering"},
		{Code: "CAS", Name: "College of Arts and Sciences"},
	}
	for _, c := range colleges {
		if err := repos.CollegeRepository.Create(ctx, c); err != nil &&
			!errors.Is(err, apperrors.ErrCollegeAlreadyExists) {
			logger.Error().Err(err).Str("code", c.Code).Msg("Error seeding college")
			finalErr = errors.Join(finalErr, err)
		}
	}

	programs := []*models.Program{
		{Code: "BSCS", Name: "Bachelor of Science in Computer Science", College: strptr("CCS")},
		{Code: "BSIT", Name: "Bachelor of Science in Information Technology", College: strptr("CCS")},
		{Code: "BSCE", Name: "Bachelor of Science in Civil Engineering", College: strptr("COE")},
		{Code: "BSBIO", Name: "Bachelor of Science in Biology", College: strptr("CAS")},
	}
	for _, p := range programs {
		if err := repos.ProgramRepository.Create(ctx, p); err != nil &&
			!errors.Is(err, apperrors.ErrProgramAlreadyExists) {
			logger.Error().Err(err).Str("code", p.Code).Msg("Error seeding program")
			finalErr = errors.Join(finalErr, err)
		}
	}

	students := []*models.Student{
		{ID: "2023-0001", FirstName: "Maria", LastName: "Santos", Course: strptr("BSCS"), Year: 2, Gender: "Female"},
		{ID: "2023-0002", FirstName: "Juan", LastName: "Dela Cruz", Course: strptr("BSIT"), Year: 2, Gender: "Male"},
		{ID: "2024-0001", FirstName: "Ana", LastName: "Reyes", Course: strptr("BSCE"), Year: 1, Gender: "Female"},
	}
	for _, s := range students {
		if err := repos.StudentRepository.Create(ctx, s); err != nil &&
			!errors.Is(err, apperrors.ErrStudentAlreadyExists) {
			logger.Error().Err(err).Str("id", s.ID).Msg("Error seeding student")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if err := createDefaultAdmin(ctx, repos); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	logger.Info().Msg("Default data check finished")
	return finalErr
}

func createDefaultAdmin(ctx context.Context, repos *repositories.Repositories) error {
	exists, err := repos.UserRepository.UsernameExists(ctx, "admin")
	if err != nil {
		logger.Error().Err(err).Msg("Error checking for admin user")
		return err
	}
	if exists {
		logger.Debug().Msg("Admin user already exists, skipping creation")
		return nil
	}

	hash, err := auth.HashPassword("Admin123")
	if err != nil {
		logger.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &models.User{
		Username:     "admin",
		Email:        "admin@campusreg.local",
		PasswordHash: hash,
	}
	if err := repos.UserRepository.Create(ctx, admin); err != nil {
		logger.Error().Err(err).Msg("Error creating admin user")
		return err
	}

	logger.Info().Int64("userID", admin.ID).Msg("Default admin user created")
	return nil
}
