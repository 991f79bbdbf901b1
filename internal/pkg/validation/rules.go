// Package validation holds the per-entity field validators. Each validator
// returns a list of human-readable messages; an empty list means the
// payload is valid. Referential and uniqueness checks stay in the service
// layer, which queries the store live.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ekurt/campusreg/internal/app/models"
	"github.com/ekurt/campusreg/internal/app/models/dto"
)

// Validation rule patterns
var (
	// Entity code pattern shared by college and program codes, matched
	// after case normalization to uppercase
	CodePattern = `^[A-Z0-9\-]{2,10}$`

	// Student identifier pattern, YYYY-NNNN
	StudentIDPattern = `^[0-9]{4}-[0-9]{4}$`

	// Username pattern, letters, digits and underscores
	UsernamePattern = `^[a-zA-Z0-9_]+$`

	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Code      *regexp.Regexp
	StudentID *regexp.Regexp
	Username  *regexp.Regexp
	Email     *regexp.Regexp
}{
	Code:      regexp.MustCompile(CodePattern),
	StudentID: regexp.MustCompile(StudentIDPattern),
	Username:  regexp.MustCompile(UsernamePattern),
	Email:     regexp.MustCompile(EmailPattern),
}

// NormalizeCode upper-cases and trims an entity code for storage and
// comparison.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateCollegeFields checks a college payload's shape and format
func ValidateCollegeFields(req *dto.CollegeRequest) []string {
	var errors []string

	if strings.TrimSpace(req.Code) == "" {
		errors = append(errors, "code is required")
	} else if !CompiledPatterns.Code.MatchString(NormalizeCode(req.Code)) {
		errors = append(errors, "College code must be 2-10 characters, letters, numbers, and hyphens only")
	}

	errors = append(errors, validateEntityName("College", req.Name)...)

	return errors
}

// ValidateProgramFields checks a program payload's shape and format
func ValidateProgramFields(req *dto.ProgramRequest) []string {
	var errors []string

	if strings.TrimSpace(req.Code) == "" {
		errors = append(errors, "code is required")
	} else if !CompiledPatterns.Code.MatchString(NormalizeCode(req.Code)) {
		errors = append(errors, "Program code must be 2-10 characters, letters, numbers, and hyphens only")
	}

	errors = append(errors, validateEntityName("Program", req.Name)...)

	if strings.TrimSpace(req.College) == "" {
		errors = append(errors, "college is required")
	}

	return errors
}

// ValidateStudentFields checks a student payload's shape and format
func ValidateStudentFields(req *dto.StudentRequest) []string {
	var errors []string

	if strings.TrimSpace(req.ID) == "" {
		errors = append(errors, "id is required")
	} else if !CompiledPatterns.StudentID.MatchString(strings.TrimSpace(req.ID)) {
		errors = append(errors, "Student ID must follow format YYYY-NNNN")
	}

	errors = append(errors, validatePersonName("firstname", req.FirstName)...)
	errors = append(errors, validatePersonName("lastname", req.LastName)...)

	if strings.TrimSpace(req.Course) == "" {
		errors = append(errors, "course is required")
	}

	if req.Year < 1 || req.Year > 6 {
		errors = append(errors, "Year must be between 1 and 6")
	}

	if req.Gender == "" {
		errors = append(errors, "gender is required")
	} else if !models.IsValidGender(req.Gender) {
		errors = append(errors, fmt.Sprintf("Gender must be one of: %s", strings.Join(models.Genders, ", ")))
	}

	return errors
}

// ValidateSignupFields checks a signup payload's shape and format,
// including the password strength rules applied by the auth service.
func ValidateSignupFields(req *dto.SignupRequest) []string {
	var errors []string

	username := strings.TrimSpace(req.Username)
	if username == "" {
		errors = append(errors, "Username is required")
	} else {
		if len(username) < 3 || len(username) > 80 {
			errors = append(errors, "Username must be between 3 and 80 characters")
		}
		if !CompiledPatterns.Username.MatchString(username) {
			errors = append(errors, "Username can only contain letters, numbers, and underscores")
		}
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		errors = append(errors, "Email is required")
	} else if !CompiledPatterns.Email.MatchString(email) {
		errors = append(errors, "Please enter a valid email address")
	}

	if req.Password == "" {
		errors = append(errors, "Password is required")
	}
	if req.ConfirmPassword == "" {
		errors = append(errors, "Password confirmation is required")
	}
	if req.Password != "" && req.ConfirmPassword != "" && req.Password != req.ConfirmPassword {
		errors = append(errors, "Passwords do not match")
	}

	return errors
}

// MissingReferenceError formats the error for an unknown foreign key,
// listing a sample of valid codes for operator guidance.
func MissingReferenceError(entity string, validCodes []string) string {
	const sampleSize = 5
	if len(validCodes) > sampleSize {
		validCodes = validCodes[:sampleSize]
	}
	if len(validCodes) == 0 {
		return fmt.Sprintf("Invalid %s code", entity)
	}
	return fmt.Sprintf("Invalid %s code. Valid codes include: %s", entity, strings.Join(validCodes, ", "))
}

func validateEntityName(entity, name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return []string{"name is required"}
	}
	var errors []string
	if len(name) < 5 {
		errors = append(errors, fmt.Sprintf("%s name must be at least 5 characters long", entity))
	}
	if len(name) > 100 {
		errors = append(errors, fmt.Sprintf("%s name must not exceed 100 characters", entity))
	}
	return errors
}

func validatePersonName(field, name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return []string{fmt.Sprintf("%s is required", field)}
	}
	if len(name) > 50 {
		return []string{fmt.Sprintf("%s must not exceed 50 characters", field)}
	}
	return nil
}
