package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ekurt/campusreg/internal/app/models/dto"
)

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "BSCS", NormalizeCode("  bscs "))
	assert.Equal(t, "CCS-2", NormalizeCode("ccs-2"))
}

func TestValidateCollegeFields(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CollegeRequest
		want []string
	}{
		{
			name: "valid",
			req:  dto.CollegeRequest{Code: "ccs", Name: "College of Computer Studies"},
			want: nil,
		},
		{
			name: "missing code",
			req:  dto.CollegeRequest{Name: "College of Computer Studies"},
			want: []string{"code is required"},
		},
		{
			name: "code too short",
			req:  dto.CollegeRequest{Code: "C", Name: "College of Computer Studies"},
			want: []string{"College code must be 2-10 characters, letters, numbers, and hyphens only"},
		},
		{
			name: "code with invalid characters",
			req:  dto.CollegeRequest{Code: "CC S", Name: "College of Computer Studies"},
			want: []string{"College code must be 2-10 characters, letters, numbers, and hyphens only"},
		},
		{
			name: "name too short",
			req:  dto.CollegeRequest{Code: "CCS", Name: "Abc"},
			want: []string{"College name must be at least 5 characters long"},
		},
		{
			name: "name too long",
			req:  dto.CollegeRequest{Code: "CCS", Name: strings.Repeat("x", 101)},
			want: []string{"College name must not exceed 100 characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateCollegeFields(&tt.req))
		})
	}
}

func TestValidateProgramFields(t *testing.T) {
	valid := dto.ProgramRequest{Code: "BSCS", Name: "BS Computer Science", College: "CCS"}
	assert.Empty(t, ValidateProgramFields(&valid))

	missingCollege := dto.ProgramRequest{Code: "BSCS", Name: "BS Computer Science"}
	assert.Equal(t, []string{"college is required"}, ValidateProgramFields(&missingCollege))

	badCode := dto.ProgramRequest{Code: "B!", Name: "BS Computer Science", College: "CCS"}
	errs := ValidateProgramFields(&badCode)
	assert.Contains(t, errs, "Program code must be 2-10 characters, letters, numbers, and hyphens only")
}

func TestValidateStudentFields(t *testing.T) {
	valid := dto.StudentRequest{
		ID: "2024-0001", FirstName: "Maria", LastName: "Santos",
		Course: "BSCS", Year: 1, Gender: "Female",
	}
	assert.Empty(t, ValidateStudentFields(&valid))

	tests := []struct {
		name    string
		mutate  func(r *dto.StudentRequest)
		message string
	}{
		{"bad id format", func(r *dto.StudentRequest) { r.ID = "24-001" }, "Student ID must follow format YYYY-NNNN"},
		{"missing id", func(r *dto.StudentRequest) { r.ID = " " }, "id is required"},
		{"year too low", func(r *dto.StudentRequest) { r.Year = 0 }, "Year must be between 1 and 6"},
		{"year too high", func(r *dto.StudentRequest) { r.Year = 7 }, "Year must be between 1 and 6"},
		{"missing course", func(r *dto.StudentRequest) { r.Course = "" }, "course is required"},
		{"missing firstname", func(r *dto.StudentRequest) { r.FirstName = "" }, "firstname is required"},
		{"invalid gender", func(r *dto.StudentRequest) { r.Gender = "Unknown" }, "Gender must be one of:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			errs := ValidateStudentFields(&req)
			found := false
			for _, e := range errs {
				if strings.Contains(e, tt.message) {
					found = true
				}
			}
			assert.True(t, found, "expected %q in %v", tt.message, errs)
		})
	}
}

func TestValidateSignupFields(t *testing.T) {
	valid := dto.SignupRequest{
		Username: "registrar", Email: "registrar@school.edu",
		Password: "Secret123", ConfirmPassword: "Secret123",
	}
	assert.Empty(t, ValidateSignupFields(&valid))

	short := valid
	short.Username = "ab"
	assert.Contains(t, ValidateSignupFields(&short), "Username must be between 3 and 80 characters")

	badChars := valid
	badChars.Username = "reg istrar"
	assert.Contains(t, ValidateSignupFields(&badChars), "Username can only contain letters, numbers, and underscores")

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.Contains(t, ValidateSignupFields(&badEmail), "Please enter a valid email address")

	mismatch := valid
	mismatch.ConfirmPassword = "Secret124"
	assert.Contains(t, ValidateSignupFields(&mismatch), "Passwords do not match")
}

func TestMissingReferenceError(t *testing.T) {
	assert.Equal(t, "Invalid college code", MissingReferenceError("college", nil))

	msg := MissingReferenceError("program", []string{"BSCS", "BSIT"})
	assert.Equal(t, "Invalid program code. Valid codes include: BSCS, BSIT", msg)

	// Long lists are truncated to a sample
	many := []string{"A1", "A2", "A3", "A4", "A5", "A6", "A7"}
	msg = MissingReferenceError("program", many)
	assert.Equal(t, "Invalid program code. Valid codes include: A1, A2, A3, A4, A5", msg)
}
