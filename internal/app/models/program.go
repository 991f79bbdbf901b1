package models

// Program defines the program model based on the 'program' table.
// College is nullable: deleting a college detaches its programs (SET NULL).
type Program struct {
	Code    string  `json:"code" db:"code" example:"BSCS"`
	Name    string  `json:"name" db:"name" example:"BS in Computer Science"`
	College *string `json:"college" db:"college" example:"CCS"`

	// Relations (populated when needed)
	CollegeName string `json:"college_name,omitempty"`
}

// ProgramEnrollment holds the student count for one program, zero when no
// students reference it.
type ProgramEnrollment struct {
	Code       string `json:"code" db:"code"`
	Name       string `json:"name" db:"name"`
	Enrollment int64  `json:"enrollment" db:"enrollment"`
}

// ProgramCollegeCount holds the number of programs per college.
type ProgramCollegeCount struct {
	College     string `json:"code" db:"college"`
	CollegeName string `json:"college_name" db:"college_name"`
	Count       int64  `json:"count" db:"count"`
}

// YearCount holds the number of students in one year level of a program.
type YearCount struct {
	Year  int   `json:"year" db:"year"`
	Count int64 `json:"count" db:"count"`
}
