package models

// Gender enumerates the accepted student gender values.
var Genders = []string{"Male", "Female", "Non-binary", "Prefer not to say", "Other"}

// IsValidGender reports whether g is one of the accepted gender values.
func IsValidGender(g string) bool {
	for _, v := range Genders {
		if v == g {
			return true
		}
	}
	return false
}

// Student defines the student model based on the 'student' table.
// The ID follows the YYYY-NNNN format and is caller supplied. Course is
// nullable: deleting a program detaches its students (SET NULL).
type Student struct {
	ID        string  `json:"id" db:"id" example:"2024-0001"`
	FirstName string  `json:"firstname" db:"firstname" example:"Juan"`
	LastName  string  `json:"lastname" db:"lastname" example:"Dela Cruz"`
	Course    *string `json:"course" db:"course" example:"BSCS"`
	Year      int     `json:"year" db:"year" example:"1"`
	Gender    string  `json:"gender" db:"gender" example:"Male"`

	ProfilePhotoURL      *string `json:"profile_photo_url,omitempty" db:"profile_photo_url"`
	ProfilePhotoFilename *string `json:"profile_photo_filename,omitempty" db:"profile_photo_filename"`
}

// CourseCount holds the number of students enrolled in one program code.
type CourseCount struct {
	Course *string `json:"course" db:"course"`
	Count  int64   `json:"count" db:"count"`
}
