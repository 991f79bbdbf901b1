package models

// College defines the college model based on the 'college' table.
// The code is the natural primary key.
type College struct {
	Code string `json:"code" db:"code" example:"CCS"`
	Name string `json:"name" db:"name" example:"College of Computer Studies"`

	// Relations (populated when needed)
	Programs []*Program `json:"programs,omitempty"`
}

// CollegeStats holds per-college outer-join counts. Colleges without
// programs or students are included with zero counts.
type CollegeStats struct {
	Code         string `json:"code" db:"code"`
	Name         string `json:"name" db:"name"`
	ProgramCount int64  `json:"program_count" db:"program_count"`
	StudentCount int64  `json:"student_count" db:"student_count"`
}
