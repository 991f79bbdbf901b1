package dto

import "github.com/ekurt/campusreg/internal/app/models"

// ListResponse is the envelope for every paginated collection endpoint.
// Pages is ceil(total/per_page), or 0 when total is 0.
type ListResponse struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Pages int         `json:"pages"`
}

// MessageResponse is a plain success message
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a single error message
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse carries the validator's message list
type ValidationErrorResponse struct {
	Errors []string `json:"errors"`
}

// UserInfo is the user shape exposed by the auth endpoints
type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewUserInfo maps a user model to its public shape
func NewUserInfo(u *models.User) *UserInfo {
	return &UserInfo{ID: u.ID, Username: u.Username, Email: u.Email}
}

// AuthStatusResponse is returned by GET /auth/status; it never errors on a
// missing or invalid session.
type AuthStatusResponse struct {
	IsAuthenticated bool      `json:"isAuthenticated"`
	User            *UserInfo `json:"user,omitempty"`
}

// AuthResponse is returned by login and signup
type AuthResponse struct {
	Message string    `json:"message"`
	User    *UserInfo `json:"user"`
}

// CollegeDetail is the GET /colleges/:code shape with nested programs
type CollegeDetail struct {
	Code          string           `json:"code"`
	Name          string           `json:"name"`
	Programs      []ProgramSummary `json:"programs"`
	TotalStudents int64            `json:"total_students"`
}

// ProgramSummary is a program row with its enrolled student count
type ProgramSummary struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	StudentCount int64  `json:"student_count"`
}

// ProgramDetail is the GET /programs/:code shape with the year breakdown
type ProgramDetail struct {
	Code             string             `json:"code"`
	Name             string             `json:"name"`
	College          *string            `json:"college"`
	YearDistribution []models.YearCount `json:"year_distribution"`
}

// ProgramUpdateResponse reports a program update, including how many
// student rows a code rename carried along.
type ProgramUpdateResponse struct {
	Message          string          `json:"message"`
	Program          *models.Program `json:"program"`
	CodeChanged      bool            `json:"code_changed"`
	AffectedStudents int64           `json:"affected_students"`
}

// DeleteResponse reports a delete, including how many children were
// detached under the SET NULL policy.
type DeleteResponse struct {
	Message          string `json:"message"`
	DetachedChildren int64  `json:"detached_children,omitempty"`
}

// PhotoResponse is returned after a successful profile photo upload
type PhotoResponse struct {
	PhotoURL string `json:"photo_url"`
	Filename string `json:"filename"`
}

// CollegeStatsResponse is the GET /colleges/stats shape
type CollegeStatsResponse struct {
	TotalColleges int64                  `json:"total_colleges"`
	Colleges      []*models.CollegeStats `json:"colleges"`
}

// ProgramStatsResponse is the GET /programs/stats shape
type ProgramStatsResponse struct {
	TotalPrograms int64                         `json:"total_programs"`
	ByCollege     []*models.ProgramCollegeCount `json:"by_college"`
	Enrollment    []*models.ProgramEnrollment   `json:"enrollment"`
}

// StudentStatsResponse is the GET /students/stats shape
type StudentStatsResponse struct {
	TotalStudents int64                 `json:"total_students"`
	ByYear        []models.YearCount    `json:"by_year"`
	ByCourse      []*models.CourseCount `json:"by_course"`
}

// DashboardStats carries the per-entity totals
type DashboardStats struct {
	TotalStudents int64 `json:"total_students"`
	TotalPrograms int64 `json:"total_programs"`
	TotalColleges int64 `json:"total_colleges"`
}

// ProgramChartEntry is one bar of the students-by-program chart
type ProgramChartEntry struct {
	ProgramCode  string `json:"program_code"`
	ProgramName  string `json:"program_name"`
	StudentCount int64  `json:"student_count"`
}

// CollegeChartEntry is one slice of the students-by-college chart
type CollegeChartEntry struct {
	CollegeCode  string `json:"college_code"`
	CollegeName  string `json:"college_name"`
	StudentCount int64  `json:"student_count"`
}

// DashboardCharts carries both enrollment breakdowns
type DashboardCharts struct {
	StudentsByProgram []ProgramChartEntry `json:"students_by_program"`
	StudentsByCollege []CollegeChartEntry `json:"students_by_college"`
}
