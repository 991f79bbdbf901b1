package dto

// CollegeRequest is the payload for college create/update
type CollegeRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ProgramRequest is the payload for program create/update
type ProgramRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	College string `json:"college"`
}

// StudentRequest is the payload for student create/update
type StudentRequest struct {
	ID        string `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Course    string `json:"course"`
	Year      int    `json:"year"`
	Gender    string `json:"gender"`
}

// LoginRequest is the payload for user login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupRequest is the payload for user registration
type SignupRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}
