package models

// User defines the user model based on the 'users' table. Used solely for
// session authentication; the password hash is never serialized.
type User struct {
	ID           int64  `json:"id" db:"id" example:"1"`
	Username     string `json:"username" db:"username" example:"registrar"`
	Email        string `json:"email" db:"email" example:"registrar@school.edu"`
	PasswordHash string `json:"-" db:"password_hash"`
}
