package models

// User is the database representation of an account holder.
type User struct {
	UserID       string `json:"userID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"` // admin or employee
	IsActive     bool   `json:"isActive"`
	Department   string `json:"department"`
	Avatar       string `json:"avatar"`
	AuditFields
}
