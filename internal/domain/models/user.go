package models

// User is an account in any of the three roles. PasswordHash never leaves
// the repository layer in API responses.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Aadhaar      string `json:"aadhaar,omitempty"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	Active       bool   `json:"active"`
	CreatedAt    string `json:"createdAt,omitempty"`
}
