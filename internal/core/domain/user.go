package domain

// User models a registered account. The password hash never leaves the
// process boundary (json:"-").
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"is_admin"`
}
