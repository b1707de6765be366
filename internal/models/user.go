package models

// User identifies a registered account. The password hash never leaves the
// store layer.
type User struct {
	ID        int64  `json:"id" db:"id"`
	Username  string `json:"username" db:"username"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
}

// RegisterRequest is the request body for account creation.
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginRequest is the request body for authentication.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries the session token issued on login.
type TokenResponse struct {
	Token string `json:"token"`
}

// ErrorResponse is the structured error body returned by the HTTP layer.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Details string `json:"details"`
}
