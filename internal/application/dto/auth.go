package dto

// RegisterRequest is the DTO for registering a new user.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the DTO for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the DTO returned by login and register. The token itself
// travels in the X-Auth-Token response header.
type AuthResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}
