package model

// LoginRequest represents login parameters
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned on successful login. Role is included so clients
// can route to the right dashboard.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}
