package services

import "github.com/thedosaspot/dosaspot/pkg/auth"

// LoginResult is what the admin login form gets back. No token is issued;
// the client sends the password again on every privileged call.
type LoginResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type AuthService struct {
	gate *auth.Gate
}

func NewAuthService(gate *auth.Gate) *AuthService {
	return &AuthService{gate: gate}
}

// Login reports whether password is the admin password.
func (s *AuthService) Login(password string) LoginResult {
	if err := s.gate.Check(password); err != nil {
		return LoginResult{Success: false, Message: "Invalid password"}
	}
	return LoginResult{Success: true, Message: "Authenticated"}
}
