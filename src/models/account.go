package models

// Credentials is the body of register and login requests
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the body returned by a successful login
type LoginResponse struct {
	JWTToken string `json:"jwtToken"`
}

// ProfileUpdate is a partial profile update; empty fields are not sent
type ProfileUpdate struct {
	NewUsername string `json:"newUsername,omitempty"`
	NewPassword string `json:"newPassword,omitempty"`
}

// IsEmpty reports whether no field was supplied
func (u ProfileUpdate) IsEmpty() bool {
	return u.NewUsername == "" && u.NewPassword == ""
}
