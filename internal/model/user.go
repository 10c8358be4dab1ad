package model

// User is the authenticated customer returned by the auth service.
type User struct {
	// ID is the customer identifier.
	ID string `json:"id"`
	// Email is the login email.
	Email string `json:"email"`
	// Username is the optional display handle.
	Username string `json:"username,omitempty"`
	// Role is "customer" or "admin".
	Role string `json:"role,omitempty"`
	// Verified reports whether the email has been confirmed.
	Verified bool `json:"verified"`
}

// IsAdmin reports whether the user may use the admin console.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == "admin"
}

// DisplayName returns the name to display in the UI.
// Falls back to email if username is empty.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}
