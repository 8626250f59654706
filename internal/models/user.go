package models

// User is the account record returned by the backend. The password the
// server echoes back is never decoded.
type User struct {
	ID int `json:"id,omitempty"`
	UserProfile
}

// Profile returns the profile part of the record.
func (u User) Profile() UserProfile {
	return u.UserProfile
}

// SignUpRequest is the body of an account registration.
type SignUpRequest struct {
	Password string `json:"password"`
	UserProfile
}
