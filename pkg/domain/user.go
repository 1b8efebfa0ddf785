package domain

import "time"

// UserID is the backend's opaque account identifier.
type UserID string

// User is the account profile as returned by the auth API.
type User struct {
	ID              UserID      `json:"_id" yaml:"id"`
	Email           string      `json:"email" yaml:"email"`
	FirstName       string      `json:"firstName" yaml:"firstName"`
	LastName        string      `json:"lastName" yaml:"lastName"`
	Phone           string      `json:"phone,omitempty" yaml:"phone,omitempty"`
	IsEmailVerified bool        `json:"isEmailVerified" yaml:"isEmailVerified"`
	Role            string      `json:"role" yaml:"role"`
	Preferences     Preferences `json:"preferences" yaml:"preferences"`
	CreatedAt       time.Time   `json:"createdAt" yaml:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt" yaml:"updatedAt"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// Preferences are per-user UI settings.
type Preferences struct {
	Theme         string `json:"theme" yaml:"theme"`
	Notifications struct {
		Email bool `json:"email" yaml:"email"`
		Push  bool `json:"push" yaml:"push"`
	} `json:"notifications" yaml:"notifications"`
}

// Session is an authenticated bearer token and the user it belongs to.
type Session struct {
	Token string `json:"token" yaml:"authToken"`
	User  User   `json:"user" yaml:"user"`
}

// Credentials are the login form fields.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration are the sign-up form fields.
type Registration struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Phone           string `json:"phone,omitempty"`
	AgreeToTerms    bool   `json:"agreeToTerms"`
}

// PasswordReset completes a forgot-password flow.
type PasswordReset struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// PasswordChange changes the password of a signed-in user.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ProfileUpdate carries the editable profile fields. Nil fields are left as is.
type ProfileUpdate struct {
	FirstName   *string      `json:"firstName,omitempty"`
	LastName    *string      `json:"lastName,omitempty"`
	Phone       *string      `json:"phone,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}
