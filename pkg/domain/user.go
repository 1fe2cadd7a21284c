package domain

import "time"

// User is an account in a school: administrator, teacher, student or parent.
type User struct {
	ID        int64      `json:"id"`
	SchoolID  int64      `json:"schoolId"`
	RoleID    int64      `json:"roleId"`
	RoleName  string     `json:"roleName,omitempty"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Document  string     `json:"document,omitempty"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// FullName returns "First Last", trimmed when either part is missing.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Role is a backend role definition.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// School is a tenant. Every other entity is scoped to one.
type School struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Currency string `json:"currency,omitempty"`
	LogoURL  string `json:"logoUrl,omitempty"`
}

// LoginResponse is returned by the login endpoint.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
