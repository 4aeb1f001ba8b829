package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role is the account role. Self-service sign-ups are always RoleCustomer.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// UserSession is the logged-in user's profile as kept for a session.
// It never carries a password.
type UserSession struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone,omitempty"`
	JoinedAt  time.Time `json:"joinDate"`
	Role      Role      `json:"role"`
}

// IsAdmin reports whether the session holds the admin role.
func (u *UserSession) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Profile is the self-service registration input.
type Profile struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// ProfileUpdate is a partial profile. Nil fields are left unchanged.
type ProfileUpdate struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Role      *Role   `json:"role,omitempty"`
}

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// Password wraps a bcrypt hash.
type Password struct {
	Hash string
}

func (p *Password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	return nil
}

func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
