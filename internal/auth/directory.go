package auth

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/01moynul/artstudio-golang/internal/models"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateAccount   = errors.New("an account with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
)

type account struct {
	session  models.UserSession
	password models.Password
}

// Directory is the in-process user list. It stands in for a real identity
// service and is not a security boundary.
type Directory struct {
	mu         sync.RWMutex
	ownerEmail string
	accounts   []*account
}

// NewDirectory seeds the list with the owner account, which holds the admin role.
func NewDirectory(ownerEmail, ownerPassword string) (*Directory, error) {
	d := &Directory{ownerEmail: normalizeEmail(ownerEmail)}

	owner := &account{session: models.UserSession{
		ID:        uuid.NewString(),
		Email:     d.ownerEmail,
		FirstName: "Studio",
		LastName:  "Owner",
		JoinedAt:  time.Now().UTC(),
		Role:      models.RoleAdmin,
	}}
	if err := owner.password.Set(ownerPassword); err != nil {
		return nil, err
	}
	d.accounts = append(d.accounts, owner)
	return d, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsOwner reports whether email is the designated owner address.
func (d *Directory) IsOwner(email string) bool {
	return normalizeEmail(email) == d.ownerEmail
}

func (d *Directory) find(email string) *account {
	email = normalizeEmail(email)
	for _, a := range d.accounts {
		if a.session.Email == email {
			return a
		}
	}
	return nil
}

// Authenticate returns the session for an exact email and password match.
func (d *Directory) Authenticate(email, password string) (models.UserSession, error) {
	// bcrypt cannot compare these, and no stored password can be this long.
	if len(password) > models.MaxPasswordBytes {
		return models.UserSession{}, ErrInvalidCredentials
	}

	d.mu.RLock()
	a := d.find(email)
	d.mu.RUnlock()
	if a == nil {
		return models.UserSession{}, ErrInvalidCredentials
	}

	ok, err := a.password.Matches(password)
	if err != nil {
		return models.UserSession{}, err
	}
	if !ok {
		return models.UserSession{}, ErrInvalidCredentials
	}
	return a.session, nil
}

// Register appends a customer account. The role is always customer.
func (d *Directory) Register(p models.Profile) (models.UserSession, error) {
	if len(p.Password) > models.MaxPasswordBytes {
		return models.UserSession{}, ErrPasswordTooLong
	}
	var pw models.Password
	if err := pw.Set(p.Password); err != nil {
		return models.UserSession{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.find(p.Email) != nil {
		return models.UserSession{}, ErrDuplicateAccount
	}

	a := &account{
		session: models.UserSession{
			ID:        uuid.NewString(),
			Email:     normalizeEmail(p.Email),
			FirstName: strings.TrimSpace(p.FirstName),
			LastName:  strings.TrimSpace(p.LastName),
			Phone:     strings.TrimSpace(p.Phone),
			JoinedAt:  time.Now().UTC(),
			Role:      models.RoleCustomer,
		},
		password: pw,
	}
	d.accounts = append(d.accounts, a)
	return a.session, nil
}

// Update replaces the stored profile of the account with the same id.
func (d *Directory) Update(s models.UserSession) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, a := range d.accounts {
		if a.session.ID == s.ID {
			a.session = s
			return nil
		}
	}
	return ErrUserNotFound
}

// Len is the number of accounts.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.accounts)
}
