package staff

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidRole  = errors.New("invalid staff role")
	ErrInvalidEmail = errors.New("invalid email address")
	ErrEmptyName    = errors.New("staff name must not be empty")
	ErrDeactivated  = errors.New("staff account is deactivated")
)

type Role string

const (
	RoleFrontDesk Role = "front_desk"
	RoleManager   Role = "manager"
	RoleAdmin     Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleFrontDesk, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

var roleHierarchy = map[Role]int{
	RoleFrontDesk: 1,
	RoleManager:   2,
	RoleAdmin:     3,
}

// HasPermission reports whether r is at least as privileged as required.
func (r Role) HasPermission(required Role) bool {
	return roleHierarchy[r] >= roleHierarchy[required]
}

type Staff struct {
	id           uuid.UUID
	name         string
	email        string
	passwordHash string
	role         Role
	isActive     bool
	lastLoginAt  *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

func NewStaff(name, email, passwordHash string, role Role, now time.Time) (*Staff, error) {
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		return nil, ErrEmptyName
	}
	normalized := strings.TrimSpace(strings.ToLower(email))
	if _, err := mail.ParseAddress(normalized); err != nil {
		return nil, ErrInvalidEmail
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	return &Staff{
		id:           uuid.New(),
		name:         trimmedName,
		email:        normalized,
		passwordHash: passwordHash,
		role:         role,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructStaff(
	id uuid.UUID,
	name, email, passwordHash string,
	role Role,
	isActive bool,
	lastLoginAt *time.Time,
	createdAt, updatedAt time.Time,
) *Staff {
	return &Staff{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		isActive:     isActive,
		lastLoginAt:  lastLoginAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (s *Staff) RecordLogin(now time.Time) error {
	if !s.isActive {
		return ErrDeactivated
	}
	t := now
	s.lastLoginAt = &t
	s.updatedAt = now
	return nil
}

func (s *Staff) ChangeRole(role Role, now time.Time) error {
	if !role.IsValid() {
		return ErrInvalidRole
	}
	s.role = role
	s.updatedAt = now
	return nil
}

func (s *Staff) Deactivate(now time.Time) {
	s.isActive = false
	s.updatedAt = now
}

func (s *Staff) ID() uuid.UUID           { return s.id }
func (s *Staff) Name() string            { return s.name }
func (s *Staff) Email() string           { return s.email }
func (s *Staff) PasswordHash() string    { return s.passwordHash }
func (s *Staff) Role() Role              { return s.role }
func (s *Staff) IsActive() bool          { return s.isActive }
func (s *Staff) LastLoginAt() *time.Time { return s.lastLoginAt }
func (s *Staff) CreatedAt() time.Time    { return s.createdAt }
func (s *Staff) UpdatedAt() time.Time    { return s.updatedAt }
