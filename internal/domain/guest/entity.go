package guest

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName      = errors.New("guest name must not be empty")
	ErrInvalidEmail   = errors.New("invalid email address")
	ErrAlreadyDeleted = errors.New("guest is already deleted")
)

// Email is a validated, lowercased address.
type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	trimmed := strings.TrimSpace(strings.ToLower(raw))
	if trimmed == "" {
		return Email{}, ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: trimmed}, nil
}

func (e Email) String() string {
	return e.value
}

type Guest struct {
	id         uuid.UUID
	firstName  string
	lastName   string
	email      Email
	phone      *string
	documentID *string
	notes      *string
	isActive   bool
	createdAt  time.Time
	updatedAt  time.Time
}

func NewGuest(firstName, lastName string, email Email, phone, documentID *string, now time.Time) (*Guest, error) {
	first := strings.TrimSpace(firstName)
	last := strings.TrimSpace(lastName)
	if first == "" || last == "" {
		return nil, ErrEmptyName
	}

	return &Guest{
		id:         uuid.New(),
		firstName:  first,
		lastName:   last,
		email:      email,
		phone:      phone,
		documentID: documentID,
		isActive:   true,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructGuest(
	id uuid.UUID,
	firstName, lastName string,
	email Email,
	phone, documentID, notes *string,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Guest {
	return &Guest{
		id:         id,
		firstName:  firstName,
		lastName:   lastName,
		email:      email,
		phone:      phone,
		documentID: documentID,
		notes:      notes,
		isActive:   isActive,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (g *Guest) UpdateProfile(firstName, lastName string, email Email, phone, documentID, notes *string, now time.Time) error {
	first := strings.TrimSpace(firstName)
	last := strings.TrimSpace(lastName)
	if first == "" || last == "" {
		return ErrEmptyName
	}
	g.firstName = first
	g.lastName = last
	g.email = email
	g.phone = phone
	g.documentID = documentID
	g.notes = notes
	g.updatedAt = now
	return nil
}

func (g *Guest) SoftDelete(now time.Time) error {
	if !g.isActive {
		return ErrAlreadyDeleted
	}
	g.isActive = false
	g.updatedAt = now
	return nil
}

func (g *Guest) FullName() string {
	return g.firstName + " " + g.lastName
}

func (g *Guest) ID() uuid.UUID        { return g.id }
func (g *Guest) FirstName() string    { return g.firstName }
func (g *Guest) LastName() string     { return g.lastName }
func (g *Guest) Email() Email         { return g.email }
func (g *Guest) Phone() *string       { return g.phone }
func (g *Guest) DocumentID() *string  { return g.documentID }
func (g *Guest) Notes() *string       { return g.notes }
func (g *Guest) IsActive() bool       { return g.isActive }
func (g *Guest) CreatedAt() time.Time { return g.createdAt }
func (g *Guest) UpdatedAt() time.Time { return g.updatedAt }
