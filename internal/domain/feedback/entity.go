package feedback

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrCommentTooLong = errors.New("comment exceeds maximum length")
)

const maxCommentLength = 2000

// Rating is a 1-5 score left after a stay.
type Rating struct {
	value int
}

func NewRating(value int) (Rating, error) {
	if value < 1 || value > 5 {
		return Rating{}, ErrInvalidRating
	}
	return Rating{value: value}, nil
}

func (r Rating) Value() int {
	return r.value
}

type Comment struct {
	value string
}

func NewComment(raw string) (Comment, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) > maxCommentLength {
		return Comment{}, ErrCommentTooLong
	}
	return Comment{value: trimmed}, nil
}

func (c Comment) Value() string {
	return c.value
}

func (c Comment) IsEmpty() bool {
	return c.value == ""
}

type Feedback struct {
	id            uuid.UUID
	reservationID uuid.UUID
	guestID       uuid.UUID
	rating        Rating
	comment       Comment
	createdAt     time.Time
}

func NewFeedback(reservationID, guestID uuid.UUID, rating Rating, comment Comment, now time.Time) *Feedback {
	return &Feedback{
		id:            uuid.New(),
		reservationID: reservationID,
		guestID:       guestID,
		rating:        rating,
		comment:       comment,
		createdAt:     now,
	}
}

func ReconstructFeedback(
	id, reservationID, guestID uuid.UUID,
	rating Rating,
	comment Comment,
	createdAt time.Time,
) *Feedback {
	return &Feedback{
		id:            id,
		reservationID: reservationID,
		guestID:       guestID,
		rating:        rating,
		comment:       comment,
		createdAt:     createdAt,
	}
}

func (f *Feedback) ID() uuid.UUID            { return f.id }
func (f *Feedback) ReservationID() uuid.UUID { return f.reservationID }
func (f *Feedback) GuestID() uuid.UUID       { return f.guestID }
func (f *Feedback) Rating() Rating           { return f.rating }
func (f *Feedback) Comment() Comment         { return f.comment }
func (f *Feedback) CreatedAt() time.Time     { return f.createdAt }
