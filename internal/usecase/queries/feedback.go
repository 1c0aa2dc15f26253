package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type FeedbackView struct {
	ID            uuid.UUID `json:"id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	GuestName     string    `json:"guest_name"`
	RoomNumber    string    `json:"room_number"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type RoomRatingView struct {
	RoomID        uuid.UUID `json:"room_id"`
	RoomNumber    string    `json:"room_number"`
	AverageRating float64   `json:"average_rating"`
	FeedbackCount int64     `json:"feedback_count"`
}

type FeedbackQueries interface {
	ListRecent(ctx context.Context, limit int) ([]*FeedbackView, error)
	RoomRatings(ctx context.Context) ([]*RoomRatingView, error)
}

type FeedbackViewRepo interface {
	FindRecent(ctx context.Context, limit int32) ([]*FeedbackView, error)
	AggregateByRoom(ctx context.Context) ([]*RoomRatingView, error)
}

type feedbackQueriesImpl struct {
	repo FeedbackViewRepo
}

func NewFeedbackQueries(repo FeedbackViewRepo) FeedbackQueries {
	return &feedbackQueriesImpl{repo: repo}
}

func (q *feedbackQueriesImpl) ListRecent(ctx context.Context, limit int) ([]*FeedbackView, error) {
	return q.repo.FindRecent(ctx, int32(ValidateLimit(limit)))
}

func (q *feedbackQueriesImpl) RoomRatings(ctx context.Context) ([]*RoomRatingView, error) {
	return q.repo.AggregateByRoom(ctx)
}
