package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type RoomView struct {
	ID               uuid.UUID `json:"id"`
	Number           string    `json:"number"`
	RoomType         string    `json:"room_type"`
	Floor            int       `json:"floor"`
	Capacity         int       `json:"capacity"`
	NightlyRateCents int64     `json:"nightly_rate_cents"`
	Status           string    `json:"status"`
	StatusReason     *string   `json:"status_reason,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type RoomListItem struct {
	ID               uuid.UUID `json:"id"`
	Number           string    `json:"number"`
	RoomType         string    `json:"room_type"`
	Floor            int       `json:"floor"`
	Capacity         int       `json:"capacity"`
	NightlyRateCents int64     `json:"nightly_rate_cents"`
	Status           string    `json:"status"`
}

type RoomFilter struct {
	Status   *string
	RoomType *string
}

type RoomQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	List(ctx context.Context, filter RoomFilter) ([]*RoomListItem, error)
}

type RoomViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	FindAll(ctx context.Context, filter RoomFilter) ([]*RoomListItem, error)
}

type roomQueriesImpl struct {
	repo RoomViewRepo
}

func NewRoomQueries(repo RoomViewRepo) RoomQueries {
	return &roomQueriesImpl{repo: repo}
}

func (q *roomQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *roomQueriesImpl) List(ctx context.Context, filter RoomFilter) ([]*RoomListItem, error) {
	return q.repo.FindAll(ctx, filter)
}
