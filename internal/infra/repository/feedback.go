package repository

import (
	"context"

	"hotel-backoffice/internal/domain/feedback"
	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/infra/store"

	"github.com/google/uuid"
)

type FeedbackRepository struct {
	db store.Querier
}

func NewFeedbackRepository(db store.Querier) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

const createFeedbackSQL = `
INSERT INTO feedback (id, reservation_id, guest_id, rating, comment, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

func (r *FeedbackRepository) Create(ctx context.Context, f *feedback.Feedback) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, createFeedbackSQL,
		f.ID(), f.ReservationID(), f.GuestID(),
		f.Rating().Value(), f.Comment().Value(), f.CreatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create feedback", err)
	}
	return id, nil
}
