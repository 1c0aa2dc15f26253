package commands

import (
	"context"

	"hotel-backoffice/internal/domain/feedback"
	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/pkg/clock"
	"hotel-backoffice/internal/pkg/errs"
	"hotel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrStayNotCompleted  = errs.New("feedback requires a completed stay")
	ErrFeedbackDuplicate = errs.New("feedback already submitted for this reservation")
)

type SubmitFeedbackInput struct {
	ReservationID uuid.UUID
	Rating        int
	Comment       string
}

type FeedbackCommands interface {
	// Submit accepts feedback only for reservations whose stay has completed.
	Submit(ctx context.Context, input SubmitFeedbackInput) (uuid.UUID, error)
}

type feedbackCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewFeedbackCommands(uow shared.UnitOfWork, clk clock.Clock) FeedbackCommands {
	return &feedbackCommandsImpl{uow: uow, clock: clk}
}

func (c *feedbackCommandsImpl) Submit(ctx context.Context, input SubmitFeedbackInput) (uuid.UUID, error) {
	now := c.clock.Now()

	rating, err := feedback.NewRating(input.Rating)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}
	comment, err := feedback.NewComment(input.Comment)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var feedbackID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		resSnap, err := tx.Reads().ReservationByID(ctx, input.ReservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperation)
		}
		if !resSnap.IsActive {
			return ErrReservationNotFound
		}
		if resSnap.Status != "checked_out" {
			return ErrStayNotCompleted
		}

		fb := feedback.NewFeedback(resSnap.ID, resSnap.GuestID, rating, comment, now)
		feedbackID, err = tx.Feedback().Create(ctx, fb)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrFeedbackDuplicate
			}
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return feedbackID, nil
}
