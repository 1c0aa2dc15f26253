package readstore

import (
	"context"

	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/infra/store"
	"hotel-backoffice/internal/pkg/pgconv"
	"hotel-backoffice/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

type FeedbackReadStore struct {
	db store.Querier
}

func NewFeedbackReadStore(db store.Querier) *FeedbackReadStore {
	return &FeedbackReadStore{db: db}
}

const findRecentFeedbackSQL = `
SELECT f.id, f.reservation_id, g.first_name || ' ' || g.last_name AS guest_name,
       rm.number AS room_number, f.rating, f.comment, f.created_at
FROM feedback f
JOIN guests g ON g.id = f.guest_id
JOIN reservations r ON r.id = f.reservation_id
JOIN rooms rm ON rm.id = COALESCE(r.assigned_room_id, r.room_id)
ORDER BY f.created_at DESC
LIMIT $1`

func (r *FeedbackReadStore) FindRecent(ctx context.Context, limit int32) ([]*queries.FeedbackView, error) {
	rows, err := r.db.Query(ctx, findRecentFeedbackSQL, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list recent feedback", err)
	}
	defer rows.Close()

	var result []*queries.FeedbackView
	for rows.Next() {
		var (
			v         queries.FeedbackView
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&v.ID, &v.ReservationID, &v.GuestName, &v.RoomNumber,
			&v.Rating, &v.Comment, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan feedback view", err)
		}
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate feedback", err)
	}
	return result, nil
}

const aggregateRoomRatingsSQL = `
SELECT rm.id, rm.number, AVG(f.rating)::float8, COUNT(*)
FROM feedback f
JOIN reservations r ON r.id = f.reservation_id
JOIN rooms rm ON rm.id = COALESCE(r.assigned_room_id, r.room_id)
GROUP BY rm.id, rm.number
ORDER BY rm.number`

func (r *FeedbackReadStore) AggregateByRoom(ctx context.Context) ([]*queries.RoomRatingView, error) {
	rows, err := r.db.Query(ctx, aggregateRoomRatingsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate room ratings", err)
	}
	defer rows.Close()

	var result []*queries.RoomRatingView
	for rows.Next() {
		var v queries.RoomRatingView
		if err := rows.Scan(&v.RoomID, &v.RoomNumber, &v.AverageRating, &v.FeedbackCount); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room rating", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate room ratings", err)
	}
	return result, nil
}
