package readstore

import (
	"context"
	"time"

	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/infra/store"
	"hotel-backoffice/internal/pkg/pgconv"
	"hotel-backoffice/internal/usecase/queries"
)

type ReportReadStore struct {
	db store.Querier
}

func NewReportReadStore(db store.Querier) *ReportReadStore {
	return &ReportReadStore{db: db}
}

// Occupied nights are counted per reservation as the overlap between the
// stay and the report window, in whole nights, over blocking statuses plus
// completed stays.
const aggregateOccupancySQL = `
WITH sellable AS (
    SELECT COUNT(*) AS total_rooms
    FROM rooms
    WHERE is_active AND status <> 'out_of_service'
),
stays AS (
    SELECT COUNT(*) AS reservations_count,
           COALESCE(SUM(
               (LEAST(check_out, $2::date) - GREATEST(check_in, $1::date))
           ), 0) AS occupied_nights
    FROM reservations
    WHERE is_active
      AND status IN ('confirmed', 'checked_in', 'checked_out')
      AND check_in < $2
      AND check_out > $1
)
SELECT sellable.total_rooms,
       sellable.total_rooms * ($2::date - $1::date) AS available_nights,
       stays.occupied_nights,
       stays.reservations_count
FROM sellable, stays`

func (r *ReportReadStore) AggregateOccupancy(ctx context.Context, from, to time.Time) (*queries.OccupancyReport, error) {
	report := &queries.OccupancyReport{From: from, To: to}
	err := r.db.QueryRow(ctx, aggregateOccupancySQL,
		pgconv.DateToPgtype(from), pgconv.DateToPgtype(to),
	).Scan(&report.TotalRooms, &report.AvailableNights, &report.OccupiedNights, &report.ReservationsCount)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate occupancy", err)
	}
	if report.AvailableNights > 0 {
		report.OccupancyRate = float64(report.OccupiedNights) / float64(report.AvailableNights)
	}
	return report, nil
}

const aggregateRevenueSQL = `
SELECT
    COALESCE((
        SELECT SUM(total_amount_cents)
        FROM reservations
        WHERE is_active
          AND status IN ('confirmed', 'checked_in', 'checked_out')
          AND check_in < $2 AND check_out > $1
    ), 0) AS room_revenue_cents,
    COALESCE((
        SELECT SUM(p.amount_cents)
        FROM payments p
        WHERE p.paid_at >= $1 AND p.paid_at < $2
    ), 0) AS payments_cents,
    COALESCE((
        SELECT SUM(li.quantity * li.unit_price_cents)
        FROM bills b
        JOIN bill_line_items li ON li.bill_id = b.id
        WHERE b.status IN ('issued', 'partially_paid')
    ), 0) - COALESCE((
        SELECT SUM(p.amount_cents)
        FROM bills b
        JOIN payments p ON p.bill_id = b.id
        WHERE b.status IN ('issued', 'partially_paid')
    ), 0) AS outstanding_cents,
    (SELECT COUNT(*) FROM reservations
     WHERE status = 'cancelled' AND cancelled_at >= $1 AND cancelled_at < $2) AS cancelled_bookings,
    (SELECT COUNT(*) FROM reservations
     WHERE status = 'no_show' AND check_in >= $1::date AND check_in < $2::date) AS no_show_bookings`

func (r *ReportReadStore) AggregateRevenue(ctx context.Context, from, to time.Time) (*queries.RevenueReport, error) {
	report := &queries.RevenueReport{From: from, To: to}
	err := r.db.QueryRow(ctx, aggregateRevenueSQL, from, to).Scan(
		&report.RoomRevenueCents, &report.PaymentsCents, &report.OutstandingCents,
		&report.CancelledBookings, &report.NoShowBookings,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate revenue", err)
	}
	return report, nil
}
