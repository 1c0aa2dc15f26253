package queries

import (
	"context"
	"fmt"
	"time"
)

// OccupancyReport aggregates room-nights over a half-open date range.
type OccupancyReport struct {
	From              time.Time `json:"from"`
	To                time.Time `json:"to"`
	TotalRooms        int64     `json:"total_rooms"`
	AvailableNights   int64     `json:"available_nights"`
	OccupiedNights    int64     `json:"occupied_nights"`
	OccupancyRate     float64   `json:"occupancy_rate"`
	ReservationsCount int64     `json:"reservations_count"`
}

type RevenueReport struct {
	From              time.Time `json:"from"`
	To                time.Time `json:"to"`
	RoomRevenueCents  int64     `json:"room_revenue_cents"`
	PaymentsCents     int64     `json:"payments_cents"`
	OutstandingCents  int64     `json:"outstanding_cents"`
	CancelledBookings int64     `json:"cancelled_bookings"`
	NoShowBookings    int64     `json:"no_show_bookings"`
}

type ReportQueries interface {
	Occupancy(ctx context.Context, from, to time.Time) (*OccupancyReport, error)
	Revenue(ctx context.Context, from, to time.Time) (*RevenueReport, error)
}

type ReportViewRepo interface {
	AggregateOccupancy(ctx context.Context, from, to time.Time) (*OccupancyReport, error)
	AggregateRevenue(ctx context.Context, from, to time.Time) (*RevenueReport, error)
}

// ReportCache fronts the aggregation queries; reports are expensive scans
// and tolerate short staleness.
type ReportCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
}

type reportQueriesImpl struct {
	repo  ReportViewRepo
	cache ReportCache
	ttl   time.Duration
}

func NewReportQueries(repo ReportViewRepo, cache ReportCache, ttl time.Duration) ReportQueries {
	return &reportQueriesImpl{repo: repo, cache: cache, ttl: ttl}
}

func (q *reportQueriesImpl) Occupancy(ctx context.Context, from, to time.Time) (*OccupancyReport, error) {
	key := reportCacheKey("occupancy", from, to)

	var cached OccupancyReport
	if hit, err := q.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	report, err := q.repo.AggregateOccupancy(ctx, from, to)
	if err != nil {
		return nil, err
	}
	// Best effort: a failed cache write must not fail the report.
	_ = q.cache.Set(ctx, key, report, q.ttl)
	return report, nil
}

func (q *reportQueriesImpl) Revenue(ctx context.Context, from, to time.Time) (*RevenueReport, error) {
	key := reportCacheKey("revenue", from, to)

	var cached RevenueReport
	if hit, err := q.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	report, err := q.repo.AggregateRevenue(ctx, from, to)
	if err != nil {
		return nil, err
	}
	_ = q.cache.Set(ctx, key, report, q.ttl)
	return report, nil
}

func reportCacheKey(kind string, from, to time.Time) string {
	return fmt.Sprintf("report:%s:%s:%s", kind, from.Format("2006-01-02"), to.Format("2006-01-02"))
}
