package response

import (
	"time"

	"hotel-backoffice/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type OccupancyReportResponse struct {
	From              time.Time `json:"from"`
	To                time.Time `json:"to"`
	TotalRooms        int64     `json:"totalRooms"`
	AvailableNights   int64     `json:"availableNights"`
	OccupiedNights    int64     `json:"occupiedNights"`
	OccupancyRate     float64   `json:"occupancyRate"`
	ReservationsCount int64     `json:"reservationsCount"`
}

type RevenueReportResponse struct {
	From              time.Time `json:"from"`
	To                time.Time `json:"to"`
	RoomRevenueCents  int64     `json:"roomRevenueCents"`
	PaymentsCents     int64     `json:"paymentsCents"`
	OutstandingCents  int64     `json:"outstandingCents"`
	CancelledBookings int64     `json:"cancelledBookings"`
	NoShowBookings    int64     `json:"noShowBookings"`
}

func FromOccupancyReport(report *queries.OccupancyReport) *OccupancyReportResponse {
	var resp OccupancyReportResponse
	_ = copier.Copy(&resp, report)
	return &resp
}

func FromRevenueReport(report *queries.RevenueReport) *RevenueReportResponse {
	var resp RevenueReportResponse
	_ = copier.Copy(&resp, report)
	return &resp
}
