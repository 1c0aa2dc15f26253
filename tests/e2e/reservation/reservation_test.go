//go:build e2e

package reservation_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	reqdto "hotel-backoffice/internal/handler/dto/request"
	resdto "hotel-backoffice/internal/handler/dto/response"
	"hotel-backoffice/tests/common/authtest"
	"hotel-backoffice/tests/common/builder"
	"hotel-backoffice/tests/common/dbtest"
	"hotel-backoffice/tests/common/httptest"
	"hotel-backoffice/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL = "/api/reservations"
	availabilityURL = "/api/rooms/%s/availability?check_in=%s&check_out=%s"
	billsURL        = "/api/bills"
)

type ReservationSuite struct {
	e2e.SharedSuite
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

func (s *ReservationSuite) createReservation(t *testing.T, token string, guestID, roomID uuid.UUID, checkIn, checkOut time.Time) uuid.UUID {
	t.Helper()

	reqBody := builder.NewReservationBuilder().
		With(func(b *builder.ReservationBuilder) {
			b.GuestID = guestID
			b.RoomID = roomID
			b.CheckIn = checkIn
			b.CheckOut = checkOut
		}).
		BuildCreateRequestDTO()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created resdto.IDResponse
	httptest.DecodeResponseBody(t, w.Body, &created)
	require.NotEqual(t, uuid.Nil, created.ID)
	return created.ID
}

func (s *ReservationSuite) updateStatus(t *testing.T, token string, id uuid.UUID, status string) int {
	t.Helper()

	w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
		reservationsURL+"/"+id.String()+"/status",
		reqdto.UpdateReservationStatusRequest{Status: status}, token)
	return w.Code
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// =============================================================================
// TestReservationLifecycle - full front-desk flow from booking to departure
// =============================================================================

func (s *ReservationSuite) TestReservationLifecycle() {
	s.Run("Normal case: reservation moves through confirm, check-in and check-out", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "frontdesk@example.com", "front_desk")
		guestID := dbtest.CreateTestGuest(t, s.DB, "ada@example.com")
		roomID := dbtest.CreateTestRoom(t, s.DB, "301", 2, 15000)

		resID := s.createReservation(t, token, guestID, roomID, day(2027, 3, 1), day(2027, 3, 4))

		// Pending after creation
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"/"+resID.String(), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var view resdto.ReservationResponse
		httptest.DecodeResponseBody(t, w.Body, &view)
		require.Equal(t, "pending", view.Status)
		require.Equal(t, 3, view.Nights)
		require.Equal(t, int64(45000), view.TotalAmountCents)

		// Confirm
		require.Equal(t, http.StatusOK, s.updateStatus(t, token, resID, "confirmed"))

		// Check in
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL+"/"+resID.String()+"/check-in", nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var roomStatus string
		err := s.DB.QueryRow(context.Background(), "SELECT status FROM rooms WHERE id = $1", roomID).Scan(&roomStatus)
		require.NoError(t, err)
		require.Equal(t, "occupied", roomStatus)

		// Check out returns the departure bill
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL+"/"+resID.String()+"/check-out", nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var billRef resdto.IDResponse
		httptest.DecodeResponseBody(t, w.Body, &billRef)
		require.NotEqual(t, uuid.Nil, billRef.ID)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, billsURL+"/"+billRef.ID.String(), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var bill resdto.BillResponse
		httptest.DecodeResponseBody(t, w.Body, &bill)
		require.Equal(t, resID, bill.ReservationID)
		require.Equal(t, "draft", bill.Status)
		require.Equal(t, int64(45000), bill.TotalCents)

		// Departed guests leave the room in cleaning
		err = s.DB.QueryRow(context.Background(), "SELECT status FROM rooms WHERE id = $1", roomID).Scan(&roomStatus)
		require.NoError(t, err)
		require.Equal(t, "cleaning", roomStatus)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"/"+resID.String(), nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		httptest.DecodeResponseBody(t, w.Body, &view)
		require.Equal(t, "checked_out", view.Status)
	})

	s.Run("Error case: check-in before confirmation is rejected", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "frontdesk@example.com", "front_desk")
		guestID := dbtest.CreateTestGuest(t, s.DB, "ada@example.com")
		roomID := dbtest.CreateTestRoom(t, s.DB, "301", 2, 15000)

		resID := s.createReservation(t, token, guestID, roomID, day(2027, 3, 1), day(2027, 3, 4))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL+"/"+resID.String()+"/check-in", nil, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Auth test: reservation endpoints require a token", func() {
		t := s.T()

		reqBody := builder.NewReservationBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, "")
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestAvailability - overlap detection across the whole stack
// =============================================================================

func (s *ReservationSuite) TestAvailability() {
	s.Run("Normal case: confirmed stay blocks overlapping bookings", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "frontdesk@example.com", "front_desk")
		guestID := dbtest.CreateTestGuest(t, s.DB, "ada@example.com")
		otherGuestID := dbtest.CreateTestGuest(t, s.DB, "grace@example.com")
		roomID := dbtest.CreateTestRoom(t, s.DB, "301", 2, 15000)

		first := s.createReservation(t, token, guestID, roomID, day(2027, 3, 1), day(2027, 3, 4))
		require.Equal(t, http.StatusOK, s.updateStatus(t, token, first, "confirmed"))

		// The availability endpoint names the blocker
		url := fmt.Sprintf(availabilityURL, roomID, "2027-03-02", "2027-03-05")
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var av resdto.AvailabilityResponse
		httptest.DecodeResponseBody(t, w.Body, &av)
		require.False(t, av.Available)
		require.NotNil(t, av.BlockingReservationID)
		require.Equal(t, first, *av.BlockingReservationID)

		// A second pending booking is allowed, confirming it is not
		second := s.createReservation(t, token, otherGuestID, roomID, day(2027, 3, 2), day(2027, 3, 5))
		require.Equal(t, http.StatusConflict, s.updateStatus(t, token, second, "confirmed"))
	})

	s.Run("Error case: booking over a confirmed stay is rejected at create", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "frontdesk@example.com", "front_desk")
		guestID := dbtest.CreateTestGuest(t, s.DB, "ada@example.com")
		otherGuestID := dbtest.CreateTestGuest(t, s.DB, "grace@example.com")
		roomID := dbtest.CreateTestRoom(t, s.DB, "301", 2, 15000)

		first := s.createReservation(t, token, guestID, roomID, day(2027, 3, 1), day(2027, 3, 5))
		require.Equal(t, http.StatusOK, s.updateStatus(t, token, first, "confirmed"))

		// One shared night is enough to conflict
		reqBody := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) {
				b.GuestID = otherGuestID
				b.RoomID = roomID
				b.CheckIn = day(2027, 3, 4)
				b.CheckOut = day(2027, 3, 8)
			}).
			BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		// Starting on the departure day is not a conflict
		s.createReservation(t, token, otherGuestID, roomID, day(2027, 3, 5), day(2027, 3, 8))
	})

	s.Run("Normal case: back-to-back stays share the turnover day", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "frontdesk@example.com", "front_desk")
		guestID := dbtest.CreateTestGuest(t, s.DB, "ada@example.com")
		otherGuestID := dbtest.CreateTestGuest(t, s.DB, "grace@example.com")
		roomID := dbtest.CreateTestRoom(t, s.DB, "301", 2, 15000)

		first := s.createReservation(t, token, guestID, roomID, day(2027, 3, 1), day(2027, 3, 4))
		require.Equal(t, http.StatusOK, s.updateStatus(t, token, first, "confirmed"))

		second := s.createReservation(t, token, otherGuestID, roomID, day(2027, 3, 4), day(2027, 3, 7))
		require.Equal(t, http.StatusOK, s.updateStatus(t, token, second, "confirmed"))
	})

	s.Run("Normal case: cancellation frees the room", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "frontdesk@example.com", "front_desk")
		guestID := dbtest.CreateTestGuest(t, s.DB, "ada@example.com")
		otherGuestID := dbtest.CreateTestGuest(t, s.DB, "grace@example.com")
		roomID := dbtest.CreateTestRoom(t, s.DB, "301", 2, 15000)

		first := s.createReservation(t, token, guestID, roomID, day(2027, 3, 1), day(2027, 3, 4))
		require.Equal(t, http.StatusOK, s.updateStatus(t, token, first, "confirmed"))

		second := s.createReservation(t, token, otherGuestID, roomID, day(2027, 3, 2), day(2027, 3, 5))
		require.Equal(t, http.StatusConflict, s.updateStatus(t, token, second, "confirmed"))

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			reservationsURL+"/"+first.String()+"/status",
			map[string]any{"status": "cancelled", "reason": "plans changed"}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		require.Equal(t, http.StatusOK, s.updateStatus(t, token, second, "confirmed"))
	})

	s.Run("Concurrency: only one of two racing confirms wins the room", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "frontdesk@example.com", "front_desk")
		guestID := dbtest.CreateTestGuest(t, s.DB, "ada@example.com")
		otherGuestID := dbtest.CreateTestGuest(t, s.DB, "grace@example.com")
		roomID := dbtest.CreateTestRoom(t, s.DB, "301", 2, 15000)

		first := s.createReservation(t, token, guestID, roomID, day(2027, 3, 1), day(2027, 3, 4))
		second := s.createReservation(t, token, otherGuestID, roomID, day(2027, 3, 2), day(2027, 3, 5))

		var wg sync.WaitGroup
		codes := make([]int, 2)
		for i, id := range []uuid.UUID{first, second} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				codes[i] = s.updateStatus(t, token, id, "confirmed")
			}()
		}
		wg.Wait()

		wins := 0
		for _, code := range codes {
			if code == http.StatusOK {
				wins++
			} else {
				require.Equal(t, http.StatusConflict, code)
			}
		}
		require.Equal(t, 1, wins, "exactly one confirm should win the room")

		var blocking int
		err := s.DB.QueryRow(context.Background(),
			"SELECT count(*) FROM reservations WHERE COALESCE(assigned_room_id, room_id) = $1 AND status = 'confirmed'", roomID).Scan(&blocking)
		require.NoError(t, err)
		require.Equal(t, 1, blocking)
	})

	s.Run("Concurrency: racing identical bookings leave one blocking stay", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "frontdesk@example.com", "front_desk")
		guestIDs := []uuid.UUID{
			dbtest.CreateTestGuest(t, s.DB, "ada@example.com"),
			dbtest.CreateTestGuest(t, s.DB, "grace@example.com"),
		}
		roomID := dbtest.CreateTestRoom(t, s.DB, "301", 2, 15000)

		// Pending holds do not block each other, so each racer books and
		// immediately confirms; whoever confirms second must lose.
		var wg sync.WaitGroup
		outcomes := make([]int, 2)
		for i := range guestIDs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				reqBody := builder.NewReservationBuilder().
					With(func(b *builder.ReservationBuilder) {
						b.GuestID = guestIDs[i]
						b.RoomID = roomID
						b.CheckIn = day(2027, 3, 1)
						b.CheckOut = day(2027, 3, 4)
					}).
					BuildCreateRequestDTO()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, token)
				if w.Code != http.StatusCreated {
					outcomes[i] = w.Code
					return
				}
				var created resdto.IDResponse
				httptest.DecodeResponseBody(t, w.Body, &created)
				outcomes[i] = s.updateStatus(t, token, created.ID, "confirmed")
			}()
		}
		wg.Wait()

		wins := 0
		for _, code := range outcomes {
			if code == http.StatusOK {
				wins++
			} else {
				require.Equal(t, http.StatusConflict, code)
			}
		}
		require.Equal(t, 1, wins, "exactly one booking should end confirmed")

		var blocking int
		err := s.DB.QueryRow(context.Background(),
			"SELECT count(*) FROM reservations WHERE room_id = $1 AND status = 'confirmed'", roomID).Scan(&blocking)
		require.NoError(t, err)
		require.Equal(t, 1, blocking)
	})
}

// =============================================================================
// TestSoftDelete - role-gated removal of abandoned bookings
// =============================================================================

func (s *ReservationSuite) TestSoftDelete() {
	s.Run("Normal case: manager deletes a pending reservation", func() {
		t := s.T()

		managerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "manager@example.com", "manager")
		guestID := dbtest.CreateTestGuest(t, s.DB, "ada@example.com")
		roomID := dbtest.CreateTestRoom(t, s.DB, "301", 2, 15000)

		resID := s.createReservation(t, managerToken, guestID, roomID, day(2027, 3, 1), day(2027, 3, 4))

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, reservationsURL+"/"+resID.String(),
			reqdto.DeleteReservationRequest{Reason: "duplicate booking"}, managerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		// Deleted reservations drop out of reads
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"/"+resID.String(), nil, managerToken)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})

	s.Run("Authorization test: front desk cannot delete", func() {
		t := s.T()

		frontToken := authtest.CreateAndLogin(t, s.DB, s.Router, "frontdesk@example.com", "front_desk")
		guestID := dbtest.CreateTestGuest(t, s.DB, "ada@example.com")
		roomID := dbtest.CreateTestRoom(t, s.DB, "301", 2, 15000)

		resID := s.createReservation(t, frontToken, guestID, roomID, day(2027, 3, 1), day(2027, 3, 4))

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, reservationsURL+"/"+resID.String(),
			reqdto.DeleteReservationRequest{Reason: "nope"}, frontToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}
