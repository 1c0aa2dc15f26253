//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"hotel-backoffice/internal/handler/api"
	resdto "hotel-backoffice/internal/handler/dto/response"
	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/pkg/errs"
	"hotel-backoffice/internal/usecase/commands"
	"hotel-backoffice/internal/usecase/queries"
	"hotel-backoffice/tests/common/builder"
	"hotel-backoffice/tests/common/httptest"
	"hotel-backoffice/tests/common/testutil"
	commandsmock "hotel-backoffice/tests/mock/commands"
	queriesmock "hotel-backoffice/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockCtrl       *gomock.Controller
	mockCommands   *commandsmock.MockReservationCommands
	mockCheckInOut *commandsmock.MockCheckInOutCommands
	mockQueries    *queriesmock.MockReservationQueries
	handler        *api.ReservationHandler
	staffID        uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockCheckInOut = commandsmock.NewMockCheckInOutCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockCheckInOut, s.mockQueries)
	s.staffID = uuid.New()

	// Check-in and check-out read the acting staff member from the
	// context, which the auth middleware sets in production.
	staffMiddleware := func(c *gin.Context) {
		c.Set("staff_id", s.staffID)
		c.Next()
	}

	s.router.POST("/reservations", s.handler.Create)
	s.router.GET("/reservations", s.handler.List)
	s.router.GET("/reservations/:id", s.handler.Get)
	s.router.PATCH("/reservations/:id", s.handler.Update)
	s.router.DELETE("/reservations/:id", s.handler.Delete)
	s.router.PATCH("/reservations/:id/confirm", s.handler.Confirm)
	s.router.PATCH("/reservations/:id/cancel", s.handler.Cancel)
	s.router.PATCH("/reservations/:id/status", s.handler.UpdateStatus)
	s.router.POST("/reservations/:id/assign-room", s.handler.AssignRoom)
	s.router.POST("/reservations/:id/check-in", staffMiddleware, s.handler.CheckIn)
	s.router.POST("/reservations/:id/check-out", staffMiddleware, s.handler.CheckOut)
	s.router.GET("/rooms/available", s.handler.ListAvailableRooms)
	s.router.GET("/rooms/:id/availability", s.handler.CheckAvailability)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreate() {
	url := "/reservations"
	reqBody := builder.NewReservationBuilder().BuildCreateRequestDTO()

	s.Run("success: returns 201 Created with the new ID", func() {
		newID := uuid.New()
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(newID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.IDResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(newID, body.ID)
	})

	s.Run("error: 400 Bad Request on validation failures", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing guest_id", mutate: testutil.Field("guest_id", nil)},
			{name: "missing room_id", mutate: testutil.Field("room_id", nil)},
			{name: "missing check_in", mutate: testutil.Field("check_in", nil)},
			{name: "zero guests", mutate: testutil.Field("number_of_guests", 0)},
			{name: "unknown source", mutate: testutil.Field("source", "carrier_pigeon")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest)
			})
		}
	})

	s.Run("error: 404 Not Found for an unknown guest", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, commands.ErrGuestNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound)
	})

	s.Run("error: 422 Unprocessable Entity when capacity is exceeded", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, commands.ErrCapacityExceeded).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity)
	})

	s.Run("error: 422 Unprocessable Entity for a room pulled from sale", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, commands.ErrRoomNotSellable).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity)
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGet() {
	s.Run("success: returns the reservation view", func() {
		view := builder.NewReservationBuilder().BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+view.ID.String(), nil, "")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
		s.Equal(view.GuestName, body.GuestName)
		s.Equal(view.RoomNumber, body.RoomNumber)
		s.Equal(view.TotalAmountCents, body.TotalAmountCents)
	})

	s.Run("error: 404 Not Found for an unknown reservation", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound)
	})

	s.Run("error: 400 Bad Request for a malformed ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest)
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *ReservationHandlerTestSuite) TestList() {
	s.Run("success: returns a page with a cursor", func() {
		items := []*queries.ReservationListItem{
			builder.NewReservationBuilder().BuildListItem(),
			builder.NewReservationBuilder().BuildListItem(),
		}
		next := &queries.Cursor{After: "opaque-cursor"}
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Nil(), 20).
			Return(items, next, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations", nil, "")

		var body resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Items, 2)
		s.Require().NotNil(body.NextCursor)
		s.Equal("opaque-cursor", *body.NextCursor)
	})

	s.Run("success: forwards status filter and cursor", func() {
		s.mockQueries.EXPECT().
			List(gomock.Any(), gomock.Any(), gomock.Any(), 5).
			DoAndReturn(func(_ any, filter queries.ReservationFilter, after *queries.Cursor, _ int) ([]*queries.ReservationListItem, *queries.Cursor, error) {
				s.Require().NotNil(filter.Status)
				s.Equal("confirmed", *filter.Status)
				s.Require().NotNil(after)
				s.Equal("abc", after.After)
				return nil, nil, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?status=confirmed&after=abc&limit=5", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}

// ================================================================================
// TestConfirmAndCancel
// ================================================================================

func (s *ReservationHandlerTestSuite) TestConfirm() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/confirm"

	s.Run("success: confirms a pending reservation", func() {
		s.mockCommands.EXPECT().Confirm(gomock.Any(), id).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 409 Conflict when the room was taken meanwhile", func() {
		s.mockCommands.EXPECT().Confirm(gomock.Any(), id).
			Return(commands.ErrRoomUnavailable).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict)
	})

	s.Run("error: 404 Not Found for an unknown reservation", func() {
		s.mockCommands.EXPECT().Confirm(gomock.Any(), id).
			Return(commands.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound)
	})
}

func (s *ReservationHandlerTestSuite) TestCancel() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/cancel"

	s.Run("success: cancels with the given reason", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, "guest request").
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"reason": "guest request"}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 409 Conflict after departure", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, gomock.Any()).
			Return(commands.ErrIllegalTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"reason": "too late"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict)
	})

	s.Run("error: marked transition errors still map to 409", func() {
		marked := errs.Mark(errors.New("cannot cancel after departure"), commands.ErrIllegalTransition)
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, gomock.Any()).
			Return(marked).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"reason": "too late"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict)
	})

	s.Run("error: 400 Bad Request without a reason", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest)
	})
}

// ================================================================================
// TestUpdateStatus
// ================================================================================

func (s *ReservationHandlerTestSuite) TestUpdateStatus() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/status"

	s.Run("success: dispatches a confirm transition", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), id, "confirmed").
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "confirmed"}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: cancellation routes through Cancel with the reason", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, "guest called to cancel").
			Return(nil).Times(1)

		body := map[string]any{"status": "cancelled", "reason": "guest called to cancel"}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 409 Conflict on an illegal transition", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), id, "checked_in").
			Return(commands.ErrIllegalTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "checked_in"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict)
	})

	s.Run("error: 409 Conflict when the room is no longer free", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), id, "confirmed").
			Return(commands.ErrRoomUnavailable).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "confirmed"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict)
	})

	s.Run("error: 400 Bad Request without a status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest)
	})
}

// ================================================================================
// TestUpdate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestUpdate() {
	id := uuid.New()
	url := "/reservations/" + id.String()

	s.Run("success: forwards the changed fields", func() {
		newRoom := uuid.New()
		s.mockCommands.EXPECT().
			Update(gomock.Any(), id, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, input commands.UpdateReservationInput) error {
				s.Require().NotNil(input.RoomID)
				s.Equal(newRoom, *input.RoomID)
				s.Nil(input.CheckIn)
				return nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"room_id": newRoom}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 409 Conflict when a stay move collides", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), id, gomock.Any()).
			Return(commands.ErrRoomUnavailable).Times(1)

		body := map[string]any{"check_in": time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict)
	})
}

// ================================================================================
// TestAssignRoom
// ================================================================================

func (s *ReservationHandlerTestSuite) TestAssignRoom() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/assign-room"

	s.Run("success: assigns the requested room", func() {
		roomID := uuid.New()
		s.mockCommands.EXPECT().AssignRoom(gomock.Any(), id, roomID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"room_id": roomID}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 409 Conflict when the room is blocked", func() {
		roomID := uuid.New()
		s.mockCommands.EXPECT().AssignRoom(gomock.Any(), id, roomID).
			Return(commands.ErrRoomUnavailable).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"room_id": roomID}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict)
	})
}

// ================================================================================
// TestCheckInOut
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCheckIn() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/check-in"

	s.Run("success: checks the guest in as the acting staff member", func() {
		s.mockCheckInOut.EXPECT().CheckIn(gomock.Any(), id, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, staffID uuid.UUID) error {
				s.Equal(s.staffID, staffID)
				return nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 409 Conflict before confirmation", func() {
		s.mockCheckInOut.EXPECT().CheckIn(gomock.Any(), id, gomock.Any()).
			Return(commands.ErrIllegalTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict)
	})

	s.Run("error: 409 Conflict when the room is not ready", func() {
		s.mockCheckInOut.EXPECT().CheckIn(gomock.Any(), id, gomock.Any()).
			Return(commands.ErrRoomNotReady).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict)
	})
}

func (s *ReservationHandlerTestSuite) TestCheckOut() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/check-out"

	s.Run("success: returns the departure bill ID", func() {
		billID := uuid.New()
		s.mockCheckInOut.EXPECT().CheckOut(gomock.Any(), id, gomock.Any()).
			Return(billID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

		var body resdto.IDResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(billID, body.ID)
	})

	s.Run("error: 404 Not Found for an unknown reservation", func() {
		s.mockCheckInOut.EXPECT().CheckOut(gomock.Any(), id, gomock.Any()).
			Return(uuid.Nil, commands.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound)
	})
}

// ================================================================================
// TestDelete
// ================================================================================

func (s *ReservationHandlerTestSuite) TestDelete() {
	id := uuid.New()
	url := "/reservations/" + id.String()

	s.Run("success: soft-deletes with a reason", func() {
		s.mockCommands.EXPECT().SoftDelete(gomock.Any(), id, "duplicate booking").
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, map[string]any{"reason": "duplicate booking"}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 409 Conflict for a blocking reservation", func() {
		s.mockCommands.EXPECT().SoftDelete(gomock.Any(), id, gomock.Any()).
			Return(commands.ErrNotDeletable).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, map[string]any{"reason": "oops"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict)
	})

	s.Run("error: 400 Bad Request without a reason", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest)
	})
}

// ================================================================================
// TestAvailability
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCheckAvailability() {
	roomID := uuid.New()
	base := "/rooms/" + roomID.String() + "/availability"

	s.Run("success: reports a free room", func() {
		s.mockQueries.EXPECT().CheckAvailability(gomock.Any(), roomID, gomock.Any(), gomock.Any()).
			Return(&queries.RoomAvailability{
				RoomID:    roomID,
				CheckIn:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				CheckOut:  time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
				Available: true,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+"?check_in=2026-03-01&check_out=2026-03-04", nil, "")

		var body resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Available)
		s.Nil(body.BlockingReservationID)
	})

	s.Run("success: names the blocking reservation", func() {
		blocking := uuid.New()
		s.mockQueries.EXPECT().CheckAvailability(gomock.Any(), roomID, gomock.Any(), gomock.Any()).
			Return(&queries.RoomAvailability{
				RoomID:                roomID,
				Available:             false,
				BlockingReservationID: &blocking,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+"?check_in=2026-03-01&check_out=2026-03-04", nil, "")

		var body resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.Available)
		s.Require().NotNil(body.BlockingReservationID)
		s.Equal(blocking, *body.BlockingReservationID)
	})

	s.Run("error: 400 Bad Request for an inverted window", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+"?check_in=2026-03-04&check_out=2026-03-01", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest)
	})

	s.Run("error: 400 Bad Request without dates", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest)
	})
}

func (s *ReservationHandlerTestSuite) TestListAvailableRooms() {
	s.Run("success: forwards the room filters", func() {
		s.mockQueries.EXPECT().
			ListAvailableRooms(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, _, _ time.Time, roomType *string, minCapacity *int) ([]*queries.RoomListItem, error) {
				s.Require().NotNil(roomType)
				s.Equal("double", *roomType)
				s.Require().NotNil(minCapacity)
				s.Equal(2, *minCapacity)
				return []*queries.RoomListItem{}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rooms/available?check_in=2026-03-01&check_out=2026-03-04&room_type=double&min_capacity=2", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}
