package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cimillas/event-lodging/internal/app"
	"github.com/cimillas/event-lodging/internal/domain"
)

// BookingService is the minimal interface needed for the booking endpoints.
type BookingService interface {
	GetBooking(ctx context.Context, userID int64) (domain.BookingWithRoom, error)
	CreateBooking(ctx context.Context, in app.CreateBookingInput) (domain.Booking, error)
	ChangeBooking(ctx context.Context, in app.ChangeBookingInput) (domain.Booking, error)
}

// HandleGetBooking returns the caller's booking with its room.
func HandleGetBooking(svc BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
			return
		}

		b, err := svc.GetBooking(r.Context(), userID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, bookingResponse{
			ID:   b.Booking.ID,
			Room: newRoomResponse(b.Room),
		})
	}
}

// HandleCreateBooking books a room for the caller.
func HandleCreateBooking(svc BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
			return
		}

		var req roomSelectionRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		booking, err := svc.CreateBooking(r.Context(), app.CreateBookingInput{
			UserID: userID,
			RoomID: req.RoomID,
		})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, bookingIDResponse{BookingID: booking.ID})
	}
}

// HandleChangeBooking moves the caller's booking to another room.
func HandleChangeBooking(svc BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
			return
		}

		bookingID, ok := pathID(r, "bookingId")
		if !ok {
			writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
			return
		}

		var req roomSelectionRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		booking, err := svc.ChangeBooking(r.Context(), app.ChangeBookingInput{
			BookingID: bookingID,
			RoomID:    req.RoomID,
			UserID:    userID,
		})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, bookingIDResponse{BookingID: booking.ID})
	}
}

type roomSelectionRequest struct {
	RoomID int64 `json:"roomId" validate:"required,gt=0"`
}

type bookingIDResponse struct {
	BookingID int64 `json:"bookingId"`
}

type bookingResponse struct {
	ID   int64        `json:"id"`
	Room roomResponse `json:"Room"`
}

type roomResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	HotelID   int64     `json:"hotelId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newRoomResponse(room domain.Room) roomResponse {
	return roomResponse{
		ID:        room.ID,
		Name:      room.Name,
		Capacity:  room.Capacity,
		HotelID:   room.HotelID,
		CreatedAt: room.CreatedAt,
		UpdatedAt: room.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
