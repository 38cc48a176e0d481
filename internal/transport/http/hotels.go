package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cimillas/event-lodging/internal/domain"
)

// HotelCatalog is the minimal interface needed for the attendee hotel endpoints.
type HotelCatalog interface {
	ListHotels(ctx context.Context, userID int64) ([]domain.Hotel, error)
	GetHotelWithRooms(ctx context.Context, userID, hotelID int64) (domain.HotelWithRooms, error)
}

// HandleListHotels lists hotels for callers whose ticket includes lodging.
func HandleListHotels(svc HotelCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
			return
		}

		hotels, err := svc.ListHotels(r.Context(), userID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		resp := make([]hotelResponse, 0, len(hotels))
		for _, h := range hotels {
			resp = append(resp, newHotelResponse(h))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleGetHotel returns one hotel with its rooms.
func HandleGetHotel(svc HotelCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
			return
		}
		hotelID, ok := pathID(r, "hotelId")
		if !ok {
			writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
			return
		}

		hwr, err := svc.GetHotelWithRooms(r.Context(), userID, hotelID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		resp := hotelWithRoomsResponse{
			hotelResponse: newHotelResponse(hwr.Hotel),
			Rooms:         make([]roomResponse, 0, len(hwr.Rooms)),
		}
		for _, room := range hwr.Rooms {
			resp.Rooms = append(resp.Rooms, newRoomResponse(room))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type hotelResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type hotelWithRoomsResponse struct {
	hotelResponse
	Rooms []roomResponse `json:"Rooms"`
}

func newHotelResponse(h domain.Hotel) hotelResponse {
	return hotelResponse{
		ID:        h.ID,
		Name:      h.Name,
		Image:     h.Image,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}
