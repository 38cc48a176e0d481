package http

import (
	"context"
	"net/http"

	"github.com/cimillas/event-lodging/internal/app"
	"github.com/cimillas/event-lodging/internal/domain"
)

// AdminHotelService is the minimal interface needed for admin hotel endpoints.
type AdminHotelService interface {
	CreateHotel(ctx context.Context, in app.CreateHotelInput) (domain.Hotel, error)
	ListHotels(ctx context.Context) ([]domain.Hotel, error)
}

// AdminRoomService is the minimal interface needed for admin room endpoints.
type AdminRoomService interface {
	CreateRoom(ctx context.Context, in app.CreateRoomInput) (domain.Room, error)
	ListRooms(ctx context.Context, hotelID int64) ([]domain.Room, error)
}

// HandleAdminHotels returns an HTTP handler for admin hotel creation/listing.
func HandleAdminHotels(svc AdminHotelService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			hotels, err := svc.ListHotels(r.Context())
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			resp := make([]hotelResponse, 0, len(hotels))
			for _, h := range hotels {
				resp = append(resp, newHotelResponse(h))
			}
			writeJSON(w, http.StatusOK, resp)
		case http.MethodPost:
			var req createHotelRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			hotel, err := svc.CreateHotel(r.Context(), app.CreateHotelInput{
				Name:  req.Name,
				Image: req.Image,
			})
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			writeJSON(w, http.StatusCreated, newHotelResponse(hotel))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleAdminRooms returns an HTTP handler for admin room creation/listing.
func HandleAdminRooms(svc AdminRoomService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hotelID, ok := pathID(r, "hotelId")
		if !ok {
			writeError(w, http.StatusNotFound, codeInvalidID, domain.ErrInvalidID.Error())
			return
		}

		switch r.Method {
		case http.MethodGet:
			rooms, err := svc.ListRooms(r.Context(), hotelID)
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			resp := make([]roomResponse, 0, len(rooms))
			for _, room := range rooms {
				resp = append(resp, newRoomResponse(room))
			}
			writeJSON(w, http.StatusOK, resp)
		case http.MethodPost:
			var req createRoomRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			room, err := svc.CreateRoom(r.Context(), app.CreateRoomInput{
				HotelID:  hotelID,
				Name:     req.Name,
				Capacity: req.Capacity,
			})
			if err != nil {
				if err == domain.ErrRoomAlreadyExists {
					writeError(w, http.StatusConflict, codeRoomAlreadyExists, err.Error())
					return
				}
				writeServiceError(w, r, err)
				return
			}
			writeJSON(w, http.StatusCreated, newRoomResponse(room))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

type createHotelRequest struct {
	Name  string `json:"name" validate:"required"`
	Image string `json:"image" validate:"omitempty,url"`
}

type createRoomRequest struct {
	Name     string `json:"name" validate:"required"`
	Capacity int    `json:"capacity" validate:"gt=0"`
}
