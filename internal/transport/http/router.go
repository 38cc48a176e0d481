package http

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// AdminService covers both halves of catalog administration.
type AdminService interface {
	AdminHotelService
	AdminRoomService
}

type RouterConfig struct {
	Bookings    BookingService
	Hotels      HotelCatalog
	Admin       AdminService
	Auth        *Authenticator
	Logger      *logrus.Logger
	CORSOrigins []string
}

// NewRouter mounts every endpoint and wraps them in CORS and request logging.
func NewRouter(cfg RouterConfig) http.Handler {
	authed := func(h http.HandlerFunc) http.Handler {
		return cfg.Auth.Require(h)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", HealthHandler)

	mux.Handle("GET /booking", authed(HandleGetBooking(cfg.Bookings)))
	mux.Handle("POST /booking", authed(HandleCreateBooking(cfg.Bookings)))
	mux.Handle("PUT /booking/{bookingId}", authed(HandleChangeBooking(cfg.Bookings)))

	mux.Handle("GET /hotels", authed(HandleListHotels(cfg.Hotels)))
	mux.Handle("GET /hotels/{hotelId}", authed(HandleGetHotel(cfg.Hotels)))

	mux.Handle("/admin/hotels", HandleAdminHotels(cfg.Admin))
	mux.Handle("/admin/hotels/{hotelId}/rooms", HandleAdminRooms(cfg.Admin))

	mux.Handle("/", NotFoundHandler())

	return RequestLogger(CORS(cfg.CORSOrigins, mux), cfg.Logger)
}
