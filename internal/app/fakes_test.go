package app

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cimillas/event-lodging/internal/domain"
)

// fakeStore is an in-memory stand-in for the Postgres repositories. WithTx
// serializes transactions, which is what the room row lock gives us for
// allocations that target the same room.
type fakeStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	enrollments map[int64]domain.Enrollment
	tickets     []domain.Ticket
	ticketTypes map[int64]domain.TicketType
	hotels      map[int64]domain.Hotel
	rooms       map[int64]domain.Room
	bookings    map[int64]domain.Booking

	nextID  int64
	readErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		enrollments: map[int64]domain.Enrollment{},
		ticketTypes: map[int64]domain.TicketType{},
		hotels:      map[int64]domain.Hotel{},
		rooms:       map[int64]domain.Room{},
		bookings:    map[int64]domain.Booking{},
	}
}

type fakeTxKey struct{}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(fakeTxKey{}) != nil {
		return fn(ctx)
	}
	f.txMu.Lock()
	defer f.txMu.Unlock()
	return fn(context.WithValue(ctx, fakeTxKey{}, true))
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

// fixtures

func (f *fakeStore) addTicketType(tt domain.TicketType) domain.TicketType {
	f.mu.Lock()
	defer f.mu.Unlock()
	tt.ID = f.id()
	f.ticketTypes[tt.ID] = tt
	return tt
}

func (f *fakeStore) addEnrollment(userID int64) domain.Enrollment {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := domain.Enrollment{ID: f.id(), UserID: userID}
	f.enrollments[userID] = e
	return e
}

func (f *fakeStore) addTicket(enrollmentID, ticketTypeID int64, status domain.TicketStatus) domain.Ticket {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := domain.Ticket{
		ID:           f.id(),
		EnrollmentID: enrollmentID,
		TicketTypeID: ticketTypeID,
		Status:       status,
		CreatedAt:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(f.nextID) * time.Second),
	}
	f.tickets = append(f.tickets, t)
	return t
}

func (f *fakeStore) addRoom(capacity int) domain.Room {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := domain.Hotel{ID: f.id(), Name: "Hotel"}
	f.hotels[h.ID] = h
	r := domain.Room{ID: f.id(), HotelID: h.ID, Name: "Room", Capacity: capacity}
	f.rooms[r.ID] = r
	return r
}

func (f *fakeStore) addBooking(userID, roomID int64) domain.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := domain.Booking{ID: f.id(), UserID: userID, RoomID: roomID}
	f.bookings[b.ID] = b
	return b
}

// addEligibleUser enrolls the user with a paid, in-person, hotel ticket.
func (f *fakeStore) addEligibleUser(userID int64) {
	tt := f.addTicketType(domain.TicketType{Name: "Presencial + Hotel", IncludesHotel: true})
	e := f.addEnrollment(userID)
	f.addTicket(e.ID, tt.ID, domain.TicketStatusPaid)
}

func (f *fakeStore) occupancy(roomID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.bookings {
		if b.RoomID == roomID {
			n++
		}
	}
	return n
}

func (f *fakeStore) bookingsOf(userID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n
}

// EligibilityRepository

func (f *fakeStore) FindEnrollmentByUserID(_ context.Context, userID int64) (*domain.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	e, ok := f.enrollments[userID]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (f *fakeStore) FindActiveTicket(_ context.Context, enrollmentID int64) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var found []domain.Ticket
	for _, t := range f.tickets {
		if t.EnrollmentID == enrollmentID {
			found = append(found, t)
		}
	}
	if len(found) == 0 {
		return nil, nil
	}
	sort.Slice(found, func(i, j int) bool { return found[i].CreatedAt.After(found[j].CreatedAt) })
	return &found[0], nil
}

func (f *fakeStore) FindTicketType(_ context.Context, id int64) (*domain.TicketType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tt, ok := f.ticketTypes[id]
	if !ok {
		return nil, nil
	}
	return &tt, nil
}

// RoomCapacityRepository / BookingRepository

func (f *fakeStore) GetRoom(_ context.Context, roomID int64) (domain.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rooms[roomID]
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	return r, nil
}

func (f *fakeStore) GetRoomForUpdate(ctx context.Context, roomID int64) (domain.Room, error) {
	return f.GetRoom(ctx, roomID)
}

func (f *fakeStore) CountBookingsByRoom(_ context.Context, roomID, excludeUserID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.bookings {
		if b.RoomID != roomID {
			continue
		}
		if excludeUserID != 0 && b.UserID == excludeUserID {
			continue
		}
		n++
	}
	return n, nil
}

func (f *fakeStore) FindBookingByUserID(_ context.Context, userID int64) (*domain.BookingWithRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	for _, b := range f.bookings {
		if b.UserID == userID {
			return &domain.BookingWithRoom{Booking: b, Room: f.rooms[b.RoomID]}, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetBookingForUpdate(_ context.Context, bookingID int64) (domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeStore) CreateBooking(_ context.Context, booking domain.Booking) (domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.UserID == booking.UserID {
			return domain.Booking{}, domain.ErrAlreadyBooked
		}
	}
	if _, ok := f.rooms[booking.RoomID]; !ok {
		return domain.Booking{}, domain.ErrRoomNotFound
	}
	booking.ID = f.id()
	f.bookings[booking.ID] = booking
	return booking, nil
}

func (f *fakeStore) UpdateBookingRoom(_ context.Context, bookingID, roomID int64, updatedAt time.Time) (domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	b.RoomID = roomID
	b.UpdatedAt = updatedAt
	f.bookings[bookingID] = b
	return b, nil
}

// CatalogRepository

func (f *fakeStore) CreateHotel(_ context.Context, hotel domain.Hotel) (domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	hotel.ID = f.id()
	f.hotels[hotel.ID] = hotel
	return hotel, nil
}

func (f *fakeStore) ListHotels(_ context.Context) ([]domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Hotel, 0, len(f.hotels))
	for _, h := range f.hotels {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) GetHotel(_ context.Context, hotelID int64) (domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.hotels[hotelID]
	if !ok {
		return domain.Hotel{}, domain.ErrHotelNotFound
	}
	return h, nil
}

func (f *fakeStore) CreateRoom(_ context.Context, room domain.Room) (domain.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.hotels[room.HotelID]; !ok {
		return domain.Room{}, domain.ErrHotelNotFound
	}
	room.ID = f.id()
	f.rooms[room.ID] = room
	return room, nil
}

func (f *fakeStore) ListRoomsByHotel(_ context.Context, hotelID int64) ([]domain.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Room
	for _, r := range f.rooms {
		if r.HotelID == hotelID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type recordedEvent struct {
	key     string
	payload BookingEvent
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	evt, _ := payload.(BookingEvent)
	p.events = append(p.events, recordedEvent{key: key, payload: evt})
	return p.err
}
