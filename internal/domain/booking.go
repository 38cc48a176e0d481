package domain

import "time"

// Booking assigns one user to one room. A user holds at most one booking.
type Booking struct {
	ID        int64
	UserID    int64
	RoomID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingWithRoom is the read projection returned to the booking owner.
type BookingWithRoom struct {
	Booking Booking
	Room    Room
}
