package domain

import "time"

type Hotel struct {
	ID        int64
	Name      string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Room belongs to a hotel; Capacity is the maximum number of simultaneous bookings.
type Room struct {
	ID        int64
	HotelID   int64
	Name      string
	Capacity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HotelWithRooms is a hotel together with every room it owns.
type HotelWithRooms struct {
	Hotel Hotel
	Rooms []Room
}
