package domain

type RoomState string

const (
	RoomNotFound  RoomState = "not_found"
	RoomFull      RoomState = "full"
	RoomAvailable RoomState = "available"
)

// RoomCheck is an advisory snapshot of a room's occupancy.
type RoomCheck struct {
	State     RoomState
	Capacity  int
	Occupancy int
}

// Remaining returns the number of free slots, never negative.
func (c RoomCheck) Remaining() int {
	if c.Occupancy >= c.Capacity {
		return 0
	}
	return c.Capacity - c.Occupancy
}
