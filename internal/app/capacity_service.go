package app

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/cimillas/event-lodging/internal/domain"
)

type RoomCapacityRepository interface {
	GetRoom(ctx context.Context, roomID int64) (domain.Room, error)
	// CountBookingsByRoom counts bookings in the room, ignoring the one held by
	// excludeUserID (0 ignores nothing).
	CountBookingsByRoom(ctx context.Context, roomID, excludeUserID int64) (int, error)
}

// CapacityResolver reports a room's occupancy. Its answer is advisory: the
// allocator checks again under a row lock before writing.
type CapacityResolver struct {
	repo RoomCapacityRepository
}

func NewCapacityResolver(repo RoomCapacityRepository) *CapacityResolver {
	return &CapacityResolver{repo: repo}
}

// CheckRoom classifies the room as not found, full or available. mover is the
// user whose current booking should not count against the room (0 for none).
func (r *CapacityResolver) CheckRoom(ctx context.Context, roomID, mover int64) (domain.RoomCheck, error) {
	ctx, span := tracer.Start(ctx, "CapacityResolver.CheckRoom")
	defer span.End()

	room, err := r.repo.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			return domain.RoomCheck{State: domain.RoomNotFound}, nil
		}
		return domain.RoomCheck{}, err
	}

	count, err := r.repo.CountBookingsByRoom(ctx, roomID, mover)
	if err != nil {
		return domain.RoomCheck{}, err
	}

	check := domain.RoomCheck{
		State:     domain.RoomAvailable,
		Capacity:  room.Capacity,
		Occupancy: count,
	}
	if check.Remaining() == 0 {
		check.State = domain.RoomFull
	}
	span.SetAttributes(attribute.Int("room.remaining", check.Remaining()))
	return check, nil
}
