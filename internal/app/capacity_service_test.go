package app

import (
	"context"
	"testing"

	"github.com/cimillas/event-lodging/internal/domain"
)

func TestCapacityResolver_CheckRoom(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("missing room", func(t *testing.T) {
		svc := NewCapacityResolver(newFakeStore())

		got, err := svc.CheckRoom(ctx, 123, 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.State != domain.RoomNotFound {
			t.Fatalf("expected %s, got %s", domain.RoomNotFound, got.State)
		}
	})

	t.Run("available with free slots", func(t *testing.T) {
		store := newFakeStore()
		room := store.addRoom(3)
		store.addBooking(1, room.ID)
		svc := NewCapacityResolver(store)

		got, err := svc.CheckRoom(ctx, room.ID, 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.State != domain.RoomAvailable {
			t.Fatalf("expected %s, got %s", domain.RoomAvailable, got.State)
		}
		if got.Occupancy != 1 || got.Capacity != 3 || got.Remaining() != 2 {
			t.Fatalf("unexpected check: %+v", got)
		}
	})

	t.Run("full at capacity", func(t *testing.T) {
		store := newFakeStore()
		room := store.addRoom(1)
		store.addBooking(1, room.ID)
		svc := NewCapacityResolver(store)

		got, err := svc.CheckRoom(ctx, room.ID, 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.State != domain.RoomFull {
			t.Fatalf("expected %s, got %s", domain.RoomFull, got.State)
		}
		if got.Remaining() != 0 {
			t.Fatalf("expected no remaining slots, got %d", got.Remaining())
		}
	})

	t.Run("over capacity is full with nothing remaining", func(t *testing.T) {
		store := newFakeStore()
		room := store.addRoom(1)
		store.addBooking(1, room.ID)
		store.addBooking(2, room.ID)
		svc := NewCapacityResolver(store)

		got, err := svc.CheckRoom(ctx, room.ID, 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.State != domain.RoomFull || got.Occupancy != 2 || got.Remaining() != 0 {
			t.Fatalf("unexpected check: %+v", got)
		}
	})

	t.Run("mover's own slot is not counted", func(t *testing.T) {
		store := newFakeStore()
		room := store.addRoom(1)
		store.addBooking(1, room.ID)
		svc := NewCapacityResolver(store)

		got, err := svc.CheckRoom(ctx, room.ID, 1)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.State != domain.RoomAvailable {
			t.Fatalf("expected %s, got %s", domain.RoomAvailable, got.State)
		}
	})
}
