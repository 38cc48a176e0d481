package app

import (
	"context"
	"testing"
	"time"

	"github.com/cimillas/event-lodging/internal/clock"
	"github.com/cimillas/event-lodging/internal/domain"
)

func TestAdminService_CreateHotel(t *testing.T) {
	now := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	svc := NewAdminService(newFakeStore(), clock.NewFixed(now))

	got, err := svc.CreateHotel(context.Background(), CreateHotelInput{Name: "  Driven Resort ", Image: "https://img/x.png"})
	if err != nil {
		t.Fatalf("create hotel: %v", err)
	}
	if got.ID == 0 {
		t.Fatalf("expected hotel ID to be set")
	}
	if got.Name != "Driven Resort" {
		t.Fatalf("expected trimmed name, got %q", got.Name)
	}
	if got.CreatedAt != now {
		t.Fatalf("expected created_at %v, got %v", now, got.CreatedAt)
	}
}

func TestAdminService_CreateHotel_ValidatesName(t *testing.T) {
	svc := NewAdminService(newFakeStore(), clock.NewFixed(time.Now()))

	_, err := svc.CreateHotel(context.Background(), CreateHotelInput{Name: " "})
	if err != domain.ErrHotelNameRequired {
		t.Fatalf("expected ErrHotelNameRequired, got %v", err)
	}
}

func TestAdminService_CreateRoom_ValidatesInput(t *testing.T) {
	store := newFakeStore()
	svc := NewAdminService(store, clock.NewFixed(time.Now()))
	ctx := context.Background()

	_, err := svc.CreateRoom(ctx, CreateRoomInput{HotelID: 0, Name: "101", Capacity: 2})
	if err != domain.ErrInvalidID {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}

	_, err = svc.CreateRoom(ctx, CreateRoomInput{HotelID: 1, Name: "", Capacity: 2})
	if err != domain.ErrRoomNameRequired {
		t.Fatalf("expected ErrRoomNameRequired, got %v", err)
	}

	_, err = svc.CreateRoom(ctx, CreateRoomInput{HotelID: 1, Name: "101", Capacity: 0})
	if err != domain.ErrInvalidCapacity {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}

	_, err = svc.CreateRoom(ctx, CreateRoomInput{HotelID: 404, Name: "101", Capacity: 1})
	if err != domain.ErrHotelNotFound {
		t.Fatalf("expected ErrHotelNotFound, got %v", err)
	}
}

func TestAdminService_ListRooms(t *testing.T) {
	store := newFakeStore()
	svc := NewAdminService(store, clock.NewFixed(time.Now()))
	ctx := context.Background()

	hotel, err := svc.CreateHotel(ctx, CreateHotelInput{Name: "Driven Resort"})
	if err != nil {
		t.Fatalf("create hotel: %v", err)
	}
	for _, name := range []string{"101", "102"} {
		if _, err := svc.CreateRoom(ctx, CreateRoomInput{HotelID: hotel.ID, Name: name, Capacity: 3}); err != nil {
			t.Fatalf("create room %s: %v", name, err)
		}
	}

	rooms, err := svc.ListRooms(ctx, hotel.ID)
	if err != nil {
		t.Fatalf("list rooms: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(rooms))
	}

	if _, err := svc.ListRooms(ctx, 9999); err != domain.ErrHotelNotFound {
		t.Fatalf("expected ErrHotelNotFound, got %v", err)
	}
}
