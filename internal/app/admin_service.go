package app

import (
	"context"
	"strings"

	"github.com/cimillas/event-lodging/internal/clock"
	"github.com/cimillas/event-lodging/internal/domain"
)

type CatalogRepository interface {
	CreateHotel(ctx context.Context, hotel domain.Hotel) (domain.Hotel, error)
	ListHotels(ctx context.Context) ([]domain.Hotel, error)
	GetHotel(ctx context.Context, hotelID int64) (domain.Hotel, error)
	CreateRoom(ctx context.Context, room domain.Room) (domain.Room, error)
	ListRoomsByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error)
}

// AdminService manages the hotel catalog: hotels and their rooms.
type AdminService struct {
	repo  CatalogRepository
	clock clock.Clock
}

func NewAdminService(repo CatalogRepository, clk clock.Clock) *AdminService {
	return &AdminService{
		repo:  repo,
		clock: clk,
	}
}

type CreateHotelInput struct {
	Name  string
	Image string
}

func (s *AdminService) CreateHotel(ctx context.Context, in CreateHotelInput) (domain.Hotel, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Hotel{}, domain.ErrHotelNameRequired
	}
	now := s.clock.Now()
	return s.repo.CreateHotel(ctx, domain.Hotel{
		Name:      name,
		Image:     strings.TrimSpace(in.Image),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *AdminService) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	return s.repo.ListHotels(ctx)
}

type CreateRoomInput struct {
	HotelID  int64
	Name     string
	Capacity int
}

func (s *AdminService) CreateRoom(ctx context.Context, in CreateRoomInput) (domain.Room, error) {
	if in.HotelID <= 0 {
		return domain.Room{}, domain.ErrInvalidID
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Room{}, domain.ErrRoomNameRequired
	}
	if in.Capacity <= 0 {
		return domain.Room{}, domain.ErrInvalidCapacity
	}

	now := s.clock.Now()
	return s.repo.CreateRoom(ctx, domain.Room{
		HotelID:   in.HotelID,
		Name:      name,
		Capacity:  in.Capacity,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *AdminService) ListRooms(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	if hotelID <= 0 {
		return nil, domain.ErrInvalidID
	}
	if _, err := s.repo.GetHotel(ctx, hotelID); err != nil {
		return nil, err
	}
	return s.repo.ListRoomsByHotel(ctx, hotelID)
}
