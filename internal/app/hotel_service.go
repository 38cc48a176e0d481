package app

import (
	"context"

	"github.com/cimillas/event-lodging/internal/domain"
)

// HotelService shows the hotel catalog to attendees who may book a room.
// Anyone else gets ErrNotEligible, which reads as "not found".
type HotelService struct {
	repo        CatalogRepository
	eligibility EligibilityChecker
}

func NewHotelService(repo CatalogRepository, eligibility EligibilityChecker) *HotelService {
	return &HotelService{repo: repo, eligibility: eligibility}
}

func (s *HotelService) ListHotels(ctx context.Context, userID int64) ([]domain.Hotel, error) {
	if err := s.requireEligible(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListHotels(ctx)
}

func (s *HotelService) GetHotelWithRooms(ctx context.Context, userID, hotelID int64) (domain.HotelWithRooms, error) {
	if hotelID <= 0 {
		return domain.HotelWithRooms{}, domain.ErrInvalidID
	}
	if err := s.requireEligible(ctx, userID); err != nil {
		return domain.HotelWithRooms{}, err
	}

	hotel, err := s.repo.GetHotel(ctx, hotelID)
	if err != nil {
		return domain.HotelWithRooms{}, err
	}
	rooms, err := s.repo.ListRoomsByHotel(ctx, hotelID)
	if err != nil {
		return domain.HotelWithRooms{}, err
	}
	return domain.HotelWithRooms{Hotel: hotel, Rooms: rooms}, nil
}

func (s *HotelService) requireEligible(ctx context.Context, userID int64) error {
	e, err := s.eligibility.Eligibility(ctx, userID)
	if err != nil {
		return err
	}
	if !e.Eligible {
		return domain.ErrNotEligible
	}
	return nil
}
