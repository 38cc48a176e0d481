package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cimillas/event-lodging/internal/domain"
)

const (
	roomsHotelNameKey = "rooms_hotel_id_name_key"
	roomsHotelFK      = "rooms_hotel_id_fkey"
)

// CatalogRepository stores hotels and rooms.
type CatalogRepository struct {
	q querier
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{q: querier{pool: pool}}
}

func (r *CatalogRepository) CreateHotel(ctx context.Context, hotel domain.Hotel) (domain.Hotel, error) {
	const stmt = `
INSERT INTO hotels (name, image, created_at, updated_at)
VALUES ($1, $2, $3, $4)
RETURNING id`
	err := r.q.queryRow(ctx, stmt, hotel.Name, hotel.Image, hotel.CreatedAt, hotel.UpdatedAt).Scan(&hotel.ID)
	if err != nil {
		return domain.Hotel{}, fmt.Errorf("create hotel: %w", err)
	}
	return hotel, nil
}

func (r *CatalogRepository) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	const query = `
SELECT id, name, image, created_at, updated_at
FROM hotels
ORDER BY id ASC`
	rows, err := r.q.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	defer rows.Close()

	var hotels []domain.Hotel
	for rows.Next() {
		var h domain.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Image, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan hotel: %w", err)
		}
		hotels = append(hotels, h)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate hotels: %w", rows.Err())
	}
	return hotels, nil
}

func (r *CatalogRepository) GetHotel(ctx context.Context, hotelID int64) (domain.Hotel, error) {
	const query = `SELECT id, name, image, created_at, updated_at FROM hotels WHERE id = $1`

	var h domain.Hotel
	err := r.q.queryRow(ctx, query, hotelID).Scan(&h.ID, &h.Name, &h.Image, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Hotel{}, domain.ErrHotelNotFound
		}
		return domain.Hotel{}, fmt.Errorf("get hotel: %w", err)
	}
	return h, nil
}

func (r *CatalogRepository) CreateRoom(ctx context.Context, room domain.Room) (domain.Room, error) {
	const stmt = `
INSERT INTO rooms (hotel_id, name, capacity, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	err := r.q.queryRow(ctx, stmt, room.HotelID, room.Name, room.Capacity, room.CreatedAt, room.UpdatedAt).Scan(&room.ID)
	if err != nil {
		switch {
		case isUniqueViolation(err, roomsHotelNameKey):
			return domain.Room{}, domain.ErrRoomAlreadyExists
		case isForeignKeyViolation(err, roomsHotelFK):
			return domain.Room{}, domain.ErrHotelNotFound
		case isCheckViolation(err):
			return domain.Room{}, domain.ErrInvalidCapacity
		}
		return domain.Room{}, fmt.Errorf("create room: %w", err)
	}
	return room, nil
}

func (r *CatalogRepository) ListRoomsByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	const query = `
SELECT id, hotel_id, name, capacity, created_at, updated_at
FROM rooms
WHERE hotel_id = $1
ORDER BY id ASC`
	rows, err := r.q.query(ctx, query, hotelID)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.HotelID, &room.Name, &room.Capacity, &room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate rooms: %w", rows.Err())
	}
	return rooms, nil
}
