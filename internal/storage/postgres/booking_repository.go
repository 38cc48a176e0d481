package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cimillas/event-lodging/internal/domain"
)

const (
	bookingsUserKey = "bookings_user_id_key"
	bookingsRoomFK  = "bookings_room_id_fkey"
	bookingColumns  = `id, user_id, room_id, created_at, updated_at`
)

type BookingRepository struct {
	pool *pgxpool.Pool
	q    querier
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool, q: querier{pool: pool}}
}

func (r *BookingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *BookingRepository) GetRoom(ctx context.Context, roomID int64) (domain.Room, error) {
	return r.getRoom(ctx, `SELECT id, hotel_id, name, capacity, created_at, updated_at FROM rooms WHERE id = $1`, roomID)
}

// GetRoomForUpdate locks the room row until the surrounding transaction ends.
// Every allocation into the room takes this lock before counting, which makes
// count-then-insert atomic per room.
func (r *BookingRepository) GetRoomForUpdate(ctx context.Context, roomID int64) (domain.Room, error) {
	return r.getRoom(ctx, `SELECT id, hotel_id, name, capacity, created_at, updated_at FROM rooms WHERE id = $1 FOR UPDATE`, roomID)
}

func (r *BookingRepository) getRoom(ctx context.Context, query string, roomID int64) (domain.Room, error) {
	var room domain.Room
	err := r.q.queryRow(ctx, query, roomID).
		Scan(&room.ID, &room.HotelID, &room.Name, &room.Capacity, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Room{}, domain.ErrRoomNotFound
		}
		return domain.Room{}, fmt.Errorf("get room: %w", err)
	}
	return room, nil
}

func (r *BookingRepository) CountBookingsByRoom(ctx context.Context, roomID, excludeUserID int64) (int, error) {
	// User ids are positive, so excludeUserID = 0 excludes nothing.
	const query = `SELECT COUNT(*) FROM bookings WHERE room_id = $1 AND user_id <> $2`

	var count int
	if err := r.q.queryRow(ctx, query, roomID, excludeUserID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

func (r *BookingRepository) FindBookingByUserID(ctx context.Context, userID int64) (*domain.BookingWithRoom, error) {
	const query = `
SELECT b.id, b.user_id, b.room_id, b.created_at, b.updated_at,
       r.id, r.hotel_id, r.name, r.capacity, r.created_at, r.updated_at
FROM bookings b
JOIN rooms r ON r.id = b.room_id
WHERE b.user_id = $1`

	var out domain.BookingWithRoom
	b, room := &out.Booking, &out.Room
	err := r.q.queryRow(ctx, query, userID).Scan(
		&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt,
		&room.ID, &room.HotelID, &room.Name, &room.Capacity, &room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return &out, nil
}

func (r *BookingRepository) GetBookingForUpdate(ctx context.Context, bookingID int64) (domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`

	b, err := scanBooking(r.q.queryRow(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Booking{}, domain.ErrBookingNotFound
		}
		return domain.Booking{}, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

func (r *BookingRepository) CreateBooking(ctx context.Context, booking domain.Booking) (domain.Booking, error) {
	stmt := `
INSERT INTO bookings (user_id, room_id, created_at, updated_at)
VALUES ($1, $2, $3, $4)
RETURNING ` + bookingColumns

	created, err := scanBooking(r.q.queryRow(ctx, stmt,
		booking.UserID,
		booking.RoomID,
		booking.CreatedAt,
		booking.UpdatedAt,
	))
	if err != nil {
		if isUniqueViolation(err, bookingsUserKey) {
			return domain.Booking{}, domain.ErrAlreadyBooked
		}
		if isForeignKeyViolation(err, bookingsRoomFK) {
			return domain.Booking{}, domain.ErrRoomNotFound
		}
		return domain.Booking{}, fmt.Errorf("create booking: %w", err)
	}
	return created, nil
}

// UpdateBookingRoom moves the booking in a single statement, so the old slot is
// released in the same instant the new one is taken.
func (r *BookingRepository) UpdateBookingRoom(ctx context.Context, bookingID, roomID int64, updatedAt time.Time) (domain.Booking, error) {
	stmt := `UPDATE bookings SET room_id = $2, updated_at = $3 WHERE id = $1 RETURNING ` + bookingColumns

	updated, err := scanBooking(r.q.queryRow(ctx, stmt, bookingID, roomID, updatedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Booking{}, domain.ErrBookingNotFound
		}
		if isForeignKeyViolation(err, bookingsRoomFK) {
			return domain.Booking{}, domain.ErrRoomNotFound
		}
		return domain.Booking{}, fmt.Errorf("update booking: %w", err)
	}
	return updated, nil
}

func scanBooking(row pgx.Row) (domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}
