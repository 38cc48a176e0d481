package app

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/cimillas/event-lodging/internal/clock"
	"github.com/cimillas/event-lodging/internal/domain"
)

type BookingRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetRoomForUpdate(ctx context.Context, roomID int64) (domain.Room, error)
	CountBookingsByRoom(ctx context.Context, roomID, excludeUserID int64) (int, error)
	FindBookingByUserID(ctx context.Context, userID int64) (*domain.BookingWithRoom, error)
	GetBookingForUpdate(ctx context.Context, bookingID int64) (domain.Booking, error)
	CreateBooking(ctx context.Context, booking domain.Booking) (domain.Booking, error)
	UpdateBookingRoom(ctx context.Context, bookingID, roomID int64, updatedAt time.Time) (domain.Booking, error)
}

// EligibilityChecker is the part of EligibilityService the allocator needs.
type EligibilityChecker interface {
	Eligibility(ctx context.Context, userID int64) (domain.Eligibility, error)
}

// RoomChecker is the part of CapacityResolver the allocator needs.
type RoomChecker interface {
	CheckRoom(ctx context.Context, roomID, mover int64) (domain.RoomCheck, error)
}

// EventPublisher delivers domain events after a booking is committed.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

const (
	EventBookingCreated = "booking.created"
	EventBookingChanged = "booking.changed"
)

// BookingEvent is the payload published for booking changes.
type BookingEvent struct {
	BookingID  int64     `json:"booking_id"`
	UserID     int64     `json:"user_id"`
	RoomID     int64     `json:"room_id"`
	FromRoomID int64     `json:"from_room_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingService is the only writer of bookings.
type BookingService struct {
	repo        BookingRepository
	eligibility EligibilityChecker
	rooms       RoomChecker
	clock       clock.Clock
	events      EventPublisher
	logger      logrus.FieldLogger
}

type BookingServiceOption func(*BookingService)

// WithEventPublisher sets where booking events go. Without it events are dropped.
func WithEventPublisher(p EventPublisher) BookingServiceOption {
	return func(s *BookingService) {
		if p != nil {
			s.events = p
		}
	}
}

func WithBookingLogger(l logrus.FieldLogger) BookingServiceOption {
	return func(s *BookingService) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewBookingService(repo BookingRepository, eligibility EligibilityChecker, rooms RoomChecker, clk clock.Clock, opts ...BookingServiceOption) *BookingService {
	svc := &BookingService{
		repo:        repo,
		eligibility: eligibility,
		rooms:       rooms,
		clock:       clk,
		events:      discardEvents{},
		logger:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type CreateBookingInput struct {
	UserID int64
	RoomID int64
}

func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (domain.Booking, error) {
	ctx, span := tracer.Start(ctx, "BookingService.CreateBooking")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", in.UserID), attribute.Int64("room.id", in.RoomID))

	if in.RoomID <= 0 {
		return domain.Booking{}, domain.ErrInvalidID
	}
	if err := s.requireEligible(ctx, in.UserID); err != nil {
		return domain.Booking{}, err
	}
	if err := s.requireRoomAvailable(ctx, in.RoomID, 0); err != nil {
		return domain.Booking{}, err
	}

	existing, err := s.repo.FindBookingByUserID(ctx, in.UserID)
	if err != nil {
		return domain.Booking{}, err
	}
	if existing != nil {
		return domain.Booking{}, domain.ErrAlreadyBooked
	}

	now := s.clock.Now()
	var result domain.Booking

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		room, err := s.repo.GetRoomForUpdate(txCtx, in.RoomID)
		if err != nil {
			return err
		}
		count, err := s.repo.CountBookingsByRoom(txCtx, room.ID, 0)
		if err != nil {
			return err
		}
		if count >= room.Capacity {
			return domain.ErrRoomFull
		}

		// A concurrent booking by the same user trips the unique constraint
		// on user_id and comes back as ErrAlreadyBooked.
		created, err := s.repo.CreateBooking(txCtx, domain.Booking{
			UserID:    in.UserID,
			RoomID:    room.ID,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}

	s.publish(ctx, EventBookingCreated, BookingEvent{
		BookingID:  result.ID,
		UserID:     result.UserID,
		RoomID:     result.RoomID,
		OccurredAt: now,
	})
	return result, nil
}

type ChangeBookingInput struct {
	BookingID int64
	RoomID    int64
	UserID    int64
}

func (s *BookingService) ChangeBooking(ctx context.Context, in ChangeBookingInput) (domain.Booking, error) {
	ctx, span := tracer.Start(ctx, "BookingService.ChangeBooking")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("user.id", in.UserID),
		attribute.Int64("booking.id", in.BookingID),
		attribute.Int64("room.id", in.RoomID),
	)

	if in.BookingID <= 0 || in.RoomID <= 0 {
		return domain.Booking{}, domain.ErrInvalidID
	}
	if err := s.requireEligible(ctx, in.UserID); err != nil {
		return domain.Booking{}, err
	}
	// The mover's own slot does not count: moving within a full room is fine.
	if err := s.requireRoomAvailable(ctx, in.RoomID, in.UserID); err != nil {
		return domain.Booking{}, err
	}

	now := s.clock.Now()
	var (
		result   domain.Booking
		fromRoom int64
	)

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		booking, err := s.repo.GetBookingForUpdate(txCtx, in.BookingID)
		if err != nil {
			return err
		}
		if booking.UserID != in.UserID {
			return domain.ErrBookingNotFound
		}
		if booking.RoomID == in.RoomID {
			result = booking
			return nil
		}

		room, err := s.repo.GetRoomForUpdate(txCtx, in.RoomID)
		if err != nil {
			return err
		}
		count, err := s.repo.CountBookingsByRoom(txCtx, room.ID, in.UserID)
		if err != nil {
			return err
		}
		if count >= room.Capacity {
			return domain.ErrRoomFull
		}

		updated, err := s.repo.UpdateBookingRoom(txCtx, booking.ID, room.ID, now)
		if err != nil {
			return err
		}
		fromRoom = booking.RoomID
		result = updated
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}

	if fromRoom != 0 {
		s.publish(ctx, EventBookingChanged, BookingEvent{
			BookingID:  result.ID,
			UserID:     result.UserID,
			RoomID:     result.RoomID,
			FromRoomID: fromRoom,
			OccurredAt: now,
		})
	}
	return result, nil
}

// GetBooking returns the user's booking with its room, or ErrBookingNotFound.
func (s *BookingService) GetBooking(ctx context.Context, userID int64) (domain.BookingWithRoom, error) {
	ctx, span := tracer.Start(ctx, "BookingService.GetBooking")
	defer span.End()

	b, err := s.repo.FindBookingByUserID(ctx, userID)
	if err != nil {
		return domain.BookingWithRoom{}, err
	}
	if b == nil {
		return domain.BookingWithRoom{}, domain.ErrBookingNotFound
	}
	return *b, nil
}

func (s *BookingService) requireEligible(ctx context.Context, userID int64) error {
	e, err := s.eligibility.Eligibility(ctx, userID)
	if err != nil {
		return err
	}
	if !e.Eligible {
		return domain.ErrNotEligible
	}
	return nil
}

func (s *BookingService) requireRoomAvailable(ctx context.Context, roomID, mover int64) error {
	check, err := s.rooms.CheckRoom(ctx, roomID, mover)
	if err != nil {
		return err
	}
	switch check.State {
	case domain.RoomNotFound:
		return domain.ErrRoomNotFound
	case domain.RoomFull:
		return domain.ErrRoomFull
	}
	return nil
}

func (s *BookingService) publish(ctx context.Context, key string, evt BookingEvent) {
	if err := s.events.Publish(ctx, key, evt); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"event":      key,
			"booking_id": evt.BookingID,
		}).Warn("publish booking event")
	}
}

type discardEvents struct{}

func (discardEvents) Publish(context.Context, string, any) error { return nil }
