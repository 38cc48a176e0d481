package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cimillas/event-lodging/internal/domain"
)

// EligibilityRepository reads the enrollment -> ticket -> ticket type chain.
// Missing rows come back as nil without an error.
type EligibilityRepository struct {
	q querier
}

func NewEligibilityRepository(pool *pgxpool.Pool) *EligibilityRepository {
	return &EligibilityRepository{q: querier{pool: pool}}
}

func (r *EligibilityRepository) FindEnrollmentByUserID(ctx context.Context, userID int64) (*domain.Enrollment, error) {
	const query = `SELECT id, user_id FROM enrollments WHERE user_id = $1`

	var e domain.Enrollment
	if err := r.q.queryRow(ctx, query, userID).Scan(&e.ID, &e.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return &e, nil
}

func (r *EligibilityRepository) FindActiveTicket(ctx context.Context, enrollmentID int64) (*domain.Ticket, error) {
	const query = `
SELECT id, enrollment_id, ticket_type_id, status, created_at
FROM tickets
WHERE enrollment_id = $1
ORDER BY created_at DESC, id DESC
LIMIT 1`

	var t domain.Ticket
	var status string
	err := r.q.queryRow(ctx, query, enrollmentID).
		Scan(&t.ID, &t.EnrollmentID, &t.TicketTypeID, &status, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	t.Status = domain.TicketStatus(status)
	return &t, nil
}

func (r *EligibilityRepository) FindTicketType(ctx context.Context, ticketTypeID int64) (*domain.TicketType, error) {
	const query = `SELECT id, name, price, is_remote, includes_hotel FROM ticket_types WHERE id = $1`

	var tt domain.TicketType
	err := r.q.queryRow(ctx, query, ticketTypeID).
		Scan(&tt.ID, &tt.Name, &tt.Price, &tt.IsRemote, &tt.IncludesHotel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find ticket type: %w", err)
	}
	return &tt, nil
}
