package domain

import "time"

type TicketStatus string

const (
	TicketStatusReserved TicketStatus = "RESERVED"
	TicketStatusPaid     TicketStatus = "PAID"
)

// Enrollment is a user's registration for the event (one per user).
type Enrollment struct {
	ID     int64
	UserID int64
}

type TicketType struct {
	ID            int64
	Name          string
	Price         int
	IsRemote      bool
	IncludesHotel bool
}

type Ticket struct {
	ID           int64
	EnrollmentID int64
	TicketTypeID int64
	Status       TicketStatus
	CreatedAt    time.Time
}

// Payment records that a ticket was paid. The payments table is written by the
// external payment collaborator, never by this service, and is kept for
// auditing only: Ticket.Status is what hotel eligibility looks at.
type Payment struct {
	ID             int64
	TicketID       int64
	Value          int
	CardIssuer     string
	CardLastDigits string
	CreatedAt      time.Time
}
