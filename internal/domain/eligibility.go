package domain

// IneligibleReason says which step of the eligibility chain rejected a user.
// It is internal: every reason surfaces as ErrNotEligible.
type IneligibleReason string

const (
	ReasonNoEnrollment     IneligibleReason = "no_enrollment"
	ReasonNoTicket         IneligibleReason = "no_ticket"
	ReasonTicketNotPaid    IneligibleReason = "ticket_not_paid"
	ReasonNoTicketType     IneligibleReason = "no_ticket_type"
	ReasonHotelNotIncluded IneligibleReason = "hotel_not_included"
	ReasonRemoteTicket     IneligibleReason = "remote_ticket"
)

// Eligibility is the outcome of evaluating a user for hotel booking.
type Eligibility struct {
	Eligible bool
	Reason   IneligibleReason
}

func Eligible() Eligibility {
	return Eligibility{Eligible: true}
}

func Ineligible(reason IneligibleReason) Eligibility {
	return Eligibility{Reason: reason}
}
