package app

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/cimillas/event-lodging/internal/domain"
)

type EligibilityRepository interface {
	FindEnrollmentByUserID(ctx context.Context, userID int64) (*domain.Enrollment, error)
	FindActiveTicket(ctx context.Context, enrollmentID int64) (*domain.Ticket, error)
	FindTicketType(ctx context.Context, ticketTypeID int64) (*domain.TicketType, error)
}

// EligibilityService decides whether a user may book a hotel room.
// It only reads, so it is safe to call concurrently and repeatedly.
type EligibilityService struct {
	repo   EligibilityRepository
	logger logrus.FieldLogger
}

func NewEligibilityService(repo EligibilityRepository, logger logrus.FieldLogger) *EligibilityService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &EligibilityService{repo: repo, logger: logger}
}

// eligibilityState carries what earlier checks loaded to the later ones.
// A new one is created per evaluation.
type eligibilityState struct {
	userID     int64
	enrollment *domain.Enrollment
	ticket     *domain.Ticket
}

type eligibilityCheck func(ctx context.Context, repo EligibilityRepository, st *eligibilityState) (domain.IneligibleReason, error)

// Order matters: each check relies on what the previous one loaded.
var eligibilityChecks = []eligibilityCheck{
	checkEnrollment,
	checkTicketPaid,
	checkTicketTypeIncludesHotel,
}

// Eligibility runs the checks in order and stops at the first rejection.
// Storage failures are returned as errors, never as an ineligible outcome.
func (s *EligibilityService) Eligibility(ctx context.Context, userID int64) (domain.Eligibility, error) {
	ctx, span := tracer.Start(ctx, "EligibilityService.Eligibility")
	defer span.End()

	st := &eligibilityState{userID: userID}
	for _, check := range eligibilityChecks {
		reason, err := check(ctx, s.repo, st)
		if err != nil {
			return domain.Eligibility{}, err
		}
		if reason != "" {
			s.logger.WithFields(logrus.Fields{
				"user_id": userID,
				"reason":  reason,
			}).Debug("user not eligible for hotel")
			return domain.Ineligible(reason), nil
		}
	}
	return domain.Eligible(), nil
}

// IsEligibleForHotel is the boolean form of Eligibility.
func (s *EligibilityService) IsEligibleForHotel(ctx context.Context, userID int64) (bool, error) {
	e, err := s.Eligibility(ctx, userID)
	if err != nil {
		return false, err
	}
	return e.Eligible, nil
}

func checkEnrollment(ctx context.Context, repo EligibilityRepository, st *eligibilityState) (domain.IneligibleReason, error) {
	enrollment, err := repo.FindEnrollmentByUserID(ctx, st.userID)
	if err != nil {
		return "", err
	}
	if enrollment == nil {
		return domain.ReasonNoEnrollment, nil
	}
	st.enrollment = enrollment
	return "", nil
}

func checkTicketPaid(ctx context.Context, repo EligibilityRepository, st *eligibilityState) (domain.IneligibleReason, error) {
	ticket, err := repo.FindActiveTicket(ctx, st.enrollment.ID)
	if err != nil {
		return "", err
	}
	if ticket == nil {
		return domain.ReasonNoTicket, nil
	}
	if ticket.Status != domain.TicketStatusPaid {
		return domain.ReasonTicketNotPaid, nil
	}
	st.ticket = ticket
	return "", nil
}

func checkTicketTypeIncludesHotel(ctx context.Context, repo EligibilityRepository, st *eligibilityState) (domain.IneligibleReason, error) {
	tt, err := repo.FindTicketType(ctx, st.ticket.TicketTypeID)
	if err != nil {
		return "", err
	}
	switch {
	case tt == nil:
		return domain.ReasonNoTicketType, nil
	case !tt.IncludesHotel:
		return domain.ReasonHotelNotIncluded, nil
	case tt.IsRemote:
		return domain.ReasonRemoteTicket, nil
	}
	return "", nil
}
