package spot

import (
	"time"

	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/types"
)

// Event is a lifecycle event that may move a spot to a new status
type Event string

const (
	EventRentalCreated     Event = "rental_created"
	EventPaymentRegistered Event = "payment_registered"
	EventRentalTerminated  Event = "rental_terminated"
	EventRentalDeleted     Event = "rental_deleted"
	EventManualOverride    Event = "manual_override"
)

// Transition is the outcome of applying an event to a spot
type Transition struct {
	From    types.SpotStatus
	To      types.SpotStatus
	Changed bool
}

// Apply runs event against the spot and stamps UpdatedAt when the status
// changes. Automatic events never overwrite a hold (Trabajador, Caliche):
// a payment or termination on a held spot is a no-op. Events that are not
// allowed from the current status fail with ErrInvalidOperation and leave
// the spot untouched.
func Apply(s *Spot, event Event, now time.Time) (Transition, error) {
	from := s.Status
	to, err := next(from, event)
	if err != nil {
		return Transition{From: from, To: from}, err
	}
	return set(s, from, to, now), nil
}

// Override moves the spot to target on behalf of a user with role.
// Placing a hold requires an administrator. Clearing a hold back to
// Disponible is allowed to any role that may edit spots, but a Pagado spot
// is only released by terminating or deleting its rental. Pagado itself
// is only reached through rental and payment events.
func Override(s *Spot, target types.SpotStatus, role types.UserRole, now time.Time) (Transition, error) {
	from := s.Status
	if err := target.Validate(); err != nil {
		return Transition{From: from, To: from}, err
	}

	switch target {
	case types.SpotStatusWorker, types.SpotStatusCaliche:
		if !role.IsAdmin() {
			return Transition{From: from, To: from}, ierr.NewError("only administrators can place a hold on a spot").
				WithHintf("Only an %s can set a spot to %s", types.UserRoleAdmin, target).
				WithReportableDetails(map[string]any{
					"spot_id": s.ID,
					"status":  target,
				}).
				Mark(ierr.ErrPermissionDenied)
		}
	case types.SpotStatusAvailable:
		if from == types.SpotStatusPaid {
			return Transition{From: from, To: from}, invalidTransition(s, EventManualOverride, target)
		}
	default:
		return Transition{From: from, To: from}, invalidTransition(s, EventManualOverride, target)
	}

	return set(s, from, target, now), nil
}

func next(from types.SpotStatus, event Event) (types.SpotStatus, error) {
	switch event {
	case EventRentalCreated:
		if from == types.SpotStatusAvailable {
			return types.SpotStatusPaid, nil
		}
	case EventPaymentRegistered:
		switch {
		case from == types.SpotStatusAvailable, from == types.SpotStatusPaid:
			return types.SpotStatusPaid, nil
		case from.IsHold():
			return from, nil
		}
	case EventRentalTerminated, EventRentalDeleted:
		if from == types.SpotStatusPaid {
			return types.SpotStatusAvailable, nil
		}
		return from, nil
	}

	return from, ierr.NewErrorf("event %s not allowed from status %s", event, from).
		WithHintf("The spot is %s and cannot accept this change", from).
		WithReportableDetails(map[string]any{
			"status": from,
			"event":  event,
		}).
		Mark(ierr.ErrInvalidOperation)
}

func set(s *Spot, from, to types.SpotStatus, now time.Time) Transition {
	if from == to {
		return Transition{From: from, To: to}
	}
	s.Status = to
	s.UpdatedAt = now
	return Transition{From: from, To: to, Changed: true}
}

func invalidTransition(s *Spot, event Event, target types.SpotStatus) error {
	return ierr.NewErrorf("cannot move spot from %s to %s", s.Status, target).
		WithHintf("A spot that is %s cannot be set to %s", s.Status, target).
		WithReportableDetails(map[string]any{
			"spot_id": s.ID,
			"status":  s.Status,
			"target":  target,
			"event":   event,
		}).
		Mark(ierr.ErrInvalidOperation)
}
