// Package freight holds the pure rules of the booking engine: the booking
// status state machine, truck capacity accounting and price quoting. It has
// no storage or transport dependencies so the invariants can be tested in
// isolation.
package freight

import (
	"fmt"
	"math/rand"
	"time"

	"freight-marketplace-backend/internal/model"
)

// allowedTransitions is the booking lifecycle as a directed graph.
// "Accepted -> In-Transit" is legal without passing through Pickup because
// the trucker's pickup confirmation moves the load straight into transit.
var allowedTransitions = map[model.BookingStatus][]model.BookingStatus{
	model.StatusPending:   {model.StatusAccepted, model.StatusRevoked},
	model.StatusAccepted:  {model.StatusPickup, model.StatusInTransit, model.StatusCancelled},
	model.StatusPickup:    {model.StatusInTransit, model.StatusCancelled},
	model.StatusInTransit: {model.StatusDelivered, model.StatusCancelled},
	// Terminal states.
	model.StatusDelivered: {},
	model.StatusCancelled: {},
	model.StatusRevoked:   {},
}

// ValidStatus reports whether s is a known booking status.
func ValidStatus(s model.BookingStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether from -> to is a legal status transition.
// Self-transitions are always legal, so repeating an update is a no-op
// rather than an error.
func CanTransition(from, to model.BookingStatus) bool {
	if from == to {
		return ValidStatus(from)
	}
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyTransition moves a booking to the target status and maintains the
// per-status timestamps. The booking is left untouched when the transition
// is rejected.
func ApplyTransition(b *model.Booking, to model.BookingStatus, now time.Time) error {
	if b == nil {
		return fmt.Errorf("booking is nil")
	}
	if !ValidStatus(to) {
		return &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", to)}
	}
	if !CanTransition(b.Status, to) {
		return &TransitionError{From: b.Status, To: to}
	}

	b.Status = to

	switch to {
	case model.StatusAccepted:
		if b.AcceptedAt == nil {
			t := now
			b.AcceptedAt = &t
		}
	case model.StatusPickup, model.StatusInTransit:
		if b.PickedUpAt == nil {
			t := now
			b.PickedUpAt = &t
		}
	case model.StatusDelivered:
		if b.DeliveredAt == nil {
			t := now
			b.DeliveredAt = &t
		}
	case model.StatusCancelled, model.StatusRevoked:
		if b.CancelledAt == nil {
			t := now
			b.CancelledAt = &t
		}
	}
	return nil
}

// TruckStatusFor derives a truck's status from its capacity utilisation.
// almostFullRatio is the utilisation at which a partially loaded truck is
// reported as Almost Full; Full always wins once filled reaches total.
func TruckStatusFor(filled, total, almostFullRatio float64) model.TruckStatus {
	switch {
	case total > 0 && filled >= total:
		return model.TruckFull
	case total > 0 && filled/total >= almostFullRatio:
		return model.TruckAlmostFull
	case filled > 0:
		return model.TruckPartial
	default:
		return model.TruckActive
	}
}

// Quote is the booking price: rate per ton times weight in tons.
func Quote(pricePerTon, weight float64) float64 {
	return pricePerTon * weight
}

// CheckWeight validates a requested booking weight against the truck's
// remaining capacity.
func CheckWeight(weight, remaining float64) error {
	if weight <= 0 {
		return &ValidationError{Field: "weight", Reason: "must be positive"}
	}
	if weight > remaining {
		return &ValidationError{
			Field:  "weight",
			Reason: fmt.Sprintf("requested %.2ft exceeds remaining capacity %.2ft", weight, remaining),
		}
	}
	return nil
}

// NewOTP returns a 4-digit numeric pickup verification code.
func NewOTP() string {
	return fmt.Sprintf("%04d", 1000+rand.Intn(9000))
}

// ValidSender reports whether s is a recognised chat sender role.
func ValidSender(s model.SenderRole) bool {
	switch s {
	case model.SenderTrucker, model.SenderFactory, model.SenderSystem:
		return true
	}
	return false
}
