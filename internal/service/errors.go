package service

import "errors"

var (
	// ErrUnknownDestination is returned when a location code is not in
	// the serviced network.
	ErrUnknownDestination = errors.New("unknown destination code")

	// ErrInvalidPassengerCount is returned when the passenger count is
	// below one.
	ErrInvalidPassengerCount = errors.New("invalid passenger count")

	// ErrInsufficientBalance is returned when a balance debit would take
	// the balance below zero.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrBookingAlreadyPaid is returned when paying a booking that is
	// already marked paid.
	ErrBookingAlreadyPaid = errors.New("booking already paid")

	// ErrBookingNotPaid is returned when refunding a booking that was
	// never paid.
	ErrBookingNotPaid = errors.New("booking not paid")

	// ErrBookingNotOwned is returned when a caller operates on a booking
	// belonging to another user.
	ErrBookingNotOwned = errors.New("booking does not belong to caller")

	// ErrBookingAlreadyCancelled is returned when cancelling an already
	// cancelled booking.
	ErrBookingAlreadyCancelled = errors.New("booking already cancelled")

	// ErrTransactionAlreadyProcessed is returned when reviewing a
	// transaction that has already reached a terminal status.
	ErrTransactionAlreadyProcessed = errors.New("transaction already processed")

	// ErrInvalidTransactionStatus is returned when a review requests a
	// status that is not a valid review outcome.
	ErrInvalidTransactionStatus = errors.New("invalid transaction status")

	// ErrInvalidAmount is returned when a deposit or withdrawal amount
	// is not positive.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidBookingID is returned when a booking ID is empty.
	ErrInvalidBookingID = errors.New("invalid booking id")

	// ErrInvalidTransactionID is returned when a transaction ID is empty.
	ErrInvalidTransactionID = errors.New("invalid transaction id")

	// ErrInvalidUserID is returned when a user ID is empty.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidFlightDate is returned when a booking's flight date is
	// missing or in the past.
	ErrInvalidFlightDate = errors.New("invalid flight date")

	// ErrHelicopterUnavailable is returned when the requested helicopter
	// is not available for charter.
	ErrHelicopterUnavailable = errors.New("helicopter unavailable")

	// ErrCapacityExceeded is returned when the passenger count exceeds
	// the helicopter's seat capacity.
	ErrCapacityExceeded = errors.New("passenger count exceeds capacity")

	// ErrExperienceInactive is returned when booking an experience that
	// is no longer offered.
	ErrExperienceInactive = errors.New("experience not currently offered")

	// ErrUnsupportedPaymentMethod is returned for payment methods the
	// ledger cannot settle.
	ErrUnsupportedPaymentMethod = errors.New("unsupported payment method")

	// ErrForbidden is returned when the caller lacks the required role.
	ErrForbidden = errors.New("forbidden")

	// ErrOperationInProgress is returned when another request holds the
	// lock for the same ledger entity.
	ErrOperationInProgress = errors.New("operation already in progress")
)

// RequireRole checks that the actor's role is one of the allowed roles.
// Every ledger and admin operation calls this before touching state.
func RequireRole(role string, allowed ...string) error {
	for _, a := range allowed {
		if role == a {
			return nil
		}
	}
	return ErrForbidden
}
