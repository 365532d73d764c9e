package booking

import "fmt"

// BookingError carries a machine-readable code the HTTP layer maps to a
// status.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrSlotUnavailable is returned when the requested slot is not available at
// confirmation time, either from the availability re-check or the
// transactional conflict re-validation.
var ErrSlotUnavailable = &BookingError{
	Code:    "slotUnavailable",
	Message: "the requested slot is no longer available",
}

// ErrBookingStarted is returned when a cancellation arrives after the
// appointment start time.
var ErrBookingStarted = &BookingError{
	Code:    "bookingStarted",
	Message: "the appointment has already started",
}

// ErrSlotHeld is returned when another client currently holds the slot.
var ErrSlotHeld = &BookingError{
	Code:    "slotHeld",
	Message: "the requested slot is being booked by someone else",
}
