package appointment

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/appointment-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "appointment not found")
	ErrInvalidInput     = apperror.New(http.StatusBadRequest, "invalid input parameters")
	ErrPastDate         = apperror.New(http.StatusBadRequest, "cannot book a date in the past")
	ErrOffSchedule      = apperror.New(http.StatusBadRequest, "time does not match a bookable slot")
	ErrSlotTaken        = apperror.New(http.StatusConflict, "time slot already booked")
	ErrProviderNotFound = apperror.New(http.StatusNotFound, "provider not found")
	ErrSelfBooking      = apperror.New(http.StatusBadRequest, "cannot book an appointment with yourself")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrTooLateToCancel  = apperror.New(http.StatusBadRequest, "appointments can only be canceled two hours in advance")
)

// Appointment is one reserved slot: a customer booked with a provider at
// an exact slot start instant. Appointments are never deleted; canceling
// sets CanceledAt and frees the slot for rebooking.
type Appointment struct {
	ID           string
	ProviderID   string
	ProviderName string
	CustomerID   string
	CustomerName string
	Date         time.Time
	CanceledAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Canceled reports whether the appointment has been voided.
func (a *Appointment) Canceled() bool {
	return a.CanceledAt != nil
}

// AvailabilitySlot is one entry of a provider's per-day availability
// list. Computed fresh on every request, never persisted or cached.
type AvailabilitySlot struct {
	Time      string // "HH:MM" slot label
	Instant   time.Time
	Available bool
}

// Filter defines parameters for listing a customer's appointments.
type Filter struct {
	Page     int
	PageSize int
}
