package appointment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nekogravitycat/appointment-booking-backend/internal/notification"
	"github.com/nekogravitycat/appointment-booking-backend/internal/schedule"
	"github.com/nekogravitycat/appointment-booking-backend/internal/user"
)

// cancelNotice is how far ahead of the slot start a customer may still
// cancel.
const cancelNotice = 2 * time.Hour

type BookRequest struct {
	ProviderID string
	CustomerID string
	Date       time.Time
}

type Service interface {
	// Availability returns the slot list for the provider on the given
	// calendar day, in template order. Read-only and advisory: a slot
	// reported available may be taken by the time a booking lands, and
	// Book re-validates at commit time.
	Availability(ctx context.Context, providerID string, day time.Time) ([]AvailabilitySlot, error)

	// Book atomically reserves a slot for the customer.
	Book(ctx context.Context, req BookRequest) (*Appointment, error)

	// ListByCustomer returns the customer's live appointments.
	ListByCustomer(ctx context.Context, customerID string, filter Filter) ([]*Appointment, int, error)

	// ProviderDay returns a provider's live appointments for one day,
	// ascending. Backs the provider's own schedule view.
	ProviderDay(ctx context.Context, providerID string, day time.Time) ([]*Appointment, error)

	// Cancel voids an appointment on behalf of its customer.
	Cancel(ctx context.Context, id, customerID string) (*Appointment, error)
}

type service struct {
	repo        Repository
	userService user.Service
	template    *schedule.Template
	notifier    notification.Notifier

	// now is the single wall-clock read point, swappable in tests.
	now func() time.Time
}

func NewService(repo Repository, userService user.Service, template *schedule.Template, notifier notification.Notifier) Service {
	return &service{
		repo:        repo,
		userService: userService,
		template:    template,
		notifier:    notifier,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Book(ctx context.Context, req BookRequest) (*Appointment, error) {
	if req.ProviderID == "" || req.CustomerID == "" || req.Date.IsZero() {
		return nil, ErrInvalidInput
	}
	if req.ProviderID == req.CustomerID {
		return nil, ErrSelfBooking
	}

	// One clock read for the whole operation.
	now := s.now()

	// Seconds below slot granularity never distinguish two bookings.
	date := req.Date.Truncate(time.Minute)

	if !date.After(now) {
		return nil, ErrPastDate
	}
	if !s.template.Aligns(date) {
		return nil, ErrOffSchedule
	}

	provider, err := s.userService.GetByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("fetch provider failed: %w", err)
	}
	if !provider.IsProvider {
		return nil, ErrProviderNotFound
	}

	appointment := &Appointment{
		ProviderID: req.ProviderID,
		CustomerID: req.CustomerID,
		Date:       date,
	}

	// The conflict check lives inside Create: the store's partial unique
	// index serializes concurrent inserts for the same (provider, slot).
	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	// Best effort: a lost notification never rolls back a booking.
	if err := s.notifier.AppointmentCreated(ctx, notification.AppointmentEvent{
		ID:         appointment.ID,
		ProviderID: appointment.ProviderID,
		CustomerID: appointment.CustomerID,
		Date:       appointment.Date,
	}); err != nil {
		log.Printf("appointment %s created, but notification failed: %v", appointment.ID, err)
	}

	return appointment, nil
}

func (s *service) ListByCustomer(ctx context.Context, customerID string, filter Filter) ([]*Appointment, int, error) {
	if customerID == "" {
		return nil, 0, ErrInvalidInput
	}
	return s.repo.ListByCustomer(ctx, customerID, filter)
}

func (s *service) ProviderDay(ctx context.Context, providerID string, day time.Time) ([]*Appointment, error) {
	if providerID == "" || day.IsZero() {
		return nil, ErrInvalidInput
	}

	from, to := s.template.DayBounds(day)
	appointments, err := s.repo.ListByProviderAndDateRange(ctx, providerID, from, to)
	if err != nil {
		return nil, err
	}

	live := make([]*Appointment, 0, len(appointments))
	for _, a := range appointments {
		if !a.Canceled() {
			live = append(live, a)
		}
	}
	return live, nil
}

func (s *service) Cancel(ctx context.Context, id, customerID string) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if a.CustomerID != customerID {
		return nil, ErrPermissionDenied
	}
	if a.Canceled() {
		return nil, ErrNotFound
	}

	now := s.now()
	if now.After(a.Date.Add(-cancelNotice)) {
		return nil, ErrTooLateToCancel
	}

	if err := s.repo.Cancel(ctx, a.ID, now); err != nil {
		return nil, err
	}
	a.CanceledAt = &now

	if err := s.notifier.AppointmentCanceled(ctx, notification.AppointmentEvent{
		ID:         a.ID,
		ProviderID: a.ProviderID,
		CustomerID: a.CustomerID,
		Date:       a.Date,
	}); err != nil {
		log.Printf("appointment %s canceled, but notification failed: %v", a.ID, err)
	}

	return a, nil
}
