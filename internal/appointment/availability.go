package appointment

import (
	"context"
	"fmt"
	"time"
)

// Availability computes the per-slot availability list for a provider on
// the calendar day containing `day`.
//
// A slot is available iff its instant is strictly after the wall clock
// at call time and no live appointment occupies it. The wall clock is
// read exactly once so all flags in one response are consistent, and the
// result is recomputed on every call: availability depends on "now", so
// caching it would serve stale flags.
//
// No provider-existence check happens here. An unknown provider simply
// has no appointments, so every future slot comes back available;
// booking is where the provider is validated.
func (s *service) Availability(ctx context.Context, providerID string, day time.Time) ([]AvailabilitySlot, error) {
	if providerID == "" || day.IsZero() {
		return nil, ErrInvalidInput
	}

	from, to := s.template.DayBounds(day)

	appointments, err := s.repo.ListByProviderAndDateRange(ctx, providerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch appointments for availability failed: %w", err)
	}

	// The port returns canceled rows too; they must not block a slot.
	booked := make(map[int64]bool, len(appointments))
	for _, a := range appointments {
		if a.Canceled() {
			continue
		}
		booked[a.Date.Truncate(time.Minute).Unix()] = true
	}

	now := s.now()

	labels := s.template.SlotTimes()
	slots := make([]AvailabilitySlot, 0, len(labels))
	for _, label := range labels {
		instant, err := s.template.SlotInstant(day, label)
		if err != nil {
			return nil, fmt.Errorf("compute slot instant for %q failed: %w", label, err)
		}
		slots = append(slots, AvailabilitySlot{
			Time:      label,
			Instant:   instant,
			Available: instant.After(now) && !booked[instant.Truncate(time.Minute).Unix()],
		})
	}

	return slots, nil
}
