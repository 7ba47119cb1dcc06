package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidBounds = errors.New("day start must be before day end")
	ErrInvalidStep   = errors.New("slot step must be a positive whole number of minutes")
	ErrUnknownSlot   = errors.New("time does not match any slot in the template")
)

// Template is the fixed daily schedule: an ordered list of bookable slot
// start times within a single business day. It is built once at startup
// and read-only afterwards.
type Template struct {
	labels []string // "HH:MM", ascending
	step   time.Duration
	loc    *time.Location
}

// New builds a Template covering start through end (both "HH:MM", end
// inclusive) at the given step, interpreted in loc.
func New(start, end string, step time.Duration, loc *time.Location) (*Template, error) {
	if step < time.Minute || step%time.Minute != 0 {
		return nil, ErrInvalidStep
	}
	if loc == nil {
		loc = time.UTC
	}

	startMin, err := parseLabel(start)
	if err != nil {
		return nil, fmt.Errorf("invalid day start %q: %w", start, err)
	}
	endMin, err := parseLabel(end)
	if err != nil {
		return nil, fmt.Errorf("invalid day end %q: %w", end, err)
	}
	if startMin > endMin {
		return nil, ErrInvalidBounds
	}

	stepMin := int(step / time.Minute)
	var labels []string
	for m := startMin; m <= endMin; m += stepMin {
		labels = append(labels, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}

	return &Template{labels: labels, step: step, loc: loc}, nil
}

// Default returns the standard business-day template: hourly slots from
// 08:00 through 19:00 in UTC.
func Default() *Template {
	t, err := New("08:00", "19:00", time.Hour, time.UTC)
	if err != nil {
		// The literals above are valid; reaching this is a programming error.
		panic(err)
	}
	return t
}

// SlotTimes returns the slot start labels in ascending order.
// The returned slice is a copy and safe to modify.
func (t *Template) SlotTimes() []string {
	out := make([]string, len(t.labels))
	copy(out, t.labels)
	return out
}

// SlotInstant combines the calendar day of `day` with the slot label's
// hour and minute into an absolute instant in the template's timezone.
// Seconds are zeroed.
func (t *Template) SlotInstant(day time.Time, label string) (time.Time, error) {
	m, err := parseLabel(label)
	if err != nil {
		return time.Time{}, err
	}
	y, mo, d := day.In(t.loc).Date()
	return time.Date(y, mo, d, m/60, m%60, 0, 0, t.loc), nil
}

// Aligns reports whether the instant falls exactly on one of the
// template's slot boundaries for its own calendar day.
func (t *Template) Aligns(instant time.Time) bool {
	local := instant.In(t.loc)
	if local.Second() != 0 || local.Nanosecond() != 0 {
		return false
	}
	label := local.Format("15:04")
	for _, l := range t.labels {
		if l == label {
			return true
		}
	}
	return false
}

// DayBounds returns the first and last instants of the calendar day
// containing `day` in the template's timezone.
func (t *Template) DayBounds(day time.Time) (time.Time, time.Time) {
	y, mo, d := day.In(t.loc).Date()
	start := time.Date(y, mo, d, 0, 0, 0, 0, t.loc)
	end := time.Date(y, mo, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.loc)
	return start, end
}

// Location returns the template's timezone.
func (t *Template) Location() *time.Location {
	return t.loc
}

// parseLabel converts "HH:MM" into minutes since midnight.
func parseLabel(label string) (int, error) {
	hh, mm, ok := strings.Cut(label, ":")
	if !ok {
		return 0, ErrUnknownSlot
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, ErrUnknownSlot
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, ErrUnknownSlot
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, ErrUnknownSlot
	}
	return h*60 + m, nil
}
