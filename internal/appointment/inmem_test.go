package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nekogravitycat/appointment-booking-backend/internal/notification"
	"github.com/nekogravitycat/appointment-booking-backend/internal/schedule"
	"github.com/nekogravitycat/appointment-booking-backend/internal/user"
)

// memRepo is an in-memory Repository used by the service tests. Its
// Create mirrors the database guarantee: the conflict check and the
// insert happen under one lock, so concurrent bookings for the same
// (provider, slot) cannot both succeed.
type memRepo struct {
	mu    sync.Mutex
	items map[string]*Appointment
}

func newMemRepo() *memRepo {
	return &memRepo{items: make(map[string]*Appointment)}
}

func (r *memRepo) Create(ctx context.Context, a *Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot := a.Date.Truncate(time.Minute)
	for _, existing := range r.items {
		if existing.Canceled() {
			continue
		}
		if existing.ProviderID == a.ProviderID && existing.Date.Truncate(time.Minute).Equal(slot) {
			return ErrSlotTaken
		}
	}

	now := time.Now().UTC()
	a.ID = uuid.NewString()
	a.CreatedAt = now
	a.UpdatedAt = now

	cp := *a
	r.items[a.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, id string) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memRepo) ListByProviderAndDateRange(ctx context.Context, providerID string, from, to time.Time) ([]*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Appointment
	for _, a := range r.items {
		if a.ProviderID != providerID {
			continue
		}
		if a.Date.Before(from) || a.Date.After(to) {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memRepo) ListByCustomer(ctx context.Context, customerID string, filter Filter) ([]*Appointment, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Appointment
	for _, a := range r.items {
		if a.CustomerID != customerID || a.Canceled() {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, len(out), nil
}

func (r *memRepo) Cancel(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[id]
	if !ok || a.Canceled() {
		return ErrNotFound
	}
	t := at
	a.CanceledAt = &t
	a.UpdatedAt = at
	return nil
}

// liveCount reports how many non-canceled appointments exist for the
// provider at the given instant.
func (r *memRepo) liveCount(providerID string, at time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, a := range r.items {
		if a.ProviderID == providerID && !a.Canceled() && a.Date.Equal(at) {
			n++
		}
	}
	return n
}

// fakeUserService serves a fixed set of users. Only GetByID matters for
// the appointment service; the rest are unused here.
type fakeUserService struct {
	users map[string]*user.User
}

func newFakeUserService(users ...*user.User) *fakeUserService {
	m := make(map[string]*user.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserService{users: m}
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserService) Register(ctx context.Context, req user.RegisterRequest) (*user.User, error) {
	panic("not used in appointment tests")
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (*user.User, error) {
	panic("not used in appointment tests")
}

func (f *fakeUserService) ListProviders(ctx context.Context, filter user.ProviderFilter) ([]*user.User, int, error) {
	panic("not used in appointment tests")
}

// recordingNotifier captures emitted events and can be forced to fail.
type recordingNotifier struct {
	mu       sync.Mutex
	created  []notification.AppointmentEvent
	canceled []notification.AppointmentEvent
	fail     error
}

func (n *recordingNotifier) AppointmentCreated(ctx context.Context, evt notification.AppointmentEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail != nil {
		return n.fail
	}
	n.created = append(n.created, evt)
	return nil
}

func (n *recordingNotifier) AppointmentCanceled(ctx context.Context, evt notification.AppointmentEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail != nil {
		return n.fail
	}
	n.canceled = append(n.canceled, evt)
	return nil
}

func (n *recordingNotifier) createdCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.created)
}

func name(s string) *string {
	return &s
}

// newTestService wires a service against the in-memory fakes with a
// frozen clock.
func newTestService(repo Repository, users user.Service, notifier notification.Notifier, now time.Time) *service {
	s := NewService(repo, users, schedule.Default(), notifier).(*service)
	s.now = func() time.Time { return now }
	return s
}
