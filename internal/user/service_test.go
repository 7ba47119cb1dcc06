package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/appointment-booking-backend/internal/auth"
)

// memRepo is a map-backed Repository for service tests.
type memRepo struct {
	byEmail map[string]*User
	nextID  int
}

func newMemRepo() *memRepo {
	return &memRepo{byEmail: make(map[string]*User)}
}

func (r *memRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memRepo) GetByID(ctx context.Context, id string) (*User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepo) Create(ctx context.Context, u *User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailAlreadyUsed
	}
	r.nextID++
	u.ID = string(rune('0' + r.nextID))
	u.CreatedAt = time.Now().UTC()
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memRepo) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	for _, u := range r.byEmail {
		if u.ID == id {
			lt := t
			u.LastLoginAt = &lt
			return nil
		}
	}
	return ErrNotFound
}

func (r *memRepo) ListProviders(ctx context.Context, filter ProviderFilter) ([]*User, int, error) {
	var out []*User
	for _, u := range r.byEmail {
		if u.IsProvider && u.IsActive {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func newTestService() (Service, *memRepo) {
	repo := newMemRepo()
	// Cost 4 keeps hashing fast in tests.
	return NewService(repo, auth.NewBcryptPasswordHasherWithCost(4)), repo
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterRequest{
		Email:       "  Barber@Example.COM ",
		Password:    "secret-pass",
		DisplayName: "Barber One",
		IsProvider:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, "barber@example.com", u.Email, "email is normalized")
	assert.True(t, u.IsProvider)
	assert.True(t, u.IsActive)
	require.NotNil(t, u.DisplayName)
	assert.Equal(t, "Barber One", *u.DisplayName)
	assert.NotEqual(t, "secret-pass", u.PasswordHash)

	// Same email cannot register twice.
	_, err = svc.Register(ctx, RegisterRequest{Email: "barber@example.com", Password: "secret-pass"})
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "   ", Password: "secret-pass"})
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = svc.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestLogin(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "cust@example.com", Password: "secret-pass"})
	require.NoError(t, err)

	u, err := svc.Login(ctx, "cust@example.com", "secret-pass")
	require.NoError(t, err)
	assert.NotNil(t, u.LastLoginAt)

	_, err = svc.Login(ctx, "cust@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "secret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	repo.byEmail["cust@example.com"].IsActive = false
	_, err = svc.Login(ctx, "cust@example.com", "secret-pass")
	assert.ErrorIs(t, err, ErrInactiveUser)
}
