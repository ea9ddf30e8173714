// internal/application/usecase/session_usecase_test.go
package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/session"
	"storefront/internal/storage"
)

type fakeAuthAPI struct {
	token string
	err   error
	creds session.Credentials
}

func (f *fakeAuthAPI) Login(_ context.Context, creds session.Credentials) (string, error) {
	f.creds = creds
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()})
	s, err := tok.SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

func TestLoginPersistsTokenAndReturnsRedirect(t *testing.T) {
	store := storage.NewMemoryStore().NewHandle()
	api := &fakeAuthAPI{token: "tok-1"}
	uc := NewSessionUsecase(store, api)

	target, err := uc.Login(context.Background(), session.Credentials{Email: "a@b.c", Password: "pw"}, "/checkout")
	require.NoError(t, err)
	assert.Equal(t, "/checkout", target)
	assert.Equal(t, "a@b.c", api.creds.Email)

	var stored string
	found, err := store.Get(storage.TokenKey, &stored)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "tok-1", stored)
}

func TestLoginDefaultRedirectIsRoot(t *testing.T) {
	store := storage.NewMemoryStore().NewHandle()
	uc := NewSessionUsecase(store, &fakeAuthAPI{token: "tok"})

	target, err := uc.Login(context.Background(), session.Credentials{Email: "a@b.c", Password: "pw"}, "")
	require.NoError(t, err)
	assert.Equal(t, "/", target)
}

func TestLoginFailureMakesNoStateChange(t *testing.T) {
	store := storage.NewMemoryStore().NewHandle()
	uc := NewSessionUsecase(store, &fakeAuthAPI{err: errors.New("invalid credentials")})

	_, err := uc.Login(context.Background(), session.Credentials{Email: "a@b.c", Password: "bad"}, "/x")
	require.Error(t, err)

	var stored string
	found, _ := store.Get(storage.TokenKey, &stored)
	assert.False(t, found)
}

func TestLoginRejectsBlankCredentials(t *testing.T) {
	store := storage.NewMemoryStore().NewHandle()
	api := &fakeAuthAPI{token: "tok"}
	uc := NewSessionUsecase(store, api)

	for _, creds := range []session.Credentials{
		{},
		{Email: "   ", Password: "pw"},
		{Email: "a@b.c"},
	} {
		_, err := uc.Login(context.Background(), creds, "/x")
		assert.ErrorIs(t, err, ErrSessionInvalidArgument, "creds=%+v", creds)
	}

	// the auth API was never called and nothing was persisted
	assert.Empty(t, api.creds.Email)
	var stored string
	found, _ := store.Get(storage.TokenKey, &stored)
	assert.False(t, found)
}

func TestCheckSessionValidTokenPassesThrough(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	store := storage.NewMemoryStore().NewHandle()
	tok := signedToken(t, now.Add(time.Hour))
	require.NoError(t, store.Set(storage.TokenKey, tok))

	uc := NewSessionUsecaseWithClock(store, nil, fixedClock{now})
	got, redirect := uc.CheckSession("/checkout")
	assert.Equal(t, tok, got)
	assert.Empty(t, redirect)
}

func TestCheckSessionMissingTokenRedirectsWithReturnPath(t *testing.T) {
	store := storage.NewMemoryStore().NewHandle()
	uc := NewSessionUsecase(store, nil)

	got, redirect := uc.CheckSession("/orders")
	assert.Empty(t, got)
	assert.Equal(t, "/login?redirect=%2Forders", redirect)
}

func TestCheckSessionExpiredTokenIsClearedAndRedirects(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	store := storage.NewMemoryStore().NewHandle()
	require.NoError(t, store.Set(storage.TokenKey, signedToken(t, now.Add(-time.Second))))

	uc := NewSessionUsecaseWithClock(store, nil, fixedClock{now})
	got, redirect := uc.CheckSession("/checkout")
	assert.Empty(t, got)
	assert.Contains(t, redirect, "/login?redirect=")

	// the dead token must not survive
	var stored string
	found, _ := store.Get(storage.TokenKey, &stored)
	assert.False(t, found)
}

func TestCheckSessionExpiryEqualToNowIsValid(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	store := storage.NewMemoryStore().NewHandle()
	tok := signedToken(t, now)
	require.NoError(t, store.Set(storage.TokenKey, tok))

	uc := NewSessionUsecaseWithClock(store, nil, fixedClock{now})
	got, redirect := uc.CheckSession("/")
	assert.Equal(t, tok, got)
	assert.Empty(t, redirect)
}
