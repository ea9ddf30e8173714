// internal/application/usecase/session_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"

	"storefront/internal/domain/session"
	"storefront/internal/storage"
)

var (
	ErrSessionInvalidArgument = errors.New("session_usecase: invalid argument")
)

// AuthAPI is the login slice of the collaborator service.
type AuthAPI interface {
	Login(ctx context.Context, creds session.Credentials) (string, error)
}

// SessionUsecase is the login/session gate: Unauthenticated -> (login)
// Authenticated -> (expiry) Expired. The expiry check is decode-only and
// exists so users land on the login page before a request that was going
// to 401 anyway; the server still validates the token on every request.
type SessionUsecase struct {
	store storage.Store
	api   AuthAPI
	clock Clock
}

func NewSessionUsecase(store storage.Store, api AuthAPI) *SessionUsecase {
	return &SessionUsecase{store: store, api: api, clock: systemClock{}}
}

// NewSessionUsecaseWithClock is useful for tests.
func NewSessionUsecaseWithClock(store storage.Store, api AuthAPI, clock Clock) *SessionUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &SessionUsecase{store: store, api: api, clock: clock}
}

// Login exchanges credentials for a token, persists it, and returns the
// navigation target (the caller-supplied redirect, or the site root). On
// failure nothing is persisted and the error carries the server's message
// for the alert banner.
func (uc *SessionUsecase) Login(ctx context.Context, creds session.Credentials, redirect string) (string, error) {
	if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		return "", ErrSessionInvalidArgument
	}

	token, err := uc.api.Login(ctx, creds)
	if err != nil {
		return "", err
	}

	if err := uc.store.Set(storage.TokenKey, token); err != nil {
		return "", err
	}

	target := strings.TrimSpace(redirect)
	if target == "" {
		target = "/"
	}
	return target, nil
}

// CheckSession reads the persisted token for a protected page. A missing,
// malformed, or expired token is cleared and a login redirect (carrying
// currentPath as the return target) is returned; otherwise the token comes
// back for the page to use.
func (uc *SessionUsecase) CheckSession(currentPath string) (token string, redirect string) {
	var stored string
	found, err := uc.store.Get(storage.TokenKey, &stored)
	if err != nil || !found {
		return "", uc.loginRedirect(currentPath)
	}

	if err := session.Validate(stored, uc.clock.Now()); err != nil {
		log.Printf("[session_usecase] token rejected: %v", err)
		if err := uc.store.Remove(storage.TokenKey); err != nil {
			log.Printf("[session_usecase] clear token: %v", err)
		}
		return "", uc.loginRedirect(currentPath)
	}
	return stored, ""
}

// Logout discards the token unconditionally.
func (uc *SessionUsecase) Logout() error {
	return uc.store.Remove(storage.TokenKey)
}

func (uc *SessionUsecase) loginRedirect(currentPath string) string {
	p := strings.TrimSpace(currentPath)
	if p == "" {
		p = "/"
	}
	return "/login?redirect=" + url.QueryEscape(p)
}
