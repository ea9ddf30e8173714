// internal/domain/session/token.go
package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrNoToken      = errors.New("session: no token")
	ErrMalformed    = errors.New("session: malformed token")
	ErrTokenExpired = errors.New("session: token expired")
)

// parser is decode-only. The client never holds the signing key; this
// check is a UX gate so users land on the login page before a doomed
// request, not an authorization decision. The server must validate the
// token on every request regardless of what this reports.
var parser = jwt.NewParser()

// Expiry extracts the exp claim (seconds since epoch) without verifying
// the signature.
func Expiry(token string) (time.Time, error) {
	if token == "" {
		return time.Time{}, ErrNoToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, ErrMalformed
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, ErrMalformed
	}
	return time.UnixMilli(int64(exp * 1000)), nil
}

// Validate reports whether the token is present, decodable, and not yet
// expired at now. Expiry is strict: a token whose exp equals now is still
// valid, only exp strictly before now fails.
func Validate(token string, now time.Time) error {
	exp, err := Expiry(token)
	if err != nil {
		return err
	}
	if exp.UnixMilli() < now.UnixMilli() {
		return ErrTokenExpired
	}
	return nil
}
