// ABOUTME: Admin session gate: a two-state authenticated/unauthenticated value and the credential check
// ABOUTME: The attempt is compared in clear against the secret currently held by the content store

package session

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/2389/cafesite/internal/content"
)

var (
	// ErrWrongSecret is returned when a login attempt does not match the stored secret.
	ErrWrongSecret = errors.New("wrong admin password")
	// ErrPasswordTooShort is returned when a new secret is shorter than content.MinPasswordLength.
	ErrPasswordTooShort = content.ErrPasswordTooShort
)

// PasswordSource supplies the current admin secret.
type PasswordSource interface {
	AdminPassword(ctx context.Context) (string, error)
}

// Gate is the authenticated/unauthenticated state of one admin session.
// The zero value is unauthenticated.
type Gate struct {
	authenticated bool
}

// Authenticated reports whether the gate is open.
func (g *Gate) Authenticated() bool { return g.authenticated }

// Login opens the gate when attempt equals current. A mismatch leaves the
// gate as it was and returns ErrWrongSecret.
func (g *Gate) Login(attempt, current string) error {
	if !Matches(attempt, current) {
		return ErrWrongSecret
	}
	g.authenticated = true
	return nil
}

// Logout closes the gate.
func (g *Gate) Logout() { g.authenticated = false }

// Matches compares a login attempt with the stored secret.
func Matches(attempt, current string) bool {
	return subtle.ConstantTimeCompare([]byte(attempt), []byte(current)) == 1
}
