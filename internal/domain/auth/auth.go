// Package auth describes the identity provider the application signs in through.
// The board core never depends on it; only the presentation layer consults a Gate.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ProviderKind names an interactive sign-in provider
type ProviderKind string

const (
	ProviderGoogle ProviderKind = "google"
	ProviderGitHub ProviderKind = "github"
)

// Session is an authenticated user session
type Session struct {
	UserID    string    `json:"user_id" yaml:"user_id"`
	Email     string    `json:"email,omitempty" yaml:"email,omitempty"`
	Provider  string    `json:"provider" yaml:"provider"`
	Token     string    `json:"token" yaml:"token"`
	IssuedAt  time.Time `json:"issued_at" yaml:"issued_at"`
	ExpiresAt time.Time `json:"expires_at" yaml:"expires_at"`
}

// Expired reports whether the session is no longer valid at t
func (s *Session) Expired(t time.Time) bool {
	return !s.ExpiresAt.IsZero() && !t.Before(s.ExpiresAt)
}

// Gateway is the identity provider capability consumed by the application
type Gateway interface {
	SignInWithCredentials(ctx context.Context, identifier, secret string) (*Session, error)
	SignInInteractive(ctx context.Context, provider ProviderKind) (*Session, error)
	SignOut(ctx context.Context) error
	// ObserveSession streams the current session (nil when signed out) followed by
	// every change. The returned func stops the stream and closes the channel.
	ObserveSession(ctx context.Context) (<-chan *Session, func())
}

// ErrorKind classifies authentication failures
type ErrorKind string

const (
	KindInvalidCredentials  ErrorKind = "invalid_credentials"
	KindInvalidInput        ErrorKind = "invalid_input"
	KindProviderUnavailable ErrorKind = "provider_unavailable"
	KindInternal            ErrorKind = "internal"
)

// Error is returned by Gateway implementations
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates an auth error of the given kind
func NewError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// IsKind reports whether err is an auth Error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var authErr *Error
	return errors.As(err, &authErr) && authErr.Kind == kind
}
