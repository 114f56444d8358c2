package services

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

type Role string

const (
	RoleConsumer Role = "consumer"
	RoleProvider Role = "provider"
)

// Subject is the acting identity resolved from a bearer token.
type Subject struct {
	ID   uint
	Role Role
}

func (s Subject) Is(role Role, id uint) bool {
	return s.Role == role && s.ID == id
}

// IdentityResolver turns a presented bearer token into the acting subject.
type IdentityResolver interface {
	ResolveSubject(ctx context.Context, token string) (Subject, error)
}

// Notifier delivers a message to an email address. Callers treat delivery as best effort.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Uploader stores a media file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, publicID string) (string, error)
}

// NopNotifier drops every message. Used when SMTP is disabled.
type NopNotifier struct{}

func (NopNotifier) Send(context.Context, string, string, string) error { return nil }

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func nopLogger(log *zerolog.Logger) *zerolog.Logger {
	if log != nil {
		return log
	}
	l := zerolog.Nop()
	return &l
}
