package auth

import "time"

// Strategy issues and verifies session tokens keyed by account email.
type Strategy interface {
	IssueToken(email string) (string, error)
	ParseToken(token string) (string, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
