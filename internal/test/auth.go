package test

import (
	"context"
	"errors"

	"github.com/garmentix/marketplace/internal/domain/lifecycle"
	pkgAuth "github.com/garmentix/marketplace/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(string) (string, error)
	ParseFn func(string) (string, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(email string) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(email)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return "buyer@example.com", nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// ActorResolverStub implements the middleware actor resolution contract.
type ActorResolverStub struct {
	Email      string
	Actor      lifecycle.Actor
	ParseErr   error
	ResolveErr error
	ParseFn    func(string) (string, error)
	ResolveFn  func(context.Context, string) (lifecycle.Actor, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s ActorResolverStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.ParseErr != nil {
		return "", s.ParseErr
	}
	return s.Email, nil
}

// ResolveActor returns the configured actor for any email.
func (s ActorResolverStub) ResolveActor(ctx context.Context, email string) (lifecycle.Actor, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, email)
	}
	if s.ResolveErr != nil {
		return lifecycle.Actor{}, s.ResolveErr
	}
	return s.Actor, nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
