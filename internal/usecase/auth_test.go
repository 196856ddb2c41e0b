package usecase_test

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/garmentix/marketplace/internal/domain/errors"
	"github.com/garmentix/marketplace/internal/domain/model"
	pkgAuth "github.com/garmentix/marketplace/internal/pkg/auth"
	testhelpers "github.com/garmentix/marketplace/internal/test"
	"github.com/garmentix/marketplace/internal/usecase"
)

func newStrategyStub() testhelpers.StrategyStub {
	return testhelpers.StrategyStub{
		IssueFn: func(email string) (string, error) {
			return "token-" + email, nil
		},
		ParseFn: func(token string) (string, error) {
			if len(token) < 7 || token[:6] != "token-" {
				return "", pkgAuth.ErrInvalidToken
			}
			return token[6:], nil
		},
	}
}

func TestAuthRegisterAndAuthenticate(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	uc := usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, newStrategyStub())

	usr, token, err := uc.Register(context.Background(), "Buyer@Example.com ", "pass", "Buyer", "email")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if usr.Email != "buyer@example.com" {
		t.Fatalf("expected normalized email, got %q", usr.Email)
	}
	if usr.Role != model.RoleBuyer || usr.Status != model.UserStatusActive {
		t.Fatalf("new accounts must be active buyers, got %+v", usr)
	}
	if token != "token-buyer@example.com" {
		t.Fatalf("unexpected token %q", token)
	}

	if _, _, err := uc.Register(context.Background(), "buyer@example.com", "pass", "", ""); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}

	if _, _, err := uc.Authenticate(context.Background(), "buyer@example.com", "pass"); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "buyer@example.com", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("unknown account must look like bad credentials, got %v", err)
	}
}

func TestAuthRegisterValidation(t *testing.T) {
	uc := usecase.NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub())

	if _, _, err := uc.Register(context.Background(), "", "pass", "", ""); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for empty email, got %v", err)
	}
	if _, _, err := uc.Register(context.Background(), "a@example.com", "", "", ""); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for empty password, got %v", err)
	}
}

func TestAuthParseToken(t *testing.T) {
	uc := usecase.NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub())

	email, err := uc.ParseToken("token-buyer@example.com")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if email != "buyer@example.com" {
		t.Fatalf("unexpected email %q", email)
	}

	if _, err := uc.ParseToken(""); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestResolveActor(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	users.Users["manager@example.com"] = &model.User{Email: "manager@example.com", Role: model.RoleManager, Status: model.UserStatusSuspended}
	uc := usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, newStrategyStub())

	actor, err := uc.ResolveActor(context.Background(), "manager@example.com")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if actor.Role != model.RoleManager || actor.Status != model.UserStatusSuspended {
		t.Fatalf("actor must carry role and status, got %+v", actor)
	}

	if _, err := uc.ResolveActor(context.Background(), "ghost@example.com"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
