package usecase_test

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/garmentix/marketplace/internal/domain/errors"
	"github.com/garmentix/marketplace/internal/domain/lifecycle"
	"github.com/garmentix/marketplace/internal/domain/model"
	testhelpers "github.com/garmentix/marketplace/internal/test"
	"github.com/garmentix/marketplace/internal/usecase"
)

func adminActor() lifecycle.Actor {
	return lifecycle.Actor{Email: "admin@example.com", Role: model.RoleAdmin, Status: model.UserStatusActive}
}

func TestUserAdminRequiresAdmin(t *testing.T) {
	uc := usecase.NewUserAdminUseCase(testhelpers.NewUserRepositoryStub())

	if _, err := uc.List(context.Background(), activeManager()); !errors.Is(err, domainErrors.ErrRoleNotAllowed) {
		t.Fatalf("expected role error, got %v", err)
	}
	if err := uc.SetRoleStatus(context.Background(), activeBuyer("b@example.com"), "x@example.com", model.RoleManager, model.UserStatusActive); !errors.Is(err, domainErrors.ErrRoleNotAllowed) {
		t.Fatalf("expected role error, got %v", err)
	}
	if err := uc.Delete(context.Background(), activeManager(), "x@example.com"); !errors.Is(err, domainErrors.ErrRoleNotAllowed) {
		t.Fatalf("expected role error, got %v", err)
	}
}

func TestSetRoleStatus(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	users.Users["b@example.com"] = &model.User{Email: "b@example.com", Role: model.RoleBuyer, Status: model.UserStatusActive}
	uc := usecase.NewUserAdminUseCase(users)

	if err := uc.SetRoleStatus(context.Background(), adminActor(), "b@example.com", model.RoleManager, model.UserStatusSuspended); err != nil {
		t.Fatalf("set role/status: %v", err)
	}
	if users.Users["b@example.com"].Role != model.RoleManager || users.Users["b@example.com"].Status != model.UserStatusSuspended {
		t.Fatalf("role/status not applied: %+v", users.Users["b@example.com"])
	}

	if err := uc.SetRoleStatus(context.Background(), adminActor(), "b@example.com", model.Role("superuser"), model.UserStatusActive); err == nil {
		t.Fatalf("unknown role must be rejected")
	}
	if err := uc.SetRoleStatus(context.Background(), adminActor(), "b@example.com", model.RoleBuyer, model.UserStatus("frozen")); err == nil {
		t.Fatalf("unknown status must be rejected")
	}
}

func TestDeleteUser(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	users.Users["b@example.com"] = &model.User{Email: "b@example.com", Role: model.RoleBuyer, Status: model.UserStatusActive}
	uc := usecase.NewUserAdminUseCase(users)

	if err := uc.Delete(context.Background(), adminActor(), "b@example.com"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := uc.Delete(context.Background(), adminActor(), "b@example.com"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
