package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	domainErrors "github.com/garmentix/marketplace/internal/domain/errors"
	"github.com/garmentix/marketplace/internal/domain/lifecycle"
	"github.com/garmentix/marketplace/internal/domain/model"
	"github.com/garmentix/marketplace/internal/domain/repository"
	testhelpers "github.com/garmentix/marketplace/internal/test"
	"github.com/garmentix/marketplace/internal/usecase"
)

type facadeFixture struct {
	facade   *MarketplaceFacade
	users    *testhelpers.UserRepositoryStub
	products *testhelpers.ProductRepositoryStub
	orders   *testhelpers.OrderRepositoryStub
	tracking *testhelpers.TrackingRepositoryStub
}

func newFacade() facadeFixture {
	users := testhelpers.NewUserRepositoryStub()
	products := testhelpers.NewProductRepositoryStub()
	orders := testhelpers.NewOrderRepositoryStub()
	tracking := testhelpers.NewTrackingRepositoryStub()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	authUC := usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, testhelpers.StrategyStub{})
	orderUC := usecase.NewOrderUseCase(orders, products, tracking)
	productUC := usecase.NewProductUseCase(products, testhelpers.UploaderStub{})
	userUC := usecase.NewUserAdminUseCase(users)
	paymentUC := usecase.NewPaymentUseCase(orders, testhelpers.CheckoutClientStub{}, logger)

	facade := NewMarketplaceFacade(authUC, orderUC, productUC, userUC, paymentUC)
	return facadeFixture{facade: facade, users: users, products: products, orders: orders, tracking: tracking}
}

func activeBuyer() lifecycle.Actor {
	return lifecycle.Actor{Email: "buyer@example.com", Role: model.RoleBuyer, Status: model.UserStatusActive}
}

func activeAdmin() lifecycle.Actor {
	return lifecycle.Actor{Email: "admin@example.com", Role: model.RoleAdmin, Status: model.UserStatusActive}
}

func TestFacadeAuth(t *testing.T) {
	env := newFacade()
	ctx := context.Background()

	token, err := env.facade.Register(ctx, "buyer@example.com", "password", "Buyer", "email")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	stored, err := env.users.GetByEmail(ctx, "buyer@example.com")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if stored.Role != model.RoleBuyer {
		t.Fatalf("unexpected stored role %q", stored.Role)
	}

	if _, err := env.facade.Authenticate(ctx, "buyer@example.com", "password"); err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}

	email, err := env.facade.ParseToken("anything")
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if email != "buyer@example.com" {
		t.Fatalf("unexpected email %q", email)
	}

	actor, err := env.facade.ResolveActor(ctx, "buyer@example.com")
	if err != nil {
		t.Fatalf("resolve actor returned error: %v", err)
	}
	if actor.Role != model.RoleBuyer || actor.Status != model.UserStatusActive {
		t.Fatalf("unexpected actor %+v", actor)
	}

	if _, err := env.facade.UserByEmail(ctx, "buyer@example.com"); err != nil {
		t.Fatalf("user by email returned error: %v", err)
	}
}

func TestFacadeOrders(t *testing.T) {
	env := newFacade()
	ctx := context.Background()
	buyer := activeBuyer()
	manager := lifecycle.Actor{Email: "manager@example.com", Role: model.RoleManager, Status: model.UserStatusActive}

	product, err := env.products.Create(ctx, &model.Product{
		ManagerEmail:      "manager@example.com",
		ProductName:       "Denim Jacket",
		Price:             40,
		AvailableQuantity: 100,
		MinimumOrder:      10,
		PaymentOptions:    []string{model.PaymentMethodOnline, model.PaymentMethodCashOnDelivery},
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}

	order, err := env.facade.PlaceOrder(ctx, buyer, usecase.OrderDraft{
		ProductID:     product.ID,
		OrderQuantity: 20,
		TotalPrice:    800,
	})
	if err != nil {
		t.Fatalf("place order returned error: %v", err)
	}
	if order.Status != model.OrderStatusPending {
		t.Fatalf("unexpected status %q", order.Status)
	}

	listed, err := env.facade.Orders(ctx, buyer, repository.OrderFilter{})
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected one order, got %v err=%v", listed, err)
	}

	if _, err := env.facade.Order(ctx, buyer, order.ID); err != nil {
		t.Fatalf("get order returned error: %v", err)
	}

	approved, err := env.facade.ApproveOrder(ctx, manager, order.ID)
	if err != nil {
		t.Fatalf("approve returned error: %v", err)
	}
	if approved.Status != model.OrderStatusApproved {
		t.Fatalf("unexpected status %q", approved.Status)
	}

	if _, err := env.facade.AppendTracking(ctx, manager, order.ID, usecase.TrackingDraft{Status: "Left warehouse"}); err != nil {
		t.Fatalf("append tracking returned error: %v", err)
	}
	events, err := env.facade.OrderTracking(ctx, order.ID)
	if err != nil || len(events) != 1 {
		t.Fatalf("expected one event, got %v err=%v", events, err)
	}

	if _, err := env.facade.AdminSetOrderStatus(ctx, activeAdmin(), order.ID, model.OrderStatusShipped); err != nil {
		t.Fatalf("admin set status returned error: %v", err)
	}

	if _, err := env.facade.RejectOrder(ctx, manager, order.ID); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestFacadeCancelAndCashOnDelivery(t *testing.T) {
	env := newFacade()
	ctx := context.Background()
	buyer := activeBuyer()

	env.orders.Seed(&model.Order{
		ID:             "order-1",
		Email:          buyer.Email,
		Status:         model.OrderStatusPending,
		PaymentStatus:  model.PaymentStatusUnpaid,
		PaymentOptions: []string{model.PaymentMethodCashOnDelivery},
	})

	if _, err := env.facade.SelectCashOnDelivery(ctx, buyer, "order-1"); err != nil {
		t.Fatalf("select cash on delivery returned error: %v", err)
	}

	env.orders.Seed(&model.Order{
		ID:            "order-2",
		Email:         buyer.Email,
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusUnpaid,
	})
	deleted, err := env.facade.CancelOrder(ctx, buyer, "order-2")
	if err != nil {
		t.Fatalf("cancel returned error: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected one deleted order, got %d", deleted)
	}
}

func TestFacadePayments(t *testing.T) {
	env := newFacade()
	ctx := context.Background()
	buyer := activeBuyer()

	env.orders.Seed(&model.Order{
		ID:             "order-1",
		Email:          buyer.Email,
		Status:         model.OrderStatusPending,
		PaymentStatus:  model.PaymentStatusUnpaid,
		PaymentOptions: []string{model.PaymentMethodOnline},
		TotalPrice:     800,
	})

	url, err := env.facade.InitiateCheckout(ctx, buyer, "order-1")
	if err != nil {
		t.Fatalf("initiate checkout returned error: %v", err)
	}
	if url == "" {
		t.Fatal("expected checkout url")
	}

	receipt, err := env.facade.ConfirmPayment(ctx, "sess-1")
	if err != nil {
		t.Fatalf("confirm payment returned error: %v", err)
	}
	if receipt.TransactionID == "" {
		t.Fatalf("expected transaction id, got %+v", receipt)
	}

	batch, err := env.facade.OrdersForReconciliation(ctx, 10)
	if err != nil {
		t.Fatalf("unreconciled orders returned error: %v", err)
	}
	if len(batch) != 0 {
		t.Fatalf("expected settled order to drop out of batch, got %v", batch)
	}

	if err := env.facade.ReconcileSession(ctx, "sess-1"); err != nil {
		t.Fatalf("reconcile returned error: %v", err)
	}
}

func TestFacadeProducts(t *testing.T) {
	env := newFacade()
	ctx := context.Background()
	manager := lifecycle.Actor{Email: "manager@example.com", Role: model.RoleManager, Status: model.UserStatusActive}

	product, err := env.facade.CreateProduct(ctx, manager, usecase.ProductDraft{
		ProductName:    "Denim Jacket",
		Price:          40,
		MinimumOrder:   10,
		PaymentOptions: []string{model.PaymentMethodOnline},
	})
	if err != nil {
		t.Fatalf("create product returned error: %v", err)
	}

	if _, err := env.facade.Product(ctx, product.ID); err != nil {
		t.Fatalf("get product returned error: %v", err)
	}

	listed, err := env.facade.Products(ctx, repository.ProductFilter{})
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected one product, got %v err=%v", listed, err)
	}

	product.Price = 45
	if err := env.facade.UpdateProduct(ctx, manager, product); err != nil {
		t.Fatalf("update product returned error: %v", err)
	}

	if err := env.facade.DeleteProduct(ctx, manager, product.ID); err != nil {
		t.Fatalf("delete product returned error: %v", err)
	}
}

func TestFacadeUsers(t *testing.T) {
	env := newFacade()
	ctx := context.Background()
	admin := activeAdmin()

	if _, err := env.users.Create(ctx, &model.User{Email: "buyer@example.com", Role: model.RoleBuyer, Status: model.UserStatusActive}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	listed, err := env.facade.Users(ctx, admin)
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected one user, got %v err=%v", listed, err)
	}

	if err := env.facade.SetUserRoleStatus(ctx, admin, "buyer@example.com", model.RoleManager, model.UserStatusActive); err != nil {
		t.Fatalf("set role returned error: %v", err)
	}

	if err := env.facade.DeleteUser(ctx, admin, "buyer@example.com"); err != nil {
		t.Fatalf("delete user returned error: %v", err)
	}

	if _, err := env.facade.Users(ctx, activeBuyer()); !errors.Is(err, domainErrors.ErrRoleNotAllowed) {
		t.Fatalf("expected role gate, got %v", err)
	}
}
