package usecase_test

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/garmentix/marketplace/internal/domain/errors"
	"github.com/garmentix/marketplace/internal/domain/lifecycle"
	"github.com/garmentix/marketplace/internal/domain/model"
	"github.com/garmentix/marketplace/internal/domain/repository"
	testhelpers "github.com/garmentix/marketplace/internal/test"
	"github.com/garmentix/marketplace/internal/usecase"
)

func activeBuyer(email string) lifecycle.Actor {
	return lifecycle.Actor{Email: email, Role: model.RoleBuyer, Status: model.UserStatusActive}
}

func activeManager() lifecycle.Actor {
	return lifecycle.Actor{Email: "manager@example.com", Role: model.RoleManager, Status: model.UserStatusActive}
}

func seedProduct(products *testhelpers.ProductRepositoryStub) *model.Product {
	product, _ := products.Create(context.Background(), &model.Product{
		ManagerEmail:      "manager@example.com",
		ProductName:       "Denim Jacket",
		Image:             "https://images.example.com/jacket.png",
		Category:          "Jackets",
		Price:             40,
		AvailableQuantity: 100,
		MinimumOrder:      10,
		PaymentOptions:    []string{"Cash on Delivery", "Online Payment"},
	})
	return product
}

func newOrderFixture() (*usecase.OrderUseCase, *testhelpers.OrderRepositoryStub, *testhelpers.TrackingRepositoryStub, *model.Product) {
	orders := testhelpers.NewOrderRepositoryStub()
	products := testhelpers.NewProductRepositoryStub()
	tracking := testhelpers.NewTrackingRepositoryStub()
	product := seedProduct(products)
	return usecase.NewOrderUseCase(orders, products, tracking), orders, tracking, product
}

func TestPlaceOrderSnapshotsProduct(t *testing.T) {
	uc, _, _, product := newOrderFixture()

	order, err := uc.Place(context.Background(), activeBuyer("buyer@example.com"), usecase.OrderDraft{
		ProductID:     product.ID,
		OrderQuantity: 20,
	})
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if order.Status != model.OrderStatusPending || order.PaymentStatus != model.PaymentStatusUnpaid {
		t.Fatalf("new order must be pending/unpaid, got %s/%s", order.Status, order.PaymentStatus)
	}
	if order.TotalPrice != 800 {
		t.Fatalf("total must be quantity times unit price, got %v", order.TotalPrice)
	}
	if order.ProductName != product.ProductName || order.PricePerUnit != product.Price {
		t.Fatalf("product snapshot missing: %+v", order)
	}
	if len(order.PaymentOptions) != 2 {
		t.Fatalf("payment options must be snapshotted, got %v", order.PaymentOptions)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	uc, _, _, product := newOrderFixture()
	buyer := activeBuyer("buyer@example.com")

	if _, err := uc.Place(context.Background(), activeManager(), usecase.OrderDraft{ProductID: product.ID, OrderQuantity: 20}); !errors.Is(err, domainErrors.ErrRoleNotAllowed) {
		t.Fatalf("managers cannot place orders, got %v", err)
	}

	suspended := buyer
	suspended.Status = model.UserStatusSuspended
	if _, err := uc.Place(context.Background(), suspended, usecase.OrderDraft{ProductID: product.ID, OrderQuantity: 20}); !errors.Is(err, domainErrors.ErrAccountSuspended) {
		t.Fatalf("expected suspended error, got %v", err)
	}

	if _, err := uc.Place(context.Background(), buyer, usecase.OrderDraft{ProductID: product.ID, OrderQuantity: 5}); !errors.Is(err, domainErrors.ErrQuantityOutOfRange) {
		t.Fatalf("below minimum order, got %v", err)
	}
	if _, err := uc.Place(context.Background(), buyer, usecase.OrderDraft{ProductID: product.ID, OrderQuantity: 500}); !errors.Is(err, domainErrors.ErrQuantityOutOfRange) {
		t.Fatalf("above available quantity, got %v", err)
	}

	if _, err := uc.Place(context.Background(), buyer, usecase.OrderDraft{ProductID: product.ID, OrderQuantity: 20, TotalPrice: 123}); !errors.Is(err, domainErrors.ErrPriceMismatch) {
		t.Fatalf("client total must match server total, got %v", err)
	}

	if _, err := uc.Place(context.Background(), buyer, usecase.OrderDraft{ProductID: "missing", OrderQuantity: 20}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListScopesByRole(t *testing.T) {
	orders := testhelpers.NewOrderRepositoryStub()
	products := testhelpers.NewProductRepositoryStub()
	tracking := testhelpers.NewTrackingRepositoryStub()
	uc := usecase.NewOrderUseCase(orders, products, tracking)

	var captured repository.OrderFilter
	orders.ListFn = func(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
		captured = filter
		return nil, nil
	}

	// Buyers are always pinned to their own email regardless of the request.
	if _, err := uc.List(context.Background(), activeBuyer("buyer@example.com"), repository.OrderFilter{Email: "other@example.com", ManagerEmail: "x"}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if captured.Email != "buyer@example.com" || captured.ManagerEmail != "" {
		t.Fatalf("buyer scope not applied: %+v", captured)
	}

	if _, err := uc.List(context.Background(), activeManager(), repository.OrderFilter{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if captured.ManagerEmail != "manager@example.com" {
		t.Fatalf("manager scope not applied: %+v", captured)
	}

	admin := lifecycle.Actor{Email: "admin@example.com", Role: model.RoleAdmin, Status: model.UserStatusActive}
	if _, err := uc.List(context.Background(), admin, repository.OrderFilter{Email: "buyer@example.com"}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if captured.Email != "buyer@example.com" || captured.ManagerEmail != "" {
		t.Fatalf("admin filter must pass through: %+v", captured)
	}
}

func TestApproveStampsTimestamp(t *testing.T) {
	uc, orders, _, product := newOrderFixture()

	placed, err := uc.Place(context.Background(), activeBuyer("buyer@example.com"), usecase.OrderDraft{ProductID: product.ID, OrderQuantity: 20})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	approved, err := uc.Approve(context.Background(), activeManager(), placed.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != model.OrderStatusApproved {
		t.Fatalf("expected Approved, got %q", approved.Status)
	}
	if approved.ApprovedAt == nil {
		t.Fatalf("approvedAt must be stamped")
	}

	if len(orders.StatusCalls) != 1 || orders.StatusCalls[0].Status != model.OrderStatusApproved {
		t.Fatalf("unexpected status calls %+v", orders.StatusCalls)
	}

	// A second approval must fail: Approved is not a valid source for approve.
	if _, err := uc.Approve(context.Background(), activeManager(), placed.ID); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestCancelDeletesPendingUnpaid(t *testing.T) {
	uc, orders, _, product := newOrderFixture()
	buyer := activeBuyer("buyer@example.com")

	placed, err := uc.Place(context.Background(), buyer, usecase.OrderDraft{ProductID: product.ID, OrderQuantity: 20})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	deleted, err := uc.Cancel(context.Background(), buyer, placed.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected one deleted row, got %d", deleted)
	}
	if _, ok := orders.Orders[placed.ID]; ok {
		t.Fatalf("order should be gone")
	}

	if _, err := uc.Cancel(context.Background(), buyer, placed.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for second cancel, got %v", err)
	}
}

func TestSelectCashOnDelivery(t *testing.T) {
	uc, orders, _, product := newOrderFixture()
	buyer := activeBuyer("buyer@example.com")

	placed, err := uc.Place(context.Background(), buyer, usecase.OrderDraft{ProductID: product.ID, OrderQuantity: 20})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	updated, err := uc.SelectCashOnDelivery(context.Background(), buyer, placed.ID)
	if err != nil {
		t.Fatalf("select cod: %v", err)
	}
	if updated.PaymentStatus != model.PaymentStatusCODPending || updated.PaymentMethod != model.PaymentMethodCashOnDelivery {
		t.Fatalf("unexpected payment fields %s/%s", updated.PaymentStatus, updated.PaymentMethod)
	}
	if updated.Status != model.OrderStatusPending {
		t.Fatalf("payment selection must not change status, got %q", updated.Status)
	}
	if len(orders.PaymentCalls) != 1 {
		t.Fatalf("expected one payment update, got %d", len(orders.PaymentCalls))
	}
}

func TestAppendTrackingRequiresApprovedOrder(t *testing.T) {
	uc, _, tracking, product := newOrderFixture()
	buyer := activeBuyer("buyer@example.com")

	placed, err := uc.Place(context.Background(), buyer, usecase.OrderDraft{ProductID: product.ID, OrderQuantity: 20})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if _, err := uc.AppendTracking(context.Background(), activeManager(), placed.ID, usecase.TrackingDraft{Status: "Cutting Completed"}); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("tracking on pending order must fail, got %v", err)
	}

	if _, err := uc.Approve(context.Background(), activeManager(), placed.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	event, err := uc.AppendTracking(context.Background(), activeManager(), placed.ID, usecase.TrackingDraft{Status: "Cutting Completed", Location: "Dhaka"})
	if err != nil {
		t.Fatalf("append tracking: %v", err)
	}
	if event.UpdatedBy != "manager@example.com" {
		t.Fatalf("author must be stamped from actor, got %q", event.UpdatedBy)
	}
	if event.Timestamp.IsZero() {
		t.Fatalf("timestamp must be stamped server-side")
	}

	if _, err := uc.AppendTracking(context.Background(), activeManager(), placed.ID, usecase.TrackingDraft{}); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("empty status must be rejected, got %v", err)
	}

	events, err := uc.Tracking(context.Background(), placed.ID)
	if err != nil {
		t.Fatalf("tracking: %v", err)
	}
	if len(events) != 1 || events[0].Status != "Cutting Completed" {
		t.Fatalf("unexpected timeline %+v", events)
	}
	_ = tracking
}

func TestGetEnforcesOwnership(t *testing.T) {
	uc, _, _, product := newOrderFixture()
	owner := activeBuyer("buyer@example.com")

	placed, err := uc.Place(context.Background(), owner, usecase.OrderDraft{ProductID: product.ID, OrderQuantity: 20})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if _, err := uc.Get(context.Background(), activeBuyer("other@example.com"), placed.ID); !errors.Is(err, domainErrors.ErrNotOrderOwner) {
		t.Fatalf("expected owner error, got %v", err)
	}
	if _, err := uc.Get(context.Background(), activeManager(), placed.ID); err != nil {
		t.Fatalf("managers may read any order, got %v", err)
	}
}
