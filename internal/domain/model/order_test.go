package model

import "testing"

func TestPaymentStatusPaid(t *testing.T) {
	cases := []struct {
		status PaymentStatus
		want   bool
	}{
		{PaymentStatusPaid, true},
		{PaymentStatus("Paid"), true},
		{PaymentStatus("PAID"), true},
		{PaymentStatusUnpaid, false},
		{PaymentStatusCODPending, false},
		{PaymentStatus(""), false},
	}
	for _, tc := range cases {
		if got := tc.status.Paid(); got != tc.want {
			t.Fatalf("Paid(%q) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestOffersPaymentOption(t *testing.T) {
	order := &Order{PaymentOptions: []string{"cash on delivery", "Online Payment"}}
	if !order.OffersPaymentOption(PaymentMethodCashOnDelivery) {
		t.Fatalf("expected case-insensitive match")
	}
	if order.OffersPaymentOption("PayFast") {
		t.Fatalf("unexpected match for option not offered")
	}
}

func TestRequiresOnlinePayment(t *testing.T) {
	online := &Order{PaymentOptions: []string{"Online Payment"}}
	if !online.RequiresOnlinePayment() {
		t.Fatalf("expected online payment requirement")
	}
	cash := &Order{PaymentOptions: []string{"Cash on Delivery"}}
	if cash.RequiresOnlinePayment() {
		t.Fatalf("cash-only order should not require online payment")
	}
}
