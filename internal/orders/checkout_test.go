package orders

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-shop-backend.git/internal/apperr"
)

// The service under test has no repo or producer: a validation failure must
// return before either is touched.
func validationOnlyService() *Service {
	return NewService(nil, nil, nil, "test", slog.Default())
}

func TestTouchedProducts_DedupesKeepingOrder(t *testing.T) {
	items := []CheckoutItem{
		{ProductID: 3, Quantity: 1},
		{ProductID: 1, Quantity: 1},
		{ProductID: 3, Quantity: 2},
	}
	got := touchedProducts(items)
	if len(got) != 2 || got[0] != 3 || got[1] != 1 {
		t.Fatalf("touchedProducts = %v", got)
	}
}

func TestCheckout_EmptyItems(t *testing.T) {
	s := validationOnlyService()
	req := CheckoutRequest{CustomerName: "Budi", CustomerEmail: "budi@example.com"}

	_, err := s.Checkout(context.Background(), req, "")
	var v *apperr.ValidationError
	if !errors.As(err, &v) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCheckout_MissingCustomerFields(t *testing.T) {
	s := validationOnlyService()
	req := CheckoutRequest{
		Items: []CheckoutItem{{ProductID: 1, Quantity: 1, Price: decimal.New(100, -2)}},
	}

	_, err := s.Checkout(context.Background(), req, "")
	var v *apperr.ValidationError
	if !errors.As(err, &v) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCheckout_InvalidItemFields(t *testing.T) {
	s := validationOnlyService()

	for _, it := range []CheckoutItem{
		{ProductID: 0, Quantity: 1},
		{ProductID: 1, Quantity: 0},
		{ProductID: 1, Quantity: -2},
	} {
		req := CheckoutRequest{
			CustomerName:  "Budi",
			CustomerEmail: "budi@example.com",
			Items:         []CheckoutItem{it},
		}
		_, err := s.Checkout(context.Background(), req, "")
		var v *apperr.ValidationError
		if !errors.As(err, &v) {
			t.Fatalf("item %+v: expected ValidationError, got %v", it, err)
		}
	}
}

func TestCheckout_ValidRequestPassesValidation(t *testing.T) {
	s := validationOnlyService()
	req := CheckoutRequest{
		CustomerName:  "Budi",
		CustomerEmail: "budi@example.com",
		Items:         []CheckoutItem{{ProductID: 1, Quantity: 2}},
	}
	if err := s.checkRequest(req); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}
