package orders

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ariefcatur/go-shop-backend.git/internal/apperr"
	kafkax "github.com/ariefcatur/go-shop-backend.git/internal/kafka"
)

// ProductCacheInvalidator drops cached product reads after a stock change.
// Implemented by catalog.CachedStore; nil disables invalidation.
type ProductCacheInvalidator interface {
	InvalidateProducts(ctx context.Context, ids []int64)
}

// Service fronts the transaction engine: request validation before any store
// access, then the transaction, then the post-commit side effects.
type Service struct {
	Repo        *Repo
	Producer    *kafkax.Producer
	Cache       ProductCacheInvalidator
	ServiceName string
	Log         *slog.Logger

	validate *validator.Validate
}

func NewService(repo *Repo, producer *kafkax.Producer, cache ProductCacheInvalidator, serviceName string, log *slog.Logger) *Service {
	return &Service{
		Repo:        repo,
		Producer:    producer,
		Cache:       cache,
		ServiceName: serviceName,
		Log:         log,
		validate:    validator.New(),
	}
}

// Checkout validates and commits a checkout request. On success exactly one
// order row, its items, and the stock decrements exist; on any error nothing
// does.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest, traceID string) (*Order, error) {
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	order, err := s.Repo.CreateOrderTx(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		s.Cache.InvalidateProducts(ctx, touchedProducts(req.Items))
	}
	s.publishCreated(order, req, traceID)
	return order, nil
}

// touchedProducts returns the distinct product ids of a request, in caller
// order.
func touchedProducts(items []CheckoutItem) []int64 {
	seen := make(map[int64]bool, len(items))
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}
	return ids
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*OrderWithItems, error) {
	return s.Repo.GetOrderWithItems(ctx, id)
}

func (s *Service) checkRequest(req CheckoutRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &apperr.ValidationError{Msg: "invalid request"}
	}
	for _, fe := range verrs {
		if strings.Contains(fe.Namespace(), "Items[") {
			return &apperr.ValidationError{
				Msg: "each item must have a valid product_id and quantity greater than 0",
			}
		}
	}
	return &apperr.ValidationError{
		Msg: "missing required fields: customer_name, customer_email, and at least one item is required",
	}
}

// publishCreated emits order.created after commit. Fire and forget: the
// order is already durable, a lost event is only logged at the producer.
func (s *Service) publishCreated(order *Order, req CheckoutRequest, traceID string) {
	items := make([]ItemSnapshot, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ItemSnapshot{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
			Subtotal:  it.Subtotal,
		})
	}

	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		TraceID:       traceID,
		CorrelationID: string(PartitionKey(order.ID)),
	}
	ev.Payload = kafkax.MustMarshal(OrderCreatedPayload{
		OrderID:       order.ID,
		CustomerEmail: order.CustomerEmail,
		Items:         items,
		TotalAmount:   order.TotalAmount,
	})

	s.Producer.Publish(PartitionKey(order.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventOrderCreated)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
