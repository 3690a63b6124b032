package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ariefcatur/go-shop-backend.git/internal/apperr"
	"github.com/ariefcatur/go-shop-backend.git/internal/orders"
)

// traceID prefers the id the RequestID middleware put in the context; the
// inbound header only matters when the request bypassed the middleware.
func traceID(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return r.Header.Get("X-Request-Id")
}

type OrdersHandler struct {
	Svc *orders.Service
	R   *Responder
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/orders", h.checkout)
	r.Get("/orders/{id}", h.get)
}

func (h *OrdersHandler) checkout(w http.ResponseWriter, r *http.Request) {
	var req orders.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.R.Error(w, &apperr.ValidationError{Msg: "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := h.Svc.Checkout(ctx, req, traceID(r))
	if err != nil {
		h.R.Error(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *OrdersHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.R.Error(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	order, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		h.R.Error(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
