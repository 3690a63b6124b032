package httpx

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-shop-backend.git/internal/apperr"
	"github.com/ariefcatur/go-shop-backend.git/internal/catalog"
)

const maxUploadBytes = 10 << 20

type ProductsHandler struct {
	Svc *catalog.Service
	R   *Responder
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Get("/products", h.list)
	r.Get("/products/{id}", h.get)
	r.Post("/products", h.create)
	r.Put("/products/{id}", h.update)
	r.Delete("/products/{id}", h.delete)
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ps, err := h.Svc.List(ctx, r.URL.Query().Get("status"), r.URL.Query().Get("search"))
	if err != nil {
		h.R.Error(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *ProductsHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.R.Error(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Svc.Get(ctx, id)
	if err != nil {
		h.R.Error(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	in, err := parseProductForm(r)
	if err != nil {
		h.R.Error(w, err)
		return
	}

	// upload + insert; media round trips get the longer budget
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	p, err := h.Svc.Create(ctx, *in)
	if err != nil {
		h.R.Error(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.R.Error(w, err)
		return
	}
	in, err := parseProductForm(r)
	if err != nil {
		h.R.Error(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	p, err := h.Svc.Update(ctx, id, *in)
	if err != nil {
		h.R.Error(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.R.Error(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if err := h.Svc.Delete(ctx, id); err != nil {
		h.R.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &apperr.ValidationError{Msg: "invalid id"}
	}
	return id, nil
}

// parseProductForm reads the multipart body into a ProductInput. Required
// fields missing from the form abort before any service work.
func parseProductForm(r *http.Request) (*catalog.ProductInput, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, &apperr.ValidationError{Msg: "no data provided"}
	}

	name := r.FormValue("name")
	priceRaw := r.FormValue("price")
	stockRaw := r.FormValue("stock")
	if name == "" || priceRaw == "" || stockRaw == "" {
		return nil, &apperr.ValidationError{Msg: "missing required fields: name, price, stock"}
	}

	price, err := decimal.NewFromString(priceRaw)
	if err != nil {
		return nil, &apperr.ValidationError{Msg: "price must be a decimal number"}
	}
	stock, err := strconv.Atoi(stockRaw)
	if err != nil {
		return nil, &apperr.ValidationError{Msg: "stock must be an integer"}
	}

	in := &catalog.ProductInput{
		Name:        name,
		Description: r.FormValue("description"),
		Price:       price,
		Stock:       stock,
		Status:      r.FormValue("status"),
	}

	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		// read one byte past the limit to tell "at the limit" from "over it"
		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
		if err != nil {
			return nil, &apperr.ValidationError{Msg: "unreadable image upload"}
		}
		if len(data) > maxUploadBytes {
			return nil, &apperr.ValidationError{Msg: "image exceeds the 10 MiB upload limit"}
		}
		in.Image = data
		in.ImageFilename = header.Filename
	} else if err != http.ErrMissingFile {
		return nil, &apperr.ValidationError{Msg: "unreadable image upload"}
	}

	return in, nil
}
