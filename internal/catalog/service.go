package catalog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-shop-backend.git/internal/apperr"
	"github.com/ariefcatur/go-shop-backend.git/internal/media"
)

// Service owns catalog semantics: input checks, status normalization, and
// the ordering of media uploads/deletes around row mutations.
type Service struct {
	Store ProductStore
	Media media.Store
	Log   *slog.Logger
}

// ProductInput carries the parsed multipart fields of a create/update
// request. Image is nil when no file was attached.
type ProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	Stock         int
	Status        string
	Image         []byte
	ImageFilename string
}

func (in *ProductInput) status() (Status, error) {
	if in.Status == "" {
		return StatusActive, nil
	}
	st, ok := ParseStatus(in.Status)
	if !ok {
		return "", &apperr.ValidationError{Msg: "unknown status: " + in.Status}
	}
	return st, nil
}

func (in *ProductInput) check() error {
	if in.Name == "" {
		return &apperr.ValidationError{Msg: "missing required fields: name, price, stock"}
	}
	if in.Price.IsNegative() {
		return &apperr.ValidationError{Msg: "price must not be negative"}
	}
	if in.Stock < 0 {
		return &apperr.ValidationError{Msg: "stock must not be negative"}
	}
	return nil
}

// List applies the status/search filter. statusParam "" or "all"
// (case-insensitive) means no status filtering.
func (s *Service) List(ctx context.Context, statusParam, search string) ([]Product, error) {
	var f ListFilter
	if statusParam != "" && !strings.EqualFold(statusParam, "all") {
		st, ok := ParseStatus(statusParam)
		if !ok {
			return nil, &apperr.ValidationError{Msg: "unknown status: " + statusParam}
		}
		f.Status = st
	}
	f.Search = search
	return s.Store.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.Store.GetByID(ctx, id)
}

// Create uploads the image before inserting the row, so a failed upload
// leaves no product behind referencing a never-stored image.
func (s *Service) Create(ctx context.Context, in ProductInput) (*Product, error) {
	if err := in.check(); err != nil {
		return nil, err
	}
	st, err := in.status()
	if err != nil {
		return nil, err
	}

	imageURL := ""
	if in.Image != nil {
		res, err := s.Media.Upload(ctx, in.Image, in.ImageFilename)
		if err != nil {
			return nil, err
		}
		imageURL = res.URL
	}

	p := &Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Status:      st,
		ImageURL:    imageURL,
	}
	if err := s.Store.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update uploads a replacement image first, updates the row, and only then
// removes the previous image. Old-image deletion is best effort.
func (s *Service) Update(ctx context.Context, id int64, in ProductInput) (*Product, error) {
	if err := in.check(); err != nil {
		return nil, err
	}
	st, err := in.status()
	if err != nil {
		return nil, err
	}

	existing, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	imageURL := existing.ImageURL
	oldImageURL := ""
	if in.Image != nil {
		res, err := s.Media.Upload(ctx, in.Image, in.ImageFilename)
		if err != nil {
			return nil, err
		}
		oldImageURL = existing.ImageURL
		imageURL = res.URL
	}

	p := &Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Status:      st,
		ImageURL:    imageURL,
	}
	if err := s.Store.Update(ctx, p); err != nil {
		return nil, err
	}

	if oldImageURL != "" {
		if err := s.Media.Delete(ctx, oldImageURL); err != nil {
			s.Log.Warn("old image delete failed", "product_id", id, "url", oldImageURL, "err", err)
		}
	}
	return p, nil
}

// Delete removes the row (guarded against order references inside the store
// transaction) and then best-effort deletes the image. The row is the source
// of truth; a leaked asset is only logged.
func (s *Service) Delete(ctx context.Context, id int64) error {
	imageURL, err := s.Store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if imageURL != "" {
		if err := s.Media.Delete(ctx, imageURL); err != nil {
			s.Log.Warn("image delete failed", "product_id", id, "url", imageURL, "err", err)
		}
	}
	return nil
}
