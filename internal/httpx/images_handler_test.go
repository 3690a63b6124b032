package httpx

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-shop-backend.git/internal/media"
)

type stubMedia struct {
	lastPublicID string
	lastOpts     media.TransformOptions
}

func (s *stubMedia) Upload(ctx context.Context, data []byte, filename string) (*media.UploadResult, error) {
	return nil, nil
}

func (s *stubMedia) Delete(ctx context.Context, imageURL string) error { return nil }

func (s *stubMedia) TransformURL(publicID string, opts media.TransformOptions) (string, error) {
	s.lastPublicID = publicID
	s.lastOpts = opts
	return "https://res.cloudinary.com/demo/image/upload/" + opts.Transformation() + "/" + publicID, nil
}

func imagesRouter(stub *stubMedia) *chi.Mux {
	r := chi.NewRouter()
	(&ImagesHandler{Media: stub, R: &Responder{Log: slog.Default()}}).Register(r)
	return r
}

func TestImagesRedirect(t *testing.T) {
	stub := &stubMedia{}
	r := imagesRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/images/products%2Fabc123?width=200&crop=fill", nil)
	r.ServeHTTP(rec, req)

	if rec.Code != 302 {
		t.Fatalf("code = %d, want 302", rec.Code)
	}
	if stub.lastPublicID != "products/abc123" {
		t.Fatalf("public id = %q", stub.lastPublicID)
	}
	if stub.lastOpts.Width != 200 || stub.lastOpts.Crop != "fill" {
		t.Fatalf("opts = %+v", stub.lastOpts)
	}
	if loc := rec.Header().Get("Location"); loc == "" {
		t.Fatalf("missing Location header")
	}
}

func TestImagesRedirect_UnknownQueryKeysIgnored(t *testing.T) {
	stub := &stubMedia{}
	r := imagesRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/images/abc?width=100&evil=rm-rf&angle=13", nil)
	r.ServeHTTP(rec, req)

	if rec.Code != 302 {
		t.Fatalf("code = %d, want 302", rec.Code)
	}
	// only the enumerated options reach the media store
	if stub.lastOpts != (media.TransformOptions{Width: 100}) {
		t.Fatalf("opts = %+v", stub.lastOpts)
	}
}

func TestImagesRedirect_BadDimensionsFallBackToDefaults(t *testing.T) {
	stub := &stubMedia{}
	r := imagesRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/images/abc?width=banana&height=-4", nil)
	r.ServeHTTP(rec, req)

	if rec.Code != 302 {
		t.Fatalf("code = %d, want 302", rec.Code)
	}
	if stub.lastOpts.Width != 0 || stub.lastOpts.Height != 0 {
		t.Fatalf("opts = %+v", stub.lastOpts)
	}
}
