package httpx

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-shop-backend.git/internal/apperr"
)

func buildForm(t *testing.T, fields map[string]string, filename string, file []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if file != nil {
		fw, err := w.CreateFormFile("image", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(file); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

var productFields = map[string]string{"name": "Widget", "price": "10.00", "stock": "5"}

func TestParseProductForm_Fields(t *testing.T) {
	body, ct := buildForm(t, map[string]string{
		"name": "Widget", "description": "a widget", "price": "10.00",
		"stock": "5", "status": "inactive",
	}, "w.png", []byte{1, 2, 3, 4})
	req := httptest.NewRequest("POST", "/products", body)
	req.Header.Set("Content-Type", ct)

	in, err := parseProductForm(req)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if in.Name != "Widget" || in.Description != "a widget" || in.Stock != 5 {
		t.Fatalf("fields = %+v", in)
	}
	if !in.Price.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("price = %s", in.Price)
	}
	if len(in.Image) != 4 || in.ImageFilename != "w.png" {
		t.Fatalf("image = %d bytes, filename %q", len(in.Image), in.ImageFilename)
	}
}

func TestParseProductForm_MissingRequired(t *testing.T) {
	for _, fields := range []map[string]string{
		{"price": "10.00", "stock": "5"},
		{"name": "W", "stock": "5"},
		{"name": "W", "price": "10.00"},
	} {
		body, ct := buildForm(t, fields, "", nil)
		req := httptest.NewRequest("POST", "/products", body)
		req.Header.Set("Content-Type", ct)

		_, err := parseProductForm(req)
		var v *apperr.ValidationError
		if !errors.As(err, &v) {
			t.Fatalf("fields %v: expected ValidationError, got %v", fields, err)
		}
	}
}

func TestParseProductForm_ImageAtLimitKeptWhole(t *testing.T) {
	img := bytes.Repeat([]byte{0xAB}, maxUploadBytes)
	body, ct := buildForm(t, productFields, "big.png", img)
	req := httptest.NewRequest("POST", "/products", body)
	req.Header.Set("Content-Type", ct)

	in, err := parseProductForm(req)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(in.Image) != maxUploadBytes {
		t.Fatalf("image truncated: kept %d of %d bytes", len(in.Image), maxUploadBytes)
	}
}

func TestParseProductForm_OversizedImageRejected(t *testing.T) {
	img := bytes.Repeat([]byte{0xAB}, maxUploadBytes+1024)
	body, ct := buildForm(t, productFields, "big.png", img)
	req := httptest.NewRequest("POST", "/products", body)
	req.Header.Set("Content-Type", ct)

	_, err := parseProductForm(req)
	var v *apperr.ValidationError
	if !errors.As(err, &v) {
		t.Fatalf("oversized image must be rejected, got %v", err)
	}
}
