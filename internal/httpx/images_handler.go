package httpx

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-shop-backend.git/internal/apperr"
	"github.com/ariefcatur/go-shop-backend.git/internal/media"
)

type ImagesHandler struct {
	Media media.Store
	R     *Responder
}

func (h *ImagesHandler) Register(r *chi.Mux) {
	r.Get("/images/{publicID}", h.redirect)
}

// redirect issues a 302 to the transformed delivery URL. Only the recognized
// transformation keys are read; anything else in the query is ignored.
func (h *ImagesHandler) redirect(w http.ResponseWriter, r *http.Request) {
	publicID, err := url.PathUnescape(chi.URLParam(r, "publicID"))
	if err != nil || publicID == "" {
		h.R.Error(w, &apperr.ValidationError{Msg: "public id is required"})
		return
	}

	q := r.URL.Query()
	opts := media.TransformOptions{
		Width:   atoiOrZero(q.Get("width")),
		Height:  atoiOrZero(q.Get("height")),
		Crop:    q.Get("crop"),
		Quality: q.Get("quality"),
		Format:  q.Get("format"),
	}

	target, err := h.Media.TransformURL(publicID, opts)
	if err != nil {
		h.R.Error(w, err)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
