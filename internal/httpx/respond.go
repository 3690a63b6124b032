package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ariefcatur/go-shop-backend.git/internal/apperr"
)

// Responder translates the closed error taxonomy into transport responses.
// Dev controls whether internal error detail is echoed to clients.
type Responder struct {
	Dev bool
	Log *slog.Logger
}

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Error matches every taxonomy variant; anything outside it is a 500 with a
// generic message.
func (rp *Responder) Error(w http.ResponseWriter, err error) {
	var (
		validation   *apperr.ValidationError
		notFound     *apperr.NotFoundError
		unavailable  *apperr.UnavailableError
		insufficient *apperr.InsufficientStockError
		refConflict  *apperr.ReferentialConflictError
		conflict     *apperr.ConflictError
		reference    *apperr.ReferenceError
		storage      *apperr.StorageError
	)

	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: validation.Msg})
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: notFound.Error()})
	case errors.As(err, &unavailable):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: unavailable.Error()})
	case errors.As(err, &insufficient):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: insufficient.Error()})
	case errors.As(err, &refConflict):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: refConflict.Error()})
	case errors.As(err, &conflict):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: conflict.Msg})
	case errors.As(err, &reference):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: reference.Msg})
	case errors.As(err, &storage):
		rp.Log.Error("storage failure", "err", storage.Err)
		writeJSON(w, http.StatusInternalServerError, rp.internal(storage.Err))
	default:
		rp.Log.Error("unhandled failure", "err", err)
		writeJSON(w, http.StatusInternalServerError, rp.internal(err))
	}
}

func (rp *Responder) internal(err error) errorBody {
	body := errorBody{Error: "internal server error"}
	if rp.Dev {
		body.Detail = err.Error()
	}
	return body
}
