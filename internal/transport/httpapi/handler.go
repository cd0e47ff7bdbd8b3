package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	mnerr "github.com/mnemo-systems/mnemo/internal/errors"
)

// jsonHandler adapts one of tools.Surface's typed methods into an
// http.HandlerFunc: decode the JSON body into In, call fn, encode the
// result (or error) per spec section 6's `{ result | error }` envelope.
func jsonHandler[In any, Out any](fn func(ctx context.Context, in In) (*Out, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in In
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				writeError(w, mnerr.Invalid(mnerr.ErrCodeInvalidRequest, "malformed JSON body"))
				return
			}
		}

		out, err := fn(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"result": out})
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := mnerr.ErrCodeInternal
	message := err.Error()

	if me, ok := err.(*mnerr.MemError); ok {
		code = me.Code
		message = me.Message
		switch me.Category {
		case mnerr.CategoryInvalid:
			status = http.StatusBadRequest
		case mnerr.CategoryNotFound:
			status = http.StatusNotFound
		case mnerr.CategoryConflict:
			status = http.StatusConflict
		case mnerr.CategoryBusy:
			status = http.StatusTooManyRequests
		case mnerr.CategoryUnavailable:
			status = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, status, map[string]any{"error": map[string]string{"code": code, "message": message}})
}
