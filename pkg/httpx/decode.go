package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/campus/pkg/errx"
	"github.com/aussiebroadwan/campus/pkg/validx"
)

// MaxBodyBytes caps request bodies read by DecodeJSON.
const MaxBodyBytes = 1 << 20

// DecodeJSON reads a JSON body into dst and runs struct validation on it.
// Unknown fields are rejected. Syntax problems come back as errx.ErrInvalidRequest, rule violations as
// *errx.ValidationError.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return errx.InvalidRequest("request body is empty")
		case errors.As(err, &maxErr):
			return errx.InvalidRequest("request body too large")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			return errx.InvalidRequest("unknown field %s", strings.TrimPrefix(err.Error(), "json: unknown field "))
		default:
			return errx.InvalidRequest("malformed JSON body")
		}
	}

	if dec.More() {
		return errx.InvalidRequest("request body must hold a single JSON object")
	}

	return validx.Struct(dst)
}
