// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/servicehub/config"
	"github.com/shashiranjanraj/servicehub/pkg/validate"
)

// ErrMalformed wraps every decode failure (bad JSON, oversized body).
var ErrMalformed = errors.New("malformed request body")

// maxBodyBytes returns the configured request body size limit (default 64 KB).
func maxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "65536"), 10, 64)
	if err != nil || n <= 0 {
		return 64 << 10
	}
	return n
}

// Normalizer is implemented by inputs that clean themselves up (trim,
// lower-case) before validation.
type Normalizer interface {
	Normalize()
}

// JSON decodes r.Body into dest, normalizes it when dest is a Normalizer,
// and validates it. Returns (errs, nil) on validation failures and (nil, err)
// when the body cannot be decoded.
func JSON(w http.ResponseWriter, r *http.Request, dest interface{}) (validate.Errors, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes())

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w: request body too large (max %d bytes)", ErrMalformed, maxErr.Limit)
		}
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrMalformed, err)
	}

	if n, ok := dest.(Normalizer); ok {
		n.Normalize()
	}

	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}
