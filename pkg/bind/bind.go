// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/thedosaspot/dosaspot/config"
	"github.com/thedosaspot/dosaspot/pkg/validate"
)

const defaultMaxBody = 1 << 20 // 1 MB; no JSON payload in this API comes close

// MaxBodyBytes returns the configured request body size limit.
func MaxBodyBytes() int64 {
	n := int64(config.Int("MAX_BODY_BYTES", defaultMaxBody))
	if n <= 0 {
		return defaultMaxBody
	}
	return n
}

// JSON decodes r.Body as JSON into dest and runs validation.
// Returns (errs, nil) when there are validation failures and (nil, err) when
// the body is empty, malformed, or too large.
func JSON(w http.ResponseWriter, r *http.Request, dest interface{}) (errs map[string]string, err error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes())

	dec := json.NewDecoder(r.Body)
	if err = dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return nil, errors.New("request body is empty")
		case errors.As(err, &maxErr):
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		case errors.As(err, &typeErr):
			return map[string]string{
				typeErr.Field: fmt.Sprintf("The %s field must be a %s.", typeErr.Field, typeErr.Type.String()),
			}, nil
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}

	return nil, nil
}
