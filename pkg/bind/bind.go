// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/validate"
)

// MaxBodyBytes is the request body cap, shared by JSON bodies and
// multipart product uploads.
func MaxBodyBytes() int64 {
	return config.MaxBodyBytes()
}

// JSON decodes r.Body into dest and validates it. Malformed or oversized
// bodies and unknown fields yield err; failed validation yields errs keyed
// by json field name.
func JSON(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, MaxBodyBytes())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", tooLarge.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if errs := Validate(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}

// Validate runs the struct tags of an already-populated value (form bodies).
func Validate(dest interface{}) map[string]string {
	return validate.Struct(dest)
}
