// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/bhandar/config"
	"github.com/shashiranjanraj/bhandar/pkg/validate"
)

// maxBodyBytes returns the configured request body size limit (default 4 MB).
func maxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "4194304"), 10, 64)
	if err != nil || n <= 0 {
		return 4 << 20 // 4 MB
	}
	return n
}

// JSON decodes r.Body as JSON into dest and runs validation.
// The body is capped at MAX_BODY_BYTES (default 4 MB) to prevent memory exhaustion.
// Returns (errs, nil) when there are validation failures.
// Returns (nil, err) when the body is malformed JSON or too large.
func JSON(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())

	dec := json.NewDecoder(r.Body)
	if err = dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}

	return nil, nil
}

// File extracts a single uploaded file from a multipart form.
// The form is parsed lazily with the same size cap as JSON bodies.
// Returns (nil, nil, nil) when the field is absent, so callers can treat
// the upload as optional.
func File(r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(maxBodyBytes()); err != nil {
			return nil, nil, fmt.Errorf("invalid multipart form: %w", err)
		}
	}
	f, hdr, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return f, hdr, nil
}

// FormValues returns the non-file fields of a multipart form keyed by name,
// taking the first value of each. ParseMultipartForm must already have run;
// File does this for callers that use both.
func FormValues(r *http.Request) map[string]string {
	out := make(map[string]string)
	if r.MultipartForm == nil {
		return out
	}
	for k, vs := range r.MultipartForm.Value {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}
