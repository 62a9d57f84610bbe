// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validatorOnce sync.Once

// setupValidator makes validation errors report JSON field names and
// registers the "epoch" tag.
func setupValidator() {
	validatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("epoch", validEpoch)
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// validEpoch accepts epoch seconds whose UTC time is a non-zero instant in
// years 1 through 9999, the range every store can hold and read back.
func validEpoch(fl validator.FieldLevel) bool {
	t := time.Unix(fl.Field().Int(), 0).UTC()
	return !t.IsZero() && t.Year() >= 1 && t.Year() <= 9999
}

// decodeBody reads a JSON object from the request into dst and validates
// it. An absent body, a non-object, an empty object, a type mismatch or a
// missing required field all yield a *ValidationError.
func decodeBody(c *gin.Context, dst any) error {
	raw, err := c.GetRawData()
	if err != nil {
		return &ValidationError{Fields: []string{"body"}, Err: err}
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return &ValidationError{Fields: []string{"body"}, Err: errors.New("empty body")}
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return &ValidationError{Fields: []string{"body"}, Err: err}
	}
	if len(obj) == 0 {
		return &ValidationError{Fields: []string{"body"}, Err: errors.New("empty object")}
	}

	if err := binding.JSON.BindBody(raw, dst); err != nil {
		return toValidationError(err)
	}
	return nil
}

func toValidationError(err error) *ValidationError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return &ValidationError{Fields: []string{field}, Err: err}
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return &ValidationError{Fields: fields, Err: err}
	}
	return &ValidationError{Fields: []string{"body"}, Err: err}
}
