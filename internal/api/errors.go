// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/czujnik/czujnik/internal/db"
	"github.com/gin-gonic/gin"
)

// Response bodies that are part of the wire contract.
const (
	msgMalformed = "malformed or missing data"
	msgInternal  = "internal server error"
	msgUserNF    = "user not found"
	msgImplantNF = "implant not found"
	msgMeasureNF = "measurement not found"
)

// ValidationError reports which request fields failed to decode or were
// missing. Fields holds JSON names; "body" stands for the whole payload.
type ValidationError struct {
	Fields []string
	Err    error
}

func (e *ValidationError) Error() string {
	msg := "invalid request"
	if len(e.Fields) > 0 {
		msg += ": " + strings.Join(e.Fields, ", ")
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return e.Err }

func abortError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// malformed answers a rejected add request. The status is 404, as existing
// clients expect.
func (h *Handler) malformed(c *gin.Context, err error) {
	_ = c.Error(err)
	h.log.Warn("rejected request body", "path", c.FullPath(), "err", err, "request_id", GetRequestID(c))
	abortError(c, http.StatusNotFound, msgMalformed)
}

// storeFailure answers an insert or lookup error. A foreign key violation
// means the referenced parent does not exist.
func (h *Handler) storeFailure(c *gin.Context, err error, parentNotFound string) {
	_ = c.Error(err)
	var ce *db.ConstraintError
	switch {
	case parentNotFound != "" && db.IsForeignKey(err):
		abortError(c, http.StatusNotFound, parentNotFound)
	case errors.As(err, &ce) && ce.Kind == db.NotNull:
		abortError(c, http.StatusNotFound, msgMalformed)
	default:
		h.log.Error("store failure", "path", c.FullPath(), "err", err, "request_id", GetRequestID(c))
		abortError(c, http.StatusInternalServerError, msgInternal)
	}
}
