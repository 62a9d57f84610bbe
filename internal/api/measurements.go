// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"net/http"
	"strconv"

	"github.com/czujnik/czujnik/internal/model"
	"github.com/gin-gonic/gin"
)

// addMeasurementRequest is the body of POST /measurement/add. Time is in
// epoch seconds.
type addMeasurementRequest struct {
	Time      *int64 `json:"time" binding:"required,epoch"`
	Steps     *int64 `json:"steps"`
	ImplantID *int64 `json:"implant_id" binding:"required"`
}

func (h *Handler) addMeasurement(c *gin.Context) {
	var req addMeasurementRequest
	if err := decodeBody(c, &req); err != nil {
		h.malformed(c, err)
		return
	}

	m := model.NewMeasurement(*req.Time, req.Steps, *req.ImplantID)
	if err := h.store.AddMeasurement(c.Request.Context(), &m); err != nil {
		h.storeFailure(c, err, msgImplantNF)
		return
	}
	c.JSON(http.StatusOK, m.View(h.loc))
}

func (h *Handler) getMeasurement(c *gin.Context) {
	number, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortError(c, http.StatusNotFound, msgMeasureNF)
		return
	}
	m, err := h.store.GetMeasurement(c.Request.Context(), number)
	if err != nil {
		h.storeFailure(c, err, "")
		return
	}
	if m == nil {
		abortError(c, http.StatusNotFound, msgMeasureNF)
		return
	}
	c.JSON(http.StatusOK, m.View(h.loc))
}
