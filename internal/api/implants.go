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

// addImplantRequest is the body of POST /implant/add. PlacementDate is in
// epoch seconds; an absent or empty Type means the default type.
type addImplantRequest struct {
	Type          *string `json:"type"`
	PlacementDate *int64  `json:"placement_date" binding:"required,epoch"`
	UserID        *int64  `json:"user_id" binding:"required"`
}

func (h *Handler) addImplant(c *gin.Context) {
	var req addImplantRequest
	if err := decodeBody(c, &req); err != nil {
		h.malformed(c, err)
		return
	}

	im := model.NewImplant(req.Type, *req.PlacementDate, *req.UserID)
	if err := h.store.AddImplant(c.Request.Context(), &im); err != nil {
		h.storeFailure(c, err, msgUserNF)
		return
	}
	c.JSON(http.StatusOK, im.View(h.loc))
}

func (h *Handler) getImplant(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortError(c, http.StatusNotFound, msgImplantNF)
		return
	}
	im, err := h.store.GetImplant(c.Request.Context(), id)
	if err != nil {
		h.storeFailure(c, err, "")
		return
	}
	if im == nil {
		abortError(c, http.StatusNotFound, msgImplantNF)
		return
	}
	c.JSON(http.StatusOK, im.View(h.loc))
}
