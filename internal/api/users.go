// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/czujnik/czujnik/internal/model"
	"github.com/gin-gonic/gin"
)

// addUserRequest is the body of POST /user/add. Every field is optional.
type addUserRequest struct {
	FullName  *string `json:"full_name"`
	Address   *string `json:"address"`
	Telephone *string `json:"telephone"`
	PESEL     *string `json:"PESEL"`
}

func (h *Handler) addUser(c *gin.Context) {
	var req addUserRequest
	if err := decodeBody(c, &req); err != nil {
		h.malformed(c, err)
		return
	}

	u := model.NewUser(req.FullName, req.Address, req.Telephone, req.PESEL, time.Now())
	if err := h.store.AddUser(c.Request.Context(), &u); err != nil {
		h.storeFailure(c, err, "")
		return
	}
	c.JSON(http.StatusOK, u.View(h.loc))
}

func (h *Handler) getUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortError(c, http.StatusNotFound, msgUserNF)
		return
	}
	u, err := h.store.GetUser(c.Request.Context(), id)
	if err != nil {
		h.storeFailure(c, err, "")
		return
	}
	if u == nil {
		abortError(c, http.StatusNotFound, msgUserNF)
		return
	}
	c.JSON(http.StatusOK, u.View(h.loc))
}
