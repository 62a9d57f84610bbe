// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

// Package api exposes the add and get-by-id JSON endpoints for users,
// implants and measurements.
package api

import (
	"net/http"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/czujnik/czujnik/internal/db"
	"github.com/czujnik/czujnik/internal/logging"
	"github.com/gin-gonic/gin"
)

// Options configures the router.
type Options struct {
	// Location is the time zone timestamps are rendered in. Nil means UTC.
	Location *time.Location
	// Logger receives access and error logs. Nil means logging.L.
	Logger *clog.Logger
	// Debug puts gin in debug mode.
	Debug bool
}

// Handler holds what the endpoint handlers share.
type Handler struct {
	store db.Store
	loc   *time.Location
	log   *clog.Logger
}

// NewHandler returns a Handler backed by store.
func NewHandler(store db.Store, opts Options) *Handler {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	l := opts.Logger
	if l == nil {
		l = logging.L
	}
	return &Handler{store: store, loc: loc, log: l}
}

// NewRouter builds a gin engine with the middleware chain and every JSON
// route registered. Further routes (the HTML views) can be added to it.
func NewRouter(store db.Store, opts Options) *gin.Engine {
	if opts.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	setupValidator()

	h := NewHandler(store, opts)
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(h.log))
	h.Register(r)
	return r
}

// Register adds the JSON routes to r.
func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/", h.index)

	r.POST("/user/add", h.addUser)
	r.GET("/user/:id", h.getUser)

	r.POST("/implant/add", h.addImplant)
	r.GET("/implant/:id", h.getImplant)

	r.POST("/measurement/add", h.addMeasurement)
	r.GET("/measurement/:id", h.getMeasurement)
}

func (h *Handler) index(c *gin.Context) {
	c.String(http.StatusOK, ":)")
}
