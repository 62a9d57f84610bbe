// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

// Package web renders read-only HTML listings of every stored record.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/czujnik/czujnik/internal/db"
	"github.com/czujnik/czujnik/internal/i18n"
	"github.com/czujnik/czujnik/internal/logging"
	"github.com/czujnik/czujnik/internal/model"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// Options configures the views.
type Options struct {
	Location *time.Location
	Logger   *clog.Logger
}

type views struct {
	store db.Store
	loc   *time.Location
	log   *clog.Logger
}

// page is the data every template receives.
type page struct {
	Lang      string
	Title     string
	Heading   string
	L         i18n.Localizer
	CountData map[string]any
	Rows      any
}

type userRow struct {
	model.UserView
	ImplantIDs []int64
}

type implantRow struct {
	model.ImplantView
	MeasurementCount int
}

var funcs = template.FuncMap{
	"str": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"num": func(n *int64) string {
		if n == nil {
			return ""
		}
		return strconv.FormatInt(*n, 10)
	},
	"ids": func(ids []int64) string {
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = strconv.FormatInt(id, 10)
		}
		return strings.Join(parts, ", ")
	},
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("web").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// Register installs the HTML renderer on r and adds the /web routes.
func Register(r *gin.Engine, store db.Store, opts Options) error {
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)

	v := &views{store: store, loc: opts.Location, log: opts.Logger}
	if v.loc == nil {
		v.loc = time.UTC
	}
	if v.log == nil {
		v.log = logging.L
	}

	g := r.Group("/web")
	g.GET("/users", v.users)
	g.GET("/implants", v.implants)
	g.GET("/measurements", v.measurements)
	return nil
}

func (v *views) newPage(c *gin.Context, titleKey, headingKey string, count int, rows any) page {
	lz := i18n.For(c.GetHeader("Accept-Language"))
	return page{
		Lang:      lz.Lang(),
		Title:     lz.T(titleKey),
		Heading:   lz.T(headingKey),
		L:         lz,
		CountData: map[string]any{"Count": count},
		Rows:      rows,
	}
}

func (v *views) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	v.log.Error("listing failed", "path", c.FullPath(), "err", err)
	c.AbortWithStatus(http.StatusInternalServerError)
}

func (v *views) users(c *gin.Context) {
	users, err := v.store.ListUsersWithImplants(c.Request.Context())
	if err != nil {
		v.fail(c, err)
		return
	}
	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, userRow{UserView: u.View(v.loc), ImplantIDs: u.ImplantIDs()})
	}
	c.HTML(http.StatusOK, "users.html", v.newPage(c, "web.users.title", "web.users.heading", len(rows), rows))
}

func (v *views) implants(c *gin.Context) {
	implants, err := v.store.ListImplantsWithMeasurements(c.Request.Context())
	if err != nil {
		v.fail(c, err)
		return
	}
	rows := make([]implantRow, 0, len(implants))
	for _, im := range implants {
		rows = append(rows, implantRow{ImplantView: im.View(v.loc), MeasurementCount: len(im.Measurements)})
	}
	c.HTML(http.StatusOK, "implants.html", v.newPage(c, "web.implants.title", "web.implants.heading", len(rows), rows))
}

func (v *views) measurements(c *gin.Context) {
	ms, err := v.store.ListMeasurements(c.Request.Context())
	if err != nil {
		v.fail(c, err)
		return
	}
	rows := make([]model.MeasurementView, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, m.View(v.loc))
	}
	c.HTML(http.StatusOK, "measurements.html", v.newPage(c, "web.measurements.title", "web.measurements.heading", len(rows), rows))
}
