// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/czujnik/czujnik/internal/db"
	"github.com/czujnik/czujnik/internal/i18n"
	"github.com/czujnik/czujnik/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func seededRouter(t *testing.T) *gin.Engine {
	t.Helper()
	ctx := context.Background()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	store, err := db.NewStoreFromDSN(ctx, "sqlite", "file:web_"+name+"?mode=memory&cache=shared", db.DefaultPoolOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	fullName := "Jan <b>Kowalski</b>"
	u := model.NewUser(&fullName, nil, nil, nil, time.Unix(1700000000, 0))
	require.NoError(t, store.AddUser(ctx, &u))
	im := model.NewImplant(nil, 1700000000, u.ID)
	require.NoError(t, store.AddImplant(ctx, &im))
	steps := int64(1500)
	for i := 0; i < 2; i++ {
		m := model.NewMeasurement(1700000000+int64(i), &steps, im.ID)
		require.NoError(t, store.AddMeasurement(ctx, &m))
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	require.NoError(t, Register(r, store, Options{Logger: clog.New(io.Discard)}))
	return r
}

func get(r http.Handler, path, lang string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if lang != "" {
		req.Header.Set("Accept-Language", lang)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)
	for _, name := range []string{"users.html", "implants.html", "measurements.html", "header", "footer"} {
		require.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestUsersListing(t *testing.T) {
	i18n.Init("en")
	r := seededRouter(t)
	w := get(r, "/web/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	require.Contains(t, body, "Registered users")
	require.Contains(t, body, "Jan &lt;b&gt;Kowalski&lt;/b&gt;")
	require.Contains(t, body, "2023-11-14T22:13:20Z")
	require.Contains(t, body, "<td>1</td>")
	require.NotContains(t, body, "&lt;nil&gt;")
}

func TestImplantsListingShowsMeasurementCount(t *testing.T) {
	i18n.Init("en")
	r := seededRouter(t)
	w := get(r, "/web/implants", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, "pedometer")
	require.Contains(t, body, "<td>2</td>")
}

func TestMeasurementsListing(t *testing.T) {
	i18n.Init("en")
	r := seededRouter(t)
	w := get(r, "/web/measurements", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, "<td>1500</td>")
	require.Contains(t, body, "2 records")
}

func TestListingIsLocalized(t *testing.T) {
	i18n.Init("en")
	r := seededRouter(t)
	w := get(r, "/web/measurements", "pl-PL,pl;q=0.9")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, `<html lang="pl">`)
	require.Contains(t, body, "Zapisane pomiary")
	require.Contains(t, body, "Kroki")
}

func TestEmptyListing(t *testing.T) {
	i18n.Init("en")
	store, err := db.NewStoreFromDSN(context.Background(), "sqlite", "file:web_empty?mode=memory&cache=shared", db.DefaultPoolOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	require.NoError(t, Register(r, store, Options{Logger: clog.New(io.Discard)}))
	w := get(r, "/web/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Nothing recorded yet.")
}
