package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xelth-com/ploegwissel/internal/models"
	"github.com/xelth-com/ploegwissel/internal/services/printer"
	"github.com/xelth-com/ploegwissel/internal/session"
	"github.com/xelth-com/ploegwissel/internal/storage"
)

type blockedSink struct{}

func (blockedSink) Deliver(context.Context, printer.Artifact) (string, error) {
	return "", printer.ErrPresentationBlocked
}

func newTestRouter(t *testing.T, sink printer.Sink) *Router {
	t.Helper()
	gw := storage.NewGateway(storage.NewMemoryStore(), storage.Options{Delay: time.Hour})
	t.Cleanup(gw.Close)
	sess := session.Open(context.Background(), gw, session.Options{
		Now: func() time.Time { return time.Date(2024, 2, 7, 6, 30, 0, 0, time.Local) },
	})
	return NewRouter(sess, nil, sink)
}

func do(t *testing.T, r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) session.State {
	t.Helper()
	var st session.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	return st
}

func TestHealthAndStatus(t *testing.T) {
	r := newTestRouter(t, blockedSink{})

	rec := do(t, r, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(t, r, "GET", "/api/status", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"score":{"done":2,"total":23,"pct":9}`)
}

func TestSetField(t *testing.T) {
	r := newTestRouter(t, blockedSink{})

	rec := do(t, r, "PUT", "/api/checklist/fields/meta.operator", `{"value":"Piet"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	st := decodeState(t, rec)
	assert.Equal(t, "Piet", st.Document.Meta.Operator)
	assert.Equal(t, 3, st.Score.Done)

	rec = do(t, r, "PUT", "/api/checklist/fields/prod.stable", `{"value":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.Yes, decodeState(t, rec).Document.Prod.Stable)

	rec = do(t, r, "PUT", "/api/checklist/fields/prod.stable", `{"value":null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.Unset, decodeState(t, rec).Document.Prod.Stable)

	rec = do(t, r, "GET", "/api/checklist", "")
	assert.Equal(t, "Piet", decodeState(t, rec).Document.Meta.Operator)
}

func TestSetField_Errors(t *testing.T) {
	r := newTestRouter(t, blockedSink{})

	cases := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{"unknown path", "/api/checklist/fields/meta.nope", `{"value":"x"}`, http.StatusBadRequest},
		{"bad enum", "/api/checklist/fields/meta.shift", `{"value":"Weekend"}`, http.StatusBadRequest},
		{"number", "/api/checklist/fields/meta.operator", `{"value":42}`, http.StatusBadRequest},
		{"wrong kind", "/api/checklist/fields/sign.handoverDone", `{"value":"ja"}`, http.StatusBadRequest},
		{"broken json", "/api/checklist/fields/meta.operator", `{`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, r, "PUT", tc.target, tc.body)
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestToggle(t *testing.T) {
	r := newTestRouter(t, blockedSink{})

	rec := do(t, r, "POST", "/api/checklist/maps/tech.ok/toggle", `{"key":"Zeef"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeState(t, rec).Document.Tech.OK.Get("Zeef"))

	rec = do(t, r, "POST", "/api/checklist/maps/tech.ok/toggle", `{"key":"Koeltoren"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, "POST", "/api/checklist/maps/meta.date/toggle", `{"key":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScoreResetClear(t *testing.T) {
	r := newTestRouter(t, blockedSink{})
	do(t, r, "PUT", "/api/checklist/fields/meta.leader", `{"value":"Els"}`)

	rec := do(t, r, "GET", "/api/checklist/score", "")
	assert.JSONEq(t, `{"done":3,"total":23,"pct":13}`, rec.Body.String())

	rec = do(t, r, "POST", "/api/checklist/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeState(t, rec).Document.Meta.Leader)

	do(t, r, "PUT", "/api/company", `{"companyName":"Kaas BV"}`)
	rec = do(t, r, "DELETE", "/api/checklist", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.DefaultCompanyName, decodeState(t, rec).CompanyName)
}

func TestCompanyAndLogo(t *testing.T) {
	r := newTestRouter(t, blockedSink{})

	rec := do(t, r, "PUT", "/api/company", `{"companyName":"Melkpoeders Noord"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Melkpoeders Noord", decodeState(t, rec).CompanyName)

	rec = do(t, r, "PUT", "/api/logo", `{"dataUrl":"data:image/gif;base64,R0lGODlh"}`)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Contains(t, rec.Body.String(), "PNG/JPG/WEBP/SVG")

	rec = do(t, r, "PUT", "/api/logo", `{"dataUrl":"data:image/png;base64,iVBORw0KGgo="}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgo=", decodeState(t, rec).Logo)
}

func TestExport(t *testing.T) {
	r := newTestRouter(t, blockedSink{})

	rec := do(t, r, "GET", "/api/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="ploegwissel_2024-02-07_Ochtend.json"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), `"companyName": "Zuivelfabriek – Melkpoeders"`)
}

func TestReport(t *testing.T) {
	r := newTestRouter(t, blockedSink{})
	do(t, r, "PUT", "/api/checklist/fields/prod.notes", `{"value":"<script>x()</script>"}`)

	rec := do(t, r, "GET", "/api/report", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "window.print()")
	assert.Contains(t, rec.Body.String(), "&lt;script&gt;x()&lt;/script&gt;")

	rec = do(t, r, "GET", "/api/report?print=0", "")
	assert.NotContains(t, rec.Body.String(), "window.print()")

	rec = do(t, r, "GET", "/api/report.pdf", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
}

func TestPrint(t *testing.T) {
	rec := do(t, newTestRouter(t, blockedSink{}), "POST", "/api/report/print", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "pop-ups")

	dir := t.TempDir()
	rec = do(t, newTestRouter(t, printer.FileSink{Dir: dir}), "POST", "/api/report/print", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ploegwissel_2024-02-07_Ochtend.html")
}

func TestMetrics(t *testing.T) {
	r := newTestRouter(t, blockedSink{})
	do(t, r, "PUT", "/api/checklist/fields/meta.operator", `{"value":"Piet"}`)

	rec := do(t, r, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `ploegwissel_mutations_total{kind="field"}`)
}
