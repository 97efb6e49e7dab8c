package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xelth-com/ploegwissel/internal/buildinfo"
	"github.com/xelth-com/ploegwissel/internal/models"
	"github.com/xelth-com/ploegwissel/internal/mutation"
	"github.com/xelth-com/ploegwissel/internal/services/printer"
	"github.com/xelth-com/ploegwissel/internal/session"
	"github.com/xelth-com/ploegwissel/internal/websocket"
)

// Router wraps the mux router and the checklist session
type Router struct {
	*mux.Router
	session *session.Session
	hub     *websocket.Hub
	sink    printer.Sink
}

// NewRouter creates a new HTTP router with all routes. hub may be nil.
func NewRouter(sess *session.Session, hub *websocket.Hub, sink printer.Sink) *Router {
	r := &Router{
		Router:  mux.NewRouter(),
		session: sess,
		hub:     hub,
		sink:    sink,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	if hub != nil {
		r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
			websocket.ServeWs(hub, w, req)
		})
	}

	// API routes
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", r.getStatus).Methods("GET")

	checklist := api.PathPrefix("/checklist").Subrouter()
	checklist.HandleFunc("", r.getChecklist).Methods("GET")
	checklist.HandleFunc("", r.hardClear).Methods("DELETE")
	checklist.HandleFunc("/score", r.getScore).Methods("GET")
	checklist.HandleFunc("/reset", r.resetChecklist).Methods("POST")
	checklist.HandleFunc("/fields/{path}", r.setField).Methods("PUT")
	checklist.HandleFunc("/maps/{path}/toggle", r.toggleEntry).Methods("POST")

	api.HandleFunc("/company", r.setCompany).Methods("PUT")
	api.HandleFunc("/logo", r.uploadLogo).Methods("PUT")

	// Archive and print
	api.HandleFunc("/export", r.exportChecklist).Methods("GET")
	api.HandleFunc("/report", r.reportHTML).Methods("GET")
	api.HandleFunc("/report.pdf", r.reportPDF).Methods("GET")
	api.HandleFunc("/report/print", r.printReport).Methods("POST")

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// getStatus reports build info, uptime start and the live score
func (r *Router) getStatus(w http.ResponseWriter, req *http.Request) {
	tablets := 0
	if r.hub != nil {
		tablets = r.hub.Count()
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "running",
		"buildTime":  buildinfo.BuildTime,
		"commitHash": buildinfo.CommitHash,
		"commitTime": buildinfo.CommitTime,
		"startTime":  buildinfo.StartTime,
		"tablets":    tablets,
		"score":      r.session.Score(),
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondFailure maps core errors onto HTTP status codes
func respondFailure(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, mutation.ErrInvalidPath),
		errors.Is(err, mutation.ErrUnknownKey),
		errors.Is(err, mutation.ErrInvalidValue):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidLogoType):
		status = http.StatusUnsupportedMediaType
	case errors.Is(err, printer.ErrPresentationBlocked):
		status = http.StatusServiceUnavailable
	}
	respondError(w, status, err.Error())
}
