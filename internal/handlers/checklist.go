package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/xelth-com/ploegwissel/internal/mutation"
)

// Largest accepted request body; logos arrive as data URLs
const maxBodyBytes = 4 << 20

func decodeBody(w http.ResponseWriter, req *http.Request, dst interface{}) error {
	req.Body = http.MaxBytesReader(w, req.Body, maxBodyBytes)
	return json.NewDecoder(req.Body).Decode(dst)
}

func (r *Router) getChecklist(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, r.session.Snapshot())
}

func (r *Router) getScore(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, r.session.Score())
}

// fieldValue converts the JSON "value" of a field update into what
// mutation.SetField accepts: string, bool or nil
func fieldValue(raw json.RawMessage) (any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", mutation.ErrInvalidValue, err)
	}
	switch v.(type) {
	case string, bool:
		return v, nil
	default:
		return nil, fmt.Errorf("%w: expected string, boolean or null", mutation.ErrInvalidValue)
	}
}

// setField handles PUT /api/checklist/fields/{path} {"value": ...}
func (r *Router) setField(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Value json.RawMessage `json:"value"`
	}
	if err := decodeBody(w, req, &body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	value, err := fieldValue(body.Value)
	if err != nil {
		respondFailure(w, err)
		return
	}

	st, err := r.session.SetField(mux.Vars(req)["path"], value)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, st)
}

// toggleEntry handles POST /api/checklist/maps/{path}/toggle {"key": ...}
func (r *Router) toggleEntry(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Key string `json:"key"`
	}
	if err := decodeBody(w, req, &body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	st, err := r.session.Toggle(mux.Vars(req)["path"], body.Key)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, st)
}

func (r *Router) resetChecklist(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, r.session.Reset())
}

func (r *Router) hardClear(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, r.session.HardClear(req.Context()))
}

func (r *Router) setCompany(w http.ResponseWriter, req *http.Request) {
	var body struct {
		CompanyName string `json:"companyName"`
	}
	if err := decodeBody(w, req, &body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	respondJSON(w, http.StatusOK, r.session.SetCompany(body.CompanyName))
}

func (r *Router) uploadLogo(w http.ResponseWriter, req *http.Request) {
	var body struct {
		DataURL string `json:"dataUrl"`
	}
	if err := decodeBody(w, req, &body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	st, err := r.session.UploadLogo(req.Context(), body.DataURL)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, st)
}
