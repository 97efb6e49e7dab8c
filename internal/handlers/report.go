package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/xelth-com/ploegwissel/internal/services/printer"
)

func attachment(w http.ResponseWriter, contentType, filename string, size int) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Header().Set("Content-Length", strconv.Itoa(size))
}

// exportChecklist downloads the JSON archive of the current checklist
func (r *Router) exportChecklist(w http.ResponseWriter, req *http.Request) {
	data, name, err := r.session.Export()
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to export checklist: %v", err))
		return
	}
	attachment(w, "application/json", name, len(data))
	w.Write(data)
}

// reportHTML serves the printable report. It opens the print dialog on
// load unless ?print=0.
func (r *Router) reportHTML(w http.ResponseWriter, req *http.Request) {
	autoPrint := req.URL.Query().Get("print") != "0"
	a, err := r.session.Report(printer.HTMLOptions{AutoPrint: autoPrint})
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to render report: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(a.HTML)
}

// reportPDF handles the PDF generation request
func (r *Router) reportPDF(w http.ResponseWriter, req *http.Request) {
	pdfBytes, name, err := r.session.ReportPDF()
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate PDF: %v", err))
		return
	}
	attachment(w, "application/pdf", name, len(pdfBytes))
	w.Write(pdfBytes)
}

// printReport hands the report to the configured sink
func (r *Router) printReport(w http.ResponseWriter, req *http.Request) {
	path, err := r.session.Print(req.Context(), r.sink)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"path": path})
}
