package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	saves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ploegwissel_saves_total",
		Help: "Debounced checklist writes by result (ok, error)",
	}, []string{"result"})

	coalesced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ploegwissel_save_coalesced_total",
		Help: "Save requests that replaced a pending, not yet written save",
	})

	mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ploegwissel_mutations_total",
		Help: "Applied checklist mutations by kind (field, toggle, reset, clear, company, logo)",
	}, []string{"kind"})

	reports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ploegwissel_reports_total",
		Help: "Rendered reports by format (html, pdf, export, print) and result",
	}, []string{"format", "result"})

	readErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ploegwissel_store_read_errors_total",
		Help: "Stored slots that could not be read and fell back to defaults",
	}, []string{"slot"})
)

func SaveOK() { saves.WithLabelValues("ok").Inc() }
func SaveError() { saves.WithLabelValues("error").Inc() }
func Coalesced() { coalesced.Inc() }

func Mutation(kind string) { mutations.WithLabelValues(kind).Inc() }

// Report counts a rendered report; err decides the result label
func Report(format string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	reports.WithLabelValues(format, result).Inc()
}

func ReadError(slot string) { readErrors.WithLabelValues(slot).Inc() }
