package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xelth-com/ploegwissel/internal/models"
)

func defaultDoc() models.Document {
	return models.NewDefault(time.Date(2024, 2, 7, 22, 0, 0, 0, time.Local))
}

func completeDoc() models.Document {
	doc := defaultDoc()
	doc.Meta.Operator = "Piet"
	doc.Meta.Leader = "Els"
	doc.Prod.Product = "Volle melkpoeder"
	doc.Prod.Batch = "MP-240207-01"
	doc.Prod.Stable = models.No
	for _, k := range models.TechKeys {
		doc.Tech.OK.Toggle(k)
	}
	doc.Tech.HasIssue = models.No
	doc.QA.Deviation = models.No
	doc.QA.Blocked = models.Yes
	doc.Hyg.Manual = true
	doc.Hyg.OpenTasks = models.No
	doc.Safe.Incident = models.No
	doc.Safe.Risk = models.No
	doc.Sign.FromName = "Piet"
	doc.Sign.ToName = "Karin"
	doc.Sign.HandoverDone = true
	return doc
}

func TestScore_Blank(t *testing.T) {
	var doc models.Document
	doc.Tech.OK = models.NewFlags(models.TechKeys...)
	doc.Plan.Items = models.NewFlags(models.PlanKeys...)

	c := Score(doc)
	assert.Equal(t, Completion{Done: 0, Total: 23, Pct: 0}, c)
}

func TestScore_Defaults(t *testing.T) {
	// shift and status are pre-filled by the factory
	c := Score(defaultDoc())
	assert.Equal(t, Completion{Done: 2, Total: 23, Pct: 9}, c)
}

func TestScore_Complete(t *testing.T) {
	c := Score(completeDoc())
	assert.Equal(t, Completion{Done: 23, Total: 23, Pct: 100}, c)
}

func TestScore_TwoInstallations(t *testing.T) {
	doc := defaultDoc()
	doc.Meta.Shift = models.ShiftNight
	doc.Tech.OK = models.FlagsOf(models.Flag{Key: "A", Value: true}, models.Flag{Key: "B"})

	c := Score(doc)

	// 17 fixed indicators + one per tech.ok key
	assert.Equal(t, 19, c.Total)
	// shift, status and A
	assert.Equal(t, 3, c.Done)
	assert.Equal(t, 16, c.Pct)
}

func TestScore_NoIndicators(t *testing.T) {
	assert.Equal(t, 0, pct(0, 0))
}

func TestScore_HygieneIsOneIndicator(t *testing.T) {
	doc := defaultDoc()
	base := Score(doc).Done

	doc.Hyg.CIP = true
	doc.Hyg.Manual = true
	doc.Hyg.CleanArea = true
	assert.Equal(t, base+1, Score(doc).Done)
}

func TestScore_TriStateNoCounts(t *testing.T) {
	doc := defaultDoc()
	base := Score(doc).Done

	doc.Safe.Incident = models.No
	doc.QA.Blocked = models.Yes
	assert.Equal(t, base+2, Score(doc).Done)
}

func TestScore_Bounds(t *testing.T) {
	docs := []models.Document{defaultDoc(), completeDoc()}
	partial := completeDoc()
	partial.Sign.HandoverDone = false
	partial.Tech.OK.Toggle("Zeef")
	docs = append(docs, partial)

	for _, d := range docs {
		c := Score(d)
		assert.LessOrEqual(t, c.Done, c.Total)
		assert.GreaterOrEqual(t, c.Pct, 0)
		assert.LessOrEqual(t, c.Pct, 100)
	}
}

func TestIndicators_Order(t *testing.T) {
	inds := Indicators(defaultDoc())
	assert.Equal(t, "meta.shift", inds[0].Name)
	assert.Equal(t, "tech.ok.Spray dryer", inds[7].Name)
	assert.Equal(t, "sign.handoverDone", inds[len(inds)-1].Name)
}
