package scoring

import (
	"math"

	"github.com/xelth-com/ploegwissel/internal/models"
)

// Completion is the live progress of a checklist
type Completion struct {
	Done  int `json:"done"`
	Total int `json:"total"`
	Pct   int `json:"pct"`
}

// Indicator is one required item of the checklist
type Indicator struct {
	Name string `json:"name"`
	Done bool   `json:"done"`
}

// Indicators evaluates every required item of doc in checklist order.
// The count is fixed per document shape and only varies with len(tech.ok).
func Indicators(doc models.Document) []Indicator {
	out := make([]Indicator, 0, 17+doc.Tech.OK.Len())
	add := func(name string, done bool) {
		out = append(out, Indicator{Name: name, Done: done})
	}

	add("meta.shift", doc.Meta.Shift != "")
	add("meta.operator", doc.Meta.Operator != "")
	add("meta.leader", doc.Meta.Leader != "")
	add("prod.product", doc.Prod.Product != "")
	add("prod.batch", doc.Prod.Batch != "")
	add("prod.status", doc.Prod.Status != "")
	add("prod.stable", doc.Prod.Stable.IsSet())

	for _, f := range doc.Tech.OK.Entries() {
		add("tech.ok."+f.Key, f.Value)
	}
	add("tech.hasIssue", doc.Tech.HasIssue.IsSet())

	add("qa.deviation", doc.QA.Deviation.IsSet())
	add("qa.blocked", doc.QA.Blocked.IsSet())

	add("hyg.cleaning", doc.Hyg.CIP || doc.Hyg.Manual || doc.Hyg.CleanArea)
	add("hyg.openTasks", doc.Hyg.OpenTasks.IsSet())

	add("safe.incident", doc.Safe.Incident.IsSet())
	add("safe.risk", doc.Safe.Risk.IsSet())

	add("sign.fromName", doc.Sign.FromName != "")
	add("sign.toName", doc.Sign.ToName != "")
	add("sign.handoverDone", doc.Sign.HandoverDone)

	return out
}

// Score computes done/total and the rounded percentage
func Score(doc models.Document) Completion {
	var c Completion
	for _, ind := range Indicators(doc) {
		c.Total++
		if ind.Done {
			c.Done++
		}
	}
	c.Pct = pct(c.Done, c.Total)
	return c
}

func pct(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}
