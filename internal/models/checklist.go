package models

// Document is one shift-handover checklist (a "ploegwissel").
// JSON keys match the exported/persisted format of the tablet app.
type Document struct {
	Meta Meta    `json:"meta"`
	Prod Prod    `json:"prod"`
	Tech Tech    `json:"tech"`
	QA   QA      `json:"qa"`
	Hyg  Hygiene `json:"hyg"`
	Safe Safety  `json:"safe"`
	Plan Plan    `json:"plan"`
	Sign Sign    `json:"sign"`
}

// Meta holds the header of the checklist
type Meta struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Time     string `json:"time"` // HH:MM
	Shift    string `json:"shift"`
	Operator string `json:"operator"`
	Leader   string `json:"leader"`
}

// Prod describes what the line is producing
type Prod struct {
	Product string   `json:"product"`
	Batch   string   `json:"batch"`
	Status  string   `json:"status"`
	Stable  TriState `json:"stable"`
	Notes   string   `json:"notes"`
}

// Tech is the installations section
type Tech struct {
	OK         Flags    `json:"ok"`
	HasIssue   TriState `json:"hasIssue"`
	IssueNotes string   `json:"issueNotes"`
}

// QA is the quality section
type QA struct {
	SampleTaken bool     `json:"sampleTaken"`
	SampleSent  bool     `json:"sampleSent"`
	Deviation   TriState `json:"deviation"`
	Blocked     TriState `json:"blocked"`
	Notes       string   `json:"notes"`
}

// Hygiene is the cleaning section
type Hygiene struct {
	CIP       bool     `json:"cip"`
	Manual    bool     `json:"manual"`
	CleanArea bool     `json:"cleanArea"`
	OpenTasks TriState `json:"openTasks"`
	OpenNotes string   `json:"openNotes"`
}

// Safety is the incidents/risk section
type Safety struct {
	Incident      TriState `json:"incident"`
	IncidentNotes string   `json:"incidentNotes"`
	Risk          TriState `json:"risk"`
}

// Plan lists what the next shift should expect
type Plan struct {
	Items   Flags  `json:"items"`
	Actions string `json:"actions"`
}

// Sign is the handover sign-off
type Sign struct {
	FromName     string `json:"fromName"`
	FromSign     string `json:"fromSign"`
	ToName       string `json:"toName"`
	ToSign       string `json:"toSign"`
	HandoverDone bool   `json:"handoverDone"`
}

// Clone returns a deep copy. The copy shares no mutable state with d,
// so a caller holding d keeps a valid, unchanged snapshot.
func (d Document) Clone() Document {
	next := d
	next.Tech.OK = d.Tech.OK.Clone()
	next.Plan.Items = d.Plan.Items.Clone()
	return next
}

// Shift names
const (
	ShiftMorning   = "Ochtend"
	ShiftAfternoon = "Middag"
	ShiftNight     = "Nacht"
)

// Process states of the line
const (
	StatusStartup     = "Opstart"
	StatusProducing   = "In productie"
	StatusCleaning    = "Reiniging (CIP)"
	StatusStandstill  = "Stilstand"
	StatusMaintenance = "Onderhoud"
)

// Shifts in display order
var Shifts = []string{ShiftMorning, ShiftAfternoon, ShiftNight}

// ProcessStates in display order
var ProcessStates = []string{StatusStartup, StatusProducing, StatusCleaning, StatusStandstill, StatusMaintenance}

// TechKeys are the installations checked in tech.ok
var TechKeys = []string{"Spray dryer", "Indamper", "Zeef", "Verpakking", "Silos", "Utilities"}

// PlanKeys are the planning indicators in plan.items
var PlanKeys = []string{"Productie loopt door", "Batchwissel gepland", "Reiniging gepland", "Onderhoud gepland"}

// DefaultCompanyName is used until the operator sets one
const DefaultCompanyName = "Zuivelfabriek – Melkpoeders"

// Length caps for free-text input (in runes)
const (
	MaxPersonName = 60
	MaxProduct    = 80
	MaxBatch      = 40
	MaxNotes      = 2000
	MaxSignature  = 120
	MaxCompany    = 80
)

// Truncate cuts s to at most max runes. Overflow is dropped, never rejected.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
