package mutation

import "github.com/xelth-com/ploegwissel/internal/models"

// Kind tells which value type a field accepts
type Kind int

const (
	KindString Kind = iota
	KindTri
	KindBool
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindTri:
		return "tri-state"
	case KindBool:
		return "bool"
	case KindMap:
		return "mapping"
	default:
		return "unknown"
	}
}

// StringField identifies a text leaf of the checklist
type StringField int

const (
	MetaDate StringField = iota
	MetaTime
	MetaShift
	MetaOperator
	MetaLeader
	ProdProduct
	ProdBatch
	ProdStatus
	ProdNotes
	TechIssueNotes
	QANotes
	HygOpenNotes
	SafeIncidentNotes
	PlanActions
	SignFromName
	SignFromSign
	SignToName
	SignToSign
)

type stringSpec struct {
	path string
	max  int
	ref  func(d *models.Document) *string
}

var stringFields = [...]stringSpec{
	MetaDate:          {"meta.date", 0, func(d *models.Document) *string { return &d.Meta.Date }},
	MetaTime:          {"meta.time", 0, func(d *models.Document) *string { return &d.Meta.Time }},
	MetaShift:         {"meta.shift", 0, func(d *models.Document) *string { return &d.Meta.Shift }},
	MetaOperator:      {"meta.operator", models.MaxPersonName, func(d *models.Document) *string { return &d.Meta.Operator }},
	MetaLeader:        {"meta.leader", models.MaxPersonName, func(d *models.Document) *string { return &d.Meta.Leader }},
	ProdProduct:       {"prod.product", models.MaxProduct, func(d *models.Document) *string { return &d.Prod.Product }},
	ProdBatch:         {"prod.batch", models.MaxBatch, func(d *models.Document) *string { return &d.Prod.Batch }},
	ProdStatus:        {"prod.status", 0, func(d *models.Document) *string { return &d.Prod.Status }},
	ProdNotes:         {"prod.notes", models.MaxNotes, func(d *models.Document) *string { return &d.Prod.Notes }},
	TechIssueNotes:    {"tech.issueNotes", models.MaxNotes, func(d *models.Document) *string { return &d.Tech.IssueNotes }},
	QANotes:           {"qa.notes", models.MaxNotes, func(d *models.Document) *string { return &d.QA.Notes }},
	HygOpenNotes:      {"hyg.openNotes", models.MaxNotes, func(d *models.Document) *string { return &d.Hyg.OpenNotes }},
	SafeIncidentNotes: {"safe.incidentNotes", models.MaxNotes, func(d *models.Document) *string { return &d.Safe.IncidentNotes }},
	PlanActions:       {"plan.actions", models.MaxNotes, func(d *models.Document) *string { return &d.Plan.Actions }},
	SignFromName:      {"sign.fromName", models.MaxPersonName, func(d *models.Document) *string { return &d.Sign.FromName }},
	SignFromSign:      {"sign.fromSign", models.MaxSignature, func(d *models.Document) *string { return &d.Sign.FromSign }},
	SignToName:        {"sign.toName", models.MaxPersonName, func(d *models.Document) *string { return &d.Sign.ToName }},
	SignToSign:        {"sign.toSign", models.MaxSignature, func(d *models.Document) *string { return &d.Sign.ToSign }},
}

func (f StringField) Path() string { return stringFields[f].path }

// Max is the rune cap applied on write; 0 means the value is validated instead
func (f StringField) Max() int { return stringFields[f].max }

// Get reads the field from doc
func (f StringField) Get(doc models.Document) string { return *stringFields[f].ref(&doc) }

// TriField identifies a yes/no/unanswered leaf
type TriField int

const (
	ProdStable TriField = iota
	TechHasIssue
	QADeviation
	QABlocked
	HygOpenTasks
	SafeIncident
	SafeRisk
)

type triSpec struct {
	path string
	ref  func(d *models.Document) *models.TriState
}

var triFields = [...]triSpec{
	ProdStable:   {"prod.stable", func(d *models.Document) *models.TriState { return &d.Prod.Stable }},
	TechHasIssue: {"tech.hasIssue", func(d *models.Document) *models.TriState { return &d.Tech.HasIssue }},
	QADeviation:  {"qa.deviation", func(d *models.Document) *models.TriState { return &d.QA.Deviation }},
	QABlocked:    {"qa.blocked", func(d *models.Document) *models.TriState { return &d.QA.Blocked }},
	HygOpenTasks: {"hyg.openTasks", func(d *models.Document) *models.TriState { return &d.Hyg.OpenTasks }},
	SafeIncident: {"safe.incident", func(d *models.Document) *models.TriState { return &d.Safe.Incident }},
	SafeRisk:     {"safe.risk", func(d *models.Document) *models.TriState { return &d.Safe.Risk }},
}

func (f TriField) Path() string { return triFields[f].path }
func (f TriField) Get(doc models.Document) models.TriState { return *triFields[f].ref(&doc) }

// BoolField identifies a checkbox leaf
type BoolField int

const (
	QASampleTaken BoolField = iota
	QASampleSent
	HygCIP
	HygManual
	HygCleanArea
	SignHandoverDone
)

type boolSpec struct {
	path string
	ref  func(d *models.Document) *bool
}

var boolFields = [...]boolSpec{
	QASampleTaken:    {"qa.sampleTaken", func(d *models.Document) *bool { return &d.QA.SampleTaken }},
	QASampleSent:     {"qa.sampleSent", func(d *models.Document) *bool { return &d.QA.SampleSent }},
	HygCIP:           {"hyg.cip", func(d *models.Document) *bool { return &d.Hyg.CIP }},
	HygManual:        {"hyg.manual", func(d *models.Document) *bool { return &d.Hyg.Manual }},
	HygCleanArea:     {"hyg.cleanArea", func(d *models.Document) *bool { return &d.Hyg.CleanArea }},
	SignHandoverDone: {"sign.handoverDone", func(d *models.Document) *bool { return &d.Sign.HandoverDone }},
}

func (f BoolField) Path() string { return boolFields[f].path }
func (f BoolField) Get(doc models.Document) bool { return *boolFields[f].ref(&doc) }

// MapField identifies one of the fixed indicator mappings
type MapField int

const (
	TechOK MapField = iota
	PlanItems
)

type mapSpec struct {
	path string
	ref  func(d *models.Document) *models.Flags
}

var mapFields = [...]mapSpec{
	TechOK:    {"tech.ok", func(d *models.Document) *models.Flags { return &d.Tech.OK }},
	PlanItems: {"plan.items", func(d *models.Document) *models.Flags { return &d.Plan.Items }},
}

func (f MapField) Path() string { return mapFields[f].path }
func (f MapField) Get(doc models.Document) models.Flags { return mapFields[f].ref(&doc).Clone() }

// Field is a resolved wire path
type Field struct {
	Path string
	Kind Kind
	idx  int
}

var byPath = func() map[string]Field {
	m := make(map[string]Field)
	for i, s := range stringFields {
		m[s.path] = Field{Path: s.path, Kind: KindString, idx: i}
	}
	for i, s := range triFields {
		m[s.path] = Field{Path: s.path, Kind: KindTri, idx: i}
	}
	for i, s := range boolFields {
		m[s.path] = Field{Path: s.path, Kind: KindBool, idx: i}
	}
	for i, s := range mapFields {
		m[s.path] = Field{Path: s.path, Kind: KindMap, idx: i}
	}
	return m
}()

// Lookup resolves a dotted wire path such as "meta.operator"
func Lookup(path string) (Field, error) {
	f, ok := byPath[path]
	if !ok {
		return Field{}, invalidPath(path)
	}
	return f, nil
}

// Paths lists every addressable path grouped by kind
func Paths() []string {
	paths := make([]string, 0, len(byPath))
	for _, s := range stringFields {
		paths = append(paths, s.path)
	}
	for _, s := range triFields {
		paths = append(paths, s.path)
	}
	for _, s := range boolFields {
		paths = append(paths, s.path)
	}
	for _, s := range mapFields {
		paths = append(paths, s.path)
	}
	return paths
}
