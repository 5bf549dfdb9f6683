package domain

// Report section names, in output order.
const (
	SectionOverview = "overview"
	SectionBuilds   = "builds"
	SectionTests    = "tests"
	SectionSessions = "sessions"
	SectionApps     = "apps"
)

// SectionOrder is the order sections appear in every rendered format.
var SectionOrder = []string{
	SectionOverview,
	SectionBuilds,
	SectionTests,
	SectionSessions,
	SectionApps,
}

// Report holds the final row collections, keyed by section name. Rows are
// filtered, sorted and projected before they land here; renderers treat the
// collections as read-only.
type Report struct {
	sections map[string][]*Row
}

func NewReport() *Report {
	return &Report{sections: make(map[string][]*Row)}
}

func (r *Report) SetSection(name string, rows []*Row) {
	r.sections[name] = rows
}

func (r *Report) Section(name string) []*Row {
	return r.sections[name]
}

// Sections yields the non-empty sections in SectionOrder.
func (r *Report) Sections() []string {
	var out []string
	for _, name := range SectionOrder {
		if len(r.sections[name]) > 0 {
			out = append(out, name)
		}
	}
	return out
}
