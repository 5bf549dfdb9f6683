package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/test-atlas/pkg/models/domain"
)

// Reporter prints a run summary to the console in a formatted text form
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

type summaryMetric struct {
	Name  string
	Value string
}

type runSummary struct {
	Metrics []summaryMetric
	Files   []string
}

// Handle prints the overview metrics and the list of files written.
func (c *Reporter) Handle(report *domain.Report, files []string) error {
	summary := runSummary{Files: files}
	for _, row := range report.Section(domain.SectionOverview) {
		summary.Metrics = append(summary.Metrics, summaryMetric{
			Name:  cell(row.Value("metric")),
			Value: cell(row.Value("value")),
		})
	}

	tmpl := `
=== Report summary ===
{{range .Metrics}}{{.Name}}: {{.Value}}
{{end}}
Files written:
{{range .Files}}  {{.}}
{{end}}`
	t, err := template.New("summary").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, summary)
}

// HandleValidation prints the outcome of a standalone config validation.
func (c *Reporter) HandleValidation(cfg *domain.ReportConfig) error {
	tmpl := `configuration is valid

testops:   enabled={{.Sources.TestOps.Enabled}} explicit_builds={{len .Inputs.TestOpsBuildIDs}}
devicelab: enabled={{.Sources.DeviceLab.Enabled}} explicit_builds={{len .Inputs.DeviceLabBuildIDs}}
discovery: enabled={{.Inputs.Discovery.Enabled}} days={{.Inputs.Discovery.Days}} max_builds={{.Inputs.Discovery.MaxBuildsPerSource}}
output:    dir={{.Output.Dir}} base={{.Output.BaseName}} formats={{.Output.Formats}}
`
	t, err := template.New("validation").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, cfg)
}
