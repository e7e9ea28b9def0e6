// Package terminal renders an audit result as a colorized findings table
// for the one-off CLI. The CLI is an operator tool, so it always shows the
// full, unfiltered result.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/fatih/color"
	"github.com/ouestweb/siteaudit/pkg/models/domain"
)

var severitySprints = map[domain.Severity]func(a ...interface{}) string{
	domain.SeverityCritical: color.New(color.FgRed, color.Bold).SprintFunc(),
	domain.SeverityHigh:     color.New(color.FgHiYellow, color.Bold).SprintFunc(),
	domain.SeverityMedium:   color.New(color.FgYellow).SprintFunc(),
	domain.SeverityLow:      color.New(color.FgBlue).SprintFunc(),
	domain.SeverityInfo:     color.New(color.Faint).SprintFunc(),
}

type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (r *Reporter) Handle(result domain.AuditResult) error {
	funcMap := template.FuncMap{
		"tag": func(s domain.Severity) string {
			sprint, ok := severitySprints[s]
			if !ok {
				sprint = severitySprints[domain.SeverityInfo]
			}
			return sprint(fmt.Sprintf("[%s]", strings.ToUpper(s.String())))
		},
		"count": func(label string, n int) string {
			return fmt.Sprintf("%-10s %d", label+":", n)
		},
	}

	tmpl := `
Audit: {{.URL}}

Total findings: {{.Summary.TotalFindings}}
{{count "critical" .Summary.Critical}}
{{count "high" .Summary.High}}
{{count "medium" .Summary.Medium}}
{{count "low" .Summary.Low}}
{{count "info" .Summary.Info}}
{{range .Findings}}
{{tag .Severity}} {{.Title}}
  {{.Description}}{{if .Evidence}}
  evidence: {{.Evidence}}{{end}}
{{end}}`

	t, err := template.New("audit").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(r.writer, result)
}
