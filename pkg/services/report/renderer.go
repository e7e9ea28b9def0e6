// Package report renders an audit result into a paginated PDF document.
// Rendering is deterministic over already-validated data; no network calls
// happen here, and any assembly error rejects the whole operation rather
// than returning a partial document.
package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/ouestweb/siteaudit/pkg/locale"
	"github.com/ouestweb/siteaudit/pkg/models/domain"
)

const (
	// EvidenceMaxRunes caps untrusted evidence text before it reaches the
	// page layout.
	EvidenceMaxRunes = 200

	bottomMargin = 25.0
	// A finding block must not have its title separated from its body, so
	// a page break is inserted when less than this much room remains.
	findingBlockMinHeight = 40.0
)

type rgb struct {
	r, g, b int
}

var severityColors = map[domain.Severity]rgb{
	domain.SeverityCritical: {198, 40, 40},
	domain.SeverityHigh:     {239, 108, 0},
	domain.SeverityMedium:   {255, 160, 0},
	domain.SeverityLow:      {21, 101, 192},
	domain.SeverityInfo:     {117, 117, 117},
}

// severityColor falls back to the neutral info color for anything unknown.
func severityColor(s domain.Severity) rgb {
	if c, ok := severityColors[s]; ok {
		return c
	}
	return severityColors[domain.SeverityInfo]
}

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the full report: localized title, audited URL, the true
// per-severity counts of the unfiltered result, then one block per finding
// with a colored severity tag and capped evidence, with a fixed footer on
// every page.
func (r *Renderer) Render(result domain.AuditResult, lang string) ([]byte, error) {
	lang = locale.Normalize(lang)

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, bottomMargin)
	pdf.AliasNbPages("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footer := fmt.Sprintf("%s - %d/{nb}", locale.Label(lang, "pdf.footer"), pdf.PageNo())
		pdf.CellFormat(0, 10, tr(footer), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(33, 33, 33)
	pdf.CellFormat(0, 12, tr(locale.Label(lang, "pdf.title")), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(66, 66, 66)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("%s : %s", locale.Label(lang, "pdf.audited_url"), result.URL)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	r.renderSummary(pdf, tr, result.Summary, lang)
	r.renderFindings(pdf, tr, result.Findings, lang)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to assemble report PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) renderSummary(pdf *fpdf.Fpdf, tr func(string) string, summary domain.Summary, lang string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(33, 33, 33)
	pdf.CellFormat(0, 9, tr(locale.Label(lang, "pdf.summary")), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(66, 66, 66)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("%s : %d", locale.Label(lang, "pdf.total"), summary.TotalFindings)),
		"", 1, "L", false, 0, "")

	rows := []struct {
		severity domain.Severity
		count    int
	}{
		{domain.SeverityCritical, summary.Critical},
		{domain.SeverityHigh, summary.High},
		{domain.SeverityMedium, summary.Medium},
		{domain.SeverityLow, summary.Low},
		{domain.SeverityInfo, summary.Info},
	}
	for _, row := range rows {
		c := severityColor(row.severity)
		pdf.SetTextColor(c.r, c.g, c.b)
		label := locale.Label(lang, "severity."+row.severity.String())
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("  %s : %d", label, row.count)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

func (r *Renderer) renderFindings(pdf *fpdf.Fpdf, tr func(string) string, findings []domain.Finding, lang string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(33, 33, 33)
	pdf.CellFormat(0, 9, tr(locale.Label(lang, "pdf.findings")), "", 1, "L", false, 0, "")

	if len(findings) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(66, 66, 66)
		pdf.CellFormat(0, 7, tr(locale.Label(lang, "pdf.no_findings")), "", 1, "L", false, 0, "")
		return
	}

	_, pageHeight := pdf.GetPageSize()
	breakAt := pageHeight - bottomMargin - findingBlockMinHeight

	for _, f := range findings {
		if pdf.GetY() > breakAt {
			pdf.AddPage()
		}
		r.renderFinding(pdf, tr, f, lang)
	}
}

func (r *Renderer) renderFinding(pdf *fpdf.Fpdf, tr func(string) string, f domain.Finding, lang string) {
	title, description := f.Title, f.Description
	if text, ok := locale.Finding(lang, f.Type); ok {
		title, description = text.Title, text.Description
	}

	c := severityColor(f.Severity)
	tag := locale.Label(lang, "severity."+f.Severity.String())

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(c.r, c.g, c.b)
	pdf.SetTextColor(255, 255, 255)
	tagWidth := pdf.GetStringWidth(tr(tag)) + 6
	pdf.CellFormat(tagWidth, 6, tr(tag), "", 0, "C", true, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(33, 33, 33)
	pdf.CellFormat(0, 6, tr("  "+title), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(66, 66, 66)
	pdf.MultiCell(0, 5, tr(description), "", "L", false)

	if f.Evidence != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(97, 97, 97)
		evidence := fmt.Sprintf("%s : %s", locale.Label(lang, "pdf.evidence"), TruncateEvidence(f.Evidence))
		pdf.MultiCell(0, 5, tr(evidence), "", "L", false)
	}

	pdf.Ln(4)
}

// TruncateEvidence caps untrusted evidence text at EvidenceMaxRunes and
// appends an ellipsis when anything was cut.
func TruncateEvidence(evidence string) string {
	runes := []rune(evidence)
	if len(runes) <= EvidenceMaxRunes {
		return evidence
	}
	return string(runes[:EvidenceMaxRunes]) + "…"
}
