// Package disclosure applies the responsible-disclosure policy: which
// severities are visible through which channel. Critical and high findings
// on a live site are never exposed in a public, unauthenticated response;
// only their counts are, so the operator knows risk exists.
package disclosure

import (
	"github.com/ouestweb/siteaudit/pkg/models/domain"
)

// FilterPublic derives the quick-audit view of a raw result: only medium
// and low findings are retained. The critical and high counts are carried
// through from the raw summary untouched, medium and low are recounted
// from the kept findings, info is forced to zero, and the total is the sum
// of the five displayed counts.
func FilterPublic(raw domain.AuditResult) domain.AuditResult {
	kept := make([]domain.Finding, 0, len(raw.Findings))
	for _, f := range raw.Findings {
		if f.Severity == domain.SeverityMedium || f.Severity == domain.SeverityLow {
			kept = append(kept, f)
		}
	}

	recounted := domain.CountFindings(kept)
	summary := domain.Summary{
		Critical: raw.Summary.Critical,
		High:     raw.Summary.High,
		Medium:   recounted.Medium,
		Low:      recounted.Low,
		Info:     0,
	}.Recompute()

	return domain.AuditResult{
		URL:      raw.URL,
		Findings: kept,
		Summary:  summary,
	}
}

// FilterFull derives the full-report view: every finding of every severity
// is included. The per-severity counts come from the raw summary, but the
// total is recomputed from them to guard against upstream inconsistency.
func FilterFull(raw domain.AuditResult) domain.AuditResult {
	kept := make([]domain.Finding, len(raw.Findings))
	copy(kept, raw.Findings)

	return domain.AuditResult{
		URL:      raw.URL,
		Findings: kept,
		Summary:  raw.Summary.Recompute(),
	}
}
