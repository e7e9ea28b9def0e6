package adapters

import (
	"github.com/ouestweb/siteaudit/pkg/models/api"
	"github.com/ouestweb/siteaudit/pkg/models/domain"
)

func MapSeverityDomainToApi(s domain.Severity) api.Severity {
	switch s {
	case domain.SeverityCritical:
		return api.SeverityCritical
	case domain.SeverityHigh:
		return api.SeverityHigh
	case domain.SeverityMedium:
		return api.SeverityMedium
	case domain.SeverityLow:
		return api.SeverityLow
	default:
		return api.SeverityInfo
	}
}

func MapFindingDomainToApi(f domain.Finding) api.Finding {
	return api.Finding{
		Type:        f.Type,
		Severity:    MapSeverityDomainToApi(f.Severity),
		Title:       f.Title,
		Description: f.Description,
		Evidence:    f.Evidence,
	}
}

func MapSummaryDomainToApi(s domain.Summary) api.Summary {
	return api.Summary{
		Critical:      s.Critical,
		High:          s.High,
		Medium:        s.Medium,
		Low:           s.Low,
		Info:          s.Info,
		TotalFindings: s.TotalFindings,
	}
}

func MapAuditResultDomainToApi(r domain.AuditResult) api.AuditResult {
	res := api.AuditResult{
		URL:      r.URL,
		Summary:  MapSummaryDomainToApi(r.Summary),
		Findings: make([]api.Finding, 0, len(r.Findings)),
	}
	for _, f := range r.Findings {
		res.Findings = append(res.Findings, MapFindingDomainToApi(f))
	}
	return res
}

// MapFindingApiToDomain normalises the severity on ingest so downstream
// counting never sees an unknown value.
func MapFindingApiToDomain(f api.Finding) domain.Finding {
	return domain.Finding{
		Type:        f.Type,
		Severity:    domain.ParseSeverity(string(f.Severity)),
		Title:       f.Title,
		Description: f.Description,
		Evidence:    f.Evidence,
	}
}

func MapSummaryApiToDomain(s api.Summary) domain.Summary {
	return domain.Summary{
		Critical:      s.Critical,
		High:          s.High,
		Medium:        s.Medium,
		Low:           s.Low,
		Info:          s.Info,
		TotalFindings: s.TotalFindings,
	}
}

func MapAuditResultApiToDomain(r api.AuditResult) domain.AuditResult {
	res := domain.AuditResult{
		URL:      r.URL,
		Summary:  MapSummaryApiToDomain(r.Summary),
		Findings: make([]domain.Finding, 0, len(r.Findings)),
	}
	for _, f := range r.Findings {
		res.Findings = append(res.Findings, MapFindingApiToDomain(f))
	}
	return res
}
