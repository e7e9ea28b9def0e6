package domain

// Severity ranks a finding by disclosure priority.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Weight returns a numeric weight for sorting (higher = more severe).
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 5
	case SeverityHigh:
		return 4
	case SeverityMedium:
		return 3
	case SeverityLow:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

func (s Severity) String() string {
	return string(s)
}

// ParseSeverity normalises scanner-provided severity strings. Anything
// outside the five known values counts as info.
func ParseSeverity(raw string) Severity {
	switch Severity(raw) {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo:
		return Severity(raw)
	default:
		return SeverityInfo
	}
}

// Finding is one detected issue. Type is a stable key used for localized
// title/description lookup. Evidence is untrusted display text and must be
// length-capped before rendering.
type Finding struct {
	Type        string
	Severity    Severity
	Title       string
	Description string
	Evidence    string
}

// Summary holds per-severity counts. TotalFindings must equal the sum of
// the five counts; use Recompute after any change to the counts.
type Summary struct {
	Critical      int
	High          int
	Medium        int
	Low           int
	Info          int
	TotalFindings int
}

// Recompute returns a copy with TotalFindings set to the sum of the five
// severity counts.
func (s Summary) Recompute() Summary {
	s.TotalFindings = s.Critical + s.High + s.Medium + s.Low + s.Info
	return s
}

// CountFindings builds a Summary by bucketing the given findings.
func CountFindings(findings []Finding) Summary {
	var s Summary
	for _, f := range findings {
		switch f.Severity {
		case SeverityCritical:
			s.Critical++
		case SeverityHigh:
			s.High++
		case SeverityMedium:
			s.Medium++
		case SeverityLow:
			s.Low++
		default:
			s.Info++
		}
	}
	return s.Recompute()
}

// AuditResult is the outcome of one audit run. URL is the address the
// scanner actually audited, which may differ from the submitted one after
// redirects. Results are never mutated; filtering derives a new value.
type AuditResult struct {
	URL      string
	Findings []Finding
	Summary  Summary
}

// EmailDeliveryRequest exists only for the duration of one report send.
type EmailDeliveryRequest struct {
	URL   string
	Email string
	Lang  string
}
