package api

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

type Finding struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Evidence    string   `json:"evidence,omitempty"`
}

type Summary struct {
	Critical      int `json:"critical"`
	High          int `json:"high"`
	Medium        int `json:"medium"`
	Low           int `json:"low"`
	Info          int `json:"info"`
	TotalFindings int `json:"total_findings"`
}

type AuditResult struct {
	URL      string    `json:"url"`
	Findings []Finding `json:"findings"`
	Summary  Summary   `json:"summary"`
}

type AuditRequest struct {
	URL string `json:"url"`
}

type ReportRequest struct {
	URL   string `json:"url"`
	Email string `json:"email"`
	Lang  string `json:"lang,omitempty"`
}

type ContactRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message,omitempty"`
}

type SendResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
