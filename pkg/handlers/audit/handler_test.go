package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ouestweb/siteaudit/pkg/apperr"
	"github.com/ouestweb/siteaudit/pkg/models/api"
	"github.com/ouestweb/siteaudit/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockScanner struct {
	mock.Mock
}

func (m *mockScanner) PerformAudit(ctx context.Context, url string) (domain.AuditResult, error) {
	args := m.Called(ctx, url)
	return args.Get(0).(domain.AuditResult), args.Error(1)
}

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) Render(result domain.AuditResult, lang string) ([]byte, error) {
	args := m.Called(result, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) SendReport(
	ctx context.Context,
	result domain.AuditResult,
	pdfDoc []byte,
	email, lang string,
) error {
	args := m.Called(ctx, result, pdfDoc, email, lang)
	return args.Error(0)
}

func (m *mockDispatcher) EnrollContact(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func upstreamResult() domain.AuditResult {
	return domain.AuditResult{
		URL: "https://example.com",
		Findings: []domain.Finding{
			{Type: "tls_weak", Severity: domain.SeverityCritical},
			{Type: "header_missing", Severity: domain.SeverityMedium},
		},
		Summary: domain.Summary{Critical: 1, Medium: 1, TotalFindings: 2},
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeAs[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestQuickAudit_PublicChannelScenario(t *testing.T) {
	scanner := new(mockScanner)
	scanner.On("PerformAudit", mock.Anything, "https://example.com").
		Return(upstreamResult(), nil)

	h := NewHandler(scanner, new(mockRenderer), new(mockDispatcher))
	rec := postJSON(t, h.QuickAudit, api.AuditRequest{URL: "example.com"})

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeAs[api.AuditResult](t, rec)

	// The critical finding is withheld, but its count is disclosed.
	require.Len(t, got.Findings, 1)
	assert.Equal(t, "header_missing", got.Findings[0].Type)
	assert.Equal(t, api.Summary{Critical: 1, High: 0, Medium: 1, Low: 0, Info: 0, TotalFindings: 2}, got.Summary)

	scanner.AssertExpectations(t)
}

func TestQuickAudit_EmptyURL(t *testing.T) {
	scanner := new(mockScanner)
	h := NewHandler(scanner, new(mockRenderer), new(mockDispatcher))

	for _, url := range []string{"", "   "} {
		rec := postJSON(t, h.QuickAudit, api.AuditRequest{URL: url})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		got := decodeAs[api.ErrorResponse](t, rec)
		assert.Equal(t, "url is required", got.Error)
	}
	scanner.AssertNotCalled(t, "PerformAudit", mock.Anything, mock.Anything)
}

func TestQuickAudit_InvalidBody(t *testing.T) {
	h := NewHandler(new(mockScanner), new(mockRenderer), new(mockDispatcher))

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.QuickAudit(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuickAudit_UpstreamFailure(t *testing.T) {
	scanner := new(mockScanner)
	scanner.On("PerformAudit", mock.Anything, "https://example.com").
		Return(domain.AuditResult{}, apperr.New(apperr.UpstreamAuditFailure, "target unreachable"))

	h := NewHandler(scanner, new(mockRenderer), new(mockDispatcher))
	rec := postJSON(t, h.QuickAudit, api.AuditRequest{URL: "example.com"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	got := decodeAs[api.ErrorResponse](t, rec)
	assert.Equal(t, "audit failed", got.Error)
	assert.Equal(t, "target unreachable", got.Details)
}

func TestQuickAudit_MissingConfigurationStaysGeneric(t *testing.T) {
	scanner := new(mockScanner)
	scanner.On("PerformAudit", mock.Anything, mock.Anything).
		Return(domain.AuditResult{}, apperr.New(apperr.MissingConfiguration, "scanner API key is not configured"))

	h := NewHandler(scanner, new(mockRenderer), new(mockDispatcher))
	rec := postJSON(t, h.QuickAudit, api.AuditRequest{URL: "example.com"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	got := decodeAs[api.ErrorResponse](t, rec)
	assert.Equal(t, "internal error", got.Error)
	assert.NotContains(t, rec.Body.String(), "API key")
}

func TestSendReport_FullPipeline(t *testing.T) {
	scanner := new(mockScanner)
	renderer := new(mockRenderer)
	dispatcher := new(mockDispatcher)

	raw := upstreamResult()
	scanner.On("PerformAudit", mock.Anything, "https://example.com").Return(raw, nil)

	pdfDoc := []byte("%PDF-1.4 report")
	renderer.On("Render", mock.MatchedBy(func(r domain.AuditResult) bool {
		// The renderer receives the unfiltered result with a recomputed total.
		return len(r.Findings) == 2 && r.Summary.TotalFindings == 2
	}), "fr").Return(pdfDoc, nil)

	dispatcher.On("SendReport", mock.Anything, mock.Anything, pdfDoc, "ops@example.com", "fr").
		Return(nil)

	h := NewHandler(scanner, renderer, dispatcher)
	rec := postJSON(t, h.SendReport, api.ReportRequest{URL: "example.com", Email: "ops@example.com"})

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeAs[api.SendResponse](t, rec)
	assert.True(t, got.Success)

	scanner.AssertExpectations(t)
	renderer.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestSendReport_DomainMismatchBeforeAudit(t *testing.T) {
	scanner := new(mockScanner)
	renderer := new(mockRenderer)
	dispatcher := new(mockDispatcher)

	h := NewHandler(scanner, renderer, dispatcher)
	rec := postJSON(t, h.SendReport, api.ReportRequest{URL: "example.com", Email: "ops@otherdomain.com"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	got := decodeAs[api.ErrorResponse](t, rec)
	assert.Equal(t, "email must match audited domain", got.Error)

	// No audit call is wasted and no PDF is generated on a mismatch.
	scanner.AssertNotCalled(t, "PerformAudit", mock.Anything, mock.Anything)
	renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
	dispatcher.AssertNotCalled(t, "SendReport", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendReport_DomainMismatchAfterRedirect(t *testing.T) {
	scanner := new(mockScanner)
	renderer := new(mockRenderer)
	dispatcher := new(mockDispatcher)

	// The submitted domain matches the email, but the scanner followed a
	// redirect and actually audited a different site.
	redirected := upstreamResult()
	redirected.URL = "https://acquired-by.example.net"
	scanner.On("PerformAudit", mock.Anything, "https://example.com").Return(redirected, nil)

	h := NewHandler(scanner, renderer, dispatcher)
	rec := postJSON(t, h.SendReport, api.ReportRequest{URL: "example.com", Email: "ops@example.com"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	got := decodeAs[api.ErrorResponse](t, rec)
	assert.Equal(t, "email must match audited domain", got.Error)

	renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
	dispatcher.AssertNotCalled(t, "SendReport", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendReport_MissingFields(t *testing.T) {
	h := NewHandler(new(mockScanner), new(mockRenderer), new(mockDispatcher))

	tests := []struct {
		name    string
		request api.ReportRequest
		message string
	}{
		{name: "NoURL", request: api.ReportRequest{Email: "ops@example.com"}, message: "url is required"},
		{name: "NoEmail", request: api.ReportRequest{URL: "example.com"}, message: "email is required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, h.SendReport, tc.request)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			got := decodeAs[api.ErrorResponse](t, rec)
			assert.Equal(t, tc.message, got.Error)
		})
	}
}

func TestSendReport_DeliveryFailure(t *testing.T) {
	scanner := new(mockScanner)
	renderer := new(mockRenderer)
	dispatcher := new(mockDispatcher)

	scanner.On("PerformAudit", mock.Anything, mock.Anything).Return(upstreamResult(), nil)
	renderer.On("Render", mock.Anything, mock.Anything).Return([]byte("%PDF-"), nil)
	dispatcher.On("SendReport", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(apperr.New(apperr.EmailDeliveryFailure, "provider quota exceeded"))

	h := NewHandler(scanner, renderer, dispatcher)
	rec := postJSON(t, h.SendReport, api.ReportRequest{URL: "example.com", Email: "ops@example.com"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	got := decodeAs[api.ErrorResponse](t, rec)
	assert.Equal(t, "email delivery failed", got.Error)
	assert.Equal(t, "provider quota exceeded", got.Details)
}

func TestContact_Enrolls(t *testing.T) {
	dispatcher := new(mockDispatcher)
	dispatcher.On("EnrollContact", mock.Anything, "lead@company.fr").Return(nil)

	h := NewHandler(new(mockScanner), new(mockRenderer), dispatcher)
	rec := postJSON(t, h.Contact, api.ContactRequest{Email: "lead@company.fr", Name: "Lead"})

	assert.Equal(t, http.StatusOK, rec.Code)
	dispatcher.AssertExpectations(t)
}

func TestContact_InvalidEmail(t *testing.T) {
	dispatcher := new(mockDispatcher)
	h := NewHandler(new(mockScanner), new(mockRenderer), dispatcher)

	for _, email := range []string{"", "  ", "not-an-email"} {
		rec := postJSON(t, h.Contact, api.ContactRequest{Email: email})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
	dispatcher.AssertNotCalled(t, "EnrollContact", mock.Anything, mock.Anything)
}
