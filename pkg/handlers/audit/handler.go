package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ouestweb/siteaudit/pkg/adapters"
	"github.com/ouestweb/siteaudit/pkg/apperr"
	"github.com/ouestweb/siteaudit/pkg/locale"
	"github.com/ouestweb/siteaudit/pkg/models/api"
	"github.com/ouestweb/siteaudit/pkg/models/domain"
	"github.com/ouestweb/siteaudit/pkg/services/disclosure"
	"github.com/ouestweb/siteaudit/pkg/services/gate"
	"github.com/ouestweb/siteaudit/pkg/services/normalize"
	"github.com/rs/zerolog"
)

type Scanner interface {
	PerformAudit(ctx context.Context, url string) (domain.AuditResult, error)
}

type Renderer interface {
	Render(result domain.AuditResult, lang string) ([]byte, error)
}

type Dispatcher interface {
	SendReport(ctx context.Context, result domain.AuditResult, pdfDoc []byte, email, lang string) error
	EnrollContact(ctx context.Context, email string) error
}

type Handler struct {
	scanner    Scanner
	renderer   Renderer
	dispatcher Dispatcher
}

func NewHandler(scanner Scanner, renderer Renderer, dispatcher Dispatcher) *Handler {
	return &Handler{
		scanner:    scanner,
		renderer:   renderer,
		dispatcher: dispatcher,
	}
}

// QuickAudit runs an audit and returns the public-channel view: medium and
// low findings only, with the true critical/high counts disclosed as
// numbers but never as findings.
func (h *Handler) QuickAudit(w http.ResponseWriter, r *http.Request) {
	var req api.AuditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	url := normalize.URL(req.URL)
	if url == "" {
		writeError(w, r, apperr.New(apperr.Validation, "url is required"))
		return
	}

	raw, err := h.scanner.PerformAudit(r.Context(), url)
	if err != nil {
		writeError(w, r, err)
		return
	}

	public := disclosure.FilterPublic(raw)
	writeJSON(w, r, http.StatusOK, adapters.MapAuditResultDomainToApi(public))
}

// SendReport runs the full-report pipeline: domain gate on the submitted
// URL, audit, domain gate again on the URL the scanner actually audited
// (redirects may land elsewhere), PDF render, then email delivery. Both
// gate checks must pass before any finding leaves the server.
func (h *Handler) SendReport(w http.ResponseWriter, r *http.Request) {
	var req api.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	url := normalize.URL(req.URL)
	if url == "" {
		writeError(w, r, apperr.New(apperr.Validation, "url is required"))
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeError(w, r, apperr.New(apperr.Validation, "email is required"))
		return
	}
	lang := locale.Normalize(req.Lang)

	// First gate: reject obvious mismatches before spending an audit call.
	if !gate.Validate(req.Email, url) {
		writeError(w, r, apperr.New(apperr.DomainMismatch, "email must match audited domain"))
		return
	}

	raw, err := h.scanner.PerformAudit(r.Context(), url)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Second gate: the scanner reports the URL it actually audited, which
	// may differ after redirects. The report goes only to whoever controls
	// that domain.
	if !gate.Validate(req.Email, raw.URL) {
		writeError(w, r, apperr.New(apperr.DomainMismatch, "email must match audited domain"))
		return
	}

	full := disclosure.FilterFull(raw)

	pdfDoc, err := h.renderer.Render(full, lang)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.dispatcher.SendReport(r.Context(), full, pdfDoc, req.Email, lang); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, api.SendResponse{Success: true})
}

// Contact enrolls a contact-form submitter into the general contact list.
// This list is unrelated to the report recipients list.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	var req api.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		writeError(w, r, apperr.New(apperr.Validation, "a valid email is required"))
		return
	}

	if err := h.dispatcher.EnrollContact(r.Context(), email); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, api.SendResponse{Success: true})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

// writeError maps the typed error taxonomy onto HTTP statuses. The full
// error is logged server-side; clients only ever see the user-safe
// message, never internal exception text.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	resp := api.ErrorResponse{Error: "internal error"}

	if kind, ok := apperr.KindOf(err); ok {
		switch kind {
		case apperr.Validation, apperr.DomainMismatch:
			status = http.StatusBadRequest
			resp.Error = apperr.Message(err)
		case apperr.UpstreamAuditFailure:
			resp.Error = "audit failed"
			if msg := apperr.Message(err); msg != resp.Error {
				resp.Details = msg
			}
		case apperr.EmailDeliveryFailure:
			resp.Error = "email delivery failed"
			if msg := apperr.Message(err); msg != resp.Error {
				resp.Details = msg
			}
		case apperr.ContactEnrollmentFailure:
			resp.Error = "contact enrollment failed"
		case apperr.MissingConfiguration:
			// Operator error: nothing actionable for the caller.
		}
	}

	zerolog.Ctx(r.Context()).Error().
		Err(err).
		Int("status", status).
		Str("path", r.URL.Path).
		Msg("request failed")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		zerolog.Ctx(r.Context()).Error().Err(encodeErr).Msg("failed to encode error response")
	}
}
