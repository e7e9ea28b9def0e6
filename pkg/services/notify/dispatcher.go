// Package notify composes the localized report email, attaches the PDF,
// and sends it through the transactional email provider. Report delivery
// is the primary contract; mailing-list enrollment after a send is a
// best-effort side effect that never fails the operation.
package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/ouestweb/siteaudit/pkg/apperr"
	"github.com/ouestweb/siteaudit/pkg/locale"
	"github.com/ouestweb/siteaudit/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	smtpEmailPath = "/v3/smtp/email"
	contactsPath  = "/v3/contacts"

	attachmentPrefix = "audit_securite_"
)

type Config struct {
	BaseURL     string
	APIKey      string
	SenderName  string
	SenderEmail string
	// ReportListID receives recipients of full audit reports;
	// ContactListID receives contact/quote-form submissions. The two lists
	// are unrelated and must never share membership semantics.
	ReportListID  int64
	ContactListID int64
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

type Dispatcher struct {
	cfg  Config
	http *http.Client
}

func NewDispatcher(cfg Config) (*Dispatcher, error) {
	if cfg.APIKey == "" {
		return nil, apperr.New(apperr.MissingConfiguration, "email provider API key is not configured")
	}
	if cfg.BaseURL == "" {
		return nil, apperr.New(apperr.MissingConfiguration, "email provider base URL is not configured")
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Dispatcher{cfg: cfg, http: httpClient}, nil
}

type emailAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type emailAttachment struct {
	Content string `json:"content"`
	Name    string `json:"name"`
}

type sendEmailRequest struct {
	Sender      emailAddress      `json:"sender"`
	To          []emailAddress    `json:"to"`
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent"`
	Attachment  []emailAttachment `json:"attachment,omitempty"`
}

type upsertContactRequest struct {
	Email         string  `json:"email"`
	ListIDs       []int64 `json:"listIds"`
	UpdateEnabled bool    `json:"updateEnabled"`
}

// SendReport emails the PDF report for result to the given address. After
// a successful send the recipient is enrolled into the report mailing
// list; an enrollment failure is logged and swallowed.
func (d *Dispatcher) SendReport(ctx context.Context, result domain.AuditResult, pdfDoc []byte, email, lang string) error {
	vars := map[string]string{
		"url":      result.URL,
		"total":    strconv.Itoa(result.Summary.TotalFindings),
		"critical": strconv.Itoa(result.Summary.Critical),
		"high":     strconv.Itoa(result.Summary.High),
		"medium":   strconv.Itoa(result.Summary.Medium),
		"low":      strconv.Itoa(result.Summary.Low),
		"info":     strconv.Itoa(result.Summary.Info),
	}

	payload := sendEmailRequest{
		Sender:      emailAddress{Name: d.cfg.SenderName, Email: d.cfg.SenderEmail},
		To:          []emailAddress{{Email: email}},
		Subject:     RenderTemplate(locale.EmailSubject(lang), vars),
		HTMLContent: RenderTemplate(locale.EmailBody(lang), vars),
		Attachment: []emailAttachment{{
			Content: base64.StdEncoding.EncodeToString(pdfDoc),
			Name:    AttachmentName(result.URL),
		}},
	}

	if err := d.post(ctx, smtpEmailPath, payload, apperr.EmailDeliveryFailure, "email delivery failed"); err != nil {
		return err
	}

	if err := d.enroll(ctx, email, d.cfg.ReportListID); err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("email", email).
			Int64("list_id", d.cfg.ReportListID).
			Msg("report list enrollment failed")
	}
	return nil
}

// EnrollContact adds a contact-form submitter to the general contact list.
// Unlike the post-report enrollment, failures here propagate: enrollment
// is the primary contract of the contact flow.
func (d *Dispatcher) EnrollContact(ctx context.Context, email string) error {
	return d.enroll(ctx, email, d.cfg.ContactListID)
}

func (d *Dispatcher) enroll(ctx context.Context, email string, listID int64) error {
	payload := upsertContactRequest{
		Email:         email,
		ListIDs:       []int64{listID},
		UpdateEnabled: true,
	}
	return d.post(ctx, contactsPath, payload, apperr.ContactEnrollmentFailure, "contact enrollment failed")
}

func (d *Dispatcher) post(ctx context.Context, path string, payload any, failureKind apperr.Kind, failureMessage string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", d.cfg.APIKey)

	resp, err := d.http.Do(req)
	if err != nil {
		return apperr.Wrap(failureKind, failureMessage, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// The provider's error body may or may not be JSON; both cases must be
	// handled without an unhandled parse error.
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if readErr == nil {
		var providerErr struct {
			Message string `json:"message"`
		}
		if jsonErr := json.Unmarshal(raw, &providerErr); jsonErr == nil && providerErr.Message != "" {
			return apperr.Newf(failureKind, "%s", providerErr.Message)
		}
	}
	return apperr.Newf(failureKind, "%s (status %d)", failureMessage, resp.StatusCode)
}

// RenderTemplate substitutes {{key}} placeholders with their values.
// Literal string replacement only: placeholders without a matching var are
// left untouched.
func RenderTemplate(tmpl string, vars map[string]string) string {
	out := tmpl
	for key, value := range vars {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return out
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// AttachmentName derives the PDF filename from the audited URL, replacing
// every non-alphanumeric character with an underscore.
func AttachmentName(url string) string {
	return attachmentPrefix + nonAlphanumeric.ReplaceAllString(url, "_") + ".pdf"
}
