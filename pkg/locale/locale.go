// Package locale holds the localized strings the report pipeline needs:
// finding titles and descriptions keyed by finding type, PDF labels, and
// the email templates. French is the primary language of the product;
// unknown languages fall back to it.
package locale

// FindingText is the localized title/description pair for a finding type.
type FindingText struct {
	Title       string
	Description string
}

const (
	LangFR = "fr"
	LangEN = "en"
)

// Normalize maps any user-supplied language tag onto a supported one.
func Normalize(lang string) string {
	switch lang {
	case LangFR, LangEN:
		return lang
	default:
		return LangFR
	}
}

var findingTexts = map[string]map[string]FindingText{
	LangFR: {
		"tls_weak": {
			Title:       "Configuration TLS affaiblie",
			Description: "Le serveur accepte des protocoles ou suites cryptographiques obsolètes, exposant les échanges à une interception.",
		},
		"header_missing": {
			Title:       "En-tête de sécurité manquant",
			Description: "Un en-tête de sécurité HTTP recommandé est absent de la réponse du serveur.",
		},
		"csp_missing": {
			Title:       "Content-Security-Policy absente",
			Description: "Aucune politique de sécurité du contenu n'est déclarée, ce qui facilite l'injection de scripts.",
		},
		"cookie_insecure": {
			Title:       "Cookie sans attributs de sécurité",
			Description: "Un cookie est émis sans les attributs Secure ou HttpOnly.",
		},
		"mixed_content": {
			Title:       "Contenu mixte",
			Description: "Des ressources sont chargées en HTTP non chiffré depuis une page HTTPS.",
		},
		"outdated_software": {
			Title:       "Logiciel serveur obsolète",
			Description: "Une version de logiciel exposée publiquement n'est plus maintenue ou comporte des vulnérabilités connues.",
		},
		"open_redirect": {
			Title:       "Redirection ouverte",
			Description: "Une page redirige vers une destination contrôlable par l'utilisateur.",
		},
		"sql_injection": {
			Title:       "Injection SQL",
			Description: "Un paramètre permet d'altérer une requête vers la base de données.",
		},
		"xss_reflected": {
			Title:       "XSS réfléchi",
			Description: "Un paramètre est restitué dans la page sans échappement suffisant.",
		},
		"server_banner": {
			Title:       "Bannière serveur exposée",
			Description: "Le serveur divulgue sa version dans les en-têtes de réponse.",
		},
	},
	LangEN: {
		"tls_weak": {
			Title:       "Weak TLS configuration",
			Description: "The server accepts obsolete protocols or cipher suites, exposing traffic to interception.",
		},
		"header_missing": {
			Title:       "Missing security header",
			Description: "A recommended HTTP security header is absent from the server response.",
		},
		"csp_missing": {
			Title:       "Missing Content-Security-Policy",
			Description: "No content security policy is declared, making script injection easier.",
		},
		"cookie_insecure": {
			Title:       "Cookie without security attributes",
			Description: "A cookie is set without the Secure or HttpOnly attributes.",
		},
		"mixed_content": {
			Title:       "Mixed content",
			Description: "Resources are loaded over plain HTTP from an HTTPS page.",
		},
		"outdated_software": {
			Title:       "Outdated server software",
			Description: "A publicly exposed software version is unmaintained or has known vulnerabilities.",
		},
		"open_redirect": {
			Title:       "Open redirect",
			Description: "A page redirects to a destination the user can control.",
		},
		"sql_injection": {
			Title:       "SQL injection",
			Description: "A parameter can alter a database query.",
		},
		"xss_reflected": {
			Title:       "Reflected XSS",
			Description: "A parameter is echoed into the page without sufficient escaping.",
		},
		"server_banner": {
			Title:       "Exposed server banner",
			Description: "The server discloses its version in response headers.",
		},
	},
}

var labels = map[string]map[string]string{
	LangFR: {
		"pdf.title":         "Rapport d'audit de sécurité",
		"pdf.audited_url":   "URL auditée",
		"pdf.summary":       "Synthèse",
		"pdf.total":         "Constats au total",
		"pdf.findings":      "Constats détaillés",
		"pdf.evidence":      "Élément relevé",
		"pdf.no_findings":   "Aucun constat sur ce site.",
		"pdf.footer":        "Rapport confidentiel — réservé à l'exploitant du site audité",
		"severity.critical": "Critique",
		"severity.high":     "Élevée",
		"severity.medium":   "Moyenne",
		"severity.low":      "Faible",
		"severity.info":     "Information",
	},
	LangEN: {
		"pdf.title":         "Security Audit Report",
		"pdf.audited_url":   "Audited URL",
		"pdf.summary":       "Summary",
		"pdf.total":         "Total findings",
		"pdf.findings":      "Detailed findings",
		"pdf.evidence":      "Evidence",
		"pdf.no_findings":   "No findings for this site.",
		"pdf.footer":        "Confidential report — for the audited site's operators only",
		"severity.critical": "Critical",
		"severity.high":     "High",
		"severity.medium":   "Medium",
		"severity.low":      "Low",
		"severity.info":     "Info",
	},
}

var emailSubjects = map[string]string{
	LangFR: "Votre rapport d'audit de sécurité — {{url}}",
	LangEN: "Your security audit report — {{url}}",
}

var emailBodies = map[string]string{
	LangFR: `<html><body>
<p>Bonjour,</p>
<p>Veuillez trouver ci-joint le rapport complet de l'audit de sécurité de <strong>{{url}}</strong>.</p>
<p>{{total}} constats au total&nbsp;: {{critical}} critiques, {{high}} élevés, {{medium}} moyens, {{low}} faibles, {{info}} informatifs.</p>
<p>Ce rapport est confidentiel et destiné exclusivement à l'exploitant du site audité.</p>
<p>L'équipe sécurité</p>
</body></html>`,
	LangEN: `<html><body>
<p>Hello,</p>
<p>Please find attached the full security audit report for <strong>{{url}}</strong>.</p>
<p>{{total}} findings in total: {{critical}} critical, {{high}} high, {{medium}} medium, {{low}} low, {{info}} informational.</p>
<p>This report is confidential and intended solely for the audited site's operators.</p>
<p>The security team</p>
</body></html>`,
}

// Finding returns the localized text for a finding type. The second return
// is false when no entry exists for the type; callers then fall back to
// the finding's own title and description.
func Finding(lang, findingType string) (FindingText, bool) {
	text, ok := findingTexts[Normalize(lang)][findingType]
	return text, ok
}

// Label returns the localized UI label for key, or the key itself when no
// entry exists, so a missing string stays visible instead of vanishing.
func Label(lang, key string) string {
	if text, ok := labels[Normalize(lang)][key]; ok {
		return text
	}
	return key
}

func EmailSubject(lang string) string {
	return emailSubjects[Normalize(lang)]
}

func EmailBody(lang string) string {
	return emailBodies[Normalize(lang)]
}
