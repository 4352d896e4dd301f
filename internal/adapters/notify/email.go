package notify

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"heavygym/internal/adapters/email"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

var coachTemplate = template.Must(template.New("coach").Funcs(template.FuncMap{
	"injuries": func(p *string) string {
		if p == nil || strings.TrimSpace(*p) == "" {
			return "Inga"
		}
		return *p
	},
}).Parse(`## Ny träningsprofil

**{{.FullName}}** ({{.Email}}) har slutfört onboarding.

| Fält | Värde |
|---|---|
| Ålder | {{.Age}} |
| Kön | {{.Gender}} |
| Längd | {{.HeightCm}} cm |
| Vikt | {{.WeightKg}} kg |
| Mål | {{.TrainingGoal}} |
| Erfarenhet | {{.ExperienceLevel}} |
| Träningsplats | {{.EquipmentAccess}} |

Skador eller begränsningar:
{{injuries .Injuries}}

Skickat {{.Timestamp.Format "2006-01-02 15:04"}} UTC
`))

// EmailNotifier emails the submission to the coach inbox.
type EmailNotifier struct {
	sender email.Sender
	to     string
}

// Compile-time check that *EmailNotifier satisfies Notifier.
var _ Notifier = (*EmailNotifier)(nil)

// NewEmailNotifier creates an EmailNotifier.
// PRE: sender is non-nil; to is the coach address
func NewEmailNotifier(sender email.Sender, to string) *EmailNotifier {
	return &EmailNotifier{sender: sender, to: to}
}

// Notify renders the submission and sends it.
// POST: failures wrap ErrEmailDeliveryFailed and keep the cause in the chain
func (n *EmailNotifier) Notify(ctx context.Context, s Submission) error {
	html, err := RenderSubmission(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEmailDeliveryFailed, err)
	}
	if _, err := n.sender.Send(ctx, email.SendRequest{
		To:      []string{n.to},
		Subject: "Ny träningsprofil: " + s.FullName,
		HTML:    html,
		ReplyTo: s.Email,
		Tags:    map[string]string{"category": "onboarding", "user_id": tagValue(s.UserID)},
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrEmailDeliveryFailed, err)
	}
	return nil
}

// tagValue replaces characters the provider rejects in tag values.
func tagValue(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return '_'
	}, s)
}

// RenderSubmission produces the HTML body of the coach email.
func RenderSubmission(s Submission) (string, error) {
	var md bytes.Buffer
	if err := coachTemplate.Execute(&md, s); err != nil {
		return "", fmt.Errorf("render coach template: %w", err)
	}
	var out bytes.Buffer
	if err := mdRenderer.Convert(md.Bytes(), &out); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out.String(), nil
}
