// Package email provides the email client for dispatching build requests.
package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/resendlabs/resend-go"
)

// BuildRequestMessage is the structured payload handed to the email sink
type BuildRequestMessage struct {
	RequestID    string
	ContactName  string
	ContactEmail string
	ContactPhone string
	TemplateName string
	SiteName     string
	BrandColor   string
	Notes        string
	ShareLink    string
}

// Service defines the interface for sending build requests, allowing mock
// implementations in tests.
type Service interface {
	SendBuildRequest(msg BuildRequestMessage) error
}

// ResendClient is the concrete implementation of Service using the Resend API
type ResendClient struct {
	client    *resend.Client
	fromEmail string
	toEmail   string
}

// NewService creates a new email service client
func NewService(apiKey, fromEmail, toEmail string) (Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}
	if fromEmail == "" {
		fromEmail = "noreply@atriskmedia.com"
	}

	return &ResendClient{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		toEmail:   toEmail,
	}, nil
}

var buildRequestTemplate = template.Must(template.New("buildRequest").Parse(`
<h2>New microsite build request</h2>
<p>Request {{.RequestID}}</p>
<table cellpadding="6">
  <tr><td><strong>Contact</strong></td><td>{{.ContactName}} &lt;{{.ContactEmail}}&gt; {{.ContactPhone}}</td></tr>
  <tr><td><strong>Template</strong></td><td>{{.TemplateName}}</td></tr>
  <tr><td><strong>Site name</strong></td><td>{{.SiteName}}</td></tr>
  <tr><td><strong>Brand color</strong></td><td>{{.BrandColor}}</td></tr>
  <tr><td><strong>Notes</strong></td><td>{{.Notes}}</td></tr>
</table>
<p><a href="{{.ShareLink}}">Open the customized preview</a></p>
`))

// SendBuildRequest composes and sends the build-request email
func (c *ResendClient) SendBuildRequest(msg BuildRequestMessage) error {
	var body bytes.Buffer
	if err := buildRequestTemplate.Execute(&body, msg); err != nil {
		return fmt.Errorf("failed to render build request email: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Microsite Builder <%s>", c.fromEmail),
		To:      []string{c.toEmail},
		ReplyTo: msg.ContactEmail,
		Subject: fmt.Sprintf("Build request: %s", msg.SiteName),
		Html:    body.String(),
	}

	if _, err := c.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send build request via Resend: %w", err)
	}
	return nil
}
