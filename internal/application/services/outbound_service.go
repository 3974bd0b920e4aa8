package services

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/email"
	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/observability/logging"
)

// BuildRequest is the composed outbound payload for a "build my site" ask.
// It is returned to the caller intact even when dispatch fails, so a retry
// does not lose what the user entered.
type BuildRequest struct {
	RequestID    string    `json:"requestId"`
	ContactName  string    `json:"contactName"`
	ContactEmail string    `json:"contactEmail"`
	ContactPhone string    `json:"contactPhone,omitempty"`
	TemplateName string    `json:"templateName"`
	SiteName     string    `json:"siteName"`
	BrandColor   string    `json:"brandColor,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	ShareLink    string    `json:"shareLink"`
	CreatedAt    time.Time `json:"createdAt"`
}

// OutboundService dispatches build requests by email and formats WhatsApp
// share links.
type OutboundService struct {
	email         email.Service
	whatsAppPhone string
	logger        *logging.ChanneledLogger
}

// NewOutboundService creates an outbound service. The email sink may be nil
// when no API key is configured; dispatch then fails with a retryable error.
func NewOutboundService(sink email.Service, whatsAppPhone string, logger *logging.ChanneledLogger) *OutboundService {
	return &OutboundService{
		email:         sink,
		whatsAppPhone: whatsAppPhone,
		logger:        logger,
	}
}

// ComposeBuildRequest assembles the outbound payload with a fresh request id
func (s *OutboundService) ComposeBuildRequest(contactName, contactEmail, contactPhone, templateName, siteName, brandColor, notes, shareLink string) *BuildRequest {
	return &BuildRequest{
		RequestID:    uuid.NewString(),
		ContactName:  contactName,
		ContactEmail: contactEmail,
		ContactPhone: contactPhone,
		TemplateName: templateName,
		SiteName:     siteName,
		BrandColor:   brandColor,
		Notes:        notes,
		ShareLink:    shareLink,
		CreatedAt:    time.Now().UTC(),
	}
}

// SendBuildRequest dispatches a composed request by email. Failures are
// retryable: the request keeps its id and content so the caller can resend.
func (s *OutboundService) SendBuildRequest(req *BuildRequest) error {
	if s.email == nil {
		return fmt.Errorf("build request %s not sent: no email sink configured", req.RequestID)
	}

	msg := email.BuildRequestMessage{
		RequestID:    req.RequestID,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		TemplateName: req.TemplateName,
		SiteName:     req.SiteName,
		BrandColor:   req.BrandColor,
		Notes:        req.Notes,
		ShareLink:    req.ShareLink,
	}

	if err := s.email.SendBuildRequest(msg); err != nil {
		s.logger.Outbound().Error("Build request dispatch failed",
			"requestId", req.RequestID, "error", err.Error())
		return fmt.Errorf("failed to dispatch build request %s: %w", req.RequestID, err)
	}

	s.logger.Outbound().Info("Build request dispatched",
		"requestId", req.RequestID,
		"template", req.TemplateName,
		"siteName", req.SiteName)
	return nil
}

// WhatsAppLink formats a wa.me deep link sharing the preview. The recipient
// phone defaults to the configured studio number when none is given.
func (s *OutboundService) WhatsAppLink(phone, siteName, shareLink string) string {
	if phone == "" {
		phone = s.whatsAppPhone
	}
	phone = strings.TrimPrefix(strings.ReplaceAll(phone, " ", ""), "+")

	message := fmt.Sprintf("Check out my new site%s: %s", siteNameSuffix(siteName), shareLink)
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(message))
}

func siteNameSuffix(siteName string) string {
	if siteName == "" {
		return ""
	}
	return fmt.Sprintf(" %q", siteName)
}
