package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"masshouse/config"

	logger "github.com/Bparsons0904/goLogger"
)

const resendEndpoint = "https://api.resend.com/emails"

type EmailKind string

const (
	EmailIssueConfirmation   EmailKind = "issue_confirmation"
	EmailParkingConfirmation EmailKind = "parking_confirmation"
	EmailMeterConfirmation   EmailKind = "meter_confirmation"
	EmailAdminDigest         EmailKind = "admin_digest"
)

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// NotificationService delivers confirmation emails through Resend. Delivery
// is best effort: a failed send is logged and never fails the operation that
// triggered it.
type NotificationService struct {
	apiKey string
	from   string
	client *http.Client
	log    logger.Logger
}

func NewNotificationService(config config.Config) *NotificationService {
	return &NotificationService{
		apiKey: config.ResendAPIKey,
		from:   config.EmailFrom,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    logger.New("notificationService"),
	}
}

// Enabled reports whether outbound email is configured.
func (s *NotificationService) Enabled() bool {
	return s.apiKey != ""
}

// SendAsync fires the email on a fresh goroutine so submission latency never
// includes the provider round trip.
func (s *NotificationService) SendAsync(kind EmailKind, to string, data map[string]string) {
	if !s.Enabled() {
		s.log.Debug("email delivery disabled, skipping", "kind", kind, "to", to)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := s.Send(ctx, kind, to, data); err != nil {
			s.log.Er("best-effort email delivery failed", err, "kind", kind, "to", to)
		}
	}()
}

func (s *NotificationService) Send(
	ctx context.Context,
	kind EmailKind,
	to string,
	data map[string]string,
) error {
	log := s.log.Function("Send")

	if !s.Enabled() {
		return log.ErrMsg("email delivery is not configured")
	}

	subject, html := buildEmail(kind, data)

	payload, err := json.Marshal(resendRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return log.Err("failed to marshal email payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(payload))
	if err != nil {
		return log.Err("failed to build email request", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return log.Err("failed to call email provider", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 300 {
		return log.Error("email provider returned error", "status", resp.StatusCode, "kind", kind)
	}

	log.Info("email sent", "kind", kind, "to", to)
	return nil
}

func buildEmail(kind EmailKind, data map[string]string) (subject string, html string) {
	switch kind {
	case EmailIssueConfirmation:
		subject = fmt.Sprintf("Issue Report Received - %s", data["reference_number"])
		html = confirmationHTML(
			"Building Issue Report Confirmation",
			data["resident_name"],
			"We have received your issue report and our team will review it shortly.",
			data["reference_number"],
		)
	case EmailParkingConfirmation:
		subject = fmt.Sprintf("Guest Parking Booking - %s", data["booking_reference"])
		html = confirmationHTML(
			"Guest Parking Booking Confirmation",
			data["resident_name"],
			"We have received your guest parking request. You will be notified once it has been reviewed.",
			data["booking_reference"],
		)
	case EmailMeterConfirmation:
		subject = fmt.Sprintf("Meter Reading Request - %s", data["reference_number"])
		html = confirmationHTML(
			"Meter Reading Request Confirmation",
			data["resident_name"],
			"We have received your meter reading request and will be in touch to arrange access.",
			data["reference_number"],
		)
	case EmailAdminDigest:
		subject = "Masshouse RTM - Open Requests Digest"
		html = fmt.Sprintf(
			`<h2>Open requests</h2><ul><li>Open issues: %s</li><li>Pending parking bookings: %s</li><li>Pending meter readings: %s</li></ul>`,
			data["open_issues"], data["pending_bookings"], data["pending_meter_readings"],
		)
	}
	return subject, html
}

func confirmationHTML(title, residentName, bodyLine, reference string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: #1e3a5f; padding: 30px; text-align: center; border-radius: 8px 8px 0 0;">
    <h1 style="color: white; margin: 0; font-size: 24px;">Masshouse RTM</h1>
    <p style="color: #e0e0e0; margin: 10px 0 0 0; font-size: 14px;">%s</p>
  </div>
  <div style="background: #f8f9fa; padding: 30px; border: 1px solid #e0e0e0; border-top: none;">
    <p>Dear %s,</p>
    <p>%s</p>
    <div style="background: white; border: 2px solid #1e3a5f; border-radius: 8px; padding: 20px; margin: 20px 0; text-align: center;">
      <p style="margin: 0 0 5px 0; font-size: 14px; color: #666;">Your Reference Number</p>
      <p style="margin: 0; font-size: 28px; font-weight: bold; color: #1e3a5f;">%s</p>
    </div>
    <p style="color: #666; font-size: 14px;">Keep this reference to check on your request. Updates will be sent to this email address.</p>
  </div>
</body>
</html>`, title, residentName, bodyLine, reference)
}
