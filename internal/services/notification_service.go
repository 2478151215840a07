// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/designly/marketplace-backend/internal/config"
	"github.com/designly/marketplace-backend/internal/models"
)

// NotificationService sends transactional email. Callers treat every send
// as best effort; nothing here is allowed to block or fail a purchase.
type NotificationService struct {
	db  *gorm.DB
	cfg *config.Config
}

type emailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(db *gorm.DB, cfg *config.Config) *NotificationService {
	return &NotificationService{
		db:  db,
		cfg: cfg,
	}
}

func (s *NotificationService) SendWelcomeEmail(user *models.User) error {
	tmpl := s.getEmailTemplate("welcome")

	data := map[string]interface{}{
		"Username":     user.Username,
		"PlatformName": "Designly",
		"ProfileURL":   fmt.Sprintf("%s/artists/%s", s.cfg.Frontend.BaseURL, user.ID),
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, tmpl.Subject, body)
}

// SendPurchaseReceipt emails the buyer their receipt with the fee split
// taken from the ledger row.
func (s *NotificationService) SendPurchaseReceipt(purchaseID uuid.UUID) error {
	var purchase models.Purchase
	if err := s.db.Preload("Buyer").Preload("Design").
		First(&purchase, "id = ?", purchaseID).Error; err != nil {
		return fmt.Errorf("purchase not found: %w", err)
	}

	tmpl := s.getEmailTemplate("purchase_receipt")

	data := map[string]interface{}{
		"BuyerName":   purchase.Buyer.Username,
		"DesignTitle": purchase.Design.Title,
		"Amount":      purchase.Amount.StringFixed(2),
		"TxRef":       purchase.TransactionHash,
		"DownloadURL": fmt.Sprintf("%s/designs/%s", s.cfg.Frontend.BaseURL, purchase.DesignID),
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(purchase.Buyer.Email, tmpl.Subject, body)
}

// SendSaleNotification emails the design's creator about the sale and their
// payout.
func (s *NotificationService) SendSaleNotification(purchaseID uuid.UUID) error {
	var purchase models.Purchase
	if err := s.db.Preload("Design").Preload("Design.Creator").
		First(&purchase, "id = ?", purchaseID).Error; err != nil {
		return fmt.Errorf("purchase not found: %w", err)
	}

	tmpl := s.getEmailTemplate("sale")

	data := map[string]interface{}{
		"CreatorName": purchase.Design.Creator.Username,
		"DesignTitle": purchase.Design.Title,
		"Payout":      purchase.CreatorPayout.StringFixed(2),
		"Fee":         purchase.PlatformFee.StringFixed(2),
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(purchase.Design.Creator.Email, tmpl.Subject, body)
}

func (s *NotificationService) getEmailTemplate(name string) emailTemplate {
	switch name {
	case "welcome":
		return emailTemplate{
			Subject: "Welcome to Designly",
			Body: `<h2>Welcome, {{.Username}}!</h2>
<p>Your {{.PlatformName}} account is ready. Set up your profile at <a href="{{.ProfileURL}}">{{.ProfileURL}}</a>.</p>`,
		}
	case "purchase_receipt":
		return emailTemplate{
			Subject: "Your Designly purchase",
			Body: `<h2>Thanks for your purchase, {{.BuyerName}}!</h2>
<p>You bought <strong>{{.DesignTitle}}</strong> for ${{.Amount}}.</p>
<p>Reference: {{.TxRef}}</p>
<p>Download any time from <a href="{{.DownloadURL}}">your library</a>.</p>`,
		}
	case "sale":
		return emailTemplate{
			Subject: "You made a sale on Designly",
			Body: `<h2>Congratulations, {{.CreatorName}}!</h2>
<p><strong>{{.DesignTitle}}</strong> just sold. Your payout is ${{.Payout}} (platform fee ${{.Fee}}).</p>`,
		}
	default:
		return emailTemplate{
			Subject: "Designly notification",
			Body:    `<p>{{.Message}}</p>`,
		}
	}
}

func (s *NotificationService) renderTemplate(body string, data map[string]interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(body)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.cfg.Email.SMTPUsername == "" {
		// SMTP unconfigured in local development.
		return nil
	}

	auth := smtp.PlainAuth("", s.cfg.Email.SMTPUsername, s.cfg.Email.SMTPPassword, s.cfg.Email.SMTPHost)

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.cfg.Email.FromName, s.cfg.Email.FromEmail, to, subject, body)

	addr := fmt.Sprintf("%s:%s", s.cfg.Email.SMTPHost, s.cfg.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.cfg.Email.FromEmail, []string{to}, []byte(msg))
}
