package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/Dan9191/finance-dashboard/internal/config"
	"github.com/Dan9191/finance-dashboard/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendSmartBuyDigest emails the watchlist items that scored high enough to
// recommend buying now
func (s *Sender) SendSmartBuyDigest(to string, hits []models.PricePrediction) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Smart Buy Alert: %d item(s) worth buying now", len(hits))

	body := fmt.Sprintf("Smart buy digest for %s\n\n", time.Now().Format("2006-01-02"))
	for _, hit := range hits {
		body += fmt.Sprintf(
			"%s\n"+
				"  Current price: $%.2f, 30-day forecast: $%.2f (%s)\n"+
				"  Smart buy score: %.1f/10, expected savings: $%.2f\n"+
				"  %s\n\n",
			hit.ItemName, hit.CurrentPrice, hit.Predicted30DayPrice, hit.PriceDirection,
			hit.SmartBuyScore, hit.ExpectedSavings, hit.Reasoning,
		)
	}
	body += "Best regards,\nFinance Dashboard"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	err := e.Send(addr, auth)
	if err != nil {
		s.logger.Errorf("Failed to send digest to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
