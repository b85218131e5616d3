package email

import (
	"fmt"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *zap.Logger
}

func NewEmailService(apiKey, from, fromName string, logger *zap.Logger) *EmailService {
	return &EmailService{
		client:   resend.NewClient(apiKey),
		from:     from,
		fromName: fromName,
		logger:   logger,
	}
}

func (s *EmailService) SendWelcomeEmail(to, fullName string) error {
	html := fmt.Sprintf(`<h2>Welcome, %s!</h2>
<p>Your account is ready. Open the app and start discovering events around you.</p>`, fullName)

	return s.send(to, "Welcome to WhtzUp", html)
}

func (s *EmailService) SendPremiumActivatedEmail(to, fullName, planName string) error {
	html := fmt.Sprintf(`<h2>You're premium now, %s!</h2>
<p>Your %s plan is active. Enjoy editing any event and the extended discovery radius.</p>`, fullName, planName)

	return s.send(to, "Premium activated", html)
}

func (s *EmailService) send(to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.fromName, s.from),
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		s.logger.Error("failed to send email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return err
	}

	return nil
}
