package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/tutorhub/booking-service/internal/usecase"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	OpsEmail string
}

func NewEmailSender(host string, port int, user, password, from, opsEmail string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		OpsEmail: opsEmail,
	}
}

// SendLeadAlert emails the ops inbox about a captured or re-engaged
// lead. Called from the queue worker, never from the webhook path.
func (s *EmailSender) SendLeadAlert(n usecase.LeadNotification) error {
	subject := fmt.Sprintf("New lead: %s", n.Name)
	if n.Kind == usecase.NotificationRepeatLead {
		subject = fmt.Sprintf("Repeat booking from lead: %s", n.Name)
	}

	body := fmt.Sprintf(
		"%s (%s) booked a %s.\n\nFamily: https://console.tutorhub.app/families/%s\n",
		n.Name, n.Email, n.EventType, n.FamilyID,
	)

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.OpsEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send lead alert: %w", err)
	}
	return nil
}
