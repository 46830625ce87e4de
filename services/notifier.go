// services/notifier.go
package services

import (
	"log"
	"os"
	"strconv"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gopkg.in/gomail.v2"
)

// Notifier hands messages to the outside world. Both methods report
// whether the hand-off succeeded; they never panic and never block order
// persistence.
type Notifier interface {
	SendEmail(to, subject, body string) bool
	SendSMS(to, body string) bool
}

// TransportNotifier sends email over SMTP and SMS via Twilio. When Twilio
// credentials are absent the SMS channel degrades to a log-only stub so
// local and staging environments work without an account.
type TransportNotifier struct {
	client     *twilio.RestClient
	smsEnabled bool
}

func NewTransportNotifier() *TransportNotifier {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	n := &TransportNotifier{smsEnabled: accountSid != "" && authToken != ""}
	if n.smsEnabled {
		n.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		})
	} else {
		log.Println("Twilio credentials not set, SMS channel is log-only")
	}
	return n
}

func (n *TransportNotifier) SendEmail(to, subject, body string) bool {
	host := os.Getenv("SMTP_HOST")
	portStr := os.Getenv("SMTP_PORT")
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")

	port, _ := strconv.Atoi(portStr)

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(host, port, username, password)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
		return false
	}
	return true
}

func (n *TransportNotifier) SendSMS(to, body string) bool {
	if !n.smsEnabled {
		log.Printf("[SMS stub] to=%s body=%q", to, body)
		return true
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(body)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send SMS to %s: %v", to, err)
		return false
	}
	if resp.Sid != nil {
		log.Printf("SMS sent to %s, SID: %s", to, *resp.Sid)
	}
	return true
}
