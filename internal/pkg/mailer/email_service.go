package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendMinutesReady(toEmail, topic, resultsPath string) error
	SendProcessingFailed(toEmail, topic, reason string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendMinutesReady(toEmail, topic, resultsPath string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Meeting minutes ready: %s", topic))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your meeting minutes are ready</h2>
			<p>The recording for <strong>%s</strong> has been processed.</p>
			<p>Transcript, summary and keywords are stored under:</p>
			<p><code>%s</code></p>
			<p>You can now chat with this meeting through the assistant.</p>
		</div>
	`, topic, resultsPath)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send minutes-ready mail to %s: %v\n", toEmail, err)
		return err
	}
	return nil
}

func (s *emailService) SendProcessingFailed(toEmail, topic, reason string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Meeting processing failed: %s", topic))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Processing failed</h2>
			<p>The recording for <strong>%s</strong> could not be processed.</p>
			<p>Reason: %s</p>
			<p>You can retry the upload from the dashboard.</p>
		</div>
	`, topic, reason)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send failure mail to %s: %v\n", toEmail, err)
		return err
	}
	return nil
}
