package mailing

import (
	"bytes"
	"html/template"
	"strconv"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"recipe-hub/internal/utils"
)

type (
	Mailer interface {
		SendMail(toEmail string, subject string, body string) error
	}

	MailConfig struct {
		AppURL       string
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
	}

	smtpMailer struct {
		cfg MailConfig
	}

	noopMailer struct{}
)

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

// NewMailer returns an SMTP mailer, or one that drops messages when no
// SMTP host is configured.
func NewMailer(cfg MailConfig) Mailer {
	if cfg.SMTPHost == "" {
		log.Warn().Msg("SMTP_HOST not set, outgoing mail is disabled")
		return noopMailer{}
	}
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) SendMail(toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetAddressHeader("From", m.cfg.SMTPEmail, m.cfg.SMTPSender)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	port, err := strconv.Atoi(m.cfg.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		m.cfg.SMTPHost,
		port,
		m.cfg.SMTPEmail,
		m.cfg.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

func (noopMailer) SendMail(toEmail string, subject string, _ string) error {
	log.Debug().Str("to", toEmail).Str("subject", subject).Msg("mail dropped, mailer disabled")
	return nil
}

var shareTemplate = template.Must(template.New("share").Parse(`<p>Hi {{.ToName}},</p>
<p>{{.FromName}} shared the recipe <strong>{{.Title}}</strong> with you.</p>
{{if .Message}}<blockquote>{{.Message}}</blockquote>{{end}}
<p><a href="{{.Link}}">Open the recipe</a></p>`))

type ShareEmailData struct {
	ToName   string
	FromName string
	Title    string
	Message  string
	Link     string
}

func BuildShareEmail(data ShareEmailData) (string, error) {
	var buf bytes.Buffer
	if err := shareTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
