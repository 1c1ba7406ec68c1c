package mailer

import (
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"waterbill-server/confs"
)

// SMTPNotifier sends OTP mail through a plain SMTP relay.
type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
	logger zerolog.Logger
}

func NewSMTPNotifier(cfg *confs.Config, logger zerolog.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
		logger: logger,
	}
}

func (n *SMTPNotifier) SendOTP(email, name, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", n.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", otpSubject)
	msg.SetBody("text/html", otpHTML(name, code))

	if err := n.dialer.DialAndSend(msg); err != nil {
		n.logger.Error().Err(err).Str("to", email).Msg("failed to send OTP email")
		return err
	}
	return nil
}
