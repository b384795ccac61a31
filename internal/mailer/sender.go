package mailer

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// ErrNotConfigured is returned when the SMTP transport has no host set.
// Callers treat it like any other transport failure: log and move on.
var ErrNotConfigured = errors.New("smtp transport is not configured")

type Attachment struct {
	Filename string
	MIME     string
	Content  []byte
}

type Message struct {
	To         []string
	Subject    string
	TextBody   string
	HTMLBody   string
	Attachment *Attachment
}

//go:generate mockgen -source=sender.go -destination=mock/sender_mock.go -package=mock
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type gomailSender struct {
	host   string
	port   int
	user   string
	from   string
	dialer *gomail.Dialer
	logger *zap.Logger
}

func NewGomailSender(host string, port int, user, password, from string, logger ...*zap.Logger) Sender {
	l := zap.L().Named("mailer.sender")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("mailer.sender")
	}
	return &gomailSender{
		host:   host,
		port:   port,
		user:   user,
		from:   from,
		dialer: gomail.NewDialer(host, port, user, password),
		logger: l,
	}
}

func (s *gomailSender) Send(ctx context.Context, msg Message) error {
	if s.host == "" {
		s.logger.Warn("email not sent, smtp transport is not configured")
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)

	if msg.TextBody != "" {
		m.SetBody("text/plain", msg.TextBody)
		if msg.HTMLBody != "" {
			m.AddAlternative("text/html", msg.HTMLBody)
		}
	} else {
		m.SetBody("text/html", msg.HTMLBody)
	}

	if msg.Attachment != nil {
		att := msg.Attachment
		m.Attach(att.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(att.Content)
				return err
			}),
			gomail.SetHeader(map[string][]string{
				"Content-Type": {att.MIME},
			}),
		)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("send email failed",
			zap.Strings("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("email sent",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
