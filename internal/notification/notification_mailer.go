package notification

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"go-grafik/internal/config"
	notificationerrors "go-grafik/internal/notification/errors"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Mail is a plain-text message addressed to every recipient at once.
type Mail struct {
	To      []string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

// SMTPMailer delivers through one SMTP session per mail. Timeout bounds
// the dial and every command; a context deadline also bounds the dial and
// the server greeting.
type SMTPMailer struct {
	host    string
	port    int
	from    string
	user    string
	pass    string
	timeout time.Duration
	now     func() time.Time
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SMTPMailer{
		host:    cfg.Host,
		port:    cfg.Port,
		from:    cfg.From,
		user:    cfg.User,
		pass:    cfg.Password,
		timeout: timeout,
		now:     time.Now,
	}
}

func (m *SMTPMailer) client() (*gomail.Client, error) {
	opts := []gomail.Option{
		gomail.WithPort(m.port),
		gomail.WithTimeout(m.timeout),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
		gomail.WithDialContextFunc(dialWithDeadline),
	}
	if m.user != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.user),
			gomail.WithPassword(m.pass),
		)
	}
	return gomail.NewClient(m.host, opts...)
}

func (m *SMTPMailer) Send(ctx context.Context, mail Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := buildMessage(m.from, mail, m.now())
	if err != nil {
		return err
	}
	c, err := m.client()
	if err != nil {
		return err
	}
	return c.DialAndSendWithContext(ctx, msg)
}

// dialWithDeadline carries the dial context deadline onto the connection so
// a server that never greets cannot hold the session open.
func dialWithDeadline(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}
	return conn, nil
}

func hasLineBreak(values ...string) bool {
	for _, v := range values {
		if strings.ContainsAny(v, "\r\n") {
			return true
		}
	}
	return false
}

// buildMessage renders a plain-text message with a UTF-8 quoted-printable body.
func buildMessage(from string, mail Mail, date time.Time) (*gomail.Msg, error) {
	if len(mail.To) == 0 {
		return nil, notificationerrors.ErrNoRecipients
	}
	if hasLineBreak(from, mail.Subject) || hasLineBreak(mail.To...) {
		return nil, notificationerrors.ErrInvalidHeader
	}

	msg := gomail.NewMsg(gomail.WithEncoding(gomail.EncodingQP), gomail.WithCharset(gomail.CharsetUTF8))
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("sender %q: %w", from, err)
	}
	if err := msg.To(mail.To...); err != nil {
		return nil, fmt.Errorf("%w: recipients: %v", notificationerrors.ErrInvalidHeader, err)
	}
	msg.Subject(mail.Subject)
	msg.SetDateWithValue(date)
	msg.SetBodyString(gomail.TypeTextPlain, mail.Body)
	return msg, nil
}

// LogMailer only logs. Used when no SMTP server is configured.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger ...*zap.Logger) *LogMailer {
	l := zap.L().Named("notification.mailer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.mailer")
	}
	return &LogMailer{logger: l}
}

func (m *LogMailer) Send(_ context.Context, mail Mail) error {
	m.logger.Info("smtp disabled, mail not sent",
		zap.Strings("to", mail.To),
		zap.String("subject", mail.Subject),
	)
	return nil
}

// NewMailer picks SMTP delivery when it is configured.
func NewMailer(cfg config.SMTPConfig, logger ...*zap.Logger) Mailer {
	if cfg.Enabled() {
		return NewSMTPMailer(cfg)
	}
	return NewLogMailer(logger...)
}
