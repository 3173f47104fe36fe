package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/portfolio/pkg/logger"
)

var ErrMissingCredentials = errors.New("mail user or app password not configured")

// Client is the subset of *smtp.Client used for one send.
type Client interface {
	StartTLS(config *tls.Config) error
	Auth(a smtp.Auth) error
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// DialFunc opens an SMTP session to addr (host:port).
type DialFunc func(ctx context.Context, addr string) (Client, error)

type Config struct {
	Host      string
	Port      int
	User      string
	Password  string
	Recipient string // defaults to User
	Timeout   time.Duration
}

// Mailer relays contact-form submissions to the configured mailbox.
type Mailer struct {
	cfg  Config
	dial DialFunc
	now  func() time.Time
}

type Option func(*Mailer)

func WithDialer(d DialFunc) Option { return func(m *Mailer) { m.dial = d } }

func WithClock(now func() time.Time) Option { return func(m *Mailer) { m.now = now } }

func New(cfg Config, opts ...Option) *Mailer {
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Recipient == "" {
		cfg.Recipient = cfg.User
	}
	m := &Mailer{cfg: cfg, now: time.Now}
	m.dial = m.dialTCP
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Send composes and transmits the contact email. It reports success only;
// every failure is logged and swallowed.
func (m *Mailer) Send(ctx context.Context, fullName, senderEmail, message string) bool {
	if m.cfg.User == "" || m.cfg.Password == "" {
		logger.Warn("contact mail not sent", zap.Error(ErrMissingCredentials))
		return false
	}
	if err := m.send(ctx, fullName, senderEmail, message); err != nil {
		logger.Error("error sending email",
			zap.String("fullname", fullName),
			zap.String("sender", senderEmail),
			zap.Error(err))
		return false
	}
	logger.Info("contact mail sent", zap.String("recipient", m.cfg.Recipient))
	return true
}

func (m *Mailer) send(ctx context.Context, fullName, senderEmail, message string) error {
	ctx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	c, err := m.dial(ctx, addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer c.Close()

	if err := c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
		return fmt.Errorf("starttls: %w", err)
	}
	if err := c.Auth(smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Mail(m.cfg.User); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := c.Rcpt(m.cfg.Recipient); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(m.compose(fullName, senderEmail, message)); err != nil {
		_ = w.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close data: %w", err)
	}
	return c.Quit()
}

// Subject returns the subject line for a submission from fullName.
func Subject(fullName string) string {
	return "New Contact from " + fullName
}

// Body returns the plain-text body of the contact email.
func Body(fullName, senderEmail, message string) string {
	return fmt.Sprintf("You have a new message from your portfolio:\n\nName: %s\nEmail: %s\n\nMessage:\n%s",
		fullName, senderEmail, message)
}

func (m *Mailer) compose(fullName, senderEmail, message string) []byte {
	var buf bytes.Buffer
	header := func(k, v string) { fmt.Fprintf(&buf, "%s: %s\r\n", k, v) }
	header("From", m.cfg.User)
	header("To", m.cfg.Recipient)
	header("Subject", mime.QEncoding.Encode("utf-8", Subject(fullName)))
	header("Date", m.now().Format(time.RFC1123Z))
	header("MIME-Version", "1.0")
	header("Content-Type", `text/plain; charset="utf-8"`)
	header("Content-Transfer-Encoding", "quoted-printable")
	buf.WriteString("\r\n")

	body := strings.ReplaceAll(Body(fullName, senderEmail, message), "\r\n", "\n")
	body = strings.ReplaceAll(body, "\n", "\r\n")
	qp := quotedprintable.NewWriter(&buf)
	_, _ = qp.Write([]byte(body))
	_ = qp.Close()
	return buf.Bytes()
}

func (m *Mailer) dialTCP(ctx context.Context, addr string) (Client, error) {
	d := net.Dialer{Timeout: m.cfg.Timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return c, nil
}
