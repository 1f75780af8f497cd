package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/ahbm/hospital-backend/internal/domain/ports"
	"github.com/ahbm/hospital-backend/internal/domain/valueobjects"
	"github.com/ahbm/hospital-backend/internal/infrastructure/config"
	"github.com/ahbm/hospital-backend/internal/infrastructure/i18n"
)

var resetTemplate = template.Must(template.New("password_reset").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<body style="font-family: Arial, sans-serif; color: #333;">
  <p>{{.Greeting}}</p>
  <p>{{.Body}}</p>
  <p><a href="{{.URL}}" style="background:#0b6e4f;color:#fff;padding:10px 16px;text-decoration:none;border-radius:4px;">{{.Action}}</a></p>
  <p style="font-size:12px;color:#777;">{{.Ignore}}</p>
</body>
</html>`))

// Message é um e-mail pronto para envio
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Msg monta a mensagem MIME com corpo HTML
func (m Message) Msg() (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", m.From, err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(m.Subject)
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextHTML, m.HTML)
	return msg, nil
}

// Renderer monta e-mails localizados
type Renderer struct {
	i18n *i18n.Service
	from string
}

// NewRenderer cria um Renderer
func NewRenderer(i18nService *i18n.Service, from string) *Renderer {
	return &Renderer{i18n: i18nService, from: from}
}

// PasswordReset monta o e-mail de redefinição de senha no idioma pedido
func (r *Renderer) PasswordReset(msg ports.PasswordResetEmail) (Message, error) {
	lang := msg.Language
	if lang == "" || !r.i18n.IsLanguageSupported(lang) {
		lang = r.i18n.GetDefaultLanguage()
	}

	var body bytes.Buffer
	err := resetTemplate.Execute(&body, map[string]string{
		"Lang":     lang,
		"Greeting": r.i18n.T(lang, "email.password_reset.greeting", map[string]interface{}{"Name": msg.Name}),
		"Body":     r.i18n.T(lang, "email.password_reset.body"),
		"Action":   r.i18n.T(lang, "email.password_reset.action"),
		"Ignore":   r.i18n.T(lang, "email.password_reset.ignore"),
		"URL":      msg.ResetURL,
	})
	if err != nil {
		return Message{}, fmt.Errorf("render password reset: %w", err)
	}

	return Message{
		From:    r.from,
		To:      msg.To,
		Subject: r.i18n.T(lang, "email.password_reset.subject"),
		HTML:    body.String(),
	}, nil
}

// SMTPMailer entrega e-mails via SMTP
type SMTPMailer struct {
	cfg      config.SMTPConfig
	renderer *Renderer
	log      ports.Logger
}

// NewSMTPMailer cria um SMTPMailer
func NewSMTPMailer(cfg config.SMTPConfig, renderer *Renderer, log ports.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, renderer: renderer, log: log}
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, msg ports.PasswordResetEmail) error {
	message, err := m.renderer.PasswordReset(msg)
	if err != nil {
		return err
	}
	return m.Send(ctx, message)
}

// Send entrega uma mensagem já montada; STARTTLS é usado quando o servidor oferece
func (m *SMTPMailer) Send(ctx context.Context, message Message) error {
	msg, err := message.Msg()
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.cfg.Host, m.clientOptions()...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	m.log.Info("email sent", "to", maskAddress(message.To), "subject", message.Subject)
	return nil
}

func (m *SMTPMailer) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(15 * time.Second),
	}
	if m.cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.User),
			mail.WithPassword(m.cfg.Password),
		)
	}
	return opts
}

// LogMailer apenas registra o link de redefinição (desenvolvimento, sem SMTP)
type LogMailer struct {
	log ports.Logger
}

// NewLogMailer cria um LogMailer
func NewLogMailer(log ports.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendPasswordReset(_ context.Context, msg ports.PasswordResetEmail) error {
	m.log.Info("password reset email (not delivered)",
		"to", maskAddress(msg.To),
		"reset_url", msg.ResetURL,
	)
	return nil
}

func maskAddress(addr string) string {
	email, err := valueobjects.NewEmail(addr)
	if err != nil {
		return "invalid-email"
	}
	return email.Masked()
}
