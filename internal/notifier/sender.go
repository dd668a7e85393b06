package notifier

import (
	"os"
	"path/filepath"
	"strings"

	gopkgmail "gopkg.in/gomail.v2"
)

type Notification struct {
	To       string
	Subject  string
	Template string // имя шаблона, например "order_created"
	Data     any
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	SSL      bool
	// LogoPath: картинка для cid:logo, необязательна.
	LogoPath string
}

type EmailSender struct {
	cfg      SMTPConfig
	renderer *Renderer
	dial     func(m *gopkgmail.Message) error
}

func NewEmailSender(cfg SMTPConfig, renderer *Renderer) *EmailSender {
	s := &EmailSender{cfg: cfg, renderer: renderer}
	s.dial = func(m *gopkgmail.Message) error {
		d := gopkgmail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
		d.SSL = cfg.SSL
		return d.DialAndSend(m)
	}
	return s
}

func (s *EmailSender) Build(n Notification) (*gopkgmail.Message, error) {
	htmlBody, plainBody, err := s.renderer.Render(n.Template, n.Data)
	if err != nil {
		return nil, err
	}

	m := gopkgmail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", n.To)
	m.SetHeader("Subject", n.Subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if strings.Contains(htmlBody, "cid:logo") && s.cfg.LogoPath != "" {
		if _, errStat := os.Stat(s.cfg.LogoPath); errStat == nil {
			m.Embed(s.cfg.LogoPath, gopkgmail.Rename(filepath.Base(s.cfg.LogoPath)),
				gopkgmail.SetHeader(map[string][]string{"Content-ID": {"<logo>"}}))
		}
	}
	return m, nil
}

func (s *EmailSender) Send(n Notification) error {
	m, err := s.Build(n)
	if err != nil {
		return err
	}
	return s.dial(m)
}
