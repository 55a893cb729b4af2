// Package email delivers reports over SMTP with SSL.
package email

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driven"
	"github.com/custodia-labs/sentinel/internal/logger"
	"github.com/custodia-labs/sentinel/internal/markdown"
)

// Ensure Notifier implements the interface.
var _ driven.Notifier = (*Notifier)(nil)

// allRepos names a multi-repository report in the subject line.
const allRepos = "all repositories"

// htmlTemplate wraps the rendered report body.
const htmlTemplate = `<!DOCTYPE html>
<html><head><meta charset="utf-8"></head>
<body style="font-family: -apple-system, Segoe UI, Helvetica, Arial, sans-serif; line-height: 1.5;">
%s
</body></html>`

// sendFunc delivers one message.
type sendFunc func(m *gomail.Message) error

// Notifier sends reports as HTML email with a plain Markdown alternative.
type Notifier struct {
	settings domain.EmailSettings
	send     sendFunc
	now      func() time.Time
}

// NewNotifier creates an SMTP notifier. Port 465 uses implicit SSL;
// other ports negotiate STARTTLS.
func NewNotifier(settings domain.EmailSettings) *Notifier {
	dialer := gomail.NewDialer(settings.SMTPServer, settings.SMTPPort, settings.SenderEmail, settings.SenderPassword)
	return &Notifier{
		settings: settings,
		send:     func(m *gomail.Message) error { return dialer.DialAndSend(m) },
		now:      time.Now,
	}
}

// SendReport emails markdown for repo. Returns false when email is not
// configured, there is nobody to send to, or delivery failed.
func (n *Notifier) SendReport(ctx context.Context, repo domain.RepoID, md string, recipients []string) bool {
	if !n.settings.IsConfigured() {
		logger.Debug("email: not configured, skipping %s", repoLabel(repo))
		return false
	}
	if len(recipients) == 0 {
		recipients = n.settings.Recipients
	}
	if len(recipients) == 0 {
		logger.Warn("email: no recipients for %s", repoLabel(repo))
		return false
	}
	if err := ctx.Err(); err != nil {
		return false
	}

	msg, err := n.buildMessage(repo, md, recipients)
	if err != nil {
		logger.Error("email: %v", err)
		return false
	}

	if err := n.send(msg); err != nil {
		logger.Error("email: send report for %s: %v", repoLabel(repo), err)
		return false
	}

	logger.Info("email: sent report for %s to %d recipient(s)", repoLabel(repo), len(recipients))
	return true
}

func (n *Notifier) buildMessage(repo domain.RepoID, md string, recipients []string) (*gomail.Message, error) {
	body, err := markdown.ToHTML(md)
	if err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.settings.SenderEmail)
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", n.settings.Subject(repoLabel(repo), n.now()))
	m.SetBody("text/plain", md)
	m.AddAlternative("text/html", fmt.Sprintf(htmlTemplate, body))
	return m, nil
}

func repoLabel(repo domain.RepoID) string {
	if repo == "" {
		return allRepos
	}
	return repo.String()
}
