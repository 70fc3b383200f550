package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/taskplatform/task-platform-api/internal/config"
)

// Assignment is one outbound "task assigned to you" notification.
type Assignment struct {
	To            string
	RecipientName string
	TaskTitle     string
	TaskID        string
	AssignerName  string
}

// Mailer sends assignment notifications.
type Mailer interface {
	SendTaskAssignment(a Assignment) error
}

// wellKnownServices maps named email services to their SMTP endpoints, used
// when no explicit EMAIL_HOST is configured.
var wellKnownServices = map[string]string{
	"gmail":   "smtp.gmail.com:587",
	"outlook": "smtp.office365.com:587",
	"yahoo":   "smtp.mail.yahoo.com:587",
}

// SMTPMailer sends HTML mail over plain-auth SMTP.
type SMTPMailer struct {
	addr        string
	host        string
	from        string
	password    string
	frontendURL string
}

// NewSMTPMailer builds a mailer from the email config; explicit host/port
// wins over the named service fallback.
func NewSMTPMailer(cfg *config.Config) (*SMTPMailer, error) {
	var addr string
	if cfg.EmailHost != "" {
		addr = cfg.EmailHost + ":" + cfg.EmailPort
	} else if serviceAddr, ok := wellKnownServices[strings.ToLower(cfg.EmailService)]; ok {
		addr = serviceAddr
	} else {
		return nil, fmt.Errorf("unknown email service %q and no EMAIL_HOST configured", cfg.EmailService)
	}

	host := addr[:strings.LastIndex(addr, ":")]

	return &SMTPMailer{
		addr:        addr,
		host:        host,
		from:        cfg.EmailUser,
		password:    cfg.EmailPassword,
		frontendURL: cfg.FrontendURL,
	}, nil
}

func (m *SMTPMailer) SendTaskAssignment(a Assignment) error {
	subject := fmt.Sprintf("New Task Assigned: %s", a.TaskTitle)
	body := assignmentBody(a, m.frontendURL)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", a.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", m.from, m.password, m.host)
	if err := smtp.SendMail(m.addr, auth, m.from, []string{a.To}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

func assignmentBody(a Assignment, frontendURL string) string {
	return fmt.Sprintf(`<h2>New Task Assignment</h2>
<p>Hi %s,</p>
<p><strong>%s</strong> has assigned a new task to you:</p>
<div style="background: #f5f5f5; padding: 15px; border-radius: 5px; margin: 15px 0;">
  <h3 style="margin-top: 0;">%s</h3>
  <p>Task ID: <code>%s</code></p>
</div>
<p>Please log in to the platform to view the task details and start working on it.</p>
<p><a href="%s/tasks/%s">View Task</a></p>
<p>Best regards,<br>Task Platform Team</p>`,
		a.RecipientName, a.AssignerName, a.TaskTitle, a.TaskID, frontendURL, a.TaskID)
}
