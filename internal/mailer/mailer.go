// Package mailer renders and delivers the guest reservation emails over
// SMTP.  Wording and structure follow the restaurant's Dutch template.
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// Message is one guest email.  ReservationTime is already formatted for
// display.  Status carries the guest-facing wording ("bevestigd",
// "geannuleerd", "herinnering") and is ignored when IsConfirmation is
// false, which marks the initial "we received your reservation" notice.
type Message struct {
	To              string
	GuestName       string
	ReservationTime string
	Status          string
	IsConfirmation  bool
}

// Mailer sends reservation emails through a single SMTP account.
type Mailer struct {
	Host         string
	Port         string
	Username     string
	Password     string
	From         string
	ContactEmail string
}

// New constructs a Mailer.  ContactEmail is shown in the email footer as
// the reply address for guests.
func New(host, port, username, password, from, contactEmail string) *Mailer {
	return &Mailer{
		Host:         host,
		Port:         port,
		Username:     username,
		Password:     password,
		From:         from,
		ContactEmail: contactEmail,
	}
}

const bodyTemplate = `<html>
<body style="font-family: 'Segoe UI', Roboto, sans-serif; background-color: #fafbfb; color: #333;">
  <div style="background-color: #ffffff; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="text-align: center; color: {{if .Cancelled}}#FF0000{{else}}#4CAF50{{end}};">{{.Heading}}</h1>
    <p>Beste {{.GuestName}},</p>
    {{if not .IsConfirmation}}
    <p>We hebben uw reservering voor <strong>{{.ReservationTime}}</strong> ontvangen.
       U ontvangt een bevestiging zodra uw reservering is verwerkt.</p>
    {{else if .Cancelled}}
    <p>Uw reservering voor <strong>{{.ReservationTime}}</strong> is geannuleerd.</p>
    {{else if .Reminder}}
    <p>Een herinnering aan uw reservering voor <strong>{{.ReservationTime}}</strong>.
       We kijken ernaar uit u te verwelkomen.</p>
    {{else}}
    <p>Uw reservering voor <strong>{{.ReservationTime}}</strong> is {{.Status}}.
       We kijken ernaar uit u te verwelkomen.</p>
    {{end}}
    <p>Heeft u vragen? Mail ons op <a href="mailto:{{.ContactEmail}}">{{.ContactEmail}}</a>.</p>
    <p>Met vriendelijke groet,<br>Athenes Olijf</p>
  </div>
</body>
</html>`

var tpl = template.Must(template.New("reservation").Parse(bodyTemplate))

type templateData struct {
	GuestName       string
	ReservationTime string
	Status          string
	IsConfirmation  bool
	Cancelled       bool
	Reminder        bool
	Heading         string
	ContactEmail    string
}

// Subject returns the email subject line for a message.
func Subject(msg Message) string {
	switch {
	case !msg.IsConfirmation:
		return "We hebben uw reservering bij Athenes Olijf ontvangen"
	case msg.Status == "herinnering":
		return "Herinnering: uw reservering bij Athenes Olijf"
	default:
		return fmt.Sprintf("Uw reservering bij Athenes Olijf is %s", msg.Status)
	}
}

// Render produces the HTML body for a message.
func Render(msg Message, contactEmail string) (string, error) {
	data := templateData{
		GuestName:       msg.GuestName,
		ReservationTime: msg.ReservationTime,
		Status:          msg.Status,
		IsConfirmation:  msg.IsConfirmation,
		Cancelled:       msg.Status == "geannuleerd",
		Reminder:        msg.Status == "herinnering",
		Heading:         Subject(msg),
		ContactEmail:    contactEmail,
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Send renders the message and delivers it over SMTP.
func (m *Mailer) Send(msg Message) error {
	html, err := Render(msg, m.ContactEmail)
	if err != nil {
		return fmt.Errorf("render email: %w", err)
	}

	var raw bytes.Buffer
	fmt.Fprintf(&raw, "From: %s\r\n", m.From)
	fmt.Fprintf(&raw, "To: %s\r\n", msg.To)
	fmt.Fprintf(&raw, "Subject: %s\r\n", Subject(msg))
	raw.WriteString("MIME-Version: 1.0\r\n")
	raw.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	raw.WriteString("\r\n")
	raw.WriteString(html)

	addr := m.Host + ":" + m.Port
	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	if err := smtp.SendMail(addr, auth, m.From, []string{msg.To}, raw.Bytes()); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
