package utils

import (
	"bytes"
	"html/template"
	"log"

	"gopkg.in/gomail.v2"
)

// SMTPConfig is passed down from the env so this package stays free of the
// config import cycle.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func (c SMTPConfig) Enabled() bool { return c.Host != "" && c.From != "" }

// TicketConfirmationData feeds the confirmation mail template.
type TicketConfirmationData struct {
	CustomerName string
	PNR          string
	Origin       string
	Destination  string
	TravelDate   string
	Amount       string
}

var confirmationTmpl = template.Must(template.New("confirm").Parse(`
<p>Dear {{.CustomerName}},</p>
<p>Your booking is confirmed.</p>
<ul>
  <li>PNR: <b>{{.PNR}}</b></li>
  <li>Route: {{.Origin}} &rarr; {{.Destination}}</li>
  <li>Travel date: {{.TravelDate}}</li>
  <li>Amount: {{.Amount}}</li>
</ul>
<p>Please carry a valid ID proof while travelling.</p>
`))

// SendTicketConfirmationEmail sends the confirmation mail asynchronously so
// it never delays the confirm response. Failures are logged only.
func SendTicketConfirmationEmail(cfg SMTPConfig, to string, data TicketConfirmationData) {
	if !cfg.Enabled() || to == "" {
		return
	}
	go func() {
		var body bytes.Buffer
		if err := confirmationTmpl.Execute(&body, data); err != nil {
			log.Printf("mail: render confirmation failed: %v", err)
			return
		}

		m := gomail.NewMessage()
		m.SetHeader("From", cfg.From)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Booking confirmed - PNR "+data.PNR)
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("mail: send confirmation failed: %v", err)
		}
	}()
}
