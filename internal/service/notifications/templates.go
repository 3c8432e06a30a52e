package notifications

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

const (
	customerSubject = "Appointment Confirmation - Stylish Cuts"
	adminSubject    = "New Appointment Booking"

	mailDateFormat = "January 02, 2006"
	mailTimeFormat = "03:04 PM"
)

var customerTemplate = template.Must(template.New("customer").Parse(`Dear {{ .ClientName }},

Thank you for booking an appointment with Stylish Cuts Barbershop!

Appointment Details:
Service: {{ .Service }}
Date: {{ .Date }}
Time: {{ .Time }}

Location: 123 Main Street, City, State 12345

If you need to reschedule or cancel your appointment, please contact us at:
Phone: (555) 123-4567
Email: info@stylishcuts.com

We look forward to seeing you!

Best regards,
Stylish Cuts Team
`))

var adminTemplate = template.Must(template.New("admin").Parse(`New Appointment Booking:

Client: {{ .ClientName }}
Email: {{ .ClientEmail }}
Service: {{ .Service }}
Date: {{ .Date }}
Time: {{ .Time }}
`))

type templateData struct {
	ClientName  string
	ClientEmail string
	Service     string
	Date        string
	Time        string
}

func newTemplateData(appt *domain.Appointment) templateData {
	return templateData{
		ClientName:  appt.ClientName,
		ClientEmail: appt.ClientEmail,
		Service:     appt.Service,
		Date:        appt.Date.Format(mailDateFormat),
		Time:        appt.Date.Format(mailTimeFormat),
	}
}

func render(tmpl *template.Template, appt *domain.Appointment) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newTemplateData(appt)); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, tmpl.Name(), err)
	}
	return buf.String(), nil
}
