package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"solar-quote-backend/internal/domain"
	"solar-quote-backend/pkg/phone"
)

//go:embed templates/*.html
var templateFS embed.FS

// Matches the en-AU locale string used in the business inbox.
const submittedAtLayout = "02/01/2006, 3:04:05 pm"

var emailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Brand is the business identity shown in customer-facing mail.
type Brand struct {
	Name      string
	ShortName string
	Email     string
	Phone     string
	Address   string
}

// RendererOptions configures a Renderer. Now defaults to time.Now and
// Location to UTC.
type RendererOptions struct {
	Brand       Brand
	Location    *time.Location
	PhoneRegion string
	Now         func() time.Time
}

// Renderer produces the HTML bodies of quote emails. All values pass through
// html/template, so submitted text is always escaped.
type Renderer struct {
	brand       Brand
	loc         *time.Location
	phoneRegion string
	now         func() time.Time
}

func NewRenderer(opts RendererOptions) *Renderer {
	r := &Renderer{
		brand:       opts.Brand,
		loc:         opts.Location,
		phoneRegion: opts.PhoneRegion,
		now:         opts.Now,
	}
	if r.loc == nil {
		r.loc = time.UTC
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

type notificationData struct {
	Brand       Brand
	Quote       domain.QuoteRequest
	PhoneURI    template.URL
	SubmittedAt string
}

type confirmationData struct {
	Brand        Brand
	CustomerName string
	Year         int
}

// RenderBusinessNotification renders the lead alert sent to the business inbox.
func (r *Renderer) RenderBusinessNotification(quote domain.QuoteRequest) (string, error) {
	return render("quote_notification.html", notificationData{
		Brand: r.brand,
		Quote: quote,
		// DialURI only ever yields "tel:+<digits>"
		PhoneURI:    template.URL(phone.DialURI(quote.Phone, r.phoneRegion)),
		SubmittedAt: r.now().In(r.loc).Format(submittedAtLayout),
	})
}

// RenderCustomerConfirmation renders the thank-you mail. Only the name is used.
func (r *Renderer) RenderCustomerConfirmation(customerName string) (string, error) {
	return render("quote_confirmation.html", confirmationData{
		Brand:        r.brand,
		CustomerName: customerName,
		Year:         r.now().In(r.loc).Year(),
	})
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}
