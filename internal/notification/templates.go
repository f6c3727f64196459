package notification

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	donationdomain "github.com/kolahope/kolahope/internal/donation/domain"
	leadsdomain "github.com/kolahope/kolahope/internal/leads/domain"
)

// Email is a rendered admin notification ready for delivery.
type Email struct {
	Subject string
	HTML    string
}

const (
	tableOpen  = `<table style="border-collapse:collapse;width:100%;font-family:sans-serif;">`
	tableClose = `</table>`
)

func heading(text string) string {
	return fmt.Sprintf(`<h2 style="color:#1a6b3c;">%s</h2>`, html.EscapeString(text))
}

func row(label, value string) string {
	return fmt.Sprintf(
		`<tr><td style="padding:8px;font-weight:bold;background:#f5f5f5;width:160px;">%s</td><td style="padding:8px;">%s</td></tr>`,
		html.EscapeString(label), html.EscapeString(value),
	)
}

func mailRow(label, email string) string {
	escaped := html.EscapeString(email)
	return fmt.Sprintf(
		`<tr><td style="padding:8px;font-weight:bold;background:#f5f5f5;width:160px;">%s</td><td style="padding:8px;"><a href="mailto:%s">%s</a></td></tr>`,
		html.EscapeString(label), escaped, escaped,
	)
}

func textRow(label, value string) string {
	return fmt.Sprintf(
		`<tr><td style="padding:8px;font-weight:bold;background:#f5f5f5;width:160px;">%s</td><td style="padding:8px;white-space:pre-wrap;">%s</td></tr>`,
		html.EscapeString(label), html.EscapeString(value),
	)
}

func optRow(label string, value *string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return ""
	}
	return row(label, *value)
}

func optTextRow(label string, value *string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return ""
	}
	return textRow(label, *value)
}

func footer(organization string) string {
	return fmt.Sprintf(
		`<br/><hr style="margin-top:24px;border:none;border-top:1px solid #eee;"/><p style="color:#888;font-size:12px;font-family:sans-serif;">This notification was sent automatically by the %s website.</p>`,
		html.EscapeString(organization),
	)
}

// formatAmount renders a major-unit amount with thousands separators
// and the currency symbol, e.g. 5000 NGN becomes "₦5,000".
func formatAmount(amount int64, currency string) string {
	digits := strconv.FormatInt(amount, 10)
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	formatted := b.String()
	if neg {
		formatted = "-" + formatted
	}

	switch strings.ToUpper(currency) {
	case "NGN", "":
		return "₦" + formatted
	case "USD":
		return "$" + formatted
	default:
		return formatted + " " + strings.ToUpper(currency)
	}
}

func buildContactEmail(msg leadsdomain.ContactMessage) Email {
	var b strings.Builder
	b.WriteString(heading("New Contact Message"))
	b.WriteString(tableOpen)
	b.WriteString(row("Name", msg.Name))
	b.WriteString(mailRow("Email", msg.Email))
	b.WriteString(optRow("Phone", msg.Phone))
	b.WriteString(row("Subject", msg.Subject))
	b.WriteString(textRow("Message", msg.Message))
	b.WriteString(tableClose)

	return Email{
		Subject: fmt.Sprintf("📩 New Contact Message from %s", msg.Name),
		HTML:    b.String(),
	}
}

func buildVolunteerEmail(app leadsdomain.VolunteerApplication) Email {
	var b strings.Builder
	b.WriteString(heading("New Volunteer Application"))
	b.WriteString(tableOpen)
	b.WriteString(row("Full Name", app.FullName))
	b.WriteString(mailRow("Email", app.Email))
	b.WriteString(row("Phone", app.Phone))
	b.WriteString(optRow("Location", app.Location))
	b.WriteString(optRow("Occupation", app.Occupation))
	b.WriteString(optRow("Availability", app.Availability))
	b.WriteString(optRow("Skills", app.Skills))
	b.WriteString(optTextRow("Motivation", app.Motivation))
	b.WriteString(optRow("How They Heard", app.HowHeard))
	b.WriteString(tableClose)

	return Email{
		Subject: fmt.Sprintf("🙋 New Volunteer Application from %s", app.FullName),
		HTML:    b.String(),
	}
}

func buildPartnerEmail(inquiry leadsdomain.PartnerInquiry) Email {
	var b strings.Builder
	b.WriteString(heading("New Partnership Request"))
	b.WriteString(tableOpen)
	b.WriteString(row("Organization", inquiry.OrganizationName))
	b.WriteString(row("Contact Person", inquiry.ContactPerson))
	b.WriteString(mailRow("Email", inquiry.Email))
	b.WriteString(optRow("Phone", inquiry.Phone))
	b.WriteString(optRow("Org Type", inquiry.OrganizationType))
	b.WriteString(optRow("Website", inquiry.Website))
	b.WriteString(optRow("Partnership Type", inquiry.PartnershipType))
	b.WriteString(optTextRow("Message", inquiry.Message))
	b.WriteString(tableClose)

	return Email{
		Subject: fmt.Sprintf("🤝 New Partnership Request from %s", inquiry.OrganizationName),
		HTML:    b.String(),
	}
}

func buildDonationEmail(donation donationdomain.Donation, currency string) Email {
	amount := formatAmount(donation.Amount, currency)

	donorLabel := "Unknown"
	if donation.IsAnonymous {
		donorLabel = "Anonymous"
	} else if donation.DonorName != nil && strings.TrimSpace(*donation.DonorName) != "" {
		donorLabel = *donation.DonorName
	}

	var b strings.Builder
	b.WriteString(heading("New Donation Received"))
	b.WriteString(tableOpen)
	b.WriteString(fmt.Sprintf(
		`<tr><td style="padding:8px;font-weight:bold;background:#f5f5f5;width:160px;">Amount</td><td style="padding:8px;font-size:1.2em;color:#1a6b3c;font-weight:bold;">%s</td></tr>`,
		html.EscapeString(amount),
	))
	b.WriteString(row("Donor Name", donorLabel))
	if donation.DonorEmail != "" {
		b.WriteString(mailRow("Email", donation.DonorEmail))
	}
	b.WriteString(optRow("Phone", donation.DonorPhone))
	b.WriteString(row("Status", donation.PaymentStatus))
	if donation.PaymentReference != "" {
		b.WriteString(row("Reference", donation.PaymentReference))
	}
	b.WriteString(optRow("Message", donation.Message))
	b.WriteString(tableClose)

	return Email{
		Subject: fmt.Sprintf("💚 New Donation of %s from %s", amount, donorLabel),
		HTML:    b.String(),
	}
}
