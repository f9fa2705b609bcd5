package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// ReceiptEmail holds the data rendered into the emailed receipt.
type ReceiptEmail struct {
	StoreName string
	InvoiceNo string
	Date      string
	Items     []ReceiptEmailItem
	SubTotal  string
	Discount  string
	Tax       string
	Total     string
	Paid      string
	Change    string
	Points    int64
}

// ReceiptEmailItem is one line item on the emailed receipt.
type ReceiptEmailItem struct {
	Name     string
	Quantity int
	Total    string
}

// SendReceiptEmail emails a sale receipt to a customer.
func (s *EmailService) SendReceiptEmail(toEmail string, receipt *ReceiptEmail) error {
	htmlContent, err := s.renderReceiptEmail(receipt)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Your receipt %s - %s", receipt.InvoiceNo, receipt.StoreName)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// renderReceiptEmail renders the receipt email template
func (s *EmailService) renderReceiptEmail(receipt *ReceiptEmail) (string, error) {
	tmpl, err := template.New("receipt").Parse(receiptTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, receipt); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// receiptTemplate is the HTML template for emailed receipts
const receiptTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.InvoiceNo}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 480px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);">
                    <tr>
                        <td style="background: #1a1a2e; padding: 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 24px; font-weight: 600;">{{.StoreName}}</h1>
                            <p style="color: #a0aec0; margin: 8px 0 0 0; font-size: 14px;">{{.InvoiceNo}} &middot; {{.Date}}</p>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 30px;">
                            <table role="presentation" style="width: 100%; border-collapse: collapse; font-size: 14px; color: #4a5568;">
                                {{range .Items}}
                                <tr>
                                    <td style="padding: 6px 0;">{{.Quantity}}x {{.Name}}</td>
                                    <td style="padding: 6px 0; text-align: right;">{{.Total}}</td>
                                </tr>
                                {{end}}
                                <tr><td colspan="2" style="border-top: 1px solid #e2e8f0; padding: 0;"></td></tr>
                                <tr>
                                    <td style="padding: 6px 0;">Subtotal</td>
                                    <td style="padding: 6px 0; text-align: right;">{{.SubTotal}}</td>
                                </tr>
                                {{if .Discount}}
                                <tr>
                                    <td style="padding: 6px 0;">Discount</td>
                                    <td style="padding: 6px 0; text-align: right;">-{{.Discount}}</td>
                                </tr>
                                {{end}}
                                <tr>
                                    <td style="padding: 6px 0;">Tax</td>
                                    <td style="padding: 6px 0; text-align: right;">{{.Tax}}</td>
                                </tr>
                                <tr>
                                    <td style="padding: 6px 0; font-weight: 700; color: #1a1a2e;">Total</td>
                                    <td style="padding: 6px 0; text-align: right; font-weight: 700; color: #1a1a2e;">{{.Total}}</td>
                                </tr>
                                <tr>
                                    <td style="padding: 6px 0;">Paid</td>
                                    <td style="padding: 6px 0; text-align: right;">{{.Paid}}</td>
                                </tr>
                                {{if .Change}}
                                <tr>
                                    <td style="padding: 6px 0;">Change</td>
                                    <td style="padding: 6px 0; text-align: right;">{{.Change}}</td>
                                </tr>
                                {{end}}
                                {{if .Points}}
                                <tr>
                                    <td style="padding: 6px 0;">Points redeemed</td>
                                    <td style="padding: 6px 0; text-align: right;">{{.Points}}</td>
                                </tr>
                                {{end}}
                            </table>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color: #f8fafc; padding: 20px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 13px; margin: 0;">Thank you for shopping with {{.StoreName}}</p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
