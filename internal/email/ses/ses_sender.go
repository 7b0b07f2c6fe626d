package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"procura/internal/domain"
	"procura/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendDebtReminder(ctx context.Context, toEmail, toName string, debt *domain.Debt, supplierName string) error {
	subject := fmt.Sprintf("Overdue payment to %s", supplierName)
	dueDate := debt.DueDate.Format("2006-01-02")
	remaining := debt.RemainingAmount.StringFixed(2)

	htmlBody := buildDebtReminderHTML(toName, supplierName, remaining, dueDate)
	textBody := fmt.Sprintf(
		"Hi %s,\n\nA payment to %s of %s was due on %s and is still outstanding.\nPlease settle it or record the payment in Procura.\n\nProcura",
		toName, supplierName, remaining, dueDate)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildDebtReminderHTML(name, supplierName, remaining, dueDate string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Overdue supplier payment</h2>
  <p>Hi %s,</p>
  <p>A payment to <strong>%s</strong> is overdue:</p>
  <ul>
    <li>Outstanding amount: %s</li>
    <li>Due date: %s</li>
  </ul>
  <p>Please settle the payment or record it in Procura if it was already made.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Procura - Procurement Management</p>
</body>
</html>`, name, supplierName, remaining, dueDate)
}
