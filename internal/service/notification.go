package service

import (
	"context"
	"fmt"
	"html"

	"traffic-fines-backend/internal/domain"
	"traffic-fines-backend/internal/logger"
)

type mailNotifier struct {
	queue *MailQueue
}

// NewMailNotifier mails the owner of every issued fine through queue.
func NewMailNotifier(queue *MailQueue) FineNotifier {
	return &mailNotifier{queue: queue}
}

func (n *mailNotifier) FineIssued(ctx context.Context, event domain.FineIssuedEvent) error {
	if event.OwnerEmail == "" {
		return fmt.Errorf("owner of fine %s has no email address", event.ReferenceNumber)
	}
	return n.queue.Enqueue(fineIssuedMessage(event))
}

func fineIssuedMessage(event domain.FineIssuedEvent) MailMessage {
	issued := event.CreatedAt.Format("02/01/2006 15:04")
	plain := fmt.Sprintf("Hello %s,\n\nA fine has been issued to you on %s.\n\nReference: %s\nReason: %s\nAmount: %.2f\n",
		event.OwnerName, issued, event.ReferenceNumber, event.Reason, event.Amount)
	body := fmt.Sprintf(`<html><body>
<h2>Fine issued</h2>
<p>Hello <strong>%s</strong>, a fine has been issued to you on %s.</p>
<ul><li>Reference: %s</li><li>Reason: %s</li><li>Amount: %.2f</li></ul>
</body></html>`, html.EscapeString(event.OwnerName), issued, event.ReferenceNumber, html.EscapeString(event.Reason), event.Amount)

	return MailMessage{
		To:        event.OwnerEmail,
		ToName:    event.OwnerName,
		Subject:   fmt.Sprintf("Fine issued: %s", event.ReferenceNumber),
		PlainText: plain,
		HTML:      body,
	}
}

type logNotifier struct{}

// NewLogNotifier records fine-issued events in the log only. It is used when
// no mail provider is configured.
func NewLogNotifier() FineNotifier {
	return logNotifier{}
}

func (logNotifier) FineIssued(_ context.Context, event domain.FineIssuedEvent) error {
	logger.Info("Fine issued (mail disabled)", "reference", event.ReferenceNumber, "owner_email", event.OwnerEmail)
	return nil
}
