package ports

import "context"

// Notification is a single outbound e-mail.
type Notification struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers a notification synchronously.
type Mailer interface {
	Send(ctx context.Context, n Notification) error
}

// Notifier queues notifications for asynchronous delivery.
type Notifier interface {
	Enqueue(n Notification)
}
