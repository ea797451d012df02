// Package mail holds the outbound e-mail adapters.
package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

// LogMailer writes notifications to the log instead of sending them. It is
// the default until an SMTP provider is configured.
type LogMailer struct {
	from string
	log  zerolog.Logger
}

func NewLogMailer(from string, log zerolog.Logger) *LogMailer {
	return &LogMailer{from: from, log: log}
}

func (m *LogMailer) Send(ctx context.Context, n ports.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.log.Info().
		Str("from", m.from).
		Str("to", n.To).
		Str("subject", n.Subject).
		Str("body", n.Body).
		Msg("mail sent")
	return nil
}
