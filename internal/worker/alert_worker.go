package worker

// alert_worker.go
// Processes low-stock alert jobs from QueueAlerts and mails the configured
// recipient. SMTP delivery runs behind a circuit breaker so a dead mail host
// fast-fails instead of stalling the pool.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Omc12/StockSimple/internal/infra"

	"github.com/rs/zerolog/log"
)

type AlertWorker struct {
	mailer    *infra.Mailer
	breaker   *infra.CircuitBreaker
	recipient string
}

func NewAlertWorker(mailer *infra.Mailer, breaker *infra.CircuitBreaker, recipient string) *AlertWorker {
	return &AlertWorker{mailer: mailer, breaker: breaker, recipient: recipient}
}

// Process sends one low-stock notification email.
func (w *AlertWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload LowStockAlertPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alert_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}

	subject := fmt.Sprintf("Low stock: %s (%s)", payload.Name, payload.SKU)
	body := fmt.Sprintf(
		"Product %q (SKU %s) is down to %d units — reorder point is %d.\n",
		payload.Name, payload.SKU, payload.CurrentStock, payload.ReorderPoint,
	)
	if payload.CurrentStock == 0 {
		subject = fmt.Sprintf("OUT OF STOCK: %s (%s)", payload.Name, payload.SKU)
	}

	err := w.breaker.Do(func() error {
		return w.mailer.Send(w.recipient, subject, body)
	})
	if err != nil {
		log.Error().Err(err).Str("sku", payload.SKU).Msg("alert_worker: failed to send alert")
		return err
	}
	log.Info().Str("sku", payload.SKU).Int("stock", payload.CurrentStock).
		Msg("alert_worker: low-stock alert sent")
	return nil
}
