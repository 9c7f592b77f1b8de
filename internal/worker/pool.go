package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Omc12/StockSimple/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueAlerts = "jobs:alerts"

	JobTypeLowStock = "low_stock_alert"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// LowStockAlertPayload is enqueued when a movement leaves a product at or
// below its reorder point.
type LowStockAlertPayload struct {
	ProductID    string `json:"product_id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	CurrentStock int    `json:"current_stock"`
	ReorderPoint int    `json:"reorder_point"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// NotifyLowStock satisfies service.LowStockNotifier. Enqueue failures are
// logged and dropped — an alert email is never worth failing a movement over.
func (d *Dispatcher) NotifyLowStock(ctx context.Context, p *model.Product, newStock int) {
	payload := LowStockAlertPayload{
		ProductID:    p.ID.String(),
		SKU:          p.SKU,
		Name:         p.Name,
		CurrentStock: newStock,
		ReorderPoint: p.ReorderPoint,
	}
	if err := d.enqueue(ctx, QueueAlerts, JobTypeLowStock, payload); err != nil {
		log.Error().Err(err).Str("sku", p.SKU).Msg("failed to enqueue low-stock alert")
	}
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// WorkerHandlers groups the processors wired at the composition root.
type WorkerHandlers struct {
	Alert *AlertWorker
}

// StartWorkerPool launches numWorkers goroutines consuming the alert queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueAlerts).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	switch job.Type {
	case JobTypeLowStock:
		if err := handlers.Alert.Process(ctx, job.Payload); err != nil {
			sendToDLQ(ctx, rdb, queue, job, err)
		}
	default:
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("unknown job type")
	}
}
