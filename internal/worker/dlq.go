package worker

// Failed jobs land on a per-queue dead letter list (dlq:<queue>) so they can
// be inspected and replayed by hand.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dlqPrefix = "dlq:"

type deadLetter struct {
	Queue    string          `json:"queue"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Cause    string          `json:"cause"`
	FailedAt time.Time       `json:"failedAt"`
}

func sendToDLQ(ctx context.Context, rdb *redis.Client, queue string, job Job, cause error) {
	entry := deadLetter{
		Queue:    queue,
		Type:     job.Type,
		Payload:  job.Payload,
		Cause:    cause.Error(),
		FailedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: marshal failed")
		return
	}
	if err := rdb.LPush(ctx, dlqPrefix+queue, data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: push failed")
		return
	}
	log.Warn().Str("queue", queue).Str("type", job.Type).Str("cause", entry.Cause).
		Msg("dlq: job moved to dead letter queue")
}

// DLQLength reports the dead-letter backlog for a queue.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, dlqPrefix+queue).Result()
}
