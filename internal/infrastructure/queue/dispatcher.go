package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/playlog/playlog-api/internal/api/metrics"
	"github.com/playlog/playlog-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes play-import records to a fixed set of workers using
// consistent hashing on the owning user id, so one user's imported history
// is persisted in submission order.
type Dispatcher struct {
	workers []chan ports.RecordPlayInput
	service ports.PlayService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.PlayService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.RecordPlayInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.RecordPlayInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a record to the worker responsible for its user.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(input ports.RecordPlayInput) {
	idx := d.shardIndex(input.UserID)
	d.workers[idx] <- input
	metrics.ImportQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// EnqueueBatch enqueues multiple records preserving per-user ordering.
func (d *Dispatcher) EnqueueBatch(inputs []ports.RecordPlayInput) {
	for _, in := range inputs {
		d.Enqueue(in)
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.RecordPlayInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case input, ok := <-ch:
			if !ok {
				return
			}
			if _, err := d.service.Record(ctx, input); err != nil {
				metrics.PlaysImportedTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("user_id", input.UserID).
					Str("game_id", input.GameID).
					Int("worker_id", id).
					Msg("play import failed")
				continue
			}
			metrics.PlaysImportedTotal.WithLabelValues("ok").Inc()
		}
	}
}
