package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/manvaasam/platform/internal/api/metrics"
	"github.com/manvaasam/platform/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes delivery events to a fixed set of workers using consistent
// hashing on the order number, guaranteeing per-order event ordering.
type Dispatcher struct {
	workers []chan ports.DeliveryEventInput
	service ports.DeliveryService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.DeliveryService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.DeliveryEventInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.DeliveryEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its order number.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.DeliveryEventInput) {
	idx := d.shardIndex(event.OrderNumber)
	d.workers[idx] <- event
	metrics.DeliveryQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// EnqueueBatch enqueues multiple events preserving per-order ordering.
func (d *Dispatcher) EnqueueBatch(events []ports.DeliveryEventInput) {
	for _, e := range events {
		d.Enqueue(e)
	}
}

// shardIndex maps an order number deterministically to a worker index.
func (d *Dispatcher) shardIndex(orderNumber string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(orderNumber))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.DeliveryEventInput) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			start := time.Now()
			err := d.service.Process(ctx, event)
			metrics.DeliveryQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err != nil {
				metrics.DeliveryEventsErrorsTotal.WithLabelValues("process_failed").Inc()
				metrics.DeliveryEventDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
				d.log.Error().Err(err).
					Str("order_number", event.OrderNumber).
					Int("worker_id", id).
					Msg("delivery event processing failed")
				continue
			}
			metrics.DeliveryEventsProcessedTotal.WithLabelValues(event.Status, event.Source).Inc()
			metrics.DeliveryEventDuration.WithLabelValues(event.Status).Observe(time.Since(start).Seconds())
		}
	}
}
