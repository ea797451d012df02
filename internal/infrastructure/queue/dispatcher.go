package queue

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

const (
	defaultWorkers = 2
	channelBuffer  = 128
)

// Dispatcher delivers notifications on a fixed set of workers. Messages for
// the same recipient always land on the same worker, so they go out in the
// order they were queued.
type Dispatcher struct {
	workers []chan ports.Notification
	mailer  ports.Mailer
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.Notification, numWorkers),
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Notification, channelBuffer)
	}
	return d
}

// Start launches the workers. They stop when ctx is cancelled; Wait blocks
// until all of them have returned.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue never blocks the caller: when the recipient's worker is saturated
// the message is dropped and logged.
func (d *Dispatcher) Enqueue(n ports.Notification) {
	select {
	case d.workers[d.shardIndex(n.To)] <- n:
	default:
		d.log.Warn().Str("to", n.To).Str("subject", n.Subject).Msg("mail queue full, notification dropped")
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(recipient)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Notification) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case n := <-ch:
			if err := d.mailer.Send(ctx, n); err != nil {
				d.log.Error().Err(err).
					Str("to", n.To).
					Str("subject", n.Subject).
					Int("worker_id", id).
					Msg("notification delivery failed")
			}
		}
	}
}
