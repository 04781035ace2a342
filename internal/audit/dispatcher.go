package audit

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/food-storefront/internal/events"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID string
	Metadata any

	// Order, when set, is also published to the event stream.
	Order *events.OrderEvent
}

// Dispatcher records audit events off the request path. A full queue
// drops the event; the API never waits on auditing.
type Dispatcher struct {
	logger    *Logger
	publisher events.Publisher
	log       *zap.Logger

	queue chan Event
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

const queueSize = 100

func NewDispatcher(logger *Logger, publisher events.Publisher, log *zap.Logger) *Dispatcher {
	if publisher == nil {
		publisher = events.Nop{}
	}

	d := &Dispatcher{
		logger:    logger,
		publisher: publisher,
		log:       log,
		queue:     make(chan Event, queueSize),
		done:      make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx := context.Background()

		if err := d.logger.Log(ctx, ev); err != nil {
			d.log.Error("audit write failed", zap.String("action", ev.Action), zap.Error(err))
		}

		if ev.Order != nil {
			if err := d.publisher.PublishOrder(ctx, *ev.Order); err != nil {
				d.log.Warn("order event publish failed",
					zap.String("type", ev.Order.Type),
					zap.Uint("order_id", ev.Order.OrderID),
					zap.Error(err),
				)
			}
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close stops accepting events and waits until queued ones are written
// or ctx expires.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
