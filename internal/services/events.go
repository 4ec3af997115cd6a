package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	rabbit "procurement-service/internal/infra/rabbitmq"
)

const publishTimeout = 5 * time.Second

// Events publishes domain events off the request path. Publishing failures
// are logged; they never fail the operation that produced the event.
type Events struct {
	publisher rabbit.PublisherInterface
	logger    *slog.Logger
	wg        sync.WaitGroup
}

func NewEvents(publisher rabbit.PublisherInterface, logger *slog.Logger) *Events {
	return &Events{publisher: publisher, logger: logger}
}

func (e *Events) dispatch(routingKey string, data any) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := e.publisher.Publish(ctx, routingKey, data); err != nil {
			e.logger.Warn("failed to publish event",
				slog.String("event", routingKey),
				slog.String("error", err.Error()),
			)
		}
	}()
}

// Wait blocks until every dispatched event has been handed to the publisher.
func (e *Events) Wait() {
	e.wg.Wait()
}
