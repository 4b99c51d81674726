package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/osse101/CoffeePOS_Go/internal/logger"
)

type retryEntry struct {
	event   Event
	lastErr error
}

// ResilientPublisher delivers events to a Publisher and retries failures in the
// background with exponential backoff. Events that exhaust their retries, or
// that arrive while the retry queue is full, go to a dead-letter file.
type ResilientPublisher struct {
	bus        Publisher
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter

	shutdown     chan struct{}
	shutdownOnce sync.Once
	wg           sync.WaitGroup
}

// NewResilientPublisher starts the retry worker
func NewResilientPublisher(bus Publisher, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	p := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	p.wg.Add(1)
	go p.retryWorker()
	return p, nil
}

// PublishWithRetry attempts delivery once inline and hands failures to the
// retry worker. It never blocks on the retry queue.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	err := p.bus.Publish(ctx, evt)
	if err == nil {
		return
	}

	log := logger.FromContext(ctx)

	select {
	case <-p.shutdown:
		log.Warn(LogMsgEventDroppedShutdown, "event_type", evt.Type, "error", err)
		p.writeDeadLetter(evt, 1, err)
		return
	default:
	}

	select {
	case p.retryQueue <- retryEntry{event: evt, lastErr: err}:
		log.Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)
	default:
		log.Error(LogMsgRetryQueueFull, "event_type", evt.Type)
		p.writeDeadLetter(evt, 1, err)
	}
}

// Publish satisfies Publisher. Delivery failures are absorbed by the retry path.
func (p *ResilientPublisher) Publish(ctx context.Context, evt Event) error {
	p.PublishWithRetry(ctx, evt)
	return nil
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.shutdown:
			p.drain()
			return
		case entry := <-p.retryQueue:
			p.retry(entry)
		}
	}
}

func (p *ResilientPublisher) retry(entry retryEntry) {
	ctx := context.Background()
	lastErr := entry.lastErr

	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		timer := time.NewTimer(CalculateRetryDelay(p.retryDelay, attempt))
		select {
		case <-timer.C:
		case <-p.shutdown:
			timer.Stop()
			if err := p.bus.Publish(ctx, entry.event); err != nil {
				p.writeDeadLetter(entry.event, attempt+1, err)
			}
			return
		}

		err := p.bus.Publish(ctx, entry.event)
		if err == nil {
			logger.Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempt", attempt)
			return
		}
		lastErr = err
		logger.Warn(LogMsgEventRetryFailed, "event_type", entry.event.Type, "attempt", attempt, "error", err)
	}

	logger.Error(LogMsgEventRetryExhausted, "event_type", entry.event.Type, "attempts", p.maxRetries+1)
	p.writeDeadLetter(entry.event, p.maxRetries+1, lastErr)
}

// drain makes one final attempt for every queued event
func (p *ResilientPublisher) drain() {
	ctx := context.Background()
	for {
		select {
		case entry := <-p.retryQueue:
			if err := p.bus.Publish(ctx, entry.event); err != nil {
				p.writeDeadLetter(entry.event, 2, err)
			}
		default:
			return
		}
	}
}

func (p *ResilientPublisher) writeDeadLetter(evt Event, attempts int, lastErr error) {
	if err := p.deadLetter.Write(evt, attempts, lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "event_type", evt.Type, "error", err)
	}
}

// Shutdown stops the worker after draining the queue and closes the
// dead-letter file. It is safe to call more than once.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	var err error
	p.shutdownOnce.Do(func() {
		close(p.shutdown)

		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			logger.Warn(LogMsgShutdownTimeout)
			err = ctx.Err()
		}

		if cerr := p.deadLetter.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	})
	return err
}
