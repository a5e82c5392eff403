package eventbus

import (
	"errors"
	"sync"
	"time"

	"github.com/mgatere/termfolio/internal/history"
)

// UIEvent represents events sent from UI to Core
type UIEvent interface {
	UIEvent()
}

// CoreEvent represents events sent from Core to UI
type CoreEvent interface {
	CoreEvent()
}

// FallbackRequestEvent - UI asks core to answer a command the registry does not know
type FallbackRequestEvent struct {
	EntryID history.EntryID
	Prompt  string
}

func (e FallbackRequestEvent) UIEvent() {}

// FallbackResolvedEvent - Core reports the outcome of a fallback request.
// Err is set only when the answer could not be fetched at all.
type FallbackResolvedEvent struct {
	EntryID history.EntryID
	Prompt  string
	Message string
	Err     error
}

func (e FallbackResolvedEvent) CoreEvent() {}

var (
	ErrCircuitOpen = errors.New("circuit breaker is open")
	ErrBusClosed   = errors.New("event bus is closed")
	ErrChannelFull = errors.New("channel is full")
)

// EventBusError represents errors in event processing
type EventBusError struct {
	Operation string
	Err       error
	Timestamp time.Time
}

func (e EventBusError) Error() string {
	return e.Operation + ": " + e.Err.Error()
}

func (e EventBusError) Unwrap() error {
	return e.Err
}

// CircuitBreakerState represents the state of circuit breaker
type CircuitBreakerState int

const (
	CircuitClosed CircuitBreakerState = iota
	CircuitOpen
	CircuitHalfOpen
)

// CircuitBreaker stops accepting events after repeated delivery failures and
// lets one through again once resetTimeout has passed.
type CircuitBreaker struct {
	mu              sync.Mutex
	maxFailures     int
	resetTimeout    time.Duration
	failureCount    int
	lastFailureTime time.Time
	state           CircuitBreakerState
	now             func() time.Time
}

func NewCircuitBreaker(maxFailures int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		state:        CircuitClosed,
		now:          time.Now,
	}
}

func (cb *CircuitBreaker) IsOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state == CircuitOpen && cb.now().Sub(cb.lastFailureTime) > cb.resetTimeout {
		cb.state = CircuitHalfOpen
	}
	return cb.state == CircuitOpen
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failureCount = 0
	cb.state = CircuitClosed
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failureCount++
	cb.lastFailureTime = cb.now()

	if cb.failureCount >= cb.maxFailures {
		cb.state = CircuitOpen
	}
}

func (cb *CircuitBreaker) State() CircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// EventBus handles communication between UI and Core with circuit breaker
type EventBus struct {
	mu             sync.RWMutex
	closed         bool
	uiToCore       chan UIEvent
	coreToUI       chan CoreEvent
	errorCallback  func(EventBusError)
	circuitBreaker *CircuitBreaker
}

func NewEventBus() *EventBus {
	return NewEventBusWithCapacity(16)
}

func NewEventBusWithCapacity(capacity int) *EventBus {
	return &EventBus{
		uiToCore:       make(chan UIEvent, capacity),
		coreToUI:       make(chan CoreEvent, capacity),
		circuitBreaker: NewCircuitBreaker(5, 30*time.Second),
	}
}

func (eb *EventBus) SetErrorCallback(callback func(EventBusError)) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.errorCallback = callback
}

func (eb *EventBus) reportError(operation string, err error) {
	busError := EventBusError{
		Operation: operation,
		Err:       err,
		Timestamp: time.Now(),
	}

	eb.circuitBreaker.RecordFailure()

	if eb.errorCallback != nil {
		eb.errorCallback(busError)
	}
}

func (eb *EventBus) SendToCore(event UIEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if eb.closed {
		return ErrBusClosed
	}
	if eb.circuitBreaker.IsOpen() {
		eb.reportError("SendToCore", ErrCircuitOpen)
		return ErrCircuitOpen
	}

	select {
	case eb.uiToCore <- event:
		eb.circuitBreaker.RecordSuccess()
		return nil
	default:
		eb.reportError("SendToCore", ErrChannelFull)
		return ErrChannelFull
	}
}

func (eb *EventBus) SendToUI(event CoreEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if eb.closed {
		return ErrBusClosed
	}
	if eb.circuitBreaker.IsOpen() {
		eb.reportError("SendToUI", ErrCircuitOpen)
		return ErrCircuitOpen
	}

	select {
	case eb.coreToUI <- event:
		eb.circuitBreaker.RecordSuccess()
		return nil
	default:
		eb.reportError("SendToUI", ErrChannelFull)
		return ErrChannelFull
	}
}

func (eb *EventBus) UIToCore() <-chan UIEvent {
	return eb.uiToCore
}

func (eb *EventBus) CoreToUI() <-chan CoreEvent {
	return eb.coreToUI
}

func (eb *EventBus) GetCircuitBreakerState() CircuitBreakerState {
	return eb.circuitBreaker.State()
}

// Close closes both channels. Later sends fail with ErrBusClosed.
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	if eb.closed {
		return
	}
	eb.closed = true
	close(eb.uiToCore)
	close(eb.coreToUI)
}
