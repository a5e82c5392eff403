package core

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mgatere/termfolio/internal/chat"
	"github.com/mgatere/termfolio/internal/eventbus"
)

// FallbackService answers unknown commands off the UI goroutine. It reads
// FallbackRequestEvents from the bus, asks the Sender and pushes one
// FallbackResolvedEvent back per request.
type FallbackService struct {
	sender   chat.Sender
	eventBus *eventbus.EventBus
	state    *FallbackState
	timeout  time.Duration
	logger   *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewFallbackService creates a service. A zero timeout means requests are bounded
// only by Stop.
func NewFallbackService(sender chat.Sender, eb *eventbus.EventBus, timeout time.Duration, logger *zap.Logger) *FallbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &FallbackService{
		sender:   sender,
		eventBus: eb,
		state:    NewFallbackState(),
		timeout:  timeout,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start runs the event loop in a goroutine
func (fs *FallbackService) Start() {
	fs.wg.Add(1)
	go func() {
		defer fs.wg.Done()
		fs.eventLoop()
	}()
}

// Stop cancels outstanding requests and waits for every goroutine to exit.
func (fs *FallbackService) Stop() {
	fs.cancel()
	fs.wg.Wait()
}

func (fs *FallbackService) State() *FallbackState {
	return fs.state
}

func (fs *FallbackService) eventLoop() {
	for {
		select {
		case <-fs.ctx.Done():
			return
		case event, ok := <-fs.eventBus.UIToCore():
			if !ok {
				return
			}
			fs.handleUIEvent(event)
		}
	}
}

func (fs *FallbackService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.FallbackRequestEvent:
		if !fs.state.Begin(e.EntryID) {
			fs.logger.Warn("Ignoring duplicate fallback request", zap.String("entry", string(e.EntryID)))
			return
		}
		fs.wg.Add(1)
		go func() {
			defer fs.wg.Done()
			fs.resolve(e)
		}()
	default:
		fs.logger.Debug("Ignoring unknown UI event")
	}
}

func (fs *FallbackService) resolve(req eventbus.FallbackRequestEvent) {
	ctx := fs.ctx
	if fs.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, fs.timeout)
		defer cancel()
	}

	message, err := fs.sender.Send(ctx, req.Prompt)
	elapsed := fs.state.Finish(req.EntryID, err)

	if err != nil {
		fs.logger.Error("Fallback request failed",
			zap.String("entry", string(req.EntryID)),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
	} else {
		fs.logger.Info("Fallback request answered",
			zap.String("entry", string(req.EntryID)),
			zap.Duration("elapsed", elapsed),
			zap.Int("length", len(message)))
	}

	if fs.ctx.Err() != nil {
		return
	}

	if sendErr := fs.eventBus.SendToUI(eventbus.FallbackResolvedEvent{
		EntryID: req.EntryID,
		Prompt:  req.Prompt,
		Message: message,
		Err:     err,
	}); sendErr != nil {
		fs.logger.Error("Failed to deliver fallback result to UI", zap.Error(sendErr))
	}
}
