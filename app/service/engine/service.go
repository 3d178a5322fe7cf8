package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"pricebot/app/config"
	"pricebot/app/service/dialog"
	"pricebot/app/service/queue"

	"github.com/samber/do"
)

const (
	chatBufferSize  = 16
	workerIdleLimit = time.Hour
	sweepInterval   = time.Minute
)

// Handler consumes events and sweeps abandoned conversations.
type Handler interface {
	HandleEvent(ctx context.Context, event queue.Event)
	Sweep(maxIdle time.Duration) int
}

// Service pumps events from the queue into the dialog tracker. Each chat
// gets its own worker goroutine, so one chat awaiting the prediction service
// never stalls another, while events within a chat stay in delivery order.
type Service struct {
	cfg      *config.Config
	queueSvc *queue.Service
	handler  Handler

	mu      sync.Mutex
	workers map[int64]chan queue.Event
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:      do.MustInvoke[*config.Config](di),
		queueSvc: do.MustInvoke[*queue.Service](di),
		handler:  do.MustInvoke[*dialog.Service](di),
		workers:  make(map[int64]chan queue.Event),
	}, nil
}

func (s *Service) Run(ctx context.Context) {
	idleTTL := time.Duration(*s.cfg.Dialog.IdleTTLMinutes) * time.Minute

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			if idleTTL > 0 {
				s.handler.Sweep(idleTTL)
			}

		case event, ok := <-s.queueSvc.Channel():
			if !ok {
				return
			}

			s.dispatch(ctx, event)
		}
	}
}

func (s *Service) dispatch(ctx context.Context, event queue.Event) {
	// the send happens under the lock so a worker cannot retire between the
	// lookup and the send
	s.mu.Lock()
	defer s.mu.Unlock()

	worker, ok := s.workers[event.ChatID]
	if !ok {
		worker = make(chan queue.Event, chatBufferSize)
		s.workers[event.ChatID] = worker

		go s.runWorker(ctx, event.ChatID, worker)
	}

	select {
	case worker <- event:
	default:
		slog.Warn("Chat worker is saturated, dropping event", "chat_id", event.ChatID)
	}
}

func (s *Service) runWorker(ctx context.Context, chatID int64, events <-chan queue.Event) {
	idle := time.NewTimer(workerIdleLimit)
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			s.forgetWorker(chatID)
			return

		case <-idle.C:
			if !s.retireWorker(chatID, events) {
				idle.Reset(workerIdleLimit)
				continue
			}

			return

		case event := <-events:
			s.handle(ctx, event)

			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(workerIdleLimit)
		}
	}
}

func (s *Service) handle(ctx context.Context, event queue.Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Panic while handling event", "chat_id", event.ChatID, "panic", r)
		}
	}()

	start := time.Now()
	s.handler.HandleEvent(ctx, event)

	slog.Debug("Handled event",
		"chat_id", event.ChatID,
		"callback", event.IsCallback,
		"duration", time.Since(start))
}

// retireWorker unregisters an idle worker unless events raced in since the
// idle timer fired.
func (s *Service) retireWorker(chatID int64, events <-chan queue.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(events) > 0 {
		return false
	}

	delete(s.workers, chatID)

	return true
}

func (s *Service) forgetWorker(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.workers, chatID)
}
