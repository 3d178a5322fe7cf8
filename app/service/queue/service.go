package queue

import (
	"log/slog"

	"github.com/samber/do"
)

const bufferSize = 64

var _ do.Shutdownable = (*Service)(nil)

// Service decouples the transport feed from event handling. Delivery order
// is preserved; when the buffer overflows the event is dropped with a
// warning rather than blocking the transport.
type Service struct {
	queue chan Event
}

// Event is one inbound interaction from the messaging platform.
type Event struct {
	ChatID int64
	// Text of a plain message, empty for callbacks
	Text string
	// Payload of an inline-keyboard callback
	Payload string
	// MessageID of the message carrying the inline keyboard
	MessageID  int
	IsCallback bool
}

func New(_ *do.Injector) (*Service, error) {
	return &Service{
		queue: make(chan Event, bufferSize),
	}, nil
}

func (s *Service) Add(event Event) {
	defer func() {
		if r := recover(); r != nil {

		}
	}()

	select {
	case s.queue <- event:
	default:
		slog.Warn("event queue is full, dropping event", "chat_id", event.ChatID)
	}
}

func (s *Service) Channel() <-chan Event {
	return s.queue
}

func (s *Service) Shutdown() error {
	close(s.queue)

	return nil
}
