package dialog

import (
	"context"
	"sync"
	"time"

	"pricebot/app/client/predict"
	"pricebot/app/client/telegram"
)

// Messenger is the outbound side of the chat transport.
type Messenger interface {
	SendText(chatID int64, text string) error
	SendChoices(chatID int64, text string, choices []telegram.Choice) error
}

// DatePicker is the calendar widget collaborator. HandleCallback reports
// handled=false for payloads that are not calendar traffic.
type DatePicker interface {
	Start(chatID int64) error
	HandleCallback(chatID int64, messageID int, payload string) (date string, handled bool, err error)
}

// Predictor issues normalized requests to the prediction service.
type Predictor interface {
	Predict(ctx context.Context, req predict.Request) ([]float64, error)
}

type step int

const (
	stepIdle step = iota
	stepAwaitingDate
)

// chatState is the per-conversation record. Its mutex is held for the whole
// handling of one event, so events for the same chat serialize while
// different chats proceed independently.
type chatState struct {
	mu sync.Mutex

	step          step
	selectedToken string
	updatedAt     time.Time
}

func (s *chatState) reset() {
	s.step = stepIdle
	s.selectedToken = ""
	s.updatedAt = time.Now()
}
