package dialog

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"pricebot/app/client/calendar"
	"pricebot/app/client/predict"
	"pricebot/app/client/telegram"
	"pricebot/app/service/catalog"
	"pricebot/app/service/normalize"
	"pricebot/app/service/queue"
	"pricebot/app/util/apperr"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
)

const commandTrigger = "/command1"

var (
	_ Messenger  = (*telegram.Client)(nil)
	_ DatePicker = (*calendar.Widget)(nil)
	_ Predictor  = (*predict.Client)(nil)
)

// Service drives the two-step selection dialog: pick a token, pick a date,
// forward the query, report the result. State is kept per chat and always
// returns to idle when a round trip finishes, whatever the outcome.
type Service struct {
	messenger    Messenger
	datePicker   DatePicker
	predictor    Predictor
	normalizeSvc *normalize.Service
	catalogSvc   *catalog.Service

	mu    sync.Mutex
	chats map[int64]*chatState
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		messenger:    do.MustInvoke[*telegram.Client](di),
		datePicker:   do.MustInvoke[*calendar.Widget](di),
		predictor:    do.MustInvoke[*predict.Client](di),
		normalizeSvc: do.MustInvoke[*normalize.Service](di),
		catalogSvc:   do.MustInvoke[*catalog.Service](di),
		chats:        make(map[int64]*chatState),
	}, nil
}

// HandleEvent processes one inbound event for its chat.
func (s *Service) HandleEvent(ctx context.Context, event queue.Event) {
	state := s.stateFor(event.ChatID)

	state.mu.Lock()
	defer state.mu.Unlock()

	if event.IsCallback {
		s.handleCallback(ctx, event, state)
		return
	}

	s.handleMessage(event, state)
}

func (s *Service) handleMessage(event queue.Event, state *chatState) {
	if strings.TrimSpace(event.Text) != commandTrigger {
		slog.Debug("Ignoring message", "chat_id", event.ChatID)
		return
	}

	// a fresh trigger always starts a fresh round trip
	state.reset()

	choices := pie.Map(s.catalogSvc.Symbols(), func(symbol string) telegram.Choice {
		return telegram.Choice{Label: symbol, Data: symbol}
	})

	if err := s.messenger.SendChoices(event.ChatID, "Select a token:", choices); err != nil {
		slog.Error("Failed to send token list", "chat_id", event.ChatID, "error", err)
	}
}

func (s *Service) handleCallback(ctx context.Context, event queue.Event, state *chatState) {
	date, handled, err := s.datePicker.HandleCallback(event.ChatID, event.MessageID, event.Payload)
	if err != nil {
		slog.Warn("Calendar callback failed", "chat_id", event.ChatID, "error", err)
	}
	if handled && date == "" {
		// navigation inside the widget, tracker state untouched
		return
	}

	switch state.step {
	case stepAwaitingDate:
		chosenDate := date
		if !handled {
			// opaque payload while awaiting a date is read as a date string
			chosenDate = event.Payload
		}

		defer state.reset()
		s.completeRound(ctx, event.ChatID, state.selectedToken, chosenDate)

	default:
		if handled {
			slog.Debug("Ignoring date selection without pending round trip", "chat_id", event.ChatID)
			return
		}

		s.beginDateSelection(event.ChatID, event.Payload, state)
	}
}

func (s *Service) beginDateSelection(chatID int64, symbol string, state *chatState) {
	if _, ok := s.catalogSvc.Lookup(symbol); !ok {
		s.fail(chatID, apperr.New(apperr.InvalidToken, fmt.Sprintf("unknown symbol %q", symbol)))
		return
	}

	state.step = stepAwaitingDate
	state.selectedToken = symbol
	state.updatedAt = time.Now()

	if err := s.datePicker.Start(chatID); err != nil {
		state.reset()
		s.fail(chatID, apperr.Wrap(apperr.Unknown, "failed to open date picker", err))
	}
}

func (s *Service) completeRound(ctx context.Context, chatID int64, symbol, dateString string) {
	request, err := s.normalizeSvc.Normalize(symbol, dateString)
	if err != nil {
		s.fail(chatID, err)
		return
	}

	predictions, err := s.predictor.Predict(ctx, request)
	if err != nil {
		s.fail(chatID, err)
		return
	}

	price := pie.Last(predictions)
	text := fmt.Sprintf("Predicted closing price for %s on %s: %s",
		symbol, dateString, strconv.FormatFloat(price, 'f', -1, 64))

	if err = s.messenger.SendText(chatID, text); err != nil {
		slog.Error("Failed to deliver prediction", "chat_id", chatID, "error", err)
		return
	}

	slog.Info("Completed prediction round trip",
		"chat_id", chatID,
		"symbol", symbol,
		"date", dateString,
		"price", price,
		"telegram", true)
}

func (s *Service) fail(chatID int64, err error) {
	slog.Error("Round trip failed",
		"chat_id", chatID,
		"kind", apperr.KindOf(err).String(),
		"error", err)

	if sendErr := s.messenger.SendText(chatID, apperr.UserMessage(err)); sendErr != nil {
		slog.Error("Failed to deliver error message", "chat_id", chatID, "error", sendErr)
	}
}

// Sweep resets conversations stuck in date selection longer than maxIdle.
// Records busy with a live handler are skipped and picked up next tick.
func (s *Service) Sweep(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	swept := 0

	for chatID, state := range s.chats {
		if !state.mu.TryLock() {
			continue
		}

		if state.step == stepAwaitingDate && time.Since(state.updatedAt) > maxIdle {
			state.reset()
			swept++

			slog.Info("Swept abandoned date selection", "chat_id", chatID)
		}

		state.mu.Unlock()
	}

	return swept
}

func (s *Service) stateFor(chatID int64) *chatState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.chats[chatID]
	if !ok {
		state = &chatState{}
		s.chats[chatID] = state
	}

	return state
}
