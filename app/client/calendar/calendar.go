package calendar

import (
	"fmt"
	"strings"
	"time"

	"pricebot/app/client/telegram"

	"github.com/samber/do"
)

const (
	payloadPrefix = "cal:"
	dayPrefix     = "cal:day:"
	navPrefix     = "cal:nav:"
	noopPayload   = "cal:noop"

	monthFormat = "2006/01"
	dateFormat  = "2006/01/02"

	promptText = "Select a date:"
)

// Widget is an inline-calendar date picker. It owns its navigation state
// entirely through callback payloads, so the widget itself is stateless.
type Widget struct {
	tgClient *telegram.Client
	now      func() time.Time
}

func New(di *do.Injector) (*Widget, error) {
	return &Widget{
		tgClient: do.MustInvoke[*telegram.Client](di),
		now:      time.Now,
	}, nil
}

// Start opens the picker at the current month.
func (w *Widget) Start(chatID int64) error {
	month := w.now()

	if err := w.tgClient.SendMarkup(chatID, promptText, monthMarkup(month)); err != nil {
		return fmt.Errorf("failed to open calendar: %w", err)
	}

	return nil
}

// HandleCallback consumes calendar payloads. It reports handled=false for
// payloads that do not belong to the widget; a non-empty date means the user
// picked a day, in YYYY/MM/DD form.
func (w *Widget) HandleCallback(chatID int64, messageID int, payload string) (date string, handled bool, err error) {
	if !strings.HasPrefix(payload, payloadPrefix) {
		return "", false, nil
	}

	switch {
	case payload == noopPayload:
		return "", true, nil

	case strings.HasPrefix(payload, dayPrefix):
		return strings.TrimPrefix(payload, dayPrefix), true, nil

	case strings.HasPrefix(payload, navPrefix):
		month, parseErr := time.ParseInLocation(monthFormat, strings.TrimPrefix(payload, navPrefix), time.UTC)
		if parseErr != nil {
			return "", true, fmt.Errorf("bad navigation payload %q: %w", payload, parseErr)
		}

		if err = w.tgClient.EditMarkup(chatID, messageID, promptText, monthMarkup(month)); err != nil {
			return "", true, fmt.Errorf("failed to flip calendar page: %w", err)
		}

		return "", true, nil

	default:
		return "", true, fmt.Errorf("unrecognized calendar payload %q", payload)
	}
}
