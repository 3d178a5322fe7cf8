package telegram

import (
	"fmt"
	"log/slog"

	"pricebot/app/config"
	"pricebot/app/service/queue"

	"github.com/elliotchance/pie/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/do"
)

// Choice is one selectable entry of an inline keyboard: a visible label and
// the opaque payload echoed back in the callback.
type Choice struct {
	Label string
	Data  string
}

// Client wraps the Telegram Bot API: outbound messages and keyboards, plus
// the inbound update feed (polling or webhook, see feed.go).
type Client struct {
	cfg      *config.Config
	bot      *tgbotapi.BotAPI
	queueSvc *queue.Service
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot api: %w", err)
	}

	slog.Info("Authorized on telegram", "username", bot.Self.UserName)

	return &Client{
		cfg:      cfg,
		bot:      bot,
		queueSvc: do.MustInvoke[*queue.Service](di),
	}, nil
}

func (c *Client) SendText(chatID int64, text string) error {
	if _, err := c.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// SendChoices sends a text message with an attached inline keyboard, one
// choice per row.
func (c *Client) SendChoices(chatID int64, text string, choices []Choice) error {
	rows := pie.Map(choices, func(choice Choice) []tgbotapi.InlineKeyboardButton {
		return tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(choice.Label, choice.Data),
		)
	})

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)

	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send keyboard: %w", err)
	}

	return nil
}

// SendMarkup sends a message with an arbitrary inline keyboard. Used by the
// calendar widget which lays out its own grid.
func (c *Client) SendMarkup(chatID int64, text string, markup tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup

	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send markup: %w", err)
	}

	return nil
}

// EditMarkup replaces the text and keyboard of an already sent message.
func (c *Client) EditMarkup(chatID int64, messageID int, text string, markup tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, markup)

	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to edit markup: %w", err)
	}

	return nil
}
