package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"pricebot/app/service/queue"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gofiber/fiber/v2"
)

const webhookPath = "/telegram/webhook"

// Run feeds inbound updates into the event queue until ctx is cancelled.
// With a configured webhook base URL updates arrive over HTTP, otherwise
// long polling is used.
func (c *Client) Run(ctx context.Context) error {
	if c.cfg.Telegram.WebhookBaseURL != "" {
		return c.runWebhook(ctx)
	}

	return c.runPolling(ctx)
}

func (c *Client) runPolling(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	updates := c.bot.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			c.bot.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}

			c.dispatch(update)
		}
	}
}

func (c *Client) runWebhook(ctx context.Context) error {
	webhookURL := strings.TrimSuffix(c.cfg.Telegram.WebhookBaseURL, "/") + webhookPath

	webhookConfig, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		return fmt.Errorf("failed to build webhook config: %w", err)
	}

	if _, err = c.bot.Request(webhookConfig); err != nil {
		return fmt.Errorf("failed to register webhook: %w", err)
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Post(webhookPath, func(fiberCtx *fiber.Ctx) error {
		var update tgbotapi.Update
		if err := json.Unmarshal(fiberCtx.Body(), &update); err != nil {
			slog.Warn("Failed to parse webhook update", "error", err)
			return fiberCtx.SendStatus(fiber.StatusBadRequest)
		}

		c.dispatch(update)

		return fiberCtx.SendStatus(fiber.StatusOK)
	})

	go func() {
		<-ctx.Done()
		_ = app.Shutdown()
	}()

	slog.Info("Listening for telegram webhooks", "addr", c.cfg.Telegram.WebhookAddr, "url", webhookURL)

	return app.Listen(c.cfg.Telegram.WebhookAddr)
}

func (c *Client) dispatch(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		callback := update.CallbackQuery
		if callback.Message == nil {
			return
		}

		// stop the client-side loading spinner right away
		if _, err := c.bot.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
			slog.Warn("Failed to answer callback query", "error", err)
		}

		c.queueSvc.Add(queue.Event{
			ChatID:     callback.Message.Chat.ID,
			Payload:    callback.Data,
			MessageID:  callback.Message.MessageID,
			IsCallback: true,
		})
	case update.Message != nil:
		c.queueSvc.Add(queue.Event{
			ChatID: update.Message.Chat.ID,
			Text:   update.Message.Text,
		})
	}
}
