package mylog

import (
	"context"
	"log/slog"
	"os"
	"pricebot/app/config"

	"github.com/phsym/console-slog"
	slogmulti "github.com/samber/slog-multi"
	slogtelegram "github.com/samber/slog-telegram/v2"
)

func consoleHandler() slog.Handler {
	return console.NewHandler(os.Stderr, &console.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug,
	})
}

// Preinit installs a console-only logger so that config loading failures
// are still visible.
func Preinit() {
	slog.SetDefault(slog.New(consoleHandler()))
}

func Init(cfg *config.Config) error {
	router := slogmulti.Router()
	router = router.Add(consoleHandler())

	if cfg.Log.Telegram.Token != "" {
		router = router.Add(
			slogtelegram.Option{
				Level:     slog.LevelDebug,
				Token:     cfg.Log.Telegram.Token,
				Username:  cfg.Log.Telegram.ChatID,
				AddSource: true,
			}.NewTelegramHandler(),

			func(_ context.Context, r slog.Record) bool {
				if r.Level >= slog.LevelError {
					return true
				}

				forward := false
				r.Attrs(func(attr slog.Attr) bool {
					if attr.Key == "telegram" {
						forward = true
						return false
					}

					return true
				})

				return forward
			},
		)
	}

	slog.SetDefault(slog.New(router.Handler()))

	return nil
}
