package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"pricebot/app/client/calendar"
	"pricebot/app/client/predict"
	"pricebot/app/client/telegram"
	"pricebot/app/config"
	"pricebot/app/service/catalog"
	"pricebot/app/service/dialog"
	"pricebot/app/service/engine"
	"pricebot/app/service/normalize"
	"pricebot/app/service/queue"
	"pricebot/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, catalog.New)
	do.Provide(di, queue.New)
	do.Provide(di, telegram.NewClient)
	do.Provide(di, calendar.New)
	do.Provide(di, predict.NewClient)
	do.Provide(di, normalize.New)
	do.Provide(di, dialog.New)
	do.Provide(di, engine.New)

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	group, groupCtx := errgroup.WithContext(appCtx)

	group.Go(func() error {
		return do.MustInvoke[*telegram.Client](di).Run(groupCtx)
	})

	group.Go(func() error {
		do.MustInvoke[*engine.Service](di).Run(groupCtx)
		return nil
	})

	if err = group.Wait(); err != nil {
		slog.Error("Service stopped with error", "error", err)
	}
}
