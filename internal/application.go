package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-ai/internal/config"
	"github.com/rocketscienceinc/tictactoe-ai/internal/transport/redis"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-ai/transport/rest"
	"github.com/rocketscienceinc/tictactoe-ai/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	presenters, closePresenters, err := initPresenters(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closePresenters()

	wsServer := websocket.New(logger, conf.AIDelay, presenters...)
	router := rest.NewRouter(logger, wsServer)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "aiDelay", conf.AIDelay)

	if err = rest.Start(ctx, conf.HTTPPort, router); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// initPresenters - connects the optional Redis fan-out.
func initPresenters(ctx context.Context, log *slog.Logger, conf *config.Config) ([]usecase.Presenter, func(), error) {
	if !conf.Redis.Enabled {
		return nil, func() {}, nil
	}

	client, err := redis.Connect(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	log.Info("Publishing snapshots to redis", "addr", conf.Redis.GetRedisAddr(), "prefix", conf.Redis.ChannelPrefix)

	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Error("could not close redis client", "error", err)
		}
	}

	return []usecase.Presenter{redis.NewPublisher(client, conf.Redis.ChannelPrefix)}, closeFn, nil
}
