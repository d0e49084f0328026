package main

import (
	"github.com/bxxf/flight-schema/internal/capture"
	"github.com/bxxf/flight-schema/internal/checker"
	"github.com/bxxf/flight-schema/internal/config"
	"github.com/bxxf/flight-schema/internal/database"
	"github.com/bxxf/flight-schema/internal/discord"
	"github.com/bxxf/flight-schema/internal/logger"
	"github.com/bxxf/flight-schema/internal/server"
	"go.uber.org/fx"
)

func options() fx.Option {
	return fx.Options(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabaseClient,
			database.NewCaptureStore,
			capture.NewService,
			fx.Annotate(
				discord.NewDiscordService,
				fx.As(new(checker.Notifier)),
			),
			checker.NewChecker,
			server.NewServer,
		),
		fx.Invoke(database.RegisterDatabaseHooks, server.RegisterServerHooks, checker.RegisterCheckerHooks),
	)
}

func main() {
	app := fx.New(options())

	app.Run()
}
