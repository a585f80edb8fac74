package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/SaiNageswarS/go-api-boot/dotenv"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/server"
	"github.com/varunisrani/legal/agent"
	"github.com/varunisrani/legal/appconfig"
	"github.com/varunisrani/legal/controller"
	"go.uber.org/zap"
)

func main() {
	dotenv.LoadEnv()

	port := appconfig.HTTPPort()
	logger.Info("Starting Legal Agent API",
		zap.String("port", port),
		zap.Bool("configured", appconfig.ResolveProvider().Configured()))

	boot, err := server.New().
		HTTPPort(":" + port).
		ProvideFunc(agent.ProvideLegalAgent).
		AddRestController(controller.ProvideQueryController).
		AddRestController(controller.ProvideMetadataController).
		AddRestController(controller.ProvideDisclaimerController).
		Build()

	if err != nil {
		logger.Fatal("Dependency Injection Failed", zap.Error(err))
	}

	ctx := getCancellableContext()
	boot.Serve(ctx)
}

func getCancellableContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		cancel()
	}()

	return ctx
}
