package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/precinct-systems/precinct-stack/common/logging"
	"github.com/precinct-systems/precinct-stack/common/messaging/nats"
	"github.com/precinct-systems/precinct-stack/notifier/internal/config"
	"github.com/precinct-systems/precinct-stack/notifier/internal/consumer"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.New(
		logging.ParseLevel(cfg.Logging.Level),
		cfg.Logging.Format,
	).With(logging.Service("notifier"))
	logging.SetDefault(logger)

	if cfg.Webhooks.Default == "" && len(cfg.Webhooks.Routes) == 0 {
		slog.Error("No webhooks configured, nothing to do")
		os.Exit(1)
	}

	natsCfg := nats.DefaultConfig()
	natsCfg.URL = cfg.NATS.URL
	natsCfg.Name = "precinct-notifier"
	client, err := nats.NewClient(natsCfg)
	if err != nil {
		slog.Error("Failed to connect to NATS", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer client.Close()
	slog.Info("Connected to NATS", slog.String("url", cfg.NATS.URL))

	routes := consumer.Routes{}
	if cfg.Webhooks.Default != "" {
		routes[""] = cfg.Webhooks.Default
	}
	for subject, url := range cfg.Webhooks.Routes {
		routes[subject] = url
	}

	c := consumer.New(client, routes, cfg.Webhooks.Timeout, logger.Logger)
	sub, err := c.Start()
	if err != nil {
		slog.Error("Failed to subscribe", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("Notifier listening", slog.String("subject", sub.Subject()))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down notifier")
	if err := client.Drain(); err != nil {
		slog.Warn("Drain failed", slog.String("error", err.Error()))
	}
	slog.Info("Notifier stopped")
}
