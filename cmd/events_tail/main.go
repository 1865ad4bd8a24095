package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hcp-crm-be/internal/config"
	"hcp-crm-be/internal/pkg/logger"
	"hcp-crm-be/pkg/events"
	pktNats "hcp-crm-be/pkg/nats"
)

// events_tail prints interaction events forwarded to JetStream.
func main() {
	subject := flag.String("subject", pktNats.Subject(">"), "subject filter")
	durable := flag.String("durable", "events-tail", "durable consumer name")
	flag.Parse()

	cfg := config.Load()
	if cfg.App.NatsURL == "" {
		log.Fatal("Error: NATS_URL is not set")
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer sysLogger.Sync()

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Error: Failed to connect to NATS: %v", err)
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = sub.Subscribe(ctx, *subject, *durable, func(_ context.Context, event events.Event) error {
		sysLogger.Info("EVENTS", "Event received", map[string]interface{}{
			"type":        event.EventType(),
			"occurred_at": event.Timestamp().Format(time.RFC3339),
			"data":        event.Payload(),
		})
		return nil
	})
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	<-ctx.Done()
	log.Println("Stopped.")
}
