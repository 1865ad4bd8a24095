package service

import (
	"context"
	"sync"
	"testing"

	"hcp-crm-be/internal/model"
	"hcp-crm-be/internal/pkg/logger"
	"hcp-crm-be/internal/repository/unitofwork"
	"hcp-crm-be/pkg/agent"
	"hcp-crm-be/pkg/database"
	"hcp-crm-be/pkg/events"

	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func newTestFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()
	db, err := database.NewGormDBFromDSN("sqlite://:memory:", database.WithLogLevel(gormlogger.Silent))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return unitofwork.NewRepositoryFactory(db)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	e, err := events.Decode(payload)
	if err != nil {
		return err
	}
	return p.PublishEvent(ctx, e)
}

func (p *recordingPublisher) PublishEvent(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

// stubCompleter answers extraction prompts from a queue and advisor prompts
// with a fixed reply.
type stubCompleter struct {
	mu          sync.Mutex
	extractions []string
	extractErr  error
	advice      string
}

func (c *stubCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if system == agent.AdvisorSystemPrompt {
		return c.advice, nil
	}
	if c.extractErr != nil {
		return "", c.extractErr
	}
	if len(c.extractions) == 0 {
		return "{}", nil
	}
	next := c.extractions[0]
	c.extractions = c.extractions[1:]
	return next, nil
}

func nopLogger() logger.ILogger {
	return logger.NewNopLogger()
}

func uintPtr(v uint) *uint {
	return &v
}
